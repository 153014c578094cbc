package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
)

const correspondenceIndex = "correspondence"

// indexCorrespondence mirrors a record into Elasticsearch. Indexing is
// best effort and never breaks the write that triggered it.
func (s *CorrespondenceService) indexCorrespondence(corr *model.Correspondence) {
	if s.esClient == nil {
		return
	}

	doc := map[string]interface{}{
		"id":               corr.ID,
		"reference_number": corr.ReferenceNumber,
		"subject":          corr.Subject,
		"sender_name":      corr.SenderName,
		"status":           corr.Status,
		"priority":         corr.Priority,
		"owning_office_id": corr.OwningOfficeID,
		"timestamp":        time.Now().UTC(),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		log.Printf("[indexCorrespondence] Failed to marshal %s: %v", corr.ID, err)
		return
	}

	res, err := s.esClient.Index(
		correspondenceIndex,
		bytes.NewReader(body),
		s.esClient.Index.WithDocumentID(corr.ID),
		s.esClient.Index.WithContext(context.Background()),
	)
	if err != nil {
		log.Printf("[indexCorrespondence] Elasticsearch indexing error: %v", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("[indexCorrespondence] Elasticsearch indexing failed: %s", res.String())
	}
}

// SearchCorrespondence runs a full-text query over the indexed fields and
// returns the matching documents.
func (s *CorrespondenceService) SearchCorrespondence(query string) ([]map[string]interface{}, error) {
	if s.esClient == nil {
		return nil, fmt.Errorf("elasticsearch client is not initialized")
	}

	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"reference_number", "subject", "sender_name"},
			},
		},
	}
	body, err := json.Marshal(searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(context.Background()),
		s.esClient.Search.WithIndex(correspondenceIndex),
		s.esClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var result map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hitsMap, ok := result["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid hits structure in search response")
	}
	hitsArray, ok := hitsMap["hits"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid hits array in search response")
	}

	var docs []map[string]interface{}
	for _, hit := range hitsArray {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		source, ok := hitMap["_source"].(map[string]interface{})
		if !ok {
			continue
		}
		docs = append(docs, source)
	}
	return docs, nil
}
