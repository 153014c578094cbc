package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	model "github.com/Ekene07/CorrTrack/models"
)

// AddAttachment uploads a file to object storage and records it against
// the correspondence. The binary lives in S3; the row only keeps its URL.
func (s *CorrespondenceService) AddAttachment(corrID string, file multipart.File, header *multipart.FileHeader, uploader model.User) (*model.CorrespondenceAttachment, error) {
	if s.s3Client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}

	var corr model.Correspondence
	if err := s.db.First(&corr, "id = ?", corrID).Error; err != nil {
		return nil, ErrCorrespondenceNotFound
	}
	if corr.Status == model.StatusArchived {
		return nil, ErrTerminalState
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("bucket name not configured")
	}

	key := fmt.Sprintf("correspondence/%s/%s-%s", corr.ID, uuid.NewString(), header.Filename)
	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("[AddAttachment] S3 upload error: %v", err)
		return nil, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	attachment := &model.CorrespondenceAttachment{
		CorrespondenceID: corr.ID,
		FileName:         header.Filename,
		FileType:         header.Header.Get("Content-Type"),
		FileSize:         header.Size,
		FileURL:          fmt.Sprintf("%s/%s/%s", os.Getenv("S3_ENDPOINT"), bucket, key),
		UploadedByID:     uploader.ID,
	}
	if err := s.db.Create(attachment).Error; err != nil {
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}
	log.Printf("[AddAttachment] Stored %s for %s", header.Filename, corr.ReferenceNumber)
	return attachment, nil
}

// ListAttachments returns the attachments recorded for a correspondence.
func (s *CorrespondenceService) ListAttachments(corrID string) ([]model.CorrespondenceAttachment, error) {
	var attachments []model.CorrespondenceAttachment
	if err := s.db.Where("correspondence_id = ?", corrID).Order("created_at asc").Find(&attachments).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}
