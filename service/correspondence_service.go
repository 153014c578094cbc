package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	model "github.com/Ekene07/CorrTrack/models"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CorrespondenceService is the routing engine: it owns correspondence
// status, the minute ledger, office routing, archive access control, and
// the SLA computations derived from the same state.
type CorrespondenceService struct {
	db        *gorm.DB
	esClient  *elasticsearch.Client
	s3Client  *s3.S3
	hierarchy *OfficeHierarchyService
}

// NewCorrespondenceService wires the service against the database and the
// optional search/storage backends. Elasticsearch and S3 are best-effort
// collaborators: when their configuration is absent the engine still runs,
// it just skips indexing and attachment uploads.
func NewCorrespondenceService(db *gorm.DB) (*CorrespondenceService, error) {
	svc := &CorrespondenceService{
		db:        db,
		hierarchy: NewOfficeHierarchyService(db),
	}

	esURL := os.Getenv("ELASTICSEARCH_URL")
	if esURL != "" {
		esClient, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{esURL},
		})
		if err != nil {
			log.Printf("Warning: Failed to create Elasticsearch client: %v", err)
		} else {
			svc.esClient = esClient
		}
	}

	region := os.Getenv("S3_REGION")
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	if region != "" && endpoint != "" && accessKey != "" && secretKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region:           aws.String(region),
			Endpoint:         aws.String(endpoint),
			Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
			S3ForcePathStyle: aws.Bool(true),
		})
		if err != nil {
			log.Printf("Warning: Failed to create AWS session: %v", err)
		} else {
			svc.s3Client = s3.New(sess)
		}
	} else {
		log.Println("S3 configuration incomplete; attachment uploads disabled")
	}

	return svc, nil
}

// Hierarchy exposes the read-only office hierarchy resolver.
func (s *CorrespondenceService) Hierarchy() *OfficeHierarchyService {
	return s.hierarchy
}

// CreateInput carries the registration payload for a new correspondence.
type CreateInput struct {
	ReferenceNumber    string
	Subject            string
	Summary            string
	SenderName         string
	SenderOrganization string
	RecipientName      string
	Source             model.Source
	DocumentType       model.DocumentType
	Priority           model.Priority
	Direction          model.Direction
	ReceivedDate       *time.Time
	LetterDate         *time.Time
	Remarks            string
}

// CreateCorrespondence registers a new item. Status starts at pending with
// completed_at unset; owning and current office are the creator's primary
// active posting. Creation requires a membership with the register flag.
func (s *CorrespondenceService) CreateCorrespondence(input CreateInput, creator model.User) (*model.Correspondence, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, fmt.Errorf("subject is required")
	}

	office, membership, err := s.primaryOffice(creator.ID)
	if err != nil {
		return nil, err
	}
	if !membership.CanRegister && !creator.IsSuperuser {
		return nil, ErrCapabilityDenied
	}
	if input.Source == model.SourceExternal && !office.AllowExternalIntake {
		return nil, ErrExternalIntakeDisabled
	}

	corr := model.Correspondence{
		ReferenceNumber:    strings.TrimSpace(input.ReferenceNumber),
		Subject:            input.Subject,
		Summary:            input.Summary,
		SenderName:         input.SenderName,
		SenderOrganization: input.SenderOrganization,
		RecipientName:      input.RecipientName,
		Source:             defaultSource(input.Source),
		DocumentType:       defaultDocType(input.DocumentType),
		Priority:           defaultPriority(input.Priority),
		Direction:          defaultDirection(input.Direction),
		Status:             model.StatusPending,
		ReceivedDate:       input.ReceivedDate,
		LetterDate:         input.LetterDate,
		Remarks:            input.Remarks,
		OwningOfficeID:     office.ID,
		CurrentOfficeID:    office.ID,
		CreatedByID:        creator.ID,
		DivisionID:         office.DivisionID,
		DepartmentID:       office.DepartmentID,
	}

	// Concurrent registrations can derive the same sequence number, so a
	// unique-index conflict on the generated reference retries with a fresh
	// count instead of failing the request.
	derived := corr.ReferenceNumber == ""
	for attempt := 0; ; attempt++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if derived {
				var count int64
				if err := tx.Model(&model.Correspondence{}).Count(&count).Error; err != nil {
					return fmt.Errorf("failed to derive reference number: %w", err)
				}
				corr.ReferenceNumber = nextReference(creator.Username, count+1+int64(attempt))
			}
			if err := tx.Create(&corr).Error; err != nil {
				return fmt.Errorf("failed to save correspondence: %w", err)
			}
			return nil
		})
		if err == nil {
			break
		}
		if derived && attempt < referenceRetries && isDuplicateReference(err) {
			corr.ID = ""
			continue
		}
		return nil, err
	}

	// Post-commit, best-effort side effects.
	s.indexCorrespondence(&corr)

	log.Printf("[CreateCorrespondence] %s registered to office %s", corr.ReferenceNumber, office.ID)
	return &corr, nil
}

// GetCorrespondence loads one record with its full minute ledger, ordered
// by timestamp ascending with insertion order breaking ties.
func (s *CorrespondenceService) GetCorrespondence(id string) (*model.Correspondence, []model.Minute, error) {
	var corr model.Correspondence
	if err := s.db.First(&corr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCorrespondenceNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch correspondence: %w", err)
	}
	var minutes []model.Minute
	if err := s.db.Where("correspondence_id = ?", id).
		Order("timestamp asc, created_at asc").
		Find(&minutes).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch minutes: %w", err)
	}
	return &corr, minutes, nil
}

// SetStatus applies an explicit status edit under the per-record lock,
// keeping the completed_at invariant: set once on entry to completed,
// cleared on leaving it. Archived is terminal and requires a
// classification level (either already present or supplied here).
func (s *CorrespondenceService) SetStatus(id string, newStatus model.Status, archiveLevel model.ArchiveLevel, actor model.User) (*model.Correspondence, error) {
	var corr model.Correspondence
	var entry *model.RoutingAuditEntry

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockCorrespondence(tx, id, &corr); err != nil {
			return err
		}
		statusBefore := corr.Status

		if err := applyStatusChange(&corr, newStatus, archiveLevel, time.Now()); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":        corr.Status,
			"completed_at":  corr.CompletedAt,
			"archive_level": corr.ArchiveLevel,
			"updated_at":    time.Now(),
		}
		if err := tx.Model(&model.Correspondence{}).Where("id = ?", corr.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		entry = &model.RoutingAuditEntry{
			CorrespondenceID: corr.ID,
			Action:           "status-changed",
			PerformedByID:    actor.ID,
			Reason:           fmt.Sprintf("%s -> %s", statusBefore, corr.Status),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendAudit(entry)
	s.indexCorrespondence(&corr)
	if corr.Status == model.StatusCompleted {
		s.notifyCompletion(&corr, actor)
	}
	return &corr, nil
}

// applyStatusChange mutates the in-memory record per the state machine
// rules. It never touches the database.
func applyStatusChange(corr *model.Correspondence, newStatus model.Status, archiveLevel model.ArchiveLevel, now time.Time) error {
	if err := guardMutable(corr); err != nil {
		return err
	}

	switch newStatus {
	case model.StatusCompleted:
		// Idempotent: a second completion keeps the original timestamp.
		if corr.CompletedAt == nil {
			corr.CompletedAt = &now
		}
	case model.StatusArchived:
		if archiveLevel != "" {
			corr.ArchiveLevel = archiveLevel
		}
		if corr.ArchiveLevel == "" {
			return ErrArchiveLevelRequired
		}
	case model.StatusPending, model.StatusInProgress:
		if corr.CompletedAt != nil {
			corr.CompletedAt = nil
		}
	default:
		return fmt.Errorf("unknown status %q", newStatus)
	}

	corr.Status = newStatus
	return nil
}

// guardMutable rejects any mutation against an archived record. Every
// mutating entry point calls this after taking the row lock.
func guardMutable(corr *model.Correspondence) error {
	if corr.Status == model.StatusArchived {
		return ErrTerminalState
	}
	return nil
}

// touchInProgress moves a non-terminal record into in-progress. Returns
// true when the status actually changed.
func touchInProgress(corr *model.Correspondence) bool {
	if corr.Status == model.StatusCompleted || corr.Status == model.StatusArchived {
		return false
	}
	if corr.Status == model.StatusInProgress {
		return false
	}
	corr.Status = model.StatusInProgress
	return true
}

// lockCorrespondence reads the row under FOR UPDATE so that concurrent
// minute appends and reassignments serialize per record.
func lockCorrespondence(tx *gorm.DB, id string, dest *model.Correspondence) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCorrespondenceNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch correspondence: %w", err)
	}
	return nil
}

// primaryOffice returns the user's primary active posting, falling back to
// any active posting when no primary is flagged.
func (s *CorrespondenceService) primaryOffice(userID string) (*model.Office, *model.OfficeMembership, error) {
	var memberships []model.OfficeMembership
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("is_primary desc, created_at asc").
		Find(&memberships).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch office memberships: %w", err)
	}

	today := time.Now()
	for i := range memberships {
		if !memberships[i].ActiveOn(today) {
			continue
		}
		var office model.Office
		if err := s.db.First(&office, "id = ? AND is_active = ?", memberships[i].OfficeID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, nil, fmt.Errorf("failed to fetch office: %w", err)
		}
		return &office, &memberships[i], nil
	}
	return nil, nil, ErrNoActiveMembership
}

func defaultPriority(p model.Priority) model.Priority {
	if p == "" {
		return model.PriorityMedium
	}
	return p
}

func defaultSource(src model.Source) model.Source {
	if src == "" {
		return model.SourceInternal
	}
	return src
}

func defaultDocType(t model.DocumentType) model.DocumentType {
	if t == "" {
		return model.DocTypeLetter
	}
	return t
}

func defaultDirection(d model.Direction) model.Direction {
	if d == "" {
		return model.DirectionUpward
	}
	return d
}

const referenceRetries = 3

// nextReference formats the registry reference for the nth correspondence
// registered by the given user.
func nextReference(username string, n int64) string {
	return fmt.Sprintf("NPA/REG/%s/%04d", strings.ToUpper(username), n)
}

// isDuplicateReference recognizes a unique-index violation on the generated
// reference number (postgres 23505 on the reference_number index).
func isDuplicateReference(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") && strings.Contains(msg, "reference_number")
}
