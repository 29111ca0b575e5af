package compliance

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
	"github.com/momsgrove/grove-api/internal/infrastructure/storage"
)

// Service manages compliance records and their documents
type Service struct {
	records       repositories.ComplianceRepository
	objects       storage.ObjectStore
	presignExpiry time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewService creates a new compliance service
func NewService(
	records repositories.ComplianceRepository,
	objects storage.ObjectStore,
	presignExpiry time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		records:       records,
		objects:       objects,
		presignExpiry: presignExpiry,
		logger:        logger,
		now:           time.Now,
	}
}

// RecordView is a record decorated for the dashboard
type RecordView struct {
	Record          *entities.ComplianceRecord
	Expired         bool
	ExpiringSoon    bool
	DaysUntilExpiry *int
	DocumentURL     string
}

// Document is an uploaded file
type Document struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateInput is a new compliance record with an optional document
type CreateInput struct {
	RecordType string
	Status     entities.ComplianceStatus
	ExpiryDate *time.Time
	Document   *Document
}

// List returns the school's records ordered by expiry with expiry flags
// and a download link for attached documents
func (s *Service) List(ctx context.Context, schoolID uuid.UUID) ([]RecordView, error) {
	records, err := s.records.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance records: %w", err)
	}

	now := s.now().UTC()
	out := make([]RecordView, 0, len(records))
	for _, r := range records {
		view := RecordView{
			Record:       r,
			Expired:      r.IsExpired(now),
			ExpiringSoon: r.IsExpiringSoon(now),
		}
		if days, ok := r.DaysUntilExpiry(now); ok {
			view.DaysUntilExpiry = &days
		}

		if r.HasDocument() && s.objects != nil {
			link, err := s.objects.PresignedURL(ctx, *r.ObjectKey, s.presignExpiry)
			if err != nil {
				// a broken link should not hide the record
				if s.logger != nil {
					s.logger.Warn("compliance.document.presign_failed",
						zap.String("record_id", r.ID.String()),
						zap.Error(err),
					)
				}
			} else {
				view.DocumentURL = link
			}
		}
		out = append(out, view)
	}
	return out, nil
}

// Create stores a record, uploading its document first when one is given
func (s *Service) Create(ctx context.Context, schoolID uuid.UUID, input CreateInput) (*RecordView, error) {
	recordType := strings.TrimSpace(input.RecordType)
	if recordType == "" {
		return nil, fmt.Errorf("%w: record_type is required", entities.ErrInvalidRequest)
	}
	if !input.Status.IsValid() {
		return nil, entities.ErrInvalidComplianceStatus
	}

	record := &entities.ComplianceRecord{
		ID:         uuid.New(),
		SchoolID:   schoolID,
		RecordType: recordType,
		Status:     input.Status,
		ExpiryDate: input.ExpiryDate,
		CreatedAt:  s.now().UTC(),
	}

	if doc := input.Document; doc != nil {
		if s.objects == nil {
			return nil, fmt.Errorf("%w: storage is not configured", entities.ErrDocumentUpload)
		}
		key := ObjectKey(schoolID, record.ID, doc.Filename)
		contentType := doc.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if err := s.objects.Upload(ctx, key, doc.Body, doc.Size, contentType); err != nil {
			return nil, fmt.Errorf("%w: %w", entities.ErrDocumentUpload, err)
		}
		record.ObjectKey = &key
		record.ContentType = contentType
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create compliance record: %w", err)
	}

	now := s.now().UTC()
	view := &RecordView{
		Record:       record,
		Expired:      record.IsExpired(now),
		ExpiringSoon: record.IsExpiringSoon(now),
	}
	if days, ok := record.DaysUntilExpiry(now); ok {
		view.DaysUntilExpiry = &days
	}
	return view, nil
}

// ObjectKey builds compliance/<school>/<record>/<filename>
func ObjectKey(schoolID, recordID uuid.UUID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "document"
	}
	return fmt.Sprintf("compliance/%s/%s/%s", schoolID, recordID, name)
}
