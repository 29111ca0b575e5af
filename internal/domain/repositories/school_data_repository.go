package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momsgrove/grove-api/internal/domain/entities"
)

// ModuleRepository defines the interface for module entitlements
type ModuleRepository interface {
	Create(ctx context.Context, module *entities.GroveModule) error
	FindByID(ctx context.Context, id string) (*entities.GroveModule, error)

	// List returns the catalog ordered by name
	List(ctx context.Context) ([]entities.GroveModule, error)

	// ListUnlocked returns the modules the school activated, ordered by name
	ListUnlocked(ctx context.Context, schoolID uuid.UUID) ([]entities.GroveModule, error)

	// Unlock activates a module for a school. Unlocking twice is not an error.
	Unlock(ctx context.Context, schoolID uuid.UUID, moduleID string) error
}

// AlertRepository defines the interface for Co-Pilot alerts
type AlertRepository interface {
	Create(ctx context.Context, alert *entities.AIAlert) error

	// ListActive returns non-dismissed alerts, newest first
	ListActive(ctx context.Context, schoolID uuid.UUID) ([]*entities.AIAlert, error)

	// UpdateStatus returns entities.ErrAlertNotFound when the alert is not in the school
	UpdateStatus(ctx context.Context, schoolID, alertID uuid.UUID, status entities.AlertStatus) (*entities.AIAlert, error)
}

// EventRepository defines the interface for calendar events
type EventRepository interface {
	Create(ctx context.Context, event *entities.SchoolEvent) error

	// ListBetween returns events starting in [start, end), ordered by start time
	ListBetween(ctx context.Context, schoolID uuid.UUID, start, end time.Time) ([]*entities.SchoolEvent, error)

	// ListFrom returns up to limit events starting at or after from
	ListFrom(ctx context.Context, schoolID uuid.UUID, from time.Time, limit int) ([]*entities.SchoolEvent, error)
}

// TransactionRepository defines the interface for financial transactions
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.FinancialTransaction) error

	// ListBySchool returns transactions newest first
	ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]*entities.FinancialTransaction, error)
}

// ComplianceRepository defines the interface for compliance records
type ComplianceRepository interface {
	Create(ctx context.Context, record *entities.ComplianceRecord) error

	// ListBySchool returns records ordered by expiry date, undated last
	ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]*entities.ComplianceRecord, error)
}
