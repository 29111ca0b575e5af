package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momsgrove/grove-api/internal/domain/entities"
)

// ModuleRepository implements the module repository interface using GORM
type ModuleRepository struct {
	db *gorm.DB
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// Create upserts a catalog module
func (r *ModuleRepository) Create(ctx context.Context, module *entities.GroveModule) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(module).Error; err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}
	return nil
}

// FindByID finds a module by ID
func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*entities.GroveModule, error) {
	var module entities.GroveModule
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to find module: %w", err)
	}
	return &module, nil
}

// List returns the module catalog
func (r *ModuleRepository) List(ctx context.Context) ([]entities.GroveModule, error) {
	var modules []entities.GroveModule
	if err := r.db.WithContext(ctx).Order("module_name ASC").Find(&modules).Error; err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}

// ListUnlocked returns the modules a school activated
func (r *ModuleRepository) ListUnlocked(ctx context.Context, schoolID uuid.UUID) ([]entities.GroveModule, error) {
	var modules []entities.GroveModule
	if err := r.db.WithContext(ctx).
		Joins("JOIN school_unlocked_modules sm ON sm.module_id = modules.id").
		Where("sm.school_id = ?", schoolID).
		Order("modules.module_name ASC").
		Find(&modules).Error; err != nil {
		return nil, fmt.Errorf("failed to list unlocked modules: %w", err)
	}
	return modules, nil
}

// Unlock activates a module; an existing unlock is left untouched
func (r *ModuleRepository) Unlock(ctx context.Context, schoolID uuid.UUID, moduleID string) error {
	if _, err := r.FindByID(ctx, moduleID); err != nil {
		return err
	}

	row := entities.SchoolUnlockedModule{
		SchoolID:   schoolID,
		ModuleID:   moduleID,
		UnlockedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error; err != nil {
		return fmt.Errorf("failed to unlock module: %w", err)
	}
	return nil
}

// AlertRepository implements the alert repository interface using GORM
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create creates an alert
func (r *AlertRepository) Create(ctx context.Context, alert *entities.AIAlert) error {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// ListActive lists alerts that were not dismissed
func (r *AlertRepository) ListActive(ctx context.Context, schoolID uuid.UUID) ([]*entities.AIAlert, error) {
	var alerts []*entities.AIAlert
	if err := r.db.WithContext(ctx).
		Where("school_id = ? AND status <> ?", schoolID, entities.AlertStatusDismissed).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// UpdateStatus changes the status of an alert in the school
func (r *AlertRepository) UpdateStatus(ctx context.Context, schoolID, alertID uuid.UUID, status entities.AlertStatus) (*entities.AIAlert, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.AIAlert{}).
		Where("id = ? AND school_id = ?", alertID, schoolID).
		Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update alert status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, entities.ErrAlertNotFound
	}

	var alert entities.AIAlert
	if err := r.db.WithContext(ctx).Where("id = ?", alertID).First(&alert).Error; err != nil {
		return nil, fmt.Errorf("failed to reload alert: %w", err)
	}
	return &alert, nil
}

// EventRepository implements the event repository interface using GORM
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates an event
func (r *EventRepository) Create(ctx context.Context, event *entities.SchoolEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// ListBetween lists events starting in [start, end)
func (r *EventRepository) ListBetween(ctx context.Context, schoolID uuid.UUID, start, end time.Time) ([]*entities.SchoolEvent, error) {
	var events []*entities.SchoolEvent
	if err := r.db.WithContext(ctx).
		Where("school_id = ? AND start_time >= ? AND start_time < ?", schoolID, start, end).
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListFrom lists events starting at or after from
func (r *EventRepository) ListFrom(ctx context.Context, schoolID uuid.UUID, from time.Time, limit int) ([]*entities.SchoolEvent, error) {
	query := r.db.WithContext(ctx).
		Where("school_id = ? AND start_time >= ?", schoolID, from).
		Order("start_time ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var events []*entities.SchoolEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

// TransactionRepository implements the transaction repository interface using GORM
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.FinancialTransaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListBySchool lists transactions newest first
func (r *TransactionRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]*entities.FinancialTransaction, error) {
	var txs []*entities.FinancialTransaction
	if err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// ComplianceRepository implements the compliance repository interface using GORM
type ComplianceRepository struct {
	db *gorm.DB
}

// NewComplianceRepository creates a new compliance repository
func NewComplianceRepository(db *gorm.DB) *ComplianceRepository {
	return &ComplianceRepository{db: db}
}

// Create creates a compliance record
func (r *ComplianceRepository) Create(ctx context.Context, record *entities.ComplianceRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create compliance record: %w", err)
	}
	return nil
}

// ListBySchool lists records by expiry date
func (r *ComplianceRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]*entities.ComplianceRecord, error) {
	var records []*entities.ComplianceRecord
	if err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("expiry_date ASC NULLS LAST").
		Order("record_type ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list compliance records: %w", err)
	}
	return records, nil
}
