package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/momsgrove/grove-api/internal/domain/entities"
)

type moduleRepository struct {
	db *DB
}

func (r *moduleRepository) Create(ctx context.Context, module *entities.GroveModule) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.modules[module.ID] = *module
	return nil
}

func (r *moduleRepository) FindByID(ctx context.Context, id string) (*entities.GroveModule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	m, ok := r.db.modules[id]
	if !ok {
		return nil, entities.ErrModuleNotFound
	}
	return &m, nil
}

func (r *moduleRepository) List(ctx context.Context) ([]entities.GroveModule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]entities.GroveModule, 0, len(r.db.modules))
	for _, m := range r.db.modules {
		out = append(out, m)
	}
	sortModules(out)
	return out, nil
}

func (r *moduleRepository) ListUnlocked(ctx context.Context, schoolID uuid.UUID) ([]entities.GroveModule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]entities.GroveModule, 0)
	for id := range r.db.unlocked[schoolID] {
		if m, ok := r.db.modules[id]; ok {
			out = append(out, m)
		}
	}
	sortModules(out)
	return out, nil
}

func (r *moduleRepository) Unlock(ctx context.Context, schoolID uuid.UUID, moduleID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.modules[moduleID]; !ok {
		return entities.ErrModuleNotFound
	}
	set, ok := r.db.unlocked[schoolID]
	if !ok {
		set = make(map[string]time.Time)
		r.db.unlocked[schoolID] = set
	}
	if _, done := set[moduleID]; !done {
		set[moduleID] = time.Now().UTC()
	}
	return nil
}

func sortModules(ms []entities.GroveModule) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].ModuleName < ms[j].ModuleName })
}

type alertRepository struct {
	db *DB
}

func (r *alertRepository) Create(ctx context.Context, alert *entities.AIAlert) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	stored := *alert
	stored.Details = cloneJSON(alert.Details)
	r.db.alerts[alert.ID] = stored
	return nil
}

func (r *alertRepository) ListActive(ctx context.Context, schoolID uuid.UUID) ([]*entities.AIAlert, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entities.AIAlert, 0)
	for _, a := range r.db.alerts {
		if a.SchoolID != schoolID || a.Status == entities.AlertStatusDismissed {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *alertRepository) UpdateStatus(ctx context.Context, schoolID, alertID uuid.UUID, status entities.AlertStatus) (*entities.AIAlert, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	a, ok := r.db.alerts[alertID]
	if !ok || a.SchoolID != schoolID {
		return nil, entities.ErrAlertNotFound
	}
	a.Status = status
	r.db.alerts[alertID] = a
	return &a, nil
}

type eventRepository struct {
	db *DB
}

func (r *eventRepository) Create(ctx context.Context, event *entities.SchoolEvent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	stored := *event
	stored.Audience = append(stored.Audience[:0:0], event.Audience...)
	r.db.events[event.ID] = stored
	return nil
}

func (r *eventRepository) ListBetween(ctx context.Context, schoolID uuid.UUID, start, end time.Time) ([]*entities.SchoolEvent, error) {
	return r.filter(schoolID, func(e entities.SchoolEvent) bool {
		return !e.StartTime.Before(start) && e.StartTime.Before(end)
	}, 0), nil
}

func (r *eventRepository) ListFrom(ctx context.Context, schoolID uuid.UUID, from time.Time, limit int) ([]*entities.SchoolEvent, error) {
	return r.filter(schoolID, func(e entities.SchoolEvent) bool {
		return !e.StartTime.Before(from)
	}, limit), nil
}

func (r *eventRepository) filter(schoolID uuid.UUID, keep func(entities.SchoolEvent) bool, limit int) []*entities.SchoolEvent {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entities.SchoolEvent, 0)
	for _, e := range r.db.events {
		if e.SchoolID != schoolID || !keep(e) {
			continue
		}
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type transactionRepository struct {
	db *DB
}

func (r *transactionRepository) Create(ctx context.Context, tx *entities.FinancialTransaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	stored := *tx
	stored.StudentID = cloneID(tx.StudentID)
	r.db.transactions[tx.ID] = stored
	return nil
}

func (r *transactionRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]*entities.FinancialTransaction, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entities.FinancialTransaction, 0)
	for _, t := range r.db.transactions {
		if t.SchoolID != schoolID {
			continue
		}
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type complianceRepository struct {
	db *DB
}

func (r *complianceRepository) Create(ctx context.Context, record *entities.ComplianceRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.db.compliance[record.ID] = *record
	return nil
}

func (r *complianceRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]*entities.ComplianceRecord, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entities.ComplianceRecord, 0)
	for _, c := range r.db.compliance {
		if c.SchoolID != schoolID {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].ExpiryDate, out[j].ExpiryDate
		switch {
		case a == nil && b == nil:
			return out[i].RecordType < out[j].RecordType
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
	return out, nil
}
