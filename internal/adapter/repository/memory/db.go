// Package memory holds map-backed repositories used by tests and the
// STORE_DRIVER=memory development mode. All tables share one lock so
// multi-table writes commit together.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

// DB is the in-memory database
type DB struct {
	mu sync.RWMutex

	schools      map[uuid.UUID]entities.School
	users        map[uuid.UUID]entities.User
	students     map[uuid.UUID]entities.Student
	assessments  map[uuid.UUID]entities.Assessment
	pathways     map[uuid.UUID]entities.SkillPathway
	progress     map[uuid.UUID]entities.PathwayAssignment
	modules      map[string]entities.GroveModule
	unlocked     map[uuid.UUID]map[string]time.Time
	alerts       map[uuid.UUID]entities.AIAlert
	events       map[uuid.UUID]entities.SchoolEvent
	transactions map[uuid.UUID]entities.FinancialTransaction
	compliance   map[uuid.UUID]entities.ComplianceRecord
}

// NewDB creates an empty in-memory database
func NewDB() *DB {
	return &DB{
		schools:      make(map[uuid.UUID]entities.School),
		users:        make(map[uuid.UUID]entities.User),
		students:     make(map[uuid.UUID]entities.Student),
		assessments:  make(map[uuid.UUID]entities.Assessment),
		pathways:     make(map[uuid.UUID]entities.SkillPathway),
		progress:     make(map[uuid.UUID]entities.PathwayAssignment),
		modules:      make(map[string]entities.GroveModule),
		unlocked:     make(map[uuid.UUID]map[string]time.Time),
		alerts:       make(map[uuid.UUID]entities.AIAlert),
		events:       make(map[uuid.UUID]entities.SchoolEvent),
		transactions: make(map[uuid.UUID]entities.FinancialTransaction),
		compliance:   make(map[uuid.UUID]entities.ComplianceRecord),
	}
}

// NewRegistry wires every repository to db
func NewRegistry(db *DB) *repositories.Registry {
	return &repositories.Registry{
		Schools:      &schoolRepository{db: db},
		Users:        &userRepository{db: db},
		Students:     &studentRepository{db: db},
		Enrollments:  &enrollmentRepository{db: db},
		Pathways:     &pathwayRepository{db: db},
		Modules:      &moduleRepository{db: db},
		Alerts:       &alertRepository{db: db},
		Events:       &eventRepository{db: db},
		Transactions: &transactionRepository{db: db},
		Compliance:   &complianceRepository{db: db},
	}
}

// PathwayAssignments returns a snapshot of every stored assignment
func (db *DB) PathwayAssignments() []entities.PathwayAssignment {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]entities.PathwayAssignment, 0, len(db.progress))
	for _, pa := range db.progress {
		out = append(out, pa)
	}
	return out
}

func cloneJSON(j datatypes.JSON) datatypes.JSON {
	if j == nil {
		return nil
	}
	out := make(datatypes.JSON, len(j))
	copy(out, j)
	return out
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
