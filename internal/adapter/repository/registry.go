package repository

import (
	"gorm.io/gorm"

	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

// NewRegistry wires every GORM repository to db
func NewRegistry(db *gorm.DB) *repositories.Registry {
	return &repositories.Registry{
		Schools:      NewSchoolRepository(db),
		Users:        NewUserRepository(db),
		Students:     NewStudentRepository(db),
		Enrollments:  NewEnrollmentRepository(db),
		Pathways:     NewPathwayRepository(db),
		Modules:      NewModuleRepository(db),
		Alerts:       NewAlertRepository(db),
		Events:       NewEventRepository(db),
		Transactions: NewTransactionRepository(db),
		Compliance:   NewComplianceRepository(db),
	}
}
