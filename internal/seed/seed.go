// Package seed loads the catalogs and a demo school into a repository set.
// It is used by cmd/seed, by STORE_DRIVER=memory with STORE_SEED=true, and by tests.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

// Demo account emails
const (
	AdminEmail   = "admin@grove.local"
	TeacherEmail = "teacher@grove.local"
	ParentEmail  = "parent@grove.local"
)

// Options control what gets seeded
type Options struct {
	SchoolName string
	Password   string
	// Unlock lists the modules unlocked for the demo school
	Unlock []string
	// SampleData adds a student, an alert, an event and fees
	SampleData bool
}

// DefaultOptions unlocks every module and loads sample data
func DefaultOptions() Options {
	return Options{
		SchoolName: "Grove Demo School",
		Password:   "grove-demo-pass",
		Unlock: []string{
			entities.ModuleAICopilot,
			entities.ModuleFinancials,
			entities.ModuleComplianceVault,
		},
		SampleData: true,
	}
}

// Demo is what Run created or found
type Demo struct {
	School  *entities.School
	Admin   *entities.User
	Teacher *entities.User
	Parent  *entities.User
	Student *entities.Student
}

// Pathways is the skill pathway catalog, one entry per focus area category
func Pathways() []entities.SkillPathway {
	return []entities.SkillPathway{
		{
			PathwayName:                  "Language Skills",
			ProblemCategory:              entities.CategoryLanguage,
			GoalDescription:              "Build vocabulary, sentence length and confidence speaking in a group.",
			ParentHomeActivitySuggestion: "Read a picture book together and ask your child to retell the story.",
		},
		{
			PathwayName:                  "Social & Emotional Skills",
			ProblemCategory:              entities.CategorySocial,
			GoalDescription:              "Practise sharing, turn-taking and naming feelings.",
			ParentHomeActivitySuggestion: "Play a short board game and talk about how winning and losing feel.",
		},
		{
			PathwayName:                  "Motor Skills",
			ProblemCategory:              entities.CategoryMotor,
			GoalDescription:              "Strengthen pencil grip, balance and hand-eye coordination.",
			ParentHomeActivitySuggestion: "Roll playdough snakes and cut them with child-safe scissors.",
		},
	}
}

// Modules is the Grove module catalog
func Modules() []entities.GroveModule {
	return []entities.GroveModule{
		{ID: entities.ModuleAICopilot, ModuleName: "AI Co-Pilot", Description: "Early warnings and highlights from classroom activity."},
		{ID: entities.ModuleFinancials, ModuleName: "Financial Management", Description: "Fees, payments and expenses."},
		{ID: entities.ModuleCurriculum, ModuleName: "Curriculum Planner", Description: "Plan weekly activities against skill pathways."},
		{ID: entities.ModuleCommunications, ModuleName: "Parent Communications", Description: "Announcements and messages to parents."},
		{ID: entities.ModuleComplianceVault, ModuleName: "Compliance Vault", Description: "Licences, certificates and inspection records."},
	}
}

// Run seeds the catalogs and the demo school. Running it twice reuses
// the existing accounts and catalog entries.
func Run(ctx context.Context, repos *repositories.Registry, opts Options, logger *zap.Logger) (*Demo, error) {
	if err := seedPathways(ctx, repos.Pathways); err != nil {
		return nil, err
	}
	if err := seedModules(ctx, repos.Modules); err != nil {
		return nil, err
	}

	demo := &Demo{}

	admin, err := repos.Users.FindByEmail(ctx, AdminEmail)
	switch {
	case err == nil:
		if admin.SchoolID == nil {
			return nil, fmt.Errorf("seed admin %s has no school", AdminEmail)
		}
		school, err := repos.Schools.FindByID(ctx, *admin.SchoolID)
		if err != nil {
			return nil, fmt.Errorf("failed to load demo school: %w", err)
		}
		demo.School, demo.Admin = school, admin
	case errors.Is(err, entities.ErrUserNotFound):
		demo.School = entities.NewSchool(opts.SchoolName)
		if err := repos.Schools.Create(ctx, demo.School); err != nil {
			return nil, err
		}
		if demo.Admin, err = ensureUser(ctx, repos.Users, AdminEmail, "Amara Admin", entities.RoleAdmin, &demo.School.ID, opts.Password); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	schoolID := demo.School.ID
	if demo.Teacher, err = ensureUser(ctx, repos.Users, TeacherEmail, "Tendai Teacher", entities.RoleTeacher, &schoolID, opts.Password); err != nil {
		return nil, err
	}
	if demo.Parent, err = ensureUser(ctx, repos.Users, ParentEmail, "Pendo Parent", entities.RoleParent, nil, opts.Password); err != nil {
		return nil, err
	}

	for _, id := range opts.Unlock {
		if err := repos.Modules.Unlock(ctx, schoolID, id); err != nil {
			return nil, fmt.Errorf("failed to unlock %s: %w", id, err)
		}
	}

	if opts.SampleData {
		if err := sampleData(ctx, repos, demo); err != nil {
			return nil, err
		}
	}

	if logger != nil {
		logger.Info("seed.completed",
			zap.String("school_id", schoolID.String()),
			zap.Strings("unlocked", opts.Unlock),
			zap.Bool("sample_data", opts.SampleData),
		)
	}
	return demo, nil
}

func ensureUser(ctx context.Context, users repositories.UserRepository, email, name string, role entities.Role, schoolID *uuid.UUID, password string) (*entities.User, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, err
	}

	u, err := entities.NewUser(email, name, role, schoolID, password)
	if err != nil {
		return nil, fmt.Errorf("invalid seed user %s: %w", email, err)
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func seedPathways(ctx context.Context, pathways repositories.PathwayRepository) error {
	existing, err := pathways.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range Pathways() {
		p := p
		if err := pathways.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed pathway %s: %w", p.PathwayName, err)
		}
	}
	return nil
}

func seedModules(ctx context.Context, modules repositories.ModuleRepository) error {
	for _, m := range Modules() {
		m := m
		if _, err := modules.FindByID(ctx, m.ID); err == nil {
			continue
		} else if !errors.Is(err, entities.ErrModuleNotFound) {
			return err
		}
		if err := modules.Create(ctx, &m); err != nil {
			return fmt.Errorf("failed to seed module %s: %w", m.ID, err)
		}
	}
	return nil
}

// sampleData fills the dashboards of a freshly created school
func sampleData(ctx context.Context, repos *repositories.Registry, demo *Demo) error {
	schoolID := demo.School.ID

	existing, err := repos.Students.ListByParent(ctx, demo.Parent.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		demo.Student = existing[0]
		return nil
	}

	dob := time.Date(2021, 6, 14, 0, 0, 0, 0, time.UTC)
	student := entities.NewStudent(schoolID, "Zuri Wanjiku", "female", "Sunflowers", &dob)
	student.ParentID = &demo.Parent.ID
	if err := repos.Students.Create(ctx, student); err != nil {
		return err
	}
	demo.Student = student

	alert, err := entities.NewAIAlert(schoolID, entities.AlertPositiveHighlight, map[string]interface{}{
		"student_name": student.ChildName,
		"highlight":    "Retold a full story to the class for the first time.",
	})
	if err != nil {
		return err
	}
	if err := repos.Alerts.Create(ctx, alert); err != nil {
		return err
	}

	start := time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Hour)
	end := start.Add(3 * time.Hour)
	if err := repos.Events.Create(ctx, &entities.SchoolEvent{
		SchoolID:  schoolID,
		Title:     "Parents' Open Day",
		StartTime: start,
		EndTime:   &end,
		Audience:  []string{entities.AudienceAll},
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	paidAt := time.Now().UTC()
	due := time.Now().UTC().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	for _, tx := range []*entities.FinancialTransaction{
		{SchoolID: schoolID, StudentID: &student.ID, TransactionType: entities.TransactionFee, Amount: 15000, Status: entities.TransactionPaid, PaidAt: &paidAt, Description: "Term 1 tuition"},
		{SchoolID: schoolID, StudentID: &student.ID, TransactionType: entities.TransactionFee, Amount: 15000, Status: entities.TransactionDue, DueDate: &due, Description: "Term 2 tuition"},
		{SchoolID: schoolID, TransactionType: entities.TransactionExpense, Amount: 4200, Status: entities.TransactionPaid, PaidAt: &paidAt, Description: "Art supplies"},
	} {
		tx.CreatedAt = time.Now().UTC()
		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}
