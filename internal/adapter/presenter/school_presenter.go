package presenter

import (
	"encoding/json"

	calendarDTO "github.com/momsgrove/grove-api/internal/adapter/dto/calendar"
	complianceDTO "github.com/momsgrove/grove-api/internal/adapter/dto/compliance"
	copilotDTO "github.com/momsgrove/grove-api/internal/adapter/dto/copilot"
	curriculumDTO "github.com/momsgrove/grove-api/internal/adapter/dto/curriculum"
	financeDTO "github.com/momsgrove/grove-api/internal/adapter/dto/finance"
	moduleDTO "github.com/momsgrove/grove-api/internal/adapter/dto/module"
	studentDTO "github.com/momsgrove/grove-api/internal/adapter/dto/student"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/usecase/compliance"
	"github.com/momsgrove/grove-api/internal/usecase/finance"
	"github.com/momsgrove/grove-api/internal/usecase/student"
)

// ToStudentResponse converts a Student entity
func ToStudentResponse(s *entities.Student) studentDTO.StudentResponse {
	r := studentDTO.StudentResponse{
		ID:             s.ID.String(),
		ChildName:      s.ChildName,
		Class:          s.Class,
		Gender:         s.Gender,
		DateOfBirth:    s.DateOfBirth,
		Status:         string(s.Status),
		EnrollmentDate: s.EnrollmentDate,
	}
	if s.ParentID != nil {
		r.ParentID = s.ParentID.String()
	}
	return r
}

// ToStudentList converts a slice of students
func ToStudentList(students []*entities.Student) []studentDTO.StudentResponse {
	out := make([]studentDTO.StudentResponse, len(students))
	for i, s := range students {
		out[i] = ToStudentResponse(s)
	}
	return out
}

// ToStudentDetailResponse converts a student with their pathway progress
func ToStudentDetailResponse(d *student.Detail) *studentDTO.StudentDetailResponse {
	if d == nil || d.Student == nil {
		return nil
	}
	progress := make([]studentDTO.ProgressResponse, len(d.Progress))
	for i, p := range d.Progress {
		progress[i] = studentDTO.ProgressResponse{
			PathwayID:       p.PathwayID.String(),
			PathwayName:     p.PathwayName,
			ProblemCategory: p.ProblemCategory,
			CurrentStep:     p.CurrentStep,
			Status:          string(p.Status),
			StartedAt:       p.StartedAt,
		}
	}
	return &studentDTO.StudentDetailResponse{
		StudentResponse: ToStudentResponse(d.Student),
		Pathways:        progress,
	}
}

// ToTeacherList converts teacher accounts
func ToTeacherList(users []*entities.User) []studentDTO.TeacherResponse {
	out := make([]studentDTO.TeacherResponse, len(users))
	for i, u := range users {
		out[i] = studentDTO.TeacherResponse{ID: u.ID.String(), Name: u.Name, Email: u.Email}
	}
	return out
}

// ToPathwayList converts the skill pathway catalog
func ToPathwayList(pathways []entities.SkillPathway) []studentDTO.PathwayResponse {
	out := make([]studentDTO.PathwayResponse, len(pathways))
	for i, p := range pathways {
		out[i] = studentDTO.PathwayResponse{
			ID:                           p.ID.String(),
			PathwayName:                  p.PathwayName,
			ProblemCategory:              p.ProblemCategory,
			GoalDescription:              p.GoalDescription,
			ParentHomeActivitySuggestion: p.ParentHomeActivitySuggestion,
		}
	}
	return out
}

// ToModuleList converts module catalog entries
func ToModuleList(modules []entities.GroveModule) []moduleDTO.ModuleResponse {
	out := make([]moduleDTO.ModuleResponse, len(modules))
	for i, m := range modules {
		out[i] = moduleDTO.ModuleResponse{ID: m.ID, ModuleName: m.ModuleName, Description: m.Description}
	}
	return out
}

// ToAlertResponse converts an alert, deriving its title from the details
func ToAlertResponse(a *entities.AIAlert) copilotDTO.AlertResponse {
	details := map[string]interface{}{}
	if len(a.Details) > 0 {
		_ = json.Unmarshal(a.Details, &details)
	}
	return copilotDTO.AlertResponse{
		ID:          a.ID.String(),
		AlertType:   string(a.AlertType),
		Title:       a.Title(),
		Description: a.Description(),
		Details:     details,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
	}
}

// ToAlertList converts the Co-Pilot feed
func ToAlertList(alerts []*entities.AIAlert) []copilotDTO.AlertResponse {
	out := make([]copilotDTO.AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = ToAlertResponse(a)
	}
	return out
}

// ToEventResponse converts a calendar event
func ToEventResponse(e *entities.SchoolEvent) calendarDTO.EventResponse {
	return calendarDTO.EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Audience:    append([]string{}, e.Audience...),
	}
}

// ToEventList converts calendar events
func ToEventList(events []*entities.SchoolEvent) []calendarDTO.EventResponse {
	out := make([]calendarDTO.EventResponse, len(events))
	for i, e := range events {
		out[i] = ToEventResponse(e)
	}
	return out
}

// ToTransactionResponse converts a financial transaction
func ToTransactionResponse(t *entities.FinancialTransaction) financeDTO.TransactionResponse {
	r := financeDTO.TransactionResponse{
		ID:              t.ID.String(),
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		Status:          string(t.Status),
		DueDate:         t.DueDate,
		PaidAt:          t.PaidAt,
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
	}
	if t.StudentID != nil {
		r.StudentID = t.StudentID.String()
	}
	return r
}

// ToTransactionList converts transactions
func ToTransactionList(txs []*entities.FinancialTransaction) []financeDTO.TransactionResponse {
	out := make([]financeDTO.TransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

// ToFinanceSummaryResponse converts the finance rollup
func ToFinanceSummaryResponse(s *finance.Summary) *financeDTO.SummaryResponse {
	if s == nil {
		return nil
	}
	students := make([]financeDTO.StudentBalanceResponse, len(s.Students))
	for i, b := range s.Students {
		students[i] = financeDTO.StudentBalanceResponse{
			StudentID:    b.StudentID.String(),
			ChildName:    b.ChildName,
			TotalFees:    b.TotalFees,
			TotalPaid:    b.TotalPaid,
			TotalDue:     b.TotalDue,
			TotalOverdue: b.TotalOverdue,
		}
	}
	return &financeDTO.SummaryResponse{
		Students: students,
		Totals: financeDTO.TotalsResponse{
			FeesCollected: s.Totals.FeesCollected,
			Outstanding:   s.Totals.Outstanding,
			Overdue:       s.Totals.Overdue,
			Expenses:      s.Totals.Expenses,
		},
	}
}

// ToRecordResponse converts a decorated compliance record
func ToRecordResponse(v compliance.RecordView) complianceDTO.RecordResponse {
	return complianceDTO.RecordResponse{
		ID:              v.Record.ID.String(),
		RecordType:      v.Record.RecordType,
		Status:          string(v.Record.Status),
		ExpiryDate:      v.Record.ExpiryDate,
		Expired:         v.Expired,
		ExpiringSoon:    v.ExpiringSoon,
		DaysUntilExpiry: v.DaysUntilExpiry,
		ContentType:     v.Record.ContentType,
		DocumentURL:     v.DocumentURL,
		CreatedAt:       v.Record.CreatedAt,
	}
}

// ToRecordList converts compliance records
func ToRecordList(views []compliance.RecordView) []complianceDTO.RecordResponse {
	out := make([]complianceDTO.RecordResponse, len(views))
	for i, v := range views {
		out[i] = ToRecordResponse(v)
	}
	return out
}

// ToPriorityActionList converts planner rows
func ToPriorityActionList(items []entities.PriorityActionItem) []curriculumDTO.PriorityActionResponse {
	out := make([]curriculumDTO.PriorityActionResponse, len(items))
	for i, it := range items {
		out[i] = curriculumDTO.PriorityActionResponse{
			AssignmentID:    it.AssignmentID.String(),
			StudentID:       it.StudentID.String(),
			ChildName:       it.ChildName,
			Class:           it.Class,
			PathwayID:       it.PathwayID.String(),
			PathwayName:     it.PathwayName,
			ProblemCategory: it.ProblemCategory,
			GoalDescription: it.GoalDescription,
			StepLevel:       it.CurrentStep,
			Status:          string(it.Status),
		}
	}
	return out
}

// ToProgressList converts updated assignments
func ToProgressList(assignments []entities.PathwayAssignment) []curriculumDTO.ProgressResponse {
	out := make([]curriculumDTO.ProgressResponse, len(assignments))
	for i, pa := range assignments {
		out[i] = curriculumDTO.ProgressResponse{
			ID:          pa.ID.String(),
			StudentID:   pa.StudentID.String(),
			PathwayID:   pa.PathwayID.String(),
			CurrentStep: pa.CurrentStep,
			Status:      string(pa.Status),
		}
	}
	return out
}
