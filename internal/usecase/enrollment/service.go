package enrollment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
	"github.com/momsgrove/grove-api/pkg/jobcontext"
)

const runKind = "enrollment.process"

// Service defines enrollment intake methods
type Service interface {
	// Enroll stores a new student together with a pending assessment
	Enroll(ctx context.Context, schoolID uuid.UUID, input EnrollInput) (*EnrollResult, error)

	// Process runs the intake pipeline for one assessment. A nil schoolID
	// skips the ownership check.
	Process(ctx context.Context, schoolID, assessmentID uuid.UUID) (*Result, error)

	// Get returns a stored assessment of the school
	Get(ctx context.Context, schoolID, assessmentID uuid.UUID) (*entities.Assessment, error)
}

// EnrollInput is the enrollment form content
type EnrollInput struct {
	FacilitatorName string
	ChildName       string
	DateOfBirth     *time.Time
	Gender          string
	Class           string
	ParentID        *uuid.UUID
	AssessmentData  json.RawMessage
}

// EnrollResult identifies the created records
type EnrollResult struct {
	AssessmentID uuid.UUID
	StudentID    uuid.UUID
}

// Result is the pipeline output returned to the caller
type Result struct {
	Summary             entities.Summary
	RecommendedPathways []entities.SkillPathway
}

type enrollmentService struct {
	repo       repositories.EnrollmentRepository
	matcher    *Matcher
	summarizer Summarizer
	logger     *zap.Logger
}

// NewService constructs the enrollment service
func NewService(
	repo repositories.EnrollmentRepository,
	pathways repositories.PathwayRepository,
	summarizer Summarizer,
	logger *zap.Logger,
) Service {
	if summarizer == nil {
		summarizer = NewRuleSummarizer()
	}
	return &enrollmentService{
		repo:       repo,
		matcher:    NewMatcher(pathways),
		summarizer: summarizer,
		logger:     logger,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, schoolID uuid.UUID, input EnrollInput) (*EnrollResult, error) {
	if strings.TrimSpace(input.ChildName) == "" {
		return nil, fmt.Errorf("%w: child name is required", entities.ErrInvalidEnrollment)
	}

	answers := input.AssessmentData
	if len(answers) == 0 {
		answers = json.RawMessage(`{}`)
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(answers, &probe); err != nil {
		return nil, fmt.Errorf("%w: assessment_data must be a JSON object", entities.ErrInvalidEnrollment)
	}

	student := entities.NewStudent(schoolID, input.ChildName, input.Gender, input.Class, input.DateOfBirth)
	student.ParentID = input.ParentID
	assessment := entities.NewAssessment(student, input.FacilitatorName, answers)

	if err := s.repo.CreateEnrollment(ctx, student, assessment); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrEnrollmentNotCreated, err)
	}

	if s.logger != nil {
		s.logger.Info("enrollment.created",
			zap.String("assessment_id", assessment.ID.String()),
			zap.String("student_id", student.ID.String()),
			zap.String("school_id", schoolID.String()),
		)
	}

	return &EnrollResult{AssessmentID: assessment.ID, StudentID: student.ID}, nil
}

func (s *enrollmentService) Get(ctx context.Context, schoolID, assessmentID uuid.UUID) (*entities.Assessment, error) {
	if assessmentID == uuid.Nil {
		return nil, entities.ErrMissingAssessmentID
	}
	return s.fetch(ctx, schoolID, assessmentID)
}

func (s *enrollmentService) Process(ctx context.Context, schoolID, assessmentID uuid.UUID) (*Result, error) {
	if assessmentID == uuid.Nil {
		return nil, entities.ErrMissingAssessmentID
	}

	ctx = jobcontext.RunBegin(ctx, runKind, assessmentID)
	s.logStage(ctx, "enrollment.process.started")

	// Fetch
	assessment, err := s.fetch(ctx, schoolID, assessmentID)
	if err != nil {
		s.logFailure(ctx, "fetch", err)
		return nil, err
	}

	// Summarize
	summary, err := s.summarizer.Summarize(ctx, assessment.Answers())
	if err != nil {
		s.logFailure(ctx, "summarize", err)
		return nil, err
	}
	summary = summary.Normalize()
	s.logStage(ctx, "enrollment.process.summarized",
		zap.Int("focus_areas", len(summary.FocusAreas)),
		zap.Int("strengths", len(summary.Strengths)),
	)

	// Match
	pathways, err := s.matcher.Match(ctx, summary.FocusAreas)
	if err != nil {
		s.logFailure(ctx, "match", err)
		return nil, err
	}
	s.logStage(ctx, "enrollment.process.matched", zap.Int("pathways", len(pathways)))

	// Persist & assign
	assignments := make([]entities.PathwayAssignment, 0, len(pathways))
	for _, p := range pathways {
		assignments = append(assignments, entities.NewPathwayAssignment(assessment.StudentID, p.ID))
	}
	if err := s.repo.AssignPathways(ctx, assessment.ID, summary, assignments); err != nil {
		err = fmt.Errorf("%w: %w", entities.ErrPersistFailed, err)
		s.logFailure(ctx, "persist", err)
		return nil, err
	}

	s.logStage(ctx, "enrollment.process.completed", zap.Int("assignments", len(assignments)))

	return &Result{Summary: summary, RecommendedPathways: pathways}, nil
}

func (s *enrollmentService) fetch(ctx context.Context, schoolID, assessmentID uuid.UUID) (*entities.Assessment, error) {
	assessment, err := s.repo.FindAssessmentByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, entities.ErrAssessmentNotFound) {
			return nil, entities.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch assessment: %w", err)
	}
	if schoolID != uuid.Nil && assessment.SchoolID != schoolID {
		return nil, entities.ErrAssessmentNotFound
	}
	return assessment, nil
}

func (s *enrollmentService) logStage(ctx context.Context, msg string, fields ...zap.Field) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg, append(jobcontext.Fields(ctx), fields...)...)
}

func (s *enrollmentService) logFailure(ctx context.Context, stage string, err error) {
	if s.logger == nil {
		return
	}
	fields := append(jobcontext.Fields(ctx), zap.String("stage", stage), zap.Error(err))
	s.logger.Warn("enrollment.process.failed", fields...)
}
