package presenter

import (
	"encoding/json"

	enrollmentDTO "github.com/momsgrove/grove-api/internal/adapter/dto/enrollment"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/usecase/enrollment"
)

// ToSummaryResponse converts a Summary into its DTO. Lists are never nil.
func ToSummaryResponse(s entities.Summary) enrollmentDTO.SummaryResponse {
	s = s.Normalize()
	areas := make([]enrollmentDTO.FocusAreaResponse, len(s.FocusAreas))
	for i, fa := range s.FocusAreas {
		areas[i] = enrollmentDTO.FocusAreaResponse{Category: fa.Category, Reason: fa.Reason}
	}
	return enrollmentDTO.SummaryResponse{
		FocusAreas: areas,
		Strengths:  append([]string{}, s.Strengths...),
		Interests:  s.Interests,
	}
}

// ToProcessResponse converts a pipeline result
func ToProcessResponse(r *enrollment.Result) *enrollmentDTO.ProcessResponse {
	if r == nil {
		return nil
	}
	pathways := make([]enrollmentDTO.PathwayResponse, len(r.RecommendedPathways))
	for i, p := range r.RecommendedPathways {
		pathways[i] = enrollmentDTO.PathwayResponse{
			ID:              p.ID.String(),
			PathwayName:     p.PathwayName,
			ProblemCategory: p.ProblemCategory,
		}
	}
	return &enrollmentDTO.ProcessResponse{
		Summary:             ToSummaryResponse(r.Summary),
		RecommendedPathways: pathways,
	}
}

// ToEnrollResponse converts the ids created by an enrollment
func ToEnrollResponse(r *enrollment.EnrollResult) *enrollmentDTO.EnrollResponse {
	if r == nil {
		return nil
	}
	return &enrollmentDTO.EnrollResponse{
		AssessmentID: r.AssessmentID.String(),
		StudentID:    r.StudentID.String(),
	}
}

// ToAssessmentResponse converts a stored assessment. A summary that
// cannot be decoded is reported as absent.
func ToAssessmentResponse(a *entities.Assessment) *enrollmentDTO.AssessmentResponse {
	if a == nil {
		return nil
	}

	data := json.RawMessage(a.AssessmentData)
	if len(data) == 0 {
		data = json.RawMessage(`{}`)
	}

	response := &enrollmentDTO.AssessmentResponse{
		ID:              a.ID.String(),
		StudentID:       a.StudentID.String(),
		FacilitatorName: a.FacilitatorName,
		ChildName:       a.ChildName,
		Class:           a.Class,
		Gender:          a.Gender,
		DateOfBirth:     a.DateOfBirth,
		AssessmentData:  data,
		AIStatus:        string(a.AIStatus),
		SubmittedAt:     a.SubmittedAt,
		ProcessedAt:     a.ProcessedAt,
	}

	if s, err := a.Summary(); err == nil && s != nil {
		summary := ToSummaryResponse(*s)
		response.AISummary = &summary
	}

	return response
}
