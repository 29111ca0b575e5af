package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momsgrove/grove-api/internal/adapter/repository/memory"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
	"github.com/momsgrove/grove-api/internal/infrastructure/cache"
	"github.com/momsgrove/grove-api/internal/infrastructure/http/middleware"
	"github.com/momsgrove/grove-api/internal/infrastructure/storage"
	"github.com/momsgrove/grove-api/internal/seed"
	"github.com/momsgrove/grove-api/internal/usecase/auth"
	"github.com/momsgrove/grove-api/internal/usecase/calendar"
	"github.com/momsgrove/grove-api/internal/usecase/compliance"
	"github.com/momsgrove/grove-api/internal/usecase/copilot"
	"github.com/momsgrove/grove-api/internal/usecase/curriculum"
	"github.com/momsgrove/grove-api/internal/usecase/enrollment"
	"github.com/momsgrove/grove-api/internal/usecase/entitlement"
	"github.com/momsgrove/grove-api/internal/usecase/finance"
	"github.com/momsgrove/grove-api/internal/usecase/student"
	"github.com/momsgrove/grove-api/pkg/config"
	"github.com/momsgrove/grove-api/pkg/jwt"
	"github.com/momsgrove/grove-api/pkg/validator"
)

type testServer struct {
	e       *echo.Echo
	repos   *repositories.Registry
	demo    *seed.Demo
	objects *storage.MemoryStore
}

// newTestServer wires the full router against the in-memory store. The demo
// school has ai_copilot and compliance unlocked but not financials.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	repos := memory.NewRegistry(memory.NewDB())
	opts := seed.DefaultOptions()
	opts.Unlock = []string{entities.ModuleAICopilot, entities.ModuleComplianceVault}
	demo, err := seed.Run(ctx, repos, opts, nil)
	require.NoError(t, err)

	store := cache.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	entitlements := entitlement.NewService(repos.Modules, store, nil)
	authService := auth.NewService(repos.Users, entitlements, jwt.NewManager("test-secret", time.Hour, "grove-test"), nil)
	objects := storage.NewMemoryStore("http://files.test/files")

	handlers := Handlers{
		Auth:       NewAuth(authService, nil, false),
		Enrollment: NewEnrollmentHandler(enrollment.NewService(repos.Enrollments, repos.Pathways, nil, nil), nil),
		Student:    NewStudentHandler(student.NewService(repos.Students, repos.Pathways, repos.Users), nil),
		Module:     NewModuleHandler(entitlements, nil),
		CoPilot:    NewCoPilotHandler(copilot.NewService(repos.Alerts, nil), nil),
		Calendar:   NewCalendarHandler(calendar.NewService(repos.Events, repos.Students), nil),
		Finance:    NewFinanceHandler(finance.NewService(repos.Transactions, repos.Students), nil),
		Compliance: NewComplianceHandler(compliance.NewService(repos.Compliance, objects, 15*time.Minute, nil), nil),
		Curriculum: NewCurriculumHandler(curriculum.NewService(repos.Pathways, repos.Students, nil), nil),
		Files:      NewFilesHandler(objects, nil),
	}

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(nil)

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Store.Driver = config.StoreMemory
	NewRouter(cfg, handlers, middleware.EchoAuth(authService)).Setup(e)

	return &testServer{e: e, repos: repos, demo: demo, objects: objects}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": seed.DefaultOptions().Password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(t, rec, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var env struct {
		Code string          `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.Equal(t, "OK", env.Code)
	require.NoError(t, json.Unmarshal(env.Data, v))
}

type errorBody struct {
	Code    string            `json:"code"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","environment":"test","store":"memory"}`, rec.Body.String())
}

func TestLoginAndMe(t *testing.T) {
	s := newTestServer(t)

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"email": seed.AdminEmail, "password": "not-the-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "AUTH_INVALID_CREDENTIALS", decodeError(t, rec).Code)
	})

	t.Run("validation", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "nope"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "INVALID_ARGUMENT", body.Code)
		assert.Equal(t, "must be a valid email address", body.Details["email"])
		assert.Equal(t, "is required", body.Details["password"])
	})

	t.Run("me", func(t *testing.T) {
		token := s.login(t, seed.AdminEmail)
		rec := s.do(t, http.MethodGet, "/v1/auth/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var me struct {
			DashboardPath   string   `json:"dashboard_path"`
			UnlockedModules []string `json:"unlocked_modules"`
			Profile         struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"profile"`
		}
		decodeData(t, rec, &me)
		assert.Equal(t, "/admin/dashboard", me.DashboardPath)
		assert.Equal(t, seed.AdminEmail, me.Profile.Email)
		assert.Equal(t, "admin", me.Profile.Role)
		assert.ElementsMatch(t, []string{entities.ModuleAICopilot, entities.ModuleComplianceVault}, me.UnlockedModules)
	})

	t.Run("parent lands on parent dashboard", func(t *testing.T) {
		token := s.login(t, seed.ParentEmail)
		rec := s.do(t, http.MethodGet, "/v1/auth/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var me struct {
			DashboardPath   string   `json:"dashboard_path"`
			UnlockedModules []string `json:"unlocked_modules"`
		}
		decodeData(t, rec, &me)
		assert.Equal(t, "/parent/dashboard", me.DashboardPath)
		assert.Empty(t, me.UnlockedModules)
	})

	t.Run("no token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHENTICATED", decodeError(t, rec).Code)
	})
}

func TestEnrollAndProcess(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, seed.AdminEmail)

	rec := s.do(t, http.MethodPost, "/v1/enrollments", token, map[string]interface{}{
		"facilitator_name": "Ms. Achieng",
		"child_name":       "Baraka Otieno",
		"date_of_birth":    "2021-02-03",
		"gender":           "male",
		"class":            "Daisies",
		"assessment_data": map[string]interface{}{
			"concerns":         []string{"Speech delay"},
			"cognitive_skills": "Above average",
			"interests":        "Dinosaurs",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		AssessmentID string `json:"assessment_id"`
		StudentID    string `json:"student_id"`
	}
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.AssessmentID)

	rec = s.do(t, http.MethodPost, "/v1/enrollments/process", token, map[string]string{
		"assessment_id": created.AssessmentID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Summary struct {
			FocusAreas []struct {
				Category string `json:"category"`
			} `json:"focus_areas"`
			Strengths []string `json:"strengths"`
			Interests string   `json:"interests"`
		} `json:"summary"`
		RecommendedPathways []struct {
			ID              string `json:"id"`
			PathwayName     string `json:"pathway_name"`
			ProblemCategory string `json:"problem_category"`
		} `json:"recommendedPathways"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Summary.FocusAreas, 1)
	assert.Equal(t, entities.CategoryLanguage, result.Summary.FocusAreas[0].Category)
	assert.Len(t, result.Summary.Strengths, 1)
	assert.Equal(t, "Dinosaurs", result.Summary.Interests)
	require.Len(t, result.RecommendedPathways, 1)
	assert.Equal(t, entities.CategoryLanguage, result.RecommendedPathways[0].ProblemCategory)

	rec = s.do(t, http.MethodGet, "/v1/enrollments/"+created.AssessmentID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stored struct {
		AIStatus  string `json:"ai_status"`
		AISummary *struct {
			Interests string `json:"interests"`
		} `json:"ai_summary"`
	}
	decodeData(t, rec, &stored)
	assert.Equal(t, "completed", stored.AIStatus)
	require.NotNil(t, stored.AISummary)
	assert.Equal(t, "Dinosaurs", stored.AISummary.Interests)

	rec = s.do(t, http.MethodGet, "/v1/students/"+created.StudentID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		ChildName string `json:"child_name"`
		Pathways  []struct {
			PathwayName string `json:"pathway_name"`
			CurrentStep int    `json:"current_step"`
		} `json:"pathways"`
	}
	decodeData(t, rec, &detail)
	assert.Equal(t, "Baraka Otieno", detail.ChildName)
	require.Len(t, detail.Pathways, 1)
	assert.Equal(t, 1, detail.Pathways[0].CurrentStep)
}

func TestProcessErrors(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, seed.AdminEmail)

	tests := []struct {
		name   string
		token  string
		body   interface{}
		status int
		code   string
	}{
		{"missing id", admin, map[string]string{}, http.StatusBadRequest, "ASSESSMENT_ID_REQUIRED"},
		{"blank id", admin, map[string]string{"assessment_id": "  "}, http.StatusBadRequest, "ASSESSMENT_ID_REQUIRED"},
		{"malformed id", admin, map[string]string{"assessment_id": "abc"}, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unknown id", admin, map[string]string{"assessment_id": "7d0b5a4e-8f59-4b8e-9a8c-1f6c2b0f9d11"}, http.StatusNotFound, "ASSESSMENT_NOT_FOUND"},
		{"teacher", s.login(t, seed.TeacherEmail), map[string]string{"assessment_id": "7d0b5a4e-8f59-4b8e-9a8c-1f6c2b0f9d11"}, http.StatusForbidden, "PERMISSION_DENIED"},
		{"anonymous", "", map[string]string{"assessment_id": "7d0b5a4e-8f59-4b8e-9a8c-1f6c2b0f9d11"}, http.StatusUnauthorized, "UNAUTHENTICATED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/v1/enrollments/process", tt.token, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}

	t.Run("not found carries the id", func(t *testing.T) {
		id := "7d0b5a4e-8f59-4b8e-9a8c-1f6c2b0f9d11"
		rec := s.do(t, http.MethodPost, "/v1/enrollments/process", admin, map[string]string{"assessment_id": id})
		assert.Equal(t, id, decodeError(t, rec).Details["assessment_id"])
	})
}

func TestModuleGates(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, seed.AdminEmail)

	rec := s.do(t, http.MethodGet, "/v1/finance/summary", admin, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "MODULE_LOCKED", body.Code)
	assert.Equal(t, entities.ModuleFinancials, body.Details["module_id"])

	rec = s.do(t, http.MethodPost, "/v1/modules/"+entities.ModuleFinancials+"/activate", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/v1/finance/summary", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary struct {
		Students []struct {
			ChildName string  `json:"child_name"`
			TotalDue  float64 `json:"total_due"`
		} `json:"students"`
		Totals struct {
			FeesCollected float64 `json:"fees_collected"`
			Expenses      float64 `json:"expenses"`
		} `json:"totals"`
	}
	decodeData(t, rec, &summary)
	require.Len(t, summary.Students, 1)
	assert.Equal(t, 15000.0, summary.Students[0].TotalDue)
	assert.Equal(t, 15000.0, summary.Totals.FeesCollected)
	assert.Equal(t, 4200.0, summary.Totals.Expenses)

	t.Run("unknown module", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/modules/teleportation/activate", admin, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
	})

	t.Run("teachers cannot activate", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/modules/"+entities.ModuleCurriculum+"/activate", s.login(t, seed.TeacherEmail), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("catalog", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/v1/modules", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var modules []struct {
			ID string `json:"id"`
		}
		decodeData(t, rec, &modules)
		assert.Len(t, modules, len(seed.Modules()))
	})
}

func TestStudentVisibility(t *testing.T) {
	s := newTestServer(t)

	t.Run("parent sees own child", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/v1/students", s.login(t, seed.ParentEmail), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var students []struct {
			ID string `json:"id"`
		}
		decodeData(t, rec, &students)
		require.Len(t, students, 1)
		assert.Equal(t, s.demo.Student.ID.String(), students[0].ID)
	})

	t.Run("class filter", func(t *testing.T) {
		token := s.login(t, seed.TeacherEmail)
		var students []struct {
			ID string `json:"id"`
		}

		rec := s.do(t, http.MethodGet, "/v1/students?class=Sunflowers", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeData(t, rec, &students)
		assert.Len(t, students, 1)

		rec = s.do(t, http.MethodGet, "/v1/students?class=Daisies", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeData(t, rec, &students)
		assert.Empty(t, students)
	})

	t.Run("teachers list is admin only", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/v1/teachers", s.login(t, seed.TeacherEmail), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = s.do(t, http.MethodGet, "/v1/teachers", s.login(t, seed.AdminEmail), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var teachers []struct {
			Email string `json:"email"`
		}
		decodeData(t, rec, &teachers)
		require.Len(t, teachers, 1)
		assert.Equal(t, seed.TeacherEmail, teachers[0].Email)
	})

	t.Run("unknown student", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/v1/students/7d0b5a4e-8f59-4b8e-9a8c-1f6c2b0f9d11", s.login(t, seed.AdminEmail), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCoPilot(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, seed.AdminEmail)

	type alert struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
	}

	rec := s.do(t, http.MethodGet, "/v1/copilot/alerts", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var feed []alert
	decodeData(t, rec, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, "Great Progress: Zuri Wanjiku", feed[0].Title)

	rec = s.do(t, http.MethodPatch, "/v1/copilot/alerts/"+feed[0].ID, admin, map[string]string{"status": "new"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/v1/copilot/alerts/"+feed[0].ID, admin, map[string]string{"status": "dismissed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/v1/copilot/alerts", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &feed)
	assert.Empty(t, feed)
}

func TestCalendar(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, seed.AdminEmail)
	teacher := s.login(t, seed.TeacherEmail)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)
	rec := s.do(t, http.MethodPost, "/v1/calendar", admin, map[string]interface{}{
		"title":      "Staff Training",
		"start_time": start,
		"audience":   []string{"admin", "Teacher"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/v1/calendar", admin, map[string]interface{}{
		"title":      "Secret",
		"start_time": start,
		"audience":   []string{"students"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/calendar", teacher, map[string]interface{}{
		"title": "Nope", "start_time": start,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/calendar/upcoming", teacher, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var events []struct {
		Title string `json:"title"`
	}
	decodeData(t, rec, &events)
	titles := make([]string, len(events))
	for i, e := range events {
		titles[i] = e.Title
	}
	assert.Contains(t, titles, "Staff Training")
	assert.Contains(t, titles, "Parents' Open Day")

	rec = s.do(t, http.MethodGet, "/v1/calendar?start=2020-01-01&end=2020-02-01", teacher, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &events)
	assert.Empty(t, events)

	rec = s.do(t, http.MethodGet, "/v1/calendar?start=yesterday", teacher, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/calendar?start=2020-02-01&end=2020-01-01", teacher, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	t.Run("parent reads their child's school calendar", func(t *testing.T) {
		parent := s.login(t, seed.ParentEmail)

		rec := s.do(t, http.MethodGet, "/v1/calendar/upcoming", parent, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var upcoming []struct {
			Title string `json:"title"`
		}
		decodeData(t, rec, &upcoming)
		require.Len(t, upcoming, 1)
		assert.Equal(t, "Parents' Open Day", upcoming[0].Title)

		from := time.Now().UTC().Format(time.DateOnly)
		to := time.Now().UTC().AddDate(0, 0, 14).Format(time.DateOnly)
		rec = s.do(t, http.MethodGet, "/v1/calendar?start="+from+"&end="+to, parent, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var listed []struct {
			Title string `json:"title"`
		}
		decodeData(t, rec, &listed)
		require.Len(t, listed, 1)
		assert.Equal(t, "Parents' Open Day", listed[0].Title)
	})
}

func TestCurriculum(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, seed.AdminEmail)
	teacher := s.login(t, seed.TeacherEmail)

	rec := s.do(t, http.MethodPost, "/v1/enrollments", admin, map[string]interface{}{
		"child_name": "Baraka Otieno",
		"class":      "Daisies",
		"assessment_data": map[string]interface{}{
			"concerns": []string{"Speech delay"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		AssessmentID string `json:"assessment_id"`
		StudentID    string `json:"student_id"`
	}
	decodeData(t, rec, &created)
	rec = s.do(t, http.MethodPost, "/v1/enrollments/process", admin, map[string]string{"assessment_id": created.AssessmentID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	type action struct {
		StudentID   string `json:"student_id"`
		PathwayID   string `json:"pathway_id"`
		PathwayName string `json:"pathway_name"`
		StepLevel   int    `json:"step_level"`
		Status      string `json:"status"`
	}
	rec = s.do(t, http.MethodGet, "/v1/curriculum/priority-actions?class=Daisies", teacher, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var actions []action
	decodeData(t, rec, &actions)
	require.Len(t, actions, 1)
	assert.Equal(t, created.StudentID, actions[0].StudentID)
	assert.Equal(t, 1, actions[0].StepLevel)
	assert.Equal(t, "not_started", actions[0].Status)

	rec = s.do(t, http.MethodPost, "/v1/curriculum/progress", teacher, map[string]interface{}{
		"updates": []map[string]string{
			{"student_id": created.StudentID, "pathway_id": actions[0].PathwayID, "outcome": "mastered"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var progress []struct {
		CurrentStep int    `json:"current_step"`
		Status      string `json:"status"`
	}
	decodeData(t, rec, &progress)
	require.Len(t, progress, 1)
	assert.Equal(t, 2, progress[0].CurrentStep)
	assert.Equal(t, "in_progress", progress[0].Status)

	rec = s.do(t, http.MethodGet, "/v1/curriculum/priority-actions?class=Daisies", teacher, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &actions)
	require.Len(t, actions, 1)
	assert.Equal(t, 2, actions[0].StepLevel)

	t.Run("unknown outcome", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/curriculum/progress", teacher, map[string]interface{}{
			"updates": []map[string]string{
				{"student_id": created.StudentID, "pathway_id": actions[0].PathwayID, "outcome": "bored"},
			},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("pathway not assigned", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/curriculum/progress", teacher, map[string]interface{}{
			"updates": []map[string]string{
				{"student_id": created.StudentID, "pathway_id": uuid.NewString(), "outcome": "mastered"},
			},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("parents cannot use the planner", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/v1/curriculum/priority-actions", s.login(t, seed.ParentEmail), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestComplianceUpload(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, seed.AdminEmail)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("record_type", "Fire Safety Certificate"))
	require.NoError(t, w.WriteField("status", "Compliant"))
	require.NoError(t, w.WriteField("expiry_date", time.Now().UTC().AddDate(0, 0, 20).Format(time.DateOnly)))
	part, err := w.CreateFormFile("file", "fire.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7 certificate"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/compliance", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+admin)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID           string `json:"id"`
		ExpiringSoon bool   `json:"expiring_soon"`
		ContentType  string `json:"content_type"`
	}
	decodeData(t, rec, &created)
	assert.True(t, created.ExpiringSoon)
	assert.Equal(t, "application/octet-stream", created.ContentType)

	recordID, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	obj, ok := s.objects.Get(compliance.ObjectKey(s.demo.School.ID, recordID, "fire.pdf"))
	require.True(t, ok)
	assert.Equal(t, "%PDF-1.7 certificate", string(obj.Data))

	rec = s.do(t, http.MethodGet, "/v1/compliance", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []struct {
		RecordType  string `json:"record_type"`
		DocumentURL string `json:"document_url"`
	}
	decodeData(t, rec, &records)
	require.Len(t, records, 1)
	assert.Equal(t, "Fire Safety Certificate", records[0].RecordType)
	assert.True(t, strings.HasPrefix(records[0].DocumentURL, "http://files.test/"), records[0].DocumentURL)

	t.Run("document link resolves", func(t *testing.T) {
		link, err := url.Parse(records[0].DocumentURL)
		require.NoError(t, err)

		rec := s.do(t, http.MethodGet, link.RequestURI(), "", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "%PDF-1.7 certificate", rec.Body.String())
		assert.Equal(t, "application/octet-stream", rec.Header().Get(echo.HeaderContentType))

		rec = s.do(t, http.MethodGet, "/files/compliance%2Fmissing.pdf", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("record_type", "Licence"))
		require.NoError(t, w.WriteField("status", "Approved"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/compliance", &buf)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+admin)
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Details, "status")
	})
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/v1/nothing-here", s.login(t, seed.AdminEmail), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}
