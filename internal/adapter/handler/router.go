package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/momsgrove/grove-api/internal/adapter/dto/common"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/infrastructure/http/middleware"
	"github.com/momsgrove/grove-api/pkg/config"
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Auth       *Auth
	Enrollment *Enrollment
	Student    *Student
	Module     *Module
	CoPilot    *CoPilot
	Calendar   *Calendar
	Finance    *Finance
	Compliance *Compliance
	Curriculum *Curriculum

	// Files is nil unless documents are kept in memory
	Files *Files
}

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	handlers Handlers
	authMW   echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, handlers Handlers, authMW echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:      cfg,
		handlers: handlers,
		authMW:   authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if rt.handlers.Files != nil {
		e.GET("/files/:key", rt.handlers.Files.Get)
	}

	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)

	protected := v1.Group("", rt.authMW)
	rt.setupModuleRoutes(protected)
	rt.setupEnrollmentRoutes(protected)
	rt.setupStudentRoutes(protected)
	rt.setupCoPilotRoutes(protected)
	rt.setupCalendarRoutes(protected)
	rt.setupFinanceRoutes(protected)
	rt.setupComplianceRoutes(protected)
	rt.setupCurriculumRoutes(protected)
}

var adminOnly = middleware.RequireRole(entities.RoleAdmin)

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	h := rt.handlers.Auth
	authGroup := g.Group("/auth")

	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", h.Me, rt.authMW)
}

func (rt *Router) setupModuleRoutes(g *echo.Group) {
	h := rt.handlers.Module
	modules := g.Group("/modules")

	modules.GET("", h.Catalog)
	modules.GET("/unlocked", h.Unlocked)
	modules.POST("/:id/activate", h.Activate, adminOnly)
}

func (rt *Router) setupEnrollmentRoutes(g *echo.Group) {
	h := rt.handlers.Enrollment
	enrollments := g.Group("/enrollments", adminOnly)

	enrollments.POST("", h.Enroll)
	enrollments.POST("/process", h.Process)
	enrollments.GET("/:id", h.Get)
}

func (rt *Router) setupStudentRoutes(g *echo.Group) {
	h := rt.handlers.Student

	g.GET("/students", h.List)
	g.GET("/students/:id", h.Get)
	g.GET("/teachers", h.Teachers, adminOnly)
	g.GET("/pathways", h.Pathways)
}

func (rt *Router) setupCoPilotRoutes(g *echo.Group) {
	h := rt.handlers.CoPilot
	copilot := g.Group("/copilot", adminOnly, middleware.RequireModule(entities.ModuleAICopilot))

	copilot.GET("/alerts", h.Feed)
	copilot.PATCH("/alerts/:id", h.UpdateStatus)
}

func (rt *Router) setupCalendarRoutes(g *echo.Group) {
	h := rt.handlers.Calendar
	cal := g.Group("/calendar")

	cal.GET("", h.List)
	cal.GET("/upcoming", h.Upcoming)
	cal.POST("", h.Create, adminOnly)
}

func (rt *Router) setupFinanceRoutes(g *echo.Group) {
	h := rt.handlers.Finance
	finance := g.Group("/finance", adminOnly, middleware.RequireModule(entities.ModuleFinancials))

	finance.GET("/transactions", h.Transactions)
	finance.POST("/transactions", h.Record)
	finance.GET("/summary", h.Summary)
}

func (rt *Router) setupComplianceRoutes(g *echo.Group) {
	h := rt.handlers.Compliance
	compliance := g.Group("/compliance", adminOnly)

	compliance.GET("", h.List)
	compliance.POST("", h.Create)
}

func (rt *Router) setupCurriculumRoutes(g *echo.Group) {
	h := rt.handlers.Curriculum
	curriculum := g.Group("/curriculum", middleware.RequireRole(entities.RoleTeacher, entities.RoleAdmin))

	curriculum.GET("/priority-actions", h.PriorityActions)
	curriculum.POST("/progress", h.UpdateProgress)
}

// healthCheck returns health status
// @Summary  Health check
// @Tags     System
// @Produce  json
// @Success  200  {object}  common.HealthResponse
// @Router   /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	resp := common.HealthResponse{Status: "ok"}
	if rt.cfg != nil {
		resp.Environment = rt.cfg.Server.Environment
		resp.Store = rt.cfg.Store.Driver
	}
	return c.JSON(http.StatusOK, resp)
}
