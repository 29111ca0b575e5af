package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/momsgrove/grove-api/pkg/validator"

	_ "github.com/momsgrove/grove-api/docs"
	"github.com/momsgrove/grove-api/internal/adapter/handler"
	"github.com/momsgrove/grove-api/internal/adapter/repository"
	"github.com/momsgrove/grove-api/internal/adapter/repository/memory"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
	"github.com/momsgrove/grove-api/internal/infrastructure/cache"
	"github.com/momsgrove/grove-api/internal/infrastructure/database"
	httpmw "github.com/momsgrove/grove-api/internal/infrastructure/http/middleware"
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
	pkgai "github.com/momsgrove/grove-api/pkg/ai"
	"github.com/momsgrove/grove-api/pkg/config"
	"github.com/momsgrove/grove-api/pkg/jwt"
)

// @title           Grove API
// @version         1.0
// @description     School dashboard API: enrollment intake, skill pathways, module entitlements and the admin dashboards.

// @contact.name   Grove Support
// @contact.email  support@momsgrove.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	store, err := openCache(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer store.Close()

	objects, err := openObjectStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)

	log.Println("✨ Initializing services...")
	entitlementService := entitlement.NewService(repos.Modules, store, logger)
	authService := auth.NewService(repos.Users, entitlementService, jwtManager, logger)
	enrollmentService := enrollment.NewService(repos.Enrollments, repos.Pathways, newSummarizer(cfg, logger), logger)
	studentService := student.NewService(repos.Students, repos.Pathways, repos.Users)
	copilotService := copilot.NewService(repos.Alerts, logger)
	calendarService := calendar.NewService(repos.Events, repos.Students)
	financeService := finance.NewService(repos.Transactions, repos.Students)
	complianceService := compliance.NewService(repos.Compliance, objects, cfg.Storage.PresignExpiry, logger)
	curriculumService := curriculum.NewService(repos.Pathways, repos.Students, logger)

	handlers := handler.Handlers{
		Auth:       handler.NewAuth(authService, logger, cfg.IsProduction()),
		Enrollment: handler.NewEnrollmentHandler(enrollmentService, logger),
		Student:    handler.NewStudentHandler(studentService, logger),
		Module:     handler.NewModuleHandler(entitlementService, logger),
		CoPilot:    handler.NewCoPilotHandler(copilotService, logger),
		Calendar:   handler.NewCalendarHandler(calendarService, logger),
		Finance:    handler.NewFinanceHandler(financeService, logger),
		Compliance: handler.NewComplianceHandler(complianceService, logger),
		Curriculum: handler.NewCurriculumHandler(curriculumService, logger),
	}
	if mem, ok := objects.(*storage.MemoryStore); ok {
		handlers.Files = handler.NewFilesHandler(mem, logger)
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, handlers, httpmw.EchoAuth(authService))
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// openStore returns the repository registry for the configured driver and
// a func that releases it
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repositories.Registry, func(), error) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Println("⚠️  Using in-memory store; data is lost on restart")
		repos := memory.NewRegistry(memory.NewDB())
		if cfg.Store.Seed {
			if _, err := seed.Run(ctx, repos, seed.DefaultOptions(), logger); err != nil {
				return nil, nil, fmt.Errorf("failed to seed memory store: %w", err)
			}
		}
		return repos, func() {}, nil
	}

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = database.CloseDB(db) }

	// Production deployments should manage schema with cmd/migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			closeDB()
			return nil, nil, fmt.Errorf("DB_AUTO_MIGRATE is enabled in production; run cmd/migrate instead")
		}
		if err := database.AutoMigrate(db); err != nil {
			closeDB()
			return nil, nil, err
		}
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate to apply schema changes")
	}

	return repository.NewRegistry(db), closeDB, nil
}

func openCache(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryStore(), nil
	}

	log.Println("📦 Connecting to Redis...")
	client, err := cache.NewRedisClient(ctx, cfg, 30*time.Second)
	if err != nil {
		return nil, err
	}
	return cache.NewRedisStore(client, "grove:"), nil
}

func openObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	if !cfg.Storage.Enabled {
		log.Println("⚠️  Object storage disabled; compliance documents are kept in memory")
		return storage.NewMemoryStore(fmt.Sprintf("http://%s:%s/files", cfg.Server.Host, cfg.Server.Port)), nil
	}

	log.Println("🗄️  Connecting to object storage...")
	client, err := storage.NewMinIOClient(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newSummarizer(cfg *config.Config, logger *zap.Logger) enrollment.Summarizer {
	if cfg.Summarizer.Kind == config.SummarizerLLM {
		log.Printf("🤖 Using LLM summarizer (%s)", cfg.Summarizer.Model)
		return enrollment.NewLLMSummarizer(pkgai.NewChatClient(&cfg.Summarizer), logger)
	}
	return enrollment.NewRuleSummarizer()
}
