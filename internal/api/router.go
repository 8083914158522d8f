package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskhive/project-api/docs"
	"github.com/taskhive/project-api/internal/api/handler"
	"github.com/taskhive/project-api/internal/api/middleware"
	"github.com/taskhive/project-api/internal/core/service"
	mongodb "github.com/taskhive/project-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhive/project-api/internal/infrastructure/db/redis"
)

// RouterDeps carries the external dependencies the router wires together.
type RouterDeps struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	Logger     zerolog.Logger
	Activities service.ActivityDispatcher
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskhive"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	projectRepo := mongodb.NewProjectRepository(deps.Mongo)
	taskRepo := mongodb.NewTaskRepository(deps.Mongo)
	reportCache := redisdb.NewReportCache(deps.Redis)

	authService := service.NewAuthService(userRepo, deps.JWTSecret, 24*time.Hour)
	projectService := service.NewProjectService(projectRepo, userRepo, reportCache, deps.Activities, deps.Logger)
	reportService := service.NewReportService(projectRepo, reportCache, deps.Logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, reportCache, deps.Activities, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	meHandler := handler.NewMeHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService, reportService)
	taskHandler := handler.NewTaskHandler(taskService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))

	v1.GET("/me", meHandler.Profile)
	v1.GET("/me/search", meHandler.Search)

	v1.POST("/projects", projectHandler.Create)
	v1.GET("/projects", projectHandler.List)
	v1.GET("/projects/:slug", projectHandler.Get)
	v1.PUT("/projects/:id", projectHandler.Update)
	v1.DELETE("/projects/:id", projectHandler.Delete)
	v1.POST("/projects/:id/members", projectHandler.AddMember)
	v1.GET("/projects/:slug/report", projectHandler.Report)
	v1.POST("/projects/:id/tasks", taskHandler.Create)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
