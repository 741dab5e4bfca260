package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/skillswap/skillswap-api/docs"
	"github.com/skillswap/skillswap-api/internal/api/handler"
	"github.com/skillswap/skillswap-api/internal/api/middleware"
	"github.com/skillswap/skillswap-api/internal/core/service"
	skillmongo "github.com/skillswap/skillswap-api/internal/infrastructure/db/mongo"
)

// Deps carries everything the router needs to assemble the service graph.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Cache     service.SkillCache
	Notifier  service.Notifier
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("skillswap"))

	// --- Repositories ---
	userRepo := skillmongo.NewUserRepository(deps.Mongo)
	skillRepo := skillmongo.NewSkillRepository(deps.Mongo)
	swapRepo := skillmongo.NewSwapRepository(deps.Mongo)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deps.JWTSecret, 24*time.Hour)
	skillService := service.NewSkillService(skillRepo, userRepo, deps.Cache, deps.Notifier, deps.Logger)
	swapService := service.NewSwapService(swapRepo, skillRepo, userRepo, deps.Notifier, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	skillHandler := handler.NewSkillHandler(skillService)
	swapHandler := handler.NewSwapHandler(swapService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Engine routes ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))

	v1.POST("/skills", skillHandler.Add)
	v1.GET("/skills", skillHandler.ListAll)
	v1.GET("/skills/mine", skillHandler.ListMine)
	v1.GET("/skills/requestable", skillHandler.Requestable)
	v1.DELETE("/skills/:id", skillHandler.Withdraw)

	v1.POST("/swaps", swapHandler.Create)
	v1.GET("/swaps/received", swapHandler.Received)
	v1.GET("/swaps/sent", swapHandler.Sent)
	v1.PATCH("/swaps/:id", swapHandler.UpdateStatus)

	return e
}
