package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/taskhub/backend/internal/auth"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/handler"
	"github.com/taskhub/backend/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.Server)

	slog.Info("starting todo backend",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"frontend_url", cfg.CORS.FrontendURL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		slog.Error("database init failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("database ready, migrations applied")

	tokens, err := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTAlgorithm, cfg.Auth.JWTTTL)
	if err != nil {
		slog.Error("token service init failed", "error", err)
		os.Exit(1)
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	authSvc := service.NewAuthService(store, hasher, tokens)
	taskSvc := service.NewTaskService(store)

	router := newRouter(cfg, tokens, authSvc, taskSvc)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("stopped")
}

func newRouter(cfg config.Config, tokens *auth.TokenService, authSvc *service.AuthService, taskSvc *service.TaskService) *gin.Engine {
	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(handler.RecoveryMiddleware())
	router.Use(handler.CORSMiddleware([]string{cfg.CORS.FrontendURL, "http://localhost:3000"}))

	authHandler := handler.NewAuthHandler(authSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)

	router.GET("/health", handler.Health(cfg.Server.Environment))
	router.GET("/", handler.OptionalAuthMiddleware(tokens), handler.Root)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", handler.AuthMiddleware(tokens), authHandler.Logout)
	}

	taskRoutes := router.Group("/api/tasks")
	taskRoutes.Use(handler.AuthMiddleware(tokens))
	{
		taskRoutes.GET("", taskHandler.List)
		taskRoutes.POST("", taskHandler.Create)
		taskRoutes.GET("/:id", taskHandler.Get)
		taskRoutes.PUT("/:id", taskHandler.Update)
		taskRoutes.DELETE("/:id", taskHandler.Delete)
	}

	return router
}

func setupLogging(cfg config.ServerConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
