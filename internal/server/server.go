package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/docs"
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *slog.Logger
}

// Dependencies are the collaborators the HTTP layer is built from. Handlers
// only see the repository interfaces, so either backend fits.
type Dependencies struct {
	Users  repository.UserRepositoryInterface
	Boards repository.BoardRepositoryInterface
	Tokens *auth.TokenService
	Hasher *auth.PasswordHasher
	Logger *slog.Logger
}

func Init(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := repository.Options{StrictTaskScope: cfg.StrictTaskScope}

	deps := Dependencies{
		Tokens: auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour),
		Hasher: auth.NewPasswordHasher(cfg.BcryptCost),
		Logger: logger,
	}

	var db *gorm.DB
	switch cfg.Storage {
	case config.StorageMemory:
		store := repository.NewMemoryStore(opts)
		deps.Users, deps.Boards = store, store
		logger.Info("using in-memory storage")
	case config.StoragePostgres:
		var err error
		db, err = openPostgres(cfg, logger)
		if err != nil {
			return nil, err
		}
		deps.Users = repository.NewUserRepository(db)
		deps.Boards = repository.NewBoardRepository(db, opts)
		logger.Info("connected to database", slog.String("host", cfg.DBHost), slog.String("db", cfg.DBName))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	return &Server{
		Engine: NewEngine(cfg, deps),
		DB:     db,
		Config: cfg,
		Logger: logger,
	}, nil
}

func openPostgres(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(slog.NewLogLogger(logger.Handler(), slog.LevelWarn), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	return db, nil
}

// NewEngine wires middleware and routes. Every endpoint lives under
// cfg.APIPrefix.
func NewEngine(cfg *config.Config, deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(deps.Logger))

	// Initialize handlers
	userHandler := handler.NewUserHandler(deps.Users, deps.Tokens, deps.Hasher)
	boardHandler := handler.NewBoardHandler(deps.Boards)
	stateHandler := handler.NewStateHandler(deps.Boards)
	taskHandler := handler.NewTaskHandler(deps.Boards)

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIPrefix
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Public routes
	api.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.POST("/signup", userHandler.Signup)
	api.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := api.Group("")
	authorized.Use(middleware.JWTAuthMiddleware(deps.Tokens, deps.Users))
	{
		authorized.GET("/user-me", userHandler.Me)

		// Board routes
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.POST("/boards", boardHandler.Create)

		// State routes
		authorized.GET("/boards/:boardId/states", stateHandler.GetAll)
		authorized.POST("/boards/:boardId/states", stateHandler.Create)
		authorized.PUT("/boards/:boardId/states/:stateId", stateHandler.Update)
		authorized.DELETE("/boards/:boardId/states/:stateId", stateHandler.Delete)

		// Task routes
		authorized.GET("/boards/:boardId/tasks", taskHandler.GetAll)
		authorized.POST("/boards/:boardId/tasks", taskHandler.Create)
		authorized.PUT("/boards/tasks/:taskId", taskHandler.Update)
		authorized.DELETE("/boards/tasks/:taskId", taskHandler.Delete)
	}

	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Logger.Info("server running", slog.String("addr", srv.Addr), slog.String("prefix", s.Config.APIPrefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("failed to listen", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	s.Logger.Info("server exited properly")
}
