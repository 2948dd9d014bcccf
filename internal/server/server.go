package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"authservice/internal/handler"
	"authservice/internal/hasher"
	"authservice/internal/middleware"
	"authservice/internal/notifier"
	"authservice/internal/repository"
	"authservice/internal/service"
	"authservice/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	router   *gin.Engine
	db       *sqlx.DB
	hasher   *hasher.Hasher
	tokens   *token.Manager
	notifier notifier.Notifier
	tokenTTL time.Duration
	logger   *zap.Logger
	log      *logrus.Logger
}

func NewServer(db *sqlx.DB, h *hasher.Hasher, tm *token.Manager, n notifier.Notifier, tokenTTL time.Duration, logger *zap.Logger, log *logrus.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:   router,
		db:       db,
		hasher:   h,
		tokens:   tm,
		notifier: n,
		tokenTTL: tokenTTL,
		logger:   logger,
		log:      log,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	userRepo := repository.NewUserRepository(s.db, s.log)
	authService := service.NewAuthService(userRepo, s.hasher, s.tokens, s.notifier, s.tokenTTL, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.log)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(s.tokens, s.logger))
	{
		authRequired.GET("/profile", authHandler.Profile)
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// before returning.
func (s *Server) Run(ctx context.Context, addr string) {
	srv := &http.Server{Addr: addr, Handler: s.router}

	go func() {
		s.log.Infof("Server starting on port %s...", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("Server shutdown failed: %v", err)
		return
	}
	s.log.Info("Server stopped gracefully")
}
