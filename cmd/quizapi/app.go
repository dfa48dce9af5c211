package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iqurastudy/quizapi/internal/db"
	"github.com/iqurastudy/quizapi/internal/handlers"
	"github.com/iqurastudy/quizapi/internal/handlers/middleware"
	"github.com/iqurastudy/quizapi/internal/logger"
	"github.com/iqurastudy/quizapi/internal/repository/postgres"
	"github.com/iqurastudy/quizapi/internal/service/auth"
	"github.com/iqurastudy/quizapi/internal/service/quiz"
	"github.com/iqurastudy/quizapi/internal/service/session"
	"github.com/iqurastudy/quizapi/internal/service/task"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize services
	sessionService, err := session.NewService(session.Config{
		Codec: session.CodecConfig{
			SecretKey: c.SecretKey,
			Issuer:    c.JWTIssuer,
			Audience:  c.JWTAudience,
			AccessTTL: time.Duration(c.AccessTokenMinutes) * time.Minute,
		},
		RefreshTTL: time.Duration(c.RefreshTokenDays) * 24 * time.Hour,
	}, storage.User())
	if err != nil {
		return nil, fmt.Errorf("error while creating session service. Err: %w", err)
	}

	authService, err := auth.NewService(auth.Config{}, sessionService, storage.User())
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	quizService, err := quiz.NewService(storage)
	if err != nil {
		return nil, fmt.Errorf("error while creating quiz service. Err: %w", err)
	}
	taskService, err := task.NewService(storage)
	if err != nil {
		return nil, fmt.Errorf("error while creating task service. Err: %w", err)
	}

	// Initialize handlers
	mux := handlers.NewRouter(
		handlers.NewAuth(authService),
		handlers.NewQuiz(quizService),
		handlers.NewQuestion(quizService),
		handlers.NewAnswer(quizService),
		handlers.NewTask(taskService, sessionService),
		middleware.AuthMiddleware(sessionService),
		middleware.LoggerMiddleware(logger),
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server")
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
