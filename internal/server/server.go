// Package server wires the dependency graph and owns the HTTP router
// and lifecycle. main.go reads config and calls New + Start; everything
// else is assembled here, in one place.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/skillhub/internal/auth"
	"github.com/sakif/skillhub/internal/executor"
	"github.com/sakif/skillhub/internal/generator"
	"github.com/sakif/skillhub/internal/handler"
	"github.com/sakif/skillhub/internal/middleware"
	sqliteRepo "github.com/sakif/skillhub/internal/repository/sqlite"
	"github.com/sakif/skillhub/internal/service"
)

// Config holds server configuration, read from the environment in
// main.go.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	// Google login is optional; with an empty client ID the Google
	// routes report 503.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	// Generator endpoint is optional; unset means /api/generate/*
	// reports 503.
	GeneratorURL string
	GeneratorKey string
}

// Server owns the router, the database connection, and the optional
// executor. The DB is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	exec   executor.Executor
}

// New assembles the full dependency chain: DB → repositories (the same
// DB value implements them all) → services → handlers → routes.
func New(cfg Config, logger *slog.Logger, exec executor.Executor) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
		exec:   exec,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	var google *auth.GoogleProvider
	if s.config.GoogleClientID != "" {
		google = auth.NewGoogleProvider(
			s.config.GoogleClientID,
			s.config.GoogleClientSecret,
			s.config.GoogleCallbackURL,
		)
	} else {
		s.logger.Warn("GOOGLE_CLIENT_ID not set, Google login is disabled")
	}

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	catalogService := service.NewCatalogService(s.db, s.db, s.logger)
	progressService := service.NewProgressService(s.db, s.db, s.db, s.logger)
	skillService := service.NewSkillService(s.db, s.logger)
	recommendService := service.NewRecommendService(s.db, s.db, s.logger)
	reportService := service.NewReportService(s.db, s.logger)
	genClient := generator.New(s.config.GeneratorURL, s.config.GeneratorKey, s.logger)

	authHandler := handler.NewAuthHandler(authService, google, s.logger)
	courseHandler := handler.NewCourseHandler(catalogService, s.logger)
	progressHandler := handler.NewProgressHandler(progressService, s.logger)
	skillHandler := handler.NewSkillHandler(skillService, recommendService, s.logger)
	reportHandler := handler.NewReportHandler(reportService, s.logger)
	executeHandler := handler.NewExecuteHandler(s.exec, s.logger)
	generateHandler := handler.NewGenerateHandler(genClient, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/google-auth", authHandler.HandleGoogleAuth)
		r.Post("/logout", authHandler.HandleLogout)
		r.With(requireAuth).Get("/me", authHandler.HandleMe)

		r.Post("/videos", courseHandler.HandleCreateCourse)
		r.Get("/videos", courseHandler.HandleListCourses)
		r.Get("/available-courses/{studentID}", courseHandler.HandleAvailableCourses)

		// Both progress paths exist because the frontend posts to both.
		r.Post("/course-progress", progressHandler.HandleRecordProgress)
		r.Post("/student/course-progress", progressHandler.HandleRecordProgress)
		r.Get("/student/progress/{studentID}", progressHandler.HandleStudentProgress)
		r.Post("/student/learning-data", progressHandler.HandleSaveNote)
		r.Get("/student/learning-data/{studentID}/{videoID}", progressHandler.HandleGetNote)

		r.Post("/student/profile", skillHandler.HandleSaveProfile)
		r.Get("/student/recommended-courses/{studentID}", skillHandler.HandleRecommendedCourses)

		r.Get("/teacher/students-progress/{teacherID}", reportHandler.HandleStudentsProgress)
		r.Get("/teacher/detailed-progress/{teacherID}", reportHandler.HandleDetailedProgress)
		r.Get("/teacher/course-rollup/{teacherID}", reportHandler.HandleCourseRollup)
		r.Get("/teacher/student-learning-data/{teacherID}", reportHandler.HandleNoteReviews)

		r.Post("/playground/execute", executeHandler.HandleExecute)

		r.Route("/generate", func(r chi.Router) {
			r.Post("/resume", generateHandler.HandleResume)
			r.Post("/job-description", generateHandler.HandleJobDescription)
			r.Post("/quiz", generateHandler.HandleQuiz)
			r.Post("/summary", generateHandler.HandleSummary)
		})
	})

	s.router.Get("/auth/google/login", authHandler.HandleGoogleLogin)
	s.router.Get("/auth/google/callback", authHandler.HandleGoogleCallback)

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
