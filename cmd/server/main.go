// Package main is the entry point for the SkillHub API server. It reads
// configuration from the environment, builds the shared dependencies,
// and hands off to internal/server.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sakif/skillhub/internal/executor"
	"github.com/sakif/skillhub/internal/executor/docker"
	"github.com/sakif/skillhub/internal/server"
)

func main() {
	// .env is a development convenience; in production the variables
	// come from the real environment and the file is absent.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/skillhub.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET must be set (e.g. JWT_SECRET=$(openssl rand -hex 32))")
		os.Exit(1)
	}

	googleCallbackURL := os.Getenv("GOOGLE_CALLBACK_URL")
	if googleCallbackURL == "" {
		googleCallbackURL = fmt.Sprintf("http://localhost:%d/auth/google/callback", port)
	}

	// The Docker executor is optional. Without it the server still
	// starts and the playground endpoint reports 503. On failure the
	// interface must stay untyped nil.
	var exec executor.Executor
	if dockerExec, err := docker.New(docker.DefaultConfig(), logger); err != nil {
		logger.Warn("Docker executor unavailable, playground execution is disabled",
			slog.String("error", err.Error()),
		)
	} else {
		defer dockerExec.Close()
		exec = dockerExec
	}

	cfg := server.Config{
		Port:               port,
		DBPath:             dbPath,
		JWTSecret:          jwtSecret,
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  googleCallbackURL,
		GeneratorURL:       os.Getenv("GENERATOR_URL"),
		GeneratorKey:       os.Getenv("GENERATOR_KEY"),
	}

	srv, err := server.New(cfg, logger, exec)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
