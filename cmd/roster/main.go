package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roster/internal/adapters/console"
	"roster/internal/adapters/storage"
	auditStorePkg "roster/internal/adapters/storage/audit"
	memberStorePkg "roster/internal/adapters/storage/member"
	"roster/internal/config"
	"roster/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	_, logFile, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Console:    os.Stderr,
	})
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer logFile.Close()

	// Open once; every store shares this handle until exit.
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	slog.Info("startup", "version", version, "db", cfg.DBPath)
	fmt.Println("✅ Database initialized successfully!")

	timedDB := storage.NewTimedDB(db, cfg.SlowQueryMs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shell := console.New(os.Stdin, os.Stdout, console.Deps{
		MemberStore: memberStorePkg.NewSQLiteStore(timedDB),
		AuditStore:  auditStorePkg.NewSQLiteStore(timedDB),
		Now:         time.Now,
	})

	done := make(chan error, 1)
	go func() { done <- shell.Run(ctx) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		slog.Info("shutdown", "reason", "signal")
		err = nil
	}
	if err != nil {
		slog.Error("shell_failed", "error", err)
	}
	slog.Info("shutdown", "reason", "exit")
}
