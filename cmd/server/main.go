package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/kanjiflash/internal/api"
	"github.com/vytor/kanjiflash/internal/config"
	"github.com/vytor/kanjiflash/internal/db"
	"github.com/vytor/kanjiflash/internal/jobs"
	"github.com/vytor/kanjiflash/internal/logger"
	"github.com/vytor/kanjiflash/internal/models"
	"github.com/vytor/kanjiflash/internal/pitch"
	"github.com/vytor/kanjiflash/internal/repository/sqlite"
	"github.com/vytor/kanjiflash/internal/scheduler"
	"github.com/vytor/kanjiflash/internal/services"
	"github.com/vytor/kanjiflash/internal/srs"
	"github.com/vytor/kanjiflash/internal/streak"
	"github.com/vytor/kanjiflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("KanjiFlash Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("accent_db_path=%s", cfg.AccentDBPath)
	log.Debug("streak_debounce=%s", cfg.StreakDebounce)
	log.Debug("streak_refresh_at=%s", cfg.StreakRefreshAt)
	log.Debug("overdue_threshold=%d", cfg.OverdueThreshold)
	log.Debug("near_match_policy=%s", cfg.NearMatchPolicy)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Repositories
	srsRepo := sqlite.NewSRSSystemRepository(database.DB)
	subjectRepo := sqlite.NewSubjectRepository(database.DB)
	assignmentRepo := sqlite.NewAssignmentRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	settingsRepo := sqlite.NewSettingsRepository(database.DB)
	streakRepo := sqlite.NewStreakRepository(database.DB)

	systems, err := srsRepo.List(ctx)
	if err != nil {
		log.Error("failed to load SRS systems: %v", err)
		os.Exit(1)
	}
	engine := srs.NewEngine(systems...)
	log.Info("loaded %d SRS systems", len(systems))

	// Streak calculator
	calc := streak.NewCalculator(
		services.NewActivitySource(reviewRepo, assignmentRepo),
		streakRepo,
		streak.WithDelay(cfg.StreakDebounce),
	)
	if err := calc.Restore(ctx); err != nil {
		log.Warn("failed to restore streak snapshot: %v", err)
	}
	calc.Trigger()

	// Initialize services
	settingsService := services.NewSettingsService(settingsRepo, models.Settings{
		OverdueThreshold: cfg.OverdueThreshold,
		NearMatchPolicy:  cfg.NearMatchPolicy,
	})
	subjectService := services.NewSubjectService(subjectRepo, assignmentRepo, settingsService, engine)
	reviewService := services.NewReviewService(subjectService, assignmentRepo, reviewRepo, settingsService, engine, calc)
	streakService := services.NewStreakService(calc)
	pitchService := services.NewPitchService(subjectService, pitch.NewDictionary(pitch.FileLoader(cfg.AccentDBPath)))
	importService := services.NewImportService(srsRepo, subjectRepo, assignmentRepo, engine)

	// Initialize worker pools
	importPool := worker.NewPool("import", cfg.ImportWorkerCount, cfg.ImportQueueSize)
	importPool.Start(ctx)

	sched := scheduler.New(calc, time.Local)
	if err := sched.Start(cfg.StreakRefreshAt); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DB:              database,
		SubjectService:  subjectService,
		ReviewService:   reviewService,
		SettingsService: settingsService,
		StreakService:   streakService,
		PitchService:    pitchService,
		JobQueue:        jobs.NewWorkerQueue(importPool, importService),
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping scheduler")
	sched.Stop()

	log.Debug("stopping import pool")
	cancel()
	importPool.Stop()

	log.Debug("stopping streak calculator")
	calc.Stop()

	log.Info("===========================================")
	log.Info("KanjiFlash Server Stopped")
	log.Info("===========================================")
}
