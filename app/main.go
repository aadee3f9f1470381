package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disruptorsmedia/blog-comb/app/api"
	"github.com/disruptorsmedia/blog-comb/app/blog"
	"github.com/disruptorsmedia/blog-comb/app/cfg"
	"github.com/disruptorsmedia/blog-comb/app/database"
	"github.com/disruptorsmedia/blog-comb/app/feed"
	"github.com/disruptorsmedia/blog-comb/app/tasks"
)

func main() {
	config, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if config == nil {
		// Help was shown
		return
	}

	logLevel := slog.LevelInfo
	if config.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Blog Comb server", "version", config.Version)

	db, err := database.NewConnection(config.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", config.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", config.DBPath, "migration_version", version, "dirty", dirty)

	taxonomy, err := blog.LoadTaxonomyFile(config.TaxonomyFile)
	if err != nil {
		slog.Error("Failed to load taxonomy", "error", err)
		os.Exit(1)
	}

	publicationRepo := database.NewPublicationRepository(db)
	stateStore := database.NewStateStore(db)

	httpClient := &http.Client{
		Timeout: time.Duration(config.RequestTimeout) * time.Second * 2,
	}

	pipeline := blog.NewSheetPipeline(httpClient, config.SourceConfig(), blog.NewNormalizer(taxonomy, nil))
	if !pipeline.HasStructuredSource() {
		slog.Info("GOOGLE_SHEETS_API_KEY not set, reading the sheet through CSV export only")
	}

	// Publication tracking is optional; handlers see a nil scheduler when it is off.
	var scheduler tasks.TaskSchedulerInterface
	var trackTask tasks.TaskFactory
	if config.TrackInterval > 0 {
		trackTask = func() tasks.TaskInterface {
			return tasks.NewTrackPublicationsTask(config.SpreadsheetID, pipeline, publicationRepo, stateStore)
		}

		slog.Info("Starting publication tracker", "workers", config.WorkerCount, "interval", (time.Duration(config.TrackInterval) * time.Second).String())
		trackScheduler := tasks.NewScheduler(trackTask, time.Duration(config.TrackInterval)*time.Second, config.WorkerCount)
		trackScheduler.Start()
		defer trackScheduler.Stop()

		scheduler = trackScheduler
	} else {
		slog.Info("Publication tracking disabled (TRACK_INTERVAL=0)")
	}

	contentFetcher := feed.NewContentFetcher(httpClient, config.UserAgent, time.Duration(config.RequestTimeout)*time.Second)
	apiHandler := api.NewHandler(pipeline, contentFetcher, feed.NewContentExtractor(), publicationRepo, scheduler, trackTask)
	router := api.NewServer(apiHandler, api.ServerOptions{
		APIAccessKey: config.APIAccessKey,
		RateLimit:    config.RateLimit,
		RateBurst:    config.RateBurst,
	})

	httpServer := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", config.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler and database are closed via defer
	slog.Info("Blog Comb server shutdown complete")
}
