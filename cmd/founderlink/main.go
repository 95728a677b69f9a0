// FounderLink daemon - matching and outcome-feedback service
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/founderlink/founderlink/internal/analytics"
	"github.com/founderlink/founderlink/internal/api"
	"github.com/founderlink/founderlink/internal/cache"
	"github.com/founderlink/founderlink/internal/config"
	"github.com/founderlink/founderlink/internal/embeddings"
	"github.com/founderlink/founderlink/internal/feedback"
	"github.com/founderlink/founderlink/internal/logging"
	"github.com/founderlink/founderlink/internal/matching"
	"github.com/founderlink/founderlink/internal/metrics"
	"github.com/founderlink/founderlink/internal/storage"
	"github.com/founderlink/founderlink/internal/vectors"
)

var (
	configPath string
	debug      bool
	jsonLogs   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "founderlink",
		Short: "FounderLink - founder introduction matching engine",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the matching and feedback API server",
		RunE:  runServe,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", true, "Emit JSON logs")

	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(jsonLogs, debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer log.Sync()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// Database
	db, err := storage.Open(storage.Config{Path: filepath.Join(cfg.DataDir, "founderlink.db")})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	userStore := storage.NewUserStore(db)
	signalStore := storage.NewSignalStore(db)
	introStore := storage.NewIntroStore(db)

	// Metrics
	registry := prometheus.NewRegistry()
	met := metrics.New(registry)

	// Embeddings
	embedder := embeddings.NewService(embeddings.Config{
		BaseURL: cfg.Embed.URL,
		Model:   cfg.Embed.Model,
		Timeout: cfg.Embed.Timeout,
	})
	if err := embedder.Health(context.Background()); err != nil {
		log.Warn("embedding service not reachable, matching degraded", zap.Error(err))
	}

	// Vector store
	vectorStore, err := vectors.NewStore(vectors.Config{
		Host:   cfg.Qdrant.Host,
		Port:   cfg.Qdrant.Port,
		UseTLS: cfg.Qdrant.UseTLS,
	}, embedder)
	if err != nil {
		return fmt.Errorf("connect qdrant: %w", err)
	}
	defer vectorStore.Close()

	if err := vectorStore.EnsureCollections(context.Background(), embedder.Dimension()); err != nil {
		log.Warn("failed to ensure vector collections", zap.Error(err))
	}

	// Matching pipeline
	aggregator := matching.NewAggregator(vectorStore, matching.AggregatorConfig{
		SearchLimit:   cfg.Matching.SearchLimit,
		MinSimilarity: cfg.Matching.MinSimilarity,
		SearchTimeout: cfg.Matching.SearchTimeout,
	}, log, met)

	suggestionCache := cache.New(cfg.Matching.CacheSize, cfg.Matching.CacheTTL)

	matcher := matching.NewService(signalStore, userStore, aggregator, matching.NewScorer(),
		suggestionCache, matching.ServiceConfig{
			DefaultLimit:    cfg.Matching.DefaultLimit,
			DefaultMinScore: cfg.Matching.DefaultMinScore,
		}, log, met)

	// Feedback
	var sink feedback.Sink
	if hs := feedback.NewHTTPSink(cfg.Feedback.URL, cfg.Feedback.Timeout); hs != nil {
		sink = hs
	} else {
		log.Info("no feedback sink configured, scores recorded locally only")
	}

	recorder := feedback.NewRecorder(sink, introStore, feedback.RecorderConfig{
		AgentID: cfg.Feedback.AgentID,
		Timeout: cfg.Feedback.Timeout,
	}, log, met)

	// Analytics
	analyticsSvc := analytics.NewService(introStore)

	// API server
	server := api.New(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		Matcher:     matcher,
		Recorder:    recorder,
		Analytics:   analyticsSvc,
		UserStore:   userStore,
		SignalStore: signalStore,
		IntroStore:  introStore,
		Indexer:     vectorStore,
		Embed:       embedder,
		Registry:    registry,
		Logger:      log,
	})

	// Handle shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down")
		server.Stop(context.Background())
	}()

	log.Info("founderlink serving",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port))

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
