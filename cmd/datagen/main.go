package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ehealth-bench/datagen/internal/pipeline"
	"github.com/ehealth-bench/datagen/internal/sink"
	"github.com/ehealth-bench/datagen/pkg/config"
	apperrors "github.com/ehealth-bench/datagen/pkg/errors"
	"github.com/ehealth-bench/datagen/pkg/kafka"
	"github.com/ehealth-bench/datagen/pkg/logger"
	"github.com/ehealth-bench/datagen/pkg/metrics"
	"github.com/ehealth-bench/datagen/pkg/postgres"
	"github.com/ehealth-bench/datagen/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	numDocs := flag.Int("num-docs", 0, "number of documents to generate (overrides config)")
	outputDir := flag.String("output-dir", "", "output directory (overrides config)")
	seed := flag.Int64("seed", 0, "random seed for reproducibility (overrides config)")
	seedSet := false
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}
	if *numDocs > 0 {
		cfg.Generator.NumDocuments = *numDocs
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if seedSet {
		cfg.Generator.Seed = *seed
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	runID := uuid.NewString()
	log := logger.WithRun(runID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)
	if cfg.Metrics.Enabled {
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	sinks, closers, err := buildSinks(cfg)
	if err != nil {
		log.Error("failed to set up sinks", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
	defer func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				log.Error("sink close failed", "error", err)
			}
		}
	}()

	log.Info("starting generation run",
		"num_docs", cfg.Generator.NumDocuments,
		"seed", cfg.Generator.Seed,
		"output_dir", cfg.Output.Dir,
	)

	p := pipeline.New(cfg.Generator, runID, m, sinks...)
	res, err := p.Run(ctx)
	if err != nil {
		log.Error("generation run failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}

	fmt.Println("=== Generation Complete ===")
	fmt.Printf("Documents generated: %d\n", len(res.Documents))
	fmt.Printf("Unique keywords:     %d\n", len(res.Index))
	fmt.Printf("Avg keywords/doc:    %.2f\n", res.Statistics.AvgKeywordsPerDocument)
	fmt.Printf("Queries generated:   %d\n", len(res.Queries))
	fmt.Printf("Duration:            %s\n", res.Duration)
	fmt.Printf("Output directory:    %s\n", cfg.Output.Dir)
}

// buildSinks wires the file sink plus any optional sinks enabled in config,
// returning close funcs for the ones holding connections.
func buildSinks(cfg *config.Config) ([]pipeline.Sink, []func() error, error) {
	sinks := []pipeline.Sink{sink.NewFiles(cfg.Output)}
	var closers []func() error

	if cfg.Postgres.Enabled {
		client, err := postgres.New(cfg.Postgres)
		if err != nil {
			return nil, closers, fmt.Errorf("connecting to postgres: %w", err)
		}
		closers = append(closers, client.Close)
		sinks = append(sinks, sink.NewPostgres(client))
		slog.Info("postgres sink enabled", "host", cfg.Postgres.Host, "database", cfg.Postgres.Database)
	}
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, closers, fmt.Errorf("connecting to redis: %w", err)
		}
		closers = append(closers, client.Close)
		sinks = append(sinks, sink.NewRedis(client, cfg.Redis))
		slog.Info("redis sink enabled", "addr", cfg.Redis.Addr)
	}
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka)
		closers = append(closers, producer.Close)
		sinks = append(sinks, sink.NewKafka(producer))
		slog.Info("kafka sink enabled", "topic", cfg.Kafka.Topic)
	}
	return sinks, closers, nil
}
