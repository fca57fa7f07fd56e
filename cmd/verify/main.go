// Command verify re-loads a dataset directory written by datagen and
// independently recomputes every invariant: index completeness and
// soundness against the documents, query expected cardinalities, and the
// statistics snapshot.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ehealth-bench/datagen/internal/dataset"
	"github.com/ehealth-bench/datagen/internal/index"
	"github.com/ehealth-bench/datagen/internal/query"
	"github.com/ehealth-bench/datagen/internal/stats"
	"github.com/ehealth-bench/datagen/internal/verify"
	apperrors "github.com/ehealth-bench/datagen/pkg/errors"
	"github.com/ehealth-bench/datagen/pkg/logger"
)

func main() {
	dataDir := flag.String("data-dir", "./data", "dataset directory to verify")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger.Setup(*logLevel, "text")
	log := logger.WithComponent("verify")

	var docs []dataset.Document
	if err := loadJSON(*dataDir, "dataset.json", &docs); err != nil {
		log.Error("failed to load documents", "error", err)
		os.Exit(2)
	}
	var idx index.Index
	if err := loadJSON(*dataDir, "keyword_index.json", &idx); err != nil {
		log.Error("failed to load index", "error", err)
		os.Exit(2)
	}
	var queries []query.Query
	if err := loadJSON(*dataDir, "test_queries.json", &queries); err != nil {
		log.Error("failed to load queries", "error", err)
		os.Exit(2)
	}
	var snapshot stats.Statistics
	if err := loadJSON(*dataDir, "statistics.json", &snapshot); err != nil {
		log.Error("failed to load statistics", "error", err)
		os.Exit(2)
	}

	log.Info("verifying dataset",
		"documents", len(docs),
		"keywords", len(idx),
		"queries", len(queries),
	)

	if err := verify.Dataset(docs, idx); err != nil {
		log.Error("index verification failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
	if err := verify.Queries(idx, queries); err != nil {
		log.Error("query verification failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
	if err := verify.Statistics(docs, idx, snapshot); err != nil {
		log.Error("statistics verification failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}

	fmt.Printf("OK: %d documents, %d keywords, %d queries verified\n",
		len(docs), len(idx), len(queries))
}

func loadJSON(dir, name string, out any) error {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
