// Package sink persists a finished generation run: JSON artifacts and text
// renderings on disk, plus optional Postgres, Redis, and Kafka loads for
// benchmark harnesses that consume the dataset from there.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ehealth-bench/datagen/internal/dataset"
	"github.com/ehealth-bench/datagen/internal/pipeline"
	"github.com/ehealth-bench/datagen/pkg/config"
)

// Files writes the canonical dataset layout: dataset.json, the inverted
// index, statistics, queries, a run manifest, and one text file per
// document under documents/.
type Files struct {
	cfg config.OutputConfig
}

// NewFiles creates the file sink.
func NewFiles(cfg config.OutputConfig) *Files {
	return &Files{cfg: cfg}
}

func (f *Files) Name() string { return "files" }

// manifest records run provenance so a dataset directory is self-describing.
type manifest struct {
	RunID        string    `json:"runId"`
	Seed         int64     `json:"seed"`
	NumDocuments int       `json:"numDocuments"`
	NumKeywords  int       `json:"numKeywords"`
	NumQueries   int       `json:"numQueries"`
	GeneratedAt  time.Time `json:"generatedAt"`
	DurationMs   int64     `json:"durationMs"`
}

func (f *Files) Write(ctx context.Context, res *pipeline.Result) error {
	if err := os.MkdirAll(f.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	artifacts := []struct {
		name string
		data any
	}{
		{"dataset.json", res.Documents},
		{"keyword_index.json", res.Index},
		{"statistics.json", res.Statistics},
		{"test_queries.json", res.Queries},
		{"manifest.json", manifest{
			RunID:        res.RunID,
			Seed:         res.Seed,
			NumDocuments: len(res.Documents),
			NumKeywords:  len(res.Index),
			NumQueries:   len(res.Queries),
			GeneratedAt:  res.GeneratedAt,
			DurationMs:   res.Duration.Milliseconds(),
		}},
	}
	for _, artifact := range artifacts {
		if err := f.writeJSON(artifact.name, artifact.data); err != nil {
			return err
		}
	}

	if f.cfg.WriteDocFiles {
		return f.writeDocumentFiles(res.Documents)
	}
	return nil
}

func (f *Files) writeJSON(name string, data any) error {
	var (
		raw []byte
		err error
	)
	if f.cfg.PrettyJSON {
		raw, err = json.MarshalIndent(data, "", "  ")
	} else {
		raw, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	path := filepath.Join(f.cfg.Dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// writeDocumentFiles renders one text file per document under documents/,
// with a bounded number of concurrent writers.
func (f *Files) writeDocumentFiles(docs []dataset.Document) error {
	docsDir := filepath.Join(f.cfg.Dir, "documents")
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return fmt.Errorf("creating documents dir: %w", err)
	}

	writers := f.cfg.DocFileWriters
	if writers <= 0 {
		writers = 8
	}
	var g errgroup.Group
	g.SetLimit(writers)
	for _, doc := range docs {
		g.Go(func() error {
			path := filepath.Join(docsDir, doc.DocID+".txt")
			if err := os.WriteFile(path, []byte(RenderText(doc)), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// RenderText produces the plain-text rendering of a document used by
// file-based indexers.
func RenderText(doc dataset.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patient ID: %s\n", doc.PatientID)
	fmt.Fprintf(&b, "Document ID: %s\n", doc.DocID)
	fmt.Fprintf(&b, "Name: %s %s\n", doc.FirstName, doc.LastName)
	fmt.Fprintf(&b, "Age: %d\n", doc.Age)
	fmt.Fprintf(&b, "Department: %s\n", doc.Department)
	fmt.Fprintf(&b, "Admission Date: %s\n", doc.AdmissionDate)
	b.WriteString("\nDiagnoses:\n")
	for _, d := range doc.Diagnoses {
		fmt.Fprintf(&b, "  - %s\n", d)
	}
	b.WriteString("\nTreatments:\n")
	for _, t := range doc.Treatments {
		fmt.Fprintf(&b, "  - %s\n", t)
	}
	b.WriteString("\nClinical Notes:\n")
	b.WriteString(doc.ClinicalNotes)
	b.WriteString("\n\nKeywords:\n")
	b.WriteString(strings.Join(doc.Keywords, ", "))
	return b.String()
}
