package sink_test

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ehealth-bench/datagen/internal/dataset"
	"github.com/ehealth-bench/datagen/internal/generator"
	"github.com/ehealth-bench/datagen/internal/index"
	"github.com/ehealth-bench/datagen/internal/pipeline"
	"github.com/ehealth-bench/datagen/internal/query"
	"github.com/ehealth-bench/datagen/internal/sink"
	"github.com/ehealth-bench/datagen/internal/stats"
	"github.com/ehealth-bench/datagen/pkg/config"
)

func testResult(t *testing.T, n int) *pipeline.Result {
	t.Helper()
	rng := rand.New(rand.NewSource(21))
	docs := generator.New(rng, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).Documents(n)
	idx := index.Build(docs)
	snapshot, err := stats.Compute(docs, idx)
	require.NoError(t, err)
	queries, err := query.NewSynthesizer(rng).Synthesize(idx)
	require.NoError(t, err)
	return &pipeline.Result{
		RunID:       "test-run",
		Seed:        21,
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Duration:    123 * time.Millisecond,
		Documents:   docs,
		Index:       idx,
		Statistics:  snapshot,
		Queries:     queries,
	}
}

func TestFilesWrite(t *testing.T) {
	dir := t.TempDir()
	res := testResult(t, 20)
	files := sink.NewFiles(config.OutputConfig{
		Dir:            dir,
		WriteDocFiles:  true,
		PrettyJSON:     true,
		DocFileWriters: 4,
	})

	require.NoError(t, files.Write(context.Background(), res))

	var docs []dataset.Document
	loadJSON(t, dir, "dataset.json", &docs)
	require.Equal(t, res.Documents, docs)

	var idx index.Index
	loadJSON(t, dir, "keyword_index.json", &idx)
	require.Equal(t, res.Index, idx)

	var snapshot stats.Statistics
	loadJSON(t, dir, "statistics.json", &snapshot)
	require.Equal(t, res.Statistics, snapshot)

	var queries []query.Query
	loadJSON(t, dir, "test_queries.json", &queries)
	require.Equal(t, res.Queries, queries)

	var manifest map[string]any
	loadJSON(t, dir, "manifest.json", &manifest)
	require.Equal(t, "test-run", manifest["runId"])
	require.Equal(t, float64(21), manifest["seed"])
	require.Equal(t, float64(20), manifest["numDocuments"])

	entries, err := os.ReadDir(filepath.Join(dir, "documents"))
	require.NoError(t, err)
	require.Len(t, entries, 20)
	for _, doc := range res.Documents {
		raw, err := os.ReadFile(filepath.Join(dir, "documents", doc.DocID+".txt"))
		require.NoError(t, err)
		require.Equal(t, sink.RenderText(doc), string(raw))
	}
}

func TestFilesWriteSkipsDocFiles(t *testing.T) {
	dir := t.TempDir()
	files := sink.NewFiles(config.OutputConfig{Dir: dir, WriteDocFiles: false})

	require.NoError(t, files.Write(context.Background(), testResult(t, 5)))

	_, err := os.Stat(filepath.Join(dir, "documents"))
	require.True(t, os.IsNotExist(err))
}

func TestRenderText(t *testing.T) {
	doc := dataset.Document{
		DocID:         "DOC1234567",
		PatientID:     "PAT123456",
		FirstName:     "Mario",
		LastName:      "Rossi",
		Age:           61,
		Department:    "Cardiologia",
		Diagnoses:     []string{"aritmia"},
		Treatments:    []string{"holter cardiaco"},
		AdmissionDate: "2024-05-17",
		ClinicalNotes: "Controllo di follow-up.",
		Keywords:      []string{"anziano", "aritmia", "cardiologia"},
	}

	text := sink.RenderText(doc)

	require.Contains(t, text, "Patient ID: PAT123456")
	require.Contains(t, text, "Document ID: DOC1234567")
	require.Contains(t, text, "Name: Mario Rossi")
	require.Contains(t, text, "Department: Cardiologia")
	require.Contains(t, text, "  - aritmia")
	require.Contains(t, text, "  - holter cardiaco")
	require.Contains(t, text, "anziano, aritmia, cardiologia")
}

func loadJSON(t *testing.T, dir, name string, out any) {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
