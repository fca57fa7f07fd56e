package index_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ehealth-bench/datagen/internal/dataset"
	"github.com/ehealth-bench/datagen/internal/generator"
	"github.com/ehealth-bench/datagen/internal/index"
)

func doc(id string, keywords ...string) dataset.Document {
	return dataset.Document{DocID: id, Keywords: keywords}
}

func TestBuild(t *testing.T) {
	docs := []dataset.Document{
		doc("A", "x", "y"),
		doc("B", "y", "z"),
		doc("C", "x"),
	}

	idx := index.Build(docs)

	require.Equal(t, index.Index{
		"x": {"A", "C"},
		"y": {"A", "B"},
		"z": {"B"},
	}, idx)
}

func TestBuildCompletenessAndSoundness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	docs := generator.New(rng, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).Documents(200)

	idx := index.Build(docs)

	// Completeness: every document keyword lists the document.
	for _, d := range docs {
		for _, kw := range d.Keywords {
			require.Contains(t, idx[kw], d.DocID, "keyword %q should list %s", kw, d.DocID)
		}
	}

	// Soundness: every posting points back to a document containing the key.
	byID := make(map[string]dataset.Document)
	for _, d := range docs {
		byID[d.DocID] = d
	}
	for kw, ids := range idx {
		require.NotEmpty(t, ids, "no phantom keys")
		for _, id := range ids {
			require.Contains(t, byID[id].Keywords, kw)
		}
	}
}

func TestBuildDeduplicatesRepeatedInput(t *testing.T) {
	d := doc("A", "x", "y")
	idx := index.Build([]dataset.Document{d, d})

	require.Equal(t, []string{"A"}, idx["x"])
	require.Equal(t, []string{"A"}, idx["y"])
}

func TestBuildIdempotent(t *testing.T) {
	docs := []dataset.Document{
		doc("A", "x", "y"),
		doc("B", "y", "z"),
	}
	require.Equal(t, index.Build(docs), index.Build(docs))
}

func TestBuildAcceptsEmptyKeywordSet(t *testing.T) {
	idx := index.Build([]dataset.Document{doc("A"), doc("B", "x")})
	require.Equal(t, index.Index{"x": {"B"}}, idx)
}

func TestKeywordsSorted(t *testing.T) {
	idx := index.Build([]dataset.Document{doc("A", "z", "m", "a")})
	require.Equal(t, []string{"a", "m", "z"}, idx.Keywords())
}

func TestSetOperations(t *testing.T) {
	idx := index.Build([]dataset.Document{
		doc("A", "x", "y"),
		doc("B", "y", "z"),
		doc("C", "x"),
	})

	require.Equal(t, 1, idx.IntersectionSize("x", "y"))
	require.Equal(t, 1, idx.IntersectionSize("y", "x"))
	require.Equal(t, 0, idx.IntersectionSize("z", "x"))
	require.Equal(t, 3, idx.UnionSize("x", "z"))
	require.Equal(t, 2, idx.UnionSize("x", "x"))
	require.Equal(t, 5, idx.PostingCount())
	require.Equal(t, 2, idx.DocFrequency("x"))
	require.Equal(t, 0, idx.DocFrequency("missing"))
}

func TestPostingsReturnsCopy(t *testing.T) {
	idx := index.Build([]dataset.Document{doc("A", "x"), doc("B", "x")})

	postings := idx.Postings("x")
	postings[0] = "mutated"
	require.Equal(t, []string{"A", "B"}, idx.Postings("x"))

	require.Nil(t, idx.Postings("missing"))
}

func BenchmarkBuild(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	docs := generator.New(rng, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).Documents(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx := index.Build(docs)
		if len(idx) == 0 {
			b.Fatal("empty index")
		}
	}
}

func BenchmarkIntersectionSize(b *testing.B) {
	docs := make([]dataset.Document, 0, 10000)
	for i := 0; i < 10000; i++ {
		kws := []string{"common"}
		if i%2 == 0 {
			kws = append(kws, "even")
		}
		docs = append(docs, doc(fmt.Sprintf("DOC%07d", i), kws...))
	}
	idx := index.Build(docs)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if n := idx.IntersectionSize("common", "even"); n != 5000 {
			b.Fatalf("got %d", n)
		}
	}
}
