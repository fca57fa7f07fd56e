// Package query synthesizes benchmark query workloads over an inverted
// index: single-keyword queries stratified by document frequency, plus
// two-keyword AND and OR queries with exact expected cardinalities.
package query

import (
	"math/rand"
	"sort"

	"github.com/ehealth-bench/datagen/internal/index"
	apperrors "github.com/ehealth-bench/datagen/pkg/errors"
)

// Query types.
const (
	TypeSingle = "single"
	TypeAnd    = "AND"
	TypeOr     = "OR"
)

// Frequency categories for single-keyword queries.
const (
	CategoryRare   = "rare"
	CategoryMedium = "medium"
	CategoryCommon = "common"
)

// Query is one synthesized benchmark query. Category is set only for
// single-keyword queries. ExpectedResults is the exact cardinality of the
// correct result set under the query's boolean semantics.
type Query struct {
	Type            string   `json:"type"`
	Category        string   `json:"category,omitempty"`
	Keywords        []string `json:"keywords"`
	ExpectedResults int      `json:"expectedResults"`
}

// Synthesizer draws benchmark queries from an index. All randomness flows
// through the injected generator so a fixed seed reproduces the exact
// query set.
type Synthesizer struct {
	rng            *rand.Rand
	singlesPerTier int
	pairQueries    int
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSinglesPerTier sets the target number of single-keyword queries drawn
// from each frequency tier (default 5).
func WithSinglesPerTier(n int) Option {
	return func(s *Synthesizer) { s.singlesPerTier = n }
}

// WithPairQueries sets the number of AND and of OR queries (default 10 each).
func WithPairQueries(n int) Option {
	return func(s *Synthesizer) { s.pairQueries = n }
}

// NewSynthesizer creates a Synthesizer owning the given random generator.
func NewSynthesizer(rng *rand.Rand, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rng:            rng,
		singlesPerTier: 5,
		pairQueries:    10,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize emits single-keyword queries for the rare, medium, and common
// tiers in that order, then AND queries, then OR queries. It fails with
// ErrInsufficientVocabulary if pair queries are requested over fewer than
// two distinct keywords; an empty tier contributes zero single queries
// rather than failing.
func (s *Synthesizer) Synthesize(idx index.Index) ([]Query, error) {
	if len(idx) == 0 {
		return nil, apperrors.Newf(apperrors.ErrInsufficientVocabulary, 4, "index has no keywords")
	}
	vocab := byFrequency(idx)
	rare, medium, common := stratify(vocab)

	queries := make([]Query, 0, 3*s.singlesPerTier+2*s.pairQueries)
	for _, tier := range []struct {
		category string
		keywords []string
	}{
		{CategoryRare, rare},
		{CategoryMedium, medium},
		{CategoryCommon, common},
	} {
		for _, kw := range s.sample(tier.keywords, s.singlesPerTier) {
			queries = append(queries, Query{
				Type:            TypeSingle,
				Category:        tier.category,
				Keywords:        []string{kw},
				ExpectedResults: idx.DocFrequency(kw),
			})
		}
	}

	if s.pairQueries > 0 && len(vocab) < 2 {
		return nil, apperrors.Newf(apperrors.ErrInsufficientVocabulary,
			4, "pair queries need 2 distinct keywords, index has %d", len(vocab))
	}
	for i := 0; i < s.pairQueries; i++ {
		k1, k2 := s.pickPair(vocab)
		queries = append(queries, Query{
			Type:            TypeAnd,
			Keywords:        []string{k1, k2},
			ExpectedResults: idx.IntersectionSize(k1, k2),
		})
	}
	for i := 0; i < s.pairQueries; i++ {
		k1, k2 := s.pickPair(vocab)
		queries = append(queries, Query{
			Type:            TypeOr,
			Keywords:        []string{k1, k2},
			ExpectedResults: idx.UnionSize(k1, k2),
		})
	}
	return queries, nil
}

// byFrequency returns the index keys sorted ascending by document
// frequency, ties broken by ascending keyword. Map iteration order never
// reaches the output.
func byFrequency(idx index.Index) []string {
	keys := idx.Keywords()
	sort.SliceStable(keys, func(i, j int) bool {
		return idx.DocFrequency(keys[i]) < idx.DocFrequency(keys[j])
	})
	return keys
}

// stratify slices the frequency-sorted vocabulary into thirds: the lowest
// n/3 keys are rare, the highest n/3 common, and the medium tier absorbs
// the remainder.
func stratify(sorted []string) (rare, medium, common []string) {
	n := len(sorted)
	k := n / 3
	return sorted[:k], sorted[k : n-k], sorted[n-k:]
}

// sample draws min(target, len(keywords)) elements uniformly at random
// without replacement.
func (s *Synthesizer) sample(keywords []string, target int) []string {
	n := target
	if len(keywords) < n {
		n = len(keywords)
	}
	if n <= 0 {
		return nil
	}
	picked := make([]string, 0, n)
	for _, i := range s.rng.Perm(len(keywords))[:n] {
		picked = append(picked, keywords[i])
	}
	return picked
}

// pickPair draws two distinct keywords uniformly at random.
func (s *Synthesizer) pickPair(vocab []string) (string, string) {
	i := s.rng.Intn(len(vocab))
	j := s.rng.Intn(len(vocab) - 1)
	if j >= i {
		j++
	}
	return vocab[i], vocab[j]
}
