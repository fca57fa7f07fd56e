// Package verify cross-checks the generated artifacts against each other:
// index against documents, queries and statistics against the index. It
// recomputes every expected value independently instead of trusting the
// values produced by the pipeline.
package verify

import (
	"github.com/ehealth-bench/datagen/internal/dataset"
	"github.com/ehealth-bench/datagen/internal/index"
	"github.com/ehealth-bench/datagen/internal/query"
	"github.com/ehealth-bench/datagen/internal/stats"
	apperrors "github.com/ehealth-bench/datagen/pkg/errors"
)

// Dataset checks the three structural index invariants: completeness (every
// document keyword is indexed under that document's id), soundness (every
// posting belongs to a document containing the keyword), and absence of
// phantom keys and duplicate postings.
func Dataset(docs []dataset.Document, idx index.Index) error {
	byID := make(map[string]map[string]struct{}, len(docs))
	for _, doc := range docs {
		kws := make(map[string]struct{}, len(doc.Keywords))
		for _, kw := range doc.Keywords {
			kws[kw] = struct{}{}
		}
		byID[doc.DocID] = kws
	}

	for _, doc := range docs {
		for _, kw := range doc.Keywords {
			found := false
			for _, id := range idx[kw] {
				if id == doc.DocID {
					found = true
					break
				}
			}
			if !found {
				return apperrors.Newf(apperrors.ErrInconsistentIndex,
					5, "document %s missing from posting list of %q", doc.DocID, kw)
			}
		}
	}

	for kw, ids := range idx {
		if len(ids) == 0 {
			return apperrors.Newf(apperrors.ErrInconsistentIndex,
				5, "phantom key %q with empty posting list", kw)
		}
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				return apperrors.Newf(apperrors.ErrInconsistentIndex,
					5, "duplicate posting %s under %q", id, kw)
			}
			seen[id] = struct{}{}
			kws, ok := byID[id]
			if !ok {
				return apperrors.Newf(apperrors.ErrInconsistentIndex,
					5, "posting %s under %q refers to unknown document", id, kw)
			}
			if _, ok := kws[kw]; !ok {
				return apperrors.Newf(apperrors.ErrInconsistentIndex,
					5, "document %s indexed under %q but does not contain it", id, kw)
			}
		}
	}
	return nil
}

// Queries recomputes the expected cardinality of every query from the index
// under set semantics and compares it to the stored value.
func Queries(idx index.Index, queries []query.Query) error {
	for i, q := range queries {
		var want int
		switch q.Type {
		case query.TypeSingle:
			if len(q.Keywords) != 1 {
				return apperrors.Newf(apperrors.ErrInvalidInput,
					2, "query %d: single query has %d keywords", i, len(q.Keywords))
			}
			want = len(idx.PostingSet(q.Keywords[0]))
		case query.TypeAnd:
			if len(q.Keywords) != 2 {
				return apperrors.Newf(apperrors.ErrInvalidInput,
					2, "query %d: AND query has %d keywords", i, len(q.Keywords))
			}
			want = idx.IntersectionSize(q.Keywords[0], q.Keywords[1])
		case query.TypeOr:
			if len(q.Keywords) != 2 {
				return apperrors.Newf(apperrors.ErrInvalidInput,
					2, "query %d: OR query has %d keywords", i, len(q.Keywords))
			}
			want = idx.UnionSize(q.Keywords[0], q.Keywords[1])
		default:
			return apperrors.Newf(apperrors.ErrInvalidInput,
				2, "query %d: unknown type %q", i, q.Type)
		}
		if q.ExpectedResults != want {
			return apperrors.Newf(apperrors.ErrInconsistentIndex,
				5, "query %d (%s %v): expectedResults=%d, recomputed %d",
				i, q.Type, q.Keywords, q.ExpectedResults, want)
		}
	}
	return nil
}

// Statistics recomputes the snapshot from (documents, index) and compares
// the frequency-related fields against the stored one.
func Statistics(docs []dataset.Document, idx index.Index, got stats.Statistics) error {
	want, err := stats.Compute(docs, idx)
	if err != nil {
		return err
	}
	if got.NumDocuments != want.NumDocuments ||
		got.NumUniqueKeywords != want.NumUniqueKeywords ||
		got.AvgKeywordsPerDocument != want.AvgKeywordsPerDocument ||
		got.MinKeywordsPerDocument != want.MinKeywordsPerDocument ||
		got.MaxKeywordsPerDocument != want.MaxKeywordsPerDocument ||
		got.AvgDocumentsPerKeyword != want.AvgDocumentsPerKeyword ||
		got.MinDocumentsPerKeyword != want.MinDocumentsPerKeyword ||
		got.MaxDocumentsPerKeyword != want.MaxDocumentsPerKeyword {
		return apperrors.Newf(apperrors.ErrInconsistentIndex,
			5, "statistics snapshot does not match recomputation")
	}
	return nil
}
