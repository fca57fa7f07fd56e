// Package index builds and queries the inverted keyword index over a
// generated document corpus.
package index

import (
	"sort"

	"github.com/ehealth-bench/datagen/internal/dataset"
)

// Index maps a keyword to the ordered list of document ids containing it.
// List order is the insertion order of a single pass over the input
// documents, which keeps serialized output reproducible.
type Index map[string][]string

// Build inverts the document->keywords relation. Document ids are expected
// to be unique across the input; the builder still de-duplicates per key so
// a violated precondition cannot produce a posting list with repeats.
func Build(docs []dataset.Document) Index {
	idx := make(Index)
	seen := make(map[string]map[string]struct{})
	for _, doc := range docs {
		for _, kw := range doc.Keywords {
			ids, ok := seen[kw]
			if !ok {
				ids = make(map[string]struct{})
				seen[kw] = ids
			}
			if _, dup := ids[doc.DocID]; dup {
				continue
			}
			ids[doc.DocID] = struct{}{}
			idx[kw] = append(idx[kw], doc.DocID)
		}
	}
	return idx
}

// Keywords returns all index keys in ascending lexicographic order.
func (idx Index) Keywords() []string {
	keys := make([]string, 0, len(idx))
	for kw := range idx {
		keys = append(keys, kw)
	}
	sort.Strings(keys)
	return keys
}

// DocFrequency returns the number of documents containing the keyword.
func (idx Index) DocFrequency(keyword string) int {
	return len(idx[keyword])
}

// Postings returns a copy of the posting list for the keyword, nil if the
// keyword is not indexed.
func (idx Index) Postings(keyword string) []string {
	ids, ok := idx[keyword]
	if !ok {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// PostingSet returns the posting list as a set. Boolean cardinalities are
// always computed over this view, never over raw list lengths.
func (idx Index) PostingSet(keyword string) map[string]struct{} {
	ids := idx[keyword]
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// PostingCount returns the total number of document-id entries across all
// posting lists.
func (idx Index) PostingCount() int {
	total := 0
	for _, ids := range idx {
		total += len(ids)
	}
	return total
}

// IntersectionSize returns |postings(a) ∩ postings(b)| under set semantics.
func (idx Index) IntersectionSize(a, b string) int {
	setA := idx.PostingSet(a)
	n := 0
	for _, id := range idx[b] {
		if _, ok := setA[id]; ok {
			n++
		}
	}
	return n
}

// UnionSize returns |postings(a) ∪ postings(b)| under set semantics.
func (idx Index) UnionSize(a, b string) int {
	union := idx.PostingSet(a)
	for _, id := range idx[b] {
		union[id] = struct{}{}
	}
	return len(union)
}
