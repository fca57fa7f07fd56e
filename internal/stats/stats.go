// Package stats computes the aggregate statistics snapshot over a generated
// corpus and its inverted index.
package stats

import (
	"math"
	"sort"

	"github.com/ehealth-bench/datagen/internal/dataset"
	"github.com/ehealth-bench/datagen/internal/index"
	apperrors "github.com/ehealth-bench/datagen/pkg/errors"
)

const topKeywordCount = 20

// KeywordCount pairs a keyword with its document frequency.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// AgeDistribution is the fixed four-bucket age histogram.
type AgeDistribution struct {
	Under30 int `json:"under30"`
	From30  int `json:"30to49"`
	From50  int `json:"50to69"`
	Plus70  int `json:"70plus"`
}

// Statistics is an immutable snapshot derived from (documents, index).
// Field names are the on-disk contract.
type Statistics struct {
	NumDocuments           int             `json:"numDocuments"`
	NumUniqueKeywords      int             `json:"numUniqueKeywords"`
	AvgKeywordsPerDocument float64         `json:"avgKeywordsPerDocument"`
	MinKeywordsPerDocument int             `json:"minKeywordsPerDocument"`
	MaxKeywordsPerDocument int             `json:"maxKeywordsPerDocument"`
	AvgDocumentsPerKeyword float64         `json:"avgDocumentsPerKeyword"`
	MinDocumentsPerKeyword int             `json:"minDocumentsPerKeyword"`
	MaxDocumentsPerKeyword int             `json:"maxDocumentsPerKeyword"`
	TopKeywords            []KeywordCount  `json:"topKeywords"`
	Departments            []string        `json:"departments"`
	AgeDistribution        AgeDistribution `json:"ageDistribution"`
}

// Compute derives the statistics snapshot. It fails with ErrDegenerateInput
// when the document set or the index is empty, since means and extrema are
// undefined there. Averages are rounded to 2 decimal places, half away from
// zero. Departments are sorted ascending; topKeywords ties are broken by
// ascending keyword.
func Compute(docs []dataset.Document, idx index.Index) (Statistics, error) {
	if len(docs) == 0 {
		return Statistics{}, apperrors.Newf(apperrors.ErrDegenerateInput, 3, "empty document set")
	}
	if len(idx) == 0 {
		return Statistics{}, apperrors.Newf(apperrors.ErrDegenerateInput, 3, "empty index")
	}

	s := Statistics{
		NumDocuments:      len(docs),
		NumUniqueKeywords: len(idx),
	}

	totalKeywords := 0
	minKw, maxKw := len(docs[0].Keywords), len(docs[0].Keywords)
	deptSet := make(map[string]struct{})
	for _, doc := range docs {
		n := len(doc.Keywords)
		totalKeywords += n
		if n < minKw {
			minKw = n
		}
		if n > maxKw {
			maxKw = n
		}
		deptSet[doc.Department] = struct{}{}

		switch {
		case doc.Age < 30:
			s.AgeDistribution.Under30++
		case doc.Age < 50:
			s.AgeDistribution.From30++
		case doc.Age < 70:
			s.AgeDistribution.From50++
		default:
			s.AgeDistribution.Plus70++
		}
	}
	s.AvgKeywordsPerDocument = round2(float64(totalKeywords) / float64(len(docs)))
	s.MinKeywordsPerDocument = minKw
	s.MaxKeywordsPerDocument = maxKw

	frequencies := make([]KeywordCount, 0, len(idx))
	totalPostings := 0
	minFreq, maxFreq := 0, 0
	first := true
	for _, kw := range idx.Keywords() {
		freq := idx.DocFrequency(kw)
		frequencies = append(frequencies, KeywordCount{Keyword: kw, Count: freq})
		totalPostings += freq
		if first {
			minFreq, maxFreq = freq, freq
			first = false
			continue
		}
		if freq < minFreq {
			minFreq = freq
		}
		if freq > maxFreq {
			maxFreq = freq
		}
	}
	s.AvgDocumentsPerKeyword = round2(float64(totalPostings) / float64(len(idx)))
	s.MinDocumentsPerKeyword = minFreq
	s.MaxDocumentsPerKeyword = maxFreq

	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].Keyword < frequencies[j].Keyword
	})
	if len(frequencies) > topKeywordCount {
		frequencies = frequencies[:topKeywordCount]
	}
	s.TopKeywords = frequencies

	departments := make([]string, 0, len(deptSet))
	for dept := range deptSet {
		departments = append(departments, dept)
	}
	sort.Strings(departments)
	s.Departments = departments

	return s, nil
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
