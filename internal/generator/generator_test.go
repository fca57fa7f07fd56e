package generator_test

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ehealth-bench/datagen/internal/dataset"
	"github.com/ehealth-bench/datagen/internal/generator"
)

var refTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

var (
	docIDPattern     = regexp.MustCompile(`^DOC\d{7}$`)
	patientIDPattern = regexp.MustCompile(`^PAT\d{6}$`)
)

func TestDocumentFields(t *testing.T) {
	g := generator.New(rand.New(rand.NewSource(1)), refTime)

	for i := 0; i < 100; i++ {
		doc := g.Document()

		require.Regexp(t, docIDPattern, doc.DocID)
		require.Regexp(t, patientIDPattern, doc.PatientID)
		require.NotEmpty(t, doc.FirstName)
		require.NotEmpty(t, doc.LastName)
		require.GreaterOrEqual(t, doc.Age, 18)
		require.LessOrEqual(t, doc.Age, 95)
		require.NotEmpty(t, doc.Department)
		require.NotEmpty(t, doc.ClinicalNotes)
		require.NotContains(t, doc.ClinicalNotes, "{", "all template placeholders substituted")

		require.GreaterOrEqual(t, len(doc.Diagnoses), 1)
		require.LessOrEqual(t, len(doc.Diagnoses), 5)
		require.GreaterOrEqual(t, len(doc.Treatments), 1)
		require.LessOrEqual(t, len(doc.Treatments), 6)

		admitted, err := time.Parse("2006-01-02", doc.AdmissionDate)
		require.NoError(t, err)
		require.False(t, admitted.After(refTime))
		require.False(t, admitted.Before(refTime.AddDate(0, 0, -1826)))
	}
}

func TestDocumentKeywords(t *testing.T) {
	g := generator.New(rand.New(rand.NewSource(2)), refTime)

	for i := 0; i < 100; i++ {
		doc := g.Document()

		require.NotEmpty(t, doc.Keywords)
		require.True(t, sort.StringsAreSorted(doc.Keywords))
		for _, kw := range doc.Keywords {
			require.Equal(t, strings.ToLower(kw), kw)
		}
		require.Contains(t, doc.Keywords, strings.ToLower(doc.FirstName))
		require.Contains(t, doc.Keywords, strings.ToLower(doc.LastName))
		require.Contains(t, doc.Keywords, strings.ToLower(doc.Department))
		require.Contains(t, doc.Keywords, dataset.AgeBucket(doc.Age))
		require.Equal(t, dataset.DeriveKeywords(doc), doc.Keywords)
	}
}

func TestDocumentIDsUnique(t *testing.T) {
	g := generator.New(rand.New(rand.NewSource(3)), refTime)
	docs := g.Documents(500)

	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		_, dup := seen[doc.DocID]
		require.False(t, dup, "duplicate doc id %s", doc.DocID)
		seen[doc.DocID] = struct{}{}
	}
}

func TestReproducibleUnderSeed(t *testing.T) {
	first := generator.New(rand.New(rand.NewSource(42)), refTime).Documents(50)
	second := generator.New(rand.New(rand.NewSource(42)), refTime).Documents(50)
	require.Equal(t, first, second)

	different := generator.New(rand.New(rand.NewSource(43)), refTime).Documents(50)
	require.NotEqual(t, first, different)
}
