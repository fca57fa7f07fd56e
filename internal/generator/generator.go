// Package generator produces the synthetic e-health document corpus: Italian
// patient records with departments, diagnoses, treatments, template-filled
// clinical notes, and a derived keyword set per document.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ehealth-bench/datagen/internal/dataset"
)

// admissionWindowDays bounds admission dates to the five years before the
// reference time.
const admissionWindowDays = 1825

// Generator emits synthetic documents. All randomness flows through the
// injected generator, so a fixed seed reproduces the exact corpus relative
// to the same reference time.
type Generator struct {
	rng        *rand.Rand
	now        time.Time
	usedDocIDs map[string]struct{}
}

// New creates a Generator owning the given random generator. Admission
// dates are derived from now.
func New(rng *rand.Rand, now time.Time) *Generator {
	return &Generator{
		rng:        rng,
		now:        now,
		usedDocIDs: make(map[string]struct{}),
	}
}

// Documents generates n documents.
func (g *Generator) Documents(n int) []dataset.Document {
	docs := make([]dataset.Document, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, g.Document())
	}
	return docs
}

// Document generates a single record with a unique document id and a
// non-empty derived keyword set.
func (g *Generator) Document() dataset.Document {
	doc := dataset.Document{
		DocID:      g.docID(),
		PatientID:  fmt.Sprintf("PAT%06d", g.rng.Intn(900000)+100000),
		FirstName:  firstNames[g.rng.Intn(len(firstNames))],
		LastName:   lastNames[g.rng.Intn(len(lastNames))],
		Age:        g.rng.Intn(78) + 18,
		Department: departments[g.rng.Intn(len(departments))],
		Diagnoses:  g.sampleStrings(diagnoses, g.rng.Intn(5)+1),
		Treatments: g.sampleStrings(treatments, g.rng.Intn(6)+1),
	}
	daysAgo := g.rng.Intn(admissionWindowDays + 1)
	doc.AdmissionDate = g.now.AddDate(0, 0, -daysAgo).Format("2006-01-02")
	doc.ClinicalNotes = g.clinicalNotes()
	doc.Keywords = dataset.DeriveKeywords(doc)
	return doc
}

// docID mints a DOC-prefixed identifier, retrying on the rare collision so
// ids stay unique within a run.
func (g *Generator) docID() string {
	for {
		id := fmt.Sprintf("DOC%07d", g.rng.Intn(9000000)+1000000)
		if _, taken := g.usedDocIDs[id]; !taken {
			g.usedDocIDs[id] = struct{}{}
			return id
		}
	}
}

// sampleStrings draws n distinct elements from pool without replacement.
func (g *Generator) sampleStrings(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	indices := g.rng.Perm(len(pool))[:n]
	out := make([]string, 0, n)
	for _, i := range indices {
		out = append(out, pool[i])
	}
	return out
}
