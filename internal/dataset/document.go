// Package dataset defines the synthetic e-health document record and the
// derivation of its searchable keyword set.
package dataset

import (
	"sort"
	"strings"
)

// Document is a single synthetic medical record. Keywords is derived from
// the other fields and is what the index builder consumes; the JSON field
// names are the on-disk contract shared with the benchmark harness.
type Document struct {
	DocID         string   `json:"docId"`
	PatientID     string   `json:"patientId"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Age           int      `json:"age"`
	Department    string   `json:"department"`
	Diagnoses     []string `json:"diagnoses"`
	Treatments    []string `json:"treatments"`
	AdmissionDate string   `json:"admissionDate"`
	ClinicalNotes string   `json:"clinicalNotes"`
	Keywords      []string `json:"keywords"`
}

// Age bucket tokens. Every document carries exactly one.
const (
	BucketYoung   = "giovane"
	BucketAdult   = "adulto"
	BucketElderly = "anziano"
	BucketVeryOld = "molto_anziano"
)

// AgeBucket returns the categorical age token for the fixed bucket
// boundaries [-inf,30), [30,50), [50,70), [70,+inf).
func AgeBucket(age int) string {
	switch {
	case age < 30:
		return BucketYoung
	case age < 50:
		return BucketAdult
	case age < 70:
		return BucketElderly
	default:
		return BucketVeryOld
	}
}

// DeriveKeywords computes the sorted, deduplicated, lowercase keyword set
// for a document: name tokens, the department token, whitespace-split
// tokens of every diagnosis and treatment, and the age-bucket token. The
// result is never empty.
func DeriveKeywords(d Document) []string {
	set := make(map[string]struct{})
	set[strings.ToLower(d.FirstName)] = struct{}{}
	set[strings.ToLower(d.LastName)] = struct{}{}
	set[strings.ToLower(d.Department)] = struct{}{}
	for _, diag := range d.Diagnoses {
		for _, tok := range strings.Fields(strings.ToLower(diag)) {
			set[tok] = struct{}{}
		}
	}
	for _, treat := range d.Treatments {
		for _, tok := range strings.Fields(strings.ToLower(treat)) {
			set[tok] = struct{}{}
		}
	}
	set[AgeBucket(d.Age)] = struct{}{}

	delete(set, "")

	keywords := make([]string, 0, len(set))
	for kw := range set {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}
