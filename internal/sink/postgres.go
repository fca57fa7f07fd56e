package sink

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ehealth-bench/datagen/internal/pipeline"
	"github.com/ehealth-bench/datagen/pkg/postgres"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	seed          BIGINT NOT NULL,
	num_documents INT NOT NULL,
	generated_at  TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS documents (
	doc_id         TEXT PRIMARY KEY,
	run_id         TEXT NOT NULL REFERENCES runs(run_id),
	patient_id     TEXT NOT NULL,
	first_name     TEXT NOT NULL,
	last_name      TEXT NOT NULL,
	age            INT NOT NULL,
	department     TEXT NOT NULL,
	diagnoses      TEXT[] NOT NULL,
	treatments     TEXT[] NOT NULL,
	admission_date DATE NOT NULL,
	clinical_notes TEXT NOT NULL,
	keywords       TEXT[] NOT NULL
);
CREATE TABLE IF NOT EXISTS index_entries (
	keyword  TEXT NOT NULL,
	doc_id   TEXT NOT NULL REFERENCES documents(doc_id),
	position INT NOT NULL,
	PRIMARY KEY (keyword, doc_id)
);
CREATE INDEX IF NOT EXISTS idx_index_entries_keyword ON index_entries (keyword);
`

// Postgres loads a run into a relational schema so harnesses can join
// posting lists against document attributes.
type Postgres struct {
	client *postgres.Client
}

// NewPostgres creates the Postgres sink on an existing client.
func NewPostgres(client *postgres.Client) *Postgres {
	return &Postgres{client: client}
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) Write(ctx context.Context, res *pipeline.Result) error {
	if _, err := p.client.DB.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return p.client.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (run_id, seed, num_documents, generated_at) VALUES ($1, $2, $3, $4)`,
			res.RunID, res.Seed, len(res.Documents), res.GeneratedAt,
		); err != nil {
			return fmt.Errorf("inserting run: %w", err)
		}

		docStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO documents (doc_id, run_id, patient_id, first_name, last_name,
				age, department, diagnoses, treatments, admission_date, clinical_notes, keywords)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`)
		if err != nil {
			return fmt.Errorf("preparing document insert: %w", err)
		}
		defer docStmt.Close()

		for _, doc := range res.Documents {
			if _, err := docStmt.ExecContext(ctx,
				doc.DocID, res.RunID, doc.PatientID, doc.FirstName, doc.LastName,
				doc.Age, doc.Department, pq.Array(doc.Diagnoses), pq.Array(doc.Treatments),
				doc.AdmissionDate, doc.ClinicalNotes, pq.Array(doc.Keywords),
			); err != nil {
				return fmt.Errorf("inserting document %s: %w", doc.DocID, err)
			}
		}

		entryStmt, err := tx.PrepareContext(ctx,
			`INSERT INTO index_entries (keyword, doc_id, position) VALUES ($1, $2, $3)`)
		if err != nil {
			return fmt.Errorf("preparing index insert: %w", err)
		}
		defer entryStmt.Close()

		for _, kw := range res.Index.Keywords() {
			for pos, docID := range res.Index[kw] {
				if _, err := entryStmt.ExecContext(ctx, kw, docID, pos); err != nil {
					return fmt.Errorf("inserting index entry %q/%s: %w", kw, docID, err)
				}
			}
		}
		return nil
	})
}
