// Package db provides PostgreSQL database access for run and artifact
// storage.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/docforge/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun creates a new generation run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, elementName string, category types.Category) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO runs (element_name, category, status)
		 VALUES ($1, $2, 'running')
		 RETURNING id`,
		elementName, string(category),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run as finished with its validation outcome
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, verdict types.Verdict, score, completionRate int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE runs SET status = $1, verdict = $2, score = $3, completion_rate = $4, completed_at = NOW()
		 WHERE id = $5`,
		status, string(verdict), score, completionRate, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact for a run
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, step, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// SaveTextArtifact stores a text artifact (narrative, annotation) for a run
func (db *DB) SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, text string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, text_content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET text_content = $3, created_at = NOW()`,
		runID, step, text,
	)
	if err != nil {
		return fmt.Errorf("failed to save text artifact %s: %w", step, err)
	}
	return nil
}

// SaveDocument persists one composed document, its validation outcome
// and the result envelope in a single transaction: the run row and all
// artifacts land together or not at all.
func (db *DB) SaveDocument(ctx context.Context, doc *types.ComposedDocument, vr *types.ValidationResult, envelope any) (uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var runID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO runs (element_name, category, status, verdict, score, completion_rate, completed_at)
		 VALUES ($1, $2, 'completed', $3, $4, $5, NOW())
		 RETURNING id`,
		doc.ElementName, string(doc.Category), string(vr.Verdict), vr.Score, doc.CompletionRate,
	).Scan(&runID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}

	schemaJSON, err := json.Marshal(doc.Schema)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal schema artifact: %w", err)
	}

	type artifactRow struct {
		step string
		text string
		json []byte
	}
	batch := []artifactRow{
		{step: StepNarrative, text: doc.Narrative},
		{step: StepSchema, json: schemaJSON},
		{step: StepAnnotation, text: doc.Annotation},
	}
	if envelope != nil {
		envJSON, err := json.Marshal(envelope)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal envelope artifact: %w", err)
		}
		batch = append(batch, artifactRow{step: StepEnvelope, json: envJSON})
	}
	for _, a := range batch {
		if a.json != nil {
			_, err = tx.Exec(ctx,
				`INSERT INTO artifacts (run_id, step, content) VALUES ($1, $2, $3)`,
				runID, a.step, a.json)
		} else {
			_, err = tx.Exec(ctx,
				`INSERT INTO artifacts (run_id, step, text_content) VALUES ($1, $2, $3)`,
				runID, a.step, a.text)
		}
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to save artifact %s: %w", a.step, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit document: %w", err)
	}
	return runID, nil
}

// GetArtifact retrieves a JSON artifact by run ID and step
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, step string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", step, err)
	}
	return content, nil
}

// GetTextArtifact retrieves a text artifact by run ID and step
func (db *DB) GetTextArtifact(ctx context.Context, runID uuid.UUID, step string) (string, error) {
	var text string
	err := db.pool.QueryRow(ctx,
		`SELECT text_content FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&text)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get text artifact %s: %w", step, err)
	}
	return text, nil
}

// GetRun retrieves a run by ID
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, element_name, category, status, COALESCE(verdict, ''), score, completion_rate, created_at, completed_at
		 FROM runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.ElementName, &run.Category, &run.Status, &run.Verdict, &run.Score, &run.CompletionRate, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// RunFilters holds optional filters for listing runs
type RunFilters struct {
	ElementName string
	Verdict     string
	Limit       int
}

// ListRuns retrieves recent runs with optional filters
func (db *DB) ListRuns(ctx context.Context, filters RunFilters) ([]Run, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, element_name, category, status, COALESCE(verdict, ''), score, completion_rate, created_at, completed_at
		FROM runs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.ElementName != "" {
		query += fmt.Sprintf(" AND element_name ILIKE $%d", argNum)
		args = append(args, "%"+filters.ElementName+"%")
		argNum++
	}
	if filters.Verdict != "" {
		query += fmt.Sprintf(" AND verdict = $%d", argNum)
		args = append(args, filters.Verdict)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.ElementName, &run.Category, &run.Status, &run.Verdict, &run.Score, &run.CompletionRate, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// DeleteRun deletes a run and all its artifacts (via cascade)
func (db *DB) DeleteRun(ctx context.Context, runID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM runs WHERE id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}
