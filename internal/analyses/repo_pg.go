package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (id, user_id, type, input, output, feature, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		analysis.Type,
		jsonb(analysis.Input),
		jsonb(analysis.Output),
		analysis.Feature,
		analysis.CreatedAt,
	)
	return err
}

// GetByID fetches an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT id, user_id, type, input, output, feature, created_at
FROM analyses
WHERE id = $1`
	a, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

// ListByUser lists analyses ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Analysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	const query = `
SELECT id, user_id, type, input, output, feature, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (Analysis, error) {
	var a Analysis
	var input, output []byte
	if err := row.Scan(&a.ID, &a.UserID, &a.Type, &input, &output, &a.Feature, &a.CreatedAt); err != nil {
		return Analysis{}, err
	}
	a.Input = json.RawMessage(input)
	a.Output = json.RawMessage(output)
	return a, nil
}

func jsonb(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte(`{}`)
	}
	return raw
}
