package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"careergenie-backend/internal/resume"
)

// PGRepo implements ResumesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, file_name, storage_key, content_type, file_size, parsed_data, processing_method, confidence, status, uploaded_at`

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    file_name,
    storage_key,
    content_type,
    file_size,
    parsed_data,
    processing_method,
    confidence,
    status,
    uploaded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	parsed, err := json.Marshal(res.ParsedData)
	if err != nil {
		return fmt.Errorf("marshal parsed data: %w", err)
	}
	status := res.Status
	if status == "" {
		status = StatusProcessed
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.FileName,
		res.StorageKey,
		res.ContentType,
		res.FileSize,
		parsed,
		string(res.ProcessingMethod),
		res.Confidence,
		status,
		res.UploadedAt,
	)
	return err
}

// GetByID fetches a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	query := `SELECT ` + selectColumns + ` FROM resumes WHERE id = $1 LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, id))
}

// LatestByUser returns the newest resume for a user.
func (r *PGRepo) LatestByUser(ctx context.Context, userID string) (Resume, error) {
	query := `SELECT ` + selectColumns + ` FROM resumes WHERE user_id = $1 ORDER BY uploaded_at DESC LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, userID))
}

// ListByUser lists resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Resume, error) {
	query := `SELECT ` + selectColumns + ` FROM resumes WHERE user_id = $1 ORDER BY uploaded_at DESC LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Delete removes a resume record.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var parsed []byte
	var method string
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.FileName,
		&res.StorageKey,
		&res.ContentType,
		&res.FileSize,
		&parsed,
		&method,
		&res.Confidence,
		&res.Status,
		&res.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	res.ProcessingMethod = resume.Method(method)
	if len(parsed) > 0 {
		if err := json.Unmarshal(parsed, &res.ParsedData); err != nil {
			return Resume{}, fmt.Errorf("decode parsed data: %w", err)
		}
	}
	res.ParsedData.Normalize()
	return res, nil
}
