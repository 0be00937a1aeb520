package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

// SaveResume stores text and returns its ID. Saving identical text again
// returns the existing ID and updates the label.
func (db *DB) SaveResume(ctx context.Context, label, text string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (label, content_hash, text_content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (content_hash) DO UPDATE SET label = EXCLUDED.label
		 RETURNING id`,
		label, ingestion.ContentHash(text), text,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

// GetResumeText returns the stored text, or an error wrapping ErrNotFound.
func (db *DB) GetResumeText(ctx context.Context, id uuid.UUID) (string, error) {
	var text string
	err := db.pool.QueryRow(ctx, `SELECT text_content FROM resumes WHERE id = $1`, id).Scan(&text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("failed to get resume: %w", err)
	}
	return text, nil
}

// ListResumes returns stored resumes without their text, newest first.
func (db *DB) ListResumes(ctx context.Context, limit int) ([]Resume, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, label, content_hash, created_at FROM resumes ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.Label, &r.ContentHash, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}
