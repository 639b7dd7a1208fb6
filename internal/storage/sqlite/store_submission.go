package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glorybound/cardbot/internal/storage"
)

func scanSubmission(row interface{ Scan(dest ...any) error }) (storage.SubmissionRecord, error) {
	var rec storage.SubmissionRecord
	var path1 string
	var path2, path3 sql.NullString
	err := row.Scan(&rec.ID, &rec.PickID, &rec.UserID, &rec.Heirloom, &path1, &path2, &path3)
	if err != nil {
		return storage.SubmissionRecord{}, err
	}
	rec.Paths = []string{path1}
	if path2.Valid {
		rec.Paths = append(rec.Paths, path2.String)
	}
	if path3.Valid {
		rec.Paths = append(rec.Paths, path3.String)
	}
	return rec, nil
}

// PutSubmission inserts one user's submission. The one-submission-per-user
// invariant is checked inside the insert transaction and backstopped by the
// UNIQUE (pick_id, user_id) constraint.
func (s *Store) PutSubmission(ctx context.Context, rec storage.SubmissionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("submission id is required")
	}
	if strings.TrimSpace(rec.PickID) == "" {
		return fmt.Errorf("pick id is required")
	}
	if strings.TrimSpace(rec.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if len(rec.Paths) < 1 || len(rec.Paths) > 3 {
		return fmt.Errorf("submission must carry between one and three paths, got %d", len(rec.Paths))
	}

	var path2, path3 sql.NullString
	if len(rec.Paths) > 1 {
		path2 = sql.NullString{String: rec.Paths[1], Valid: true}
	}
	if len(rec.Paths) > 2 {
		path3 = sql.NullString{String: rec.Paths[2], Valid: true}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put submission: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM pick_submissions WHERE pick_id = ? AND user_id = ?`,
		rec.PickID, rec.UserID,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check submission: %w", err)
	}
	if existing > 0 {
		return storage.ErrSubmissionExists
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO pick_submissions (
		   id, pick_id, user_id, heirloom, path1, path2, path3, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PickID, rec.UserID, rec.Heirloom,
		rec.Paths[0], path2, path3,
		toMillis(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrSubmissionExists
		}
		return fmt.Errorf("insert submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put submission: %w", err)
	}
	return nil
}

// GetSubmission returns one user's submission to a pick.
func (s *Store) GetSubmission(ctx context.Context, pickID, userID string) (storage.SubmissionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SubmissionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SubmissionRecord{}, fmt.Errorf("storage is not configured")
	}
	rec, err := scanSubmission(s.sqlDB.QueryRowContext(ctx,
		`SELECT id, pick_id, user_id, heirloom, path1, path2, path3
		 FROM pick_submissions WHERE pick_id = ? AND user_id = ?`,
		pickID, userID))
	if err == sql.ErrNoRows {
		return storage.SubmissionRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.SubmissionRecord{}, fmt.Errorf("get submission: %w", err)
	}
	return rec, nil
}

// ListSubmissionsByPick returns all submissions to a pick in insertion order.
func (s *Store) ListSubmissionsByPick(ctx context.Context, pickID string) ([]storage.SubmissionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, pick_id, user_id, heirloom, path1, path2, path3
		 FROM pick_submissions WHERE pick_id = ? ORDER BY created_at, id`,
		pickID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var recs []storage.SubmissionRecord
	for rows.Next() {
		rec, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return recs, nil
}
