package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glorybound/cardbot/internal/storage"
)

// PutRuling inserts one card ruling.
func (s *Store) PutRuling(ctx context.Context, rec storage.RulingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("ruling id is required")
	}
	if strings.TrimSpace(rec.CardName) == "" {
		return fmt.Errorf("card name is required")
	}
	if strings.TrimSpace(rec.RulingText) == "" {
		return fmt.Errorf("ruling text is required")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO card_rulings (id, card_name, ruling_text, author, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.CardName, rec.RulingText, rec.Author, toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("insert ruling: %w", err)
	}
	return nil
}

// ListRulingsByCard returns a card's rulings, newest first.
func (s *Store) ListRulingsByCard(ctx context.Context, cardName string) ([]storage.RulingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, card_name, ruling_text, author, created_at
		 FROM card_rulings WHERE card_name = ?
		 ORDER BY created_at DESC, id`,
		cardName)
	if err != nil {
		return nil, fmt.Errorf("list rulings: %w", err)
	}
	defer rows.Close()

	var recs []storage.RulingRecord
	for rows.Next() {
		var rec storage.RulingRecord
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.CardName, &rec.RulingText, &rec.Author, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ruling: %w", err)
		}
		rec.CreatedAt = fromMillis(createdAt)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rulings: %w", err)
	}
	return recs, nil
}
