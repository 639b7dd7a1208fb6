package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glorybound/cardbot/internal/storage"
)

const pickColumns = `id, guild_id, channel_id, message_id, creator_id,
	heirloom1, heirloom2, heirloom3, path1, path2, path3, created_at, ended_at`

func scanPick(row interface{ Scan(dest ...any) error }) (storage.PickRecord, error) {
	var rec storage.PickRecord
	var createdAt int64
	var endedAt sql.NullInt64
	err := row.Scan(
		&rec.ID, &rec.GuildID, &rec.ChannelID, &rec.MessageID, &rec.CreatorID,
		&rec.Heirlooms[0], &rec.Heirlooms[1], &rec.Heirlooms[2],
		&rec.Paths[0], &rec.Paths[1], &rec.Paths[2],
		&createdAt, &endedAt,
	)
	if err != nil {
		return storage.PickRecord{}, err
	}
	rec.CreatedAt = fromMillis(createdAt)
	rec.EndedAt = fromNullMillis(endedAt)
	return rec, nil
}

// PutPick inserts a weekly pick. The active-pick invariant is checked
// inside the insert transaction and backstopped by a unique partial index
// on (guild_id) for rows with no end timestamp.
func (s *Store) PutPick(ctx context.Context, rec storage.PickRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("pick id is required")
	}
	if strings.TrimSpace(rec.GuildID) == "" {
		return fmt.Errorf("guild id is required")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put pick: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM picks WHERE guild_id = ? AND ended_at IS NULL`,
		rec.GuildID,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check active pick: %w", err)
	}
	if existing > 0 {
		return storage.ErrActivePickExists
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO picks (
		   id, guild_id, channel_id, message_id, creator_id,
		   heirloom1, heirloom2, heirloom3, path1, path2, path3,
		   created_at, ended_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GuildID, rec.ChannelID, rec.MessageID, rec.CreatorID,
		rec.Heirlooms[0], rec.Heirlooms[1], rec.Heirlooms[2],
		rec.Paths[0], rec.Paths[1], rec.Paths[2],
		toMillis(createdAt), toNullMillis(rec.EndedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrActivePickExists
		}
		return fmt.Errorf("insert pick: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put pick: %w", err)
	}
	return nil
}

// GetPick returns the pick with the given id.
func (s *Store) GetPick(ctx context.Context, id string) (storage.PickRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.PickRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PickRecord{}, fmt.Errorf("storage is not configured")
	}
	rec, err := scanPick(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+pickColumns+` FROM picks WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return storage.PickRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.PickRecord{}, fmt.Errorf("get pick: %w", err)
	}
	return rec, nil
}

// GetActivePick returns the guild's pick with no end timestamp.
func (s *Store) GetActivePick(ctx context.Context, guildID string) (storage.PickRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.PickRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PickRecord{}, fmt.Errorf("storage is not configured")
	}
	rec, err := scanPick(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+pickColumns+` FROM picks
		 WHERE guild_id = ? AND ended_at IS NULL
		 ORDER BY created_at DESC LIMIT 1`, guildID))
	if err == sql.ErrNoRows {
		return storage.PickRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.PickRecord{}, fmt.Errorf("get active pick: %w", err)
	}
	return rec, nil
}

// UpdatePickMessage records the channel and message the pick was announced in.
func (s *Store) UpdatePickMessage(ctx context.Context, id, channelID, messageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE picks SET channel_id = ?, message_id = ? WHERE id = ?`,
		channelID, messageID, id,
	)
	if err != nil {
		return fmt.Errorf("update pick message: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update pick message: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// EndPick stamps the pick's end time inside a transaction. Ending an
// already-ended pick leaves the original timestamp and reports no
// transition.
func (s *Store) EndPick(ctx context.Context, guildID, pickID string, endedAt time.Time) (storage.PickRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return storage.PickRecord{}, false, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PickRecord{}, false, fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.PickRecord{}, false, fmt.Errorf("begin end pick: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rec, err := scanPick(tx.QueryRowContext(ctx,
		`SELECT `+pickColumns+` FROM picks WHERE id = ? AND guild_id = ?`,
		pickID, guildID))
	if err == sql.ErrNoRows {
		return storage.PickRecord{}, false, storage.ErrNotFound
	}
	if err != nil {
		return storage.PickRecord{}, false, fmt.Errorf("load pick: %w", err)
	}
	if rec.EndedAt != nil {
		return rec, false, tx.Commit()
	}

	stamped := endedAt.UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE picks SET ended_at = ? WHERE id = ?`,
		toMillis(stamped), pickID,
	); err != nil {
		return storage.PickRecord{}, false, fmt.Errorf("end pick: %w", err)
	}
	rec.EndedAt = &stamped

	if err := tx.Commit(); err != nil {
		return storage.PickRecord{}, false, fmt.Errorf("commit end pick: %w", err)
	}
	return rec, true, nil
}
