// Package storage defines the persistence interfaces and record types for
// weekly picks, submissions, and card rulings.
package storage

import (
	"context"
	"time"

	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
)

// Sentinel errors stores return for not-found and invariant violations.
var (
	ErrNotFound         = apperrors.New(apperrors.CodeNotFound, "record not found")
	ErrActivePickExists = apperrors.New(apperrors.CodeActivePickExists, "guild already has an active pick")
	ErrSubmissionExists = apperrors.New(apperrors.CodeSubmissionExists, "user already submitted to this pick")
)

// PickRecord is a persisted weekly pick. EndedAt is nil while the pick is
// open for submissions.
type PickRecord struct {
	ID        string
	GuildID   string
	ChannelID string
	MessageID string
	CreatorID string
	Heirlooms [3]string
	Paths     [3]string
	CreatedAt time.Time
	EndedAt   *time.Time
}

// Active reports whether the pick is still open.
func (r PickRecord) Active() bool {
	return r.EndedAt == nil
}

// SubmissionRecord is one user's persisted choice for a pick. Paths are
// stored in sorted order.
type SubmissionRecord struct {
	ID       string
	PickID   string
	UserID   string
	Heirloom string
	Paths    []string
}

// RulingRecord is a persisted ruling attached to a card by name.
type RulingRecord struct {
	ID         string
	CardName   string
	RulingText string
	Author     string
	CreatedAt  time.Time
}

// PickStore persists weekly picks. PutPick returns ErrActivePickExists
// when the guild already has a pick with no end timestamp.
type PickStore interface {
	PutPick(ctx context.Context, rec PickRecord) error
	GetPick(ctx context.Context, id string) (PickRecord, error)
	GetActivePick(ctx context.Context, guildID string) (PickRecord, error)
	UpdatePickMessage(ctx context.Context, id, channelID, messageID string) error
	// EndPick stamps the pick's end time. The bool reports whether this
	// call transitioned the pick from active to ended.
	EndPick(ctx context.Context, guildID, pickID string, endedAt time.Time) (PickRecord, bool, error)
}

// SubmissionStore persists pick submissions. PutSubmission returns
// ErrSubmissionExists when the user already submitted to the pick.
type SubmissionStore interface {
	PutSubmission(ctx context.Context, rec SubmissionRecord) error
	GetSubmission(ctx context.Context, pickID, userID string) (SubmissionRecord, error)
	ListSubmissionsByPick(ctx context.Context, pickID string) ([]SubmissionRecord, error)
}

// RulingStore persists card rulings.
type RulingStore interface {
	PutRuling(ctx context.Context, rec RulingRecord) error
	ListRulingsByCard(ctx context.Context, cardName string) ([]RulingRecord, error)
}
