package pick

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glorybound/cardbot/internal/library/catalog"
	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
	"github.com/glorybound/cardbot/internal/platform/id"
	"github.com/glorybound/cardbot/internal/storage"
)

// Stores groups the storage interfaces the pick service needs.
type Stores struct {
	Picks       storage.PickStore
	Submissions storage.SubmissionStore
}

// Service runs the weekly pick flow against a catalog and stores.
type Service struct {
	stores      Stores
	catalog     *catalog.Catalog
	clock       func() time.Time
	idGenerator func() (string, error)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the service clock, for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator overrides submission and pick id generation, for tests.
func WithIDGenerator(gen func() (string, error)) ServiceOption {
	return func(s *Service) { s.idGenerator = gen }
}

// NewService creates a pick service with default dependencies.
func NewService(stores Stores, cat *catalog.Catalog, opts ...ServiceOption) *Service {
	s := &Service{
		stores:      stores,
		catalog:     cat,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func recordToPick(rec storage.PickRecord) WeeklyPick {
	return WeeklyPick{
		ID:        rec.ID,
		GuildID:   rec.GuildID,
		ChannelID: rec.ChannelID,
		MessageID: rec.MessageID,
		CreatorID: rec.CreatorID,
		Heirlooms: rec.Heirlooms,
		Paths:     rec.Paths,
		CreatedAt: rec.CreatedAt,
		EndedAt:   rec.EndedAt,
	}
}

// CreatePick samples a fresh draw and persists it as the guild's active
// pick. At most one pick per guild can be active; a second create fails
// with the active-pick conflict.
func (s *Service) CreatePick(ctx context.Context, guildID, channelID, creatorID string) (WeeklyPick, error) {
	if s.stores.Picks == nil {
		return WeeklyPick{}, fmt.Errorf("pick store is not configured")
	}
	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return WeeklyPick{}, fmt.Errorf("guild id is required")
	}

	_, err := s.stores.Picks.GetActivePick(ctx, guildID)
	if err == nil {
		return WeeklyPick{}, storage.ErrActivePickExists
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return WeeklyPick{}, fmt.Errorf("check active pick: %w", err)
	}

	heirlooms, paths, err := s.catalog.SamplePack()
	if err != nil {
		return WeeklyPick{}, fmt.Errorf("sample pack: %w", err)
	}

	pickID, err := s.idGenerator()
	if err != nil {
		return WeeklyPick{}, fmt.Errorf("generate pick id: %w", err)
	}

	rec := storage.PickRecord{
		ID:        pickID,
		GuildID:   guildID,
		ChannelID: channelID,
		CreatorID: creatorID,
		CreatedAt: s.clock().UTC(),
	}
	for i := 0; i < 3; i++ {
		rec.Heirlooms[i] = heirlooms[i].Name
		rec.Paths[i] = paths[i].Name
	}

	if err := s.stores.Picks.PutPick(ctx, rec); err != nil {
		// The store rechecks the invariant inside its transaction, so a
		// concurrent create surfaces here as the same conflict.
		if errors.Is(err, storage.ErrActivePickExists) {
			return WeeklyPick{}, storage.ErrActivePickExists
		}
		return WeeklyPick{}, fmt.Errorf("persist pick: %w", err)
	}
	return recordToPick(rec), nil
}

// ActivePick returns the guild's current pick, or a no-active-pick error.
func (s *Service) ActivePick(ctx context.Context, guildID string) (WeeklyPick, error) {
	if s.stores.Picks == nil {
		return WeeklyPick{}, fmt.Errorf("pick store is not configured")
	}
	rec, err := s.stores.Picks.GetActivePick(ctx, strings.TrimSpace(guildID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return WeeklyPick{}, apperrors.New(apperrors.CodeNoActivePick, "no active pick for guild")
		}
		return WeeklyPick{}, fmt.Errorf("get active pick: %w", err)
	}
	return recordToPick(rec), nil
}

// AttachMessage records where the pick was announced so later edits can
// target the same message.
func (s *Service) AttachMessage(ctx context.Context, pickID, channelID, messageID string) error {
	if s.stores.Picks == nil {
		return fmt.Errorf("pick store is not configured")
	}
	if strings.TrimSpace(pickID) == "" {
		return fmt.Errorf("pick id is required")
	}
	if err := s.stores.Picks.UpdatePickMessage(ctx, pickID, channelID, messageID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.New(apperrors.CodeNotFound, "pick not found")
		}
		return fmt.Errorf("attach message: %w", err)
	}
	return nil
}

// Submit validates a user's choice against the guild's active pick and
// persists it. One submission per user per pick.
func (s *Service) Submit(ctx context.Context, guildID, userID, heirloom string, paths []string) (Submission, error) {
	if s.stores.Picks == nil || s.stores.Submissions == nil {
		return Submission{}, fmt.Errorf("stores are not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Submission{}, fmt.Errorf("user id is required")
	}

	current, err := s.ActivePick(ctx, guildID)
	if err != nil {
		return Submission{}, err
	}

	if _, err := s.stores.Submissions.GetSubmission(ctx, current.ID, userID); err == nil {
		return Submission{}, storage.ErrSubmissionExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return Submission{}, fmt.Errorf("check submission: %w", err)
	}

	subID, err := s.idGenerator()
	if err != nil {
		return Submission{}, fmt.Errorf("generate submission id: %w", err)
	}
	sub, err := NewSubmission(subID, current, userID, heirloom, paths)
	if err != nil {
		return Submission{}, err
	}

	err = s.stores.Submissions.PutSubmission(ctx, storage.SubmissionRecord{
		ID:       sub.ID,
		PickID:   sub.PickID,
		UserID:   sub.UserID,
		Heirloom: sub.Heirloom,
		Paths:    sub.Paths,
	})
	if err != nil {
		if errors.Is(err, storage.ErrSubmissionExists) {
			return Submission{}, storage.ErrSubmissionExists
		}
		return Submission{}, fmt.Errorf("persist submission: %w", err)
	}
	return sub, nil
}

// Submissions returns every submission to the given pick.
func (s *Service) Submissions(ctx context.Context, pickID string) ([]Submission, error) {
	if s.stores.Submissions == nil {
		return nil, fmt.Errorf("submission store is not configured")
	}
	recs, err := s.stores.Submissions.ListSubmissionsByPick(ctx, pickID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	subs := make([]Submission, len(recs))
	for i, rec := range recs {
		subs[i] = Submission{
			ID:       rec.ID,
			PickID:   rec.PickID,
			UserID:   rec.UserID,
			Heirloom: rec.Heirloom,
			Paths:    rec.Paths,
		}
	}
	return subs, nil
}

// Close ends the guild's active pick and returns it with all submissions.
// Closing an already-ended pick is a no-op that reports no transition.
func (s *Service) Close(ctx context.Context, guildID string) (WeeklyPick, []Submission, error) {
	if s.stores.Picks == nil {
		return WeeklyPick{}, nil, fmt.Errorf("pick store is not configured")
	}
	current, err := s.ActivePick(ctx, guildID)
	if err != nil {
		return WeeklyPick{}, nil, err
	}

	rec, _, err := s.stores.Picks.EndPick(ctx, current.GuildID, current.ID, s.clock().UTC())
	if err != nil {
		return WeeklyPick{}, nil, fmt.Errorf("end pick: %w", err)
	}

	subs, err := s.Submissions(ctx, rec.ID)
	if err != nil {
		return WeeklyPick{}, nil, err
	}
	return recordToPick(rec), subs, nil
}
