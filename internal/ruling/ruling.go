// Package ruling manages free-text rulings attached to cards by name.
package ruling

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/glorybound/cardbot/internal/library/catalog"
	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
	"github.com/glorybound/cardbot/internal/platform/id"
	"github.com/glorybound/cardbot/internal/storage"
)

// MaxRulingLength is the longest accepted ruling text, in characters.
const MaxRulingLength = 400

// Ruling is one recorded ruling for a card.
type Ruling struct {
	ID        string
	CardName  string
	Text      string
	Author    string
	CreatedAt time.Time
}

// Service records and lists rulings. Rulings attach to canonical card
// names, so every operation first resolves the card in the catalog.
type Service struct {
	rulings     storage.RulingStore
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

// WithIDGenerator overrides ruling id generation, for tests.
func WithIDGenerator(gen func() (string, error)) ServiceOption {
	return func(s *Service) { s.idGenerator = gen }
}

// NewService creates a ruling service with default dependencies.
func NewService(rulings storage.RulingStore, cat *catalog.Catalog, opts ...ServiceOption) *Service {
	s := &Service{
		rulings:     rulings,
		catalog:     cat,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add records a ruling for a card. The card must exist and the trimmed
// text must be between 1 and MaxRulingLength characters.
func (s *Service) Add(ctx context.Context, cardName, text, author string) (Ruling, error) {
	if s.rulings == nil {
		return Ruling{}, fmt.Errorf("ruling store is not configured")
	}

	card, _, err := s.catalog.FindByName(cardName)
	if err != nil {
		return Ruling{}, err
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n == 0 || n > MaxRulingLength {
		return Ruling{}, apperrors.WithMetadata(apperrors.CodeRulingTextInvalid,
			fmt.Sprintf("ruling text must be between 1 and %d characters, got %d", MaxRulingLength, n),
			map[string]string{"Length": fmt.Sprintf("%d", n)})
	}

	rulingID, err := s.idGenerator()
	if err != nil {
		return Ruling{}, fmt.Errorf("generate ruling id: %w", err)
	}

	rec := storage.RulingRecord{
		ID:         rulingID,
		CardName:   card.Name,
		RulingText: text,
		Author:     author,
		CreatedAt:  s.clock().UTC(),
	}
	if err := s.rulings.PutRuling(ctx, rec); err != nil {
		return Ruling{}, fmt.Errorf("persist ruling: %w", err)
	}
	return recordToRuling(rec), nil
}

// ListByCard returns a card's rulings, newest first. The card must exist
// even when it has no rulings, so typos surface as card-not-found rather
// than an empty list.
func (s *Service) ListByCard(ctx context.Context, cardName string) ([]Ruling, error) {
	if s.rulings == nil {
		return nil, fmt.Errorf("ruling store is not configured")
	}

	card, _, err := s.catalog.FindByName(cardName)
	if err != nil {
		return nil, err
	}

	recs, err := s.rulings.ListRulingsByCard(ctx, card.Name)
	if err != nil {
		return nil, fmt.Errorf("list rulings: %w", err)
	}
	rulings := make([]Ruling, len(recs))
	for i, rec := range recs {
		rulings[i] = recordToRuling(rec)
	}
	return rulings, nil
}

func recordToRuling(rec storage.RulingRecord) Ruling {
	return Ruling{
		ID:        rec.ID,
		CardName:  rec.CardName,
		Text:      rec.RulingText,
		Author:    rec.Author,
		CreatedAt: rec.CreatedAt,
	}
}
