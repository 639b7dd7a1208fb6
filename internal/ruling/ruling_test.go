package ruling

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/glorybound/cardbot/internal/library"
	"github.com/glorybound/cardbot/internal/library/catalog"
	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
	"github.com/glorybound/cardbot/internal/storage"
)

type fakeRulingStore struct {
	rulings []storage.RulingRecord
}

func (f *fakeRulingStore) PutRuling(ctx context.Context, rec storage.RulingRecord) error {
	f.rulings = append(f.rulings, rec)
	return nil
}

func (f *fakeRulingStore) ListRulingsByCard(ctx context.Context, cardName string) ([]storage.RulingRecord, error) {
	var recs []storage.RulingRecord
	for i := len(f.rulings) - 1; i >= 0; i-- {
		if f.rulings[i].CardName == cardName {
			recs = append(recs, f.rulings[i])
		}
	}
	return recs, nil
}

var _ storage.RulingStore = (*fakeRulingStore)(nil)

func newTestService(t *testing.T) (*Service, *fakeRulingStore) {
	t.Helper()
	cat := catalog.New([]*library.Path{
		{Name: "Path of the Bear", Cards: []*library.Card{
			{Name: "Maul", Text: "t"},
		}},
	}, catalog.WithRand(rand.New(rand.NewSource(1))))

	store := &fakeRulingStore{}
	seq := 0
	svc := NewService(store, cat,
		WithClock(func() time.Time { return time.Date(2026, 8, 7, 12, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() (string, error) {
			seq++
			return fmt.Sprintf("ruling-%d", seq), nil
		}),
	)
	return svc, store
}

func TestAdd(t *testing.T) {
	svc, store := newTestService(t)

	got, err := svc.Add(context.Background(), "Maul", "  Damage resolves first.  ", "user-1")
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if got.Text != "Damage resolves first." {
		t.Errorf("Text = %q, want trimmed", got.Text)
	}
	if got.CardName != "Maul" || got.Author != "user-1" {
		t.Errorf("ruling = %+v", got)
	}
	if len(store.rulings) != 1 {
		t.Fatalf("stored %d rulings, want 1", len(store.rulings))
	}
}

func TestAddUnknownCard(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(context.Background(), "Missing", "text", "user-1")
	if apperrors.CodeOf(err) != apperrors.CodeCardNotFound {
		t.Fatalf("CodeOf() = %v, want CARD_NOT_FOUND", apperrors.CodeOf(err))
	}
}

func TestAddTextLength(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "Maul", "   ", "user-1")
	if apperrors.CodeOf(err) != apperrors.CodeRulingTextInvalid {
		t.Fatalf("CodeOf() = %v, want RULING_TEXT_INVALID", apperrors.CodeOf(err))
	}

	_, err = svc.Add(ctx, "Maul", strings.Repeat("x", MaxRulingLength+1), "user-1")
	if apperrors.CodeOf(err) != apperrors.CodeRulingTextInvalid {
		t.Fatalf("CodeOf() = %v, want RULING_TEXT_INVALID", apperrors.CodeOf(err))
	}

	// Exactly at the limit is accepted; the count is runes, not bytes.
	if _, err := svc.Add(ctx, "Maul", strings.Repeat("é", MaxRulingLength), "user-1"); err != nil {
		t.Fatalf("Add() at limit: %v", err)
	}
}

func TestListByCard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "Maul", "First ruling.", "user-1"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := svc.Add(ctx, "Maul", "Second ruling.", "user-2"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	rulings, err := svc.ListByCard(ctx, "Maul")
	if err != nil {
		t.Fatalf("ListByCard() error: %v", err)
	}
	if len(rulings) != 2 {
		t.Fatalf("got %d rulings, want 2", len(rulings))
	}
	if rulings[0].Text != "Second ruling." {
		t.Errorf("rulings not newest first: %q", rulings[0].Text)
	}
}

func TestListByCardUnknownCard(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListByCard(context.Background(), "Missing")
	if apperrors.CodeOf(err) != apperrors.CodeCardNotFound {
		t.Fatalf("CodeOf() = %v, want CARD_NOT_FOUND", apperrors.CodeOf(err))
	}
}

func TestListByCardEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	rulings, err := svc.ListByCard(context.Background(), "Maul")
	if err != nil {
		t.Fatalf("ListByCard() error: %v", err)
	}
	if len(rulings) != 0 {
		t.Errorf("got %d rulings, want 0", len(rulings))
	}
}
