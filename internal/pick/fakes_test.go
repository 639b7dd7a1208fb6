package pick

import (
	"context"
	"time"

	"github.com/glorybound/cardbot/internal/storage"
)

type fakePickStore struct {
	picks map[string]storage.PickRecord
}

func newFakePickStore() *fakePickStore {
	return &fakePickStore{picks: make(map[string]storage.PickRecord)}
}

func (f *fakePickStore) PutPick(ctx context.Context, rec storage.PickRecord) error {
	for _, existing := range f.picks {
		if existing.GuildID == rec.GuildID && existing.Active() {
			return storage.ErrActivePickExists
		}
	}
	f.picks[rec.ID] = rec
	return nil
}

func (f *fakePickStore) GetPick(ctx context.Context, id string) (storage.PickRecord, error) {
	rec, ok := f.picks[id]
	if !ok {
		return storage.PickRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (f *fakePickStore) GetActivePick(ctx context.Context, guildID string) (storage.PickRecord, error) {
	var latest storage.PickRecord
	found := false
	for _, rec := range f.picks {
		if rec.GuildID != guildID || !rec.Active() {
			continue
		}
		if !found || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
			found = true
		}
	}
	if !found {
		return storage.PickRecord{}, storage.ErrNotFound
	}
	return latest, nil
}

func (f *fakePickStore) UpdatePickMessage(ctx context.Context, id, channelID, messageID string) error {
	rec, ok := f.picks[id]
	if !ok {
		return storage.ErrNotFound
	}
	rec.ChannelID = channelID
	rec.MessageID = messageID
	f.picks[id] = rec
	return nil
}

func (f *fakePickStore) EndPick(ctx context.Context, guildID, pickID string, endedAt time.Time) (storage.PickRecord, bool, error) {
	rec, ok := f.picks[pickID]
	if !ok || rec.GuildID != guildID {
		return storage.PickRecord{}, false, storage.ErrNotFound
	}
	if rec.EndedAt != nil {
		return rec, false, nil
	}
	stamped := endedAt.UTC()
	rec.EndedAt = &stamped
	f.picks[pickID] = rec
	return rec, true, nil
}

type fakeSubmissionStore struct {
	subs []storage.SubmissionRecord
}

func (f *fakeSubmissionStore) PutSubmission(ctx context.Context, rec storage.SubmissionRecord) error {
	for _, existing := range f.subs {
		if existing.PickID == rec.PickID && existing.UserID == rec.UserID {
			return storage.ErrSubmissionExists
		}
	}
	f.subs = append(f.subs, rec)
	return nil
}

func (f *fakeSubmissionStore) GetSubmission(ctx context.Context, pickID, userID string) (storage.SubmissionRecord, error) {
	for _, rec := range f.subs {
		if rec.PickID == pickID && rec.UserID == userID {
			return rec, nil
		}
	}
	return storage.SubmissionRecord{}, storage.ErrNotFound
}

func (f *fakeSubmissionStore) ListSubmissionsByPick(ctx context.Context, pickID string) ([]storage.SubmissionRecord, error) {
	var recs []storage.SubmissionRecord
	for _, rec := range f.subs {
		if rec.PickID == pickID {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

var (
	_ storage.PickStore       = (*fakePickStore)(nil)
	_ storage.SubmissionStore = (*fakeSubmissionStore)(nil)
)
