// Package pick implements the weekly pick flow: a guild-scoped draw of
// three heirlooms and three paths that players submit a choice against.
package pick

import (
	"fmt"
	"sort"
	"time"

	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
)

// Heirlooms that bend the two-path rule.
const (
	HeirloomSinglePath = "Circlet of Obsession"
	HeirloomAllPaths   = "Explorer's Pack"
)

// WeeklyPick is a guild's current (or past) draw. EndedAt is nil while
// the pick accepts submissions.
type WeeklyPick struct {
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

// Active reports whether the pick still accepts submissions.
func (p WeeklyPick) Active() bool {
	return p.EndedAt == nil
}

// offersHeirloom reports whether the named heirloom is part of the draw.
func (p WeeklyPick) offersHeirloom(name string) bool {
	for _, h := range p.Heirlooms {
		if h == name {
			return true
		}
	}
	return false
}

// offersPath reports whether the named path is part of the draw.
func (p WeeklyPick) offersPath(name string) bool {
	for _, path := range p.Paths {
		if path == name {
			return true
		}
	}
	return false
}

// Submission is one user's validated choice for a pick. Paths are held in
// sorted order so the stored form is canonical regardless of selection
// order.
type Submission struct {
	ID       string
	PickID   string
	UserID   string
	Heirloom string
	Paths    []string
}

// RequiredPathCount returns how many paths a submission must carry for
// the given heirloom.
func RequiredPathCount(heirloom string) int {
	switch heirloom {
	case HeirloomSinglePath:
		return 1
	case HeirloomAllPaths:
		return 3
	default:
		return 2
	}
}

func pathCountReason(heirloom string) string {
	switch heirloom {
	case HeirloomSinglePath:
		return fmt.Sprintf("Only 1 path can be selected with %s", heirloom)
	case HeirloomAllPaths:
		return fmt.Sprintf("All three paths must be selected with %s", heirloom)
	default:
		return fmt.Sprintf("You must select exactly two paths with %s", heirloom)
	}
}

// ValidateSubmission checks a user's choice against the pick's draw. The
// heirloom and every path must be part of the draw, paths must be
// distinct, and the path count must match the heirloom's rule.
func ValidateSubmission(p WeeklyPick, heirloom string, paths []string) error {
	if !p.offersHeirloom(heirloom) {
		return apperrors.WithMetadata(apperrors.CodePickChoiceInvalid,
			fmt.Sprintf("heirloom %q is not part of pick %s", heirloom, p.ID),
			map[string]string{"Choice": heirloom})
	}

	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		if !p.offersPath(path) {
			return apperrors.WithMetadata(apperrors.CodePickChoiceInvalid,
				fmt.Sprintf("path %q is not part of pick %s", path, p.ID),
				map[string]string{"Choice": path})
		}
		if seen[path] {
			return apperrors.WithMetadata(apperrors.CodePickChoiceInvalid,
				fmt.Sprintf("path %q selected more than once", path),
				map[string]string{"Choice": path})
		}
		seen[path] = true
	}

	if required := RequiredPathCount(heirloom); len(paths) != required {
		reason := pathCountReason(heirloom)
		return apperrors.WithMetadata(apperrors.CodePickPathCount, reason,
			map[string]string{"Reason": reason})
	}
	return nil
}

// NewSubmission builds a validated submission with paths in canonical
// sorted order.
func NewSubmission(id string, p WeeklyPick, userID, heirloom string, paths []string) (Submission, error) {
	if err := ValidateSubmission(p, heirloom, paths); err != nil {
		return Submission{}, err
	}
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)
	return Submission{
		ID:       id,
		PickID:   p.ID,
		UserID:   userID,
		Heirloom: heirloom,
		Paths:    sorted,
	}, nil
}
