package usermsg

import (
	stderrors "errors"
	"fmt"
	"testing"

	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
)

func TestMessagePlain(t *testing.T) {
	err := apperrors.New(apperrors.CodeSubmissionExists, "submission exists for pick/user")
	got := Message(err)
	if got != "Only one submission allowed per weekly pick per person" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestMessageTemplated(t *testing.T) {
	err := apperrors.WithMetadata(apperrors.CodeCardNotFound, "card lookup miss", map[string]string{
		"CardName": "Zeal",
	})
	got := Message(err)
	if got != "Error: card 'Zeal' not found" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestMessageWrapped(t *testing.T) {
	err := fmt.Errorf("submit pick: %w", apperrors.New(apperrors.CodeNoActivePick, "no active pick for guild"))
	got := Message(err)
	if got != "Error: there is no weekly pick active in this server" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestMessageFallback(t *testing.T) {
	if got := Message(stderrors.New("internal sql failure")); got != fallback {
		t.Fatalf("expected fallback for plain error, got %q", got)
	}
	if got := Message(apperrors.New(apperrors.Code("NEVER_MAPPED"), "x")); got != fallback {
		t.Fatalf("expected fallback for unmapped code, got %q", got)
	}
}

func TestMessageReason(t *testing.T) {
	err := apperrors.WithMetadata(apperrors.CodePickPathCount, "path count rule failed", map[string]string{
		"Reason": "Only 1 path can be selected with Circlet of Obsession",
	})
	if got := Message(err); got != "Only 1 path can be selected with Circlet of Obsession" {
		t.Fatalf("unexpected message: %q", got)
	}
}
