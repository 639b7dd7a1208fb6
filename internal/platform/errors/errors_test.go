package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeActivePickExists, "active pick already exists")
	wrapped := fmt.Errorf("create pick: %w", New(CodeActivePickExists, "different message"))

	if !stderrors.Is(wrapped, sentinel) {
		t.Fatal("expected errors with the same code to match")
	}

	other := New(CodeNoActivePick, "no active pick")
	if stderrors.Is(wrapped, other) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(CodeContentSchemaInvalid, "parse path file", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be found in chain")
	}
	if err.Error() != "parse path file" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeSubmissionExists, "duplicate submission"))
	if got := CodeOf(err); got != CodeSubmissionExists {
		t.Fatalf("expected %s, got %s", CodeSubmissionExists, got)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected %s for plain error, got %s", CodeUnknown, got)
	}
}

func TestCodeClassification(t *testing.T) {
	if !IsConflict(New(CodeActivePickExists, "")) {
		t.Fatal("ACTIVE_PICK_EXISTS should classify as conflict")
	}
	if !IsConflict(New(CodeSubmissionExists, "")) {
		t.Fatal("SUBMISSION_EXISTS should classify as conflict")
	}
	if !IsValidation(New(CodePickPathCount, "")) {
		t.Fatal("PICK_PATH_COUNT should classify as validation")
	}
	if !IsNotFound(New(CodeCardNotFound, "")) {
		t.Fatal("CARD_NOT_FOUND should classify as not found")
	}
	if !IsSchema(New(CodeContentSchemaInvalid, "")) {
		t.Fatal("CONTENT_SCHEMA_INVALID should classify as schema")
	}
	if IsConflict(New(CodeCardNotFound, "")) {
		t.Fatal("CARD_NOT_FOUND should not classify as conflict")
	}
}

func TestWithMetadata(t *testing.T) {
	err := WithMetadata(CodePickPathCount, "wrong path count", map[string]string{
		"Heirloom": "Explorer's Pack",
	})
	if err.Metadata["Heirloom"] != "Explorer's Pack" {
		t.Fatalf("unexpected metadata: %v", err.Metadata)
	}
}
