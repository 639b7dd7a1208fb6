// Package usermsg maps domain error codes to user-facing rejection text.
//
// The chat gateway surfaces these messages directly to players, so they are
// worded for end users rather than operators. Messages may reference error
// metadata with {{.Key}} placeholders.
package usermsg

import (
	stderrors "errors"
	"strings"
	"text/template"

	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
)

var messages = map[apperrors.Code]string{
	apperrors.CodeContentSchemaInvalid: "Card data failed to load, please report this to the developers",

	apperrors.CodeNotFound:     "Nothing found",
	apperrors.CodeCardNotFound: "Error: card '{{.CardName}}' not found",

	apperrors.CodeActivePickExists:  "Error, only one weekly pick can be active in a server at a time",
	apperrors.CodeNoActivePick:      "Error: there is no weekly pick active in this server",
	apperrors.CodeSubmissionExists:  "Only one submission allowed per weekly pick per person",
	apperrors.CodePickChoiceInvalid: "Your selection is not part of this week's pick",
	apperrors.CodePickPathCount:     "{{.Reason}}",

	apperrors.CodeRulingTextInvalid: "Ruling text must be between 1 and 400 characters",
}

const fallback = "Something went wrong, please try again"

// Message renders the user-facing text for an error.
//
// Unknown or non-domain errors render the generic fallback so internal
// messages never leak to players.
func Message(err error) string {
	var domainErr *apperrors.Error
	if !stderrors.As(err, &domainErr) {
		return fallback
	}

	raw, ok := messages[domainErr.Code]
	if !ok {
		return fallback
	}
	if !strings.Contains(raw, "{{") {
		return raw
	}

	tmpl, parseErr := template.New(string(domainErr.Code)).Parse(raw)
	if parseErr != nil {
		return fallback
	}
	var sb strings.Builder
	if execErr := tmpl.Execute(&sb, domainErr.Metadata); execErr != nil {
		return fallback
	}
	return sb.String()
}
