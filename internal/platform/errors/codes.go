package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Content errors
	CodeContentSchemaInvalid Code = "CONTENT_SCHEMA_INVALID"

	// Lookup errors
	CodeNotFound     Code = "NOT_FOUND"
	CodeCardNotFound Code = "CARD_NOT_FOUND"

	// Weekly pick errors
	CodeActivePickExists  Code = "ACTIVE_PICK_EXISTS"
	CodeNoActivePick      Code = "NO_ACTIVE_PICK"
	CodeSubmissionExists  Code = "SUBMISSION_EXISTS"
	CodePickChoiceInvalid Code = "PICK_CHOICE_INVALID"
	CodePickPathCount     Code = "PICK_PATH_COUNT"

	// Ruling errors
	CodeRulingTextInvalid Code = "RULING_TEXT_INVALID"
)

// IsSchema reports whether the code belongs to the content schema error class.
func (c Code) IsSchema() bool {
	return c == CodeContentSchemaInvalid
}

// IsConflict reports whether the code represents a business invariant violation.
func (c Code) IsConflict() bool {
	switch c {
	case CodeActivePickExists, CodeNoActivePick, CodeSubmissionExists:
		return true
	}
	return false
}

// IsValidation reports whether the code represents rejected caller input.
func (c Code) IsValidation() bool {
	switch c {
	case CodePickChoiceInvalid, CodePickPathCount, CodeRulingTextInvalid:
		return true
	}
	return false
}

// IsNotFound reports whether the code represents a lookup miss.
func (c Code) IsNotFound() bool {
	switch c {
	case CodeNotFound, CodeCardNotFound:
		return true
	}
	return false
}
