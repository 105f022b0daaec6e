package errors

import (
	"regexp"
	"unicode"
)

// nodeIDPattern is the token grammar for node identifiers.
var nodeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// validDirections is the set of accepted direction tokens.
var validDirections = map[string]bool{
	"TB": true,
	"TD": true,
	"BT": true,
	"RL": true,
	"LR": true,
}

// ValidateNodeID validates a node identifier.
// Node ids are case-sensitive tokens of letters, digits, underscores, and hyphens.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidNodeID, "node id too long (max 256 characters)")
	}
	if !nodeIDPattern.MatchString(id) {
		return New(ErrCodeInvalidNodeID, "node id %q contains invalid characters", id)
	}
	return nil
}

// ValidateDirection validates a layout direction token.
// Accepted tokens are TB, TD, BT, RL, and LR.
func ValidateDirection(dir string) error {
	if !validDirections[dir] {
		return New(ErrCodeInvalidDirection, "invalid direction: %q (must be one of: TB, TD, BT, RL, LR)", dir)
	}
	return nil
}

// ValidateLabel validates a node label for safety.
// Labels are free text but must not contain control characters other than
// spaces; the sanitizer strips anything the renderer could choke on.
func ValidateLabel(label string) error {
	if len(label) > 1024 {
		return New(ErrCodeInvalidInput, "label too long (max 1024 characters)")
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}
