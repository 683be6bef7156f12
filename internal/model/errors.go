package model

import "fmt"

// ValidationError reports malformed or out-of-range input. It names the
// offending field (and record, when known) so the caller can render a
// user-facing message; the engine never silently corrects input.
type ValidationError struct {
	Field    string
	RecordID string
	Reason   string
}

func (e ValidationError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("invalid %s [%s]: %s", e.Field, e.RecordID, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
