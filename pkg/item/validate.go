package item

import (
	"fmt"
	"strings"
)

// ValidationError reports a payload that was rejected before it reached the
// cache or the remote store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ValidateDraft checks a create payload.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return invalid("title", "title is required")
	}
	return nil
}

// ValidateItem checks a full item used by update and toggle.
func ValidateItem(i Item) error {
	if strings.TrimSpace(i.ID) == "" {
		return invalid("id", "id is required")
	}
	if strings.TrimSpace(i.Title) == "" {
		return invalid("title", "title is required")
	}
	return ValidatePosition(i.Position)
}

// ValidateID checks an identity used by delete and reorder.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("id", "id is required")
	}
	return nil
}

// ValidatePosition checks a persisted rank.
func ValidatePosition(position int) error {
	if position < 0 {
		return invalid("position", "position must be a non-negative integer")
	}
	return nil
}
