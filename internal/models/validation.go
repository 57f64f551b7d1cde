package models

import "strings"

// ValidationError is a single violated business rule. Field is empty for
// rules that span more than one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors collects every rule violated in one validation pass.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, ve := range e {
		messages = append(messages, ve.Message)
	}
	return strings.Join(messages, "; ")
}

// ErrorOrNil returns nil when no rule was violated, so callers can do a
// plain err != nil check.
func (e ValidationErrors) ErrorOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
