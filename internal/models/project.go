package models

import (
	"time"

	"github.com/google/uuid"
)

const maxProjectNameLength = 100

type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Common errors
var (
	ErrProjectNameRequired = &ValidationError{Field: "name", Message: "Project name is required"}
	ErrProjectNameTooLong  = &ValidationError{Field: "name", Message: "Project name must be at most 100 characters"}
)

func (p *Project) Validate() error {
	var errs ValidationErrors
	if p.Name == "" {
		errs = append(errs, ErrProjectNameRequired)
	}
	if len(p.Name) > maxProjectNameLength {
		errs = append(errs, ErrProjectNameTooLong)
	}
	return errs.ErrorOrNil()
}
