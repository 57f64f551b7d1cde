package services

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// Sentinel errors carrying the client-facing messages. Out-of-scope and
// truly absent entities share the same not-found errors so callers cannot
// probe for existence.
var (
	ErrProjectNotFound  = errors.New("Project not found or not owned by you")
	ErrDuplicateProject = errors.New("Project already exists")
	ErrTaskNotFound     = errors.New("Task not found")
	ErrAssigneeNotFound = errors.New("Assignee not found")
)

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint error,
// e.g. two projects with the same (name, owner) pair racing to commit.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
