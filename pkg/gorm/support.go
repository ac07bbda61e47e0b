package gorm

import (
	"errors"
	"strings"

	stdgorm "gorm.io/gorm"
)

func IsNotFound(err error) bool {
	return errors.Is(err, stdgorm.ErrRecordNotFound)
}

func IsFoundButHasErrors(err error) bool {
	return err != nil && !IsNotFound(err)
}

func HasDbIssues(err error) bool {
	return err != nil
}

// IsDuplicated reports whether err is a uniqueness-constraint violation.
// Postgres raises SQLSTATE 23505; sqlite (tests) reports a message instead.
func IsDuplicated(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, stdgorm.ErrDuplicatedKey) {
		return true
	}

	var stateErr interface{ SQLState() string }
	if errors.As(err, &stateErr) {
		return stateErr.SQLState() == "23505"
	}

	message := err.Error()

	return strings.Contains(message, "SQLSTATE 23505") ||
		strings.Contains(message, "UNIQUE constraint failed")
}
