// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when a task does not exist or is owned by
	// another user. The two cases are indistinguishable to callers so task
	// ids never leak across tenants.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTitleRequired is returned when a task is created with an empty title.
	ErrTitleRequired = errors.New("task title is required")
)
