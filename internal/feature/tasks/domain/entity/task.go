// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Task is a single to-do item owned by exactly one user. Ownership is set
// at creation and never reassigned; a task is only ever visible to
// requests resolving to its owner.
type Task struct {
	ID          uint
	Title       string
	Description string
	Done        bool
	UserID      uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
