package models

import (
	"strings"
	"time"
)

// AssignmentStatus defines the lifecycle states of a scheduled assignment.
type AssignmentStatus string

const (
	StatusPending    AssignmentStatus = "pending"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
)

var validStatuses = map[AssignmentStatus]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// NormalizeStatus converts any human-entered value into a valid status
// literal. Unrecognized input falls back to pending, it never fails.
func NormalizeStatus(s string) AssignmentStatus {
	v := AssignmentStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	if validStatuses[v] {
		return v
	}
	return StatusPending
}

// Assignment is one scheduled occurrence of a master task for a user.
// EndTime is always StartTime plus the effective duration.
type Assignment struct {
	ID             int64            `json:"id"`
	UserID         int64            `json:"user_id"`
	TaskID         int64            `json:"task_id"`
	StartTime      time.Time        `json:"start_time"`
	EndTime        time.Time        `json:"end_time"`
	Status         AssignmentStatus `json:"status"`
	Intensity      int              `json:"intensity"`
	ActualDuration int              `json:"actual_duration"` // minutes
}

// AssignmentFilter defines the available parameters for listing assignments.
type AssignmentFilter struct {
	UserID   *int64
	Category *Category
}

// Notification types emitted by the reconciler sweep.
const (
	NotificationStarted          = "started"
	NotificationCompleteReminder = "complete_reminder"
)

// Notification records a status promotion performed by the reconciler. It is
// returned to the caller, never persisted.
type Notification struct {
	Type         string    `json:"type"`
	AssignmentID int64     `json:"assignment_id"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}
