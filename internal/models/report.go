package models

import "time"

// ScoreRow is one planner row fed into the balance scorer: assignment joined
// with its task defaults and, when present, its feedback.
type ScoreRow struct {
	AssignmentID     int64            `json:"assignment_id"`
	TaskName         string           `json:"task_name"`
	Category         Category         `json:"category"`
	Subcategory      string           `json:"subcategory"`
	Status           AssignmentStatus `json:"status"`
	StartTime        time.Time        `json:"start_time"`
	EndTime          time.Time        `json:"end_time"`
	MoodBefore       *int             `json:"mood_before,omitempty"`
	MoodAfter        *int             `json:"mood_after,omitempty"`
	Intensity        *int             `json:"intensity,omitempty"`
	ActualDuration   *int             `json:"actual_duration,omitempty"`
	DefaultIntensity int              `json:"default_intensity"`
	DefaultDuration  int              `json:"default_duration"`
}

// HistoryRow is an assignment joined with its feedback for the history view.
type HistoryRow struct {
	AssignmentID   int64            `json:"assignment_id"`
	TaskName       string           `json:"task_name"`
	Category       Category         `json:"category"`
	Status         AssignmentStatus `json:"status"`
	StartTime      time.Time        `json:"start_time"`
	EndTime        time.Time        `json:"end_time"`
	MoodBefore     *int             `json:"mood_before,omitempty"`
	MoodAfter      *int             `json:"mood_after,omitempty"`
	ActualDuration *int             `json:"actual_duration,omitempty"`
}

// ModeMinutes is the total scheduled minutes per category.
type ModeMinutes struct {
	Mode         Category `json:"mode"`
	TotalMinutes int64    `json:"total_minutes"`
}

// HeatmapCell counts assignments starting at a given hour and weekday.
type HeatmapCell struct {
	Hour    int `json:"hr"`
	Weekday int `json:"weekday"`
	Count   int `json:"cnt"`
}
