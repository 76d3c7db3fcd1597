package models

import "time"

// Feedback is a post-hoc report tied to one assignment. Moods and the
// reported intensity/duration are nullable; reporting falls back to the
// task defaults through an outer join when they are absent.
type Feedback struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	UserTaskID     int64     `json:"user_task_id"`
	Timestamp      time.Time `json:"timestamp"`
	MoodBefore     *int      `json:"mood_before,omitempty"`
	MoodAfter      *int      `json:"mood_after,omitempty"`
	Intensity      *int      `json:"intensity,omitempty"`
	ActualDuration *int      `json:"actual_duration,omitempty"`
	Comments       string    `json:"comments"`
}

// FeedbackInput carries raw form values into the recorder. All numeric
// fields stay strings so blank can be told apart from zero.
type FeedbackInput struct {
	TargetUserID   int64  `json:"user_id"`
	UserTaskID     int64  `json:"user_task_id"`
	Timestamp      string `json:"timestamp"`
	MoodBefore     string `json:"mood_before"`
	MoodAfter      string `json:"mood_after"`
	Intensity      string `json:"intensity"`
	ActualDuration string `json:"actual_duration"`
	Comments       string `json:"comments"`
}
