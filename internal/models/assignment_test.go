package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want AssignmentStatus
	}{
		{"pending", StatusPending},
		{"in_progress", StatusInProgress},
		{"completed", StatusCompleted},
		{"In Progress", StatusInProgress},
		{"  COMPLETED  ", StatusCompleted},
		{"Pending", StatusPending},
		{"", StatusPending},
		{"cancelled", StatusPending},
		{"done", StatusPending},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeStatus(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeStatusIdempotent(t *testing.T) {
	for _, s := range []AssignmentStatus{StatusPending, StatusInProgress, StatusCompleted} {
		assert.Equal(t, s, NormalizeStatus(string(s)))
	}
}
