package services

import "github.com/Thooms-coder/Shibui-Planner/internal/models"

// Allowed status transitions for assignments. Status only moves forward;
// nothing leaves completed. The reconciler sweep relies on the same order.
var AssignmentTransitions = map[models.AssignmentStatus]map[models.AssignmentStatus]bool{
	models.StatusPending:    {models.StatusInProgress: true, models.StatusCompleted: true},
	models.StatusInProgress: {models.StatusCompleted: true},
	models.StatusCompleted:  {},
}

func canTransition(current, to models.AssignmentStatus) bool {
	if current == "" || current == to {
		return true
	}
	nexts, ok := AssignmentTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}
