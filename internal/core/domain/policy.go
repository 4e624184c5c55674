package domain

// transitions is the complete status edge table. Terminal states have no
// entry, so every edge out of them is rejected.
var transitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending:    {TaskStatusInProgress, TaskStatusOnHold, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusCompleted, TaskStatusOnHold, TaskStatusCancelled},
	TaskStatusOnHold:     {TaskStatusInProgress, TaskStatusCancelled},
}

// EdgeAllowed reports whether from -> to exists in the state machine.
// Self-loops are never allowed.
func EdgeAllowed(from, to TaskStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionEffects are instructions returned to the caller; the policy
// itself never mutates anything.
type TransitionEffects struct {
	ForceProgress  *int
	StampCompleted bool
}

// DecideTransition evaluates whether actor may move task to target.
// Authorization is checked before edge validity: an actor with no relation to
// the task gets ErrForbidden even for edges that do not exist. The assignee
// may move a task between pending, in_progress and on_hold and may complete
// it, but may not cancel; managers and admins may take any edge.
func DecideTransition(task Task, actor Actor, target TaskStatus) (TransitionEffects, error) {
	switch {
	case actor.Role.CanManage():
		// blanket authority over every edge
	case task.AssignedToUser(actor.ID):
		if target == TaskStatusCancelled {
			return TransitionEffects{}, ErrForbidden
		}
	default:
		return TransitionEffects{}, ErrForbidden
	}

	if !EdgeAllowed(task.Status, target) {
		return TransitionEffects{}, ErrInvalidTransition
	}

	var effects TransitionEffects
	switch target {
	case TaskStatusCompleted:
		full := 100
		effects.ForceProgress = &full
		effects.StampCompleted = true
	case TaskStatusOnHold, TaskStatusCancelled:
		// Progress is only meaningful on a task being worked or done.
		zero := 0
		effects.ForceProgress = &zero
	}
	return effects, nil
}

// CanReassign reports whether actor may change a task's assignment. The edge
// table is not involved: reassignment never changes status, it only requires
// managerial authority and a non-terminal task (checked by the caller).
func CanReassign(actor Actor) bool {
	return actor.Role.CanManage()
}

// EligibleAssignee reports whether user may hold a task assignment.
func EligibleAssignee(user User) bool {
	return user.Active && user.Role.Assignable()
}
