package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOnHold     TaskStatus = "on_hold"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Terminal reports whether the status has no outgoing transitions.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOnHold, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID                uint64
	Title             string
	Description       string
	Category          string
	Location          string
	Equipment         string
	Priority          TaskPriority
	Status            TaskStatus
	AssignedTo        *uint64
	AssignedBy        uint64
	EstimatedHours    float64
	Progress          int
	DueDate           *time.Time
	OverdueNotifiedAt *time.Time
	CompletedDate     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int64
}

// Overdue reports whether the task is past its due date and still open.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status.Terminal() {
		return false
	}
	return t.DueDate.Before(now)
}

// AssignedToUser reports whether userID currently holds the assignment.
func (t Task) AssignedToUser(userID uint64) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

type CreateTaskInput struct {
	Title          string
	Description    string
	Category       string
	Location       string
	Equipment      string
	Priority       TaskPriority
	EstimatedHours float64
	DueDate        *time.Time
	AssignedTo     *uint64
}

type UpdateTaskInput struct {
	Title             string
	TitleSet          bool
	Description       string
	DescriptionSet    bool
	Category          string
	CategorySet       bool
	Location          string
	LocationSet       bool
	Equipment         string
	EquipmentSet      bool
	Priority          TaskPriority
	PrioritySet       bool
	EstimatedHours    float64
	EstimatedHoursSet bool
	DueDate           *time.Time
	DueDateSet        bool
}

// Empty reports whether the update carries no field at all.
func (in UpdateTaskInput) Empty() bool {
	return !in.TitleSet && !in.DescriptionSet && !in.CategorySet && !in.LocationSet &&
		!in.EquipmentSet && !in.PrioritySet && !in.EstimatedHoursSet && !in.DueDateSet
}

type TaskFilter struct {
	AssignedTo *uint64
	Status     *TaskStatus
	Priority   *TaskPriority
}

type Page struct {
	Number  int
	PerPage int
}

func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.PerPage
}

type StatsSnapshot struct {
	UserID         uint64
	Total          int
	ByStatus       map[TaskStatus]int
	CompletedToday int
}
