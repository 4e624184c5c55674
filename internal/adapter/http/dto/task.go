package dto

type TaskItem struct {
	ID             uint64  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Category       string  `json:"category,omitempty"`
	Location       string  `json:"location,omitempty"`
	Equipment      string  `json:"equipment,omitempty"`
	Priority       string  `json:"priority"`
	Status         string  `json:"status"`
	AssignedTo     *uint64 `json:"assigned_to,omitempty"`
	AssignedBy     uint64  `json:"assigned_by"`
	EstimatedHours float64 `json:"estimated_hours"`
	Progress       int     `json:"progress_percentage"`
	DueDate        *string `json:"due_date,omitempty"`
	CompletedDate  *string `json:"completed_date,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	Version        int64   `json:"version"`
}

type CreateTaskRequest struct {
	Title          string   `json:"title" binding:"required,max=255"`
	Description    *string  `json:"description" binding:"omitempty,max=65535"`
	Category       *string  `json:"category" binding:"omitempty,max=255"`
	Location       *string  `json:"location" binding:"omitempty,max=255"`
	Equipment      *string  `json:"equipment" binding:"omitempty,max=255"`
	Priority       *string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	EstimatedHours *float64 `json:"estimated_hours" binding:"omitempty,gte=0"`
	DueDate        *string  `json:"due_date" binding:"omitempty"`
	AssignedTo     *uint64  `json:"assigned_to" binding:"omitempty,gt=0"`
}

type UpdateTaskRequest struct {
	Title          *string  `json:"title" binding:"omitempty,max=255"`
	Description    *string  `json:"description" binding:"omitempty,max=65535"`
	Category       *string  `json:"category" binding:"omitempty,max=255"`
	Location       *string  `json:"location" binding:"omitempty,max=255"`
	Equipment      *string  `json:"equipment" binding:"omitempty,max=255"`
	Priority       *string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	EstimatedHours *float64 `json:"estimated_hours" binding:"omitempty,gte=0"`
	DueDate        *string  `json:"due_date" binding:"omitempty"`
}

type UpdateStatusRequest struct {
	Status   string `json:"status" binding:"required,oneof=pending in_progress completed on_hold cancelled"`
	Version  int64  `json:"version" binding:"required,gte=1"`
	Progress *int   `json:"progress_percentage" binding:"omitempty,gte=0,lte=100"`
}

type ReassignRequest struct {
	AssigneeID uint64 `json:"assignee_id" binding:"required,gt=0"`
}
