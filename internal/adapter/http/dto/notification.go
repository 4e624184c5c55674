package dto

type NotificationItem struct {
	ID        string `json:"id"`
	TaskID    uint64 `json:"task_id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

type UnreadCountItem struct {
	Count int `json:"count"`
}

type StatsItem struct {
	UserID         uint64         `json:"user_id"`
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	CompletedToday int            `json:"completed_today"`
}
