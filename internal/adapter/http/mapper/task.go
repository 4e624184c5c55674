package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Category:       task.Category,
		Location:       task.Location,
		Equipment:      task.Equipment,
		Priority:       string(task.Priority),
		Status:         string(task.Status),
		AssignedBy:     task.AssignedBy,
		EstimatedHours: task.EstimatedHours,
		Progress:       task.Progress,
		CreatedAt:      task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      task.UpdatedAt.Format(time.RFC3339),
		Version:        task.Version,
	}

	if task.AssignedTo != nil {
		value := *task.AssignedTo
		item.AssignedTo = &value
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(time.RFC3339)
		item.DueDate = &value
	}

	if task.CompletedDate != nil {
		value := task.CompletedDate.Format(time.RFC3339)
		item.CompletedDate = &value
	}

	return item
}

func ToNotificationItems(notifications []domain.Notification) []dto.NotificationItem {
	items := make([]dto.NotificationItem, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, ToNotificationItem(n))
	}
	return items
}

func ToNotificationItem(n domain.Notification) dto.NotificationItem {
	return dto.NotificationItem{
		ID:        n.ID,
		TaskID:    n.TaskID,
		Kind:      string(n.Kind),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func ToStatsItem(snapshot domain.StatsSnapshot) dto.StatsItem {
	byStatus := make(map[string]int, len(snapshot.ByStatus))
	for status, count := range snapshot.ByStatus {
		byStatus[string(status)] = count
	}
	return dto.StatsItem{
		UserID:         snapshot.UserID,
		Total:          snapshot.Total,
		ByStatus:       byStatus,
		CompletedToday: snapshot.CompletedToday,
	}
}
