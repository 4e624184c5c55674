package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput turns a bound create request into a domain input.
// The raw message map distinguishes absent fields from fields that failed to
// bind, so a present-but-mistyped field is rejected instead of ignored.
func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "estimated_hours") && req.EstimatedHours == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.CreateTaskInput{
		Title:      title,
		AssignedTo: req.AssignedTo,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Category != nil {
		input.Category = *req.Category
	}
	if req.Location != nil {
		input.Location = *req.Location
	}
	if req.Equipment != nil {
		input.Equipment = *req.Equipment
	}
	if req.Priority != nil {
		input.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.EstimatedHours != nil {
		input.EstimatedHours = *req.EstimatedHours
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		input.DueDate = &dueDate
	}
	return input, nil
}

// BuildUpdateTaskInput maps a partial update. Field presence is taken from
// the raw payload: an explicit JSON null on due_date clears the due date, an
// absent field leaves the stored value untouched.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	var input domain.UpdateTaskInput

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Title = value
		input.TitleSet = true
	}

	if hasJSONField(raw, "description") {
		if !isJSONNull(raw["description"]) && req.Description == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		if req.Description != nil {
			input.Description = *req.Description
		}
		input.DescriptionSet = true
	}

	if hasJSONField(raw, "category") {
		if !isJSONNull(raw["category"]) && req.Category == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		if req.Category != nil {
			input.Category = *req.Category
		}
		input.CategorySet = true
	}

	if hasJSONField(raw, "location") {
		if !isJSONNull(raw["location"]) && req.Location == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		if req.Location != nil {
			input.Location = *req.Location
		}
		input.LocationSet = true
	}

	if hasJSONField(raw, "equipment") {
		if !isJSONNull(raw["equipment"]) && req.Equipment == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		if req.Equipment != nil {
			input.Equipment = *req.Equipment
		}
		input.EquipmentSet = true
	}

	if hasJSONField(raw, "priority") {
		if req.Priority == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Priority = domain.TaskPriority(*req.Priority)
		input.PrioritySet = true
	}

	if hasJSONField(raw, "estimated_hours") {
		if req.EstimatedHours == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.EstimatedHours = *req.EstimatedHours
		input.EstimatedHoursSet = true
	}

	if hasJSONField(raw, "due_date") {
		if !isJSONNull(raw["due_date"]) {
			if req.DueDate == nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			dueDate, err := parseDueDate(*req.DueDate)
			if err != nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			input.DueDate = &dueDate
		}
		input.DueDateSet = true
	}

	if input.Empty() {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	return input, nil
}

// parseDueDate accepts a full timestamp or a bare date, which is taken as
// midnight of that day.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
