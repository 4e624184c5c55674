package domain

import "errors"

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidAssignee      = errors.New("assignee is not an active mechanic or operator")
	ErrForbidden            = errors.New("actor lacks authority for this operation")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrInvalidState         = errors.New("task state does not permit this operation")
	ErrVersionConflict      = errors.New("task version conflict")
)
