package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang))
		return
	}

	req, raw, ok := bindWithRawFields[dto.CreateTaskRequest](c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, input)
	if err != nil {
		respondTaskError(c, err, lang, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	filter, page, ok := parseListQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter, page)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang))
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondTaskError(c, err, lang, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang))
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang))
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	task, err := h.taskService.UpdateStatus(
		c.Request.Context(),
		actor,
		taskID,
		req.Version,
		domain.TaskStatus(req.Status),
		req.Progress,
	)
	if err != nil {
		respondTaskError(c, err, lang, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) Reassign(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang))
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang))
		return
	}

	var req dto.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	task, err := h.taskService.Reassign(c.Request.Context(), actor, taskID, req.AssigneeID)
	if err != nil {
		respondTaskError(c, err, lang, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang))
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang))
		return
	}

	req, raw, ok := bindWithRawFields[dto.UpdateTaskRequest](c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	task, err := h.taskService.UpdateDetails(c.Request.Context(), actor, taskID, input)
	if err != nil {
		respondTaskError(c, err, lang, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

// respondTaskError maps domain sentinels onto the translated error envelope.
// Anything unrecognized is a storage-level failure and stays a 500.
func respondTaskError(c *gin.Context, err error, lang, fallbackMsg string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang))
	case errors.Is(err, domain.ErrInvalidAssignee):
		c.JSON(http.StatusUnprocessableEntity, apierrors.CreateError(http.StatusUnprocessableEntity, apierrors.MsgInvalidAssignee, lang))
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, apierrors.CreateError(http.StatusUnprocessableEntity, apierrors.MsgInvalidTransition, lang))
	case errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, apierrors.CreateError(http.StatusUnprocessableEntity, apierrors.MsgInvalidTaskState, lang))
	case errors.Is(err, domain.ErrVersionConflict):
		c.JSON(http.StatusConflict, apierrors.CreateError(http.StatusConflict, apierrors.MsgVersionConflict, lang))
	default:
		zap.L().Error("task operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, fallbackMsg, lang))
	}
}

// bindWithRawFields binds the body twice: once into the typed request and
// once into a raw field map so validation can tell absent from null.
func bindWithRawFields[T any](c *gin.Context) (T, map[string]json.RawMessage, bool) {
	var req T

	body, err := c.GetRawData()
	if err != nil {
		return req, nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return req, nil, false
	}
	if err := binding.JSON.BindBody(body, &req); err != nil {
		return req, nil, false
	}
	return req, raw, true
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		return 0, false
	}
	return taskID, true
}

func parseListQuery(c *gin.Context) (domain.TaskFilter, domain.Page, bool) {
	var filter domain.TaskFilter

	if value := c.Query("assignee"); value != "" {
		assignee, err := strconv.ParseUint(value, 10, 64)
		if err != nil || assignee == 0 {
			return domain.TaskFilter{}, domain.Page{}, false
		}
		filter.AssignedTo = &assignee
	}
	if value := c.Query("status"); value != "" {
		status := domain.TaskStatus(value)
		if !status.Valid() {
			return domain.TaskFilter{}, domain.Page{}, false
		}
		filter.Status = &status
	}
	if value := c.Query("priority"); value != "" {
		priority := domain.TaskPriority(value)
		if !priority.Valid() {
			return domain.TaskFilter{}, domain.Page{}, false
		}
		filter.Priority = &priority
	}

	page := domain.Page{Number: 1, PerPage: 50}
	if value := c.Query("page"); value != "" {
		number, err := strconv.Atoi(value)
		if err != nil || number < 1 {
			return domain.TaskFilter{}, domain.Page{}, false
		}
		page.Number = number
	}
	if value := c.Query("per_page"); value != "" {
		perPage, err := strconv.Atoi(value)
		if err != nil || perPage < 1 || perPage > 200 {
			return domain.TaskFilter{}, domain.Page{}, false
		}
		page.PerPage = perPage
	}

	return filter, page, true
}
