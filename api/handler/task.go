package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduhub/backend/api/transport"
	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/pkg/httpcontext"
	"github.com/eduhub/backend/repository"
	todoUC "github.com/eduhub/backend/usecase/todo"
)

type TaskHandler struct {
	baseHandler
	uc *todoUC.UseCase
}

func NewTaskHandler(uc *todoUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	filter := repository.TaskFilter{
		UserID: userID,
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 0),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}
	if raw := string(ctx.QueryArgs().Peek("completed")); raw != "" {
		if completed, err := strconv.ParseBool(raw); err == nil {
			filter.Completed = &completed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Pending tasks in work order
// @Tags tasks
// @Router /api/v1/tasks/queue [get]
func (h *TaskHandler) GetQueue(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.Queue(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Pending tasks with priority tiers
// @Tags tasks
// @Router /api/v1/tasks/prioritized [get]
func (h *TaskHandler) GetPrioritized(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.Prioritized(stdCtx, userID, time.Now())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	req, ok := h.parseRequest(ctx)
	if !ok {
		return
	}

	task := &domain.Task{UserID: userID}
	applyTaskRequest(task, req)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	req, ok := h.parseRequest(ctx)
	if !ok {
		return
	}
	if req.ID == "" {
		req.ID, _ = ctx.UserValue("id").(string)
	}
	if req.ID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	existing, err := h.uc.GetTask(stdCtx, req.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if existing.UserID != userID {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}

	applyTaskRequest(existing, req)

	updated, err := h.uc.UpdateTask(stdCtx, existing)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Reorder tasks
// @Tags tasks
// @Router /api/v1/tasks/reorder [post]
func (h *TaskHandler) ReorderTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	var req transport.ReorderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || len(req.IDs) == 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Reorder(stdCtx, userID, req.IDs); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func (h *TaskHandler) parseRequest(ctx *fasthttp.RequestCtx) (transport.TaskRequest, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return req, false
	}
	return req, true
}

// applyTaskRequest overlays the request on the task. Absent fields leave
// the task untouched. Timestamps are RFC3339 strings; an explicit empty
// string clears the field.
func applyTaskRequest(task *domain.Task, req transport.TaskRequest) {
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.Deadline != nil {
		task.Deadline = parseTime(*req.Deadline)
	}
	if req.Reminder != nil {
		task.Reminder = *req.Reminder
	}
	if req.ReminderTime != nil {
		task.ReminderTime = parseTime(*req.ReminderTime)
	}
	if req.Difficulty != nil {
		task.Difficulty = *req.Difficulty
	}
	if req.Urgency != nil {
		task.Urgency = *req.Urgency
	}
	if req.EstimateMinutes != nil {
		task.EstimateMinutes = *req.EstimateMinutes
	}
	if req.OrderIndex != nil {
		task.OrderIndex = *req.OrderIndex
	}
	if req.Source != nil {
		task.Source = *req.Source
	}
}

func parseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed
	}
	return nil
}

func (h baseHandler) userID(ctx *fasthttp.RequestCtx) string {
	return string(ctx.Request.Header.Peek("X-User-ID"))
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
