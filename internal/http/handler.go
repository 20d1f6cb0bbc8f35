package http

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/http/validators"
	model "task-tracker.com/task-tracker/internal/models"
	"task-tracker.com/task-tracker/internal/services"
)

type Handler struct {
	taskService  *services.TaskService
	missing      map[Action]MissingPolicy
	writeFailure WriteFailureFunc
}

type indexPage struct {
	Tasks []model.Task
	Count int64
}

type showPage struct {
	Task *model.Task
}

type formPage struct {
	Task   *model.Task
	Action string
	Method string
}

func NewHandler(taskService *services.TaskService, opts ...HandlerOption) *Handler {
	h := &Handler{
		taskService:  taskService,
		missing:      make(map[Action]MissingPolicy, len(DefaultMissingPolicies)),
		writeFailure: defaultWriteFailure,
	}
	for action, policy := range DefaultMissingPolicies {
		h.missing[action] = policy
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()

	tasks, err := h.taskService.ListTasks(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	count, err := h.taskService.CountTasks(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to count tasks")
	}

	return c.Render(http.StatusOK, "index", indexPage{Tasks: tasks, Count: count})
}

func (h *Handler) ShowTask(c echo.Context) error {
	task, err := h.findTask(c)
	if err != nil {
		return h.lookupFailed(c, ActionShow, err)
	}

	return c.Render(http.StatusOK, "show", showPage{Task: task})
}

func (h *Handler) NewTask(c echo.Context) error {
	return c.Render(http.StatusOK, "new", formPage{
		Task:   &model.Task{},
		Action: "/tasks",
		Method: http.MethodPost,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	req, completedAt, err := bindTaskRequest(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req.Name, req.Description, completedAt)
	if err != nil {
		log.Printf("create task failed: %v", err)
		return h.writeFailure(c, ActionCreate, err)
	}

	return c.Redirect(http.StatusFound, taskPath(task.ID))
}

func (h *Handler) EditTask(c echo.Context) error {
	task, err := h.findTask(c)
	if err != nil {
		return h.lookupFailed(c, ActionEdit, err)
	}

	return c.Render(http.StatusOK, "edit", formPage{
		Task:   task,
		Action: taskPath(task.ID),
		Method: http.MethodPatch,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	task, err := h.findTask(c)
	if err != nil {
		return h.lookupFailed(c, ActionUpdate, err)
	}

	req, completedAt, err := bindTaskRequest(c)
	if err != nil {
		return err
	}

	updated, err := h.taskService.UpdateTask(c.Request().Context(), task, req.Name, req.Description, completedAt)
	if err != nil {
		if apperrors.IsMissing(err) {
			return h.missing[ActionUpdate].respond(c)
		}
		log.Printf("update task %d failed: %v", task.ID, err)
		return h.writeFailure(c, ActionUpdate, err)
	}

	return c.Redirect(http.StatusFound, taskPath(updated.ID))
}

func (h *Handler) DestroyTask(c echo.Context) error {
	id, ok := parseTaskID(c)
	if !ok {
		return h.missing[ActionDestroy].respond(c)
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return h.lookupFailed(c, ActionDestroy, err)
	}

	return c.Redirect(http.StatusFound, "/tasks")
}

func (h *Handler) findTask(c echo.Context) (*model.Task, error) {
	id, ok := parseTaskID(c)
	if !ok {
		return nil, apperrors.ErrInvalidTaskID
	}
	return h.taskService.GetTask(c.Request().Context(), id)
}

func (h *Handler) lookupFailed(c echo.Context, action Action, err error) error {
	if apperrors.IsMissing(err) {
		return h.missing[action].respond(c)
	}

	log.Printf("%s task failed: %v", action, err)
	return apperrors.HTTPError(err, fmt.Sprintf("failed to %s task", action))
}

// parseTaskID reports false for anything that cannot be a stored id,
// including negative numbers.
func parseTaskID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func bindTaskRequest(c echo.Context) (*dto.TaskRequestData, *time.Time, error) {
	var req dto.TaskRequestData
	if err := c.Bind(&req); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidPayload.Message)
	}

	completedAt, err := validators.ValidateTaskRequest(&req)
	if err != nil {
		return nil, nil, apperrors.HTTPError(err, apperrors.ErrInvalidPayload.Message)
	}

	return &req, completedAt, nil
}

func taskPath(id uint) string {
	return fmt.Sprintf("/tasks/%d", id)
}
