package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/sufield/taskhub/internal/app"
	"github.com/sufield/taskhub/internal/domain"
)

// TaskHandler exposes the task lifecycle over HTTP. All endpoints sit
// behind RequireAuth; the acting user comes from the request context
// and is passed explicitly into every service call.
type TaskHandler struct {
	tasks *app.TaskService
	log   *logrus.Logger
}

// NewTaskHandler creates the task endpoints.
func NewTaskHandler(tasks *app.TaskService, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, log: log}
}

type createTaskRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	Description   string `json:"description"`
	DueDate       string `json:"due_date" validate:"required"`
	Priority      string `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssigneeEmail string `json:"assignee_email" validate:"required,email"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority" validate:"omitnil,oneof=low medium high"`
}

type assignTaskRequest struct {
	AssigneeEmail string `json:"assignee_email" validate:"required,email"`
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := actingUser(r.Context())
	logEntry := h.log.WithFields(logrus.Fields{"handler": "CreateTask", "user_id": user.ID})

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body", nil)
		return
	}
	fields := validateStruct(req)
	var in app.CreateTaskInput
	if req.DueDate != "" {
		due, msg := parseDueDate(req.DueDate, h.tasks.Now())
		if msg != "" {
			if fields == nil {
				fields = map[string][]string{}
			}
			fields["due_date"] = append(fields["due_date"], msg)
		}
		in.DueDate = due
	}
	if fields != nil {
		writeError(w, http.StatusUnprocessableEntity, "Task validation failed", fields)
		return
	}

	in.Title = req.Title
	in.Description = req.Description
	in.Priority = domain.Priority(req.Priority)
	in.AssigneeEmail = req.AssigneeEmail

	task, err := h.tasks.CreateTask(r.Context(), in, user)
	if err != nil {
		h.writeTaskError(w, logEntry, err)
		return
	}

	logEntry.WithField("task_id", task.ID).Info("task created")
	writeSuccess(w, http.StatusCreated, "Task created successfully.", map[string]any{
		"task": toTaskPayload(task, h.tasks.Now()),
	})
}

// List handles GET /tasks with an optional priority query filter.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user := actingUser(r.Context())

	var priority *domain.Priority
	if raw := r.URL.Query().Get("priority"); raw != "" {
		p, err := domain.ParsePriority(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Task validation failed",
				map[string][]string{"priority": {"Priority must be one of low, medium, high"}})
			return
		}
		priority = &p
	}

	tasks, err := h.tasks.ListTasks(r.Context(), user, priority)
	if err != nil {
		h.writeTaskError(w, h.log.WithField("handler", "ListTasks"), err)
		return
	}
	writeSuccess(w, http.StatusOK, "Tasks retrieved successfully.", map[string]any{
		"tasks": toTaskPayloads(tasks, h.tasks.Now()),
	})
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := actingUser(r.Context())
	id, ok := taskID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "Task not found or unauthorized", nil)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), id, user)
	if err != nil {
		h.writeTaskError(w, h.log.WithField("handler", "GetTask"), err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task retrieved successfully.", map[string]any{
		"task": toTaskPayload(task, h.tasks.Now()),
	})
}

// Update handles PUT /tasks/{id}. Absent fields keep their values.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := actingUser(r.Context())
	id, ok := taskID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "Task not found or unauthorized", nil)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body", nil)
		return
	}
	fields := validateStruct(req)
	var in app.UpdateTaskInput
	if req.DueDate != nil {
		due, msg := parseDueDate(*req.DueDate, h.tasks.Now())
		if msg != "" {
			if fields == nil {
				fields = map[string][]string{}
			}
			fields["due_date"] = append(fields["due_date"], msg)
		}
		in.DueDate = due
	}
	if fields != nil {
		writeError(w, http.StatusUnprocessableEntity, "Task update validation failed", fields)
		return
	}

	in.Title = req.Title
	in.Description = req.Description
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		in.Priority = &p
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, in, user)
	if err != nil {
		h.writeTaskError(w, h.log.WithField("handler", "UpdateTask"), err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task updated successfully.", map[string]any{
		"task": toTaskPayload(task, h.tasks.Now()),
	})
}

// Delete handles DELETE /tasks/{id}. Success is a plain 200 with an
// empty data object.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := actingUser(r.Context())
	id, ok := taskID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "Task not found or unauthorized", nil)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id, user); err != nil {
		h.writeTaskError(w, h.log.WithField("handler", "DeleteTask"), err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}

// Assign handles POST /tasks/{id}/assign. Creator-only.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	user := actingUser(r.Context())
	id, ok := taskID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "Task not found or unauthorized", nil)
		return
	}

	var req assignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body", nil)
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeError(w, http.StatusUnprocessableEntity, "Task validation failed", fields)
		return
	}

	task, err := h.tasks.AssignTask(r.Context(), id, req.AssigneeEmail, user)
	if err != nil {
		h.writeTaskError(w, h.log.WithField("handler", "AssignTask"), err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task assigned successfully.", map[string]any{
		"task": toTaskPayload(task, h.tasks.Now()),
	})
}

// ToggleComplete handles PATCH /tasks/{id}/complete.
func (h *TaskHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	user := actingUser(r.Context())
	id, ok := taskID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "Task not found or unauthorized", nil)
		return
	}

	task, err := h.tasks.ToggleCompletion(r.Context(), id, user)
	if err != nil {
		h.writeTaskError(w, h.log.WithField("handler", "ToggleCompletion"), err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task completion toggled", map[string]any{
		"task": toTaskPayload(task, h.tasks.Now()),
	})
}

// writeTaskError maps domain errors to the envelope. Visibility
// failures collapse to 403 whether the task exists or not; only a
// missing assignee is a distinct 404, since it names a user rather
// than a task.
func (h *TaskHandler) writeTaskError(w http.ResponseWriter, logEntry *logrus.Entry, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotVisible):
		writeError(w, http.StatusForbidden, "Task not found or unauthorized", nil)
	case errors.Is(err, domain.ErrAssigneeNotFound):
		writeError(w, http.StatusNotFound, "Assignee not found", nil)
	default:
		logEntry.WithError(err).Error("task operation failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// taskID reads the {id} route parameter. An unparseable id behaves
// like a task the caller cannot see.
func taskID(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
