package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetysight/access"
	"safetysight/lifecycle"
	"safetysight/middleware"
	"safetysight/store"
	"safetysight/types"
)

// TaskHandler serves the operational task board. Admins see and create
// everything; responders see tasks for their zone or assigned to them.
type TaskHandler struct {
	store *store.Store[*types.Task]
}

func NewTaskHandler(s *store.Store[*types.Task]) *TaskHandler {
	return &TaskHandler{store: s}
}

func (h *TaskHandler) List(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	tasks := h.store.List(func(t *types.Task) bool {
		return access.TaskVisible(ident, t)
	})
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assignedTo"`
	Zone        string `json:"zone"`
	DueTime     string `json:"dueTime"`
	Type        string `json:"type"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityTask, access.ActionCreate) {
		forbidden(c)
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Priority == "" {
		req.Priority = string(types.SeverityMedium)
	}
	if req.Type == "" {
		req.Type = types.TaskTypes[0]
	}

	task := &types.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    types.Severity(req.Priority),
		AssignedTo:  req.AssignedTo,
		Zone:        req.Zone,
		DueTime:     req.DueTime,
		Type:        req.Type,
	}

	created, err := h.store.Create(c.Request.Context(), task)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateStatus steps a task forward or cancels it. Cancelling is legal from
// pending and in-progress only; completed and cancelled are terminal.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityTask, access.ActionUpdateStatus) {
		forbidden(c)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	updated, err := h.store.UpdateStatus(c.Request.Context(), c.Param("id"), lifecycle.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
