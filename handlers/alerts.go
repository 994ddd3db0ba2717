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

// AlertHandler serves zone-scoped safety alerts.
type AlertHandler struct {
	store *store.Store[*types.Alert]
}

func NewAlertHandler(s *store.Store[*types.Alert]) *AlertHandler {
	return &AlertHandler{store: s}
}

// List returns alerts visible to the caller. Responders get only their own
// zone's alerts; everyone else sees the full feed.
func (h *AlertHandler) List(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	alerts := h.store.List(func(a *types.Alert) bool {
		return access.AlertVisible(ident, a)
	})
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

type createAlertRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Zone        string `json:"zone"`
	Source      string `json:"source"`
}

func (h *AlertHandler) Create(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityAlert, access.ActionCreate) {
		forbidden(c)
		return
	}

	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Type == "" {
		req.Type = "system"
	}
	if req.Severity == "" {
		req.Severity = string(types.SeverityMedium)
	}
	if req.Source == "" {
		req.Source = "Manual"
	}

	alert := &types.Alert{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Severity:    types.Severity(req.Severity),
		Zone:        req.Zone,
		Source:      req.Source,
	}

	created, err := h.store.Create(c.Request.Context(), alert)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AlertHandler) UpdateStatus(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityAlert, access.ActionUpdateStatus) {
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
