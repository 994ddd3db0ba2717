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

// IncidentHandler serves the incident-report store. Any authenticated role
// may file a report; status moves only by admin/responder action.
type IncidentHandler struct {
	store    *store.Store[*types.IncidentReport]
	uploader Uploader
}

func NewIncidentHandler(s *store.Store[*types.IncidentReport], uploader Uploader) *IncidentHandler {
	return &IncidentHandler{store: s, uploader: uploader}
}

// List returns the reports visible to the caller, newest first. Admins see
// everything, everyone else only reports they filed.
func (h *IncidentHandler) List(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	reports := h.store.List(func(r *types.IncidentReport) bool {
		return access.IncidentVisible(ident, r)
	})
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

type createIncidentRequest struct {
	Title        string `form:"title" json:"title"`
	Description  string `form:"description" json:"description"`
	Category     string `form:"category" json:"category"`
	Severity     string `form:"severity" json:"severity"`
	Location     string `form:"location" json:"location"`
	Zone         string `form:"zone" json:"zone"`
	ContactPhone string `form:"contactPhone" json:"contactPhone"`
	ContactEmail string `form:"contactEmail" json:"contactEmail"`
}

// Create files a new report as the session identity. An optional "media"
// multipart file is uploaded first; if that upload fails, no record is
// written.
func (h *IncidentHandler) Create(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityIncident, access.ActionCreate) {
		forbidden(c)
		return
	}

	var req createIncidentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Category == "" {
		req.Category = "General"
	}
	if req.Severity == "" {
		req.Severity = string(types.SeverityMedium)
	}
	if req.Zone == "" {
		req.Zone = types.Zones[0]
	}

	report := &types.IncidentReport{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Severity:     types.Severity(req.Severity),
		Location:     req.Location,
		Zone:         req.Zone,
		ReportedBy:   ident.Name,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	}

	if file, err := c.FormFile("media"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable media attachment"})
			return
		}
		defer src.Close()

		url, err := h.uploader.Upload(c.Request.Context(), "incident-media", file.Filename,
			file.Header.Get("Content-Type"), src)
		if err != nil {
			respondError(c, err)
			return
		}
		report.MediaAttached = true
		report.MediaURL = url
	}

	created, err := h.store.Create(c.Request.Context(), report)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateStatus advances a report along submitted -> under-review ->
// in-progress -> resolved.
func (h *IncidentHandler) UpdateStatus(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityIncident, access.ActionUpdateStatus) {
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
