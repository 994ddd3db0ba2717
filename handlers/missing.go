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

// MissingPersonHandler serves missing-person reports. The photo, when
// present, is uploaded before the record is written so the stored reference
// is always valid; a crash after upload leaves at worst an orphaned object,
// never a dangling record.
type MissingPersonHandler struct {
	store    *store.Store[*types.MissingPersonReport]
	uploader Uploader
}

func NewMissingPersonHandler(s *store.Store[*types.MissingPersonReport], uploader Uploader) *MissingPersonHandler {
	return &MissingPersonHandler{store: s, uploader: uploader}
}

func (h *MissingPersonHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reports": h.store.List(nil)})
}

type createMissingRequest struct {
	FullName     string `form:"fullName" json:"fullName"`
	Age          string `form:"age" json:"age"`
	LastLocation string `form:"lastLocation" json:"lastLocation"`
	LastTime     string `form:"lastTime" json:"lastTime"`
	Clothing     string `form:"clothing" json:"clothing"`
	Description  string `form:"description" json:"description"`
	Contact      string `form:"contact" json:"contact"`
	Relationship string `form:"relationship" json:"relationship"`
}

func (h *MissingPersonHandler) Create(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityMissingPerson, access.ActionCreate) {
		forbidden(c)
		return
	}

	var req createMissingRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report := &types.MissingPersonReport{
		FullName:     req.FullName,
		Age:          req.Age,
		LastLocation: req.LastLocation,
		LastTime:     req.LastTime,
		Clothing:     req.Clothing,
		Description:  req.Description,
		Contact:      req.Contact,
		Relationship: req.Relationship,
		ReportedBy:   ident.Name,
	}

	if file, err := c.FormFile("photo"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo attachment"})
			return
		}
		defer src.Close()

		url, err := h.uploader.Upload(c.Request.Context(), "missing-persons", file.Filename,
			file.Header.Get("Content-Type"), src)
		if err != nil {
			respondError(c, err)
			return
		}
		report.PhotoURL = url
	}

	created, err := h.store.Create(c.Request.Context(), report)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *MissingPersonHandler) UpdateStatus(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityMissingPerson, access.ActionUpdateStatus) {
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
