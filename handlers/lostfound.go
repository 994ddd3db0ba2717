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

// LostFoundHandler serves the lost-and-found registry. Items are visible to
// everyone; only admins move them toward matched/returned.
type LostFoundHandler struct {
	store    *store.Store[*types.LostFoundItem]
	uploader Uploader
}

func NewLostFoundHandler(s *store.Store[*types.LostFoundItem], uploader Uploader) *LostFoundHandler {
	return &LostFoundHandler{store: s, uploader: uploader}
}

func (h *LostFoundHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.store.List(nil)})
}

type createLostFoundRequest struct {
	Type         string `form:"type" json:"type"`
	Category     string `form:"category" json:"category"`
	Description  string `form:"description" json:"description"`
	Location     string `form:"location" json:"location"`
	ContactName  string `form:"contactName" json:"contactName"`
	ContactPhone string `form:"contactPhone" json:"contactPhone"`
	ContactEmail string `form:"contactEmail" json:"contactEmail"`
}

func (h *LostFoundHandler) Create(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityLostFound, access.ActionCreate) {
		forbidden(c)
		return
	}

	var req createLostFoundRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item := &types.LostFoundItem{
		Type:         req.Type,
		Category:     req.Category,
		Description:  req.Description,
		Location:     req.Location,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image attachment"})
			return
		}
		defer src.Close()

		url, err := h.uploader.Upload(c.Request.Context(), "lost-found", file.Filename,
			file.Header.Get("Content-Type"), src)
		if err != nil {
			respondError(c, err)
			return
		}
		item.ImageURL = url
	}

	created, err := h.store.Create(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateStatus advances an item along active -> matched -> returned, one
// step at a time. There is no route back once an item is matched.
func (h *LostFoundHandler) UpdateStatus(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !access.CanMutate(ident.Role, access.EntityLostFound, access.ActionUpdateStatus) {
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
