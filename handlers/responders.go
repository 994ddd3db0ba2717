package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetysight/store"
)

// ResponderHandler exposes the responder roster. The route itself is
// admin-gated in the router; the optional "zone" query narrows the list.
type ResponderHandler struct {
	directory *store.ResponderDirectory
}

func NewResponderHandler(d *store.ResponderDirectory) *ResponderHandler {
	return &ResponderHandler{directory: d}
}

func (h *ResponderHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"responders": h.directory.List(c.Query("zone"))})
}
