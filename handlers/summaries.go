package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetysight/feed"
)

// SummaryHandler exposes the current AI situation summary from the realtime
// feed.
type SummaryHandler struct {
	feed *feed.Feed
}

func NewSummaryHandler(f *feed.Feed) *SummaryHandler {
	return &SummaryHandler{feed: f}
}

// Current returns the latest snapshot with its derived severity, or an
// explicit empty payload when no summary has been produced yet.
func (h *SummaryHandler) Current(c *gin.Context) {
	snapshot := h.feed.Latest()
	if snapshot == nil {
		c.JSON(http.StatusOK, gin.H{"summary": nil, "severity": "low"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":  snapshot,
		"severity": feed.ParseSeverity(snapshot.Insights),
	})
}
