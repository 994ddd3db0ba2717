package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetysight/access"
	"safetysight/middleware"
	"safetysight/types"
)

// DashboardHandler serves the navigation model and the demo heatmap and
// prediction panels. The panel data is static in this deployment; the
// density pipeline that would feed it is out of scope here.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Views returns the ordered navigation for the caller's role.
func (h *DashboardHandler) Views(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	c.JSON(http.StatusOK, gin.H{
		"role":  ident.Role,
		"views": access.VisibleViews(ident.Role),
	})
}

// heatmapZone is one cell of the crowd-density panel.
type heatmapZone struct {
	Zone    string `json:"zone"`
	Density int    `json:"density"` // percent of capacity
	Level   string `json:"level"`
}

var heatmapDensities = map[string]int{
	"Zone A": 85,
	"Zone B": 65,
	"Zone C": 45,
	"Zone D": 90,
	"Zone E": 30,
}

func densityLevel(density int) string {
	switch {
	case density >= 80:
		return string(types.SeverityHigh)
	case density >= 60:
		return string(types.SeverityMedium)
	default:
		return string(types.SeverityLow)
	}
}

// Heatmap returns per-zone crowd density, in fixed zone order.
func (h *DashboardHandler) Heatmap(c *gin.Context) {
	zones := make([]heatmapZone, 0, len(types.Zones))
	for _, zone := range types.Zones {
		density := heatmapDensities[zone]
		zones = append(zones, heatmapZone{
			Zone:    zone,
			Density: density,
			Level:   densityLevel(density),
		})
	}
	c.JSON(http.StatusOK, gin.H{"zones": zones})
}

// prediction is one forward-looking risk estimate for the predictions panel.
type prediction struct {
	Zone       string `json:"zone"`
	Type       string `json:"type"`
	Risk       string `json:"risk"`
	Confidence int    `json:"confidence"` // percent
	Window     string `json:"window"`
	Detail     string `json:"detail"`
}

var predictions = []prediction{
	{
		Zone: "Zone A", Type: "crowd", Risk: string(types.SeverityHigh),
		Confidence: 87, Window: "next 30 minutes",
		Detail: "Density trending toward capacity near the main entrance.",
	},
	{
		Zone: "Zone D", Type: "security", Risk: string(types.SeverityMedium),
		Confidence: 72, Window: "next hour",
		Detail: "Elevated incident rate in the parking area.",
	},
	{
		Zone: "Zone B", Type: "crowd", Risk: string(types.SeverityMedium),
		Confidence: 64, Window: "next 45 minutes",
		Detail: "Food court queues building ahead of the evening session.",
	},
	{
		Zone: "Zone C", Type: "medical", Risk: string(types.SeverityLow),
		Confidence: 55, Window: "next 2 hours",
		Detail: "Normal activity expected in the exhibition hall.",
	},
}

// Predictions returns the forward-looking risk panel.
func (h *DashboardHandler) Predictions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}
