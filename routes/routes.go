package routes

import (
	"github.com/gin-gonic/gin"

	"safetysight/auth"
	"safetysight/handlers"
	"safetysight/middleware"
	"safetysight/types"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Dashboard  *handlers.DashboardHandler
	Incidents  *handlers.IncidentHandler
	Missing    *handlers.MissingPersonHandler
	LostFound  *handlers.LostFoundHandler
	Tasks      *handlers.TaskHandler
	Alerts     *handlers.AlertHandler
	Responders *handlers.ResponderHandler
	Summaries  *handlers.SummaryHandler
}

// SetupRouter builds the gin engine. Everything under /api except auth sits
// behind the bearer-token middleware; per-entity permission checks stay in
// the handlers so the rules live in one table.
func SetupRouter(jwtManager *auth.JWTManager, h Handlers) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	api := r.Group("/api", middleware.Auth(jwtManager))
	{
		api.GET("/views", h.Dashboard.Views)
		api.GET("/heatmap", h.Dashboard.Heatmap)
		api.GET("/predictions", h.Dashboard.Predictions)
		api.GET("/summaries/current", h.Summaries.Current)

		api.GET("/incidents", h.Incidents.List)
		api.POST("/incidents", h.Incidents.Create)
		api.PATCH("/incidents/:id/status", h.Incidents.UpdateStatus)

		api.GET("/missing-persons", h.Missing.List)
		api.POST("/missing-persons", h.Missing.Create)
		api.PATCH("/missing-persons/:id/status", h.Missing.UpdateStatus)

		api.GET("/lost-found", h.LostFound.List)
		api.POST("/lost-found", h.LostFound.Create)
		api.PATCH("/lost-found/:id/status", h.LostFound.UpdateStatus)

		api.GET("/tasks", h.Tasks.List)
		api.POST("/tasks", h.Tasks.Create)
		api.PATCH("/tasks/:id/status", h.Tasks.UpdateStatus)

		api.GET("/alerts", h.Alerts.List)
		api.POST("/alerts", h.Alerts.Create)
		api.PATCH("/alerts/:id/status", h.Alerts.UpdateStatus)

		api.GET("/responders",
			middleware.RequireRole(types.RoleAdmin),
			h.Responders.List)
	}

	return r
}
