package stats

import (
	"campus-activity/internal/global/middleware"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleStats) InitRouter(r *gin.RouterGroup) {
	commonGroup := r.Group("/stats")
	{
		commonGroup.GET("/rank", m.rank)
		commonGroup.GET("/history", m.history)
		commonGroup.GET("/activities/:id/brief", m.brief)
	}
	adminGroup := r.Group("/stats", middleware.RequireRole(model.RoleAdmin))
	{
		adminGroup.GET("/overview", m.overview)
	}
}
