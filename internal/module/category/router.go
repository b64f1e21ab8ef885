package category

import (
	"campus-activity/internal/global/middleware"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleCategory) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/categories")
	g.GET("", m.list)
	g.GET("/:id", m.get)
	g.GET("/:id/stats", m.stats)

	admin := g.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.POST("", m.create)
	admin.PUT("/:id", m.update)
	admin.DELETE("/:id", m.delete)
}
