package activity

import (
	"campus-activity/internal/global/middleware"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
)

// InitRouter 活动的增改查与生命周期，报名、容量等子路由由各自模块注册
func (m *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/activities")
	g.GET("", m.list)
	g.GET("/:id", m.get)
	g.POST("", middleware.RequireRole(model.RoleTeacher), m.create)
	g.PUT("/:id", m.update)

	g.POST("/:id/review", middleware.RequireRole(model.RoleAdmin), m.review)
	g.POST("/:id/publish", m.publish)
	g.POST("/:id/unpublish", m.unpublish)
	g.PUT("/:id/status", m.updateStatus)
}
