package announcement

import (
	"campus-activity/internal/global/middleware"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleAnnouncement) InitRouter(r *gin.RouterGroup) {
	announcements := r.Group("/announcements")
	announcements.GET("", m.list)
	announcements.GET("/:id", m.get)

	manage := announcements.Group("", middleware.RequireRole(model.RoleTeacher))
	manage.POST("", m.create)
	manage.PATCH("/:id/publish", m.publish)
	manage.DELETE("/:id", m.delete)
}
