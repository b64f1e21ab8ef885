package notification

import (
	"campus-activity/internal/global/middleware"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleNotification) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/notifications")
	g.GET("", m.list)
	g.GET("/unread-count", m.unreadCount)
	g.PATCH("/read-all", m.readAll)
	g.PATCH("/:id/read", m.read)
	g.POST("", middleware.RequireRole(model.RoleAdmin), m.send)
}
