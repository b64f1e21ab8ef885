package comment

import (
	"campus-activity/internal/global/middleware"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleComment) InitRouter(r *gin.RouterGroup) {
	r.GET("/activities/:id/comments", m.list)
	r.POST("/activities/:id/comments", m.create)

	comments := r.Group("/comments")
	comments.DELETE("/:id", m.delete)
	comments.PATCH("/:id/status", middleware.RequireRole(model.RoleAdmin), m.setStatus)
}
