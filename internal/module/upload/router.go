package upload

import (
	"campus-activity/internal/global/middleware"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleUpload) InitRouter(r *gin.RouterGroup) {
	upload := r.Group("/upload", middleware.RequireRole(model.RoleTeacher))
	upload.POST("/presign", m.presign)
	upload.POST("/image", m.image)
}
