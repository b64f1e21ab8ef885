package user

import (
	"campus-activity/internal/global/middleware"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
)

// InitRouter 注册、登录、个人资料以及管理员的用户管理
func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	r.POST("/sign-up", u.signUp)
	r.POST("/sign-in", u.signIn)
	r.POST("/sign-out", u.signOut)

	userGroup := r.Group("/user")
	userGroup.GET("/profile", u.getProfile)
	userGroup.PUT("/profile", u.updateProfile)
	userGroup.POST("/password", u.changePassword)

	admin := r.Group("/users", middleware.RequireRole(model.RoleAdmin))
	admin.GET("", u.listUsers)
	admin.PUT("/:id/role", u.setRole)
	admin.PUT("/:id/status", u.setStatus)
}
