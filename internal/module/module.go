package module

import (
	"campus-activity/internal/global/app"
	"campus-activity/internal/module/activity"
	"campus-activity/internal/module/announcement"
	"campus-activity/internal/module/capacity"
	"campus-activity/internal/module/category"
	"campus-activity/internal/module/comment"
	"campus-activity/internal/module/feedback"
	"campus-activity/internal/module/notification"
	"campus-activity/internal/module/ping"
	"campus-activity/internal/module/registration"
	"campus-activity/internal/module/star"
	"campus-activity/internal/module/stats"
	"campus-activity/internal/module/upload"
	"campus-activity/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init(a *app.App)
	InitRouter(r *gin.RouterGroup)
}

// New 返回一组新的模块实例，每个 gin.Engine 各用一组
func New() []Module {
	// Register your module here
	return []Module{
		&ping.ModulePing{},
		&user.ModuleUser{},
		&category.ModuleCategory{},
		&activity.ModuleActivity{},
		&capacity.ModuleCapacity{},
		&registration.ModuleRegistration{},
		&feedback.ModuleFeedback{},
		&comment.ModuleComment{},
		&announcement.ModuleAnnouncement{},
		&notification.ModuleNotification{},
		&stats.ModuleStats{},
		&star.ModuleStar{},
		&upload.ModuleUpload{},
	}
}
