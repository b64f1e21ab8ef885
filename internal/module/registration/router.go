package registration

import "github.com/gin-gonic/gin"

func (m *ModuleRegistration) InitRouter(r *gin.RouterGroup) {
	activities := r.Group("/activities/:id")
	activities.POST("/register", m.register)
	activities.GET("/registration-status", m.myStatus)
	activities.GET("/registration-count", m.count)
	activities.GET("/registrations", m.list)
	activities.GET("/registrations/export", m.export)

	registrations := r.Group("/registrations")
	registrations.GET("/mine", m.mine)
	registrations.POST("/:id/cancel", m.cancel)
	registrations.PUT("/:id/status", m.updateStatus)
}
