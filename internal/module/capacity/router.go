package capacity

import "github.com/gin-gonic/gin"

func (m *ModuleCapacity) InitRouter(r *gin.RouterGroup) {
	r.GET("/activities/:id/capacity", m.getCapacity)
	r.PUT("/activities/:id/capacity", m.setCapacity)
	r.POST("/activities/conflicts", m.conflicts)
}
