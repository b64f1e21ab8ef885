package feedback

import "github.com/gin-gonic/gin"

func (m *ModuleFeedback) InitRouter(r *gin.RouterGroup) {
	r.GET("/activities/:id/rating-stats", m.stats)

	feedbacks := r.Group("/feedbacks")
	feedbacks.GET("", m.list)
	feedbacks.POST("", m.create)
	feedbacks.PUT("/:id", m.update)
	feedbacks.DELETE("/:id", m.delete)
}
