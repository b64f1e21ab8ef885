// Package star 活动收藏
package star

import "github.com/gin-gonic/gin"

func (m *ModuleStar) InitRouter(r *gin.RouterGroup) {
	r.GET("/activities/:id/star", m.ask)

	starGroup := r.Group("/stars")
	{
		starGroup.GET("", m.list)
		starGroup.POST("/:id", m.add)
		starGroup.DELETE("/:id", m.cancel)
	}
}
