package ping

import (
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", p.ping)
}

// ping 顺带检查数据库连通性
func (p *ModulePing) ping(c *gin.Context) {
	result := map[string]any{
		"message": "pong",
		"version": Version,
	}
	if sqlDB, err := p.app.DB.DB(); err == nil {
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			log.Error("数据库不可用", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}
	response.Success(c, result)
}
