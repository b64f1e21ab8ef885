package middleware

import (
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

// Recovery 把 panic 转成统一的错误响应
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer response.Recovery(c)
		c.Next()
	}
}
