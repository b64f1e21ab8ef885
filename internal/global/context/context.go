package context

import (
	"strconv"

	"campus-activity/internal/global/jwt"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

const PayloadKey = "payload"

func GetUserPayload(c *gin.Context) (userPayload *jwt.Claims, exist bool) {
	payload, _ := c.Get(PayloadKey)
	userPayload, exist = payload.(*jwt.Claims)
	return
}

// GetUserID 未登录时返回 0
func GetUserID(c *gin.Context) uint {
	if p, ok := GetUserPayload(c); ok {
		return p.ID
	}
	return 0
}

func GetUserRole(c *gin.Context) string {
	if p, ok := GetUserPayload(c); ok {
		return p.Role
	}
	return ""
}

// ParamID 解析路径中的正整数 ID
func ParamID(c *gin.Context, key string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || v == 0 {
		return 0, response.ErrInvalidRequest.WithTips("无效的" + key)
	}
	return uint(v), nil
}
