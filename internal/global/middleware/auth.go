package middleware

import (
	"strconv"
	"strings"

	"campus-activity/internal/global/app"
	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/jwt"
	"campus-activity/internal/global/response"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// publicPaths 免登录路由表，key 为 "METHOD /path" 或 "/path"
type publicPaths map[string]struct{}

func newPublicPaths(list []string) publicPaths {
	p := make(publicPaths, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if method, path, ok := strings.Cut(item, " "); ok {
			item = strings.ToUpper(method) + " " + strings.TrimSpace(path)
		}
		p[item] = struct{}{}
	}
	return p
}

func (p publicPaths) match(method, path string) bool {
	if _, ok := p[path]; ok {
		return true
	}
	_, ok := p[method+" "+path]
	return ok
}

// Auth 全局鉴权：公开路由放行（带了有效 token 时仍解析身份），其余路由要求有效且未吊销的 token，
// 且用户当前为启用状态。身份写入 gin.Context 并通过 X-User-Id / X-User-Role 传给下游
func Auth(a *app.App) gin.HandlerFunc {
	public := newPublicPaths(a.Config.Auth.PublicPaths)
	prefix := "/" + strings.Trim(a.Config.Prefix, "/")
	cookieName := a.Config.Auth.CookieName

	return func(c *gin.Context) {
		route := strings.TrimPrefix(c.FullPath(), prefix)
		if route == "" {
			route = "/"
		}
		isPublic := public.match(c.Request.Method, route)

		token := extractToken(c, cookieName)
		if token == "" {
			if isPublic {
				c.Next()
				return
			}
			response.Fail(c, response.ErrUnauthorized)
			return
		}

		claims, err := a.Tokens.ParseToken(c.Request.Context(), token)
		if err != nil {
			err = tokenError(err)
		} else {
			err = refreshIdentity(c, a, claims)
		}
		if err != nil {
			if isPublic {
				c.Next()
				return
			}
			response.Fail(c, err)
			return
		}

		c.Set(ctxutil.PayloadKey, claims)
		c.Set(tokenKey, token)
		c.Request.Header.Set("X-User-Id", strconv.FormatUint(uint64(claims.ID), 10))
		c.Request.Header.Set("X-User-Role", claims.Role)
		c.Next()
	}
}

const tokenKey = "token"

// refreshIdentity 以数据库中的角色和状态为准，禁用或改角色立即生效
func refreshIdentity(c *gin.Context, a *app.App, claims *jwt.Claims) error {
	var user model.User
	err := a.DB.WithContext(c.Request.Context()).
		Select("id", "role", "status").
		First(&user, claims.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.ErrTokenInvalid.WithTips("用户不存在")
	}
	if err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	if user.Status != model.UserActive {
		return response.ErrUserDisabled
	}
	claims.Role = user.Role
	claims.Status = user.Status
	return nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenRevoked):
		return response.ErrTokenRevoked
	case errors.Is(err, jwt.ErrTokenInvalid):
		return response.ErrTokenInvalid
	default:
		return response.ErrServerInternal.WithOrigin(err)
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			return v
		}
	}
	return ""
}

// GetToken 返回本次请求携带的原始 token
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// RequireRole 要求当前用户角色不低于 role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := ctxutil.GetUserPayload(c)
		if !ok {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		if !model.RoleAtLeast(payload.Role, role) {
			response.Fail(c, response.ErrForbidden)
			return
		}
		c.Next()
	}
}
