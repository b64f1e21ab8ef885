package user

import (
	"net/http"

	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) signUp(c *gin.Context) {
	var req SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("绑定注册请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	user, err := u.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("用户注册成功", "user_id", user.ID, "email", user.Email)
	response.Success(c, user)
}

type signInReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (u *ModuleUser) signIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	token, user, err := u.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.WithContext(log, c).Warn("登录失败", "email", req.Email, "error", err)
		response.Fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(u.cfg.Auth.CookieName, token, int(u.cfg.JWT.AccessExpire), "/", "", false, true)
	logger.WithContext(log, c).Info("用户登录成功", "user_id", user.ID, "role", user.Role)
	response.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

func (u *ModuleUser) signOut(c *gin.Context) {
	claims, ok := ctxutil.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	if err := u.svc.SignOut(c.Request.Context(), claims); err != nil {
		response.Fail(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(u.cfg.Auth.CookieName, "", -1, "/", "", false, true)
	response.Success(c)
}

func (u *ModuleUser) getProfile(c *gin.Context) {
	user, err := u.svc.Get(c.Request.Context(), ctxutil.GetUserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, user)
}

func (u *ModuleUser) updateProfile(c *gin.Context) {
	var req ProfileUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	user, err := u.svc.UpdateProfile(c.Request.Context(), ctxutil.GetUserID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, user)
}

type passwordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (u *ModuleUser) changePassword(c *gin.Context) {
	var req passwordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	uid := ctxutil.GetUserID(c)
	if err := u.svc.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("修改密码成功", "user_id", uid)
	response.Success(c)
}

func (u *ModuleUser) listUsers(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := u.svc.List(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

type roleReq struct {
	Role string `json:"role" binding:"required,role"`
}

func (u *ModuleUser) setRole(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	user, err := u.svc.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("修改用户角色", "operator", ctxutil.GetUserID(c), "user_id", id, "role", req.Role)
	response.Success(c, user)
}

type statusReq struct {
	Status string `json:"status" binding:"required,oneof=active disabled"`
}

func (u *ModuleUser) setStatus(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	user, err := u.svc.SetStatus(c.Request.Context(), ctxutil.GetUserID(c), id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("修改用户状态", "operator", ctxutil.GetUserID(c), "user_id", id, "status", req.Status)
	response.Success(c, user)
}
