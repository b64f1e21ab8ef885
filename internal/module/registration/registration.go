package registration

import (
	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/response"
	"campus-activity/internal/model"

	"github.com/gin-gonic/gin"
)

func actorOf(c *gin.Context) Actor {
	return Actor{ID: ctxutil.GetUserID(c), Role: ctxutil.GetUserRole(c)}
}

func (m *ModuleRegistration) register(c *gin.Context) {
	activityID, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	userID := ctxutil.GetUserID(c)
	reg, err := m.svc.Register(c.Request.Context(), userID, activityID)
	if err != nil {
		logger.WithContext(log, c).Info("报名失败", "activity_id", activityID, "error", err)
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("报名成功", "activity_id", activityID, "registration_id", reg.ID)
	response.Success(c, reg)
}

func (m *ModuleRegistration) cancel(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	reg, err := m.svc.Cancel(c.Request.Context(), ctxutil.GetUserID(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("取消报名", "registration_id", id, "activity_id", reg.ActivityID)
	response.Success(c, reg)
}

func (m *ModuleRegistration) updateStatus(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req StatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	reg, err := m.svc.UpdateStatus(c.Request.Context(), actorOf(c), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("报名状态变更", "registration_id", id, "status", reg.Status, "force", req.Force)
	response.Success(c, reg)
}

func (m *ModuleRegistration) myStatus(c *gin.Context) {
	activityID, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	reg, err := m.svc.Mine(c.Request.Context(), ctxutil.GetUserID(c), activityID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if reg == nil {
		response.Success(c, gin.H{"registered": false})
		return
	}
	response.Success(c, gin.H{
		"registered":   model.IsActiveRegistration(reg.Status),
		"registration": reg,
	})
}

func (m *ModuleRegistration) count(c *gin.Context) {
	activityID, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	result, err := m.svc.Count(c.Request.Context(), activityID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func (m *ModuleRegistration) list(c *gin.Context) {
	activityID, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.svc.List(c.Request.Context(), actorOf(c), activityID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func (m *ModuleRegistration) mine(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.svc.MyList(c.Request.Context(), ctxutil.GetUserID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}
