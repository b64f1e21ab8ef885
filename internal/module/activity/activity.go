package activity

import (
	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func actorOf(c *gin.Context) Actor {
	return Actor{ID: ctxutil.GetUserID(c), Role: ctxutil.GetUserRole(c)}
}

func (m *ModuleActivity) create(c *gin.Context) {
	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("绑定创建活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	actor := actorOf(c)
	a, err := m.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("活动创建成功", "activity_id", a.ID, "title", a.Title, "organizer_id", actor.ID)
	response.Success(c, a)
}

func (m *ModuleActivity) list(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.svc.List(c.Request.Context(), actorOf(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func (m *ModuleActivity) get(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	a, err := m.svc.Get(c.Request.Context(), actorOf(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, a)
}

func (m *ModuleActivity) update(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	a, err := m.svc.Update(c.Request.Context(), actorOf(c), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, a)
}

type reviewReq struct {
	Approved *bool  `json:"approved" binding:"required"`
	Reason   string `json:"reason" binding:"max=255"`
}

func (m *ModuleActivity) review(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !*req.Approved && req.Reason == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("驳回需填写原因"))
		return
	}
	a, err := m.svc.Review(c.Request.Context(), actorOf(c), id, *req.Approved, req.Reason)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("活动审核", "activity_id", id, "approved", *req.Approved, "reviewer", ctxutil.GetUserID(c))
	response.Success(c, a)
}

func (m *ModuleActivity) publish(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	a, err := m.svc.Publish(c.Request.Context(), actorOf(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("活动发布", "activity_id", id, "operator", ctxutil.GetUserID(c))
	response.Success(c, a)
}

func (m *ModuleActivity) unpublish(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	a, err := m.svc.Unpublish(c.Request.Context(), actorOf(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("活动取消发布", "activity_id", id, "operator", ctxutil.GetUserID(c))
	response.Success(c, a)
}

type statusReq struct {
	Status string `json:"status" binding:"required,activity_status"`
}

func (m *ModuleActivity) updateStatus(c *gin.Context) {
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
	a, err := m.svc.UpdateStatus(c.Request.Context(), actorOf(c), id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("活动状态变更", "activity_id", id, "status", req.Status, "operator", ctxutil.GetUserID(c))
	response.Success(c, a)
}
