package comment

import (
	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/paginate"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (m *ModuleComment) list(c *gin.Context) {
	activityID, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var q paginate.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.svc.List(c.Request.Context(), activityID, q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func (m *ModuleComment) create(c *gin.Context) {
	activityID, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	cm, err := m.svc.Create(c.Request.Context(), ctxutil.GetUserID(c), activityID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, cm)
}

func (m *ModuleComment) delete(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := m.svc.Delete(c.Request.Context(), ctxutil.GetUserID(c), ctxutil.GetUserRole(c), id); err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("删除评论", "comment_id", id)
	response.Success(c)
}

func (m *ModuleComment) setStatus(c *gin.Context) {
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
	cm, err := m.svc.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("评论状态变更", "comment_id", id, "status", req.Status)
	response.Success(c, cm)
}
