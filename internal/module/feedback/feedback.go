package feedback

import (
	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (m *ModuleFeedback) create(c *gin.Context) {
	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	fb, err := m.svc.Create(c.Request.Context(), ctxutil.GetUserID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("提交评价", "activity_id", fb.ActivityID, "rating", fb.Rating)
	response.Success(c, fb)
}

func (m *ModuleFeedback) list(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.svc.List(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func (m *ModuleFeedback) update(c *gin.Context) {
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
	fb, err := m.svc.Update(c.Request.Context(), ctxutil.GetUserID(c), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, fb)
}

func (m *ModuleFeedback) delete(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := m.svc.Delete(c.Request.Context(), ctxutil.GetUserID(c), id); err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("删除评价", "feedback_id", id)
	response.Success(c)
}

func (m *ModuleFeedback) stats(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	stats, err := m.svc.Stats(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, stats)
}
