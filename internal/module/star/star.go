package star

import (
	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/paginate"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (m *ModuleStar) add(c *gin.Context) {
	activityID, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := m.svc.Add(c.Request.Context(), ctxutil.GetUserID(c), activityID); err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("收藏活动", "activity_id", activityID)
	response.Success(c)
}

func (m *ModuleStar) cancel(c *gin.Context) {
	activityID, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := m.svc.Cancel(c.Request.Context(), ctxutil.GetUserID(c), activityID); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c)
}

func (m *ModuleStar) list(c *gin.Context) {
	var q paginate.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.svc.List(c.Request.Context(), ctxutil.GetUserID(c), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func (m *ModuleStar) ask(c *gin.Context) {
	activityID, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	st, err := m.svc.Ask(c.Request.Context(), ctxutil.GetUserID(c), activityID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, st)
}
