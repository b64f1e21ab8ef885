package announcement

import (
	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func viewerOf(c *gin.Context) Viewer {
	return Viewer{ID: ctxutil.GetUserID(c), Role: ctxutil.GetUserRole(c)}
}

func (m *ModuleAnnouncement) list(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.svc.List(c.Request.Context(), viewerOf(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func (m *ModuleAnnouncement) get(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	a, err := m.svc.Get(c.Request.Context(), viewerOf(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, a)
}

func (m *ModuleAnnouncement) create(c *gin.Context) {
	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	a, err := m.svc.Create(c.Request.Context(), viewerOf(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("创建公告", "announcement_id", a.ID, "published", a.Published)
	response.Success(c, a)
}

type publishReq struct {
	Published *bool `json:"published" binding:"required"`
}

func (m *ModuleAnnouncement) publish(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	a, err := m.svc.SetPublished(c.Request.Context(), viewerOf(c), id, *req.Published)
	if err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("公告发布状态变更", "announcement_id", id, "published", a.Published)
	response.Success(c, a)
}

func (m *ModuleAnnouncement) delete(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := m.svc.Delete(c.Request.Context(), viewerOf(c), id); err != nil {
		response.Fail(c, err)
		return
	}
	logger.WithContext(log, c).Info("删除公告", "announcement_id", id)
	response.Success(c)
}
