package notification

import (
	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (m *ModuleNotification) list(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.svc.List(c.Request.Context(), ctxutil.GetUserID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func (m *ModuleNotification) unreadCount(c *gin.Context) {
	count, err := m.svc.UnreadCount(c.Request.Context(), ctxutil.GetUserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

func (m *ModuleNotification) send(c *gin.Context) {
	var req SendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	sent, err := m.svc.Send(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("发送通知", "operator", ctxutil.GetUserID(c), "count", sent, "title", req.Title)
	response.Success(c, gin.H{"sent": sent})
}

func (m *ModuleNotification) read(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := m.svc.MarkRead(c.Request.Context(), ctxutil.GetUserID(c), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c)
}

func (m *ModuleNotification) readAll(c *gin.Context) {
	updated, err := m.svc.MarkAllRead(c.Request.Context(), ctxutil.GetUserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"updated": updated})
}
