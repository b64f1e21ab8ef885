package capacity

import (
	"time"

	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (m *ModuleCapacity) getCapacity(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	info, err := m.svc.Check(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, info)
}

type capacityReq struct {
	Capacity int `json:"capacity" binding:"required"`
}

func (m *ModuleCapacity) setCapacity(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req capacityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	uid := ctxutil.GetUserID(c)
	info, err := m.svc.SetCapacity(c.Request.Context(), uid, ctxutil.GetUserRole(c), id, req.Capacity)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("调整活动容量", "activity_id", id, "capacity", req.Capacity, "operator", uid)
	response.Success(c, info)
}

type conflictReq struct {
	OrganizerID uint      `json:"organizer_id"` // 为空时取当前用户
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	ExcludeID   uint      `json:"exclude_id"`
}

func (m *ModuleCapacity) conflicts(c *gin.Context) {
	var req conflictReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.OrganizerID == 0 {
		req.OrganizerID = ctxutil.GetUserID(c)
	}
	list, err := m.svc.Conflicts(c.Request.Context(), req.OrganizerID, req.StartTime, req.EndTime, req.ExcludeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"conflict":   len(list) > 0,
		"activities": list,
	})
}
