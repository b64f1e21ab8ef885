package stats

import (
	"strconv"
	"time"

	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/paginate"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (m *ModuleStats) rank(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	ranks, err := m.svc.Rank(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, ranks)
}

// askTime 读取 time 参数（unix 秒），缺省或非法时取当前时间
func askTime(c *gin.Context) time.Time {
	if ts, err := strconv.ParseInt(c.Query("time"), 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0)
	}
	return time.Now()
}

func (m *ModuleStats) history(c *gin.Context) {
	var q paginate.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.svc.History(c.Request.Context(), ctxutil.GetUserID(c), askTime(c), q)
	if err != nil {
		log.Error("查询参与历史失败", "error", err)
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

func (m *ModuleStats) brief(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	brief, err := m.svc.Brief(c.Request.Context(), ctxutil.GetUserID(c), ctxutil.GetUserRole(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, brief)
}

func (m *ModuleStats) overview(c *gin.Context) {
	o, err := m.svc.Overview(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, o)
}
