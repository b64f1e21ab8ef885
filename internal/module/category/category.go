package category

import (
	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (m *ModuleCategory) list(c *gin.Context) {
	var req struct {
		Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	list, err := m.svc.List(c.Request.Context(), req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, list)
}

func (m *ModuleCategory) get(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	category, err := m.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, category)
}

func (m *ModuleCategory) create(c *gin.Context) {
	var req SaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	category, err := m.svc.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("创建分类", "category_id", category.ID, "name", category.Name)
	response.Success(c, category)
}

func (m *ModuleCategory) update(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req SaveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	category, err := m.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, category)
}

func (m *ModuleCategory) delete(c *gin.Context) {
	id, err := ctxutil.ParamID(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := m.svc.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("删除分类", "category_id", id, "operator", ctxutil.GetUserID(c))
	response.Success(c)
}

func (m *ModuleCategory) stats(c *gin.Context) {
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
