package registration

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "报名名单"

// ExportRow 导出表格中的一行
type ExportRow struct {
	RegistrationID uint   `excel:"报名编号"`
	Name           string `excel:"姓名"`
	StudentID      string `excel:"学号"`
	Email          string `excel:"邮箱"`
	Status         string `excel:"状态"`
	RegisteredAt   string `excel:"报名时间"`
	Remark         string `excel:"备注"`
}

// Export 生成活动报名名单的 xlsx，权限与名单查询一致
func (s *Service) Export(ctx context.Context, actor Actor, activityID uint, status string) ([]byte, error) {
	query, err := s.rosterQuery(ctx, actor, activityID, status)
	if err != nil {
		return nil, err
	}
	var regs []model.Registration
	if err := query.Preload("User").Order("registered_at, id").Find(&regs).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	rows := make([]ExportRow, 0, len(regs))
	for _, r := range regs {
		row := ExportRow{
			RegistrationID: r.ID,
			Status:         r.Status,
			RegisteredAt:   r.RegisteredAt.Local().Format(time.DateTime),
			Remark:         r.Remark,
		}
		if r.User != nil {
			row.Name, row.StudentID, row.Email = r.User.Name, r.User.StudentID, r.User.Email
		}
		rows = append(rows, row)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := tools.WriteSheet(f, exportSheet, rows); err != nil {
		return nil, response.ErrServerInternal.WithOrigin(err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, response.ErrServerInternal.WithOrigin(err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, response.ErrServerInternal.WithOrigin(err)
	}
	return buf.Bytes(), nil
}

func (m *ModuleRegistration) export(c *gin.Context) {
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
	data, err := m.svc.Export(c.Request.Context(), actorOf(c), activityID, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	tools.SendAttachment(c, data, fmt.Sprintf("activity-%d-registrations.xlsx", activityID), tools.ExcelContentType)
}
