// Package registration 活动报名。名额通过 activity.enrolled 的条件更新原子占用，
// (user_id, activity_id) 唯一索引兜底重复报名
package registration

import (
	"context"
	"fmt"
	"time"

	"campus-activity/internal/global/database"
	"campus-activity/internal/global/paginate"
	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/internal/module/notification"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type Actor struct {
	ID   uint
	Role string
}

// Register 报名：活动需存在且已发布、用户无有效报名、仍有名额
func (s *Service) Register(ctx context.Context, userID, activityID uint) (*model.Registration, error) {
	var reg model.Registration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := findActivity(tx, activityID)
		if err != nil {
			return err
		}
		if a.Status != model.ActivityPublished {
			return response.ErrActivityNotPublished
		}

		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND activity_id = ?", userID, activityID).
			First(&reg).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrDatabase.WithOrigin(err)
		}
		if found && model.IsActiveRegistration(reg.Status) {
			return response.ErrDuplicateRegistration
		}

		if err := takeSeat(tx, activityID); err != nil {
			return err
		}

		now := time.Now()
		if found {
			// 取消或被拒后再次报名，复用原记录
			err = tx.Model(&reg).Updates(map[string]any{
				"status":        model.RegistrationPending,
				"registered_at": now,
				"remark":        "",
			}).Error
			reg.Status, reg.RegisteredAt, reg.Remark = model.RegistrationPending, now, ""
		} else {
			reg = model.Registration{
				UserID:       userID,
				ActivityID:   activityID,
				Status:       model.RegistrationPending,
				RegisteredAt: now,
			}
			err = tx.Create(&reg).Error
		}
		if database.IsDuplicateKey(err) {
			return response.ErrDuplicateRegistration
		}
		if err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func findActivity(tx *gorm.DB, id uint) (*model.Activity, error) {
	var a model.Activity
	err := tx.First(&a, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrActivityNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &a, nil
}

func takeSeat(tx *gorm.DB, activityID uint) error {
	err := model.TakeSeat(tx, activityID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrNoSeat):
		return response.ErrCapacityExceeded
	case errors.Is(err, model.ErrNotPublished):
		return response.ErrActivityNotPublished
	case errors.Is(err, model.ErrActivityMissing):
		return response.ErrActivityNotFound
	default:
		return response.ErrDatabase.WithOrigin(err)
	}
}

func lockRegistration(tx *gorm.DB, id uint) (*model.Registration, error) {
	var reg model.Registration
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reg, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrRegistrationNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &reg, nil
}

// Cancel 用户取消自己的报名，占用的名额随之释放
func (s *Service) Cancel(ctx context.Context, userID, registrationID uint) (*model.Registration, error) {
	var reg *model.Registration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if reg, err = lockRegistration(tx, registrationID); err != nil {
			return err
		}
		if reg.UserID != userID {
			return response.ErrForbidden.WithTips("只能取消自己的报名")
		}
		if !model.CanTransitRegistration(reg.Status, model.RegistrationCancelled) {
			return response.ErrIllegalTransition.WithTips(fmt.Sprintf("%s -> %s", reg.Status, model.RegistrationCancelled))
		}
		return s.move(tx, reg, model.RegistrationCancelled, reg.Remark)
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

type StatusReq struct {
	Status string `json:"status" binding:"required,registration_status"`
	Remark string `json:"remark" binding:"max=255"`
	Force  bool   `json:"force"` // 仅管理员可用，跳过状态迁移表
}

// UpdateStatus 管理员或活动组织者审核报名，名额占用始终按状态维护
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, registrationID uint, req StatusReq) (*model.Registration, error) {
	if req.Force && actor.Role != model.RoleAdmin {
		return nil, response.ErrForbidden.WithTips("只有管理员可以强制变更")
	}
	var reg *model.Registration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if reg, err = lockRegistration(tx, registrationID); err != nil {
			return err
		}
		a, err := findActivity(tx, reg.ActivityID)
		if err != nil {
			return err
		}
		if !a.ManagedBy(actor.ID, actor.Role) {
			return response.ErrForbidden
		}
		if reg.Status == req.Status {
			return response.ErrIllegalTransition.WithTips("状态未变化")
		}
		if !req.Force && !model.CanTransitRegistration(reg.Status, req.Status) {
			return response.ErrIllegalTransition.WithTips(fmt.Sprintf("%s -> %s", reg.Status, req.Status))
		}

		remark := reg.Remark
		if req.Remark != "" {
			remark = req.Remark
		}
		if err := s.move(tx, reg, req.Status, remark); err != nil {
			return err
		}
		err = notification.Push(tx, model.Notification{
			UserID:  reg.UserID,
			Type:    model.NotifyRegistration,
			Title:   "报名状态更新",
			Content: fmt.Sprintf("你报名的活动「%s」状态变更为 %s", a.Title, req.Status),
			Meta: datatypes.JSONMap{
				"activity_id":     a.ID,
				"registration_id": reg.ID,
				"status":          req.Status,
			},
		})
		if err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// move 修改状态并维护名额：进入占位状态时有条件地占用，离开时释放
func (s *Service) move(tx *gorm.DB, reg *model.Registration, to, remark string) error {
	from := reg.Status
	switch {
	case !model.HoldsSeat(from) && model.HoldsSeat(to):
		if err := takeSeat(tx, reg.ActivityID); err != nil {
			return err
		}
	case model.HoldsSeat(from) && !model.HoldsSeat(to):
		if err := model.ReleaseSeat(tx, reg.ActivityID); err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
	}
	err := tx.Model(reg).Updates(map[string]any{"status": to, "remark": remark}).Error
	if err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	reg.Status = to
	reg.Remark = remark
	return nil
}

// Mine 当前用户在某活动下的报名，没有时返回 nil
func (s *Service) Mine(ctx context.Context, userID, activityID uint) (*model.Registration, error) {
	var reg model.Registration
	err := s.db.WithContext(ctx).Where("user_id = ? AND activity_id = ?", userID, activityID).First(&reg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &reg, nil
}

type Count struct {
	ActivityID uint             `json:"activity_id"`
	Total      int64            `json:"total"`
	Active     int64            `json:"active"`
	ByStatus   map[string]int64 `json:"by_status"`
}

func (s *Service) Count(ctx context.Context, activityID uint) (*Count, error) {
	db := s.db.WithContext(ctx)
	if _, err := findActivity(db, activityID); err != nil {
		return nil, err
	}
	var rows []struct {
		Status string
		N      int64
	}
	err := db.Model(&model.Registration{}).
		Select("status, COUNT(*) AS n").
		Where("activity_id = ?", activityID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	result := &Count{ActivityID: activityID, ByStatus: make(map[string]int64, len(model.RegistrationStatuses))}
	for _, st := range model.RegistrationStatuses {
		result.ByStatus[st] = 0
	}
	for _, r := range rows {
		result.ByStatus[r.Status] = r.N
		result.Total += r.N
		if model.IsActiveRegistration(r.Status) {
			result.Active += r.N
		}
	}
	return result, nil
}

type ListReq struct {
	paginate.Query
	Status string `form:"status" binding:"omitempty,registration_status"`
}

// List 活动的报名名单，仅组织者和管理员可见
func (s *Service) List(ctx context.Context, actor Actor, activityID uint, req ListReq) (paginate.Result[model.Registration], error) {
	query, err := s.rosterQuery(ctx, actor, activityID, req.Status)
	if err != nil {
		return paginate.Result[model.Registration]{}, err
	}
	result, err := paginate.Find[model.Registration](query, req.Query,
		paginate.Preload("User"), paginate.OrderBy("registered_at, id"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}

func (s *Service) rosterQuery(ctx context.Context, actor Actor, activityID uint, status string) (*gorm.DB, error) {
	db := s.db.WithContext(ctx)
	a, err := findActivity(db, activityID)
	if err != nil {
		return nil, err
	}
	if !a.ManagedBy(actor.ID, actor.Role) {
		return nil, response.ErrForbidden
	}
	query := db.Model(&model.Registration{}).Where("activity_id = ?", activityID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return query, nil
}

// MyList 当前用户的全部报名
func (s *Service) MyList(ctx context.Context, userID uint, req ListReq) (paginate.Result[model.Registration], error) {
	query := s.db.WithContext(ctx).Model(&model.Registration{}).Where("user_id = ?", userID)
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	result, err := paginate.Find[model.Registration](query, req.Query,
		paginate.Preload("Activity"), paginate.OrderBy("registered_at DESC"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}
