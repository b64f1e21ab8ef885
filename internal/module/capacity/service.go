// Package capacity 负责活动名额查询、容量调整以及组织者的时间冲突检查
package capacity

import (
	"context"
	"time"

	"campus-activity/internal/global/response"
	"campus-activity/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type Info struct {
	ActivityID    uint  `json:"activity_id"`
	Capacity      int   `json:"capacity"`
	ApprovedCount int64 `json:"approved_count"`
	Enrolled      int   `json:"enrolled"`
	Available     int   `json:"available"`
}

func (s *Service) Check(ctx context.Context, activityID uint) (*Info, error) {
	db := s.db.WithContext(ctx)
	var a model.Activity
	err := db.Select("id", "capacity", "enrolled").First(&a, activityID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrActivityNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	info := &Info{
		ActivityID: a.ID,
		Capacity:   a.Capacity,
		Enrolled:   a.Enrolled,
		Available:  a.Available(),
	}
	err = db.Model(&model.Registration{}).
		Where("activity_id = ? AND status = ?", activityID, model.RegistrationApproved).
		Count(&info.ApprovedCount).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return info, nil
}

// SetCapacity 新容量必须为正且不小于已占用名额，判断与更新在同一条语句中完成
func (s *Service) SetCapacity(ctx context.Context, actorID uint, role string, activityID uint, capacity int) (*Info, error) {
	if capacity <= 0 {
		return nil, response.ErrInvalidRequest.WithTips("容量必须大于0")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.Activity
		err := tx.Select("id", "organizer_id", "status").First(&a, activityID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return response.ErrActivityNotFound
		case err != nil:
			return response.ErrDatabase.WithOrigin(err)
		}
		if !a.ManagedBy(actorID, role) {
			return response.ErrForbidden
		}
		if a.Status != model.ActivityDraft && a.Status != model.ActivityPublished {
			return response.ErrUnprocessable.WithTips("活动已结束或已取消")
		}

		res := tx.Model(&model.Activity{}).
			Where("id = ? AND enrolled <= ?", activityID, capacity).
			Update("capacity", capacity)
		if res.Error != nil {
			return response.ErrDatabase.WithOrigin(res.Error)
		}
		if res.RowsAffected == 0 {
			return response.ErrCapacityBelowEnrolled
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Check(ctx, activityID)
}

// FindConflicts 返回组织者名下与 [start, end) 重叠的有效活动，已取消或删除的不算
func FindConflicts(db *gorm.DB, organizerID uint, start, end time.Time, excludeID uint) ([]model.Activity, error) {
	query := db.Model(&model.Activity{}).
		Where("organizer_id = ?", organizerID).
		Where("status NOT IN ?", []string{model.ActivityCancelled, model.ActivityDeleted}).
		Where("start_time < ? AND end_time > ?", model.NormalizeTime(end), model.NormalizeTime(start))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	list := []model.Activity{}
	if err := query.Order("start_time").Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "find conflicts")
	}
	return list, nil
}

func (s *Service) Conflicts(ctx context.Context, organizerID uint, start, end time.Time, excludeID uint) ([]model.Activity, error) {
	if !start.Before(end) {
		return nil, response.ErrInvalidTime.WithTips("开始时间必须早于结束时间")
	}
	list, err := FindConflicts(s.db.WithContext(ctx), organizerID, start, end, excludeID)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return list, nil
}
