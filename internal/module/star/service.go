package star

import (
	"context"

	"campus-activity/internal/global/database"
	"campus-activity/internal/global/paginate"
	"campus-activity/internal/global/response"
	"campus-activity/internal/model"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func activityExists(db *gorm.DB, id uint) error {
	var exist bool
	err := db.Raw("SELECT EXISTS(SELECT 1 FROM activity WHERE id = ? AND deleted_at IS NULL)", id).
		Scan(&exist).Error
	if err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	if !exist {
		return response.ErrActivityNotFound
	}
	return nil
}

func (s *Service) Add(ctx context.Context, userID, activityID uint) error {
	db := s.db.WithContext(ctx)
	if err := activityExists(db, activityID); err != nil {
		return err
	}
	star := model.Star{UserID: userID, ActivityID: activityID}
	if err := db.Create(&star).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return response.ErrAlreadyExists.WithTips("已经收藏过该活动")
		}
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

// Cancel 物理删除，唯一索引不区分软删除
func (s *Service) Cancel(ctx context.Context, userID, activityID uint) error {
	res := s.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Delete(&model.Star{})
	if res.Error != nil {
		return response.ErrDatabase.WithOrigin(res.Error)
	}
	if res.RowsAffected == 0 {
		return response.ErrNotFound.WithTips("未收藏该活动")
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID uint, q paginate.Query) (paginate.Result[model.Star], error) {
	query := s.db.WithContext(ctx).Model(&model.Star{}).Where("user_id = ?", userID)
	result, err := paginate.Find[model.Star](query, q, paginate.Preload("Activity"), paginate.OrderBy("created_at DESC, id DESC"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}

type Status struct {
	Starred bool  `json:"starred"`
	Count   int64 `json:"count"`
}

// Ask 当前用户是否收藏以及活动的收藏总数，未登录时 starred 恒为 false
func (s *Service) Ask(ctx context.Context, userID, activityID uint) (*Status, error) {
	db := s.db.WithContext(ctx)
	if err := activityExists(db, activityID); err != nil {
		return nil, err
	}
	var st Status
	if err := db.Model(&model.Star{}).Where("activity_id = ?", activityID).Count(&st.Count).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if userID != 0 {
		var n int64
		err := db.Model(&model.Star{}).Where("activity_id = ? AND user_id = ?", activityID, userID).Count(&n).Error
		if err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		st.Starred = n > 0
	}
	return &st, nil
}
