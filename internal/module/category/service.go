package category

import (
	"context"
	"strings"

	"campus-activity/internal/global/database"
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

func (s *Service) List(ctx context.Context, status string) ([]model.Category, error) {
	query := s.db.WithContext(ctx).Order("id")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	list := []model.Category{}
	if err := query.Find(&list).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Category, error) {
	var c model.Category
	err := s.db.WithContext(ctx).First(&c, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrCategoryNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &c, nil
}

type SaveReq struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=255"`
	Status      string `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (s *Service) Create(ctx context.Context, req SaveReq) (*model.Category, error) {
	c := model.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Status:      req.Status,
	}
	if c.Status == "" {
		c.Status = model.CategoryActive
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, response.ErrAlreadyExists.WithTips("分类名称已存在")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &c, nil
}

func (s *Service) Update(ctx context.Context, id uint, req SaveReq) (*model.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{
		"name":        strings.TrimSpace(req.Name),
		"description": req.Description,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if err := s.db.WithContext(ctx).Model(c).Updates(updates).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, response.ErrAlreadyExists.WithTips("分类名称已存在")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return s.Get(ctx, id)
}

// Delete 仍有活动引用时拒绝删除
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Activity{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if count > 0 {
			return response.ErrCategoryInUse
		}
		res := tx.Delete(&model.Category{}, id)
		if res.Error != nil {
			return response.ErrDatabase.WithOrigin(res.Error)
		}
		if res.RowsAffected == 0 {
			return response.ErrCategoryNotFound
		}
		return nil
	})
}

type Stats struct {
	CategoryID        uint  `json:"category_id"`
	ActivityCount     int64 `json:"activity_count"`
	PublishedCount    int64 `json:"published_count"`
	RegistrationCount int64 `json:"registration_count"`
}

// Stats 报名数只统计未取消、未被拒绝的报名
func (s *Service) Stats(ctx context.Context, id uint) (*Stats, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	stats := &Stats{CategoryID: id}

	if err := db.Model(&model.Activity{}).Where("category_id = ?", id).Count(&stats.ActivityCount).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	err := db.Model(&model.Activity{}).
		Where("category_id = ? AND status = ?", id, model.ActivityPublished).
		Count(&stats.PublishedCount).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	err = db.Model(&model.Registration{}).
		Joins("JOIN activity ON activity.id = registration.activity_id AND activity.deleted_at IS NULL").
		Where("activity.category_id = ?", id).
		Where("registration.status NOT IN ?", []string{model.RegistrationCancelled, model.RegistrationRejected}).
		Count(&stats.RegistrationCount).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return stats, nil
}
