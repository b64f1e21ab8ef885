// Package feedback 活动评分与评价，每个用户对每个活动只能评价一次
package feedback

import (
	"context"
	"math"

	"campus-activity/internal/global/database"
	"campus-activity/internal/global/paginate"
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

type CreateReq struct {
	ActivityID uint   `json:"activity_id" binding:"required"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment" binding:"max=2000"`
}

func checkRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return response.ErrInvalidRating
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID uint, req CreateReq) (*model.Feedback, error) {
	if err := checkRating(req.Rating); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var activity model.Activity
	err := db.Select("id").First(&activity, req.ActivityID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrActivityNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	var exists int64
	err = db.Model(&model.Feedback{}).
		Where("user_id = ? AND activity_id = ?", userID, req.ActivityID).
		Count(&exists).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if exists > 0 {
		return nil, response.ErrDuplicateFeedback
	}

	fb := model.Feedback{
		UserID:     userID,
		ActivityID: req.ActivityID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	// 并发提交由唯一索引兜底
	if err := db.Create(&fb).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, response.ErrDuplicateFeedback
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &fb, nil
}

type ListReq struct {
	paginate.Query
	ActivityID uint `form:"activity_id"`
	UserID     uint `form:"user_id"`
}

func (s *Service) List(ctx context.Context, req ListReq) (paginate.Result[model.Feedback], error) {
	query := s.db.WithContext(ctx).Model(&model.Feedback{})
	if req.ActivityID != 0 {
		query = query.Where("activity_id = ?", req.ActivityID)
	}
	if req.UserID != 0 {
		query = query.Where("user_id = ?", req.UserID)
	}
	result, err := paginate.Find[model.Feedback](query, req.Query,
		paginate.Preload("User"), paginate.OrderBy("id DESC"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}

func (s *Service) own(ctx context.Context, userID, id uint) (*model.Feedback, error) {
	var fb model.Feedback
	err := s.db.WithContext(ctx).First(&fb, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("评价不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if fb.UserID != userID {
		return nil, response.ErrForbidden
	}
	return &fb, nil
}

type UpdateReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (s *Service) Update(ctx context.Context, userID, id uint, req UpdateReq) (*model.Feedback, error) {
	if err := checkRating(req.Rating); err != nil {
		return nil, err
	}
	fb, err := s.own(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(fb).Updates(map[string]any{
		"rating":  req.Rating,
		"comment": req.Comment,
	}).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	fb.Rating, fb.Comment = req.Rating, req.Comment
	return fb, nil
}

// Delete 物理删除，唯一索引不区分软删除，删除后才能重新评价
func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	fb, err := s.own(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Unscoped().Delete(fb).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

type RatingStats struct {
	ActivityID uint          `json:"activity_id"`
	Count      int64         `json:"count"`
	Average    float64       `json:"average"`
	Histogram  map[int]int64 `json:"histogram"`
}

// Stats 活动评分统计，没有评价时平均分为 0
func (s *Service) Stats(ctx context.Context, activityID uint) (*RatingStats, error) {
	db := s.db.WithContext(ctx)
	var exists int64
	if err := db.Model(&model.Activity{}).Where("id = ?", activityID).Count(&exists).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if exists == 0 {
		return nil, response.ErrActivityNotFound
	}

	var rows []struct {
		Rating int
		N      int64
	}
	err := db.Model(&model.Feedback{}).
		Select("rating, COUNT(*) AS n").
		Where("activity_id = ?", activityID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	stats := &RatingStats{ActivityID: activityID, Histogram: make(map[int]int64, model.MaxRating)}
	for r := model.MinRating; r <= model.MaxRating; r++ {
		stats.Histogram[r] = 0
	}
	var sum int64
	for _, row := range rows {
		stats.Histogram[row.Rating] = row.N
		stats.Count += row.N
		sum += int64(row.Rating) * row.N
	}
	if stats.Count > 0 {
		stats.Average = math.Round(float64(sum)/float64(stats.Count)*100) / 100
	}
	return stats, nil
}
