package comment

import (
	"context"
	"strings"

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

func activityExists(db *gorm.DB, id uint) error {
	var n int64
	if err := db.Model(&model.Activity{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	if n == 0 {
		return response.ErrActivityNotFound
	}
	return nil
}

// List 活动下可见的评论，按时间正序
func (s *Service) List(ctx context.Context, activityID uint, q paginate.Query) (paginate.Result[model.Comment], error) {
	db := s.db.WithContext(ctx)
	if err := activityExists(db, activityID); err != nil {
		return paginate.Result[model.Comment]{}, err
	}
	query := db.Model(&model.Comment{}).Where("activity_id = ? AND status = ?", activityID, model.CommentVisible)
	result, err := paginate.Find[model.Comment](query, q, paginate.Preload("User"), paginate.OrderBy("id"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}

type CreateReq struct {
	Content  string `json:"content" binding:"required,max=1000"`
	ParentID *uint  `json:"parent_id"`
}

func (s *Service) Create(ctx context.Context, userID, activityID uint, req CreateReq) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, response.ErrInvalidRequest.WithTips("评论内容不能为空")
	}
	db := s.db.WithContext(ctx)
	if err := activityExists(db, activityID); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		parent, err := s.find(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ActivityID != activityID {
			return nil, response.ErrInvalidRequest.WithTips("回复的评论不属于该活动")
		}
	}

	cm := model.Comment{
		UserID:     userID,
		ActivityID: activityID,
		ParentID:   req.ParentID,
		Content:    content,
		Status:     model.CommentVisible,
	}
	if err := db.Create(&cm).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &cm, nil
}

func (s *Service) find(ctx context.Context, id uint) (*model.Comment, error) {
	var cm model.Comment
	err := s.db.WithContext(ctx).First(&cm, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("评论不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &cm, nil
}

// Delete 作者本人或管理员软删除评论
func (s *Service) Delete(ctx context.Context, userID uint, role string, id uint) error {
	cm, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if cm.UserID != userID && role != model.RoleAdmin {
		return response.ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(cm).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

type StatusReq struct {
	Status string `json:"status" binding:"required,oneof=visible hidden"`
}

func (s *Service) SetStatus(ctx context.Context, id uint, status string) (*model.Comment, error) {
	cm, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(cm).Update("status", status).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	cm.Status = status
	return cm, nil
}
