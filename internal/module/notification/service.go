// Package notification 站内通知，只支持拉取，不做推送
package notification

import (
	"context"
	"time"

	"campus-activity/internal/global/paginate"
	"campus-activity/internal/global/response"
	"campus-activity/internal/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Push 在调用方的事务中写入通知，与业务变更一起提交或回滚
func Push(tx *gorm.DB, notifications ...model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return errors.Wrap(tx.Create(&notifications).Error, "create notifications")
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type ListReq struct {
	paginate.Query
	Read *bool  `form:"read"`
	Type string `form:"type"`
}

func (s *Service) List(ctx context.Context, userID uint, req ListReq) (paginate.Result[model.Notification], error) {
	query := s.db.WithContext(ctx).Model(&model.Notification{}).Where("user_id = ?", userID)
	if req.Read != nil {
		query = query.Where("is_read = ?", *req.Read)
	}
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	result, err := paginate.Find[model.Notification](query, req.Query, paginate.OrderBy("id DESC"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, response.ErrDatabase.WithOrigin(err)
	}
	return count, nil
}

type SendReq struct {
	UserIDs []uint         `json:"user_ids" binding:"required,min=1,dive,gt=0"`
	Type    string         `json:"type" binding:"omitempty,oneof=system registration activity announcement"`
	Title   string         `json:"title" binding:"required,max=100"`
	Content string         `json:"content"`
	Meta    map[string]any `json:"meta"`
}

// Send 管理员向指定用户发送通知，任一用户不存在则整体失败
func (s *Service) Send(ctx context.Context, req SendReq) (int, error) {
	ids := dedupe(req.UserIDs)
	kind := req.Type
	if kind == "" {
		kind = model.NotifySystem
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if int(count) != len(ids) {
			return response.ErrUserNotFound
		}
		list := make([]model.Notification, 0, len(ids))
		for _, id := range ids {
			list = append(list, model.Notification{
				UserID:  id,
				Type:    kind,
				Title:   req.Title,
				Content: req.Content,
				Meta:    datatypes.JSONMap(req.Meta),
			})
		}
		if err := Push(tx, list...); err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// MarkRead 只能标记自己的通知
func (s *Service) MarkRead(ctx context.Context, userID, id uint) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_read": true, "read_at": &now})
	if res.Error != nil {
		return response.ErrDatabase.WithOrigin(res.Error)
	}
	if res.RowsAffected == 0 {
		return response.ErrNotFound.WithTips("通知不存在")
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": &now})
	if res.Error != nil {
		return 0, response.ErrDatabase.WithOrigin(res.Error)
	}
	return res.RowsAffected, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
