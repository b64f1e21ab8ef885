// Package announcement 公告。关联活动的公告在发布时通知该活动的有效报名者
package announcement

import (
	"context"
	"strings"
	"time"

	"campus-activity/internal/global/paginate"
	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/internal/module/notification"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type Viewer struct {
	ID   uint
	Role string
}

func (v Viewer) canManage(a *model.Announcement) bool {
	return v.Role == model.RoleAdmin || (v.ID != 0 && a.AuthorID == v.ID)
}

type ListReq struct {
	paginate.Query
	Published  *bool `form:"published"`
	ActivityID uint  `form:"activity_id"`
}

// List 非管理员只能看到已发布的公告
func (s *Service) List(ctx context.Context, viewer Viewer, req ListReq) (paginate.Result[model.Announcement], error) {
	query := s.db.WithContext(ctx).Model(&model.Announcement{})
	switch {
	case viewer.Role != model.RoleAdmin:
		query = query.Where("published = ?", true)
	case req.Published != nil:
		query = query.Where("published = ?", *req.Published)
	}
	if req.ActivityID != 0 {
		query = query.Where("activity_id = ?", req.ActivityID)
	}
	result, err := paginate.Find[model.Announcement](query, req.Query, paginate.OrderBy("id DESC"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}

func (s *Service) find(db *gorm.DB, id uint) (*model.Announcement, error) {
	var a model.Announcement
	err := db.First(&a, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("公告不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &a, nil
}

// Get 未发布的公告只有作者和管理员可见
func (s *Service) Get(ctx context.Context, viewer Viewer, id uint) (*model.Announcement, error) {
	a, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !a.Published && !viewer.canManage(a) {
		return nil, response.ErrNotFound.WithTips("公告不存在")
	}
	return a, nil
}

type CreateReq struct {
	Title      string `json:"title" binding:"required,max=100"`
	Content    string `json:"content" binding:"required"`
	ActivityID *uint  `json:"activity_id"`
	Published  bool   `json:"published"`
}

// Create 关联活动时只有活动的组织者和管理员可以发布
func (s *Service) Create(ctx context.Context, author Viewer, req CreateReq) (*model.Announcement, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, response.ErrInvalidRequest.WithTips("标题不能为空")
	}
	a := model.Announcement{
		AuthorID:   author.ID,
		ActivityID: req.ActivityID,
		Title:      title,
		Content:    req.Content,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.ActivityID != nil {
			var act model.Activity
			err := tx.Select("id", "organizer_id").First(&act, *a.ActivityID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return response.ErrActivityNotFound
			case err != nil:
				return response.ErrDatabase.WithOrigin(err)
			}
			if !act.ManagedBy(author.ID, author.Role) {
				return response.ErrForbidden.WithTips("只能为自己组织的活动发布公告")
			}
		}
		if err := tx.Create(&a).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if req.Published {
			return publish(tx, &a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SetPublished 作者或管理员发布、撤回公告，只有首次发布会通知
func (s *Service) SetPublished(ctx context.Context, viewer Viewer, id uint, published bool) (*model.Announcement, error) {
	var a *model.Announcement
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if a, err = s.find(tx, id); err != nil {
			return err
		}
		if !viewer.canManage(a) {
			return response.ErrForbidden
		}
		if a.Published == published {
			return nil
		}
		if published {
			return publish(tx, a)
		}
		if err := tx.Model(a).Updates(map[string]any{"published": false, "published_at": nil}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		a.Published, a.PublishedAt = false, nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func publish(tx *gorm.DB, a *model.Announcement) error {
	now := time.Now()
	if err := tx.Model(a).Updates(map[string]any{"published": true, "published_at": now}).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	a.Published, a.PublishedAt = true, &now
	if a.ActivityID == nil || a.NotifiedAt != nil {
		return nil
	}
	if err := tx.Model(a).Update("notified_at", now).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	a.NotifiedAt = &now

	var userIDs []uint
	err := tx.Model(&model.Registration{}).
		Where("activity_id = ? AND status NOT IN ?", *a.ActivityID,
			[]string{model.RegistrationCancelled, model.RegistrationRejected}).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	notices := make([]model.Notification, 0, len(userIDs))
	for _, uid := range userIDs {
		notices = append(notices, model.Notification{
			UserID:  uid,
			Type:    model.NotifyAnnouncement,
			Title:   a.Title,
			Content: a.Content,
			Meta: datatypes.JSONMap{
				"announcement_id": a.ID,
				"activity_id":     *a.ActivityID,
			},
		})
	}
	if err := notification.Push(tx, notices...); err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, viewer Viewer, id uint) error {
	db := s.db.WithContext(ctx)
	a, err := s.find(db, id)
	if err != nil {
		return err
	}
	if !viewer.canManage(a) {
		return response.ErrForbidden
	}
	if err := db.Delete(a).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}
