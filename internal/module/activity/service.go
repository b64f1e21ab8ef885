package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campus-activity/internal/global/paginate"
	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/internal/module/capacity"
	"campus-activity/internal/module/notification"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Actor 当前操作人
type Actor struct {
	ID   uint
	Role string
}

type CreateReq struct {
	Title       string    `json:"title" binding:"required,max=100"`
	Description string    `json:"description"`
	Location    string    `json:"location" binding:"max=255"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Capacity    int       `json:"capacity"`
	CategoryID  *uint     `json:"category_id"`
	Cover       string    `json:"cover" binding:"max=255"`
}

// Create 校验时间、容量、分类与组织者时间冲突后以草稿创建，等待审核
func (s *Service) Create(ctx context.Context, actor Actor, req CreateReq) (*model.Activity, error) {
	start, end := model.NormalizeTime(req.StartTime), model.NormalizeTime(req.EndTime)
	if err := s.validate(strings.TrimSpace(req.Title), start, end, req.Capacity); err != nil {
		return nil, err
	}

	a := model.Activity{
		OrganizerID:  actor.ID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Location:     req.Location,
		StartTime:    start,
		EndTime:      end,
		Capacity:     req.Capacity,
		CategoryID:   req.CategoryID,
		Cover:        req.Cover,
		Status:       model.ActivityDraft,
		ReviewStatus: model.ReviewPending,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCategory(tx, req.CategoryID); err != nil {
			return err
		}
		if err := checkOverlap(tx, actor.ID, start, end, 0); err != nil {
			return err
		}
		if err := tx.Create(&a).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) validate(title string, start, end time.Time, capacity int) error {
	if title == "" {
		return response.ErrInvalidRequest.WithTips("标题不能为空")
	}
	if !start.Before(end) {
		return response.ErrInvalidTime.WithTips("开始时间必须早于结束时间")
	}
	if !start.After(s.now()) {
		return response.ErrInvalidTime.WithTips("开始时间必须晚于当前时间")
	}
	if capacity <= 0 {
		return response.ErrInvalidRequest.WithTips("容量必须大于0")
	}
	return nil
}

func checkCategory(tx *gorm.DB, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var c model.Category
	err := tx.First(&c, *categoryID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.ErrCategoryNotFound
	case err != nil:
		return response.ErrDatabase.WithOrigin(err)
	}
	if c.Status != model.CategoryActive {
		return response.ErrInvalidRequest.WithTips("分类已停用")
	}
	return nil
}

func checkOverlap(tx *gorm.DB, organizerID uint, start, end time.Time, excludeID uint) error {
	conflicts, err := capacity.FindConflicts(tx, organizerID, start, end, excludeID)
	if err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	if len(conflicts) > 0 {
		return response.ErrTimeConflict.WithTips(fmt.Sprintf("与活动「%s」时间重叠", conflicts[0].Title))
	}
	return nil
}

// Get 草稿等未公开状态只有组织者和管理员可见，与 List 一致
func (s *Service) Get(ctx context.Context, viewer Actor, id uint) (*model.Activity, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !publiclyVisible(a.Status) && !a.ManagedBy(viewer.ID, viewer.Role) {
		return nil, response.ErrActivityNotFound
	}
	return a, nil
}

func publiclyVisible(status string) bool {
	switch status {
	case model.ActivityPublished, model.ActivityCompleted, model.ActivityCancelled:
		return true
	}
	return false
}

func (s *Service) load(ctx context.Context, id uint) (*model.Activity, error) {
	var a model.Activity
	err := s.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Category").
		First(&a, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrActivityNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &a, nil
}

type ListReq struct {
	paginate.Query
	Status      string `form:"status" binding:"omitempty,activity_status"`
	CategoryID  uint   `form:"category_id"`
	OrganizerID uint   `form:"organizer_id"`
	Keyword     string `form:"keyword"`
	Mine        bool   `form:"mine"`
}

// List 未登录用户与学生只能看到已发布、已结束和已取消的活动，mine 列出自己组织的全部活动
func (s *Service) List(ctx context.Context, viewer Actor, req ListReq) (paginate.Result[model.Activity], error) {
	query := s.db.WithContext(ctx).Model(&model.Activity{})

	switch {
	case req.Mine && viewer.ID > 0:
		query = query.Where("organizer_id = ?", viewer.ID)
		if req.Status != "" {
			query = query.Where("status = ?", req.Status)
		}
	case viewer.Role == model.RoleAdmin:
		if req.Status != "" {
			query = query.Where("status = ?", req.Status)
		}
	default:
		switch req.Status {
		case "":
			query = query.Where("status = ?", model.ActivityPublished)
		case model.ActivityPublished, model.ActivityCompleted, model.ActivityCancelled:
			query = query.Where("status = ?", req.Status)
		default:
			return paginate.NewResult[model.Activity](nil, 0, req.Query), nil
		}
	}

	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.OrganizerID > 0 {
		query = query.Where("organizer_id = ?", req.OrganizerID)
	}
	if req.Keyword != "" {
		like := "%" + req.Keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR location LIKE ?", like, like, like)
	}

	result, err := paginate.Find[model.Activity](query, req.Query,
		paginate.Preload("Category"), paginate.OrderBy("start_time DESC"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}

type UpdateReq struct {
	Title       *string    `json:"title" binding:"omitempty,max=100"`
	Description *string    `json:"description"`
	Location    *string    `json:"location" binding:"omitempty,max=255"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Capacity    *int       `json:"capacity"`
	CategoryID  *uint      `json:"category_id"`
	Cover       *string    `json:"cover" binding:"omitempty,max=255"`
}

// Update 仅草稿和已发布的活动可编辑，重新做与创建相同的校验
func (s *Service) Update(ctx context.Context, actor Actor, id uint, req UpdateReq) (*model.Activity, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockActivity(tx, id)
		if err != nil {
			return err
		}
		if !a.ManagedBy(actor.ID, actor.Role) {
			return response.ErrForbidden
		}
		if a.Status != model.ActivityDraft && a.Status != model.ActivityPublished {
			return response.ErrUnprocessable.WithTips("活动当前状态不可编辑")
		}

		title, start, end, capacityValue := a.Title, a.StartTime, a.EndTime, a.Capacity
		if req.Title != nil {
			title = strings.TrimSpace(*req.Title)
		}
		if req.StartTime != nil {
			start = model.NormalizeTime(*req.StartTime)
		}
		if req.EndTime != nil {
			end = model.NormalizeTime(*req.EndTime)
		}
		if req.Capacity != nil {
			capacityValue = *req.Capacity
		}
		timeChanged := req.StartTime != nil || req.EndTime != nil
		if timeChanged || req.Title != nil || req.Capacity != nil {
			if err := s.validateUpdate(title, start, end, capacityValue, timeChanged); err != nil {
				return err
			}
		}
		if capacityValue < a.Enrolled {
			return response.ErrCapacityBelowEnrolled
		}
		if err := checkCategory(tx, req.CategoryID); err != nil {
			return err
		}
		if timeChanged {
			if err := checkOverlap(tx, a.OrganizerID, start, end, a.ID); err != nil {
				return err
			}
		}

		updates := map[string]any{
			"title":      title,
			"start_time": start,
			"end_time":   end,
			"capacity":   capacityValue,
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Location != nil {
			updates["location"] = *req.Location
		}
		if req.CategoryID != nil {
			updates["category_id"] = *req.CategoryID
		}
		if req.Cover != nil {
			updates["cover"] = *req.Cover
		}
		if err := tx.Model(a).Updates(updates).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// validateUpdate 未改时间时不再要求开始时间在未来，已开始的活动仍可修改描述
func (s *Service) validateUpdate(title string, start, end time.Time, capacity int, timeChanged bool) error {
	if timeChanged {
		return s.validate(title, start, end, capacity)
	}
	if title == "" {
		return response.ErrInvalidRequest.WithTips("标题不能为空")
	}
	if capacity <= 0 {
		return response.ErrInvalidRequest.WithTips("容量必须大于0")
	}
	return nil
}

func lockActivity(tx *gorm.DB, id uint) (*model.Activity, error) {
	var a model.Activity
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrActivityNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &a, nil
}

// Review 管理员审核草稿：通过后才可发布，驳回需记录原因
func (s *Service) Review(ctx context.Context, reviewer Actor, id uint, approved bool, reason string) (*model.Activity, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockActivity(tx, id)
		if err != nil {
			return err
		}
		if a.Status != model.ActivityDraft {
			return response.ErrIllegalTransition.WithTips("只能审核草稿状态的活动")
		}
		reviewStatus := model.ReviewApproved
		title := "活动审核通过"
		if !approved {
			reviewStatus = model.ReviewRejected
			title = "活动审核未通过"
		}
		now := s.now()
		err = tx.Model(a).Updates(map[string]any{
			"review_status": reviewStatus,
			"review_reason": reason,
			"reviewed_by":   reviewer.ID,
			"reviewed_at":   &now,
		}).Error
		if err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return pushActivityNotice(tx, a, []uint{a.OrganizerID}, title, reason)
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Publish 草稿 → 已发布，需审核通过
func (s *Service) Publish(ctx context.Context, actor Actor, id uint) (*model.Activity, error) {
	return s.transit(ctx, actor, id, model.ActivityPublished, model.ActivityDraft)
}

// Unpublish 已发布 → 已取消
func (s *Service) Unpublish(ctx context.Context, actor Actor, id uint) (*model.Activity, error) {
	return s.transit(ctx, actor, id, model.ActivityCancelled, model.ActivityPublished)
}

// UpdateStatus 按状态迁移表变更
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, id uint, status string) (*model.Activity, error) {
	return s.transit(ctx, actor, id, status, "")
}

// transit 在行锁内检查迁移表，requiredFrom 非空时额外要求当前状态
func (s *Service) transit(ctx context.Context, actor Actor, id uint, to, requiredFrom string) (*model.Activity, error) {
	var result model.Activity
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockActivity(tx, id)
		if err != nil {
			return err
		}
		if !a.ManagedBy(actor.ID, actor.Role) {
			return response.ErrForbidden
		}
		if requiredFrom != "" && a.Status != requiredFrom {
			return response.ErrIllegalTransition.WithTips(fmt.Sprintf("%s -> %s", a.Status, to))
		}
		if !model.CanTransitActivity(a.Status, to) {
			return response.ErrIllegalTransition.WithTips(fmt.Sprintf("%s -> %s", a.Status, to))
		}
		if to == model.ActivityPublished && a.ReviewStatus != model.ReviewApproved {
			return response.ErrReviewRequired
		}

		res := tx.Model(&model.Activity{}).
			Where("id = ? AND status = ?", a.ID, a.Status).
			Update("status", to)
		if res.Error != nil {
			return response.ErrDatabase.WithOrigin(res.Error)
		}
		if res.RowsAffected == 0 {
			return response.ErrIllegalTransition.WithTips("活动状态已被修改")
		}

		if to == model.ActivityCancelled || to == model.ActivityDeleted {
			if err := notifyRegistrants(tx, a, to); err != nil {
				return err
			}
		}
		if to == model.ActivityDeleted {
			if err := tx.Delete(&model.Activity{}, a.ID).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}
		a.Status = to
		result = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// notifyRegistrants 活动取消或删除时通知仍持有有效报名的用户
func notifyRegistrants(tx *gorm.DB, a *model.Activity, to string) error {
	var userIDs []uint
	err := tx.Model(&model.Registration{}).
		Where("activity_id = ? AND status NOT IN ?", a.ID, []string{model.RegistrationCancelled, model.RegistrationRejected}).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	title := "活动已取消"
	if to == model.ActivityDeleted {
		title = "活动已删除"
	}
	return pushActivityNotice(tx, a, userIDs, title, "")
}

func pushActivityNotice(tx *gorm.DB, a *model.Activity, userIDs []uint, title, content string) error {
	text := a.Title
	if content != "" {
		text += "：" + content
	}
	list := make([]model.Notification, 0, len(userIDs))
	for _, uid := range userIDs {
		list = append(list, model.Notification{
			UserID:  uid,
			Type:    model.NotifyActivity,
			Title:   title,
			Content: text,
			Meta:    datatypes.JSONMap{"activity_id": a.ID},
		})
	}
	if err := notification.Push(tx, list...); err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}
