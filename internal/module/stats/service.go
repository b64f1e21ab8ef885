// Package stats 活动数据统计：热度排名、个人参与历史、单个活动概况和全站总览
package stats

import (
	"context"
	"math"
	"time"

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

func (s *Service) Rank(ctx context.Context, limit int) ([]RankItem, error) {
	if limit <= 0 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}
	ranks, err := selectRank(s.db.WithContext(ctx), limit)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return ranks, nil
}

func (s *Service) History(ctx context.Context, userID uint, askTime time.Time, q paginate.Query) (paginate.Result[model.Activity], error) {
	query := historyQuery(s.db.WithContext(ctx), userID, askTime)
	result, err := paginate.Find[model.Activity](query, q, paginate.OrderBy("activity.end_time DESC"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}

type Brief struct {
	ActivityID     uint             `json:"activity_id"`
	Title          string           `json:"title"`
	Status         string           `json:"status"`
	Capacity       int              `json:"capacity"`
	Enrolled       int              `json:"enrolled"`
	Registrations  map[string]int64 `json:"registrations"`
	AttendanceRate float64          `json:"attendance_rate"` // attended / (attended + absent)
	FeedbackCount  int64            `json:"feedback_count"`
	AverageRating  float64          `json:"average_rating"`
	CommentCount   int64            `json:"comment_count"`
}

// Brief 单个活动的概况，组织者和管理员可见
func (s *Service) Brief(ctx context.Context, viewerID uint, role string, activityID uint) (*Brief, error) {
	db := s.db.WithContext(ctx)
	var a model.Activity
	err := db.First(&a, activityID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrActivityNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if !a.ManagedBy(viewerID, role) {
		return nil, response.ErrForbidden
	}

	brief := &Brief{
		ActivityID: a.ID,
		Title:      a.Title,
		Status:     a.Status,
		Capacity:   a.Capacity,
		Enrolled:   a.Enrolled,
	}
	brief.Registrations, err = countBy(db.Model(&model.Registration{}).Where("activity_id = ?", a.ID), "status")
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	for _, st := range model.RegistrationStatuses {
		if _, ok := brief.Registrations[st]; !ok {
			brief.Registrations[st] = 0
		}
	}
	attended, absent := brief.Registrations[model.RegistrationAttended], brief.Registrations[model.RegistrationAbsent]
	if attended+absent > 0 {
		brief.AttendanceRate = round2(float64(attended) / float64(attended+absent))
	}

	var rating struct {
		N   int64
		Avg float64
	}
	err = db.Model(&model.Feedback{}).
		Select("COUNT(*) AS n, COALESCE(AVG(rating), 0) AS avg").
		Where("activity_id = ?", a.ID).
		Scan(&rating).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	brief.FeedbackCount, brief.AverageRating = rating.N, round2(rating.Avg)

	err = db.Model(&model.Comment{}).
		Where("activity_id = ? AND status = ?", a.ID, model.CommentVisible).
		Count(&brief.CommentCount).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return brief, nil
}

type Overview struct {
	UsersByRole            map[string]int64 `json:"users_by_role"`
	ActivitiesByStatus     map[string]int64 `json:"activities_by_status"`
	RegistrationsByStatus  map[string]int64 `json:"registrations_by_status"`
	FeedbackCount          int64            `json:"feedback_count"`
	PublishedAnnouncements int64            `json:"published_announcements"`
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	db := s.db.WithContext(ctx)
	var (
		o   Overview
		err error
	)
	if o.UsersByRole, err = countBy(db.Model(&model.User{}), "role"); err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if o.ActivitiesByStatus, err = countBy(db.Model(&model.Activity{}), "status"); err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if o.RegistrationsByStatus, err = countBy(db.Model(&model.Registration{}), "status"); err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if err = db.Model(&model.Feedback{}).Count(&o.FeedbackCount).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	err = db.Model(&model.Announcement{}).Where("published = ?", true).Count(&o.PublishedAnnouncements).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &o, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
