package model

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrActivityMissing = errors.New("activity not found")
	ErrNotPublished    = errors.New("activity not published")
	ErrNoSeat          = errors.New("activity is full")
)

// TakeSeat 以单条条件更新占用一个名额，不会超出 capacity
func TakeSeat(tx *gorm.DB, activityID uint) error {
	res := tx.Model(&Activity{}).
		Where("id = ? AND status = ? AND enrolled < capacity", activityID, ActivityPublished).
		UpdateColumn("enrolled", gorm.Expr("enrolled + 1"))
	if res.Error != nil {
		return errors.Wrap(res.Error, "take seat")
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// 未更新到行，区分失败原因
	var a Activity
	if err := tx.Select("id", "status", "enrolled", "capacity").First(&a, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityMissing
		}
		return errors.Wrap(err, "load activity")
	}
	if a.Status != ActivityPublished {
		return ErrNotPublished
	}
	return ErrNoSeat
}

// ReleaseSeat 释放一个名额，enrolled 不会小于 0
func ReleaseSeat(tx *gorm.DB, activityID uint) error {
	err := tx.Model(&Activity{}).
		Where("id = ? AND enrolled > 0", activityID).
		UpdateColumn("enrolled", gorm.Expr("enrolled - 1")).Error
	return errors.Wrap(err, "release seat")
}
