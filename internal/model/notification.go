package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotifySystem       = "system"
	NotifyRegistration = "registration"
	NotifyActivity     = "activity"
	NotifyAnnouncement = "announcement"
)

type Notification struct {
	Model
	UserID  uint              `gorm:"index;not null" json:"user_id"`
	Type    string            `gorm:"type:varchar(20);not null" json:"type"`
	Title   string            `gorm:"type:varchar(100);not null" json:"title"`
	Content string            `gorm:"type:text" json:"content"`
	Meta    datatypes.JSONMap `json:"meta"`
	Read    bool              `gorm:"column:is_read;default:false;not null" json:"read"`
	ReadAt  *time.Time        `json:"read_at"`
}
