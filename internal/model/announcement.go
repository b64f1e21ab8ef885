package model

import "time"

type Announcement struct {
	Model
	AuthorID    uint       `gorm:"index;not null" json:"author_id"`
	ActivityID  *uint      `gorm:"index" json:"activity_id"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	Published   bool       `gorm:"default:false;not null" json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	// 首次发布时通知报名者，撤回后再发布不再通知
	NotifiedAt  *time.Time `json:"notified_at"`
}
