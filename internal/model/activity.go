package model

import "time"

type Activity struct {
	Model
	OrganizerID  uint       `gorm:"index;not null" json:"organizer_id"`
	Title        string     `gorm:"type:varchar(100);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Location     string     `gorm:"type:varchar(255)" json:"location"`
	StartTime    time.Time  `gorm:"index;not null" json:"start_time"`
	EndTime      time.Time  `gorm:"not null" json:"end_time"`
	Capacity     int        `gorm:"not null" json:"capacity"`
	Enrolled     int        `gorm:"default:0;not null" json:"enrolled"` // 占用名额的报名数
	CategoryID   *uint      `gorm:"index" json:"category_id"`
	Cover        string     `gorm:"type:varchar(255)" json:"cover"`
	Status       string     `gorm:"type:varchar(20);index;default:draft;not null" json:"status"`
	ReviewStatus string     `gorm:"type:varchar(20);default:pending;not null" json:"review_status"`
	ReviewReason string     `gorm:"type:varchar(255)" json:"review_reason"`
	ReviewedBy   *uint      `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`

	Organizer *User     `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Category  *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Available 剩余名额
func (a *Activity) Available() int {
	if a.Enrolled >= a.Capacity {
		return 0
	}
	return a.Capacity - a.Enrolled
}

// ManagedBy 组织者本人或管理员可以管理活动
func (a *Activity) ManagedBy(userID uint, role string) bool {
	return a.OrganizerID == userID || role == RoleAdmin
}

// NormalizeTime 统一为 UTC 并截断到秒
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
