package model

// Star 用户收藏的活动，每个 (user, activity) 最多一条
type Star struct {
	Model
	UserID     uint `gorm:"uniqueIndex:idx_star_user_activity;not null" json:"user_id"`
	ActivityID uint `gorm:"uniqueIndex:idx_star_user_activity;index;not null" json:"activity_id"`

	Activity *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
}
