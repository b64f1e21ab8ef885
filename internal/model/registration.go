package model

import "time"

// Registration 每个 (user, activity) 只有一行，取消或被拒后重新报名复用该行
type Registration struct {
	Model
	UserID       uint      `gorm:"uniqueIndex:idx_registration_user_activity;not null" json:"user_id"`
	ActivityID   uint      `gorm:"uniqueIndex:idx_registration_user_activity;index;not null" json:"activity_id"`
	Status       string    `gorm:"type:varchar(20);index;not null" json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
	Remark       string    `gorm:"type:varchar(255)" json:"remark"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Activity *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
}
