package model

type Feedback struct {
	Model
	UserID     uint   `gorm:"uniqueIndex:idx_feedback_user_activity;not null" json:"user_id"`
	ActivityID uint   `gorm:"uniqueIndex:idx_feedback_user_activity;index;not null" json:"activity_id"`
	Rating     int    `gorm:"not null" json:"rating"`
	Comment    string `gorm:"type:text" json:"comment"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

const (
	MinRating = 1
	MaxRating = 5
)
