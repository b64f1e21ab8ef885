package model

const (
	CommentVisible = "visible"
	CommentHidden  = "hidden"
)

type Comment struct {
	Model
	UserID     uint   `gorm:"index;not null" json:"user_id"`
	ActivityID uint   `gorm:"index;not null" json:"activity_id"`
	ParentID   *uint  `json:"parent_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Status     string `gorm:"type:varchar(20);default:visible;not null" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
