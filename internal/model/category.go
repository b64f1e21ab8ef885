package model

const (
	CategoryActive   = "active"
	CategoryInactive = "inactive"
)

type Category struct {
	Model
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	Status      string `gorm:"type:varchar(20);default:active;not null" json:"status"`
}
