package model

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"

	UserActive   = "active"
	UserDisabled = "disabled"
)

var roleRank = map[string]int{
	RoleStudent: 1,
	RoleTeacher: 2,
	RoleAdmin:   3,
}

// RoleAtLeast 判断 role 是否不低于 min，未知角色视为最低
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min] && roleRank[role] > 0
}

func ValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

type User struct {
	Model
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Name      string `gorm:"type:varchar(50);not null" json:"name"`
	Role      string `gorm:"type:varchar(20);default:student;not null" json:"role"`
	Status    string `gorm:"type:varchar(20);default:active;not null" json:"status"`
	StudentID string `gorm:"type:varchar(20);index" json:"student_id"`
	Avatar    string `gorm:"type:varchar(255)" json:"avatar"`
}
