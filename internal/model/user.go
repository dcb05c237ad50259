package model

import "fmt"

// Canonical roles. Legacy localized role strings are normalized to one of
// these four by the alias resolver.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
	RoleAdmin   = "admin"
)

// User maps to table users. Rows are owned and mutated by the identity
// service; this API only reads them for existence checks and display names.
type User struct {
	ID        uint   `gorm:"primaryKey"                               json:"id"`
	FirstName string `gorm:"type:varchar(100);not null"               json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null"               json:"last_name"`
	Role      string `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	BaseModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// FullName returns the display name used in derived slot titles.
func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
