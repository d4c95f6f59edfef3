package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	Role      Role      `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
