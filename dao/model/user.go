package model

import "time"

// User is an operator account for the admin surface. PasswordHash is never
// serialized; LastLogin is updated only on a successful login.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;type:varchar(64);not null" json:"username"`
	PasswordHash string  `gorm:"type:varchar(128);not null" json:"-"`
	FullName     *string `gorm:"type:varchar(160)" json:"full_name,omitempty"`
	Email        *string `gorm:"index;type:varchar(160)" json:"email,omitempty"`

	Role   Role       `gorm:"type:varchar(32);not null;default:moderator" json:"role"`
	Status UserStatus `gorm:"type:varchar(32);not null;default:active" json:"status"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
