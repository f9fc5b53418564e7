package model

import "time"

// Feedback is a citizen observation about a project. IPAddress is captured
// from the request origin for abuse tracking and is never client-supplied.
type Feedback struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProjectID uint    `gorm:"index;not null" json:"project_id"`
	Name      *string `gorm:"type:varchar(100)" json:"name,omitempty"`
	Email     *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Message   string  `gorm:"type:varchar(2000);not null" json:"message"`
	IPAddress *string `gorm:"type:varchar(45)" json:"ip_address,omitempty"`

	Status FeedbackStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
