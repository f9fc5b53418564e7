package model

import "time"

// Contractor is a company awarded one or more procurement contracts.
// Duplicate names and registration numbers are allowed: contractor identity
// arrives from scanned tender documents and deduplication is a data-cleaning
// concern, not a storage constraint.
type Contractor struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"index;type:varchar(160);not null" json:"name"`
	Phone          *string `gorm:"type:varchar(40)" json:"phone,omitempty"`
	Email          *string `gorm:"type:varchar(160)" json:"email,omitempty"`
	RegistrationNo *string `gorm:"type:varchar(120)" json:"registration_no,omitempty"`
	Address        *string `gorm:"type:varchar(240)" json:"address,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
