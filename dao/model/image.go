package model

import "time"

// ProjectImage stores the metadata of a photo uploaded for a project. The
// bytes live in the object store under ObjectName; the row is only written
// after the upload has been confirmed, so there are no orphaned entries.
type ProjectImage struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ProjectID  uint    `gorm:"index;not null" json:"project_id"`
	Filename   string  `gorm:"type:varchar(255);not null" json:"filename"`
	ObjectName string  `gorm:"type:varchar(500);not null" json:"object_name"` // unique key in the bucket
	Caption    *string `gorm:"type:varchar(500)" json:"caption,omitempty"`
	UploadedBy string  `gorm:"type:varchar(50);not null;default:admin" json:"uploaded_by"`

	UploadedAt time.Time `gorm:"not null" json:"uploaded_at"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
