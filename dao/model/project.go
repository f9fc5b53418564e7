package model

import "time"

// Project is a single CDF-funded development project. LastUpdated is set by
// the server on every mutation and is never accepted from a client.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"index;type:varchar(255);not null" json:"title"`
	Description *string         `json:"description,omitempty"`
	Category    ProjectCategory `gorm:"type:varchar(32);not null" json:"category"`
	Status      ProjectStatus   `gorm:"type:varchar(32);not null;default:Planned" json:"status"`

	Budget   float64  `gorm:"not null" json:"budget"`
	Spent    *float64 `json:"spent,omitempty"`
	Progress *float64 `json:"progress,omitempty"` // 0-100

	ConstituencyCode string `gorm:"index;type:varchar(16);not null" json:"constituency_code"`

	StartDate      *time.Time `json:"start_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`

	// Provenance: true = seeded/demo rows, false = imported/real rows.
	IsMock       bool    `gorm:"index;not null;default:true" json:"is_mock"`
	SourceName   *string `gorm:"index;type:varchar(120)" json:"source_name,omitempty"`
	SourceURL    *string `gorm:"type:varchar(500)" json:"source_url,omitempty"`
	SourceDocRef *string `gorm:"type:varchar(120)" json:"source_doc_ref,omitempty"`

	LastUpdated time.Time `gorm:"not null" json:"last_updated"`

	Constituency Constituency `gorm:"foreignKey:ConstituencyCode;references:Code" json:"-"`
}
