package model

import "time"

// ProcurementAward links a project to the contractor that won its tender.
// The unique index on ProjectID is the authority for the one-award-per-project
// rule: the application pre-check exists to produce a clean domain error, but
// concurrent creators are serialized here.
type ProcurementAward struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ProjectID    uint `gorm:"uniqueIndex;not null" json:"project_id"`
	ContractorID uint `gorm:"index;not null" json:"contractor_id"`

	TenderID          *string `gorm:"index;type:varchar(120)" json:"tender_id,omitempty"`
	ProcurementMethod *string `gorm:"type:varchar(80)" json:"procurement_method,omitempty"`

	ContractValue *float64   `json:"contract_value,omitempty"`
	AwardDate     *time.Time `json:"award_date,omitempty"`

	ContractorShareHint   *float64 `json:"contractor_share_hint,omitempty"`
	PerformanceFlag       bool     `gorm:"not null;default:false" json:"performance_flag"`
	PerformanceFlagReason *string  `gorm:"type:varchar(500)" json:"performance_flag_reason,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Project    Project    `gorm:"foreignKey:ProjectID" json:"-"`
	Contractor Contractor `gorm:"foreignKey:ContractorID" json:"-"`
}
