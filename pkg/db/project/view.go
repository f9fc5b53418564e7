package project

import (
	"time"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

// View is the flattened read model served by the project endpoints: every
// Project column plus the joined Constituency columns, plus the outer-joined
// award and contractor columns. The award and contractor fields are each
// independently nullable: a project without an award, or an award whose
// contractor row has been removed, still produces a view.
type View struct {
	ID          uint                  `gorm:"column:id" json:"id"`
	Title       string                `gorm:"column:title" json:"title"`
	Description *string               `gorm:"column:description" json:"description,omitempty"`
	Category    model.ProjectCategory `gorm:"column:category" json:"category"`
	Status      model.ProjectStatus   `gorm:"column:status" json:"status"`

	Budget   float64  `gorm:"column:budget" json:"budget"`
	Spent    *float64 `gorm:"column:spent" json:"spent,omitempty"`
	Progress *float64 `gorm:"column:progress" json:"progress,omitempty"`

	ConstituencyCode string `gorm:"column:constituency_code" json:"constituency_code"`
	ConstituencyName string `gorm:"column:constituency_name" json:"constituency_name"`
	MPName           string `gorm:"column:mp_name" json:"mp_name"`
	County           string `gorm:"column:county" json:"county"`

	ContractorName    *string    `gorm:"column:contractor_name" json:"contractor_name"`
	TenderID          *string    `gorm:"column:tender_id" json:"tender_id"`
	ProcurementMethod *string    `gorm:"column:procurement_method" json:"procurement_method"`
	ContractValue     *float64   `gorm:"column:contract_value" json:"contract_value"`
	AwardDate         *time.Time `gorm:"column:award_date" json:"award_date"`

	StartDate      *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	CompletionDate *time.Time `gorm:"column:completion_date" json:"completion_date,omitempty"`
	LastUpdated    time.Time  `gorm:"column:last_updated" json:"last_updated"`

	IsMock       bool    `gorm:"column:is_mock" json:"is_mock"`
	SourceName   *string `gorm:"column:source_name" json:"source_name,omitempty"`
	SourceURL    *string `gorm:"column:source_url" json:"source_url,omitempty"`
	SourceDocRef *string `gorm:"column:source_doc_ref" json:"source_doc_ref,omitempty"`
}
