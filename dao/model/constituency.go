package model

// Constituency is keyed by its official code (e.g. "184"). The code is a
// stable external identifier and never changes; the descriptive fields may.
type Constituency struct {
	Code       string   `gorm:"primaryKey;type:varchar(16)" json:"code"`
	Name       string   `gorm:"index;type:varchar(120);not null" json:"name"`
	County     string   `gorm:"index;type:varchar(120);not null" json:"county"`
	MPName     string   `gorm:"column:mp_name;type:varchar(160);not null" json:"mp_name"`
	Population *int64   `json:"population,omitempty"`
	PASScore   *float64 `gorm:"column:pas_score" json:"pas_score,omitempty"` // Public Accountability Score (0-100)
}
