package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrConstituencyNotFound = errors.New("constituency not found")
	ErrInvalidLimit         = fmt.Errorf("limit must be between %d and %d", MinLimit, MaxLimit)
	ErrInvalidOffset        = errors.New("offset must not be negative")
)

const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 20

	// DefaultSort is also the silent fallback for unrecognized sort keys.
	DefaultSort = "last_updated_desc"
)

// sortExprs whitelists the supported sort keys. Anything else falls back to
// DefaultSort without an error.
var sortExprs = map[string]string{
	"id_asc":            "projects.id ASC",
	"id_desc":           "projects.id DESC",
	"last_updated_asc":  "projects.last_updated ASC",
	"last_updated_desc": "projects.last_updated DESC",
	"title_asc":         "projects.title ASC",
	"title_desc":        "projects.title DESC",
}

// Filters are conjunctive; the zero value of each field disables it.
type Filters struct {
	ConstituencyCode string
	Category         model.ProjectCategory
	Status           model.ProjectStatus
}

// Patch carries a partial project update. Nil fields leave the stored value
// untouched; the merge is explicit and field-by-field.
type Patch struct {
	Title            *string
	Description      *string
	Category         *model.ProjectCategory
	Status           *model.ProjectStatus
	Budget           *float64
	Spent            *float64
	Progress         *float64
	ConstituencyCode *string
	StartDate        *time.Time
	CompletionDate   *time.Time
	IsMock           *bool
	SourceName       *string
	SourceURL        *string
	SourceDocRef     *string
}

// Service assembles the denormalized project view and owns project mutation,
// including the natural-key upsert used by the bulk import.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

const viewColumns = `projects.id, projects.title, projects.description, projects.category,
projects.status, projects.budget, projects.spent, projects.progress,
projects.constituency_code, projects.start_date, projects.completion_date,
projects.is_mock, projects.source_name, projects.source_url, projects.source_doc_ref,
projects.last_updated,
constituencies.name AS constituency_name, constituencies.county, constituencies.mp_name,
contractors.name AS contractor_name,
procurement_awards.tender_id, procurement_awards.procurement_method,
procurement_awards.contract_value, procurement_awards.award_date`

// viewQuery is Project inner-joined to Constituency and outer-joined to the
// award and its contractor. A project whose award references a deleted
// contractor still appears, with a null contractor name.
func (s *Service) viewQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("projects").
		Select(viewColumns).
		Joins("JOIN constituencies ON constituencies.code = projects.constituency_code").
		Joins("LEFT JOIN procurement_awards ON procurement_awards.project_id = projects.id").
		Joins("LEFT JOIN contractors ON contractors.id = procurement_awards.contractor_id")
}

func applyFilters(q *gorm.DB, f Filters) *gorm.DB {
	if f.ConstituencyCode != "" {
		q = q.Where("projects.constituency_code = ?", f.ConstituencyCode)
	}
	if f.Category != "" {
		q = q.Where("projects.category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("projects.status = ?", f.Status)
	}
	return q
}

// List returns one page of project views plus the total count of matching
// projects. Offset has no upper bound: a page past the end is empty, not an
// error.
func (s *Service) List(ctx context.Context, f Filters, sort string, offset, limit int) ([]View, int64, error) {
	if limit < MinLimit || limit > MaxLimit {
		return nil, 0, ErrInvalidLimit
	}
	if offset < 0 {
		return nil, 0, ErrInvalidOffset
	}

	order, ok := sortExprs[sort]
	if !ok {
		order = sortExprs[DefaultSort]
	}

	var count int64
	countQ := applyFilters(s.db.WithContext(ctx).Model(&model.Project{}), f)
	if err := countQ.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	views := []View{}
	q := applyFilters(s.viewQuery(ctx), f).Order(order).Offset(offset).Limit(limit)
	if err := q.Scan(&views).Error; err != nil {
		return nil, 0, err
	}
	return views, count, nil
}

// Get returns the view of a single project.
func (s *Service) Get(ctx context.Context, id uint) (*View, error) {
	var v View
	err := s.viewQuery(ctx).Where("projects.id = ?", id).Take(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persists a new project after resolving its constituency code.
// LastUpdated is set here, never taken from the caller.
func (s *Service) Create(ctx context.Context, p *model.Project) error {
	if err := s.constituencyExists(ctx, p.ConstituencyCode); err != nil {
		return err
	}
	p.LastUpdated = time.Now().UTC()
	return s.db.WithContext(ctx).Create(p).Error
}

// Update applies a partial update. The constituency is re-resolved only when
// the code actually changes.
func (s *Service) Update(ctx context.Context, id uint, patch *Patch) (*model.Project, error) {
	var p model.Project
	err := s.db.WithContext(ctx).Take(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	if patch.ConstituencyCode != nil && *patch.ConstituencyCode != p.ConstituencyCode {
		if err := s.constituencyExists(ctx, *patch.ConstituencyCode); err != nil {
			return nil, err
		}
		p.ConstituencyCode = *patch.ConstituencyCode
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Budget != nil {
		p.Budget = *patch.Budget
	}
	if patch.Spent != nil {
		p.Spent = patch.Spent
	}
	if patch.Progress != nil {
		p.Progress = patch.Progress
	}
	if patch.StartDate != nil {
		p.StartDate = patch.StartDate
	}
	if patch.CompletionDate != nil {
		p.CompletionDate = patch.CompletionDate
	}
	if patch.IsMock != nil {
		p.IsMock = *patch.IsMock
	}
	if patch.SourceName != nil {
		p.SourceName = patch.SourceName
	}
	if patch.SourceURL != nil {
		p.SourceURL = patch.SourceURL
	}
	if patch.SourceDocRef != nil {
		p.SourceDocRef = patch.SourceDocRef
	}

	p.LastUpdated = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a project unconditionally.
func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (s *Service) constituencyExists(ctx context.Context, code string) error {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Constituency{}).
		Where("code = ?", code).Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConstituencyNotFound
	}
	return nil
}
