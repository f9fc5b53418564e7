package constituency

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

var (
	ErrConstituencyNotFound = errors.New("constituency not found")
	ErrConstituencyTaken    = errors.New("constituency code already exists")

	// ErrConstituencyInUse blocks deleting a constituency that projects still
	// reference. Blocking was chosen over cascading: losing project rows
	// because an administrative area was retired would destroy the audit
	// trail this system exists for.
	ErrConstituencyInUse = errors.New("constituency is referenced by projects")
)

// Patch updates the descriptive fields; the code is immutable.
type Patch struct {
	Name       *string
	County     *string
	MPName     *string
	Population *int64
	PASScore   *float64
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, c *model.Constituency) error {
	err := s.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConstituencyTaken
	}
	return err
}

func (s *Service) Get(ctx context.Context, code string) (*model.Constituency, error) {
	var c model.Constituency
	err := s.db.WithContext(ctx).Take(&c, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConstituencyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]model.Constituency, error) {
	out := []model.Constituency{}
	err := s.db.WithContext(ctx).Order("code").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// Search matches name and county by case-insensitive substring.
func (s *Service) Search(ctx context.Context, name, county string) ([]model.Constituency, error) {
	q := s.db.WithContext(ctx).Model(&model.Constituency{})
	if name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
	}
	if county != "" {
		q = q.Where("LOWER(county) LIKE LOWER(?)", "%"+county+"%")
	}
	out := []model.Constituency{}
	err := q.Order("code").Find(&out).Error
	return out, err
}

func (s *Service) Update(ctx context.Context, code string, patch *Patch) (*model.Constituency, error) {
	c, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.County != nil {
		c.County = *patch.County
	}
	if patch.MPName != nil {
		c.MPName = *patch.MPName
	}
	if patch.Population != nil {
		c.Population = patch.Population
	}
	if patch.PASScore != nil {
		c.PASScore = patch.PASScore
	}
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// Delete refuses to remove a constituency that projects still reference.
func (s *Service) Delete(ctx context.Context, code string) error {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Project{}).
		Where("constituency_code = ?", code).Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConstituencyInUse
	}

	res := s.db.WithContext(ctx).Delete(&model.Constituency{}, "code = ?", code)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConstituencyNotFound
	}
	return nil
}
