package feedback

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrProjectNotFound  = errors.New("project not found")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create stores a citizen observation after confirming the project exists.
func (s *Service) Create(ctx context.Context, f *model.Feedback) error {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", f.ProjectID).Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	if f.Status == "" {
		f.Status = model.FeedbackPending
	}
	return s.db.WithContext(ctx).Create(f).Error
}

func (s *Service) List(ctx context.Context) ([]model.Feedback, error) {
	out := []model.Feedback{}
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// UpdateStatus moves a feedback entry to approved or rejected.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status model.FeedbackStatus) (*model.Feedback, error) {
	var f model.Feedback
	err := s.db.WithContext(ctx).Take(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, err
	}
	f.Status = status
	if err := s.db.WithContext(ctx).Save(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}
