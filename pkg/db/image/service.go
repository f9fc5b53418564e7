package image

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

var (
	ErrImageNotFound   = errors.New("image not found")
	ErrProjectNotFound = errors.New("project not found")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ProjectExists is checked by the upload handler before it touches the object
// store, so a bad project id never costs an upload.
func (s *Service) ProjectExists(ctx context.Context, projectID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", projectID).Count(&n).Error
	return n > 0, err
}

// Create persists the metadata row. Callers must only invoke this after the
// object store has confirmed the upload.
func (s *Service) Create(ctx context.Context, img *model.ProjectImage) error {
	return s.db.WithContext(ctx).Create(img).Error
}

func (s *Service) ListByProject(ctx context.Context, projectID uint) ([]model.ProjectImage, error) {
	out := []model.ProjectImage{}
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&out).Error
	return out, err
}

// Get returns an image belonging to the given project.
func (s *Service) Get(ctx context.Context, projectID, imageID uint) (*model.ProjectImage, error) {
	var img model.ProjectImage
	err := s.db.WithContext(ctx).Take(&img, imageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	if img.ProjectID != projectID {
		return nil, ErrImageNotFound
	}
	return &img, nil
}
