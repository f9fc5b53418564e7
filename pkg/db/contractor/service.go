package contractor

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

var (
	ErrContractorNotFound = errors.New("contractor not found")

	// ErrContractorInUse blocks deleting a contractor that awards still
	// reference; removing it would silently null out award attribution.
	ErrContractorInUse = errors.New("contractor is referenced by procurement awards")
)

// Patch carries a partial contractor update; nil fields keep stored values.
type Patch struct {
	Name           *string
	Phone          *string
	Email          *string
	RegistrationNo *string
	Address        *string
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, c *model.Contractor) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Contractor, error) {
	var c model.Contractor
	err := s.db.WithContext(ctx).Take(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContractorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context) ([]model.Contractor, error) {
	out := []model.Contractor{}
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Service) Update(ctx context.Context, id uint, patch *Patch) (*model.Contractor, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Phone != nil {
		c.Phone = patch.Phone
	}
	if patch.Email != nil {
		c.Email = patch.Email
	}
	if patch.RegistrationNo != nil {
		c.RegistrationNo = patch.RegistrationNo
	}
	if patch.Address != nil {
		c.Address = patch.Address
	}
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// Delete refuses to remove a contractor still referenced by awards.
func (s *Service) Delete(ctx context.Context, id uint) error {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.ProcurementAward{}).
		Where("contractor_id = ?", id).Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrContractorInUse
	}

	res := s.db.WithContext(ctx).Delete(&model.Contractor{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrContractorNotFound
	}
	return nil
}
