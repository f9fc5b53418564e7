package award

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

var (
	ErrAwardNotFound      = errors.New("award not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrContractorNotFound = errors.New("contractor not found")

	// ErrDuplicateAward is the one-project-one-award violation. It is raised
	// by the pre-check and also mapped from the storage unique index, so a
	// concurrent loser observes the same error, not a driver failure.
	ErrDuplicateAward = errors.New("project already has a procurement award")
)

// Patch carries a partial award update; nil fields keep the stored value.
// Changing the contractor does not re-check the uniqueness rule, which is on
// the project only.
type Patch struct {
	ContractorID          *uint
	TenderID              *string
	ProcurementMethod     *string
	ContractValue         *float64
	AwardDate             *time.Time
	ContractorShareHint   *float64
	PerformanceFlag       *bool
	PerformanceFlagReason *string
}

// Service binds procurement awards to projects and contractors.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create inserts an award after resolving both referenced entities and
// pre-checking the one-award-per-project rule. The pre-check gives callers a
// clean domain error; the unique index on project_id remains the authority
// under concurrency.
func (s *Service) Create(ctx context.Context, a *model.ProcurementAward) error {
	db := s.db.WithContext(ctx)

	var n int64
	if err := db.Model(&model.Project{}).Where("id = ?", a.ProjectID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	if err := db.Model(&model.Contractor{}).Where("id = ?", a.ContractorID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrContractorNotFound
	}
	if err := db.Model(&model.ProcurementAward{}).Where("project_id = ?", a.ProjectID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateAward
	}

	err := db.Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateAward
	}
	return err
}

// Update applies only the fields present in the patch.
func (s *Service) Update(ctx context.Context, id uint, patch *Patch) (*model.ProcurementAward, error) {
	var a model.ProcurementAward
	err := s.db.WithContext(ctx).Take(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAwardNotFound
	}
	if err != nil {
		return nil, err
	}

	if patch.ContractorID != nil {
		a.ContractorID = *patch.ContractorID
	}
	if patch.TenderID != nil {
		a.TenderID = patch.TenderID
	}
	if patch.ProcurementMethod != nil {
		a.ProcurementMethod = patch.ProcurementMethod
	}
	if patch.ContractValue != nil {
		a.ContractValue = patch.ContractValue
	}
	if patch.AwardDate != nil {
		a.AwardDate = patch.AwardDate
	}
	if patch.ContractorShareHint != nil {
		a.ContractorShareHint = patch.ContractorShareHint
	}
	if patch.PerformanceFlag != nil {
		a.PerformanceFlag = *patch.PerformanceFlag
	}
	if patch.PerformanceFlagReason != nil {
		a.PerformanceFlagReason = patch.PerformanceFlagReason
	}

	if err := s.db.WithContext(ctx).Save(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an award unconditionally; the project keeps no award state.
func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.ProcurementAward{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAwardNotFound
	}
	return nil
}

// Get returns an award by id.
func (s *Service) Get(ctx context.Context, id uint) (*model.ProcurementAward, error) {
	var a model.ProcurementAward
	err := s.db.WithContext(ctx).Take(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAwardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all awards ordered by id.
func (s *Service) List(ctx context.Context) ([]model.ProcurementAward, error) {
	awards := []model.ProcurementAward{}
	err := s.db.WithContext(ctx).Order("id").Find(&awards).Error
	return awards, err
}
