package contractor

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/dbtest"
)

func TestDuplicateNamesAllowed(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Contractor{Name: "Pwani Builders Ltd"}))
	require.NoError(t, svc.Create(ctx, &model.Contractor{Name: "Pwani Builders Ltd"}))

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUpdatePatch(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	c := model.Contractor{Name: "Pwani Builders Ltd", Phone: lo.ToPtr("+254700000000")}
	require.NoError(t, svc.Create(ctx, &c))

	got, err := svc.Update(ctx, c.ID, &Patch{Email: lo.ToPtr("tenders@pwani.example")})
	require.NoError(t, err)
	require.NotNil(t, got.Email)
	assert.Equal(t, "tenders@pwani.example", *got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "+254700000000", *got.Phone)

	_, err = svc.Update(ctx, 999, &Patch{})
	assert.ErrorIs(t, err, ErrContractorNotFound)
}

func TestDeleteBlockedWhileAwarded(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}).Error)
	p := model.Project{
		Title:            "Footbridge",
		Category:         model.CategoryInfrastructure,
		Status:           model.StatusOngoing,
		Budget:           3_000_000,
		ConstituencyCode: "001",
		LastUpdated:      time.Now().UTC(),
	}
	require.NoError(t, db.Create(&p).Error)

	c := model.Contractor{Name: "Pwani Builders Ltd"}
	require.NoError(t, svc.Create(ctx, &c))
	a := model.ProcurementAward{ProjectID: p.ID, ContractorID: c.ID}
	require.NoError(t, db.Create(&a).Error)

	assert.ErrorIs(t, svc.Delete(ctx, c.ID), ErrContractorInUse)

	require.NoError(t, db.Delete(&model.ProcurementAward{}, a.ID).Error)
	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), ErrContractorNotFound)
}
