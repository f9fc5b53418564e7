package project

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/dbtest"
)

func importRecord(title, code string, docRef *string) *model.Project {
	return &model.Project{
		Title:            title,
		Category:         model.CategoryWater,
		Status:           model.StatusPlanned,
		Budget:           2_000_000,
		ConstituencyCode: code,
		SourceDocRef:     docRef,
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	seedConstituencies(t, db)
	svc := NewService(db)
	ctx := context.Background()

	ref := lo.ToPtr("NGCDF-2025-Q1.pdf")

	res, err := svc.Upsert(ctx, importRecord("Borehole Rehab", "001", ref))
	require.NoError(t, err)
	assert.Equal(t, ResultCreated, res)

	// Same natural key, changed payload: the row is replaced, not duplicated.
	second := importRecord("Borehole Rehab", "001", ref)
	second.Status = model.StatusOngoing
	second.Budget = 2_500_000
	res, err = svc.Upsert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, ResultUpdated, res)

	var count int64
	require.NoError(t, db.Model(&model.Project{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored model.Project
	require.NoError(t, db.Take(&stored, "title = ?", "Borehole Rehab").Error)
	assert.Equal(t, model.StatusOngoing, stored.Status)
	assert.Equal(t, 2_500_000.0, stored.Budget)
}

func TestUpsertNilDocRefMatchesOnlyNil(t *testing.T) {
	db := dbtest.Open(t)
	seedConstituencies(t, db)
	svc := NewService(db)
	ctx := context.Background()

	res, err := svc.Upsert(ctx, importRecord("Market Shed", "001", lo.ToPtr("doc-A")))
	require.NoError(t, err)
	assert.Equal(t, ResultCreated, res)

	// A nil doc ref must not match the doc-A row.
	res, err = svc.Upsert(ctx, importRecord("Market Shed", "001", nil))
	require.NoError(t, err)
	assert.Equal(t, ResultCreated, res)

	// But it does match the nil row on re-import.
	res, err = svc.Upsert(ctx, importRecord("Market Shed", "001", nil))
	require.NoError(t, err)
	assert.Equal(t, ResultUpdated, res)

	var count int64
	require.NoError(t, db.Model(&model.Project{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpsertSameTitleDifferentConstituency(t *testing.T) {
	db := dbtest.Open(t)
	seedConstituencies(t, db)
	svc := NewService(db)
	ctx := context.Background()

	res, err := svc.Upsert(ctx, importRecord("Dispensary Fence", "001", nil))
	require.NoError(t, err)
	assert.Equal(t, ResultCreated, res)

	res, err = svc.Upsert(ctx, importRecord("Dispensary Fence", "002", nil))
	require.NoError(t, err)
	assert.Equal(t, ResultCreated, res)

	var count int64
	require.NoError(t, db.Model(&model.Project{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpsertUnknownConstituency(t *testing.T) {
	db := dbtest.Open(t)
	seedConstituencies(t, db)
	svc := NewService(db)

	_, err := svc.Upsert(context.Background(), importRecord("Nowhere", "999", nil))
	assert.ErrorIs(t, err, ErrConstituencyNotFound)
}
