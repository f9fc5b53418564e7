package constituency

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

func TestCreateDuplicateCode(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}))
	err := svc.Create(ctx, &model.Constituency{
		Code: "001", Name: "Other", County: "Other", MPName: "Other",
	})
	assert.ErrorIs(t, err, ErrConstituencyTaken)
}

func TestSearchCaseInsensitive(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}))
	require.NoError(t, svc.Create(ctx, &model.Constituency{
		Code: "290", Name: "Kibra", County: "Nairobi", MPName: "B. Owino",
	}))

	got, err := svc.Search(ctx, "CHANGA", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "001", got[0].Code)

	got, err = svc.Search(ctx, "", "nairobi")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "290", got[0].Code)

	// Both terms must match the same row.
	got, err = svc.Search(ctx, "Kibra", "Mombasa")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateKeepsCodeImmutable(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}))

	got, err := svc.Update(ctx, "001", &Patch{
		MPName:   lo.ToPtr("C. Juma"),
		PASScore: lo.ToPtr(71.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "001", got.Code)
	assert.Equal(t, "C. Juma", got.MPName)
	require.NotNil(t, got.PASScore)
	assert.Equal(t, 71.5, *got.PASScore)
	assert.Equal(t, "Changamwe", got.Name)

	_, err = svc.Update(ctx, "999", &Patch{})
	assert.ErrorIs(t, err, ErrConstituencyNotFound)
}

func TestDeleteBlockedWhileReferenced(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}))
	p := model.Project{
		Title:            "Classroom Block",
		Category:         model.CategoryEducation,
		Status:           model.StatusOngoing,
		Budget:           1_000_000,
		ConstituencyCode: "001",
		LastUpdated:      time.Now().UTC(),
	}
	require.NoError(t, db.Create(&p).Error)

	assert.ErrorIs(t, svc.Delete(ctx, "001"), ErrConstituencyInUse)

	require.NoError(t, db.Delete(&model.Project{}, p.ID).Error)
	require.NoError(t, svc.Delete(ctx, "001"))
	assert.ErrorIs(t, svc.Delete(ctx, "001"), ErrConstituencyNotFound)
}
