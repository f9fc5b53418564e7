package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/dbtest"
)

func seedProject(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	require.NoError(t, db.Create(&model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}).Error)
	p := model.Project{
		Title:            "Borehole",
		Category:         model.CategoryWater,
		Status:           model.StatusOngoing,
		Budget:           1_000_000,
		ConstituencyCode: "001",
		LastUpdated:      time.Now().UTC(),
	}
	require.NoError(t, db.Create(&p).Error)
	return p.ID
}

func TestCreateDefaultsToPending(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()
	projectID := seedProject(t, db)

	f := model.Feedback{
		ProjectID: projectID,
		Message:   "The borehole has not worked since March.",
		IPAddress: lo.ToPtr("203.0.113.9"),
	}
	require.NoError(t, svc.Create(ctx, &f))
	assert.Equal(t, model.FeedbackPending, f.Status)
}

func TestCreateRejectsUnknownProject(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)

	err := svc.Create(context.Background(), &model.Feedback{
		ProjectID: 999,
		Message:   "hello",
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestUpdateStatus(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()
	projectID := seedProject(t, db)

	f := model.Feedback{ProjectID: projectID, Message: "Looks finished to me."}
	require.NoError(t, svc.Create(ctx, &f))

	got, err := svc.UpdateStatus(ctx, f.ID, model.FeedbackApproved)
	require.NoError(t, err)
	assert.Equal(t, model.FeedbackApproved, got.Status)

	_, err = svc.UpdateStatus(ctx, 999, model.FeedbackRejected)
	assert.ErrorIs(t, err, ErrFeedbackNotFound)
}
