package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/dbtest"
)

func newUser(t *testing.T, db *gorm.DB, username string, role model.Role) *model.User {
	t.Helper()
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Status:       model.UserActive,
	}
	require.NoError(t, NewService(db).Create(context.Background(), u))
	return u
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
}

func TestCreateDuplicateUsername(t *testing.T) {
	db := dbtest.Open(t)
	newUser(t, db, "wanjiku", model.RoleModerator)

	hash, err := HashPassword("other-pass")
	require.NoError(t, err)
	err = NewService(db).Create(context.Background(), &model.User{
		Username:     "wanjiku",
		PasswordHash: hash,
		Role:         model.RoleModerator,
		Status:       model.UserActive,
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestTouchLastLogin(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	u := newUser(t, db, "wanjiku", model.RoleModerator)
	assert.Nil(t, u.LastLogin)

	require.NoError(t, svc.TouchLastLogin(ctx, u.ID))
	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLogin)
}

func TestResetPasswordRehashes(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	u := newUser(t, db, "wanjiku", model.RoleModerator)
	require.NoError(t, svc.ResetPassword(ctx, u.ID, "new-secret"))

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(got.PasswordHash, "new-secret"))
	assert.False(t, VerifyPassword(got.PasswordHash, "hunter22"))

	assert.ErrorIs(t, svc.ResetPassword(ctx, 999, "whatever"), ErrUserNotFound)
}

func TestDeleteGuardsSelf(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	admin := newUser(t, db, "admin", model.RoleAdmin)
	other := newUser(t, db, "moderator", model.RoleModerator)

	assert.ErrorIs(t, svc.Delete(ctx, admin.ID, admin.ID), ErrSelfDelete)
	require.NoError(t, svc.Delete(ctx, other.ID, admin.ID))
	assert.ErrorIs(t, svc.Delete(ctx, other.ID, admin.ID), ErrUserNotFound)
}

func TestUpdateRoleAndStatus(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewService(db)
	ctx := context.Background()

	u := newUser(t, db, "wanjiku", model.RoleModerator)

	got, err := svc.UpdateRole(ctx, u.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)

	got, err = svc.UpdateStatus(ctx, u.ID, model.UserDisabled)
	require.NoError(t, err)
	assert.Equal(t, model.UserDisabled, got.Status)

	_, err = svc.UpdateRole(ctx, 999, model.RoleViewer)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
