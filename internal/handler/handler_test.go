package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/internal"
	"github.com/pamoja-lab/cdf-tracker/internal/handler"
	"github.com/pamoja-lab/cdf-tracker/internal/util"
	"github.com/pamoja-lab/cdf-tracker/pkg/config"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/dbtest"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/user"
)

// memStore keeps uploads in memory so image handlers can be exercised without
// a running MinIO.
type memStore struct {
	objects map[string][]byte
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) Put(_ context.Context, objectName string, data []byte, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[objectName] = data
	return nil
}

func (s *memStore) PresignGet(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return "https://store.example/" + objectName, nil
}

type env struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *util.TokenManager
	store  *memStore
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	cfg := &config.Config{}
	cfg.Auth.AccessTokenSecret = "test-secret"
	tokens := util.NewTokenManager(cfg.Auth.AccessTokenSecret, 1, 1)
	store := newMemStore()

	backend := internal.Register(&handler.RegisterConfig{
		DB:       db,
		Config:   cfg,
		TokenMgr: tokens,
		Store:    store,
	})
	return &env{router: backend.R, db: db, tokens: tokens, store: store}
}

func (e *env) seedUser(t *testing.T, username string, role model.Role, status model.UserStatus) *model.User {
	t.Helper()
	hash, err := user.HashPassword("hunter22")
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *env) tokenFor(t *testing.T, u *model.User) string {
	t.Helper()
	access, _, err := e.tokens.CreateTokens(&util.JWTMessage{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
	require.NoError(t, err)
	return access
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) seedConstituency(t *testing.T) {
	t.Helper()
	require.NoError(t, e.db.Create(&model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}).Error)
}

func TestLoginAndMe(t *testing.T) {
	e := newEnv(t)
	u := e.seedUser(t, "wanjiku", model.RoleModerator, model.UserActive)

	w := e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "wanjiku", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A failed login must not record a last_login.
	var stored model.User
	require.NoError(t, e.db.Take(&stored, u.ID).Error)
	assert.Nil(t, stored.LastLogin)

	w = e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "wanjiku", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var loginResp struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Data.AccessToken)

	w = e.do(t, http.MethodGet, "/api/v1/auth/me", loginResp.Data.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"wanjiku"`)

	require.NoError(t, e.db.Take(&stored, u.ID).Error)
	assert.NotNil(t, stored.LastLogin)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDisabledAccountRejectedDespiteValidToken(t *testing.T) {
	e := newEnv(t)
	u := e.seedUser(t, "wanjiku", model.RoleModerator, model.UserActive)
	token := e.tokenFor(t, u)

	// Disable the account after the token was issued.
	require.NoError(t, e.db.Model(u).Update("status", model.UserDisabled).Error)

	w := e.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublicProjectListNeedsNoAuth(t *testing.T) {
	e := newEnv(t)
	e.seedConstituency(t)
	require.NoError(t, e.db.Create(&model.Project{
		Title:            "Classroom Block",
		Category:         model.CategoryEducation,
		Status:           model.StatusOngoing,
		Budget:           1_000_000,
		ConstituencyCode: "001",
		LastUpdated:      time.Now().UTC(),
	}).Error)

	w := e.do(t, http.MethodGet, "/api/v1/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Data.Count)

	// Out-of-range limit is a validation error, not a silent clamp.
	w = e.do(t, http.MethodGet, "/api/v1/projects?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectMutationTiers(t *testing.T) {
	e := newEnv(t)
	e.seedConstituency(t)
	viewer := e.seedUser(t, "viewer", model.RoleViewer, model.UserActive)
	moderator := e.seedUser(t, "moderator", model.RoleModerator, model.UserActive)

	body := gin.H{
		"title":             "New Borehole",
		"category":          "Water",
		"status":            "Planned",
		"budget":            2_000_000,
		"constituency_code": "001",
	}

	w := e.do(t, http.MethodPost, "/api/v1/projects", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/projects", e.tokenFor(t, viewer), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/projects", e.tokenFor(t, moderator), body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAwardConflictOnSecondCreate(t *testing.T) {
	e := newEnv(t)
	e.seedConstituency(t)
	moderator := e.seedUser(t, "moderator", model.RoleModerator, model.UserActive)
	token := e.tokenFor(t, moderator)

	p := model.Project{
		Title:            "Footbridge",
		Category:         model.CategoryInfrastructure,
		Status:           model.StatusOngoing,
		Budget:           3_000_000,
		ConstituencyCode: "001",
		LastUpdated:      time.Now().UTC(),
	}
	require.NoError(t, e.db.Create(&p).Error)
	contractor := model.Contractor{Name: "Pwani Builders Ltd"}
	require.NoError(t, e.db.Create(&contractor).Error)

	body := gin.H{"project_id": p.ID, "contractor_id": contractor.ID}
	w := e.do(t, http.MethodPost, "/api/v1/procurement-awards", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/procurement-awards", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already has an award")
}

func TestAdminTierAndSelfDeleteGuard(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, "admin", model.RoleAdmin, model.UserActive)
	moderator := e.seedUser(t, "moderator", model.RoleModerator, model.UserActive)
	adminToken := e.tokenFor(t, admin)

	w := e.do(t, http.MethodGet, "/api/v1/admin/users", e.tokenFor(t, moderator), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/admin/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", moderator.ID), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestFeedbackFlow(t *testing.T) {
	e := newEnv(t)
	e.seedConstituency(t)
	moderator := e.seedUser(t, "moderator", model.RoleModerator, model.UserActive)
	token := e.tokenFor(t, moderator)

	p := model.Project{
		Title:            "Dispensary",
		Category:         model.CategoryHealth,
		Status:           model.StatusCompleted,
		Budget:           5_000_000,
		ConstituencyCode: "001",
		LastUpdated:      time.Now().UTC(),
	}
	require.NoError(t, e.db.Create(&p).Error)

	// Anyone can submit feedback.
	w := e.do(t, http.MethodPost, "/api/v1/feedback", "", gin.H{
		"project_id": p.ID,
		"message":    "No drugs in stock since opening day.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var stored model.Feedback
	require.NoError(t, e.db.Take(&stored, "project_id = ?", p.ID).Error)
	assert.Equal(t, model.FeedbackPending, stored.Status)
	assert.NotNil(t, stored.IPAddress)

	// Moderation cannot move an entry back to pending.
	w = e.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/feedback/%d/status", stored.ID), token, gin.H{
		"status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/feedback/%d/status", stored.ID), token, gin.H{
		"status": "approved",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
