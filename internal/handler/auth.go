package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pamoja-lab/cdf-tracker/internal/resputil"
	"github.com/pamoja-lab/cdf-tracker/internal/util"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/user"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAuthMgr)
}

type AuthMgr struct {
	name     string
	users    *user.Service
	tokenMgr *util.TokenManager
}

func NewAuthMgr(conf *RegisterConfig) Manager {
	return &AuthMgr{
		name:     "auth",
		users:    user.NewService(conf.DB),
		tokenMgr: conf.TokenMgr,
	}
}

func (mgr *AuthMgr) GetName() string { return mgr.name }

func (mgr *AuthMgr) RegisterPublic(g *gin.RouterGroup) {
	g.POST("/auth/login", mgr.Login)
}

func (mgr *AuthMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/auth/me", mgr.Me)
}

func (mgr *AuthMgr) RegisterModerator(_ *gin.RouterGroup) {}

func (mgr *AuthMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	LoginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	LoginResp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		TokenType    string `json:"tokenType"`
	}
)

// Login godoc
// @Summary Authenticate and issue bearer tokens
// @Description A failed login leaves last_login untouched
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body LoginReq true "credentials"
// @Success 200 {object} resputil.Response[LoginResp] "tokens"
// @Failure 401 {object} resputil.Response[any] "wrong username or password"
// @Router /v1/auth/login [post]
func (mgr *AuthMgr) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	l := logutils.Log.WithFields(logutils.Fields{"username": req.Username})

	u, err := mgr.users.GetByUsername(c, req.Username)
	if errors.Is(err, user.ErrUserNotFound) || (err == nil && !user.VerifyPassword(u.PasswordHash, req.Password)) {
		l.Warn("invalid credentials")
		resputil.HTTPError(c, http.StatusUnauthorized, "Incorrect username or password", resputil.InvalidCredentials)
		return
	}
	if err != nil {
		resputil.Error(c, "login failed", resputil.NotSpecified)
		return
	}

	if err := mgr.users.TouchLastLogin(c, u.ID); err != nil {
		resputil.Error(c, "login failed", resputil.NotSpecified)
		return
	}

	accessToken, refreshToken, err := mgr.tokenMgr.CreateTokens(&util.JWTMessage{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
	if err != nil {
		resputil.Error(c, "token generation failed", resputil.NotSpecified)
		return
	}
	l.Info("login success")
	resputil.Success(c, LoginResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	})
}

// Me godoc
// @Summary Return the authenticated principal
// @Description Used by the frontend to confirm the role before showing admin pages
// @Tags Auth
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[UserResp] "current user"
// @Failure 401 {object} resputil.Response[any] "missing or invalid token"
// @Router /v1/auth/me [get]
func (mgr *AuthMgr) Me(c *gin.Context) {
	token := util.GetToken(c)
	u, err := mgr.users.GetByUsername(c, token.Username)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "User not found", resputil.TokenInvalid)
		return
	}
	resputil.Success(c, newUserResp(u))
}
