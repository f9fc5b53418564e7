package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/internal/resputil"
	"github.com/pamoja-lab/cdf-tracker/internal/util"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/user"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewUserMgr)
}

const minPasswordLen = 6

type UserMgr struct {
	name  string
	users *user.Service
}

func NewUserMgr(conf *RegisterConfig) Manager {
	return &UserMgr{
		name:  "users",
		users: user.NewService(conf.DB),
	}
}

func (mgr *UserMgr) GetName() string { return mgr.name }

func (mgr *UserMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *UserMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *UserMgr) RegisterModerator(_ *gin.RouterGroup) {}

func (mgr *UserMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("/users", mgr.ListUsers)
	g.POST("/users", mgr.CreateUser)
	g.PATCH("/users/:id/role", mgr.UpdateRole)
	g.PATCH("/users/:id/status", mgr.UpdateStatus)
	g.POST("/users/:id/reset-password", mgr.ResetPassword)
	g.DELETE("/users/:id", mgr.DeleteUser)
}

type (
	UserIDReq struct {
		ID uint `uri:"id" binding:"required"`
	}

	CreateUserReq struct {
		Username string  `json:"username" binding:"required"`
		Password string  `json:"password" binding:"required"`
		Role     string  `json:"role"`
		FullName *string `json:"full_name"`
		Email    *string `json:"email"`
	}

	UpdateUserRoleReq struct {
		Role string `json:"role" binding:"required"`
	}

	UpdateUserStatusReq struct {
		Status string `json:"status" binding:"required"`
	}

	ResetPasswordReq struct {
		Password string `json:"password" binding:"required"`
	}

	UserResp struct {
		ID        uint             `json:"id"`
		Username  string           `json:"username"`
		FullName  *string          `json:"full_name"`
		Email     *string          `json:"email"`
		Role      model.Role       `json:"role"`
		Status    model.UserStatus `json:"status"`
		CreatedAt time.Time        `json:"created_at"`
		LastLogin *time.Time       `json:"last_login"`
	}
)

func newUserResp(u *model.User) UserResp {
	return UserResp{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// ListUsers godoc
// @Summary List user accounts
// @Tags User
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]UserResp] "users, newest first"
// @Router /v1/admin/users [get]
func (mgr *UserMgr) ListUsers(c *gin.Context) {
	users, err := mgr.users.List(c)
	if err != nil {
		resputil.Error(c, "list users failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(users, func(u model.User, _ int) UserResp {
		return newUserResp(&u)
	}))
}

// CreateUser godoc
// @Summary Create a user account
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body CreateUserReq true "account fields"
// @Success 201 {object} resputil.Response[UserResp] "created user"
// @Failure 400 {object} resputil.Response[any] "invalid role or short password"
// @Failure 409 {object} resputil.Response[any] "username already exists"
// @Router /v1/admin/users [post]
func (mgr *UserMgr) CreateUser(c *gin.Context) {
	var req CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	role := model.RoleModerator
	if req.Role != "" {
		var err error
		if role, err = model.ParseRole(req.Role); err != nil {
			resputil.BadRequestError(c, err.Error())
			return
		}
	}
	if len(req.Password) < minPasswordLen {
		resputil.BadRequestError(c, "Password must be at least 6 characters")
		return
	}

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		resputil.Error(c, "hash password failed", resputil.NotSpecified)
		return
	}
	u := model.User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         role,
		Status:       model.UserActive,
	}
	err = mgr.users.Create(c, &u)
	if errors.Is(err, user.ErrUsernameTaken) {
		resputil.HTTPError(c, http.StatusConflict, "Username already exists", resputil.Conflict)
		return
	}
	if err != nil {
		resputil.Error(c, "create user failed", resputil.NotSpecified)
		return
	}
	logutils.Log.Infof("user created, username: %s, role: %s", u.Username, u.Role)
	resputil.Created(c, newUserResp(&u))
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path uint true "user id"
// @Param data body UpdateUserRoleReq true "new role"
// @Success 200 {object} resputil.Response[UserResp] "updated user"
// @Failure 400 {object} resputil.Response[any] "invalid role"
// @Failure 404 {object} resputil.Response[any] "unknown user"
// @Router /v1/admin/users/{id}/role [patch]
func (mgr *UserMgr) UpdateRole(c *gin.Context) {
	var idReq UserIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req UpdateUserRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	u, err := mgr.users.UpdateRole(c, idReq.ID, role)
	if errors.Is(err, user.ErrUserNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "User not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "update role failed", resputil.NotSpecified)
		return
	}
	logutils.Log.Infof("user role updated, id: %d, role: %s", u.ID, u.Role)
	resputil.Success(c, newUserResp(u))
}

// UpdateStatus godoc
// @Summary Enable or disable a user account
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path uint true "user id"
// @Param data body UpdateUserStatusReq true "active or disabled"
// @Success 200 {object} resputil.Response[UserResp] "updated user"
// @Failure 400 {object} resputil.Response[any] "invalid status"
// @Failure 404 {object} resputil.Response[any] "unknown user"
// @Router /v1/admin/users/{id}/status [patch]
func (mgr *UserMgr) UpdateStatus(c *gin.Context) {
	var idReq UserIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req UpdateUserStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	status, err := model.ParseUserStatus(req.Status)
	if err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	u, err := mgr.users.UpdateStatus(c, idReq.ID, status)
	if errors.Is(err, user.ErrUserNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "User not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "update status failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, newUserResp(u))
}

// ResetPassword godoc
// @Summary Set a new password for a user
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path uint true "user id"
// @Param data body ResetPasswordReq true "new password"
// @Success 200 {object} resputil.Response[string] "password changed"
// @Failure 400 {object} resputil.Response[any] "short password"
// @Failure 404 {object} resputil.Response[any] "unknown user"
// @Router /v1/admin/users/{id}/reset-password [post]
func (mgr *UserMgr) ResetPassword(c *gin.Context) {
	var idReq UserIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if len(req.Password) < minPasswordLen {
		resputil.BadRequestError(c, "Password must be at least 6 characters")
		return
	}

	err := mgr.users.ResetPassword(c, idReq.ID, req.Password)
	if errors.Is(err, user.ErrUserNotFound) {
		resputil.HTTPError(c, http.StatusNotFound, "User not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, "reset password failed", resputil.NotSpecified)
		return
	}
	resputil.Success(c, "")
}

// DeleteUser godoc
// @Summary Delete a user account
// @Description An admin cannot delete their own account
// @Tags User
// @Security Bearer
// @Param id path uint true "user id"
// @Success 204 "deleted"
// @Failure 403 {object} resputil.Response[any] "self-delete attempt"
// @Failure 404 {object} resputil.Response[any] "unknown user"
// @Router /v1/admin/users/{id} [delete]
func (mgr *UserMgr) DeleteUser(c *gin.Context) {
	var req UserIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	caller := util.GetToken(c)
	err := mgr.users.Delete(c, req.ID, caller.UserID)
	switch {
	case errors.Is(err, user.ErrSelfDelete):
		resputil.HTTPError(c, http.StatusForbidden, "Cannot delete your own account", resputil.UserNotAllowed)
		return
	case errors.Is(err, user.ErrUserNotFound):
		resputil.HTTPError(c, http.StatusNotFound, "User not found", resputil.NotFound)
		return
	case err != nil:
		resputil.Error(c, "delete user failed", resputil.NotSpecified)
		return
	}
	logutils.Log.Infof("user deleted, id: %d, by: %s", req.ID, caller.Username)
	resputil.NoContent(c)
}
