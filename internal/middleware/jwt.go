package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/internal/resputil"
	"github.com/pamoja-lab/cdf-tracker/internal/util"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/user"
)

// AuthProtected verifies the bearer token, reloads the principal so role and
// status changes take effect immediately, and rejects disabled accounts. A
// token that was issued before an account was disabled is therefore useless.
func AuthProtected(tokenMgr *util.TokenManager, users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		t := strings.Split(authHeader, " ")
		if len(t) < 2 || t[0] != "Bearer" {
			resputil.HTTPError(c, http.StatusUnauthorized, "Invalid token", resputil.TokenInvalid)
			c.Abort()
			return
		}

		msg, err := tokenMgr.CheckToken(t[1])
		if err != nil {
			resputil.HTTPError(c, http.StatusUnauthorized, err.Error(), resputil.TokenExpired)
			c.Abort()
			return
		}

		u, err := users.GetByUsername(c, msg.Username)
		if err != nil {
			resputil.HTTPError(c, http.StatusUnauthorized, "User not found", resputil.TokenInvalid)
			c.Abort()
			return
		}
		if u.Status == model.UserDisabled {
			resputil.HTTPError(c, http.StatusForbidden, "Account disabled", resputil.UserNotAllowed)
			c.Abort()
			return
		}

		util.SetJWTContext(c, util.JWTMessage{
			UserID:   u.ID,
			Username: u.Username,
			Role:     u.Role,
		})
		c.Next()
	}
}

// AuthModerator admits moderators and admins.
func AuthModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.GetToken(c)
		if token.Role != model.RoleModerator && token.Role != model.RoleAdmin {
			resputil.HTTPError(c, http.StatusForbidden, "Moderator access required", resputil.UserNotAllowed)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthAdmin admits admins only.
func AuthAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.GetToken(c)
		if token.Role != model.RoleAdmin {
			resputil.HTTPError(c, http.StatusForbidden, "Admin access required", resputil.UserNotAllowed)
			c.Abort()
			return
		}
		c.Next()
	}
}
