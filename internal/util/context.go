package util

import (
	"github.com/gin-gonic/gin"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

const (
	UserIDKey   = "x-user-id"
	UsernameKey = "x-user-name"
	RoleKey     = "x-user-role"
)

func SetJWTContext(c *gin.Context, msg JWTMessage) {
	c.Set(UserIDKey, msg.UserID)
	c.Set(UsernameKey, msg.Username)
	c.Set(RoleKey, msg.Role)
}

func GetToken(c *gin.Context) JWTMessage {
	var msg JWTMessage
	msg.UserID = c.GetUint(UserIDKey)
	msg.Username = c.GetString(UsernameKey)

	if role, ok := c.Get(RoleKey); ok {
		msg.Role = role.(model.Role)
	}
	return msg
}
