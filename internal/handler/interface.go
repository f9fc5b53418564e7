package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/internal/util"
	"github.com/pamoja-lab/cdf-tracker/pkg/config"
	"github.com/pamoja-lab/cdf-tracker/pkg/objectstore"
)

// Manager registers one resource's routes on the four access tiers. A manager
// leaves tiers it has nothing for empty.
type Manager interface {
	GetName() string
	RegisterPublic(group *gin.RouterGroup)
	RegisterProtected(group *gin.RouterGroup)  // any active principal
	RegisterModerator(group *gin.RouterGroup)  // moderator or admin
	RegisterAdmin(group *gin.RouterGroup)      // admin only
}

// RegisterConfig carries the shared dependencies constructed in main. Nothing
// here is a package-level singleton.
type RegisterConfig struct {
	DB       *gorm.DB
	Config   *config.Config
	TokenMgr *util.TokenManager
	Store    objectstore.Store
}

// Registers collects the manager constructors contributed by init functions
// across this package.
var Registers []func(*RegisterConfig) Manager
