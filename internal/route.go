package internal

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pamoja-lab/cdf-tracker/internal/handler"
	"github.com/pamoja-lab/cdf-tracker/internal/middleware"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/user"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
)

const apiPrefix = "/api/v1"

type Backend struct {
	R *gin.Engine
}

// Register builds the gin engine and mounts every handler manager on its
// access tiers. All shared dependencies come in through conf.
func Register(conf *handler.RegisterConfig) *Backend {
	s := new(Backend)
	s.R = gin.New()
	s.R.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	// Liveness probe and Prometheus scrape endpoint
	s.R.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	s.R.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.registerService(conf)

	return s
}

func (b *Backend) registerService(conf *handler.RegisterConfig) {
	if conf.Config.FrontendOrigin != "" {
		corsConf := cors.DefaultConfig()
		corsConf.AllowOrigins = []string{conf.Config.FrontendOrigin}
		corsConf.AllowHeaders = append(corsConf.AllowHeaders, "Authorization")
		b.R.Use(cors.New(corsConf))
	}

	users := user.NewService(conf.DB)

	publicRouter := b.R.Group(apiPrefix)

	protectedRouter := b.R.Group(apiPrefix)
	protectedRouter.Use(middleware.AuthProtected(conf.TokenMgr, users))

	moderatorRouter := b.R.Group(apiPrefix)
	moderatorRouter.Use(middleware.AuthProtected(conf.TokenMgr, users), middleware.AuthModerator())

	adminRouter := b.R.Group(apiPrefix + "/admin")
	adminRouter.Use(middleware.AuthProtected(conf.TokenMgr, users), middleware.AuthAdmin())

	for _, register := range handler.Registers {
		mgr := register(conf)
		logutils.Log.Infof("register handler: %s", mgr.GetName())
		mgr.RegisterPublic(publicRouter)
		mgr.RegisterProtected(protectedRouter)
		mgr.RegisterModerator(moderatorRouter)
		mgr.RegisterAdmin(adminRouter)
	}
}
