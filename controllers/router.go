package controllers

import (
	"dbconnmanager/pkg/metrics"
	"dbconnmanager/services"
	"dbconnmanager/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig carries what SetupRouter needs beyond the package-level services.
type RouterConfig struct {
	JWTSecret      []byte
	AdminRole      string
	ConnectionTest services.ConnectionTestService
}

// SetupRouter builds the gin engine with admin, public, metrics and swagger routes.
func SetupRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware())
	router.Use(metrics.GinMiddleware())

	v1 := router.Group("/api")
	{
		admin := v1.Group("", utils.AuthMiddleware(cfg.JWTSecret, cfg.AdminRole))
		{
			RegisterDBConnectionRoutes(admin)
			RegisterConnectionTestRoutes(admin, cfg.ConnectionTest)
			RegisterNoticeRoutes(admin)
		}

		RegisterRenderRoutes(v1)
	}

	RegisterHealthRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
