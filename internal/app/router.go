package app

import (
	"net/http"

	"nakliye/internal/config"
	"nakliye/internal/handler"
	"nakliye/internal/middleware"
	"nakliye/internal/token"
	"nakliye/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/dig"
)

// RouterParams collects everything mounted on the engine.
type RouterParams struct {
	dig.In

	Config *config.Config
	Hub    *websocket.Hub
	Tokens *token.Manager

	Reference *handler.ReferenceHandler
	Auth      *handler.AuthHandler
	Listings  *handler.ListingHandler
	Offers    *handler.OfferHandler
	Companies *handler.CompanyHandler
	Content   *handler.ContentHandler
	Admin     *handler.AdminHandler
}

// NewRouter builds the gin engine with every API route under /api.
func NewRouter(p RouterParams) http.Handler {
	if p.Config.Release() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = p.Config.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "ws_clients": p.Hub.ClientCount()})
	})
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(p.Hub, p.Tokens, c)
	})

	api := router.Group("/api")
	p.Reference.RegisterRoutes(api)
	p.Auth.RegisterRoutes(api)
	p.Listings.RegisterRoutes(api)
	p.Offers.RegisterRoutes(api)
	p.Companies.RegisterRoutes(api)
	p.Content.RegisterRoutes(api)
	p.Admin.RegisterRoutes(api)

	return router
}
