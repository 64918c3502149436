package handlers

import (
	"greenhouse_sim/internal/logger"
	"greenhouse_sim/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Sweep progress stream; browsers cannot set headers on upgrade, so the
	// token travels in the query string.
	router.GET("/ws/sweep", h.queryTokenMiddleware, h.wsSweep)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/catalog", h.getCatalog)
		h.registerSimulationRoutes(api)
		h.registerSweepRoutes(api)
	}
}

func (h *Handler) registerSimulationRoutes(api *gin.RouterGroup) {
	sim := api.Group("/simulate")
	{
		sim.POST("", h.simulate)
		sim.POST("/day", h.simulateDay)
	}
}

func (h *Handler) registerSweepRoutes(api *gin.RouterGroup) {
	api.POST("/sweep", h.runSweep)
	sweeps := api.Group("/sweeps")
	{
		sweeps.GET("", h.listSweeps)
		sweeps.GET("/:id", h.getSweep)
	}
}
