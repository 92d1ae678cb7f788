package handlers

import (
	"carlog/internal/logger"
	"carlog/internal/service"

	"github.com/gin-gonic/gin"

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

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket push of the insight slot — same port, token via query param.
	router.GET("/ws", h.wsInsight)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		auth.POST("/change-password", h.userIdMiddleware, h.changePassword)
		auth.POST("/logout", h.userIdMiddleware, h.logout)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerCarRoutes(api)
		h.registerRecordRoutes(api)
		api.GET("/stats", h.getStats)
	}
}

func (h *Handler) registerCarRoutes(api *gin.RouterGroup) {
	cars := api.Group("/cars")
	{
		cars.GET("", h.listCars)
		cars.POST("", h.addCar)
		cars.DELETE("/:id", h.deleteCar)
		cars.GET("/:id/records", h.listCarRecords)
		cars.POST("/:id/records", h.addRecord)
		cars.POST("/:id/import", h.importCSV)
		cars.POST("/:id/insight", h.requestInsight)
		cars.GET("/:id/insight", h.getInsight)
	}
}

func (h *Handler) registerRecordRoutes(api *gin.RouterGroup) {
	records := api.Group("/records")
	{
		records.GET("/export", h.exportCSV)
		records.PUT("/:id", h.editRecord)
		records.DELETE("/:id", h.deleteRecord)
	}
}
