package main

import (
	"log"
	"net/http"

	controller "github.com/Ekene07/CorrTrack/controller"
	"github.com/Ekene07/CorrTrack/initializers"
	middleware "github.com/Ekene07/CorrTrack/middleware"
	service "github.com/Ekene07/CorrTrack/service"

	"github.com/gin-gonic/gin"
)

func init() {
	if err := initializers.LoadEnv(); err != nil {
		log.Printf("No .env file loaded: %s", err)
	}
	if err := initializers.ConnectDB(); err != nil {
		log.Fatalf("[CRITICAL] Failed to initialize database connection: %s", err)
	}
	if err := initializers.Migrate(); err != nil {
		log.Fatalf("[CRITICAL] Failed to run database migrations: %s", err)
	}
}

func main() {
	corrService, err := service.NewCorrespondenceService(initializers.DB)
	if err != nil {
		log.Fatalf("Failed to initialize correspondence service: %s", err)
	}

	corrController := controller.NewCorrespondenceController(corrService)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	// Global rate limiter for most routes
	router.Use(middleware.GlobalRateLimiter.Limit())

	// Registration and routing mutations get stricter limits
	router.POST("/correspondence",
		middleware.StrictRateLimiter.Limit(),
		corrController.CreateCorrespondence)
	router.POST("/correspondence/:id/minutes", corrController.AppendMinute)
	router.POST("/correspondence/:id/reassign",
		middleware.StrictRateLimiter.Limit(),
		corrController.Reassign)
	router.PATCH("/correspondence/:id/status", corrController.SetStatus)
	router.POST("/correspondence/:id/attachments",
		middleware.StrictRateLimiter.Limit(),
		corrController.UploadAttachment)

	router.POST("/correspondence/:id/distribution", corrController.AddDistribution)

	router.GET("/correspondence/:id", corrController.GetCorrespondence)
	router.GET("/correspondence/:id/audit", corrController.AuditTrail)
	router.GET("/correspondence/:id/distribution", corrController.ListDistribution)

	router.GET("/inbox", corrController.Inbox)
	router.GET("/archive", corrController.Archive)
	router.GET("/search", corrController.SearchCorrespondence)
	router.GET("/reports/sla", corrController.SlaSummary)

	router.POST("/delegations", corrController.UpsertDelegation)
	router.GET("/delegations", corrController.ListDelegations)
	router.DELETE("/delegations/:principal/:assistant", corrController.RevokeDelegation)

	// Healthcheck endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.Run(":8080")
}
