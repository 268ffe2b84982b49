package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	controller "mailcraft/controllers"
	"mailcraft/middleware"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (no authentication required)
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Get("/me", controller.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	templateController := controller.NewTemplateController(db, log.New(os.Stdout, "TEMPLATE: ", log.LstdFlags))
	campaignController := controller.NewCampaignController(db, log.New(os.Stdout, "CAMPAIGN: ", log.LstdFlags))
	prospectController := controller.NewProspectController(db, log.New(os.Stdout, "PROSPECT: ", log.LstdFlags))
	generationController := controller.NewGenerationController(db, logrus.StandardLogger())
	trackingController := controller.NewTrackingController(db, log.New(os.Stdout, "TRACKING: ", log.LstdFlags))

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Template catalog routes
	template := api.Group("/templates")
	template.Get("/", templateController.ListTemplates)
	template.Get("/:id", templateController.GetTemplate)
	template.Post("/select", templateController.SelectTemplate)
	template.Post("/:id/preview", templateController.PreviewTemplate)

	// Campaign routes
	campaign := api.Group("/campaigns")
	campaign.Post("/", campaignController.CreateCampaign)
	campaign.Get("/", campaignController.GetCampaigns)
	campaign.Get("/:id", campaignController.GetCampaign)
	campaign.Post("/:id/start", campaignController.StartCampaign)
	campaign.Post("/:id/stop", campaignController.StopCampaign)
	campaign.Get("/:id/emails", campaignController.GetCampaignEmails)

	// Prospect list routes
	prospectList := api.Group("/prospect-lists")
	prospectList.Post("/", prospectController.CreateProspectList)
	prospectList.Get("/", prospectController.GetProspectLists)
	prospectList.Get("/:id/prospects", prospectController.GetProspects)
	prospectList.Post("/:id/prospects", prospectController.AddProspect)
	prospectList.Delete("/:id/prospects/:prospectId", prospectController.DeleteProspect)

	// Generation routes with rate limiting, each call costs an LLM round trip
	generate := api.Group("/generate", middleware.GenerationRateLimiter())
	generate.Post("/email", generationController.GenerateEmail)
	generate.Post("/batch", generationController.GenerateBatch)

	// Public tracking endpoints referenced from sent emails
	app.Get("/track/open/:messageID/:token", trackingController.HandleOpenTracking)
	app.Get("/track/click/:messageID/:token", trackingController.HandleClickTracking)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, db)
	SetupAPIRoutes(app, db)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
