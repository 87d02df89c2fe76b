package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/willowgate/school-api/config"
	"github.com/willowgate/school-api/database"
	"github.com/willowgate/school-api/handlers"
	application_handlers "github.com/willowgate/school-api/handlers/application"
	auth_handlers "github.com/willowgate/school-api/handlers/auth"
	contact_handlers "github.com/willowgate/school-api/handlers/contact"
	gallery_handlers "github.com/willowgate/school-api/handlers/gallery"
	message_handlers "github.com/willowgate/school-api/handlers/message"
	newsletter_handlers "github.com/willowgate/school-api/handlers/newsletter"
	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/services"
	"github.com/willowgate/school-api/services/media"
	"github.com/willowgate/school-api/utils/auth"
	"github.com/willowgate/school-api/utils/cache"
	"github.com/willowgate/school-api/utils/middleware"
	"github.com/willowgate/school-api/utils/validation"
)

// SetupRoutes wires every endpoint onto the fiber app
func SetupRoutes(app *fiber.App, store database.Storage, cfg *config.Config, redisCache *cache.RedisCache) {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	tokenManager := auth.NewTokenManager(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Expiry: cfg.JWTExpiry,
		Issuer: cfg.JWTIssuer,
	})

	validator := validation.NewValidator()

	authService := services.NewAuthService(db, cfg)
	applicationService := services.NewApplicationService(db, cfg)
	messageService := services.NewMessageService(db)
	contactService := services.NewContactService(db)
	newsletterService := services.NewNewsletterService(db)
	emailService := services.NewEmailService(cfg)

	var mediaClient *media.Client
	if cfg.MediaBucket != "" {
		var err error
		mediaClient, err = media.NewClient(cfg)
		if err != nil {
			log.Printf("Warning: media host unavailable, gallery uploads disabled: %v", err)
		}
	} else {
		log.Println("Warning: MEDIA_BUCKET not set, gallery uploads disabled")
	}
	galleryService := services.NewGalleryService(db, mediaClient)

	authMiddleware := middleware.NewAuthMiddleware(tokenManager, authService)
	rateLimiter := middleware.NewRateLimiter(redisCache)

	authHandler := auth_handlers.NewAuthHandler(authService, tokenManager, validator)
	applicationHandler := application_handlers.NewApplicationHandler(applicationService, emailService, validator)
	messageHandler := message_handlers.NewMessageHandler(messageService, emailService, validator)
	contactHandler := contact_handlers.NewContactHandler(contactService, emailService, validator)
	newsletterHandler := newsletter_handlers.NewNewsletterHandler(newsletterService, emailService, validator)
	galleryHandler := gallery_handlers.NewGalleryHandler(galleryService, validator)

	middleware.SetupSecurity(app, cfg)
	app.Use(middleware.SanitizeBody())

	// Health check endpoint (public)
	app.Get("/health", handlers.HealthCheck(store))

	api := app.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", rateLimiter.Limit("login", cfg.LoginRateLimit), authHandler.Login)
	authGroup.Post("/verify-token", authMiddleware.Required(), authHandler.VerifyToken)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/profile", authMiddleware.Required(), authHandler.GetProfile)
	authGroup.Put("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Admissions applications
	applications := api.Group("/applications")
	applications.Post("/", rateLimiter.Limit("applications", cfg.ApplicationRateLimit), applicationHandler.Create) // Public: submit application
	applications.Get("/", authMiddleware.Required(), applicationHandler.List)
	applications.Get("/stats", authMiddleware.Required(), applicationHandler.Stats)
	applications.Get("/:id", authMiddleware.Required(), applicationHandler.Get)
	applications.Put("/:id/status", authMiddleware.Required(), applicationHandler.UpdateStatus)
	applications.Delete("/:id", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleSuperAdmin), applicationHandler.Delete)

	// Contact messages
	messages := api.Group("/messages")
	messages.Post("/", rateLimiter.Limit("messages", cfg.MessageRateLimit), messageHandler.Create) // Public: send message
	messages.Get("/", authMiddleware.Required(), messageHandler.List)
	messages.Get("/stats", authMiddleware.Required(), messageHandler.Stats)
	messages.Get("/:id", authMiddleware.Required(), messageHandler.Get)
	messages.Put("/:id/status", authMiddleware.Required(), messageHandler.UpdateStatus)
	messages.Put("/:id/respond", authMiddleware.Required(), messageHandler.Respond)
	messages.Delete("/:id", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleSuperAdmin), messageHandler.Delete)

	// General and tour inquiries
	contacts := api.Group("/contact")
	contacts.Post("/", rateLimiter.Limit("contact", cfg.ContactRateLimit), contactHandler.Create)         // Public: contact form
	contacts.Post("/tour", rateLimiter.Limit("contact", cfg.ContactRateLimit), contactHandler.CreateTour) // Public: tour request
	contacts.Get("/", authMiddleware.Required(), contactHandler.List)
	contacts.Get("/stats", authMiddleware.Required(), contactHandler.Stats)
	contacts.Get("/:id", authMiddleware.Required(), contactHandler.Get)
	contacts.Put("/:id/status", authMiddleware.Required(), contactHandler.UpdateStatus)
	contacts.Delete("/:id", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleSuperAdmin), contactHandler.Delete)

	// Newsletter
	newsletter := api.Group("/newsletter")
	newsletter.Post("/subscribe", rateLimiter.Limit("newsletter", cfg.NewsletterRateLimit), newsletterHandler.Subscribe)     // Public
	newsletter.Post("/unsubscribe", rateLimiter.Limit("newsletter", cfg.NewsletterRateLimit), newsletterHandler.Unsubscribe) // Public
	newsletter.Put("/preferences", rateLimiter.Limit("newsletter", cfg.NewsletterRateLimit), newsletterHandler.UpdatePreferences)
	newsletter.Get("/subscribers", authMiddleware.Required(), newsletterHandler.List)
	newsletter.Get("/stats", authMiddleware.Required(), newsletterHandler.Stats)

	// Gallery. Reads are public; an optional token lets admins see
	// inactive items in the same listing.
	gallery := api.Group("/gallery")
	gallery.Get("/", authMiddleware.Optional(), galleryHandler.List)
	gallery.Get("/:id", galleryHandler.Get)
	gallery.Post("/:id/download", galleryHandler.Download)
	gallery.Post("/", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleAdmin), galleryHandler.Upload)
	gallery.Put("/:id", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleAdmin), galleryHandler.Update)
	gallery.Delete("/:id", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleAdmin), galleryHandler.Delete)
}
