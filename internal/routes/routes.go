package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/example/harvest/internal/catalog"
	"github.com/example/harvest/internal/config"
	"github.com/example/harvest/internal/handlers"
	"github.com/example/harvest/internal/middleware"
	"github.com/example/harvest/internal/services"
)

// Dependencies are the collaborators Register wires into handlers.
type Dependencies struct {
	Store    *catalog.Store
	Blobs    services.BlobStore
	Notifier handlers.EnquiryNotifier
}

// DefaultDependencies builds the production collaborators from cfg.
func DefaultDependencies(db *gorm.DB, cfg *config.Config) Dependencies {
	return Dependencies{
		Store:    catalog.NewStore(db),
		Blobs:    services.NewLocalBlobStore(cfg.UploadDir, cfg.UploadBaseURL),
		Notifier: services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat),
	}
}

// Register wires up all HTTP routes. The session guard runs in front of
// every route and static file so admin pages are covered too.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	siteHandler := handlers.NewSiteHandler(deps.Store)
	enquiryHandler := handlers.NewEnquiryHandler(db, deps.Notifier)
	uploadHandler := handlers.NewUploadHandler(deps.Blobs)
	healthHandler := handlers.NewHealthHandler(db)

	app.Use(middleware.RequestLogger())
	app.Use(middleware.SessionGuard(cfg))

	app.Get("/health", healthHandler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	// Admin routes, guarded by prefix
	admin := api.Group("/admin")
	admin.Get("/data", siteHandler.GetSiteData)
	admin.Post("/data", siteHandler.SaveSiteData)
	admin.Get("/enquiries", enquiryHandler.ListEnquiries)

	api.Post("/upload", uploadHandler.Upload)

	// Public routes
	api.Post("/enquiries", enquiryHandler.CreateEnquiry)
	api.Get("/site", siteHandler.GetSiteData)
	api.Get("/origins", siteHandler.ListOrigins)

	products := api.Group("/products")
	products.Get("/", siteHandler.ListProducts)
	products.Get("/featured", siteHandler.FeaturedProducts)
	products.Get("/:slug", siteHandler.GetProduct)

	// Static files
	if cfg.UploadBaseURL != "" && cfg.UploadDir != "" {
		app.Static(cfg.UploadBaseURL, cfg.UploadDir)
	}
	if cfg.PublicDir != "" {
		app.Static("/", cfg.PublicDir)
	}
}
