// Package routes defines the API routing configuration. It wires the
// repositories, services and handlers together and applies the auth
// middleware per route group.
package routes

import (
	"estates/internal/config"
	"estates/internal/handlers"
	"estates/internal/middleware"
	"estates/internal/models"
	"estates/internal/repositories"
	"estates/internal/services/auth"
	"estates/internal/services/billing"
	"estates/internal/services/dashboard"
	"estates/internal/services/directory"
	"estates/internal/services/kyc"
	"estates/internal/services/mailer"
	"estates/internal/services/maintenance"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, settings *config.Settings) {
	// Repositories
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	tenantRepo := repositories.NewTenantRepository(repositories.DB, repositories.CacheService)
	propertyRepo := repositories.NewPropertyRepository(repositories.DB)
	unitRepo := repositories.NewUnitRepository(repositories.DB)
	leaseRepo := repositories.NewLeaseRepository(repositories.DB)
	maintRepo := repositories.NewMaintenanceRepository(repositories.DB)
	auditRepo := repositories.NewAuditRepository(repositories.DB)
	statsRepo := repositories.NewStatsRepository(repositories.DB)

	// Services
	mailService := mailer.NewService(settings)
	authService := auth.NewService(userRepo, mailService, settings)
	kycService := kyc.NewService(tenantRepo, auditRepo, settings)
	billingService := billing.NewService(leaseRepo)
	directoryService := directory.NewService(propertyRepo, unitRepo, leaseRepo, tenantRepo)
	maintService := maintenance.NewService(maintRepo, propertyRepo, unitRepo, tenantRepo)
	dashboardService := dashboard.NewService(statsRepo, propertyRepo, repositories.CacheService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, settings)
	tenantHandler := handlers.NewTenantHandler(tenantRepo)
	propertyHandler := handlers.NewPropertyHandler(directoryService)
	unitHandler := handlers.NewUnitHandler(directoryService)
	leaseHandler := handlers.NewLeaseHandler(directoryService, billingService)
	kycHandler := handlers.NewKycHandler(kycService)
	maintHandler := handlers.NewMaintenanceHandler(maintService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	manageOnly := authMiddleware.RequireRoles(models.RoleOwner, models.RoleManager)
	staffOnly := authMiddleware.RequireRoles(models.RoleOwner, models.RoleManager, models.RoleCaretaker)

	// The flag opens property list/create/get to anonymous callers in demo
	// deployments; the user is still resolved when a token is present. All
	// other directory routes require authentication regardless of the flag.
	propertyAuth := authMiddleware.Handler
	if settings.AllowOpenPropertyMgmt {
		propertyAuth = authMiddleware.OptionalHandler
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": settings.ProjectName,
			"docs":    "/health",
		})
	})
	app.Get("/health", handlers.HealthCheck)

	// Auth
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify-email", authHandler.VerifyEmail)
	authGroup.Post("/resend-verification", authHandler.ResendVerification)

	// Tenants
	tenants := app.Group("/tenants", authMiddleware.Handler)
	tenants.Get("/", tenantHandler.List)
	tenants.Post("/", manageOnly, tenantHandler.Create)
	tenants.Get("/:id", tenantHandler.Get)
	tenants.Patch("/:id", manageOnly, tenantHandler.Update)

	// Properties and units
	properties := app.Group("/properties", propertyAuth)
	properties.Get("/", propertyHandler.List)
	if settings.AllowOpenPropertyMgmt {
		properties.Post("/", propertyHandler.Create)
	} else {
		properties.Post("/", manageOnly, propertyHandler.Create)
	}
	properties.Get("/:id", propertyHandler.Get)
	properties.Patch("/:id", manageOnly, propertyHandler.Update)
	app.Get("/properties/:id/units", authMiddleware.Handler, propertyHandler.ListUnits)

	units := app.Group("/units", authMiddleware.Handler, manageOnly)
	units.Post("/", unitHandler.Create)
	units.Patch("/:id", unitHandler.Update)

	// Leases and billing
	leases := app.Group("/leases", authMiddleware.Handler)
	leases.Get("/", leaseHandler.List)
	leases.Post("/", manageOnly, leaseHandler.Create)
	leases.Post("/payments", staffOnly, leaseHandler.RecordPayment)
	leases.Get("/:id", leaseHandler.Get)
	leases.Patch("/:id", manageOnly, leaseHandler.Update)
	leases.Post("/:id/invoices", manageOnly, leaseHandler.CreateInvoice)

	// KYC workflow
	kycGroup := app.Group("/kyc", authMiddleware.Handler)
	kycGroup.Post("/invite", manageOnly, kycHandler.Invite)
	kycGroup.Post("/session", staffOnly, kycHandler.OpenSession)
	kycGroup.Post("/documents", staffOnly, kycHandler.SubmitDocument)
	kycGroup.Post("/decision", manageOnly, kycHandler.RecordDecision)

	// Maintenance
	maint := app.Group("/maintenance", authMiddleware.Handler)
	maint.Get("/", maintHandler.List)
	maint.Post("/", staffOnly, maintHandler.Create)
	maint.Patch("/:id", staffOnly, maintHandler.Update)

	// Dashboard
	app.Get("/dashboard/summary", authMiddleware.Handler, dashboardHandler.Summary)
}
