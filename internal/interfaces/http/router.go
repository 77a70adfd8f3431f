package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/auth"
	"github.com/jhoicas/gestao-estoque/internal/application/catalog"
	"github.com/jhoicas/gestao-estoque/internal/application/fetch"
	"github.com/jhoicas/gestao-estoque/internal/application/movement"
	"github.com/jhoicas/gestao-estoque/internal/application/report"
	"github.com/jhoicas/gestao-estoque/internal/application/user"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *catalog.UseCase
	MovementUC *movement.UseCase
	UserUC     *user.UseCase
	ReportUC   *report.UseCase
	Tracker    *fetch.Tracker
	Log        zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Tracker == nil {
		deps.Tracker = fetch.NewTracker()
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de sesión)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.Tracker, deps.Log)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productHandler.Create)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movements
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.Tracker, deps.Log)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", movementHandler.Create)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.Tracker, deps.Log)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/stock.pdf", reportHandler.StockPDF)
	reports.Get("/movements", reportHandler.Movements)
	reports.Get("/popular-products", reportHandler.PopularProducts)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.ReportUC, deps.Log)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}
