package routes

import (
	"libraryhub/internal/adapters/http/handlers"
	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/config"
	"libraryhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *services.Registry, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(svc.Auth)
	bookHandler := handlers.NewBookHandler(svc.Books)
	authorHandler := handlers.NewAuthorHandler(svc.Authors)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	memberHandler := handlers.NewMemberHandler(svc.Members)
	borrowHandler := handlers.NewBorrowHandler(svc.Borrows)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(cfg)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, auth)
	setupBookRoutes(apiV1.Group("/books"), bookHandler, auth)
	setupAuthorRoutes(apiV1.Group("/authors"), authorHandler, auth)
	setupCategoryRoutes(apiV1.Group("/categories"), categoryHandler, auth)

	// Member data, the ledger and reports are staff-only
	setupMemberRoutes(apiV1.Group("/members", auth), memberHandler)
	setupBorrowRoutes(apiV1.Group("/borrowed-books", auth), borrowHandler)
	setupDashboardRoutes(apiV1.Group("/dashboard", auth), dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler) {
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Get("/me", auth, handler.Me)
}

// setupBookRoutes configures book routes; reads are public
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler, auth fiber.Handler) {
	router.Get("/", handler.ListBooks)
	router.Get("/isbn/:isbn", handler.GetBookByISBN)
	router.Get("/:id", handler.GetBook)

	router.Post("/", auth, handler.CreateBook)
	router.Put("/:id", auth, handler.UpdateBook)
	router.Delete("/:id", auth, handler.DeleteBook)
}

// setupAuthorRoutes configures author routes; reads are public
func setupAuthorRoutes(router fiber.Router, handler *handlers.AuthorHandler, auth fiber.Handler) {
	router.Get("/", middleware.CatalogCache(), handler.List)
	router.Get("/search", handler.Search)
	router.Get("/:id", middleware.CatalogCache(), handler.Get)
	router.Get("/:id/books", handler.ListBooks)

	router.Post("/", auth, handler.Create)
	router.Put("/:id", auth, handler.Update)
	router.Delete("/:id", auth, middleware.AdminOnly(), handler.Delete)
}

// setupCategoryRoutes configures category routes; reads are public
func setupCategoryRoutes(router fiber.Router, handler *handlers.CategoryHandler, auth fiber.Handler) {
	router.Get("/", middleware.CatalogCache(), handler.List)
	router.Get("/search", handler.Search)
	router.Get("/:id", middleware.CatalogCache(), handler.Get)
	router.Get("/:id/books", handler.ListBooks)

	router.Post("/", auth, handler.Create)
	router.Put("/:id", auth, handler.Update)
	router.Delete("/:id", auth, handler.Delete)
}

// setupMemberRoutes configures member routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Get("/", handler.ListMembers)
	router.Get("/search", handler.SearchMembers)
	router.Get("/:id", handler.GetMember)
	router.Post("/", handler.CreateMember)
	router.Put("/:id", handler.UpdateMember)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteMember)
}

// setupBorrowRoutes configures borrow ledger routes
func setupBorrowRoutes(router fiber.Router, handler *handlers.BorrowHandler) {
	router.Get("/", handler.ListBorrows)
	router.Post("/borrow", handler.Borrow)
	router.Get("/due-before", handler.ListDueBefore)
	router.Get("/member/:memberId", handler.ListForMember)
	router.Get("/book/:bookId", handler.ListForBook)
	router.Get("/:id", handler.GetBorrow)
	router.Post("/:id/return", handler.Return)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/overview", handler.GetOverview)
	router.Get("/books/popular", handler.GetPopularBooks)
	router.Get("/books/by-category", handler.GetBooksByCategory)
	router.Get("/members/top-borrowers", handler.GetTopBorrowers)
	router.Get("/borrows/overdue", handler.GetOverdueBorrows)
	router.Get("/borrows/recent", handler.GetRecentBorrows)
}
