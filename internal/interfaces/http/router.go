package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Costbook-api/internal/application/auth"
	"github.com/jhoicas/Costbook-api/internal/application/usecase"
	"github.com/jhoicas/Costbook-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	StartedAt   time.Time

	MaterialUC   *usecase.MaterialUseCase
	CalculatorUC *usecase.CalculatorUseCase
	RecipeUC     *usecase.RecipeUseCase
	LedgerUC     *usecase.LedgerUseCase
	CategoryUC   *usecase.CategoryUseCase
	BackupUC     *usecase.BackupUseCase
	AuthUC       *auth.AuthUseCase

	// Sin JWTSecret o con AuthUC deshabilitado las rutas quedan abiertas (uso local).
	JWTSecret string

	// Metrics se expone en /metrics si no es nil.
	Metrics http.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.ServiceName, deps.StartedAt)
	app.Get("/health", health.Health)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas solo con login configurado
	var protected fiber.Router = api
	if deps.AuthUC != nil && deps.AuthUC.Enabled() && deps.JWTSecret != "" {
		protected = api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleOwner))
	}

	// Materiales
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Post("/", materialHandler.Create)
	materials.Delete("/", materialHandler.Clear)
	materials.Post("/bulk-delete", materialHandler.BulkDelete)
	materials.Get("/export.xlsx", materialHandler.Export)
	materials.Post("/import.xlsx", materialHandler.Import)
	materials.Put("/:name", materialHandler.Update)
	materials.Delete("/:name", materialHandler.Delete)
	protected.Put("/material-order", materialHandler.Reorder)

	// Calculadora y recetas
	recipeHandler := NewRecipeHandler(deps.CalculatorUC, deps.RecipeUC)
	calculator := protected.Group("/calculator")
	calculator.Post("/quote", recipeHandler.Quote)
	calculator.Post("/save", recipeHandler.Save)

	recipes := protected.Group("/recipes")
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:name", recipeHandler.Get)
	recipes.Put("/:name", recipeHandler.Rename)
	recipes.Delete("/:name", recipeHandler.Delete)
	recipes.Get("/:name/calculator", recipeHandler.Calculator)
	recipes.Post("/:name/refresh", recipeHandler.Refresh)
	recipes.Get("/:name/pdf", recipeHandler.PDF)

	// Libro de ingresos y gastos
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledger := protected.Group("/ledger")
	ledger.Get("/", ledgerHandler.List)
	ledger.Post("/", ledgerHandler.Create)
	ledger.Delete("/", ledgerHandler.Clear)
	ledger.Get("/summary", ledgerHandler.Summary)
	ledger.Get("/by-category", ledgerHandler.ByCategory)
	ledger.Get("/by-buyer", ledgerHandler.ByBuyer)
	ledger.Get("/by-month", ledgerHandler.ByMonth)
	ledger.Get("/suggest-category", ledgerHandler.SuggestCategory)
	ledger.Get("/export.xlsx", ledgerHandler.Export)
	ledger.Get("/report.pdf", ledgerHandler.Report)
	ledger.Put("/:id", ledgerHandler.Update)
	ledger.Delete("/:id", ledgerHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Delete("/:name", categoryHandler.Delete)

	// Respaldo
	backupHandler := NewBackupHandler(deps.BackupUC)
	protected.Get("/backup", backupHandler.Export)
	protected.Post("/backup", backupHandler.Import)
	protected.Get("/session/warnings", backupHandler.Warnings)
	protected.Get("/session/sync", backupHandler.SyncStatus)
	protected.Post("/session/sync", backupHandler.Resync)
	protected.Get("/session/revisions/:collection", backupHandler.Revisions)
}
