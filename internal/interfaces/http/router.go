package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Licencias-api/internal/application/auth"
	"github.com/jhoicas/Licencias-api/internal/application/importer"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ImportUC   *importer.ImportUseCase
	SettingsUC *importer.SettingsUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Importador de CSV de licencias (protegido; admin y contador)
	settings := protected.Group("/import-settings", RequireRole(entity.RoleAdmin, entity.RoleContador))
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	importHandler := NewImportHandler(deps.ImportUC)
	settings.Get("/:id", settingsHandler.Get)
	settings.Get("/:id/results", settingsHandler.ListResults)
	settings.Get("/:id/results/:resultId/pdf", settingsHandler.ResultPDF)
	settings.Post("/:id/import", importHandler.ProcessCSV)
}
