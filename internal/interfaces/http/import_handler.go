package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Licencias-api/internal/application/dto"
	"github.com/jhoicas/Licencias-api/internal/application/importer"
	"github.com/jhoicas/Licencias-api/internal/domain"
)

// ImportHandler maneja la carga e importación de CSV de licencias (protegido).
type ImportHandler struct {
	uc *importer.ImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// ProcessCSV godoc
// @Summary      Importar CSV de licencias
// @Description  Procesa el CSV del distribuidor y genera facturas de venta por cliente.
// @Tags         import
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la configuración de importación"
// @Param        body  body  dto.ImportRequest  true  "file_name y file_content (base64 o texto plano)"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/import-settings/{id}/import [post]
func (h *ImportHandler) ProcessCSV(c *fiber.Ctx) error {
	settingsID := c.Params("id")
	if settingsID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FileName == "" || in.FileContent == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "file_name y file_content son requeridos"})
	}

	resp, err := h.uc.ProcessCSV(c.Context(), settingsID, in.FileContent, in.FileName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "configuración de importación no encontrada"})
		}
		// Fallo fatal: toda la importación se degrada a error.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ImportResponse{
			Status:  "error",
			Message: "Import failed: " + err.Error(),
		})
	}
	return c.JSON(resp)
}
