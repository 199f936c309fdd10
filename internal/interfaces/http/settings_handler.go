package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Licencias-api/internal/application/dto"
	"github.com/jhoicas/Licencias-api/internal/application/importer"
	"github.com/jhoicas/Licencias-api/internal/domain"
)

// SettingsHandler expone la configuración del importador y los resultados de
// importaciones pasadas (protegido).
type SettingsHandler struct {
	uc *importer.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *importer.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Consultar configuración del importador
// @Tags         import
// @Produce      json
// @Param        id  path  string  true  "ID de la configuración"
// @Success      200  {object}  dto.SettingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/import-settings/{id} [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.uc.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "configuración no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListResults godoc
// @Summary      Listar resultados de importaciones
// @Tags         import
// @Produce      json
// @Param        id      path   string  true   "ID de la configuración"
// @Param        limit   query  int     false  "máximo de filas (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.ImportResultResponse
// @Security     BearerAuth
// @Router       /api/import-settings/{id}/results [get]
func (h *SettingsHandler) ListResults(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListResults(id, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// ResultPDF godoc
// @Summary      Descargar el reporte de un resultado en PDF
// @Tags         import
// @Produce      application/pdf
// @Param        id        path  string  true  "ID de la configuración"
// @Param        resultId  path  string  true  "ID del resultado"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/import-settings/{id}/results/{resultId}/pdf [get]
func (h *SettingsHandler) ResultPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	resultID := c.Params("resultId")
	if id == "" || resultID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id y resultId requeridos"})
	}
	pdfBytes, err := h.uc.ResultPDF(id, resultID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resultado no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="import-report-`+resultID+`.pdf"`)
	return c.Send(pdfBytes)
}
