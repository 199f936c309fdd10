package importer

import (
	"github.com/jhoicas/Licencias-api/internal/application/dto"
	"github.com/jhoicas/Licencias-api/internal/domain"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
)

// ReportPDFGenerator puerto de renderizado PDF de un resultado almacenado.
type ReportPDFGenerator interface {
	GenerateResultPDF(result *entity.ImportResultEntry) ([]byte, error)
}

// SettingsUseCase lectura de la configuración del importador y de sus
// resultados almacenados.
type SettingsUseCase struct {
	settings repository.SettingsRepository
	pdf      ReportPDFGenerator
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(settings repository.SettingsRepository, pdf ReportPDFGenerator) *SettingsUseCase {
	return &SettingsUseCase{settings: settings, pdf: pdf}
}

// Get devuelve la configuración con su tabla de descuentos.
func (uc *SettingsUseCase) Get(id string) (*dto.SettingsResponse, error) {
	settings, err := uc.settings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrNotFound
	}
	resp := &dto.SettingsResponse{
		ID:                   settings.ID,
		CompanyID:            settings.CompanyID,
		TaxAccount:           settings.TaxAccount,
		DefaultItemGroup:     settings.DefaultItemGroup,
		SuppressZeroInvoices: settings.SuppressZeroInvoices,
		Discounts:            make([]dto.CustomerDiscountResponse, 0, len(settings.Discounts)),
	}
	for _, d := range settings.Discounts {
		resp.Discounts = append(resp.Discounts, dto.CustomerDiscountResponse{
			CustomerName:    d.CustomerName,
			DiscountPercent: d.DiscountPercent.String(),
		})
	}
	return resp, nil
}

// ListResults lista los resultados de importación más recientes.
func (uc *SettingsUseCase) ListResults(id string, limit, offset int) ([]*dto.ImportResultResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	results, err := uc.settings.ListResults(id, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ImportResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, &dto.ImportResultResponse{
			ID:      r.ID,
			Date:    r.Date,
			FileRef: r.FileRef,
			Report:  r.Report,
		})
	}
	return out, nil
}

// ResultPDF renderiza un resultado almacenado como PDF.
func (uc *SettingsUseCase) ResultPDF(settingsID, resultID string) ([]byte, error) {
	result, err := uc.settings.GetResult(settingsID, resultID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateResultPDF(result)
}
