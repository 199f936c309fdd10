package importer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Licencias-api/internal/application/dto"
	"github.com/jhoicas/Licencias-api/internal/domain"
	"github.com/jhoicas/Licencias-api/internal/domain/csvimport"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
	"github.com/jhoicas/Licencias-api/pkg/logger"
)

// Carpeta del almacén de archivos donde se archivan los CSV crudos.
const importFolderName = "Hornetsecurity CSV Imports"

// ImportUseCase orquesta una importación completa: decodificar → archivar el
// CSV crudo → agrupar → resolver artículos y armar facturas por cliente →
// reporte de conciliación → anexar historial y resultado a la configuración.
//
// Una importación procesa un archivo de principio a fin en la misma
// petición; no hay cancelación ni coordinación entre importaciones
// concurrentes sobre la misma configuración.
type ImportUseCase struct {
	settings  repository.SettingsRepository
	customers repository.CustomerRepository
	companies repository.CompanyRepository
	files     repository.FileRepository
	resolver  *ItemResolver
	assembler *InvoiceAssembler
	log       *logger.Logger
	now       func() time.Time
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(
	settings repository.SettingsRepository,
	customers repository.CustomerRepository,
	companies repository.CompanyRepository,
	files repository.FileRepository,
	resolver *ItemResolver,
	assembler *InvoiceAssembler,
	log *logger.Logger,
) *ImportUseCase {
	return &ImportUseCase{
		settings:  settings,
		customers: customers,
		companies: companies,
		files:     files,
		resolver:  resolver,
		assembler: assembler,
		log:       log,
		now:       time.Now,
	}
}

// ProcessCSV ejecuta la importación y devuelve el contrato de salida.
// Los errores por fila y por cliente quedan en el reporte y no abortan; un
// error devuelto aquí es fatal (configuración inexistente, CSV ilegible,
// persistencia del resultado) y degrada toda la operación.
func (uc *ImportUseCase) ProcessCSV(ctx context.Context, settingsID, fileContent, fileName string) (*dto.ImportResponse, error) {
	settings, err := uc.settings.GetByID(settingsID)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración %s: %w", settingsID, err)
	}
	if settings == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companies.GetByID(settings.CompanyID)
	if err != nil || company == nil {
		return nil, fmt.Errorf("cargar empresa de la configuración %s: %w", settingsID, domain.ErrNotFound)
	}

	raw := decodeContent(fileContent)
	storedRef := uc.archiveFile(raw, fileName)

	group, err := csvimport.ParseAndGroup(strings.NewReader(toUTF8(raw)))
	if err != nil {
		return nil, err
	}

	run := &ImportRun{
		LicensesBefore: group.LicensesBefore,
		Errors:         group.Errors,
	}

	for _, customerRef := range group.CustomerOrder {
		uc.processCustomer(company, settings, customerRef, group.ByCustomer[customerRef], run)
	}

	report := csvimport.BuildReport(csvimport.ReportInput{
		LicensesBefore:      run.LicensesBefore,
		LicensesAfter:       run.LicensesAfter,
		InvoicesCreated:     run.InvoicesCreated,
		SuccessfulCustomers: run.SuccessfulCustomers,
		CreatedItems:        run.CreatedItems,
		Errors:              run.Errors,
	})

	if err := uc.appendToSettings(settings.ID, storedRef, report); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("settings_id", settingsID).
		Int("invoices_created", run.InvoicesCreated).
		Int("errors", len(run.Errors)).
		Msg("importación de CSV finalizada")

	return &dto.ImportResponse{
		Status:          "success",
		Message:         fmt.Sprintf("Import completed. %d invoices created successfully. %d errors logged.", run.InvoicesCreated, len(run.Errors)),
		InvoicesCreated: run.InvoicesCreated,
		ErrorsCount:     len(run.Errors),
		Report:          report,
	}, nil
}

// processCustomer lleva a un cliente por su máquina de estados: pending →
// items_resolved → saved, o rejected (cliente inexistente, sin artículos
// válidos, total cero suprimido). Cada cliente es un bloque protegido: su
// fallo no toca a los demás.
func (uc *ImportUseCase) processCustomer(company *entity.Company, settings *entity.ImportSettings, customerRef string, lines []*csvimport.AggregatedLine, run *ImportRun) {
	state := statePending

	customer, err := uc.customers.GetByReferenceNumber(company.ID, customerRef)
	if err != nil {
		run.Errorf("Error processing customer %s: %v", customerRef, err)
		return
	}
	if customer == nil {
		run.Errorf("Customer not found for reference number: %s", customerRef)
		return
	}

	resolved := uc.resolver.Resolve(company.ID, settings, customerRef, lines, run)
	if len(resolved) == 0 {
		run.Errorf("No valid items found for customer %s", customerRef)
		return
	}
	uc.log.Debug().Str("customer_ref", customerRef).Str("state", stateItemsResolved).Int("lines", len(resolved)).Msg("artículos resueltos")

	inv := uc.assembler.Assemble(customer, company, settings, resolved, run)
	if inv == nil {
		state = stateRejected
	} else {
		state = stateSaved
		run.InvoicesCreated++
		run.SuccessfulCustomers = append(run.SuccessfulCustomers, customerRef)
		for _, item := range inv.Items {
			run.LicensesAfter = run.LicensesAfter.Add(item.Qty)
		}
	}
	uc.log.Debug().Str("customer_ref", customerRef).Str("state", state).Msg("cliente procesado")
}

// archiveFile guarda el CSV crudo bajo la carpeta de la aplicación con un
// nombre único prefijado por timestamp. Si el archivado falla se registra y
// se devuelve el nombre original: nunca impide la importación.
func (uc *ImportUseCase) archiveFile(raw []byte, fileName string) string {
	folderID, err := uc.files.EnsureFolder(importFolderName)
	if err != nil {
		uc.log.Error().Err(err).Str("folder", importFolderName).Msg("no se pudo crear la carpeta de importaciones")
		return fileName
	}
	stored := &entity.StoredFile{
		ID:        uuid.New().String(),
		FileName:  uc.now().Format("20060102_150405") + "_" + fileName,
		Folder:    folderID,
		Content:   raw,
		IsPrivate: false,
		CreatedAt: uc.now(),
	}
	if err := uc.files.Save(stored); err != nil {
		uc.log.Error().Err(err).Str("file", fileName).Msg("no se pudo archivar el CSV")
		return fileName
	}
	return stored.FileName
}

func (uc *ImportUseCase) appendToSettings(settingsID, fileRef, report string) error {
	now := uc.now()
	history := &entity.ImportHistoryEntry{
		ID:         uuid.New().String(),
		SettingsID: settingsID,
		ImportDate: now,
		FileRef:    fileRef,
	}
	if err := uc.settings.AddHistory(history); err != nil {
		return fmt.Errorf("anexar historial: %w", err)
	}
	result := &entity.ImportResultEntry{
		ID:         uuid.New().String(),
		SettingsID: settingsID,
		Date:       now,
		FileRef:    fileRef,
		Report:     report,
	}
	if err := uc.settings.AddResult(result); err != nil {
		return fmt.Errorf("anexar resultado: %w", err)
	}
	return nil
}

// decodeContent intenta base64 primero; si falla, el contenido ya es texto.
// El separador ';' no pertenece al alfabeto base64, así que un CSV plano
// nunca decodifica por accidente.
func decodeContent(content string) []byte {
	if raw, err := base64.StdEncoding.DecodeString(content); err == nil {
		return raw
	}
	return []byte(content)
}

// toUTF8 devuelve el contenido como UTF-8. Los exports del distribuidor a
// veces llegan en Windows-1252 (umlauts alemanes); se reencodan.
func toUTF8(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
