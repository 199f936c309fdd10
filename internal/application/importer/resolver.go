package importer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licencias-api/internal/domain/csvimport"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
	"github.com/jhoicas/Licencias-api/pkg/logger"
)

// Unidad de stock fija para artículos creados desde el centinela OTHER.
const otherItemStockUOM = "Stk"

// ResolvedLine línea agregada enriquecida con su artículo del catálogo.
type ResolvedLine struct {
	csvimport.AggregatedLine
	ItemCode    string
	ItemName    string
	Description string
}

// ItemResolver resuelve cada línea agregada contra el catálogo de artículos.
// Los fallos son por línea: se registran en el run y la línea se omite, las
// demás continúan.
type ItemResolver struct {
	items repository.ItemRepository
	log   *logger.Logger
	now   func() time.Time
}

// NewItemResolver construye el resolver.
func NewItemResolver(items repository.ItemRepository, log *logger.Logger) *ItemResolver {
	return &ItemResolver{items: items, log: log, now: time.Now}
}

// Resolve valida las líneas de un cliente contra el catálogo. Product Codes
// normales se buscan por número de artículo externo; el centinela OTHER
// reutiliza o crea un artículo a partir del nombre del producto.
func (r *ItemResolver) Resolve(companyID string, settings *entity.ImportSettings, customerRef string, lines []*csvimport.AggregatedLine, run *ImportRun) []*ResolvedLine {
	resolved := make([]*ResolvedLine, 0, len(lines))
	for _, line := range lines {
		var item *entity.Item
		if csvimport.IsOtherProduct(line.ProductCode) {
			item = r.resolveOther(companyID, settings, customerRef, line, run)
		} else {
			item = r.resolveCatalog(companyID, customerRef, line, run)
		}
		if item == nil {
			continue
		}
		// Segunda compuerta de seguridad: la agrupación ya descarta
		// cantidades no positivas, pero una línea así jamás debe llegar a
		// una factura.
		if !line.TotalQty.GreaterThan(decimal.Zero) {
			run.Errorf("Invalid quantity %s for product %s (Customer: %s)", line.TotalQty, line.ProductCode, customerRef)
			continue
		}
		resolved = append(resolved, &ResolvedLine{
			AggregatedLine: *line,
			ItemCode:       item.Code,
			ItemName:       item.Name,
			Description:    item.Description,
		})
	}
	return resolved
}

func (r *ItemResolver) resolveCatalog(companyID, customerRef string, line *csvimport.AggregatedLine, run *ImportRun) *entity.Item {
	item, err := r.items.GetByExternalArticleNumber(companyID, line.ProductCode)
	if err != nil {
		run.Errorf("Error looking up item for product code %s (Customer: %s): %v", line.ProductCode, customerRef, err)
		return nil
	}
	if item == nil {
		run.Errorf("Item not found for product code: %s (Customer: %s)", line.ProductCode, customerRef)
		return nil
	}
	return item
}

// resolveOther reutiliza o crea el artículo ad-hoc de una línea OTHER.
// El artículo creado lleva código = nombre = nombre del producto y número de
// artículo externo "OTHER" para que importaciones posteriores lo reconozcan.
func (r *ItemResolver) resolveOther(companyID string, settings *entity.ImportSettings, customerRef string, line *csvimport.AggregatedLine, run *ImportRun) *entity.Item {
	if settings.DefaultItemGroup == "" {
		run.Errorf("No default item group configured for OTHER products (Customer: %s)", customerRef)
		return nil
	}
	name := line.ProductName
	if name == "" {
		run.Errorf("Missing product name for OTHER product (Customer: %s)", customerRef)
		return nil
	}

	existing, err := r.items.GetByCode(companyID, name)
	if err != nil {
		run.Errorf("Error looking up item %s (Customer: %s): %v", name, customerRef, err)
		return nil
	}
	if existing != nil {
		run.CreatedItems = append(run.CreatedItems, name+" (already exists)")
		return existing
	}

	now := r.now()
	item := &entity.Item{
		ID:                    uuid.New().String(),
		CompanyID:             companyID,
		Code:                  name,
		Name:                  name,
		Description:           name,
		ExternalArticleNumber: csvimport.OtherProductCode,
		ItemGroup:             settings.DefaultItemGroup,
		StockUOM:              otherItemStockUOM,
		IsStockItem:           false,
		IsSalesItem:           true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := r.items.Create(item); err != nil {
		run.Errorf("Error creating item %s (Customer: %s): %v", name, customerRef, err)
		return nil
	}
	r.log.Info().Str("item", name).Str("customer_ref", customerRef).Msg("artículo OTHER creado desde el CSV")
	run.CreatedItems = append(run.CreatedItems, name)
	return item
}
