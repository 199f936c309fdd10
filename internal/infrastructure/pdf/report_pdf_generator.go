// Package pdf genera la versión imprimible del reporte de conciliación de
// una importación de licencias.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha + archivo importado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUERPO: reporte línea a línea (resumen, clientes,          │
//	│          artículos creados, errores)                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Licencias-api/internal/application/importer"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorError   = &props.Color{Red: 160, Green: 30, Blue: 30}
)

var _ importer.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa importer.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateResultPDF genera el PDF del resultado y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateResultPDF(result *entity.ImportResultEntry) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Importbericht", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(result))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, r := range bodyRows(result.Report) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha + archivo importado (der).
func headerRow(result *entity.ImportResultEntry) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Importbericht Lizenzabrechnung", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(result.Date.Format("02.01.2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(result.FileRef, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// bodyRows: una fila por línea del reporte. Las secciones ("Neu angelegte
// Artikel", "Fehler") van en negrita; los errores en rojo.
func bodyRows(report string) []core.Row {
	lines := strings.Split(report, "\n")
	rows := make([]core.Row, 0, len(lines))
	inErrors := false
	for _, l := range lines {
		l = strings.TrimRight(l, "\r")
		if l == "" {
			rows = append(rows, row.New(3))
			continue
		}
		p := props.Text{Size: 9, Top: 1}
		switch {
		case strings.HasPrefix(l, "Neu angelegte Artikel"):
			p.Style = fontstyle.Bold
			inErrors = false
		case strings.HasPrefix(l, "Fehler"):
			p.Style = fontstyle.Bold
			p.Color = colorError
			inErrors = true
		case strings.HasPrefix(l, "- ") && inErrors:
			p.Color = colorError
			p.Left = 3
		case strings.HasPrefix(l, "- "):
			p.Left = 3
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(l, p))))
	}
	return rows
}
