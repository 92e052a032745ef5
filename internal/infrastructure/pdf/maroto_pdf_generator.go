// Package pdf implementa la generación del dossier PDF de una solicitud de
// crédito: resumen para el comité de lenders.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Silo + ID de solicitud  │  Estado + Etapa actual   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: Nombre / Email / Teléfono                     │
//	│  CRÉDITO: Monto / Propósito / Producto de lender            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | De etapa | A etapa | Actor | Nota           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de uso interno                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/werb210/staff-portal-api/internal/application/usecase"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.SummaryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ usecase.SummaryPDFGenerator = (*MarotoPDFGenerator)(nil)

// GenerateSummaryPDF genera el dossier y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSummaryPDF(
	_ context.Context,
	app *entity.Application,
	product *entity.LenderProduct,
	assignment *entity.StageAssignment,
	history []*entity.TransitionRecord,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Solicitud de Crédito", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(app, assignment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(solicitanteRow(app))
	m.AddRows(creditoRow(app, product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Historial del pipeline
	m.AddRows(historyTitleRow())
	m.AddRows(historyHeaderRow())
	for _, r := range historyRows(history) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: silo + ID de solicitud (izq) y estado + etapa actual (der).
func headerRow(app *entity.Application, assignment *entity.StageAssignment) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("SOLICITUD DE CRÉDITO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Silo: %s   |   ID: %s", app.Silo, app.ID), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+app.Status, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Etapa: "+assignment.Stage.String(), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Generado: "+app.UpdatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// solicitanteRow: datos del solicitante.
func solicitanteRow(app *entity.Application) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(app.ApplicantName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				app.ApplicantEmail,
				nonEmpty(app.ApplicantPhone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// creditoRow: monto, propósito y producto de lender.
func creditoRow(app *entity.Application, product *entity.LenderProduct) core.Row {
	productLine := "Producto: —"
	if product != nil {
		productLine = fmt.Sprintf("Producto: %s — %s (tasa %s%%)",
			product.LenderName, product.Name, product.RatePct.StringFixed(2))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CRÉDITO SOLICITADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Monto: $%s   |   Propósito: %s",
				app.LoanAmount.StringFixed(2), app.LoanPurpose,
			), props.Text{Size: 9, Top: 6}),
			text.New(productLine, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func historyTitleRow() core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New("HISTORIAL DEL PIPELINE", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
}

// historyHeaderRow: cabecera de la tabla de transiciones.
func historyHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("De etapa", 2, align.Left),
		h("A etapa", 2, align.Left),
		h("Actor", 2, align.Left),
		h("Nota", 4, align.Left),
	)
}

// historyRows: una fila por transición, de más antigua a más reciente.
func historyRows(history []*entity.TransitionRecord) []core.Row {
	if len(history) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{
				Size: 8, Top: 1, Left: 1, Color: colorGray,
			}),
		))}
	}
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(history))
	for _, rec := range history {
		result = append(result, row.New(7).Add(
			cell(rec.CreatedAt.Format("02/01/2006 15:04"), 2),
			cell(rec.FromStage.String(), 2),
			cell(rec.ToStage.String(), 2),
			cell(nonEmpty(rec.Actor, "—"), 2),
			cell(nonEmpty(rec.Note, "—"), 4),
		))
	}
	return result
}

// footerRow: leyenda de uso interno.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento de uso interno del staff. El historial refleja los movimientos "+
				"registrados en el pipeline al momento de la generación.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
