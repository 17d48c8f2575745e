// Package pdf implementa la generación del reporte PDF de una inspección de
// calidad enviada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de plantilla + versión  │  Resultado + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: objetivo inspeccionado / inspector / estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por cada sección del esquema:                               │
//	│    TÍTULO DE SECCIÓN                                         │
//	│    TABLA: Campo | Respuesta | Criticidad                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ANOTACIONES IA: campo + resumen + confianza                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
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

	"github.com/agrovida/agroops-api/internal/application/ports"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/forms"
)

var _ ports.InspectionReportGenerator = (*InspectionReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32} // verde agro
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorFailed  = &props.Color{Red: 183, Green: 28, Blue: 28}
	colorFlagged = &props.Color{Red: 230, Green: 126, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// InspectionReportGenerator implementa ports.InspectionReportGenerator usando Maroto v2.
type InspectionReportGenerator struct{}

// NewInspectionReportGenerator construye el generador.
func NewInspectionReportGenerator() *InspectionReportGenerator {
	return &InspectionReportGenerator{}
}

// Generate genera el PDF de la inspección y devuelve sus bytes.
// La inspección debe estar enviada; el caller valida el estado.
func (g *InspectionReportGenerator) Generate(
	inspection *entity.QualityInspection,
	template *entity.QualityTemplate,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inspección de Calidad", true).
		WithAuthor(template.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inspection, template))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metadataRow(inspection))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Una tabla por sección del esquema
	for _, sec := range template.Schema.Sections {
		m.AddRows(sectionTitleRow(sec.Title))
		m.AddRows(answerHeaderRow())
		for _, r := range answerRows(sec, inspection.Answers) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(2))
	}

	// Anotaciones de asistencia IA, si existen
	if len(inspection.AIAnnotations) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range annotationRows(inspection.AIAnnotations) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: plantilla + versión (izq) y resultado + fecha de envío (der).
func headerRow(inspection *entity.QualityInspection, template *entity.QualityTemplate) core.Row {
	fecha := "—"
	if inspection.SubmittedAt != nil {
		fecha = inspection.SubmittedAt.Format("02/01/2006 15:04")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(template.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Versión %d de la plantilla", inspection.TemplateVersion), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INSPECCIÓN DE CALIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(resultLabel(inspection.Result), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
				Color: resultColor(inspection.Result),
			}),
			text.New("Enviada: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// metadataRow: objetivo inspeccionado e inspector.
func metadataRow(inspection *entity.QualityInspection) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DE LA INSPECCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Objetivo: %s %s   |   Inspector: %s",
				targetLabel(inspection.TargetType),
				inspection.TargetID,
				inspection.InspectorID,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// sectionTitleRow: título de una sección del esquema.
func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(strings.ToUpper(title), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

// answerHeaderRow: cabecera de la tabla de respuestas.
func answerHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Campo", 5, align.Left),
		h("Respuesta", 5, align.Left),
		h("Criticidad", 2, align.Center),
	)
}

// answerRows: una fila por campo de la sección, con la respuesta registrada.
func answerRows(sec forms.Section, answers forms.Answers) []core.Row {
	result := make([]core.Row, 0, len(sec.Fields))
	for _, f := range sec.Fields {
		crit := "—"
		critColor := colorGray
		if f.Critical {
			crit = "CRÍTICO"
			critColor = colorFailed
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				f.Label,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				formatAnswer(f, answers[f.Key]),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				crit,
				props.Text{Size: 7, Align: align.Center, Top: 1, Color: critColor},
			)),
		))
	}
	return result
}

// annotationRows: bloque de anotaciones de asistencia IA.
func annotationRows(annotations []entity.AIAnnotation) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("OBSERVACIONES ASISTIDAS POR IA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, a := range annotations {
		rows = append(rows, row.New(7).Add(
			col.New(3).Add(text.New(a.FieldKey, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
			})),
			col.New(7).Add(text.New(a.Summary, props.Text{
				Size: 8, Top: 1, Color: colorGray,
			})),
			col.New(2).Add(text.New(
				fmt.Sprintf("%.0f%%", a.Confidence*100),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray},
			)),
		))
	}
	rows = append(rows, row.New(5).Add(col.New(12).Add(
		text.New(
			"Las observaciones de IA son asistencia informativa y no sustituyen el criterio del inspector.",
			props.Text{Size: 6.5, Color: colorGray, Top: 1},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func resultLabel(result string) string {
	switch result {
	case forms.ResultPassed:
		return "APROBADA"
	case forms.ResultFailed:
		return "RECHAZADA"
	case forms.ResultFlagged:
		return "CON OBSERVACIONES"
	default:
		return strings.ToUpper(result)
	}
}

func resultColor(result string) *props.Color {
	switch result {
	case forms.ResultFailed:
		return colorFailed
	case forms.ResultFlagged:
		return colorFlagged
	default:
		return colorPrimary
	}
}

func targetLabel(targetType string) string {
	switch targetType {
	case entity.InspectionTargetBatch:
		return "Lote"
	case entity.InspectionTargetArea:
		return "Área"
	default:
		return targetType
	}
}

// formatAnswer serializa una respuesta para impresión según el tipo del campo.
// Las fotos y coordenadas se resumen; el binario no se incrusta en el reporte.
func formatAnswer(f forms.Field, value any) string {
	if value == nil {
		return "—"
	}
	switch forms.NormalizeType(f.Type) {
	case forms.FieldTypeCheckbox:
		if b, ok := value.(bool); ok {
			if b {
				return "Sí"
			}
			return "No"
		}
	case forms.FieldTypeNumber:
		switch n := value.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64)
		case int:
			return strconv.Itoa(n)
		}
	case forms.FieldTypePhoto:
		return "[foto adjunta]"
	case forms.FieldTypeGPS:
		if m, ok := value.(map[string]any); ok {
			lat, _ := m["lat"].(float64)
			lng, _ := m["lng"].(float64)
			return fmt.Sprintf("%.5f, %.5f", lat, lng)
		}
	}
	return fmt.Sprintf("%v", value)
}
