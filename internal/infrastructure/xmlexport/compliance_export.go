// Package xmlexport serializa los eventos de cumplimiento de una empresa al
// formato XML del reporte regulatorio agropecuario.
//
// Estructura del documento:
//
//	<ComplianceReport>
//	  <Company>  razón social + identificación tributaria
//	  <Period>   rango de fechas solicitado
//	  <Events>   un <Event> por evento, ordenados por fecha de ocurrencia
//	</ComplianceReport>
package xmlexport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/agrovida/agroops-api/internal/application/ports"
	"github.com/agrovida/agroops-api/internal/domain/entity"
)

var _ ports.ComplianceExporter = (*ComplianceExporter)(nil)

const reportVersion = "1.0"

// ComplianceExporter implementa ports.ComplianceExporter usando etree.
type ComplianceExporter struct{}

// NewComplianceExporter construye el exportador.
func NewComplianceExporter() *ComplianceExporter {
	return &ComplianceExporter{}
}

// Export genera el documento XML del reporte para el rango [from, to].
// Los eventos llegan ya filtrados y ordenados por fecha ascendente.
func (e *ComplianceExporter) Export(
	company *entity.Company,
	events []*entity.ComplianceEvent,
	from, to time.Time,
) ([]byte, error) {
	if company == nil {
		return nil, fmt.Errorf("xmlexport: se requiere la empresa del reporte")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ComplianceReport")
	root.CreateAttr("version", reportVersion)
	root.CreateAttr("generatedAt", time.Now().UTC().Format(time.RFC3339))

	comp := root.CreateElement("Company")
	comp.CreateElement("Name").SetText(company.Name)
	comp.CreateElement("TaxID").SetText(company.TaxID)

	period := root.CreateElement("Period")
	period.CreateElement("From").SetText(from.Format("2006-01-02"))
	period.CreateElement("To").SetText(to.Format("2006-01-02"))

	evts := root.CreateElement("Events")
	evts.CreateAttr("count", strconv.Itoa(len(events)))
	for _, ev := range events {
		writeEvent(evts, ev)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar reporte: %w", err)
	}
	return out, nil
}

func writeEvent(parent *etree.Element, ev *entity.ComplianceEvent) {
	el := parent.CreateElement("Event")
	el.CreateAttr("id", ev.ID)

	el.CreateElement("FacilityID").SetText(ev.FacilityID)
	el.CreateElement("Type").SetText(ev.EventType)
	el.CreateElement("Severity").SetText(ev.Severity)
	el.CreateElement("Status").SetText(ev.Status)
	el.CreateElement("Description").SetText(ev.Description)
	el.CreateElement("OccurredAt").SetText(ev.OccurredAt.UTC().Format(time.RFC3339))
	if ev.ResolvedAt != nil {
		el.CreateElement("ResolvedAt").SetText(ev.ResolvedAt.UTC().Format(time.RFC3339))
	}
}
