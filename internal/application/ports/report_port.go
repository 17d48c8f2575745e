package ports

import (
	"time"

	"github.com/agrovida/agroops-api/internal/domain/entity"
)

// InspectionReportGenerator genera el PDF de una inspección enviada.
type InspectionReportGenerator interface {
	Generate(inspection *entity.QualityInspection, template *entity.QualityTemplate) ([]byte, error)
}

// ComplianceExporter serializa los eventos de cumplimiento de un rango de fechas
// al XML del reporte regulatorio.
type ComplianceExporter interface {
	Export(company *entity.Company, events []*entity.ComplianceEvent, from, to time.Time) ([]byte, error)
}
