package entity

// Catálogos de referencia: datos sembrados una vez, solo lectura en runtime.
// No llevan company_id: son compartidos por todos los tenants.

// CropType tipo de cultivo (hortaliza, fruta, café, flores...).
type CropType struct {
	ID        string
	Name      string
	SearchKey string
}

// UnitOfMeasure unidad de medida (kg, g, L, unidad...).
type UnitOfMeasure struct {
	ID     string
	Code   string // kg, g, l, un
	Name   string
	Symbol string
}

// GeoDivision división geográfica (departamento/municipio o equivalente).
type GeoDivision struct {
	ID       string
	Code     string
	Name     string
	ParentID string // vacío para divisiones de primer nivel
}
