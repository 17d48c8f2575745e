// Package forms implementa el motor de formularios dinámicos de inspección de calidad:
// un esquema declarativo (datos, no código) se convierte en una lista renderizable de
// campos y en un validador de respuestas, sin código a medida por plantilla.
package forms

import "fmt"

// Tipos de campo soportados. Un tipo desconocido degrada a text al renderizar
// (el renderer nunca falla por un tipo nuevo).
const (
	FieldTypeText     = "text"
	FieldTypeNumber   = "number"
	FieldTypeSelect   = "select"
	FieldTypeCheckbox = "checkbox"
	FieldTypeDate     = "date"
	FieldTypePhoto    = "photo"
	FieldTypeGPS      = "gps"
)

// NormalizeType devuelve el tipo efectivo de un campo: los tipos desconocidos
// degradan a text en lugar de romper el renderizado o la validación.
func NormalizeType(t string) string {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeSelect, FieldTypeCheckbox,
		FieldTypeDate, FieldTypePhoto, FieldTypeGPS:
		return t
	default:
		return FieldTypeText
	}
}

// Validation reglas declarativas por campo. Son datos (predicados declarativos),
// no código, para que las plantillas sean auditables.
type Validation struct {
	// number: rango duro; valores fuera se rechazan en la validación.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// text: longitud.
	MinLen *int `json:"min_len,omitempty"`
	MaxLen *int `json:"max_len,omitempty"`

	// date: límites en formato "2006-01-02" o RFC3339.
	NotBefore string `json:"not_before,omitempty"`
	NotAfter  string `json:"not_after,omitempty"`

	// Umbral de aceptación para derivar el resultado de la inspección
	// (más estrecho que Min/Max; ver EvaluateResult).
	ThresholdMin *float64 `json:"threshold_min,omitempty"`
	ThresholdMax *float64 `json:"threshold_max,omitempty"`

	// checkbox: valor esperado para considerar el campo conforme.
	ExpectedBool *bool `json:"expected_bool,omitempty"`
}

// Field campo de una sección.
type Field struct {
	Key        string      `json:"key"`
	Type       string      `json:"type"`
	Label      string      `json:"label"`
	Required   bool        `json:"required"`
	Options    []string    `json:"options,omitempty"` // para select
	Validation *Validation `json:"validation,omitempty"`
	// Critical marca el campo como crítico: un valor fuera del umbral de
	// aceptación produce resultado failed en lugar de flagged.
	Critical bool `json:"critical,omitempty"`
}

// Section sección ordenada de campos.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Schema esquema completo de una plantilla de inspección.
type Schema struct {
	Sections []Section `json:"sections"`
}

// Validate verifica la sanidad estructural del esquema: claves de campo únicas
// dentro de la plantilla, claves no vacías y opciones presentes en los select.
func (s *Schema) Validate() error {
	if len(s.Sections) == 0 {
		return fmt.Errorf("el esquema no tiene secciones")
	}
	seen := map[string]bool{}
	for si, sec := range s.Sections {
		if len(sec.Fields) == 0 {
			return fmt.Errorf("sección %d sin campos", si)
		}
		for _, f := range sec.Fields {
			if f.Key == "" {
				return fmt.Errorf("sección %d: campo con key vacía", si)
			}
			if seen[f.Key] {
				return fmt.Errorf("clave de campo duplicada: %q", f.Key)
			}
			seen[f.Key] = true
			if NormalizeType(f.Type) == FieldTypeSelect && len(f.Options) == 0 {
				return fmt.Errorf("campo select %q sin opciones", f.Key)
			}
		}
	}
	return nil
}

// FieldIndex devuelve los campos indexados por clave.
func (s *Schema) FieldIndex() map[string]Field {
	idx := map[string]Field{}
	for _, sec := range s.Sections {
		for _, f := range sec.Fields {
			idx[f.Key] = f
		}
	}
	return idx
}
