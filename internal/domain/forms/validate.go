package forms

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Answers conjunto de respuestas enviado contra una plantilla, indexado por clave de campo.
// Los valores vienen del JSON decodificado (float64, string, bool, map[string]any).
type Answers map[string]any

// Errors mapa {clave de campo: mensaje}. La validación acumula todos los errores
// (no fail-fast) para que el caller pueda mostrarlos de una sola vez.
type Errors map[string]string

// Error implementa error para propagar el mapa por las capas de aplicación.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for k, v := range e {
		parts = append(parts, k+": "+v)
	}
	return "validación de formulario: " + strings.Join(parts, "; ")
}

// ValidateAnswers valida las respuestas contra el esquema en modo estricto:
//   - cada campo requerido debe estar presente con un valor válido para su tipo;
//   - los campos opcionales ausentes se permiten;
//   - las claves que no existen en el esquema se rechazan, para evitar deriva
//     silenciosa de datos entre versiones de plantilla.
//
// Devuelve nil si todo es válido; si no, el mapa completo de errores por campo.
func ValidateAnswers(s *Schema, answers Answers) Errors {
	errs := Errors{}
	idx := s.FieldIndex()

	// Claves extra: modo estricto.
	for key := range answers {
		if _, ok := idx[key]; !ok {
			errs[key] = "campo no definido en la plantilla"
		}
	}

	for key, field := range idx {
		value, present := answers[key]
		if !present || value == nil {
			if field.Required {
				errs[key] = "required"
			}
			continue
		}
		if msg := validateValue(field, value); msg != "" {
			errs[key] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateValue aplica la regla específica del tipo. Devuelve "" si el valor es válido.
func validateValue(field Field, value any) string {
	v := field.Validation
	switch NormalizeType(field.Type) {
	case FieldTypeNumber:
		n, ok := toNumber(value)
		if !ok {
			return "debe ser numérico"
		}
		if v != nil {
			if v.Min != nil && n < *v.Min {
				return fmt.Sprintf("debe ser >= %v", *v.Min)
			}
			if v.Max != nil && n > *v.Max {
				return fmt.Sprintf("debe ser <= %v", *v.Max)
			}
		}

	case FieldTypeSelect:
		s, ok := value.(string)
		if !ok {
			return "debe ser una opción de texto"
		}
		for _, opt := range field.Options {
			if opt == s {
				return ""
			}
		}
		return "valor fuera de las opciones permitidas"

	case FieldTypeCheckbox:
		if _, ok := value.(bool); !ok {
			return "debe ser booleano"
		}

	case FieldTypeDate:
		s, ok := value.(string)
		if !ok {
			return "debe ser una fecha"
		}
		t, err := parseDate(s)
		if err != nil {
			return "fecha inválida (use AAAA-MM-DD)"
		}
		if v != nil {
			if v.NotBefore != "" {
				if min, err := parseDate(v.NotBefore); err == nil && t.Before(min) {
					return "fecha anterior al mínimo permitido"
				}
			}
			if v.NotAfter != "" {
				if max, err := parseDate(v.NotAfter); err == nil && t.After(max) {
					return "fecha posterior al máximo permitido"
				}
			}
		}

	case FieldTypePhoto:
		s, ok := value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return "debe referenciar una foto"
		}

	case FieldTypeGPS:
		obj, ok := value.(map[string]any)
		if !ok {
			return "debe ser un objeto {lat, lng}"
		}
		lat, okLat := toNumber(obj["lat"])
		lng, okLng := toNumber(obj["lng"])
		if !okLat || !okLng {
			return "lat y lng deben ser numéricos"
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return "coordenadas fuera de rango"
		}

	default: // text (incluye tipos desconocidos degradados)
		s, ok := value.(string)
		if !ok {
			return "debe ser texto"
		}
		if field.Required && strings.TrimSpace(s) == "" {
			return "required"
		}
		if v != nil {
			if v.MinLen != nil && len([]rune(s)) < *v.MinLen {
				return fmt.Sprintf("mínimo %d caracteres", *v.MinLen)
			}
			if v.MaxLen != nil && len([]rune(s)) > *v.MaxLen {
				return fmt.Sprintf("máximo %d caracteres", *v.MaxLen)
			}
		}
	}
	return ""
}

// Resultados derivados de una inspección al enviarse.
const (
	ResultPassed  = "passed"
	ResultFailed  = "failed"
	ResultFlagged = "flagged"
)

// EvaluateResult deriva el resultado de una inspección ya validada:
//   - todos los campos con umbral dentro de su banda de aceptación → passed;
//   - un campo crítico fuera de umbral → failed;
//   - solo campos no críticos fuera de umbral → flagged.
//
// Los umbrales son más estrechos que Min/Max: un valor fuera de Min/Max ni
// siquiera llega aquí porque la validación lo rechaza.
func EvaluateResult(s *Schema, answers Answers) string {
	result := ResultPassed
	for _, sec := range s.Sections {
		for _, f := range sec.Fields {
			if f.Validation == nil {
				continue
			}
			value, ok := answers[f.Key]
			if !ok || value == nil {
				continue
			}
			if !withinThreshold(f, value) {
				if f.Critical {
					return ResultFailed
				}
				result = ResultFlagged
			}
		}
	}
	return result
}

func withinThreshold(f Field, value any) bool {
	v := f.Validation
	switch NormalizeType(f.Type) {
	case FieldTypeNumber:
		n, ok := toNumber(value)
		if !ok {
			return true
		}
		if v.ThresholdMin != nil && n < *v.ThresholdMin {
			return false
		}
		if v.ThresholdMax != nil && n > *v.ThresholdMax {
			return false
		}
	case FieldTypeCheckbox:
		b, ok := value.(bool)
		if ok && v.ExpectedBool != nil && b != *v.ExpectedBool {
			return false
		}
	}
	return true
}

func toNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
