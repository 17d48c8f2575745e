package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/domain/forms"
)

func f64(v float64) *float64 { return &v }
func boolp(v bool) *bool     { return &v }

// esquemaPH plantilla mínima con un número requerido (pH) y campos variados.
func esquemaPH() *forms.Schema {
	return &forms.Schema{
		Sections: []forms.Section{
			{
				Title: "Parámetros de agua",
				Fields: []forms.Field{
					{
						Key: "ph_level", Type: "number", Label: "Nivel de pH", Required: true,
						Validation: &forms.Validation{
							Min: f64(0), Max: f64(14),
							ThresholdMin: f64(5.5), ThresholdMax: f64(6.8),
						},
						Critical: true,
					},
					{Key: "observaciones", Type: "text", Label: "Observaciones"},
					{
						Key: "estado_general", Type: "select", Label: "Estado general",
						Required: true, Options: []string{"bueno", "regular", "malo"},
					},
					{
						Key: "goteo_limpio", Type: "checkbox", Label: "Goteros limpios",
						Validation: &forms.Validation{ExpectedBool: boolp(true)},
					},
					{Key: "fecha_muestra", Type: "date", Label: "Fecha de muestra"},
					{Key: "foto_cama", Type: "photo", Label: "Foto de la cama"},
					{Key: "punto_gps", Type: "gps", Label: "Punto GPS"},
				},
			},
		},
	}
}

func TestValidateAnswers_RequeridoAusente(t *testing.T) {
	errs := forms.ValidateAnswers(esquemaPH(), forms.Answers{
		"estado_general": "bueno",
	})
	require.NotNil(t, errs)
	assert.Equal(t, "required", errs["ph_level"],
		"el campo requerido ausente debe reportar exactamente \"required\"")
}

func TestValidateAnswers_ClaveExtraRechazada(t *testing.T) {
	errs := forms.ValidateAnswers(esquemaPH(), forms.Answers{
		"ph_level":       6.0,
		"estado_general": "bueno",
		"campo_fantasma": "x", // no existe en el esquema
	})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "campo_fantasma")
	assert.NotContains(t, errs, "ph_level", "los campos válidos no deben aparecer en el mapa de errores")
}

func TestValidateAnswers_AcumulaErroresPorCampo(t *testing.T) {
	errs := forms.ValidateAnswers(esquemaPH(), forms.Answers{
		"ph_level":       "no-numérico",
		"estado_general": "inexistente",
		"fecha_muestra":  "31/12/2025",
	})
	require.NotNil(t, errs)
	// No fail-fast: los tres errores a la vez.
	assert.Len(t, errs, 3)
	assert.Contains(t, errs, "ph_level")
	assert.Contains(t, errs, "estado_general")
	assert.Contains(t, errs, "fecha_muestra")
}

func TestValidateAnswers_RangoNumericoDuro(t *testing.T) {
	errs := forms.ValidateAnswers(esquemaPH(), forms.Answers{
		"ph_level":       15.0, // fuera de [0,14]
		"estado_general": "bueno",
	})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "ph_level")
}

func TestValidateAnswers_TiposEspeciales(t *testing.T) {
	errs := forms.ValidateAnswers(esquemaPH(), forms.Answers{
		"ph_level":       6.2,
		"estado_general": "bueno",
		"goteo_limpio":   true,
		"fecha_muestra":  "2026-03-15",
		"foto_cama":      "uploads/cama-7.jpg",
		"punto_gps":      map[string]any{"lat": 4.6097, "lng": -74.0817},
	})
	assert.Nil(t, errs)
}

func TestValidateAnswers_GPSFueraDeRango(t *testing.T) {
	errs := forms.ValidateAnswers(esquemaPH(), forms.Answers{
		"ph_level":       6.2,
		"estado_general": "bueno",
		"punto_gps":      map[string]any{"lat": 120.0, "lng": 0.0},
	})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "punto_gps")
}

// Round-trip: render(t) y responder exactamente lo renderizado valida OK.
func TestRenderLuegoValidar_RoundTrip(t *testing.T) {
	schema := esquemaPH()
	sections := forms.Render(schema)
	require.Len(t, sections, 1)

	answers := forms.Answers{}
	for _, sec := range sections {
		for _, fld := range sec.Fields {
			switch fld.Type {
			case forms.FieldTypeNumber:
				answers[fld.Key] = 6.0
			case forms.FieldTypeSelect:
				answers[fld.Key] = fld.Options[0]
			case forms.FieldTypeCheckbox:
				answers[fld.Key] = true
			case forms.FieldTypeDate:
				answers[fld.Key] = "2026-01-10"
			case forms.FieldTypeGPS:
				answers[fld.Key] = map[string]any{"lat": 1.0, "lng": 1.0}
			default:
				answers[fld.Key] = "ok"
			}
		}
	}
	assert.Nil(t, forms.ValidateAnswers(schema, answers))
}

func TestRender_TipoDesconocidoDegradaAText(t *testing.T) {
	schema := &forms.Schema{Sections: []forms.Section{{
		Title:  "S",
		Fields: []forms.Field{{Key: "firma", Type: "signature", Label: "Firma"}},
	}}}
	sections := forms.Render(schema)
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Fields, 1)
	assert.Equal(t, forms.FieldTypeText, sections[0].Fields[0].Type,
		"un tipo desconocido debe degradar a text, no romper el renderer")

	// Y la validación lo trata como texto.
	errs := forms.ValidateAnswers(schema, forms.Answers{"firma": "Juan Pérez"})
	assert.Nil(t, errs)
}

func TestEvaluateResult_Passed(t *testing.T) {
	res := forms.EvaluateResult(esquemaPH(), forms.Answers{
		"ph_level":     6.0,
		"goteo_limpio": true,
	})
	assert.Equal(t, forms.ResultPassed, res)
}

func TestEvaluateResult_CriticoFueraDeUmbral_Failed(t *testing.T) {
	// 4.0 pasa el rango duro [0,14] pero está fuera del umbral [5.5,6.8] y el campo es crítico.
	res := forms.EvaluateResult(esquemaPH(), forms.Answers{
		"ph_level": 4.0,
	})
	assert.Equal(t, forms.ResultFailed, res)
}

func TestEvaluateResult_NoCriticoFueraDeUmbral_Flagged(t *testing.T) {
	res := forms.EvaluateResult(esquemaPH(), forms.Answers{
		"ph_level":     6.0,
		"goteo_limpio": false, // esperado true, campo no crítico
	})
	assert.Equal(t, forms.ResultFlagged, res)
}
