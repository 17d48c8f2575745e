package forms_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/domain/forms"
)

func TestSchemaValidate_ClavesDuplicadas(t *testing.T) {
	schema := &forms.Schema{Sections: []forms.Section{
		{Title: "A", Fields: []forms.Field{{Key: "ph", Type: "number"}}},
		{Title: "B", Fields: []forms.Field{{Key: "ph", Type: "text"}}},
	}}
	assert.Error(t, schema.Validate(), "las claves deben ser únicas dentro de la plantilla")
}

func TestSchemaValidate_SelectSinOpciones(t *testing.T) {
	schema := &forms.Schema{Sections: []forms.Section{
		{Title: "A", Fields: []forms.Field{{Key: "estado", Type: "select"}}},
	}}
	assert.Error(t, schema.Validate())
}

func TestSchemaValidate_EsquemaVacio(t *testing.T) {
	assert.Error(t, (&forms.Schema{}).Validate())
}

func TestSchemaValidate_OK(t *testing.T) {
	schema := &forms.Schema{Sections: []forms.Section{
		{Title: "A", Fields: []forms.Field{
			{Key: "ph", Type: "number"},
			{Key: "estado", Type: "select", Options: []string{"bueno", "malo"}},
		}},
	}}
	assert.NoError(t, schema.Validate())
}

// El esquema viaja como JSON (columna jsonb); verificar que decodifica al tipo esperado.
func TestSchema_DecodificaDesdeJSON(t *testing.T) {
	raw := `{
		"sections": [{
			"title": "Agua",
			"fields": [{
				"key": "ph_level", "type": "number", "label": "pH", "required": true,
				"validation": {"min": 0, "max": 14, "threshold_min": 5.5, "threshold_max": 6.8},
				"critical": true
			}]
		}]
	}`
	var schema forms.Schema
	require.NoError(t, json.Unmarshal([]byte(raw), &schema))
	require.NoError(t, schema.Validate())

	idx := schema.FieldIndex()
	field, ok := idx["ph_level"]
	require.True(t, ok)
	assert.True(t, field.Required)
	assert.True(t, field.Critical)
	require.NotNil(t, field.Validation)
	assert.Equal(t, 5.5, *field.Validation.ThresholdMin)
}
