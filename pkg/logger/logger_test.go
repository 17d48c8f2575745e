package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEstampaCampoService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Service: "agroops-api", Out: &buf})

	log.Info().Str("evento", "arranque").Msg("listo")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "agroops-api", line["service"])
	assert.Equal(t, "arranque", line["evento"])
	assert.Equal(t, "listo", line["message"])
	assert.NotEmpty(t, line["time"])
}

func TestNewSinServiceNoEstampaCampo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Out: &buf})

	log.Info().Msg("sin servicio")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	_, ok := line["service"]
	assert.False(t, ok)
}

func TestNewRespetaNivelConfigurado(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "warn", Service: "agroops-api", Out: &buf})

	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len(), "info por debajo del nivel warn no debe emitirse")

	log.Warn().Msg("emitido")
	assert.Contains(t, buf.String(), "emitido")
}

func TestParseLevelDesconocidoUsaInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verboso"))
}
