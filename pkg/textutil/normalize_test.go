package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrovida/agroops-api/pkg/textutil"
)

func TestSearchKey_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "tomate chonto rio grande", textutil.SearchKey("Tomate Chonto Río Grande "))
	assert.Equal(t, "cafe castillo", textutil.SearchKey("CAFÉ   Castillo"))
}

func TestSearchKey_TextoYaNormalizado(t *testing.T) {
	assert.Equal(t, "maiz amarillo", textutil.SearchKey("maiz amarillo"))
}

func TestSearchKey_Vacio(t *testing.T) {
	assert.Equal(t, "", textutil.SearchKey("   "))
}
