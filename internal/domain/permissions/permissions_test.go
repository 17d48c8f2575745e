package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/domain/permissions"
)

// lookupFrom construye un Lookup a partir de un mapa en memoria.
func lookupFrom(defs map[string]*permissions.RoleDef) permissions.Lookup {
	return func(id string) (*permissions.RoleDef, error) {
		return defs[id], nil
	}
}

func TestAllows_ManageImplicaReadYWrite(t *testing.T) {
	m, err := permissions.Compile(map[string][]string{
		"batches": {"manage"},
	})
	require.NoError(t, err)

	assert.True(t, m.Allows(permissions.ResourceBatches, permissions.ActionRead))
	assert.True(t, m.Allows(permissions.ResourceBatches, permissions.ActionWrite))
	assert.True(t, m.Allows(permissions.ResourceBatches, permissions.ActionManage))
	// manage NO implica delete
	assert.False(t, m.Allows(permissions.ResourceBatches, permissions.ActionDelete))
}

func TestAllows_AusenciaDeClaveEsDenegacion(t *testing.T) {
	m, err := permissions.Compile(map[string][]string{
		"inventory": {"read"},
	})
	require.NoError(t, err)

	assert.True(t, m.Allows(permissions.ResourceInventory, permissions.ActionRead))
	assert.False(t, m.Allows(permissions.ResourceInventory, permissions.ActionWrite))
	assert.False(t, m.Allows(permissions.ResourceBatches, permissions.ActionRead),
		"recurso sin clave debe denegar")
}

func TestCompile_RecursoDesconocidoFalla(t *testing.T) {
	_, err := permissions.Compile(map[string][]string{"naves_espaciales": {"read"}})
	assert.Error(t, err)

	_, err = permissions.Compile(map[string][]string{"batches": {"volar"}})
	assert.Error(t, err)
}

func TestEffective_UnionConAncestros(t *testing.T) {
	defs := map[string]*permissions.RoleDef{
		"lector": {
			ID:          "lector",
			Permissions: map[string][]string{"batches": {"read"}, "areas": {"read"}},
		},
		"operario": {
			ID:          "operario",
			Permissions: map[string][]string{"activities": {"write"}},
			InheritsIDs: []string{"lector"},
		},
	}

	m, err := permissions.Effective("operario", lookupFrom(defs))
	require.NoError(t, err)

	assert.True(t, m.Allows(permissions.ResourceActivities, permissions.ActionWrite))
	assert.True(t, m.Allows(permissions.ResourceBatches, permissions.ActionRead), "permiso heredado")
	assert.True(t, m.Allows(permissions.ResourceAreas, permissions.ActionRead), "permiso heredado")
}

// La resolución es monótona: agregar un ancestro nunca quita un permiso ya concedido.
func TestEffective_MonotonoBajoHerencia(t *testing.T) {
	base := map[string]*permissions.RoleDef{
		"supervisor": {
			ID:          "supervisor",
			Permissions: map[string][]string{"inspections": {"manage"}, "batches": {"read"}},
		},
	}
	before, err := permissions.Effective("supervisor", lookupFrom(base))
	require.NoError(t, err)

	conAncestro := map[string]*permissions.RoleDef{
		"auditor": {
			ID:          "auditor",
			Permissions: map[string][]string{"compliance": {"read"}},
		},
		"supervisor": {
			ID:          "supervisor",
			Permissions: base["supervisor"].Permissions,
			InheritsIDs: []string{"auditor"},
		},
	}
	after, err := permissions.Effective("supervisor", lookupFrom(conAncestro))
	require.NoError(t, err)

	for resource, actions := range before {
		for action := range actions {
			assert.True(t, after.Allows(resource, action),
				"agregar ancestro no debe quitar %s:%s", resource, action)
		}
	}
	assert.True(t, after.Allows(permissions.ResourceCompliance, permissions.ActionRead))
}

func TestCheckNoCycle_RechazaCiclos(t *testing.T) {
	defs := map[string]*permissions.RoleDef{
		"a": {ID: "a", InheritsIDs: []string{"b"}},
		"b": {ID: "b", InheritsIDs: []string{}},
	}

	// b -> a cerraría el ciclo a -> b -> a
	err := permissions.CheckNoCycle("b", []string{"a"}, lookupFrom(defs))
	assert.Error(t, err)

	// herencia lineal sana
	err = permissions.CheckNoCycle("c", []string{"a"}, lookupFrom(defs))
	assert.NoError(t, err)
}

func TestCheckNoCycle_AutoHerencia(t *testing.T) {
	defs := map[string]*permissions.RoleDef{
		"a": {ID: "a"},
	}
	err := permissions.CheckNoCycle("a", []string{"a"}, lookupFrom(defs))
	assert.Error(t, err, "un rol no puede heredarse a sí mismo")
}

func TestResolver_CacheaYInvalida(t *testing.T) {
	calls := 0
	defs := map[string]*permissions.RoleDef{
		"lector": {ID: "lector", Permissions: map[string][]string{"batches": {"read"}}},
	}
	lookup := func(id string) (*permissions.RoleDef, error) {
		calls++
		return defs[id], nil
	}

	r := permissions.NewResolver(lookup)

	ok, err := r.Allows("lector", permissions.ResourceBatches, permissions.ActionRead)
	require.NoError(t, err)
	assert.True(t, ok)

	// Segunda evaluación: debe salir del caché sin consultar la fuente.
	_, err = r.Allows("lector", permissions.ResourceBatches, permissions.ActionRead)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	r.Invalidate("lector")
	_, err = r.Allows("lector", permissions.ResourceBatches, permissions.ActionRead)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "tras invalidar debe volver a resolver")
}

func TestEffective_RolInexistenteFalla(t *testing.T) {
	_, err := permissions.Effective("fantasma", lookupFrom(map[string]*permissions.RoleDef{}))
	assert.Error(t, err)
}
