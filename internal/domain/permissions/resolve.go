package permissions

import (
	"fmt"
	"sync"
)

// RoleDef definición mínima de un rol para la resolución: su mapa declarativo
// y los roles de los que hereda.
type RoleDef struct {
	ID          string
	Permissions map[string][]string
	InheritsIDs []string
}

// Lookup obtiene la definición de un rol por id. Devuelve nil si no existe.
type Lookup func(roleID string) (*RoleDef, error)

// Effective calcula el mapa efectivo de un rol: sus permisos unidos con los de
// todos sus ancestros. La unión es aditiva, por lo que agregar un ancestro nunca
// quita un permiso ya concedido (monotonía).
//
// Los ciclos se rechazan en la definición del rol (CheckNoCycle); aquí se corta
// la recursión por seguridad marcando los visitados.
func Effective(roleID string, lookup Lookup) (Map, error) {
	result := Map{}
	visited := map[string]bool{}

	var walk func(id string) error
	walk = func(id string) error {
		if visited[id] {
			return nil
		}
		visited[id] = true

		def, err := lookup(id)
		if err != nil {
			return err
		}
		if def == nil {
			return fmt.Errorf("rol %q no existe", id)
		}
		compiled, err := Compile(def.Permissions)
		if err != nil {
			return fmt.Errorf("rol %q: %w", id, err)
		}
		result.Merge(compiled)

		for _, parent := range def.InheritsIDs {
			if err := walk(parent); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(roleID); err != nil {
		return nil, err
	}
	return result, nil
}

// CheckNoCycle verifica que agregar un rol con los padres indicados no introduce
// un ciclo de herencia. Se invoca al crear/editar la definición del rol, nunca
// en la evaluación (que asume definiciones sanas).
func CheckNoCycle(roleID string, inheritsIDs []string, lookup Lookup) error {
	// DFS desde cada padre; si alcanzamos roleID hay ciclo.
	seen := map[string]bool{}
	var walk func(id string) error
	walk = func(id string) error {
		if id == roleID {
			return fmt.Errorf("herencia cíclica: el rol %q se alcanza a sí mismo", roleID)
		}
		if seen[id] {
			return nil
		}
		seen[id] = true
		def, err := lookup(id)
		if err != nil {
			return err
		}
		if def == nil {
			return fmt.Errorf("rol heredado %q no existe", id)
		}
		for _, parent := range def.InheritsIDs {
			if err := walk(parent); err != nil {
				return err
			}
		}
		return nil
	}
	for _, parent := range inheritsIDs {
		if err := walk(parent); err != nil {
			return err
		}
	}
	return nil
}

// Resolver resuelve y cachea mapas efectivos por rol. El caché se invalida
// cuando una mutación cambia la definición del rol (Invalidate).
type Resolver struct {
	mu     sync.RWMutex
	lookup Lookup
	cache  map[string]Map
}

// NewResolver construye el resolver con su fuente de definiciones.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup, cache: map[string]Map{}}
}

// Allows decide si el rol permite la tupla (recurso, acción), resolviendo
// y cacheando el mapa efectivo la primera vez.
func (r *Resolver) Allows(roleID string, resource Resource, action Action) (bool, error) {
	m, err := r.effective(roleID)
	if err != nil {
		return false, err
	}
	return m.Allows(resource, action), nil
}

func (r *Resolver) effective(roleID string) (Map, error) {
	r.mu.RLock()
	m, ok := r.cache[roleID]
	r.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := Effective(roleID, r.lookup)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[roleID] = m
	r.mu.Unlock()
	return m, nil
}

// Invalidate descarta el mapa cacheado de un rol (o todos si roleID es vacío).
func (r *Resolver) Invalidate(roleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if roleID == "" {
		r.cache = map[string]Map{}
		return
	}
	delete(r.cache, roleID)
}
