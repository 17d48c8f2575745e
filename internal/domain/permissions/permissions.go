// Package permissions implementa la resolución de permisos por rol:
// enums cerrados de recursos y acciones, unión por herencia y caché por rol.
package permissions

import "fmt"

// Resource enum cerrado de recursos autorizables. Las claves de permiso
// se namespacen por tipo de recurso; un recurso desconocido nunca se autoriza.
type Resource string

const (
	ResourceCompanies   Resource = "companies"
	ResourceFacilities  Resource = "facilities"
	ResourceAreas       Resource = "areas"
	ResourceBatches     Resource = "batches"
	ResourceCultivars   Resource = "cultivars"
	ResourceSuppliers   Resource = "suppliers"
	ResourceProducts    Resource = "products"
	ResourceInventory   Resource = "inventory"
	ResourceOrders      Resource = "production_orders"
	ResourceActivities  Resource = "activities"
	ResourceCompliance  Resource = "compliance"
	ResourceTemplates   Resource = "templates"
	ResourceInspections Resource = "inspections"
	ResourceRoles       Resource = "roles"
	ResourceUsers       Resource = "users"
	ResourceDashboard   Resource = "dashboard"
)

// Action enum cerrado de acciones. manage implica read+write (no delete).
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

var validResources = map[Resource]struct{}{
	ResourceCompanies: {}, ResourceFacilities: {}, ResourceAreas: {},
	ResourceBatches: {}, ResourceCultivars: {}, ResourceSuppliers: {},
	ResourceProducts: {}, ResourceInventory: {}, ResourceOrders: {},
	ResourceActivities: {}, ResourceCompliance: {}, ResourceTemplates: {},
	ResourceInspections: {}, ResourceRoles: {}, ResourceUsers: {},
	ResourceDashboard: {},
}

var validActions = map[Action]struct{}{
	ActionRead: {}, ActionWrite: {}, ActionDelete: {}, ActionManage: {},
}

// ParseResource valida un recurso declarado como dato.
func ParseResource(s string) (Resource, error) {
	r := Resource(s)
	if _, ok := validResources[r]; !ok {
		return "", fmt.Errorf("recurso desconocido: %q", s)
	}
	return r, nil
}

// ParseAction valida una acción declarada como dato.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := validActions[a]; !ok {
		return "", fmt.Errorf("acción desconocida: %q", s)
	}
	return a, nil
}

// ActionSet conjunto de acciones concedidas sobre un recurso.
type ActionSet map[Action]struct{}

// Map permisos efectivos: {recurso: conjunto de acciones}.
// La ausencia de una clave significa denegación; no existen wildcards ni reglas deny.
type Map map[Resource]ActionSet

// Allows decide si la tupla (recurso, acción) está permitida.
// manage implica read y write; delete siempre debe ser explícito.
func (m Map) Allows(resource Resource, action Action) bool {
	set, ok := m[resource]
	if !ok {
		return false
	}
	if _, ok := set[action]; ok {
		return true
	}
	if action == ActionRead || action == ActionWrite {
		_, ok := set[ActionManage]
		return ok
	}
	return false
}

// Grant agrega una acción al mapa (crea el conjunto si no existe).
func (m Map) Grant(resource Resource, action Action) {
	set, ok := m[resource]
	if !ok {
		set = ActionSet{}
		m[resource] = set
	}
	set[action] = struct{}{}
}

// Merge une other dentro de m (unión aditiva; nunca quita permisos).
func (m Map) Merge(other Map) {
	for resource, set := range other {
		for action := range set {
			m.Grant(resource, action)
		}
	}
}

// Compile valida y compila un mapa declarativo {recurso: [acciones]} al mapa tipado.
// Claves o acciones fuera de los enums cerrados son un error de definición del rol.
func Compile(raw map[string][]string) (Map, error) {
	m := Map{}
	for res, actions := range raw {
		resource, err := ParseResource(res)
		if err != nil {
			return nil, err
		}
		for _, act := range actions {
			action, err := ParseAction(act)
			if err != nil {
				return nil, fmt.Errorf("recurso %q: %w", res, err)
			}
			m.Grant(resource, action)
		}
	}
	return m, nil
}
