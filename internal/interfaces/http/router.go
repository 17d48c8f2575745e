package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/agroops-api/internal/application/analytics"
	"github.com/agrovida/agroops-api/internal/application/auth"
	"github.com/agrovida/agroops-api/internal/application/inspection"
	"github.com/agrovida/agroops-api/internal/application/inventory"
	"github.com/agrovida/agroops-api/internal/application/usecase"
	"github.com/agrovida/agroops-api/internal/domain/permissions"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	FacilityUC   *usecase.FacilityUseCase
	AreaUC       *usecase.AreaUseCase
	CultivarUC   *usecase.CultivarUseCase
	SupplierUC   *usecase.SupplierUseCase
	ProductUC    *usecase.ProductUseCase
	InventoryUC  *inventory.UseCase
	BatchUC      *usecase.BatchUseCase
	OrderUC      *usecase.ProductionOrderUseCase
	ActivityUC   *usecase.ActivityUseCase
	ComplianceUC *usecase.ComplianceUseCase
	TemplateUC   *inspection.TemplateUseCase
	InspectionUC *inspection.UseCase
	RoleUC       *usecase.RoleUseCase
	UserUC       *usecase.UserUseCase
	CatalogUC    *usecase.CatalogUseCase
	DashboardUC  *analytics.DashboardUseCase
	AIUC         *usecase.AIUseCase
	Resolver     *permissions.Resolver
	JWTSecret    string
}

// Router registra las rutas de la API bajo /api/v1.
// Las rutas protegidas llevan AuthMiddleware (construye el tenant.Context desde
// el token) y RequirePermission (autoriza la tupla recurso/acción del rol).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	perm := func(r permissions.Resource, a permissions.Action) fiber.Handler {
		return RequirePermission(deps.Resolver, r, a)
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Signup de empresa (público)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Empresa de la sesión: el id sale del token, nunca de la URL
	companies := protected.Group("/companies")
	companies.Get("/me", perm(permissions.ResourceCompanies, permissions.ActionRead), companyHandler.GetMine)
	companies.Put("/me", perm(permissions.ResourceCompanies, permissions.ActionManage), companyHandler.UpdateMine)

	// Sedes
	facilities := protected.Group("/facilities")
	facilityHandler := NewFacilityHandler(deps.FacilityUC)
	facilities.Post("/", perm(permissions.ResourceFacilities, permissions.ActionWrite), facilityHandler.Create)
	facilities.Get("/", perm(permissions.ResourceFacilities, permissions.ActionRead), facilityHandler.List)
	facilities.Get("/:id", perm(permissions.ResourceFacilities, permissions.ActionRead), facilityHandler.GetByID)
	facilities.Put("/:id", perm(permissions.ResourceFacilities, permissions.ActionWrite), facilityHandler.Update)

	// Áreas
	areas := protected.Group("/areas")
	areaHandler := NewAreaHandler(deps.AreaUC)
	areas.Post("/", perm(permissions.ResourceAreas, permissions.ActionWrite), areaHandler.Create)
	areas.Get("/", perm(permissions.ResourceAreas, permissions.ActionRead), areaHandler.List)
	areas.Get("/:id", perm(permissions.ResourceAreas, permissions.ActionRead), areaHandler.GetByID)
	areas.Put("/:id", perm(permissions.ResourceAreas, permissions.ActionWrite), areaHandler.Update)
	areas.Delete("/:id", perm(permissions.ResourceAreas, permissions.ActionDelete), areaHandler.Delete)

	// Cultivares
	cultivars := protected.Group("/cultivars")
	cultivarHandler := NewCultivarHandler(deps.CultivarUC)
	cultivars.Post("/", perm(permissions.ResourceCultivars, permissions.ActionWrite), cultivarHandler.Create)
	cultivars.Get("/", perm(permissions.ResourceCultivars, permissions.ActionRead), cultivarHandler.List)
	cultivars.Get("/:id", perm(permissions.ResourceCultivars, permissions.ActionRead), cultivarHandler.GetByID)

	// Proveedores
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", perm(permissions.ResourceSuppliers, permissions.ActionWrite), supplierHandler.Create)
	suppliers.Get("/", perm(permissions.ResourceSuppliers, permissions.ActionRead), supplierHandler.List)
	suppliers.Get("/:id", perm(permissions.ResourceSuppliers, permissions.ActionRead), supplierHandler.GetByID)
	suppliers.Delete("/:id", perm(permissions.ResourceSuppliers, permissions.ActionDelete), supplierHandler.Delete)

	// Productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", perm(permissions.ResourceProducts, permissions.ActionWrite), productHandler.Create)
	products.Get("/", perm(permissions.ResourceProducts, permissions.ActionRead), productHandler.List)
	products.Get("/:id", perm(permissions.ResourceProducts, permissions.ActionRead), productHandler.GetByID)

	// Existencias por sede
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/", perm(permissions.ResourceInventory, permissions.ActionWrite), inventoryHandler.Create)
	inv.Get("/", perm(permissions.ResourceInventory, permissions.ActionRead), inventoryHandler.List)
	inv.Get("/:id", perm(permissions.ResourceInventory, permissions.ActionRead), inventoryHandler.GetByID)
	inv.Put("/:id/quantity", perm(permissions.ResourceInventory, permissions.ActionWrite), inventoryHandler.UpdateQuantity)

	// Lotes
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", perm(permissions.ResourceBatches, permissions.ActionWrite), batchHandler.Create)
	batches.Get("/", perm(permissions.ResourceBatches, permissions.ActionRead), batchHandler.List)
	batches.Get("/:id", perm(permissions.ResourceBatches, permissions.ActionRead), batchHandler.GetByID)
	batches.Put("/:id", perm(permissions.ResourceBatches, permissions.ActionWrite), batchHandler.Update)

	// Órdenes de producción
	orders := protected.Group("/production-orders")
	orderHandler := NewProductionOrderHandler(deps.OrderUC)
	orders.Post("/", perm(permissions.ResourceOrders, permissions.ActionWrite), orderHandler.Create)
	orders.Get("/", perm(permissions.ResourceOrders, permissions.ActionRead), orderHandler.List)
	orders.Get("/:id", perm(permissions.ResourceOrders, permissions.ActionRead), orderHandler.GetByID)
	orders.Put("/:id", perm(permissions.ResourceOrders, permissions.ActionWrite), orderHandler.Update)

	// Bitácora de actividades (append-only)
	activities := protected.Group("/activities")
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activities.Post("/", perm(permissions.ResourceActivities, permissions.ActionWrite), activityHandler.Create)
	activities.Get("/", perm(permissions.ResourceActivities, permissions.ActionRead), activityHandler.List)

	// Cumplimiento + exportación regulatoria
	compliance := protected.Group("/compliance")
	complianceHandler := NewComplianceHandler(deps.ComplianceUC)
	compliance.Post("/", perm(permissions.ResourceCompliance, permissions.ActionWrite), complianceHandler.Create)
	compliance.Get("/", perm(permissions.ResourceCompliance, permissions.ActionRead), complianceHandler.List)
	compliance.Get("/export", perm(permissions.ResourceCompliance, permissions.ActionRead), complianceHandler.ExportXML)
	compliance.Get("/:id", perm(permissions.ResourceCompliance, permissions.ActionRead), complianceHandler.GetByID)
	compliance.Post("/:id/resolve", perm(permissions.ResourceCompliance, permissions.ActionWrite), complianceHandler.Resolve)

	// Plantillas de inspección (versionadas)
	templates := protected.Group("/templates")
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	templates.Post("/", perm(permissions.ResourceTemplates, permissions.ActionWrite), templateHandler.Create)
	templates.Get("/", perm(permissions.ResourceTemplates, permissions.ActionRead), templateHandler.List)
	templates.Get("/versions/:rootId", perm(permissions.ResourceTemplates, permissions.ActionRead), templateHandler.ListVersions)
	templates.Get("/:id", perm(permissions.ResourceTemplates, permissions.ActionRead), templateHandler.GetByID)
	templates.Get("/:id/render", perm(permissions.ResourceTemplates, permissions.ActionRead), templateHandler.Render)
	templates.Put("/:id", perm(permissions.ResourceTemplates, permissions.ActionWrite), templateHandler.Update)
	templates.Delete("/:id", perm(permissions.ResourceTemplates, permissions.ActionWrite), templateHandler.Archive)

	// Inspecciones
	inspections := protected.Group("/inspections")
	inspectionHandler := NewInspectionHandler(deps.InspectionUC)
	inspections.Post("/", perm(permissions.ResourceInspections, permissions.ActionWrite), inspectionHandler.Create)
	inspections.Get("/", perm(permissions.ResourceInspections, permissions.ActionRead), inspectionHandler.List)
	inspections.Get("/:id", perm(permissions.ResourceInspections, permissions.ActionRead), inspectionHandler.GetByID)
	inspections.Post("/:id/submit", perm(permissions.ResourceInspections, permissions.ActionWrite), inspectionHandler.Submit)
	inspections.Get("/:id/pdf", perm(permissions.ResourceInspections, permissions.ActionRead), inspectionHandler.GeneratePDF)

	// Roles y usuarios
	roles := protected.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Post("/", perm(permissions.ResourceRoles, permissions.ActionManage), roleHandler.Create)
	roles.Get("/", perm(permissions.ResourceRoles, permissions.ActionRead), roleHandler.List)
	roles.Get("/:id", perm(permissions.ResourceRoles, permissions.ActionRead), roleHandler.GetByID)
	roles.Put("/:id", perm(permissions.ResourceRoles, permissions.ActionManage), roleHandler.Update)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", perm(permissions.ResourceUsers, permissions.ActionRead), userHandler.List)
	users.Get("/:id", perm(permissions.ResourceUsers, permissions.ActionRead), userHandler.GetByID)
	users.Put("/:id", perm(permissions.ResourceUsers, permissions.ActionManage), userHandler.Update)

	// Catálogos de referencia (cualquier sesión autenticada)
	catalogs := protected.Group("/catalogs")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/crop-types", catalogHandler.CropTypes)
	catalogs.Get("/units", catalogHandler.Units)
	catalogs.Get("/geo-divisions", catalogHandler.GeoDivisions)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary",
		perm(permissions.ResourceDashboard, permissions.ActionRead), dashboardHandler.Summary)

	// Asistencia de IA
	ai := protected.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC)
	ai.Post("/extract-template", perm(permissions.ResourceTemplates, permissions.ActionWrite), aiHandler.ExtractTemplate)
	ai.Post("/detect-pests", perm(permissions.ResourceInspections, permissions.ActionWrite), aiHandler.DetectPests)
}
