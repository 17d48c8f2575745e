package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/agrovida/agroops-api/internal/application/analytics"
	"github.com/agrovida/agroops-api/internal/application/auth"
	appinspection "github.com/agrovida/agroops-api/internal/application/inspection"
	appinventory "github.com/agrovida/agroops-api/internal/application/inventory"
	"github.com/agrovida/agroops-api/internal/application/usecase"
	"github.com/agrovida/agroops-api/internal/domain/permissions"
	infraai "github.com/agrovida/agroops-api/internal/infrastructure/ai"
	infrapdf "github.com/agrovida/agroops-api/internal/infrastructure/pdf"
	"github.com/agrovida/agroops-api/internal/infrastructure/postgres"
	"github.com/agrovida/agroops-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/agrovida/agroops-api/internal/interfaces/http"
	"github.com/agrovida/agroops-api/pkg/config"
	"github.com/agrovida/agroops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	facilityRepo := postgres.NewFacilityRepository(pool)
	areaRepo := postgres.NewAreaRepository(pool)
	cultivarRepo := postgres.NewCultivarRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryItemRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	complianceRepo := postgres.NewComplianceEventRepository(pool)
	templateRepo := postgres.NewQualityTemplateRepository(pool)
	inspectionRepo := postgres.NewQualityInspectionRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)

	// Resolver de permisos efectivos. La herencia se recorre por id de rol ya
	// verificado dentro de la empresa; el caché se invalida al editar roles.
	resolver := permissions.NewResolver(func(roleID string) (*permissions.RoleDef, error) {
		role, err := roleRepo.GetAnyByID(roleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, nil
		}
		return &permissions.RoleDef{
			ID:          role.ID,
			Permissions: role.Permissions,
			InheritsIDs: role.InheritsFromRoleIDs,
		}, nil
	})

	// Adaptadores externos
	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	reportGen := infrapdf.NewInspectionReportGenerator()
	complianceExporter := xmlexport.NewComplianceExporter()

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, roleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	facilityUC := usecase.NewFacilityUseCase(facilityRepo, companyRepo)
	areaUC := usecase.NewAreaUseCase(areaRepo, facilityRepo)
	cultivarUC := usecase.NewCultivarUseCase(cultivarRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	inventoryUC := appinventory.NewUseCase(inventoryRepo, productRepo)
	batchUC := usecase.NewBatchUseCase(batchRepo, areaRepo, cultivarRepo)
	orderUC := usecase.NewProductionOrderUseCase(orderRepo, batchRepo)
	activityUC := usecase.NewActivityUseCase(activityRepo, batchRepo, areaRepo)
	complianceUC := usecase.NewComplianceUseCase(complianceRepo, companyRepo, complianceExporter)
	templateUC := appinspection.NewTemplateUseCase(templateRepo)
	inspectionUC := appinspection.NewUseCase(
		inspectionRepo, templateRepo, batchRepo, areaRepo,
		anthropicSvc, reportGen, log,
	)
	roleUC := usecase.NewRoleUseCase(roleRepo, resolver)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo)
	aiUC := usecase.NewAIUseCase(anthropicSvc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgroOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		FacilityUC:   facilityUC,
		AreaUC:       areaUC,
		CultivarUC:   cultivarUC,
		SupplierUC:   supplierUC,
		ProductUC:    productUC,
		InventoryUC:  inventoryUC,
		BatchUC:      batchUC,
		OrderUC:      orderUC,
		ActivityUC:   activityUC,
		ComplianceUC: complianceUC,
		TemplateUC:   templateUC,
		InspectionUC: inspectionUC,
		RoleUC:       roleUC,
		UserUC:       userUC,
		CatalogUC:    catalogUC,
		DashboardUC:  dashboardUC,
		AIUC:         aiUC,
		Resolver:     resolver,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
