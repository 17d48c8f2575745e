// Package analytics implementa los KPIs del dashboard por sede. Los valores se
// calculan bajo demanda sobre el estado actual; no hay caché ni mantenimiento
// incremental, por lo que dos lecturas consecutivas pueden diferir si la
// operación siguió moviéndose.
package analytics

import (
	"context"
	"math"
	"sync"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain/repository"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// DashboardUseCase agregación de métricas por sede.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Rate calcula el porcentaje muertes/población redondeado al entero más cercano.
// Población cero define la tasa como 0 (una sede sin lotes no está "al 100%").
func Rate(deaths, population int64) int {
	if population == 0 {
		return 0
	}
	return int(math.Round(float64(deaths) / float64(population) * 100))
}

// Summary calcula los KPIs de una sede accesible. Las cuatro consultas de
// agregación se lanzan en paralelo; el primer error aborta el resumen completo
// (mejor sin dashboard que con un dashboard a medias).
func (uc *DashboardUseCase) Summary(ctx context.Context, tc *tenant.Context, facilityID string) (*dto.DashboardSummaryDTO, error) {
	if err := tc.RequireFacility(facilityID); err != nil {
		return nil, err
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		firstErr error

		activeAreas int64
		deaths      int64
		population  int64
		lowStock    int64
		openEvents  int64
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		n, err := uc.repo.CountActiveAreas(ctx, tc.CompanyID, facilityID)
		if err != nil {
			fail(err)
			return
		}
		activeAreas = n
	}()
	go func() {
		defer wg.Done()
		d, p, err := uc.repo.BatchMortality(ctx, tc.CompanyID, facilityID)
		if err != nil {
			fail(err)
			return
		}
		deaths, population = d, p
	}()
	go func() {
		defer wg.Done()
		n, err := uc.repo.CountLowStockItems(ctx, tc.CompanyID, facilityID)
		if err != nil {
			fail(err)
			return
		}
		lowStock = n
	}()
	go func() {
		defer wg.Done()
		n, err := uc.repo.CountOpenComplianceEvents(ctx, tc.CompanyID, facilityID)
		if err != nil {
			fail(err)
			return
		}
		openEvents = n
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &dto.DashboardSummaryDTO{
		FacilityID:           facilityID,
		ActiveAreas:          activeAreas,
		MortalityRatePct:     Rate(deaths, population),
		BatchPopulation:      population,
		BatchDeaths:          deaths,
		LowStockItems:        lowStock,
		OpenComplianceEvents: openEvents,
	}, nil
}
