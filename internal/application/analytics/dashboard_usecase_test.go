package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

type fakeDashboardRepo struct {
	activeAreas int64
	deaths      int64
	population  int64
	lowStock    int64
	openEvents  int64
	err         error
}

func (r *fakeDashboardRepo) CountActiveAreas(ctx context.Context, companyID, facilityID string) (int64, error) {
	return r.activeAreas, r.err
}

func (r *fakeDashboardRepo) BatchMortality(ctx context.Context, companyID, facilityID string) (int64, int64, error) {
	return r.deaths, r.population, nil
}

func (r *fakeDashboardRepo) CountLowStockItems(ctx context.Context, companyID, facilityID string) (int64, error) {
	return r.lowStock, nil
}

func (r *fakeDashboardRepo) CountOpenComplianceEvents(ctx context.Context, companyID, facilityID string) (int64, error) {
	return r.openEvents, nil
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0, Rate(0, 0))
	assert.Equal(t, 0, Rate(5, 0)) // sin población no hay tasa
	assert.Equal(t, 25, Rate(5, 20))
	assert.Equal(t, 0, Rate(0, 100))
	assert.Equal(t, 100, Rate(100, 100))
	assert.Equal(t, 33, Rate(1, 3))  // 33.33 → 33
	assert.Equal(t, 67, Rate(2, 3))  // 66.67 → 67
	assert.Equal(t, 1, Rate(1, 200)) // 0.5 redondea a 1
}

func TestSummaryAggregatesInParallel(t *testing.T) {
	repo := &fakeDashboardRepo{
		activeAreas: 4,
		deaths:      5,
		population:  20,
		lowStock:    2,
		openEvents:  1,
	}
	uc := NewDashboardUseCase(repo)
	tc := &tenant.Context{UserID: "u1", CompanyID: "a", RoleID: "r1"}

	summary, err := uc.Summary(context.Background(), tc, "f1")
	require.NoError(t, err)

	assert.Equal(t, "f1", summary.FacilityID)
	assert.EqualValues(t, 4, summary.ActiveAreas)
	assert.Equal(t, 25, summary.MortalityRatePct)
	assert.EqualValues(t, 20, summary.BatchPopulation)
	assert.EqualValues(t, 5, summary.BatchDeaths)
	assert.EqualValues(t, 2, summary.LowStockItems)
	assert.EqualValues(t, 1, summary.OpenComplianceEvents)
}

func TestSummaryPropagatesQueryError(t *testing.T) {
	queryErr := errors.New("conexión perdida")
	uc := NewDashboardUseCase(&fakeDashboardRepo{err: queryErr})
	tc := &tenant.Context{UserID: "u1", CompanyID: "a", RoleID: "r1"}

	_, err := uc.Summary(context.Background(), tc, "f1")
	assert.ErrorIs(t, err, queryErr)
}

func TestSummaryRequiresAccessibleFacility(t *testing.T) {
	uc := NewDashboardUseCase(&fakeDashboardRepo{})
	tc := &tenant.Context{UserID: "u1", CompanyID: "a", RoleID: "r1", FacilityIDs: []string{"f1"}}

	_, err := uc.Summary(context.Background(), tc, "f2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
