package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
)

func TestCompanyCreateAsignaCuotasPorPlan(t *testing.T) {
	uc := NewCompanyUseCase(newFakeCompanyRepo())

	got, err := uc.Create(dto.CreateCompanyRequest{
		Name:  "AgroVida SAS",
		TaxID: "900123456",
		Plan:  entity.PlanPro,
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	wantFacilities, wantUsers := entity.PlanQuotas(entity.PlanPro)
	assert.Equal(t, wantFacilities, got.FacilityQuota)
	assert.Equal(t, wantUsers, got.UserQuota)
	assert.Equal(t, entity.CompanyStatusActive, got.Status)
	assert.NotEmpty(t, got.ID)
}

func TestCompanyCreateSinPlanUsaBasic(t *testing.T) {
	uc := NewCompanyUseCase(newFakeCompanyRepo())

	got, err := uc.Create(dto.CreateCompanyRequest{Name: "Finca El Roble", TaxID: "800555"})
	require.NoError(t, err)
	assert.Equal(t, entity.PlanBasic, got.Plan)
}

func TestCompanyCreateTaxIDDuplicado(t *testing.T) {
	repo := newFakeCompanyRepo()
	uc := NewCompanyUseCase(repo)

	_, err := uc.Create(dto.CreateCompanyRequest{Name: "Uno", TaxID: "900111"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateCompanyRequest{Name: "Dos", TaxID: "900111"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompanyUpdateCambioDePlanRecalculaCuotas(t *testing.T) {
	repo := newFakeCompanyRepo(activeCompany("a", 1))
	uc := NewCompanyUseCase(repo)

	plan := entity.PlanEnterprise
	got, err := uc.Update("a", dto.UpdateCompanyRequest{Plan: &plan})
	require.NoError(t, err)
	require.NotNil(t, got)

	wantFacilities, wantUsers := entity.PlanQuotas(entity.PlanEnterprise)
	assert.Equal(t, wantFacilities, got.FacilityQuota)
	assert.Equal(t, wantUsers, got.UserQuota)
}

// La baja es lógica: status pasa a inactive, el registro persiste.
func TestCompanyUpdateBajaLogica(t *testing.T) {
	repo := newFakeCompanyRepo(activeCompany("a", 5))
	uc := NewCompanyUseCase(repo)

	status := entity.CompanyStatusInactive
	got, err := uc.Update("a", dto.UpdateCompanyRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyStatusInactive, got.Status)

	stored, err := repo.GetByID("a")
	require.NoError(t, err)
	require.NotNil(t, stored, "la empresa desactivada sigue existiendo")
	assert.Equal(t, entity.CompanyStatusInactive, stored.Status)
}

func TestCompanyUpdateEstadoInvalido(t *testing.T) {
	repo := newFakeCompanyRepo(activeCompany("a", 5))
	uc := NewCompanyUseCase(repo)

	status := "suspendida"
	_, err := uc.Update("a", dto.UpdateCompanyRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyListPaginado(t *testing.T) {
	repo := newFakeCompanyRepo(activeCompany("a", 5), activeCompany("b", 5), activeCompany("c", 5))
	uc := NewCompanyUseCase(repo)

	items, meta, err := uc.List(dto.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	require.NotNil(t, meta)
	assert.Equal(t, int64(3), meta.Total)
	assert.Equal(t, int64(1), meta.TotalPages)
}
