package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// fakeFacilityRepo almacén en memoria que respeta el filtro de tenant en las
// lecturas, igual que la implementación pgx.
type fakeFacilityRepo struct {
	facilities map[string]*entity.Facility
}

func newFakeFacilityRepo() *fakeFacilityRepo {
	return &fakeFacilityRepo{facilities: map[string]*entity.Facility{}}
}

func (r *fakeFacilityRepo) Create(f *entity.Facility) error {
	r.facilities[f.ID] = f
	return nil
}

func (r *fakeFacilityRepo) GetByID(companyID, id string) (*entity.Facility, error) {
	f, ok := r.facilities[id]
	if !ok || f.CompanyID != companyID {
		return nil, nil
	}
	return f, nil
}

func (r *fakeFacilityRepo) Update(f *entity.Facility) error {
	r.facilities[f.ID] = f
	return nil
}

func (r *fakeFacilityRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Facility, error) {
	var out []*entity.Facility
	for _, f := range r.facilities {
		if f.CompanyID == companyID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFacilityRepo) CountByCompany(companyID string) (int64, error) {
	list, _ := r.ListByCompany(companyID, 0, 0)
	return int64(len(list)), nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: map[string]*entity.Company{}}
	for _, c := range companies {
		r.companies[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}
func (r *fakeCompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCompanyRepo) Update(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}
func (r *fakeCompanyRepo) Count() (int64, error) { return int64(len(r.companies)), nil }

func activeCompany(id string, facilityQuota int) *entity.Company {
	return &entity.Company{
		ID:            id,
		Name:          "Empresa " + id,
		TaxID:         "900" + id,
		Plan:          entity.PlanPro,
		Status:        entity.CompanyStatusActive,
		FacilityQuota: facilityQuota,
		UserQuota:     50,
	}
}

func fullAccessContext(companyID string) *tenant.Context {
	return &tenant.Context{
		UserID:    "user-" + companyID,
		CompanyID: companyID,
		RoleID:    "role-" + companyID,
	}
}

func TestFacilityTenantIsolation(t *testing.T) {
	repo := newFakeFacilityRepo()
	companies := newFakeCompanyRepo(activeCompany("a", 10), activeCompany("b", 10))
	uc := NewFacilityUseCase(repo, companies)

	created, err := uc.Create(fullAccessContext("a"), dto.CreateFacilityRequest{Name: "Finca Norte"})
	require.NoError(t, err)
	require.NotNil(t, created)

	// La empresa B no ve la sede de A ni conociendo su id: la consulta filtrada
	// por tenant la trata como inexistente.
	got, err := uc.GetByID(fullAccessContext("b"), created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// El dueño sí la ve.
	got, err = uc.GetByID(fullAccessContext("a"), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Finca Norte", got.Name)
	assert.Equal(t, "a", got.CompanyID)
}

func TestFacilityAccessRestrictedToAssignedSet(t *testing.T) {
	repo := newFakeFacilityRepo()
	companies := newFakeCompanyRepo(activeCompany("a", 10))
	uc := NewFacilityUseCase(repo, companies)

	admin := fullAccessContext("a")
	f1, err := uc.Create(admin, dto.CreateFacilityRequest{Name: "Finca Norte"})
	require.NoError(t, err)
	f2, err := uc.Create(admin, dto.CreateFacilityRequest{Name: "Finca Sur"})
	require.NoError(t, err)

	// Usuario limitado a la primera sede.
	limited := &tenant.Context{
		UserID:      "u2",
		CompanyID:   "a",
		RoleID:      "r2",
		FacilityIDs: []string{f1.ID},
	}

	got, err := uc.GetByID(limited, f1.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = uc.GetByID(limited, f2.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// List filtra al conjunto accesible.
	items, _, err := uc.List(limited, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, f1.ID, items[0].ID)
}

func TestFacilityQuotaEnforced(t *testing.T) {
	repo := newFakeFacilityRepo()
	companies := newFakeCompanyRepo(activeCompany("a", 1))
	uc := NewFacilityUseCase(repo, companies)

	tc := fullAccessContext("a")
	_, err := uc.Create(tc, dto.CreateFacilityRequest{Name: "Finca Norte"})
	require.NoError(t, err)

	_, err = uc.Create(tc, dto.CreateFacilityRequest{Name: "Finca Sur"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestFacilityRequiresVerifiedSession(t *testing.T) {
	uc := NewFacilityUseCase(newFakeFacilityRepo(), newFakeCompanyRepo())

	_, err := uc.GetByID(nil, "f1")
	assert.ErrorIs(t, err, domain.ErrMissingTenant)

	_, err = uc.GetByID(&tenant.Context{UserID: "u1"}, "f1")
	assert.ErrorIs(t, err, domain.ErrMissingTenant)
}
