package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

// fakeInventoryRepo replica la semántica de la implementación pgx: Update
// incrementa la versión siempre (last-write-wins); UpdateWithVersion solo si la
// versión almacenada coincide con la esperada.
type fakeInventoryRepo struct {
	items map[string]*entity.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: map[string]*entity.InventoryItem{}}
}

func (r *fakeInventoryRepo) Create(i *entity.InventoryItem) error {
	cp := *i
	r.items[i.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) GetByID(companyID, id string) (*entity.InventoryItem, error) {
	i, ok := r.items[id]
	if !ok || i.CompanyID != companyID {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInventoryRepo) GetByProductAndFacility(companyID, productID, facilityID string) (*entity.InventoryItem, error) {
	for _, i := range r.items {
		if i.CompanyID == companyID && i.ProductID == productID && i.FacilityID == facilityID {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) Update(i *entity.InventoryItem) error {
	stored, ok := r.items[i.ID]
	if !ok {
		return domain.ErrNotFound
	}
	i.Version = stored.Version + 1
	cp := *i
	r.items[i.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) UpdateWithVersion(i *entity.InventoryItem, expectedVersion int64) error {
	stored, ok := r.items[i.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrVersionMismatch
	}
	i.Version = stored.Version + 1
	cp := *i
	r.items[i.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, i := range r.items {
		if i.CompanyID == companyID && i.FacilityID == facilityID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) CountByFacility(companyID, facilityID string) (int64, error) {
	list, _ := r.ListByFacility(companyID, facilityID, 0, 0)
	return int64(len(list)), nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}
func (r *fakeProductRepo) GetBySKU(companyID, sku string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error                          { return nil }
func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountByCompany(companyID string) (int64, error) { return 0, nil }

func newInventoryFixture(t *testing.T) (*UseCase, *tenant.Context, string) {
	t.Helper()
	repo := newFakeInventoryRepo()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: "a", SKU: "FERT-001", Name: "Fertilizante"},
	}}
	uc := NewUseCase(repo, products)
	tc := &tenant.Context{UserID: "u1", CompanyID: "a", RoleID: "r1"}

	created, err := uc.Create(tc, dto.CreateInventoryItemRequest{
		FacilityID:        "f1",
		ProductID:         "p1",
		QuantityAvailable: decimal.NewFromInt(100),
		ReorderThreshold:  decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, created.Version)
	return uc, tc, created.ID
}

func TestUpdateQuantityWithMatchingVersion(t *testing.T) {
	uc, tc, id := newInventoryFixture(t)

	v1 := int64(1)
	updated, err := uc.UpdateQuantity(tc, id, dto.UpdateInventoryQuantityRequest{
		QuantityAvailable: decimal.NewFromInt(80),
		ExpectedVersion:   &v1,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated.Version)
	assert.True(t, updated.QuantityAvailable.Equal(decimal.NewFromInt(80)))
}

func TestUpdateQuantityStaleVersionConflicts(t *testing.T) {
	uc, tc, id := newInventoryFixture(t)

	// Primera edición avanza la versión a 2.
	v1 := int64(1)
	_, err := uc.UpdateQuantity(tc, id, dto.UpdateInventoryQuantityRequest{
		QuantityAvailable: decimal.NewFromInt(80),
		ExpectedVersion:   &v1,
	})
	require.NoError(t, err)

	// Un segundo caller con la versión vieja no sobrescribe.
	_, err = uc.UpdateQuantity(tc, id, dto.UpdateInventoryQuantityRequest{
		QuantityAvailable: decimal.NewFromInt(50),
		ExpectedVersion:   &v1,
	})
	assert.ErrorIs(t, err, domain.ErrVersionMismatch)

	// La cantidad de la primera edición sigue intacta.
	got, err := uc.GetByID(tc, id)
	require.NoError(t, err)
	assert.True(t, got.QuantityAvailable.Equal(decimal.NewFromInt(80)))
	assert.EqualValues(t, 2, got.Version)
}

func TestUpdateQuantityWithoutPreconditionIsLastWriteWins(t *testing.T) {
	uc, tc, id := newInventoryFixture(t)

	_, err := uc.UpdateQuantity(tc, id, dto.UpdateInventoryQuantityRequest{
		QuantityAvailable: decimal.NewFromInt(80),
	})
	require.NoError(t, err)

	// Sin precondición la segunda escritura gana aunque no haya visto la primera.
	updated, err := uc.UpdateQuantity(tc, id, dto.UpdateInventoryQuantityRequest{
		QuantityAvailable: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, updated.QuantityAvailable.Equal(decimal.NewFromInt(50)))
	assert.EqualValues(t, 3, updated.Version)
}

func TestCreateDuplicateProductFacilityPair(t *testing.T) {
	uc, tc, _ := newInventoryFixture(t)

	_, err := uc.Create(tc, dto.CreateInventoryItemRequest{
		FacilityID:        "f1",
		ProductID:         "p1",
		QuantityAvailable: decimal.NewFromInt(10),
		ReorderThreshold:  decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLowStockFlag(t *testing.T) {
	uc, tc, id := newInventoryFixture(t)

	updated, err := uc.UpdateQuantity(tc, id, dto.UpdateInventoryQuantityRequest{
		QuantityAvailable: decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.True(t, updated.LowStock)

	// En el umbral exacto no cuenta como stock bajo (estrictamente por debajo).
	updated, err = uc.UpdateQuantity(tc, id, dto.UpdateInventoryQuantityRequest{
		QuantityAvailable: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.False(t, updated.LowStock)
}
