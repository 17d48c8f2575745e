package tenant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

func TestValidate_FallaCerradoSinTenant(t *testing.T) {
	var nilCtx *tenant.Context
	assert.ErrorIs(t, nilCtx.Validate(), domain.ErrMissingTenant)

	assert.ErrorIs(t, (&tenant.Context{UserID: "u1"}).Validate(), domain.ErrMissingTenant)
	assert.ErrorIs(t, (&tenant.Context{CompanyID: "c1"}).Validate(), domain.ErrMissingTenant)
	assert.NoError(t, (&tenant.Context{UserID: "u1", CompanyID: "c1"}).Validate())
}

func TestRequireFacility_FueraDelConjuntoEsForbidden(t *testing.T) {
	ctx := &tenant.Context{
		UserID:      "u1",
		CompanyID:   "c1",
		FacilityIDs: []string{"f1", "f2"},
	}
	assert.NoError(t, ctx.RequireFacility("f1"))
	assert.ErrorIs(t, ctx.RequireFacility("f3"), domain.ErrForbidden)
	assert.ErrorIs(t, ctx.RequireFacility(""), domain.ErrInvalidInput)
}

func TestRequireFacility_ConjuntoVacioPermiteTodas(t *testing.T) {
	ctx := &tenant.Context{UserID: "u1", CompanyID: "c1"}
	assert.NoError(t, ctx.RequireFacility("cualquier-sede"))
}
