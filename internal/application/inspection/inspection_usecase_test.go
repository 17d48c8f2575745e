package inspection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/application/dto"
	"github.com/agrovida/agroops-api/internal/domain"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	"github.com/agrovida/agroops-api/internal/domain/forms"
	"github.com/agrovida/agroops-api/internal/domain/tenant"
)

type fakeTemplateRepo struct {
	templates map[string]*entity.QualityTemplate
	usages    map[string]int64
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{
		templates: map[string]*entity.QualityTemplate{},
		usages:    map[string]int64{},
	}
}

func (r *fakeTemplateRepo) Create(t *entity.QualityTemplate) error {
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *fakeTemplateRepo) GetByID(companyID, id string) (*entity.QualityTemplate, error) {
	t, ok := r.templates[id]
	if !ok || t.CompanyID != companyID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTemplateRepo) GetActiveByRoot(companyID, rootID string) (*entity.QualityTemplate, error) {
	for _, t := range r.templates {
		if t.CompanyID == companyID && t.RootID == rootID && t.Status == entity.TemplateStatusActive {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) Update(t *entity.QualityTemplate) error {
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *fakeTemplateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.QualityTemplate, error) {
	var out []*entity.QualityTemplate
	for _, t := range r.templates {
		if t.CompanyID == companyID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) ListVersions(companyID, rootID string) ([]*entity.QualityTemplate, error) {
	var out []*entity.QualityTemplate
	for _, t := range r.templates {
		if t.CompanyID == companyID && t.RootID == rootID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) CountByCompany(companyID string) (int64, error) {
	list, _ := r.ListByCompany(companyID, 0, 0)
	return int64(len(list)), nil
}

func (r *fakeTemplateRepo) SetStatus(companyID, id, status string) error {
	t, ok := r.templates[id]
	if !ok || t.CompanyID != companyID {
		return domain.ErrNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTemplateRepo) CountUsages(templateID string) (int64, error) {
	return r.usages[templateID], nil
}

type fakeInspectionRepo struct {
	inspections map[string]*entity.QualityInspection
}

func newFakeInspectionRepo() *fakeInspectionRepo {
	return &fakeInspectionRepo{inspections: map[string]*entity.QualityInspection{}}
}

func (r *fakeInspectionRepo) Create(i *entity.QualityInspection) error {
	cp := *i
	r.inspections[i.ID] = &cp
	return nil
}

func (r *fakeInspectionRepo) GetByID(companyID, id string) (*entity.QualityInspection, error) {
	i, ok := r.inspections[id]
	if !ok || i.CompanyID != companyID {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInspectionRepo) Update(i *entity.QualityInspection) error {
	cp := *i
	r.inspections[i.ID] = &cp
	return nil
}

func (r *fakeInspectionRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.QualityInspection, error) {
	var out []*entity.QualityInspection
	for _, i := range r.inspections {
		if i.CompanyID == companyID && i.FacilityID == facilityID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInspectionRepo) ListByTarget(companyID, targetType, targetID string, limit, offset int) ([]*entity.QualityInspection, error) {
	var out []*entity.QualityInspection
	for _, i := range r.inspections {
		if i.CompanyID == companyID && i.TargetType == targetType && i.TargetID == targetID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInspectionRepo) CountByFacility(companyID, facilityID string) (int64, error) {
	list, _ := r.ListByFacility(companyID, facilityID, 0, 0)
	return int64(len(list)), nil
}

func (r *fakeInspectionRepo) CountByTarget(companyID, targetType, targetID string) (int64, error) {
	list, _ := r.ListByTarget(companyID, targetType, targetID, 0, 0)
	return int64(len(list)), nil
}

type fakeBatchRepo struct {
	batches map[string]*entity.Batch
}

func (r *fakeBatchRepo) Create(b *entity.Batch) error { r.batches[b.ID] = b; return nil }
func (r *fakeBatchRepo) GetByID(companyID, id string) (*entity.Batch, error) {
	b, ok := r.batches[id]
	if !ok || b.CompanyID != companyID {
		return nil, nil
	}
	return b, nil
}
func (r *fakeBatchRepo) GetByCode(companyID, code string) (*entity.Batch, error) { return nil, nil }
func (r *fakeBatchRepo) Update(b *entity.Batch) error                            { return nil }
func (r *fakeBatchRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.Batch, error) {
	return nil, nil
}
func (r *fakeBatchRepo) CountByFacility(companyID, facilityID string) (int64, error) { return 0, nil }

type fakeAreaRepo struct{}

func (r *fakeAreaRepo) Create(a *entity.Area) error                       { return nil }
func (r *fakeAreaRepo) GetByID(companyID, id string) (*entity.Area, error) { return nil, nil }
func (r *fakeAreaRepo) Update(a *entity.Area) error                       { return nil }
func (r *fakeAreaRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.Area, error) {
	return nil, nil
}
func (r *fakeAreaRepo) CountByFacility(companyID, facilityID string) (int64, error) { return 0, nil }
func (r *fakeAreaRepo) Delete(companyID, id string) error                           { return nil }

func phSchema() forms.Schema {
	min := 0.0
	max := 14.0
	tmin := 5.5
	tmax := 6.8
	return forms.Schema{
		Sections: []forms.Section{{
			Title: "Suelo",
			Fields: []forms.Field{{
				Key:      "ph_level",
				Type:     forms.FieldTypeNumber,
				Label:    "Nivel de pH",
				Required: true,
				Critical: true,
				Validation: &forms.Validation{
					Min: &min, Max: &max,
					ThresholdMin: &tmin, ThresholdMax: &tmax,
				},
			}},
		}},
	}
}

func inspectionFixture(t *testing.T) (*TemplateUseCase, *UseCase, *fakeTemplateRepo, *tenant.Context, string, string) {
	t.Helper()
	templateRepo := newFakeTemplateRepo()
	inspectionRepo := newFakeInspectionRepo()
	batches := &fakeBatchRepo{batches: map[string]*entity.Batch{
		"b1": {ID: "b1", CompanyID: "a", FacilityID: "f1", Code: "L-001", Stage: entity.BatchStageGrowing, Population: 100},
	}}

	templates := NewTemplateUseCase(templateRepo)
	inspections := NewUseCase(inspectionRepo, templateRepo, batches, &fakeAreaRepo{}, nil, nil, nil)
	tc := &tenant.Context{UserID: "u1", CompanyID: "a", RoleID: "r1"}

	created, err := templates.Create(tc, dto.CreateTemplateRequest{Name: "Control de suelo", Schema: phSchema()})
	require.NoError(t, err)

	draft, err := inspections.Create(tc, dto.CreateInspectionRequest{
		FacilityID: "f1",
		TargetType: entity.InspectionTargetBatch,
		TargetID:   "b1",
		TemplateID: created.ID,
	})
	require.NoError(t, err)
	require.Equal(t, entity.InspectionStatusDraft, draft.Status)
	return templates, inspections, templateRepo, tc, created.ID, draft.ID
}

func TestSubmitMissingRequiredFieldRejected(t *testing.T) {
	_, inspections, _, tc, _, draftID := inspectionFixture(t)

	_, err := inspections.Submit(context.Background(), tc, draftID, dto.SubmitInspectionRequest{
		Answers: forms.Answers{},
	})
	require.Error(t, err)

	var errs forms.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, "required", errs["ph_level"])

	// El borrador no cambió.
	got, err := inspections.GetByID(tc, draftID)
	require.NoError(t, err)
	assert.Equal(t, entity.InspectionStatusDraft, got.Status)
	assert.Empty(t, got.Result)
}

func TestSubmitDerivesResultAndIsTerminal(t *testing.T) {
	_, inspections, _, tc, templateID, draftID := inspectionFixture(t)

	submitted, err := inspections.Submit(context.Background(), tc, draftID, dto.SubmitInspectionRequest{
		Answers: forms.Answers{"ph_level": 6.0},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InspectionStatusSubmitted, submitted.Status)
	assert.Equal(t, forms.ResultPassed, submitted.Result)
	assert.Equal(t, templateID, submitted.TemplateID)
	require.NotNil(t, submitted.SubmittedAt)

	// Reenviar una inspección terminal es conflicto.
	_, err = inspections.Submit(context.Background(), tc, draftID, dto.SubmitInspectionRequest{
		Answers: forms.Answers{"ph_level": 6.0},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSubmitCriticalOutOfThresholdFails(t *testing.T) {
	_, inspections, _, tc, _, draftID := inspectionFixture(t)

	// 4.0 pasa el rango duro (0..14) pero queda fuera del umbral crítico (5.5..6.8).
	submitted, err := inspections.Submit(context.Background(), tc, draftID, dto.SubmitInspectionRequest{
		Answers: forms.Answers{"ph_level": 4.0},
	})
	require.NoError(t, err)
	assert.Equal(t, forms.ResultFailed, submitted.Result)
}

func TestTemplateEditWithUsagesCreatesNewVersion(t *testing.T) {
	templates, inspections, templateRepo, tc, templateID, draftID := inspectionFixture(t)

	// Registrar un uso real de la versión 1.
	_, err := inspections.Submit(context.Background(), tc, draftID, dto.SubmitInspectionRequest{
		Answers: forms.Answers{"ph_level": 6.0},
	})
	require.NoError(t, err)
	templateRepo.usages[templateID] = 1

	schema := phSchema()
	schema.Sections[0].Fields = append(schema.Sections[0].Fields, forms.Field{
		Key:   "notas",
		Type:  forms.FieldTypeText,
		Label: "Notas",
	})
	next, err := templates.Update(tc, templateID, dto.UpdateTemplateRequest{Schema: &schema})
	require.NoError(t, err)

	assert.NotEqual(t, templateID, next.ID)
	assert.Equal(t, 2, next.Version)
	assert.Equal(t, entity.TemplateStatusActive, next.Status)

	// La versión 1 queda archivada pero consultable, y la inspección enviada
	// sigue apuntando a ella.
	v1, err := templates.GetByID(tc, templateID)
	require.NoError(t, err)
	assert.Equal(t, entity.TemplateStatusArchived, v1.Status)
	assert.Equal(t, v1.RootID, next.RootID)

	got, err := inspections.GetByID(tc, draftID)
	require.NoError(t, err)
	assert.Equal(t, templateID, got.TemplateID)
	assert.Equal(t, 1, got.TemplateVersion)
}

func TestTemplateEditWithoutUsagesMutatesInPlace(t *testing.T) {
	templates, _, _, tc, templateID, _ := inspectionFixture(t)

	schema := phSchema()
	schema.Sections[0].Title = "Suelo y sustrato"
	updated, err := templates.Update(tc, templateID, dto.UpdateTemplateRequest{Schema: &schema})
	require.NoError(t, err)

	assert.Equal(t, templateID, updated.ID)
	assert.Equal(t, 1, updated.Version)
	assert.Equal(t, "Suelo y sustrato", updated.Schema.Sections[0].Title)
}

func TestCreateInspectionAgainstArchivedTemplateConflicts(t *testing.T) {
	templates, inspections, _, tc, templateID, _ := inspectionFixture(t)

	require.NoError(t, templates.Archive(tc, templateID))

	_, err := inspections.Create(tc, dto.CreateInspectionRequest{
		FacilityID: "f1",
		TargetType: entity.InspectionTargetBatch,
		TargetID:   "b1",
		TemplateID: templateID,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
