package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/application/inspection"
	"github.com/agrovida/agroops-api/internal/domain/entity"
	apphttp "github.com/agrovida/agroops-api/internal/interfaces/http"
	"github.com/agrovida/agroops-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: solo el repositorio de inspecciones guarda estado; el resto
// devuelve vacío. GetByID respeta el filtro de empresa igual que la
// implementación pgx.
// ──────────────────────────────────────────────────────────────────────────────

type memInspectionRepo struct {
	inspections map[string]*entity.QualityInspection
}

func newMemInspectionRepo(seed ...*entity.QualityInspection) *memInspectionRepo {
	r := &memInspectionRepo{inspections: map[string]*entity.QualityInspection{}}
	for _, i := range seed {
		r.inspections[i.ID] = i
	}
	return r
}

func (r *memInspectionRepo) Create(i *entity.QualityInspection) error {
	r.inspections[i.ID] = i
	return nil
}

func (r *memInspectionRepo) GetByID(companyID, id string) (*entity.QualityInspection, error) {
	i, ok := r.inspections[id]
	if !ok || i.CompanyID != companyID {
		return nil, nil
	}
	return i, nil
}

func (r *memInspectionRepo) Update(i *entity.QualityInspection) error {
	r.inspections[i.ID] = i
	return nil
}

func (r *memInspectionRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.QualityInspection, error) {
	var out []*entity.QualityInspection
	for _, i := range r.inspections {
		if i.CompanyID == companyID && i.FacilityID == facilityID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memInspectionRepo) ListByTarget(companyID, targetType, targetID string, limit, offset int) ([]*entity.QualityInspection, error) {
	var out []*entity.QualityInspection
	for _, i := range r.inspections {
		if i.CompanyID == companyID && i.TargetType == targetType && i.TargetID == targetID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memInspectionRepo) CountByFacility(companyID, facilityID string) (int64, error) {
	list, _ := r.ListByFacility(companyID, facilityID, 0, 0)
	return int64(len(list)), nil
}

func (r *memInspectionRepo) CountByTarget(companyID, targetType, targetID string) (int64, error) {
	list, _ := r.ListByTarget(companyID, targetType, targetID, 0, 0)
	return int64(len(list)), nil
}

type emptyTemplateRepo struct{}

func (emptyTemplateRepo) Create(*entity.QualityTemplate) error { return nil }
func (emptyTemplateRepo) GetByID(companyID, id string) (*entity.QualityTemplate, error) {
	return nil, nil
}
func (emptyTemplateRepo) GetActiveByRoot(companyID, rootID string) (*entity.QualityTemplate, error) {
	return nil, nil
}
func (emptyTemplateRepo) Update(*entity.QualityTemplate) error { return nil }
func (emptyTemplateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.QualityTemplate, error) {
	return nil, nil
}
func (emptyTemplateRepo) ListVersions(companyID, rootID string) ([]*entity.QualityTemplate, error) {
	return nil, nil
}
func (emptyTemplateRepo) CountByCompany(companyID string) (int64, error) { return 0, nil }
func (emptyTemplateRepo) SetStatus(companyID, id, status string) error { return nil }
func (emptyTemplateRepo) CountUsages(templateID string) (int64, error) { return 0, nil }

type emptyBatchRepo struct{}

func (emptyBatchRepo) Create(*entity.Batch) error { return nil }
func (emptyBatchRepo) GetByID(companyID, id string) (*entity.Batch, error) { return nil, nil }
func (emptyBatchRepo) GetByCode(companyID, code string) (*entity.Batch, error) { return nil, nil }
func (emptyBatchRepo) Update(*entity.Batch) error { return nil }
func (emptyBatchRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.Batch, error) {
	return nil, nil
}
func (emptyBatchRepo) CountByFacility(companyID, facilityID string) (int64, error) { return 0, nil }

type emptyAreaRepo struct{}

func (emptyAreaRepo) Create(*entity.Area) error { return nil }
func (emptyAreaRepo) GetByID(companyID, id string) (*entity.Area, error) { return nil, nil }
func (emptyAreaRepo) Update(*entity.Area) error { return nil }
func (emptyAreaRepo) ListByFacility(companyID, facilityID string, limit, offset int) ([]*entity.Area, error) {
	return nil, nil
}
func (emptyAreaRepo) CountByFacility(companyID, facilityID string) (int64, error) { return 0, nil }
func (emptyAreaRepo) Delete(companyID, id string) error { return nil }

// buildInspectionApp monta las rutas de inspecciones sobre el repositorio dado,
// con el middleware de autenticación real.
func buildInspectionApp(repo *memInspectionRepo) *fiber.App {
	uc := inspection.NewUseCase(
		repo, emptyTemplateRepo{}, emptyBatchRepo{}, emptyAreaRepo{},
		nil, nil,
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	h := apphttp.NewInspectionHandler(uc)

	app := fiber.New()
	auth := apphttp.AuthMiddleware(testJWTSecret)
	app.Post("/inspections/:id/submit", auth, h.Submit)
	app.Get("/inspections", auth, h.List)
	return app
}

func submittedInspection(id, companyID string) *entity.QualityInspection {
	now := time.Now()
	return &entity.QualityInspection{
		ID:              id,
		CompanyID:       companyID,
		FacilityID:      "fac-1",
		TargetType:      entity.InspectionTargetBatch,
		TargetID:        "batch-1",
		TemplateID:      "tpl-1",
		TemplateVersion: 1,
		Status:          entity.InspectionStatusSubmitted,
		Result:          "passed",
		SubmittedAt:     &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

// Enviar contra un id inexistente debe responder 404, nunca un éxito con data
// nula: el caller externo no tiene otra forma de saber que nada se persistió.
func TestInspectionSubmit_IDInexistente_Retorna404(t *testing.T) {
	app := buildInspectionApp(newMemInspectionRepo())

	req := httptest.NewRequest(http.MethodPost, "/inspections/no-existe/submit",
		strings.NewReader(`{"answers":{}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, testRoleAdmin))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

// Una inspección de otra empresa es invisible: enviar contra su id responde el
// mismo 404 que un id inexistente.
func TestInspectionSubmit_OtraEmpresa_Retorna404(t *testing.T) {
	ajena := submittedInspection("insp-ajena", "otra-empresa")
	ajena.Status = entity.InspectionStatusDraft
	app := buildInspectionApp(newMemInspectionRepo(ajena))

	req := httptest.NewRequest(http.MethodPost, "/inspections/insp-ajena/submit",
		strings.NewReader(`{"answers":{}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, testRoleAdmin))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Reenviar una inspección ya terminal responde 409.
func TestInspectionSubmit_YaEnviada_Retorna409(t *testing.T) {
	app := buildInspectionApp(newMemInspectionRepo(submittedInspection("insp-1", testCompanyID)))

	req := httptest.NewRequest(http.MethodPost, "/inspections/insp-1/submit",
		strings.NewReader(`{"answers":{}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, testRoleAdmin))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// List por objetivo
// ──────────────────────────────────────────────────────────────────────────────

// Ambas ramas de List llevan metadatos de paginación en el sobre.
func TestInspectionList_PorObjetivo_IncluyePaginacion(t *testing.T) {
	app := buildInspectionApp(newMemInspectionRepo(submittedInspection("insp-1", testCompanyID)))

	req := httptest.NewRequest(http.MethodGet, "/inspections?target_type=batch&target_id=batch-1", nil)
	req.Header.Set("Authorization", tokenForRole(t, testRoleAdmin))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Meta    struct {
			Pagination *struct {
				Page  int   `json:"page"`
				Limit int   `json:"limit"`
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta.Pagination, "la rama por objetivo debe paginar igual que la rama por sede")
	assert.Equal(t, int64(1), body.Meta.Pagination.Total)
	assert.Equal(t, 1, body.Meta.Pagination.Page)
}
