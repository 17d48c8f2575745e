package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/agroops-api/internal/domain/permissions"
	apphttp "github.com/agrovida/agroops-api/internal/interfaces/http"
	pkgjwt "github.com/agrovida/agroops-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testCompanyID  = "00000000-0000-0000-0000-000000000002"
	testRoleViewer = "role-viewer"
	testRoleAdmin  = "role-admin"
	testIssuer     = "agroops-test"
	testExpMin     = 60
)

// staticResolver resuelve permisos desde definiciones en memoria.
type staticResolver struct {
	roles map[string]map[string][]string
}

func (r *staticResolver) Allows(roleID string, resource permissions.Resource, action permissions.Action) (bool, error) {
	raw, ok := r.roles[roleID]
	if !ok {
		return false, nil
	}
	m, err := permissions.Compile(raw)
	if err != nil {
		return false, err
	}
	return m.Allows(resource, action), nil
}

func newTestResolver() *staticResolver {
	return &staticResolver{roles: map[string]map[string][]string{
		testRoleAdmin:  {"batches": {"manage", "delete"}},
		testRoleViewer: {"batches": {"read"}},
	}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y construir el tenant.Context
//   - RequirePermission para autorizar la tupla recurso/acción
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(resource permissions.Resource, action permissions.Action) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(newTestResolver(), resource, action),
		func(c *fiber.Ctx) error {
			tc := apphttp.GetTenant(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         true,
				"user_id":    tc.UserID,
				"company_id": tc.CompanyID,
				"role_id":    tc.RoleID,
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, roleID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.SessionClaims{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		RoleID:    roleID,
	}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el rol concede la acción → HTTP 200.
func TestRequirePermission_WriteConRolManage(t *testing.T) {
	// manage implica write sin necesidad de concederlo explícitamente.
	app := buildTestApp(permissions.ResourceBatches, permissions.ActionWrite)
	resp := doRequest(t, app, tokenForRole(t, testRoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un rol con manage debe poder escribir el recurso")
}

// Caso 2: el rol solo lee → escribir responde 403.
func TestRequirePermission_ViewerBloqueadoEnEscritura(t *testing.T) {
	app := buildTestApp(permissions.ResourceBatches, permissions.ActionWrite)
	resp := doRequest(t, app, tokenForRole(t, testRoleViewer))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un rol de solo lectura no debe poder escribir")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 2b: delete nunca se deriva de manage; debe concederse explícito.
func TestRequirePermission_DeleteExplicitoRequerido(t *testing.T) {
	app := buildTestApp(permissions.ResourceBatches, permissions.ActionDelete)

	resp := doRequest(t, app, tokenForRole(t, testRoleAdmin))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el admin concede delete explícitamente")

	resp2 := doRequest(t, app, tokenForRole(t, testRoleViewer))
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
}

// Caso 3: recurso no concedido en absoluto → 403 (ausencia = denegación).
func TestRequirePermission_RecursoNoConcedido(t *testing.T) {
	app := buildTestApp(permissions.ResourceInventory, permissions.ActionRead)
	resp := doRequest(t, app, tokenForRole(t, testRoleViewer))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 4: token sin rol asignado → HTTP 401 MISSING_ROLE.
func TestRequirePermission_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(permissions.ResourceBatches, permissions.ActionRead)
	resp := doRequest(t, app, tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin rol debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE",
		"la respuesta debe indicar el código MISSING_ROLE")
}

// Caso 5: sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequirePermission_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(permissions.ResourceBatches, permissions.ActionRead)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequirePermission_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(permissions.ResourceBatches, permissions.ActionRead)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — construcción del tenant.Context desde el token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ConstruyeTenantDesdeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		tc := apphttp.GetTenant(c)
		return c.JSON(fiber.Map{
			"user_id":      tc.UserID,
			"company_id":   tc.CompanyID,
			"role_id":      tc.RoleID,
			"facility_ids": tc.FacilityIDs,
		})
	})

	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.SessionClaims{
		UserID:      testUserID,
		CompanyID:   testCompanyID,
		RoleID:      testRoleAdmin,
		FacilityIDs: []string{"fac-1", "fac-2"},
	}, testIssuer, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID      string   `json:"user_id"`
		CompanyID   string   `json:"company_id"`
		RoleID      string   `json:"role_id"`
		FacilityIDs []string `json:"facility_ids"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, testCompanyID, body.CompanyID)
	assert.Equal(t, testRoleAdmin, body.RoleID)
	assert.Equal(t, []string{"fac-1", "fac-2"}, body.FacilityIDs)
}

// Un token sin company_id no resuelve tenant → 401 aunque la firma sea válida.
func TestAuthMiddleware_TokenSinTenant_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.SessionClaims{
		UserID: testUserID, // sin CompanyID
	}, testIssuer, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TENANT")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con claims de sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ClaimsCompletos(t *testing.T) {
	session := pkgjwt.SessionClaims{
		UserID:      testUserID,
		CompanyID:   testCompanyID,
		RoleID:      testRoleViewer,
		FacilityIDs: []string{"fac-1"},
	}
	tok, err := pkgjwt.Generate(testJWTSecret, session, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	parsed, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, session, *parsed)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.SessionClaims{
		UserID: testUserID, CompanyID: testCompanyID,
	}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.SessionClaims{
		UserID: testUserID, CompanyID: testCompanyID,
	}, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
