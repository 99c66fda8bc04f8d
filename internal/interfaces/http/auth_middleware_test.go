package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	pkgjwt "github.com/jhoicas/Repuestos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "repuestos-api-test"
	testExpMin    = 60
)

// tokenForRole genera el header Authorization con un JWT del rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// postWithAuth envía un POST JSON con el header Authorization tal cual (vacío = sin header).
func postWithAuth(t *testing.T, app *fiber.App, path, authHeader string, body any) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

// raisePending abre una referencia pendiente como compras y devuelve su id.
func raisePending(t *testing.T, app *fiber.App, ref string) string {
	t.Helper()
	var p dto.PendingRefResponse
	resp := call(t, app, pkgjwt.RoleCompras, http.MethodPost, "/api/pending-refs",
		dto.RaisePendingRequest{SupplierID: "sup-1", SupplierRef: ref}, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return p.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole sobre las rutas de administración
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AprobarYRechazar_SoloAdmin(t *testing.T) {
	cases := []struct {
		name   string
		action string
		role   string
		status int
		code   string
	}{
		{"bodeguero no aprueba", "approve", pkgjwt.RoleBodeguero, http.StatusForbidden, "FORBIDDEN"},
		{"compras no aprueba", "approve", pkgjwt.RoleCompras, http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero no rechaza", "reject", pkgjwt.RoleBodeguero, http.StatusForbidden, "FORBIDDEN"},
		{"compras no rechaza", "reject", pkgjwt.RoleCompras, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", "approve", "", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildAPI(t)
			id := raisePending(t, app, "R-"+tc.action)

			resp, body := postWithAuth(t, app, "/api/pending-refs/"+id+"/"+tc.action,
				tokenForRole(t, tc.role), dto.ApprovePendingRequest{SKU: "BUJ-002"})
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)

			// La referencia sigue en la cola.
			resp = call(t, app, pkgjwt.RoleCompras, http.MethodGet, "/api/pending-refs/"+id, nil, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestRequireRole_AdminApruebaYRechaza(t *testing.T) {
	app := buildAPI(t)

	approveID := raisePending(t, app, "A-1")
	var approved dto.ApprovePendingResponse
	resp := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/pending-refs/"+approveID+"/approve",
		dto.ApprovePendingRequest{SKU: "FIL-001"}, &approved)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "part-1", approved.SupplierPartRef.PartID)

	rejectID := raisePending(t, app, "A-2")
	resp = call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/pending-refs/"+rejectID+"/reject", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Una referencia inexistente llega al caso de uso: el rol ya fue aceptado.
	var body dto.ErrorResponse
	resp = call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/pending-refs/"+rejectID+"/reject", nil, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestRequireRole_RutasOperativasAbiertasATodoRol(t *testing.T) {
	app := buildAPI(t)
	for _, role := range []string{pkgjwt.RoleAdmin, pkgjwt.RoleCompras, pkgjwt.RoleBodeguero} {
		resp := call(t, app, role, http.MethodGet, "/api/pending-refs", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "rol %s", role)
		resp = call(t, app, role, http.MethodGet, "/api/inventory", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "rol %s", role)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_HeaderInvalido(t *testing.T) {
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin esquema Bearer", "Token abc", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildAPI(t)
			resp, body := postWithAuth(t, app, "/api/orders", tc.header,
				dto.CreateOrderRequest{SupplierID: "sup-1", Site: "Bogotá"})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_UsuarioDelTokenQuedaComoCreador(t *testing.T) {
	app := buildAPI(t)
	var order dto.OrderResponse
	resp := call(t, app, pkgjwt.RoleCompras, http.MethodPost, "/api/orders",
		dto.CreateOrderRequest{SupplierID: "sup-1", Site: "Bogotá"}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, testUserID, order.CreatedBy)

	var p dto.PendingRefResponse
	resp = call(t, app, pkgjwt.RoleBodeguero, http.MethodPost, "/api/pending-refs",
		dto.RaisePendingRequest{SupplierID: "sup-1", SupplierRef: "U-1"}, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, testUserID, p.CreatedBy)
}
