package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/ordering"
	"github.com/jhoicas/Repuestos-api/internal/application/receiving"
	"github.com/jhoicas/Repuestos-api/internal/application/resolution"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Repuestos-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildAPI arma la API completa sobre el almacén en memoria.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	st := memory.New()
	st.AddSupplier(entity.Supplier{ID: "sup-1", Name: "Repuestos Andinos"})
	st.AddSite(entity.Site{ID: "site-1", Name: "Bogotá"})
	st.AddPart(entity.Part{ID: "part-1", SKU: "FIL-001", Label: "Filtro de aceite"})
	st.AddPart(entity.Part{ID: "part-2", SKU: "BUJ-002", Label: "Bujía"})

	log := zerolog.Nop()
	repos := st.Repos()
	res := resolution.NewResolutionUseCase(repos, st, log)
	inv := inventory.NewInventoryUseCase(repos, st, log)
	return apphttp.NewApp(apphttp.AppConfig{Name: "repuestos-test"}, apphttp.RouterDeps{
		OrderUC:      ordering.NewOrderUseCase(repos, st, res, "COP", log),
		ReceivingUC:  receiving.NewReceivingUseCase(repos, st, inv, pdf.NewReceiptNoteGenerator(), log),
		InventoryUC:  inv,
		ResolutionUC: res,
		JWTSecret:    testJWTSecret,
		Log:          log,
	})
}

// call ejecuta la petición con el rol indicado y decodifica el cuerpo JSON en out (si no es nil).
func call(t *testing.T, app *fiber.App, role, method, path string, body any, out any) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// orderedWith crea un pedido en Bogotá con las líneas dadas y lo confirma.
func orderedWith(t *testing.T, app *fiber.App, lines ...dto.AddOrderItemRequest) (string, []dto.OrderItemResponse) {
	t.Helper()
	var order dto.OrderResponse
	resp := call(t, app, "compras", http.MethodPost, "/api/orders", dto.CreateOrderRequest{SupplierID: "sup-1", Site: "Bogotá"}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	items := make([]dto.OrderItemResponse, 0, len(lines))
	for _, l := range lines {
		var it dto.OrderItemResponse
		resp := call(t, app, "compras", http.MethodPost, "/api/orders/"+order.ID+"/items", l, &it)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		items = append(items, it)
	}
	resp = call(t, app, "compras", http.MethodPost, "/api/orders/"+order.ID+"/mark-ordered", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return order.ID, items
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildAPI(t)
	var body map[string]string
	resp := call(t, app, "", http.MethodGet, "/health", nil, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	app := buildAPI(t)
	resp := call(t, app, "", http.MethodGet, "/api/inventory", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_FlujoCompletoDeRecepcion(t *testing.T) {
	app := buildAPI(t)
	orderID, items := orderedWith(t, app,
		dto.AddOrderItemRequest{SKU: "FIL-001", Qty: 3},
		dto.AddOrderItemRequest{SKU: "BUJ-002", Qty: 2},
	)

	var rc dto.ReceiptResponse
	resp := call(t, app, "bodeguero", http.MethodPost, "/api/orders/"+orderID+"/receipts", dto.PostReceiptRequest{
		Site: "Bogotá",
		Lines: []dto.ReceiptLineRequest{
			{OrderItemID: items[0].ID, Qty: 3, Condition: "new", Location: "A-01"},
		},
	}, &rc)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "partially_received", rc.OrderStatus)

	var rem dto.RemainingResponse
	resp = call(t, app, "bodeguero", http.MethodGet, "/api/order-items/"+items[1].ID+"/remaining", nil, &rem)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, rem.Remaining)

	var inv dto.InventoryListResponse
	resp = call(t, app, "bodeguero", http.MethodGet, "/api/inventory?site=Bogot%C3%A1&condition=new", nil, &inv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 3, inv.Items[0].QtyOnHand)
	assert.Equal(t, "A-01", inv.Items[0].Location)

	var loc dto.KnownLocationResponse
	resp = call(t, app, "bodeguero", http.MethodGet, "/api/inventory/location?site=Bogot%C3%A1&part_id=part-1", nil, &loc)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, loc.Known)

	var list dto.ReceiptListResponse
	resp = call(t, app, "bodeguero", http.MethodGet, "/api/orders/"+orderID+"/receipts", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list.Receipts, 1)

	resp = call(t, app, "bodeguero", http.MethodGet, "/api/receipts/"+rc.ID+"/pdf", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestAPI_SobreRecepcion_Retorna409ConDetalle(t *testing.T) {
	app := buildAPI(t)
	orderID, items := orderedWith(t, app, dto.AddOrderItemRequest{SKU: "FIL-001", Qty: 2})

	var body dto.ErrorResponse
	resp := call(t, app, "bodeguero", http.MethodPost, "/api/orders/"+orderID+"/receipts", dto.PostReceiptRequest{
		Site:  "Bogotá",
		Lines: []dto.ReceiptLineRequest{{OrderItemID: items[0].ID, Qty: 5, Condition: "new", Location: "A-01"}},
	}, &body)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "OVER_RECEIPT", body.Code)
	assert.Equal(t, items[0].ID, body.Details["order_item_id"])
	assert.EqualValues(t, 5, body.Details["requested"])
	assert.EqualValues(t, 2, body.Details["remaining"])
}

func TestAPI_SinUbicacion_Retorna422(t *testing.T) {
	app := buildAPI(t)
	orderID, items := orderedWith(t, app, dto.AddOrderItemRequest{SKU: "FIL-001", Qty: 2})

	var body dto.ErrorResponse
	resp := call(t, app, "bodeguero", http.MethodPost, "/api/orders/"+orderID+"/receipts", dto.PostReceiptRequest{
		Site:  "Bogotá",
		Lines: []dto.ReceiptLineRequest{{OrderItemID: items[0].ID, Qty: 1, Condition: "new"}},
	}, &body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "LOCATION_REQUIRED", body.Code)
}

func TestAPI_ValidacionDeCuerpo(t *testing.T) {
	app := buildAPI(t)
	var body dto.ErrorResponse
	resp := call(t, app, "compras", http.MethodPost, "/api/orders", dto.CreateOrderRequest{Site: "Bogotá"}, &body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Details, "CreateOrderRequest.supplier_id")
}

func TestAPI_PedidoInexistente_Retorna404(t *testing.T) {
	app := buildAPI(t)
	var body dto.ErrorResponse
	resp := call(t, app, "compras", http.MethodGet, "/api/orders/no-existe", nil, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestAPI_ConfirmarPedidoVacio_Retorna409(t *testing.T) {
	app := buildAPI(t)
	var order dto.OrderResponse
	call(t, app, "compras", http.MethodPost, "/api/orders", dto.CreateOrderRequest{SupplierID: "sup-1", Site: "Bogotá"}, &order)

	var body dto.ErrorResponse
	resp := call(t, app, "compras", http.MethodPost, "/api/orders/"+order.ID+"/mark-ordered", nil, &body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMPTY_ORDER", body.Code)
}

func TestAPI_ReferenciaPendiente_AprobarSoloAdmin(t *testing.T) {
	app := buildAPI(t)
	orderID, items := orderedWith(t, app, dto.AddOrderItemRequest{SupplierRef: "X-789", Qty: 4})
	require.NotEmpty(t, items[0].PendingRefID)
	assert.Nil(t, items[0].PartID)

	// Recibir una línea sin repuesto falla.
	var errBody dto.ErrorResponse
	resp := call(t, app, "bodeguero", http.MethodPost, "/api/orders/"+orderID+"/receipts", dto.PostReceiptRequest{
		Site:  "Bogotá",
		Lines: []dto.ReceiptLineRequest{{OrderItemID: items[0].ID, Qty: 1, Condition: "new", Location: "C-03"}},
	}, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PART_UNRESOLVED", errBody.Code)

	// Registrarla de nuevo devuelve la misma (200, created=false).
	var again dto.PendingRefResponse
	resp = call(t, app, "compras", http.MethodPost, "/api/pending-refs", dto.RaisePendingRequest{SupplierID: "sup-1", SupplierRef: "X-789"}, &again)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, items[0].PendingRefID, again.ID)
	assert.False(t, again.Created)

	approvePath := "/api/pending-refs/" + again.ID + "/approve"
	resp = call(t, app, "bodeguero", http.MethodPost, approvePath, dto.ApprovePendingRequest{SKU: "BUJ-002"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var approved dto.ApprovePendingResponse
	resp = call(t, app, "admin", http.MethodPost, approvePath, dto.ApprovePendingRequest{SKU: "BUJ-002"}, &approved)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, approved.RelinkedItems)
	assert.Equal(t, "part-2", approved.SupplierPartRef.PartID)

	var list dto.PendingRefListResponse
	resp = call(t, app, "compras", http.MethodGet, "/api/pending-refs?supplier_id=sup-1", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list.Items)

	var rc dto.ReceiptResponse
	resp = call(t, app, "bodeguero", http.MethodPost, "/api/orders/"+orderID+"/receipts", dto.PostReceiptRequest{
		Site:  "Bogotá",
		Lines: []dto.ReceiptLineRequest{{OrderItemID: items[0].ID, Qty: 4, Condition: "refurbished", Location: "C-03"}},
	}, &rc)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "received", rc.OrderStatus)
}

func TestAPI_RechazarReferencia(t *testing.T) {
	app := buildAPI(t)
	var p dto.PendingRefResponse
	resp := call(t, app, "compras", http.MethodPost, "/api/pending-refs", dto.RaisePendingRequest{SupplierID: "sup-1", SupplierRef: "Z-1"}, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, p.Created)

	resp = call(t, app, "admin", http.MethodPost, "/api/pending-refs/"+p.ID+"/reject", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, "compras", http.MethodGet, "/api/pending-refs/"+p.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_RutaInexistente(t *testing.T) {
	app := buildAPI(t)
	var body dto.ErrorResponse
	resp := call(t, app, "", http.MethodGet, "/no-existe", nil, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ROUTE_NOT_FOUND", body.Code)
}
