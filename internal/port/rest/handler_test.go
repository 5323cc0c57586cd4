package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/memory"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/whatsapp"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productJSON = `{"id":7,"name":"Camiseta Boca","price":100,"category":"Camisetas","club":"Boca","sizes":["S","M","L"],"images":["a.jpg"]}`

const shippingJSON = `{
	"locality":"Lanús","postal_code":"1824","address":"Av. Siempre Viva 742",
	"between_streets":"A y B","full_name":"Juan Pérez","main_phone":"1155550000"
}`

type testAPI struct {
	handler  http.Handler
	registry *service.CartRegistry
	metrics  *metrics.MetricsManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := logger.NewNopLogger()
	m := metrics.NewMetricsManager("storefront")
	registry := service.NewCartRegistry(memory.NewCartSlotRepository(), "miTienda_carrito", log)

	formatter, err := service.NewOrderFormatter("es-AR", "$")
	require.NoError(t, err)
	checkout := service.NewCheckoutService(formatter, whatsapp.NewLinkBuilder("5491159324610"), nil, nil, m, log, service.CheckoutServiceConfig{})

	return &testAPI{
		handler:  NewRouter(NewCartHandler(checkout, log), registry, m, log),
		registry: registry,
		metrics:  m,
	}
}

func (a *testAPI) do(t *testing.T, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCartAPI_AddMergeAndBadge(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/cart/items", "s1", `{"product":`+productJSON+`,"size":"M"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/cart/items", "s1", `{"product":`+productJSON+`,"size":"M","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "7", resp.Lines[0].Product.ID.String())
	assert.Equal(t, 3, resp.Lines[0].Quantity)
	assert.Equal(t, "a.jpg", resp.Lines[0].Image)
	assert.Equal(t, "300", resp.Summary.Total.String())
	assert.Equal(t, 3, resp.Badge)

	rec = api.do(t, http.MethodGet, "/api/cart/badge", "s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/cart/badge", "s2", "")
	assert.JSONEq(t, `{"count":0}`, rec.Body.String())
}

func TestCartAPI_AddValidation(t *testing.T) {
	api := newTestAPI(t)

	cases := map[string]string{
		"missing size":    `{"product":` + productJSON + `}`,
		"unknown size":    `{"product":` + productJSON + `,"size":"XXL"}`,
		"negative amount": `{"product":` + productJSON + `,"size":"M","quantity":-1}`,
		"huge amount":     `{"product":` + productJSON + `,"size":"M","quantity":9223372036854775807}`,
		"missing product": `{"size":"M"}`,
		"broken body":     `{"product":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/api/cart/items", "s1", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := api.do(t, http.MethodGet, "/api/cart", "s1", "")
	assert.Equal(t, 0, decodeCart(t, rec).Badge)
	assert.Equal(t, 6.0, testutil.ToFloat64(api.metrics.APIErrorsTotal.WithLabelValues("POST /api/cart/items", "400")))
}

func TestCartAPI_UpdateRemoveClear(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/cart/items", "s1", `{"product":`+productJSON+`,"size":"M","quantity":2}`)
	api.do(t, http.MethodPost, "/api/cart/items", "s1", `{"product":`+productJSON+`,"size":"L"}`)

	rec := api.do(t, http.MethodPatch, "/api/cart/items/7/M", "s1", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, decodeCart(t, rec).Badge)

	rec = api.do(t, http.MethodPatch, "/api/cart/items/7/M", "s1", `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPatch, "/api/cart/items/7/M", "s1", fmt.Sprintf(`{"quantity":%d}`, MaxLineQuantity+1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/cart/items/99/M", "s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, decodeCart(t, rec).Badge)

	rec = api.do(t, http.MethodDelete, "/api/cart/items/7/L", "s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "M", resp.Lines[0].Size)

	rec = api.do(t, http.MethodDelete, "/api/cart", "s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeCart(t, rec)
	assert.Empty(t, resp.Lines)
	assert.Equal(t, 0, resp.Badge)
}

func TestCartAPI_Checkout(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/checkout", "s1", shippingJSON)
	assert.Equal(t, http.StatusConflict, rec.Code)

	api.do(t, http.MethodPost, "/api/cart/items", "s1", `{"product":`+productJSON+`,"size":"M","quantity":2}`)

	rec = api.do(t, http.MethodPost, "/api/checkout", "s1", `{"locality":"Lanús"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/checkout", "s1", shippingJSON)
	require.Equal(t, http.StatusOK, rec.Code)

	var res service.CheckoutResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.OrderID)
	assert.Contains(t, res.Message, "2 x Camiseta Boca (Talle: M) - $200")
	assert.True(t, strings.HasPrefix(res.DeepLink, "https://wa.me/5491159324610?text=Hola%21%20Quiero"))

	rec = api.do(t, http.MethodGet, "/api/cart", "s1", "")
	assert.Equal(t, 0, decodeCart(t, rec).Badge)
}

func TestCartAPI_CheckoutPreviewKeepsCart(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/checkout/preview", "s1", `{}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	api.do(t, http.MethodPost, "/api/cart/items", "s1", `{"product":`+productJSON+`,"size":"L"}`)

	rec = api.do(t, http.MethodPost, "/api/checkout/preview", "s1", `{"locality":"Lanús"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res.Message, "1 x Camiseta Boca (Talle: L) - $100")
	assert.Contains(t, res.Message, "Localidad: Lanús")

	rec = api.do(t, http.MethodGet, "/api/cart", "s1", "")
	assert.Equal(t, 1, decodeCart(t, rec).Badge)
}

func TestCartAPI_DefaultSessionAndHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Zero(t, api.registry.Len())

	api.do(t, http.MethodPost, "/api/cart/items", "", `{"product":`+productJSON+`,"size":"S"}`)
	store, err := api.registry.Store(httptest.NewRequest(http.MethodGet, "/", nil).Context(), service.DefaultSessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Snapshot().TotalQuantity())
}
