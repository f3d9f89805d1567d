package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/config"
	"github.com/iliyamo/storage-booking/internal/handler"
	"github.com/iliyamo/storage-booking/internal/integration"
	"github.com/iliyamo/storage-booking/internal/lock"
	"github.com/iliyamo/storage-booking/internal/repository/memstore"
	"github.com/iliyamo/storage-booking/internal/service"
	"github.com/iliyamo/storage-booking/internal/utils"
)

// newTestServer wires the full stack over the memory store with no Redis,
// no broker and no provider credentials.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	return newTestServerWith(t, Options{})
}

func newTestServerWith(t *testing.T, opts Options) *echo.Echo {
	t.Helper()
	store := memstore.New()
	registry := integration.NewRegistry(config.NewIntegrationConfig(config.IntegrationSettings{}))
	customers := service.NewCustomers(store)
	loyalty := service.NewLoyalty(store)
	catalog := service.NewCatalog(store)
	dispatcher := service.NewDispatcher(nil, service.NewNotifier(registry))
	t.Cleanup(dispatcher.Wait)

	return New(opts, Handlers{
		Units:        handler.NewUnitHandler(catalog, service.NewAvailability(store), store),
		Bookings:     handler.NewBookingHandler(service.NewLedger(store, lock.NewLocal(), customers, dispatcher)),
		Content:      handler.NewContentHandler(service.NewContent(store)),
		Integrations: handler.NewIntegrationHandler(service.NewIntegrations(store, utils.NewSealer("test"), registry)),
		Payments:     handler.NewPaymentHandler(service.NewPayments(store, registry, loyalty)),
		Customers:    handler.NewCustomerHandler(customers, loyalty),
		Analytics:    handler.NewAnalyticsHandler(service.NewAnalytics(store)),
	})
}

func do(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealthAndRoot(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var root map[string]string
	decode(t, rec, &root)
	assert.Equal(t, "RV & Boat Storage Management API", root["message"])
}

func TestBookingScenario(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/physical-units", map[string]any{
		"unit_number": "A-001", "actual_size": "12x30", "base_price": 200,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var p struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, rec, &p)
	assert.Equal(t, "available", p.Status)

	createVirtual := func(unitType, name string, daily, weekly, monthly float64) string {
		rec := do(t, e, http.MethodPost, "/api/virtual-units", map[string]any{
			"physical_unit_id": p.ID, "unit_type": unitType, "display_size": "12x30",
			"display_name": name, "daily_price": daily, "weekly_price": weekly, "monthly_price": monthly,
			"amenities": []string{"security"},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var vu struct {
			ID string `json:"id"`
		}
		decode(t, rec, &vu)
		return vu.ID
	}
	v1 := createVirtual("enclosed_parking", "Enclosed 12x30", 10, 60, 200)
	v2 := createVirtual("self_storage", "Storage 12x30", 12, 70, 240)

	var listed []map[string]any
	decode(t, do(t, e, http.MethodGet, "/api/virtual-units", nil), &listed)
	assert.Len(t, listed, 2)

	booking := map[string]any{
		"virtual_unit_id": v1, "customer_name": "Jane Doe", "customer_email": "jane@example.com",
		"customer_phone": "+15550100", "payment_option": "pay_now_move_now",
		"pricing_period": "weekly", "start_date": "2025-03-01",
	}
	rec = do(t, e, http.MethodPost, "/api/bookings", booking)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var b struct {
		ID             string  `json:"id"`
		Status         string  `json:"status"`
		TotalPrice     float64 `json:"total_price"`
		PhysicalUnitID string  `json:"physical_unit_id"`
		StartDate      string  `json:"start_date"`
	}
	decode(t, rec, &b)
	assert.Equal(t, "booked", b.Status)
	assert.Equal(t, 60.0, b.TotalPrice)
	assert.Equal(t, p.ID, b.PhysicalUnitID)
	assert.Equal(t, "2025-03-01T00:00:00Z", b.StartDate)

	booking["virtual_unit_id"] = v2
	rec = do(t, e, http.MethodPost, "/api/bookings", booking)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"detail":"Unit is not available"}`, rec.Body.String())

	listed = nil
	decode(t, do(t, e, http.MethodGet, "/api/virtual-units", nil), &listed)
	assert.Empty(t, listed)

	listed = nil
	decode(t, do(t, e, http.MethodGet, "/api/virtual-units?available_only=false", nil), &listed)
	assert.Len(t, listed, 2)

	rec = do(t, e, http.MethodGet, "/api/bookings/"+b.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var customers []map[string]any
	decode(t, do(t, e, http.MethodGet, "/api/customers?search=jane", nil), &customers)
	require.Len(t, customers, 1)
	assert.EqualValues(t, 1, customers[0]["total_bookings"])
}

func TestErrorResponses(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/api/virtual-units?min_price=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "min_price")

	rec = do(t, e, http.MethodGet, "/api/virtual-units?available_only=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/virtual-units/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Virtual unit not found"}`, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/virtual-units", map[string]any{
		"physical_unit_id": "missing", "unit_type": "self_storage", "display_size": "10x10",
		"display_name": "x", "daily_price": 1, "weekly_price": 1, "monthly_price": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/virtual-units", map[string]any{
		"unit_type": "self_storage", "display_size": "10x10", "display_name": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "physical_unit_id")

	rec = do(t, e, http.MethodPost, "/api/bookings", map[string]any{"virtual_unit_id": "x", "start_date": "01/03/2025"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_date")

	rec = do(t, e, http.MethodPost, "/api/bookings", map[string]any{"customer_email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var verr struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, rec, &verr)
	assert.Contains(t, verr.Fields, "customer_email")
	assert.Contains(t, verr.Fields, "virtual_unit_id")

	rec = do(t, e, http.MethodPost, "/api/payments/checkout", map[string]any{
		"booking_id": "b", "origin_url": "http://localhost:3000",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"detail":"stripe is not configured"}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/no-such-route", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

func TestSampleDataAndFilterOptions(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/initialize-sample-data", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Sample data initialized successfully","physical_units":4,"virtual_units":8,"image_assets":15}`, rec.Body.String())

	var opts struct {
		SizeCategories []string `json:"size_categories"`
		PriceRange     struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"price_range"`
	}
	decode(t, do(t, e, http.MethodGet, "/api/filter-options", nil), &opts)
	assert.Equal(t, []string{"small", "medium", "large"}, opts.SizeCategories)
	assert.Greater(t, opts.PriceRange.Max, opts.PriceRange.Min)

	var units []map[string]any
	decode(t, do(t, e, http.MethodGet, "/api/virtual-units?size_category=large&pricing_period=monthly", nil), &units)
	for _, u := range units {
		assert.Contains(t, u["display_size"], "x")
	}

	var images []map[string]any
	decode(t, do(t, e, http.MethodGet, "/api/images?category=hero", nil), &images)
	assert.NotEmpty(t, images)
}

func TestIntegrationKeysRoundTrip(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/api-keys", map[string]any{
		"service": "stripe", "key_name": "secret_key", "key_value": "sk_test_1234567890",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var k struct {
		ID       string `json:"id"`
		KeyValue string `json:"key_value"`
	}
	decode(t, rec, &k)
	assert.Equal(t, "sk_t...7890", k.KeyValue)
	assert.NotContains(t, rec.Body.String(), "sealed")

	var st struct {
		Stripe struct {
			Configured bool `json:"configured"`
			TestMode   bool `json:"test_mode"`
		} `json:"stripe"`
	}
	decode(t, do(t, e, http.MethodGet, "/api/integration-status", nil), &st)
	assert.True(t, st.Stripe.Configured)
	assert.True(t, st.Stripe.TestMode)

	rec = do(t, e, http.MethodDelete, "/api/api-keys/"+k.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, e, http.MethodDelete, "/api/api-keys/"+k.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoyaltyAndAnalyticsRoutes(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/customers", map[string]any{
		"first_name": "Ana", "last_name": "Ruiz", "email": "ana@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var c struct {
		ID string `json:"id"`
	}
	decode(t, rec, &c)

	rec = do(t, e, http.MethodPost, "/api/customers", map[string]any{
		"first_name": "Ana", "last_name": "Ruiz", "email": "ANA@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/loyalty/award-points", map[string]any{"customer_id": c.ID, "points": 600})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"loyalty_tier":"silver"`)

	rec = do(t, e, http.MethodPost, "/api/loyalty/redeem-points", map[string]any{"customer_id": c.ID, "points": 1000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var sum struct {
		Points int64  `json:"points"`
		Tier   string `json:"tier"`
	}
	decode(t, do(t, e, http.MethodGet, "/api/loyalty/customer/"+c.ID, nil), &sum)
	assert.Equal(t, int64(600), sum.Points)
	assert.Equal(t, "silver", sum.Tier)

	rec = do(t, e, http.MethodPost, "/api/analytics/events", map[string]any{"session_id": "s1", "event_type": "booking_started"})
	require.Equal(t, http.StatusOK, rec.Code)

	// session id from the header when the body has none
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/events", bytes.NewBufferString(`{"event_type":"unit_view"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Session-ID", "s2")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"session_id":"s2"`)
	var f struct {
		Stage string `json:"stage"`
	}
	decode(t, do(t, e, http.MethodGet, "/api/analytics/funnel/s1", nil), &f)
	assert.Equal(t, "booking_started", f.Stage)
}

func TestSampleDataResetDropsCachedImages(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := newTestServerWith(t, Options{
		Redis: rdb,
		Cache: config.CacheConfig{
			Enabled:     true,
			Methods:     map[string]bool{http.MethodGet: true},
			Paths:       []string{"/api/images"},
			Invalidates: map[string][]string{"/api/initialize-sample-data": {"/api/images"}},
			TTL:         time.Minute,
			KeyStrategy: "route_query",
			Prefix:      "cache",
		},
	})

	firstImageID := func(rec *httptest.ResponseRecorder) string {
		t.Helper()
		var imgs []struct {
			ID string `json:"id"`
		}
		decode(t, rec, &imgs)
		require.NotEmpty(t, imgs)
		return imgs[0].ID
	}

	require.Equal(t, http.StatusOK, do(t, e, http.MethodPost, "/api/initialize-sample-data", nil).Code)

	rec := do(t, e, http.MethodGet, "/api/images", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	before := firstImageID(rec)

	rec = do(t, e, http.MethodGet, "/api/images", nil)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Len(t, rec.Header().Values(echo.HeaderXRequestID), 1)
	assert.Equal(t, before, firstImageID(rec))

	require.Equal(t, http.StatusOK, do(t, e, http.MethodPost, "/api/initialize-sample-data", nil).Code)

	rec = do(t, e, http.MethodGet, "/api/images", nil)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	after := firstImageID(rec)
	assert.NotEqual(t, before, after)

	rec = do(t, e, http.MethodDelete, "/api/images/"+after, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
