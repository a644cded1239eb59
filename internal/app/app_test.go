package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bestseller/internal/config"
	"github.com/dropDatabas3/bestseller/internal/store/adapters/memory"
)

func testConfig(t *testing.T, cacheKind string) *config.Config {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cr3t")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CACHE_KIND", cacheKind)
	t.Setenv("STRIPE_SECRET_KEY", "")
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNew_WiresRoutes(t *testing.T) {
	cfg := testConfig(t, "memory")
	a, err := New(context.Background(), cfg, Deps{DAL: memory.New(), Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Server is running", rec.Body.String())

	rec = httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// login → token → ruta con gate, pasando por el cache de roles
	rec = httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/user/s@x.com",
		strings.NewReader(`{"email":"s@x.com","role":"Seller"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	tok, _, err := a.Issuer.Sign("s@x.com")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/my-product", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec = httptest.NewRecorder()
		a.Handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestNew_PaymentsDisabledWithoutKey(t *testing.T) {
	cfg := testConfig(t, "none")
	a, err := New(context.Background(), cfg, Deps{DAL: memory.New(), Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)

	tok, _, err := a.Issuer.Sign("b@x.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"resalePrice":10}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNew_RequiresDAL(t *testing.T) {
	_, err := New(context.Background(), testConfig(t, "none"), Deps{})
	assert.Error(t, err)
}
