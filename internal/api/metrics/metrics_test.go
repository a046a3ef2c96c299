package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMiddleware_RecordsRequests(t *testing.T) {
	e := echo.New()
	e.Use(HTTPMiddleware())
	e.GET("/metrics", Handler())
	e.GET("/api/products/:id/", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/7/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "storefront_http_requests_total") {
		t.Fatalf("expected http request counter in exposition")
	}
	if !strings.Contains(body, `url="/api/products/:id/"`) {
		t.Fatalf("expected route pattern label, got:\n%s", body)
	}
}

func TestObserveStoreCall(t *testing.T) {
	ok := CatalogStoreRequestsTotal.WithLabelValues("products", "test_op", "ok")
	failed := CatalogStoreRequestsTotal.WithLabelValues("products", "test_op", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveStoreCall("products", "test_op", time.Now(), nil)
	ObserveStoreCall("products", "test_op", time.Now(), errors.New("boom"))

	if testutil.ToFloat64(ok) != okBefore+1 || testutil.ToFloat64(failed) != failedBefore+1 {
		t.Fatalf("expected one ok and one error observation")
	}
}
