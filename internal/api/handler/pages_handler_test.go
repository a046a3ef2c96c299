package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vitrine/storefront/internal/api/middleware"
	"github.com/vitrine/storefront/internal/core/domain"
)

func TestNewRenderer_ParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	for _, page := range []string{
		"home", "login", "register", "user_dashboard", "catalog", "product_detail",
		"admin_users", "admin_users_extract", "admin_user_form", "admin_user_delete",
		"admin_offers", "admin_offer_form", "admin_offer_delete", "admin_mirror",
	} {
		if _, ok := r.pages[page]; !ok {
			t.Fatalf("page %s not registered", page)
		}
	}
}

func TestPagesHandler_UserDashboardRequiresSession(t *testing.T) {
	e := newEcho()
	h := NewPagesHandler(&stubCatalogService{}, "/login/")

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/user/", nil), rec)
	if err := h.UserDashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login/?next=%2Fuser%2F" {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/user/", nil), rec)
	c.Set(middleware.AccountKey, &domain.Account{ID: 2, Username: "alice", Email: "a@x.com"})
	if err := h.UserDashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "a@x.com") {
		t.Fatalf("expected dashboard, got %d", rec.Code)
	}
}

func TestPagesHandler_Catalog(t *testing.T) {
	e := newEcho()
	svc := &stubCatalogService{products: testProducts(), categories: []string{"clothing", "kitchen"}}
	h := NewPagesHandler(svc, "/login/")

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/catalog/?category=kitchen", nil), rec)
	if err := h.Catalog(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Red Shirt") || !strings.Contains(body, `<option value="kitchen" selected>`) {
		t.Fatalf("unexpected page: %s", body)
	}
	if svc.lastFilter.Category != "kitchen" {
		t.Fatalf("unexpected filter: %+v", svc.lastFilter)
	}
}

func TestPagesHandler_ProductDetail(t *testing.T) {
	e := newEcho()
	h := NewPagesHandler(&stubCatalogService{products: testProducts()}, "/login/")

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/product/1/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.ProductDetail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "19.99") {
		t.Fatalf("expected price on page")
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/product/42/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")
	var he *echo.HTTPError
	if err := h.ProductDetail(c); !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
