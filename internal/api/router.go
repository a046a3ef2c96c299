package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vitrine/storefront/docs"
	"github.com/vitrine/storefront/internal/api/handler"
	"github.com/vitrine/storefront/internal/api/metrics"
	"github.com/vitrine/storefront/internal/api/middleware"
	"github.com/vitrine/storefront/internal/core/ports"
	"github.com/vitrine/storefront/internal/infrastructure/config"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Log      zerolog.Logger
	Accounts middleware.AccountFinder
	Sessions ports.SessionStore
	Store    ports.CatalogStore
	Auth     ports.AuthService
	Catalog  ports.CatalogService
	Mirror   ports.Mirror
	Checks   []handler.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}

	cfg := d.Config
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(metrics.HTTPMiddleware())
	e.Use(middleware.Session(d.Sessions, d.Accounts, cfg.Session.CookieName, d.Log))
	if cfg.CSRF.Enabled {
		e.Use(middleware.CSRF(cfg.CSRF.CookieName, cfg.Session.CookieName, cfg.Session.CookieSecure))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, handler.CookieConfig{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.CookieSecure,
	}, d.Log)
	catalogHandler := handler.NewCatalogHandler(d.Catalog, d.Log)
	adminHandler := handler.NewAdminHandler(d.Store, d.Sessions, d.Mirror, d.Log)
	pagesHandler := handler.NewPagesHandler(d.Catalog, cfg.Routes.LoginURL)
	healthHandler := handler.NewHealthHandler(d.Checks...)

	// --- Catalog API ---
	e.GET("/api/ping/", catalogHandler.Ping)
	e.GET("/api/products/", catalogHandler.ListProducts)
	e.GET("/api/products/:id/", catalogHandler.GetProduct)
	e.GET("/api/categories/", catalogHandler.Categories)

	// --- Auth API ---
	auth := e.Group("/api/auth")
	auth.GET("/csrf/", authHandler.CSRF)
	auth.POST("/register/", authHandler.Register)
	auth.POST("/login/", authHandler.Login)
	auth.POST("/logout/", authHandler.Logout, middleware.RequireAuth())
	auth.GET("/me/", authHandler.Me, middleware.RequireAuth())

	// --- Public pages ---
	e.GET("/", pagesHandler.Home)
	e.GET("/login/", pagesHandler.Login)
	e.GET("/register/", pagesHandler.Register)
	e.GET("/user/", pagesHandler.UserDashboard)
	e.GET("/catalog/", pagesHandler.Catalog)
	e.GET("/product/:id/", pagesHandler.ProductDetail)

	// --- Admin console (staff only) ---
	admin := e.Group("/admin", middleware.RequireStaff(cfg.Routes.LoginURL))
	admin.GET("/", adminHandler.Index)
	admin.GET("/users/", adminHandler.ListUsers)
	admin.GET("/users/extract/", adminHandler.ExtractUsers)
	admin.Match(formMethods, "/users/add/", adminHandler.AddUser)
	admin.Match(formMethods, "/users/:id/edit/", adminHandler.EditUser)
	admin.Match(formMethods, "/users/:id/delete/", adminHandler.DeleteUser)
	admin.GET("/offers/", adminHandler.ListOffers)
	admin.Match(formMethods, "/offers/add/", adminHandler.AddOffer)
	admin.Match(formMethods, "/offers/:id/edit/", adminHandler.EditOffer)
	admin.Match(formMethods, "/offers/:id/delete/", adminHandler.DeleteOffer)
	admin.GET("/mirror/", adminHandler.ListMirror)
	admin.POST("/mirror/:id/retry/", adminHandler.RetryMirror)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operational ---
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

var formMethods = []string{http.MethodGet, http.MethodPost}
