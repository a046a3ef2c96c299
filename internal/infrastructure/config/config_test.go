package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SUPABASE_URL": "https://proj.supabase.co",
		"SUPABASE_KEY": "key",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Supabase.Schema != "public" {
		t.Fatalf("expected public schema, got %q", cfg.Supabase.Schema)
	}
	if cfg.Session.CookieName != "sessionid" || cfg.Session.TTL != 336*time.Hour {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
	if !cfg.CSRF.Enabled || cfg.CSRF.CookieName != "csrftoken" {
		t.Fatalf("unexpected csrf defaults: %+v", cfg.CSRF)
	}
	targets := cfg.RedirectTargets()
	if targets.Admin != "/admin/" || targets.User != "/user/" || cfg.Routes.LoginURL != "/login/" {
		t.Fatalf("unexpected route defaults: %+v", cfg.Routes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SUPABASE_URL":      "https://proj.supabase.co",
		"SUPABASE_KEY":      "key",
		"ENV":               "production",
		"SESSION_TTL":       "2h",
		"CSRF_ENABLED":      "false",
		"USER_REDIRECT_URL": "/shop/",
		"REDIS_DB":          "3",
		"MIGRATIONS_AUTO":   "true",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IsDevelopment() || cfg.Session.TTL != 2*time.Hour || cfg.CSRF.Enabled {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Routes.UserRedirect != "/shop/" || cfg.Redis.DB != 3 || !cfg.Postgres.MigrationsAuto {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_MissingSupabaseCredentials(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when SUPABASE_URL and SUPABASE_KEY are unset")
	}
}

func TestLoadPostgres_IgnoresCatalogSettings(t *testing.T) {
	cfg, err := loadPostgres(context.Background(), envconfig.MapLookuper(map[string]string{
		"DATABASE_URL": "postgres://u:p@db:5432/shop",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.URL != "postgres://u:p@db:5432/shop" || cfg.MigrationsAuto {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
