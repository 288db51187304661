package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.DatabasePath != "clustering.db" {
		t.Errorf("Expected default database path, got %s", cfg.DatabasePath)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("Expected default store timeout, got %v", cfg.StoreTimeout)
	}
	if cfg.RateLimitRequests != 60 {
		t.Errorf("Expected default rate limit, got %d", cfg.RateLimitRequests)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("RATE_LIMIT_REQUESTS", "120")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()
	if cfg.ServerPort != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.ServerPort)
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("Expected overridden database path, got %s", cfg.DatabasePath)
	}
	if cfg.StoreTimeout != 2*time.Second {
		t.Errorf("Expected 2s store timeout, got %v", cfg.StoreTimeout)
	}
	if cfg.RateLimitRequests != 120 {
		t.Errorf("Expected 120 requests, got %d", cfg.RateLimitRequests)
	}
	if !cfg.TracingEnabled {
		t.Error("Expected tracing enabled")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "lots")
	t.Setenv("STORE_TIMEOUT", "soon")

	cfg := Load()
	if cfg.RateLimitRequests != 60 {
		t.Errorf("Expected default on malformed int, got %d", cfg.RateLimitRequests)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("Expected default on malformed duration, got %v", cfg.StoreTimeout)
	}
}

func TestDefaultPlansEligibility(t *testing.T) {
	plans := DefaultPlans()

	limits, ok := plans.Lookup("starter_annual")
	if !ok {
		t.Fatal("Expected starter_annual eligible")
	}
	if limits.MonthlyAnalysesLimit != 25 || limits.KeywordsPerAnalysisLimit != 100 {
		t.Errorf("Unexpected starter limits %+v", limits)
	}

	if _, ok := plans.Lookup("starter_monthly"); ok {
		t.Error("Expected monthly plans ineligible")
	}
	if _, ok := plans.Lookup(""); ok {
		t.Error("Expected empty tag ineligible")
	}
}

func TestLookupIgnoresIneligibleEntries(t *testing.T) {
	table := PlanTable{
		"legacy": {Eligible: false, MonthlyAnalysesLimit: 10},
	}
	if _, ok := table.Lookup("legacy"); ok {
		t.Error("Expected explicitly ineligible plan rejected")
	}
}

func TestLoadPlansFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	content := `
custom_annual:
  eligible: true
  monthly_analyses_limit: 42
  keywords_per_analysis_limit: 300
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write plans file: %v", err)
	}

	plans, err := LoadPlans(path)
	if err != nil {
		t.Fatalf("LoadPlans failed: %v", err)
	}
	limits, ok := plans.Lookup("custom_annual")
	if !ok {
		t.Fatal("Expected custom plan eligible")
	}
	if limits.MonthlyAnalysesLimit != 42 || limits.KeywordsPerAnalysisLimit != 300 {
		t.Errorf("Unexpected limits %+v", limits)
	}
	// The file replaces the compiled-in table entirely.
	if _, ok := plans.Lookup("starter_annual"); ok {
		t.Error("Expected compiled-in plans replaced by file")
	}
}

func TestLoadPlansEmptyPathUsesDefaults(t *testing.T) {
	plans, err := LoadPlans("")
	if err != nil {
		t.Fatalf("LoadPlans failed: %v", err)
	}
	if _, ok := plans.Lookup("enterprise_annual"); !ok {
		t.Error("Expected compiled-in plans")
	}
}

func TestLoadPlansRejectsMissingAndEmptyFiles(t *testing.T) {
	if _, err := LoadPlans(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadPlans(path); err == nil {
		t.Error("Expected error for file with no plans")
	}
}
