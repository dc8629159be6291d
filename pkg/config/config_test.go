package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	StoreURL string        `envconfig:"STORE_URL" split_words:"true"`
	Token    string        `envconfig:"PASSWORD"`
	Timeout  time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

func TestNewReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("CFGTEST_STORE_URL=my-shop.myshopify.com\nCFGTEST_PASSWORD=shpat_123\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CFGTEST_STORE_URL", "")
	os.Unsetenv("CFGTEST_STORE_URL")
	t.Setenv("CFGTEST_PASSWORD", "")
	os.Unsetenv("CFGTEST_PASSWORD")

	SetEnvFile(path)
	t.Cleanup(func() { SetEnvFile("") })

	conf, err := New[testConfig]("CFGTEST")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.StoreURL != "my-shop.myshopify.com" {
		t.Fatalf("StoreURL = %q, want %q", conf.StoreURL, "my-shop.myshopify.com")
	}
	if conf.Token != "shpat_123" {
		t.Fatalf("Token = %q, want %q", conf.Token, "shpat_123")
	}
	if conf.Timeout != 10*time.Second {
		t.Fatalf("Timeout = %v, want 10s", conf.Timeout)
	}
}

func TestNewEnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.env")
	if err := os.WriteFile(path, []byte("CFGOVR_STORE_URL=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CFGOVR_STORE_URL", "from-env")

	SetEnvFile(path)
	t.Cleanup(func() { SetEnvFile("") })

	conf, err := New[testConfig]("CFGOVR")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.StoreURL != "from-env" {
		t.Fatalf("StoreURL = %q, want %q", conf.StoreURL, "from-env")
	}
}

func TestNewMissingExplicitFile(t *testing.T) {
	SetEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	t.Cleanup(func() { SetEnvFile("") })

	if _, err := New[testConfig]("CFGMISSING"); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
