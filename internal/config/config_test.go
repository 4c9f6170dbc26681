package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var allEnv = []string{
	"CATALOG_CONFIG", "COURSE_API", "REACT_APP_API", "CATALOG_REMOTE_TIMEOUT",
	"CATALOG_OFFLINE", "CATALOG_STORE", "CATALOG_STORE_PATH", "CATALOG_STORE_CODEC",
	"CATALOG_STORE_COMPRESS", "REDIS_ADDR", "REDIS_PREFIX", "CATALOG_LOG_MODE", "SFTP_HOST",
	"SFTP_PORT", "SFTP_USER", "SFTP_PASS", "SFTP_DIR", "SFTP_INSECURE_IGNORE_HOSTKEY",
	"SFTP_KNOWN_HOSTS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnv {
		t.Setenv(k, "")
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("TEST_GETENV", "")
	if result := getenv("TEST_GETENV", "default"); result != "default" {
		t.Errorf("Expected default value 'default', got '%s'", result)
	}

	t.Setenv("TEST_GETENV", "test-value")
	if result := getenv("TEST_GETENV", "default"); result != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", result)
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("TEST_GETENV_INT", "")
	if result := getenvInt("TEST_GETENV_INT", 42); result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	t.Setenv("TEST_GETENV_INT", "100")
	if result := getenvInt("TEST_GETENV_INT", 42); result != 100 {
		t.Errorf("Expected 100, got %d", result)
	}

	t.Setenv("TEST_GETENV_INT", "not-an-int")
	if result := getenvInt("TEST_GETENV_INT", 42); result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}
}

func TestGetenvBool(t *testing.T) {
	t.Setenv("TEST_GETENV_BOOL", "")
	if result := getenvBool("TEST_GETENV_BOOL", true); result != true {
		t.Errorf("Expected default value true, got %v", result)
	}

	t.Setenv("TEST_GETENV_BOOL", "false")
	if result := getenvBool("TEST_GETENV_BOOL", true); result != false {
		t.Errorf("Expected false, got %v", result)
	}

	t.Setenv("TEST_GETENV_BOOL", "not-a-bool")
	if result := getenvBool("TEST_GETENV_BOOL", true); result != true {
		t.Errorf("Expected default value true, got %v", result)
	}
}

func TestGetenvDuration(t *testing.T) {
	t.Setenv("TEST_GETENV_DUR", "250ms")
	if result := getenvDuration("TEST_GETENV_DUR", time.Second); result != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", result)
	}

	t.Setenv("TEST_GETENV_DUR", "-1s")
	if result := getenvDuration("TEST_GETENV_DUR", time.Second); result != time.Second {
		t.Errorf("Expected default for negative duration, got %v", result)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"http://127.0.0.1:4000", "http://127.0.0.1:4000/"},
		{"http://127.0.0.1:4000///", "http://127.0.0.1:4000/"},
		{" http://api.test/v1/ ", "http://api.test/v1/"},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := NormalizeBaseURL(tc.input); got != tc.expected {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("Expected APIBaseURL %q, got %q", DefaultAPIBaseURL, cfg.APIBaseURL)
	}
	if cfg.RemoteTimeout != 8*time.Second {
		t.Errorf("Expected RemoteTimeout 8s, got %v", cfg.RemoteTimeout)
	}
	if cfg.StoreBackend != "file" || cfg.StoreCodec != "json" {
		t.Errorf("Expected file/json store defaults, got %s/%s", cfg.StoreBackend, cfg.StoreCodec)
	}
	if cfg.SFTPPort != 22 {
		t.Errorf("Expected default SFTPPort to be 22, got %d", cfg.SFTPPort)
	}
	if cfg.SFTPDir != "/inbound" {
		t.Errorf("Expected default SFTPDir to be '/inbound', got '%s'", cfg.SFTPDir)
	}
	if cfg.SFTPInsecureIgnoreHostKey != true {
		t.Errorf("Expected default SFTPInsecureIgnoreHostKey to be true, got %v", cfg.SFTPInsecureIgnoreHostKey)
	}
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("REACT_APP_API", "http://legacy.test")
	t.Setenv("COURSE_API", "http://api.test//")
	t.Setenv("CATALOG_REMOTE_TIMEOUT", "2s")
	t.Setenv("CATALOG_OFFLINE", "true")
	t.Setenv("CATALOG_STORE", "sqlite")
	t.Setenv("SFTP_PORT", "2222")
	t.Setenv("SFTP_INSECURE_IGNORE_HOSTKEY", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIBaseURL != "http://api.test/" {
		t.Errorf("Expected COURSE_API to win and be normalized, got %q", cfg.APIBaseURL)
	}
	if cfg.RemoteTimeout != 2*time.Second {
		t.Errorf("Expected RemoteTimeout 2s, got %v", cfg.RemoteTimeout)
	}
	if !cfg.Offline {
		t.Error("Expected Offline to be true")
	}
	if cfg.StoreBackend != "sqlite" {
		t.Errorf("Expected StoreBackend 'sqlite', got %q", cfg.StoreBackend)
	}
	if cfg.SFTPPort != 2222 {
		t.Errorf("Expected SFTPPort to be 2222, got %d", cfg.SFTPPort)
	}
	if cfg.SFTPInsecureIgnoreHostKey != false {
		t.Errorf("Expected SFTPInsecureIgnoreHostKey to be false, got %v", cfg.SFTPInsecureIgnoreHostKey)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "api_base_url: http://file.test\nremote_timeout: 3s\nstore_backend: redis\nredis_addr: localhost:6379\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOG_CONFIG", path)
	t.Setenv("REDIS_ADDR", "redis.test:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIBaseURL != "http://file.test/" {
		t.Errorf("Expected APIBaseURL from file, got %q", cfg.APIBaseURL)
	}
	if cfg.RemoteTimeout != 3*time.Second {
		t.Errorf("Expected RemoteTimeout 3s from file, got %v", cfg.RemoteTimeout)
	}
	if cfg.StoreBackend != "redis" {
		t.Errorf("Expected StoreBackend 'redis', got %q", cfg.StoreBackend)
	}
	if cfg.RedisAddr != "redis.test:6379" {
		t.Errorf("Expected env to override file for REDIS_ADDR, got %q", cfg.RedisAddr)
	}
	if cfg.StorePath != "catalog-data/mockdb.json" {
		t.Errorf("Expected untouched default StorePath, got %q", cfg.StorePath)
	}
}

func TestLoadFileUnknownField(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("api_base_ulr: http://typo.test\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOG_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown config field")
	}
}

func TestLoadFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing config file")
	}
}
