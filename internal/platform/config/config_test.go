package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVICE_NAME", "LOG_LEVEL", "LIBRARY_ID", "IMPORT_DIR",
		"ADMIN_JWT_SECRET", "NATS_URL", "HTTP_ADDR",
		"STORAGE_DRIVER", "SQLITE_PATH", "DATABASE_URL",
		"OMDB_API_KEY", "OMDB_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServiceName != "dvd-library" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.LibraryID != "default" {
		t.Fatalf("expected library id 'default', got %q", cfg.LibraryID)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.SQLitePath != "./catalog.db" {
		t.Fatalf("expected sqlite defaults, got %+v", cfg.Storage)
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/dvd")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "postgres" {
		t.Fatalf("expected postgres driver, got %q", cfg.Storage.Driver)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "etcd")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}

func TestLoad_TrimsValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("OMDB_API_KEY", "  k3y  ")
	t.Setenv("STORAGE_DRIVER", " MEMORY ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OMDB.APIKey != "k3y" {
		t.Fatalf("expected trimmed api key, got %q", cfg.OMDB.APIKey)
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("expected lowercased driver, got %q", cfg.Storage.Driver)
	}
}
