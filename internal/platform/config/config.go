package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

type HTTPConfig struct {
	Addr string
}

type StorageConfig struct {
	// Driver selects the persistence backend: sqlite, postgres or memory.
	Driver      string
	SQLitePath  string
	DatabaseURL string
}

type OMDBConfig struct {
	// APIKey blank means enrichment is disabled.
	APIKey  string
	BaseURL string
}

type AppConfig struct {
	ServiceName    string
	LogLevel       string
	LibraryID      string
	ImportDir      string
	AdminJWTSecret string
	NATSURL        string
	HTTP           HTTPConfig
	Storage        StorageConfig
	OMDB           OMDBConfig
}

func Load() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName:    strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		LogLevel:       strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		LibraryID:      strings.TrimSpace(os.Getenv("LIBRARY_ID")),
		ImportDir:      strings.TrimSpace(os.Getenv("IMPORT_DIR")),
		AdminJWTSecret: strings.TrimSpace(os.Getenv("ADMIN_JWT_SECRET")),
		NATSURL:        strings.TrimSpace(os.Getenv("NATS_URL")),
		HTTP: HTTPConfig{
			Addr: strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER"))),
			SQLitePath:  strings.TrimSpace(os.Getenv("SQLITE_PATH")),
			DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		},
		OMDB: OMDBConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OMDB_API_KEY")),
			BaseURL: strings.TrimSpace(os.Getenv("OMDB_BASE_URL")),
		},
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "dvd-library"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LibraryID == "" {
		cfg.LibraryID = "default"
	}
	if cfg.ImportDir == "" {
		cfg.ImportDir = "."
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	switch cfg.Storage.Driver {
	case "sqlite":
		if cfg.Storage.SQLitePath == "" {
			cfg.Storage.SQLitePath = "./catalog.db"
		}
	case "postgres":
		if cfg.Storage.DatabaseURL == "" {
			return AppConfig{}, errors.New("DATABASE_URL is required for STORAGE_DRIVER=postgres")
		}
	case "memory":
	default:
		return AppConfig{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	return cfg, nil
}
