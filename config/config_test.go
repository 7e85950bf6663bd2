package config

import (
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed without a config file: %v", err)
	}

	if cfg.Server.HTTPAddress != ":8000" {
		t.Errorf("Unexpected default HTTP address %q", cfg.Server.HTTPAddress)
	}
	if cfg.Database.Mongo.URL != "mongodb://localhost:27017" {
		t.Errorf("Unexpected default Mongo URL %q", cfg.Database.Mongo.URL)
	}
	if cfg.Database.Mongo.DBName != "space_shooter" {
		t.Errorf("Unexpected default database name %q", cfg.Database.Mongo.DBName)
	}
	if len(cfg.CORS.Origins) != 1 || cfg.CORS.Origins[0] != "*" {
		t.Errorf("Unexpected default CORS origins %v", cfg.CORS.Origins)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://db.internal:27017")
	t.Setenv("DB_NAME", "shooter_prod")
	t.Setenv("CORS_ORIGINS", "https://game.example.com, https://staging.example.com")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Database.Mongo.URL != "mongodb://db.internal:27017" {
		t.Errorf("MONGO_URL not applied, got %q", cfg.Database.Mongo.URL)
	}
	if cfg.Database.Mongo.DBName != "shooter_prod" {
		t.Errorf("DB_NAME not applied, got %q", cfg.Database.Mongo.DBName)
	}

	want := []string{"https://game.example.com", "https://staging.example.com"}
	if len(cfg.CORS.Origins) != len(want) {
		t.Fatalf("CORS_ORIGINS not split, got %v", cfg.CORS.Origins)
	}
	for i, origin := range want {
		if cfg.CORS.Origins[i] != origin {
			t.Errorf("Origin %d: expected %q, got %q", i, origin, cfg.CORS.Origins[i])
		}
	}
}
