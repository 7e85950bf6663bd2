package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

type DatabaseConfig struct {
	Mongo MongoConfig `mapstructure:"mongo"`
}

type MongoConfig struct {
	URL    string `mapstructure:"url"`
	DBName string `mapstructure:"dbname"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// LoadConfig reads config.yaml from path if present and applies
// environment overrides (MONGO_URL, DB_NAME, CORS_ORIGINS and the
// server addresses). Environment always wins.
func LoadConfig(path string) (config *Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.http_address", ":8000")
	v.SetDefault("server.rpc_address", ":8001")
	v.SetDefault("server.metrics_address", ":9090")
	v.SetDefault("database.mongo.url", "mongodb://localhost:27017")
	v.SetDefault("database.mongo.dbname", "space_shooter")
	v.SetDefault("cors.origins", []string{"*"})

	v.BindEnv("database.mongo.url", "MONGO_URL")
	v.BindEnv("database.mongo.dbname", "DB_NAME")
	v.BindEnv("server.http_address", "HTTP_ADDRESS")
	v.BindEnv("server.rpc_address", "RPC_ADDRESS")
	v.BindEnv("server.metrics_address", "METRICS_ADDRESS")
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		// The config file is optional, env and defaults cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// CORS_ORIGINS is a comma-separated list in the environment.
	if raw := v.GetString("CORS_ORIGINS"); raw != "" {
		v.Set("cors.origins", splitOrigins(raw))
	}

	err = v.Unmarshal(&config)
	return
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
