package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port           string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	AllowedOrigins []string
}

// Load lee variables de entorno y valida lo mínimo indispensable.
// Si existe un archivo .env lo carga primero (sin pisar variables ya seteadas).
func Load() (Config, error) {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}
	// Normalizamos por si alguien manda ":3000"
	port = strings.TrimPrefix(port, ":")

	cfg := Config{
		Port:       port,
		DBHost:     strings.TrimSpace(os.Getenv("DB_HOST")),
		DBPort:     strings.TrimSpace(os.Getenv("DB_PORT")),
		DBUser:     strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     strings.TrimSpace(os.Getenv("DB_NAME")),
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}

	for _, required := range []struct {
		name  string
		value string
	}{
		{"DB_HOST", cfg.DBHost},
		{"DB_USER", cfg.DBUser},
		{"DB_NAME", cfg.DBName},
	} {
		if required.value == "" {
			return Config{}, fmt.Errorf("missing required env var: %s", required.name)
		}
	}

	cfg.AllowedOrigins = splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// DatabaseURL arma el DSN de PostgreSQL a partir de las piezas de entorno.
func (config Config) DatabaseURL() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(config.DBUser, config.DBPassword),
		Host:   config.DBHost + ":" + config.DBPort,
		Path:   "/" + config.DBName,
	}
	return dsn.String()
}

// splitOrigins parsea la lista fija de orígenes permitidos (CORS).
// Vacío => solo el origen de desarrollo del frontend.
func splitOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"http://localhost:4200"}
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
