package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort               string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel               string `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret              string `env:"API_JWT_SECRET"`
	JWTIssuer              string `env:"API_JWT_ISSUER" envDefault:"bazi-engine"`
	TokenTTLMinutes        int    `env:"API_TOKEN_TTL_MINUTES" envDefault:"60"`
	RedisAddr              string `env:"REDIS_ADDR"`
	RedisPassword          string `env:"REDIS_PASSWORD"`
	RedisDB                int    `env:"REDIS_DB" envDefault:"0"`
	QuotaWindowSeconds     int    `env:"CHART_QUOTA_WINDOW_SECONDS" envDefault:"60"`
	QuotaMaxCharts         int    `env:"CHART_QUOTA_MAX" envDefault:"120"`
	BatchParallel          int    `env:"BATCH_PARALLEL" envDefault:"4"`
	MetricsNamespace       string `env:"METRICS_NAMESPACE" envDefault:"bazi"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// QuotaWindow es la ventana en la que se cuentan las cartas de cada cliente.
func (c *Config) QuotaWindow() time.Duration {
	return time.Duration(c.QuotaWindowSeconds) * time.Second
}

// NewLogger arma un logger de producción con el nivel configurado. Un nivel
// desconocido cae a info.
func (c *Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
