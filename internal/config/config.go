package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	AppPort             string
	DbHost              string
	DbPort              string
	DbUser              string
	DbPassword          string
	DbName              string
	DbParams            string
	Timezone            *time.Location
	OverdueScanInterval time.Duration
	TrustedProxies      []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:             getEnv("APP_PORT", "8080"),
		DbHost:              getEnv("MYSQL_HOST", "db"),
		DbPort:              getEnv("MYSQL_PORT", "3306"),
		DbUser:              getEnv("MYSQL_USER", "taskboard"),
		DbPassword:          getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:              getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:            getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		Timezone:            parseTimezone(getEnv("APP_TIMEZONE", "UTC")),
		OverdueScanInterval: parseInterval(getEnv("OVERDUE_SCAN_INTERVAL", "1m")),
		TrustedProxies:      parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseTimezone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		zap.L().Warn("invalid APP_TIMEZONE, falling back to UTC", zap.String("timezone", name), zap.Error(err))
		return time.UTC
	}
	return loc
}

func parseInterval(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		zap.L().Warn("invalid OVERDUE_SCAN_INTERVAL, falling back to 1m", zap.String("interval", value))
		return time.Minute
	}
	return d
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
