package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	HTTPAddr  string
	Env       string
	RedisAddr string
	RedisPass string
	Database  DatabaseConfig
	ZCredit   ZCreditConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ZCreditConfig struct {
	EndpointURL string
	Timeout     time.Duration
	MaxAmount   float64 // validation ceiling on TransactionSum
	UseMock     bool

	// mock gateway policy
	MockTerminalNumber   string
	MockTerminalPassword string
	MockCreditCeiling    float64
	MockRefundCap        float64
}

func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8031"),
		Env:       getEnv("ENVIRONMENT", "development"),
		RedisAddr: getEnv("REDIS_ADDR", "redis:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "zcredit"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		ZCredit: ZCreditConfig{
			EndpointURL: getEnv("ZCREDIT_ENDPOINT_URL", "https://pci.zcredit.co.il/ZCreditWS/api/Transaction/CommitFullTransaction"),
			Timeout:     getEnvDuration("ZCREDIT_TIMEOUT", 45*time.Second),
			MaxAmount:   getEnvFloat("ZCREDIT_MAX_AMOUNT", 999999.99),
			UseMock:     getEnvBool("ZCREDIT_USE_MOCK", true),

			MockTerminalNumber:   getEnv("ZCREDIT_MOCK_TERMINAL", "0882016016"),
			MockTerminalPassword: getEnv("ZCREDIT_MOCK_PASSWORD", "Z0882016016"),
			MockCreditCeiling:    getEnvFloat("ZCREDIT_MOCK_CREDIT_CEILING", 5000),
			MockRefundCap:        getEnvFloat("ZCREDIT_MOCK_REFUND_CAP", 1000),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
