// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the service.
// Values are read once at startup and passed down by injection;
// nothing outside main should read the environment directly.
type Config struct {
	// Port is the HTTP listen port (without colon).
	Port string

	// JWTSecret signs and verifies auth tokens.
	JWTSecret string

	// ImageDir is the directory uploaded item images are written to.
	// It is also served under the /images route.
	ImageDir string

	// RedisHost, RedisPort and RedisPassword configure the optional
	// rate-limiter store. Empty host disables the limiter.
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// RateLimitPerMinute caps credential endpoint requests per client IP.
	RateLimitPerMinute int
}

// Load は.envファイル（存在すれば）と環境変数から設定を読み込みます。
func Load() Config {
	// ローカル開発用。本番では環境変数が直接設定される。
	_ = godotenv.Load()

	cfg := Config{
		Port:               getenvDefault("PORT", "8080"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		ImageDir:           getenvDefault("IMAGE_DIR", "./public/images"),
		RedisHost:          os.Getenv("REDIS_HOST"),
		RedisPort:          getenvDefault("REDIS_PORT", "6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RateLimitPerMinute: 30,
	}
	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
