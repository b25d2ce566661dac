// internal/infra/config/config.go
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultScanDir     = "."
	defaultScanPattern = "firebase-adminsdk"
)

// Config は seed_demo 実行時の環境変数設定を保持します。
type Config struct {
	// Service account (credential locator)
	ServiceAccountPath   string `env:"FIREBASE_SERVICE_ACCOUNT_PATH"`
	ServiceAccountSecret string `env:"FIREBASE_SERVICE_ACCOUNT_SECRET"`

	// 空なら service account JSON の project_id を使う
	FirestoreProjectID string `env:"FIRESTORE_PROJECT_ID"`

	// Fallback scan: ScanDir 直下で ScanPattern を含む *.json を探す
	ScanDir     string `env:"SEED_REPO_ROOT"               envDefault:"."`
	ScanPattern string `env:"SERVICE_ACCOUNT_SCAN_PATTERN" envDefault:"firebase-adminsdk"`

	// QR 画像のアップロード先（任意）
	QRBucket string `env:"QR_BUCKET"`
}

// Load reads an optional .env from the working directory, then parses the
// process environment into Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] .env loaded")
	}
	return parse(env.Options{})
}

// LoadFrom parses Config from the given map instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	c.ServiceAccountPath = strings.TrimSpace(c.ServiceAccountPath)
	c.ServiceAccountSecret = strings.TrimSpace(c.ServiceAccountSecret)
	c.FirestoreProjectID = strings.TrimSpace(c.FirestoreProjectID)
	c.QRBucket = strings.TrimSpace(c.QRBucket)

	c.ScanDir = strings.TrimSpace(c.ScanDir)
	if c.ScanDir == "" {
		c.ScanDir = defaultScanDir
	}
	c.ScanPattern = strings.TrimSpace(c.ScanPattern)
	if c.ScanPattern == "" {
		c.ScanPattern = defaultScanPattern
	}
}
