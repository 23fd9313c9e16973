// internal/infra/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// RemoteStore selects the backend of carts / products / orders.
type RemoteStore string

const (
	RemoteStoreRTDB      RemoteStore = "rtdb"
	RemoteStoreFirestore RemoteStore = "firestore"
	RemoteStoreMemory    RemoteStore = "memory"
)

// EnvConfigPath names the optional YAML overlay file.
const EnvConfigPath = "STOREFRONT_CONFIG"

// Config はアプリケーション全体の設定を保持します。
// 値の優先順位: 環境変数 > YAML > デフォルト
type Config struct {
	Port       string `yaml:"port"`
	ListenAddr string `yaml:"listen_addr"`

	GCPProjectID        string `yaml:"gcp_project_id"`
	FirebaseProjectID   string `yaml:"firebase_project_id"`
	FirebaseDatabaseURL string `yaml:"firebase_database_url"`
	GCPCreds            string `yaml:"google_application_credentials"`

	// Identity Toolkit の Web API キー。空なら Secret Manager の WebAPIKeySecret を読む
	FirebaseWebAPIKey string `yaml:"firebase_web_api_key"`
	WebAPIKeySecret   string `yaml:"firebase_web_api_key_secret"`

	RemoteStore    RemoteStore `yaml:"remote_store"`
	LocalStorePath string      `yaml:"local_store_path"`

	ProductImageBucket string `yaml:"product_image_bucket"`

	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	SendGridFrom   string `yaml:"sendgrid_from"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogLevel       string        `yaml:"log_level"`
	OTLPEndpoint   string        `yaml:"otel_exporter_otlp_endpoint"`
	AllowedOrigin  string        `yaml:"cors_allowed_origin"`
}

func Default() *Config {
	return &Config{
		Port:           "8080",
		RemoteStore:    RemoteStoreRTDB,
		LocalStorePath: "data/local.db",
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
		AllowedOrigin:  "*",
	}
}

// Load reads the YAML overlay at path (STOREFRONT_CONFIG when path is empty; a missing file is fine),
// then applies environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// defaults + env
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.GCPProjectID == "" {
		cfg.GCPProjectID = cfg.FirebaseProjectID
	}
	if cfg.FirebaseProjectID == "" {
		cfg.FirebaseProjectID = cfg.GCPProjectID
	}
	cfg.RemoteStore = RemoteStore(strings.ToLower(strings.TrimSpace(string(cfg.RemoteStore))))
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.ListenAddr, "LISTEN_ADDR")
	setString(&c.GCPProjectID, "GCP_PROJECT_ID")
	setString(&c.FirebaseProjectID, "FIREBASE_PROJECT_ID")
	setString(&c.FirebaseDatabaseURL, "FIREBASE_DATABASE_URL")
	setString(&c.GCPCreds, "GOOGLE_APPLICATION_CREDENTIALS")
	setString(&c.FirebaseWebAPIKey, "FIREBASE_WEB_API_KEY")
	setString(&c.WebAPIKeySecret, "FIREBASE_WEB_API_KEY_SECRET")
	setString(&c.LocalStorePath, "LOCAL_STORE_PATH")
	setString(&c.ProductImageBucket, "PRODUCT_IMAGE_BUCKET")
	setString(&c.SendGridAPIKey, "SENDGRID_API_KEY")
	setString(&c.SendGridFrom, "SENDGRID_FROM")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&c.AllowedOrigin, "CORS_ALLOWED_ORIGIN")

	if v := strings.TrimSpace(os.Getenv("REMOTE_STORE")); v != "" {
		c.RemoteStore = RemoteStore(v)
	}
	if v := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	return nil
}

// Addr is ListenAddr, or ":" + Port.
func (c *Config) Addr() string {
	if a := strings.TrimSpace(c.ListenAddr); a != "" {
		return a
	}
	return ":" + strings.TrimSpace(c.Port)
}

// UsesFirebase is false only for the in-memory remote store.
func (c *Config) UsesFirebase() bool {
	return c.RemoteStore != RemoteStoreMemory
}

// Validate reports every missing setting for the selected remote store.
func (c *Config) Validate() error {
	var missing []string
	need := func(v, key string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
	}

	switch c.RemoteStore {
	case RemoteStoreRTDB:
		need(c.FirebaseProjectID, "FIREBASE_PROJECT_ID")
		need(c.FirebaseDatabaseURL, "FIREBASE_DATABASE_URL")
	case RemoteStoreFirestore:
		need(c.FirebaseProjectID, "FIREBASE_PROJECT_ID")
	case RemoteStoreMemory:
	default:
		return fmt.Errorf("config: REMOTE_STORE must be rtdb, firestore or memory (got %q)", c.RemoteStore)
	}

	if c.UsesFirebase() && c.FirebaseWebAPIKey == "" && c.WebAPIKeySecret == "" {
		missing = append(missing, "FIREBASE_WEB_API_KEY (or FIREBASE_WEB_API_KEY_SECRET)")
	}
	need(c.LocalStorePath, "LOCAL_STORE_PATH")
	if c.SendGridAPIKey != "" {
		need(c.SendGridFrom, "SENDGRID_FROM")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be > 0")
	}

	if len(missing) > 0 {
		return fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
