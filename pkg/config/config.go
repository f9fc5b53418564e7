package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config holds every external setting of the tracker. It is loaded once in main
// and passed by reference into the components that need it; there are no
// module-level singletons.
type Config struct {
	// Port Settings
	ServerAddr string `json:"serverAddr"` // The address the API server binds to.

	// FrontendOrigin, when set, is allowed via CORS (e.g. http://localhost:5173).
	FrontendOrigin string `json:"frontendOrigin"`

	Auth struct {
		AccessTokenSecret      string `json:"accessTokenSecret"`
		AccessTokenExpiryHour  int    `json:"accessTokenExpiryHour"`
		RefreshTokenExpiryHour int    `json:"refreshTokenExpiryHour"`
	} `json:"auth"`

	Postgres struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		DBName   string `json:"dbname"`
		User     string `json:"user"`
		Password string `json:"password"`
		SSLMode  string `json:"sslmode"`
		TimeZone string `json:"timeZone"`
	} `json:"postgres"`

	Minio struct {
		Endpoint  string `json:"endpoint"`
		AccessKey string `json:"accessKey"`
		SecretKey string `json:"secretKey"`
		UseSSL    bool   `json:"useSSL"`
		Bucket    string `json:"bucket"`
	} `json:"minio"`
}

const (
	defaultServerAddr       = ":8088"
	defaultTokenExpiryHour  = 24
	defaultRefreshTokenHour = 24 * 7
	defaultBucket           = "cdf-projects"
)

// Load reads the YAML config file pointed to by CDF_TRACKER_CONFIG (falling
// back to etc/config.yaml) and applies secret overrides from the environment.
func Load() (*Config, error) {
	path := os.Getenv("CDF_TRACKER_CONFIG")
	if path == "" {
		path = "etc/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Secrets may come from the environment instead of the file.
	if v := os.Getenv("CDF_ACCESS_TOKEN_SECRET"); v != "" {
		cfg.Auth.AccessTokenSecret = v
	}
	if v := os.Getenv("CDF_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("CDF_MINIO_ACCESS_KEY"); v != "" {
		cfg.Minio.AccessKey = v
	}
	if v := os.Getenv("CDF_MINIO_SECRET_KEY"); v != "" {
		cfg.Minio.SecretKey = v
	}

	cfg.applyDefaults()

	if cfg.Auth.AccessTokenSecret == "" {
		return nil, fmt.Errorf("config: auth.accessTokenSecret is required")
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = defaultServerAddr
	}
	if c.Auth.AccessTokenExpiryHour == 0 {
		c.Auth.AccessTokenExpiryHour = defaultTokenExpiryHour
	}
	if c.Auth.RefreshTokenExpiryHour == 0 {
		c.Auth.RefreshTokenExpiryHour = defaultRefreshTokenHour
	}
	if c.Minio.Bucket == "" {
		c.Minio.Bucket = defaultBucket
	}
}
