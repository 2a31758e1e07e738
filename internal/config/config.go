package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		AccessTTL  int    `yaml:"access_ttl"`  // minutes
		RefreshTTL int    `yaml:"refresh_ttl"` // hours
	} `yaml:"jwt"`

	Session struct {
		CookieDomain string `yaml:"cookie_domain"`
		Secure       bool   `yaml:"secure"`
	} `yaml:"session"`

	// External AI assessment backend the proxy routes forward to.
	Backend struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"backend"`

	Razorpay struct {
		KeyID      string `yaml:"key_id"`
		KeySecret  string `yaml:"key_secret"`
		APIBase    string `yaml:"api_base"`
		Currency   string `yaml:"currency"`
		PlanAmount int64  `yaml:"plan_amount"` // minor units (paise)
		PlanDays   int    `yaml:"plan_days"`
	} `yaml:"razorpay"`

	Email struct {
		SMTPHost         string `yaml:"smtp_host"`
		SMTPPort         int    `yaml:"smtp_port"`
		SMTPUsername     string `yaml:"smtp_user"`
		SMTPPassword     string `yaml:"smtp_password"`
		FromEmail        string `yaml:"from_email"`
		FromName         string `yaml:"from_name"`
		ContactRecipient string `yaml:"contact_recipient"`
	} `yaml:"email"`

	Storage struct {
		Type         string `yaml:"type"`     // local, s3
		BasePath     string `yaml:"base_path"` // for local storage
		BaseURL      string `yaml:"base_url"`  // public URL base
		ResumeBucket string `yaml:"resume_bucket"`
		AvatarBucket string `yaml:"avatar_bucket"`
		Region       string `yaml:"region"`
		AccessKey    string `yaml:"access_key"`
		SecretKey    string `yaml:"secret_key"`
		Endpoint     string `yaml:"endpoint"` // for R2 or custom S3
	} `yaml:"storage"`

	Redis struct {
		Addr        string `yaml:"addr"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db"`
		JobsTTLSecs int    `yaml:"jobs_ttl_seconds"`
	} `yaml:"redis"`

	Jobs struct {
		APIBase string `yaml:"api_base"` // remotive
	} `yaml:"jobs"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`
		AllowedTypes []string `yaml:"allowed_types"`
	} `yaml:"upload"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	// Best effort: local development keeps secrets in .env
	_ = godotenv.Load()

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyEnvOverrides(&cfg)
		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Env-only mode (tests, container deployments)
	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyEnvOverrides pulls every secret from the environment. Secrets never
// live in the YAML file or in source (the config file carries the
// non-sensitive knobs only).
func applyEnvOverrides(cfg *Config) {
	setIfEnv := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setIfEnv(&cfg.Database.DSN, "DATABASE_URL")
	setIfEnv(&cfg.JWT.Secret, "JWT_SECRET")
	setIfEnv(&cfg.Backend.BaseURL, "BACKEND_API_URL")
	setIfEnv(&cfg.Razorpay.KeyID, "RAZORPAY_KEY_ID")
	setIfEnv(&cfg.Razorpay.KeySecret, "RAZORPAY_KEY_SECRET")
	setIfEnv(&cfg.Email.SMTPUsername, "EMAIL_USER")
	setIfEnv(&cfg.Email.SMTPPassword, "EMAIL_PASS")
	setIfEnv(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setIfEnv(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setIfEnv(&cfg.Redis.Addr, "REDIS_ADDR")
	setIfEnv(&cfg.Redis.Password, "REDIS_PASSWORD")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = 60 // minutes
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 24 * 7 // hours
	}
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8000"
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 30
	}
	if cfg.Razorpay.APIBase == "" {
		cfg.Razorpay.APIBase = "https://api.razorpay.com/v1"
	}
	if cfg.Razorpay.Currency == "" {
		cfg.Razorpay.Currency = "INR"
	}
	if cfg.Razorpay.PlanAmount == 0 {
		cfg.Razorpay.PlanAmount = 49900 // paise
	}
	if cfg.Razorpay.PlanDays == 0 {
		cfg.Razorpay.PlanDays = 30
	}
	if cfg.Email.SMTPHost == "" {
		cfg.Email.SMTPHost = "smtp.gmail.com"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/api/v1/files"
	}
	if cfg.Storage.ResumeBucket == "" {
		cfg.Storage.ResumeBucket = "resume"
	}
	if cfg.Storage.AvatarBucket == "" {
		cfg.Storage.AvatarBucket = "avatars"
	}
	if cfg.Redis.JobsTTLSecs == 0 {
		cfg.Redis.JobsTTLSecs = 300
	}
	if cfg.Jobs.APIBase == "" {
		cfg.Jobs.APIBase = "https://remotive.com/api"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain",
			"image/jpeg", "image/png", "image/webp",
		}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// RequiredEnv lists the environment variables the service cannot start
// without. Used by cmd/checkenv.
var RequiredEnv = []string{
	"DATABASE_URL",
	"JWT_SECRET",
	"RAZORPAY_KEY_ID",
	"RAZORPAY_KEY_SECRET",
}

// OptionalEnv lists variables the service degrades gracefully without.
var OptionalEnv = []string{
	"BACKEND_API_URL",
	"EMAIL_USER",
	"EMAIL_PASS",
	"STORAGE_ACCESS_KEY",
	"STORAGE_SECRET_KEY",
	"REDIS_ADDR",
	"SERVER_PORT",
	"SERVER_ENV",
}

// MissingRequired returns the required variables absent from the environment.
func MissingRequired() []string {
	var missing []string
	for _, key := range RequiredEnv {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
