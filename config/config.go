package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Minio     MinioConfig     `yaml:"minio"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	Assistant AssistantConfig `yaml:"assistant"`
	Users     []User          `yaml:"users"`
}

type ServerConfig struct {
	Port            int `yaml:"port"`
	RateLimit       int `yaml:"rate_limit"`        // requests per minute per client IP
	MaxUploadSizeMB int `yaml:"max_upload_size_mb"` // multipart memory limit
}

// MinioConfig configures the object storage for uploaded files.
// An empty endpoint disables storage; uploads then keep metadata only.
type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

// Enabled reports whether an object storage endpoint is configured
func (c *MinioConfig) Enabled() bool {
	return c.Endpoint != ""
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig bounds the in-memory stores, 0 = unlimited
type StoreConfig struct {
	MaxConversations int `yaml:"max_conversations"`
	MaxDocuments     int `yaml:"max_documents"`
	MaxFiles         int `yaml:"max_files"`
}

// AssistantConfig holds the simulated latencies of the assistant, in milliseconds
type AssistantConfig struct {
	ReplyDelayMs      int `yaml:"reply_delay_ms"`
	SaveDelayMs       int `yaml:"save_delay_ms"`
	UploadDelayMs     int `yaml:"upload_delay_ms"`
	AnalysisDelayMs   int `yaml:"analysis_delay_ms"`
	MaxPendingReplies int `yaml:"max_pending_replies"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Tenant   string `yaml:"tenant"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// SetDefaults fills every zero value that has a sensible default
func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 100
	}
	if c.Server.MaxUploadSizeMB == 0 {
		c.Server.MaxUploadSizeMB = 32
	}
	if c.Minio.ExpireDays == 0 {
		c.Minio.ExpireDays = 7
	}
	if c.Minio.Bucket == "" {
		c.Minio.Bucket = "contract-uploads"
	}
	if c.Auth.TokenExpireHours == 0 {
		c.Auth.TokenExpireHours = 24
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Store.MaxConversations == 0 {
		c.Store.MaxConversations = 100
	}
	if c.Store.MaxDocuments == 0 {
		c.Store.MaxDocuments = 100
	}
	if c.Store.MaxFiles == 0 {
		c.Store.MaxFiles = 200
	}
	if c.Assistant.ReplyDelayMs == 0 {
		c.Assistant.ReplyDelayMs = 2000
	}
	if c.Assistant.SaveDelayMs == 0 {
		c.Assistant.SaveDelayMs = 1000
	}
	if c.Assistant.UploadDelayMs == 0 {
		c.Assistant.UploadDelayMs = 2000
	}
	if c.Assistant.AnalysisDelayMs == 0 {
		c.Assistant.AnalysisDelayMs = 3000
	}
	if c.Assistant.MaxPendingReplies == 0 {
		c.Assistant.MaxPendingReplies = 3
	}
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}
