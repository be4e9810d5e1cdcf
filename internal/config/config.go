package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	LogConfig   logger.LogConfig `json:"log_config"`
	Database    DatabaseConfig   `json:"database"`
	FileStore   FileStoreConfig  `json:"file_store"`
	AI          AIConfig         `json:"ai"`
	Grobid      GrobidConfig     `json:"grobid"`
	Chunker     ChunkerConfig    `json:"chunker"`
	Retrieval   RetrievalConfig  `json:"retrieval"`
	Jobs        JobsConfig       `json:"jobs"`

	CORSAllow            []string `json:"cors_allow"`
	ChatRateLimitSeconds int      `json:"chat_rate_limit_seconds"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// S3Config is decoded from FileStoreConfig.Data when type is "s3".
type S3Config struct {
	Endpoint  string `json:"endpoint"`
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Prefix    string `json:"prefix"`
	UseSSL    bool   `json:"use_ssl"`
}

type AIProviderConfig struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Args     interface{} `json:"args"`
}

type AIConfig struct {
	Answerers       []AIProviderConfig `json:"answerers"`
	Questioners     []AIProviderConfig `json:"questioners"`
	Embedders       []AIProviderConfig `json:"embedders"`
	TimeoutSeconds  int                `json:"timeout_seconds"`
	MaxInputChars   int                `json:"max_input_chars"`
	QuestionCount   int                `json:"question_count"`
	CacheSize       int                `json:"cache_size"`
	CacheTTLMinutes int                `json:"cache_ttl_minutes"`
}

type GrobidConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type ChunkerConfig struct {
	MinChunkWords int `json:"min_chunk_words"`
	MaxChunkWords int `json:"max_chunk_words"`
	MaxKeywords   int `json:"max_keywords"`
}

type RetrievalConfig struct {
	Threshold      float64 `json:"threshold"`
	Limit          int     `json:"limit"`
	MaxPerDocument int     `json:"max_per_document"`
	PoolSize       int     `json:"pool_size"`
	KeywordWeight  float64 `json:"keyword_weight"`
}

type JobsConfig struct {
	IngestCron       string `json:"ingest_cron"`
	IngestBatch      int    `json:"ingest_batch"`
	CacheCleanupCron string `json:"cache_cleanup_cron"`
	CacheTTLDays     int    `json:"cache_ttl_days"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && (cfg.Database.Host == "" || cfg.Database.DBName == "") {
		return nil, fmt.Errorf("database.dsn or database.host/db_name is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		return nil, fmt.Errorf("file_store.type is required")
	}
	if cfg.AI.QuestionCount == 0 {
		cfg.AI.QuestionCount = 3
	}
	if cfg.AI.CacheSize == 0 {
		cfg.AI.CacheSize = 10000
	}
	if cfg.AI.CacheTTLMinutes == 0 {
		cfg.AI.CacheTTLMinutes = 120
	}
	if cfg.Jobs.IngestCron == "" {
		cfg.Jobs.IngestCron = "@every 30s"
	}
	if cfg.Jobs.IngestBatch == 0 {
		cfg.Jobs.IngestBatch = 4
	}
	if cfg.Jobs.CacheCleanupCron == "" {
		cfg.Jobs.CacheCleanupCron = "@daily"
	}
	if cfg.Jobs.CacheTTLDays == 0 {
		cfg.Jobs.CacheTTLDays = 30
	}
	return &cfg, nil
}
