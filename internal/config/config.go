package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Model    ModelConfig
	Overpass OverpassConfig
	Geocoder GeocoderConfig
	Safety   SafetyConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	FacilityCacheTTL time.Duration
	LampCacheTTL     time.Duration
	SessionTTL       time.Duration
}

type ModelConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type OverpassConfig struct {
	Endpoint   string
	MaxRetries int
	Timeout    time.Duration
}

type GeocoderConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// SafetyConfig - пороги геоанализа в метрах и уровни плотности
type SafetyConfig struct {
	CrimeThresholdMeters float64
	LampBufferMeters     float64
	FacilityRadiusMeters float64
	RouteBufferDegrees   float64
	WellLitPer100m       float64
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("API_HOST"),
			Port:         viper.GetInt("API_PORT"),
			Env:          viper.GetString("API_ENV"),
			AllowOrigins: viper.GetString("API_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			FacilityCacheTTL: time.Duration(viper.GetInt("FACILITY_CACHE_TTL")) * time.Second,
			LampCacheTTL:     time.Duration(viper.GetInt("LAMP_CACHE_TTL")) * time.Second,
			SessionTTL:       time.Duration(viper.GetInt("SESSION_TTL")) * time.Second,
		},
		Model: ModelConfig{
			APIKey:    viper.GetString("MODEL_API_KEY"),
			Model:     viper.GetString("MODEL_NAME"),
			MaxTokens: viper.GetInt("MODEL_MAX_TOKENS"),
			Timeout:   time.Duration(viper.GetInt("MODEL_TIMEOUT")) * time.Second,
		},
		Overpass: OverpassConfig{
			Endpoint:   viper.GetString("OVERPASS_ENDPOINT"),
			MaxRetries: viper.GetInt("OVERPASS_MAX_RETRIES"),
			Timeout:    time.Duration(viper.GetInt("OVERPASS_TIMEOUT")) * time.Second,
		},
		Geocoder: GeocoderConfig{
			BaseURL:   viper.GetString("GEOCODER_BASE_URL"),
			UserAgent: viper.GetString("GEOCODER_USER_AGENT"),
			Timeout:   time.Duration(viper.GetInt("GEOCODER_TIMEOUT")) * time.Second,
		},
		Safety: SafetyConfig{
			CrimeThresholdMeters: viper.GetFloat64("SAFETY_CRIME_THRESHOLD"),
			LampBufferMeters:     viper.GetFloat64("SAFETY_LAMP_BUFFER"),
			FacilityRadiusMeters: viper.GetFloat64("SAFETY_FACILITY_RADIUS"),
			RouteBufferDegrees:   viper.GetFloat64("SAFETY_ROUTE_BUFFER_DEG"),
			WellLitPer100m:       viper.GetFloat64("SAFETY_WELL_LIT_PER_100M"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Safety.CrimeThresholdMeters == 0 {
		cfg.Safety.CrimeThresholdMeters = 16
	}
	if cfg.Safety.LampBufferMeters == 0 {
		cfg.Safety.LampBufferMeters = 25
	}
	if cfg.Safety.FacilityRadiusMeters == 0 {
		cfg.Safety.FacilityRadiusMeters = 250
	}
	if cfg.Safety.RouteBufferDegrees == 0 {
		cfg.Safety.RouteBufferDegrees = 0.01
	}
	if cfg.Safety.WellLitPer100m == 0 {
		cfg.Safety.WellLitPer100m = 1.5
	}
	if cfg.Model.Model == "" {
		cfg.Model.Model = "claude-3-5-haiku-latest"
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = 1024
	}
	if cfg.Model.Timeout == 0 {
		cfg.Model.Timeout = 30 * time.Second
	}
	if cfg.Overpass.Endpoint == "" {
		cfg.Overpass.Endpoint = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.MaxRetries == 0 {
		cfg.Overpass.MaxRetries = 2
	}
	if cfg.Overpass.Timeout == 0 {
		cfg.Overpass.Timeout = 25 * time.Second
	}
	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "saferoute-assistant/1.0"
	}
	if cfg.Geocoder.Timeout == 0 {
		cfg.Geocoder.Timeout = 10 * time.Second
	}
	if cfg.Cache.FacilityCacheTTL == 0 {
		cfg.Cache.FacilityCacheTTL = 30 * time.Minute
	}
	if cfg.Cache.LampCacheTTL == 0 {
		cfg.Cache.LampCacheTTL = 6 * time.Hour
	}
	if cfg.Cache.SessionTTL == 0 {
		cfg.Cache.SessionTTL = 24 * time.Hour
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "route-analysis-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
