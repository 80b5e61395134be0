package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Object Storage (S3-compatible: Supabase Storage or R2)
	StorageEndpoint        string
	StorageRegion          string
	StorageAccessKeyID     string
	StorageAccessKeySecret string
	StoragePublicURL       string // e.g. https://<project>.supabase.co/storage/v1/object/public
	ProductBucket          string
	BannerBucket           string
	StorageUploadTimeout   time.Duration
	// Image ingestion
	MaxUploadSizeMB   int64
	ImageMaxBytes     int64
	ImageMaxDimension int
	ImageMaxPixels    int64
	ImageFormat       string
	ImageWorkers      int64
	// Cache
	CacheStatsTTL    time.Duration
	CacheShippingTTL time.Duration
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
	// Only honour X-Forwarded-For / X-Real-IP when a proxy in front rewrites them
	TrustProxyHeaders bool
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env for local dev, system env vars otherwise
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := Load()
	cfg.Validate()
	return cfg
}

// Load reads the configuration from the current environment without touching .env files.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBUrl:         getEnv("DB_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		StorageEndpoint:        getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:          getEnv("STORAGE_REGION", "auto"),
		StorageAccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
		StorageAccessKeySecret: getEnv("STORAGE_ACCESS_KEY_SECRET", ""),
		StoragePublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		ProductBucket:          getEnv("PRODUCT_BUCKET", "product_images"),
		BannerBucket:           getEnv("BANNER_BUCKET", "banners"),
		StorageUploadTimeout:   getDurationEnv("STORAGE_UPLOAD_TIMEOUT", 30*time.Second),

		// Upload defaults: 10MB raw, compressed to 250KB / 1280px webp
		MaxUploadSizeMB:   getInt64Env("MAX_UPLOAD_SIZE_MB", 10),
		ImageMaxBytes:     getInt64Env("IMAGE_MAX_BYTES", 250*1024),
		ImageMaxDimension: getIntEnv("IMAGE_MAX_DIMENSION", 1280),
		ImageMaxPixels:    getInt64Env("IMAGE_MAX_PIXELS", 40_000_000),
		ImageFormat:       getEnv("IMAGE_FORMAT", "webp"),
		ImageWorkers:      getInt64Env("IMAGE_WORKERS", 4),

		CacheStatsTTL:    getDurationEnv("CACHE_STATS_TTL", time.Minute),
		CacheShippingTTL: getDurationEnv("CACHE_SHIPPING_TTL", 10*time.Minute),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		TrustProxyHeaders: getBoolEnv("TRUST_PROXY_HEADERS", false),
	}
}

func (c *Config) Validate() {
	if c.DBUrl == "" {
		log.Fatal("CRITICAL: DB_DSN environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if c.StorageEndpoint == "" || c.StoragePublicURL == "" {
		log.Fatal("CRITICAL: STORAGE_ENDPOINT and STORAGE_PUBLIC_URL are required")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}
