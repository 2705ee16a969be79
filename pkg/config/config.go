package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	School   SchoolConfig
	Contact  ContactConfig
	SPMB     SPMBConfig
	Uploads  UploadsConfig
	Cache    CacheConfig
	Mail     MailConfig
	Client   ClientConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	Expiration         time.Duration
	RememberExpiration time.Duration
	Issuer             string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchoolConfig supplies the static branding block served by the school-info
// and contact-info endpoints. Everything here is per-deployment customisation.
type SchoolConfig struct {
	Name            string
	Tagline         string
	Address         string
	Phone           string
	Email           string
	Website         string
	LogoURL         string
	PrimaryColor    string
	SecondaryColor  string
	AcademicYear    string
	ContactPerson   string
	ContactWhatsApp string
}

// ContactConfig holds contact-page specifics that are not school branding.
type ContactConfig struct {
	OfficeHours   string
	MapsEmbedURL  string
	MapsLatitude  float64
	MapsLongitude float64
	Instagram     string
	Facebook      string
}

// SPMBConfig controls the student admission flow: registration window, document
// storage and receipt generation.
type SPMBConfig struct {
	RegistrationOpen  bool
	DocumentDir       string
	ReceiptDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	MaxFileSizeBytes  int64
	AllowedMIMEs      []string
	WorkerConcurrency int
	WorkerRetries     int
}

// UploadsConfig governs article image uploads.
type UploadsConfig struct {
	ImageDir         string
	MaxFileSizeBytes int64
}

// CacheConfig toggles the public content cache.
type CacheConfig struct {
	Enabled   bool
	PublicTTL time.Duration
}

// MailConfig selects the outgoing mail provider for contact notifications.
type MailConfig struct {
	Provider      string // "console" or "sendgrid"
	SendgridKey   string
	FromAddress   string
	FromName      string
	NotifyAddress string
}

// ClientConfig configures the bundled API client (webclient package and the
// endpoint-check script).
type ClientConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Debug    bool
	StateDir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:             v.GetString("JWT_SECRET"),
		Expiration:         parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RememberExpiration: parseDuration(v.GetString("JWT_REMEMBER_EXPIRATION"), 30*24*time.Hour),
		Issuer:             v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.School = SchoolConfig{
		Name:            v.GetString("SCHOOL_NAME"),
		Tagline:         v.GetString("SCHOOL_TAGLINE"),
		Address:         v.GetString("SCHOOL_ADDRESS"),
		Phone:           v.GetString("SCHOOL_PHONE"),
		Email:           v.GetString("SCHOOL_EMAIL"),
		Website:         v.GetString("SCHOOL_WEBSITE"),
		LogoURL:         v.GetString("SCHOOL_LOGO_URL"),
		PrimaryColor:    v.GetString("SCHOOL_PRIMARY_COLOR"),
		SecondaryColor:  v.GetString("SCHOOL_SECONDARY_COLOR"),
		AcademicYear:    v.GetString("SCHOOL_ACADEMIC_YEAR"),
		ContactPerson:   v.GetString("SCHOOL_CONTACT_PERSON"),
		ContactWhatsApp: v.GetString("SCHOOL_CONTACT_WHATSAPP"),
	}

	cfg.Contact = ContactConfig{
		OfficeHours:   v.GetString("CONTACT_OFFICE_HOURS"),
		MapsEmbedURL:  v.GetString("CONTACT_MAPS_EMBED_URL"),
		MapsLatitude:  v.GetFloat64("CONTACT_MAPS_LATITUDE"),
		MapsLongitude: v.GetFloat64("CONTACT_MAPS_LONGITUDE"),
		Instagram:     v.GetString("CONTACT_INSTAGRAM"),
		Facebook:      v.GetString("CONTACT_FACEBOOK"),
	}

	maxDocSize := v.GetInt64("SPMB_MAX_FILE_SIZE")
	if maxDocSize <= 0 {
		maxDocSize = 5 * 1024 * 1024
	}
	cfg.SPMB = SPMBConfig{
		RegistrationOpen:  v.GetBool("SPMB_REGISTRATION_OPEN"),
		DocumentDir:       v.GetString("SPMB_DOCUMENT_DIR"),
		ReceiptDir:        v.GetString("SPMB_RECEIPT_DIR"),
		SignedURLSecret:   v.GetString("SPMB_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("SPMB_SIGNED_URL_TTL"), 7*24*time.Hour),
		MaxFileSizeBytes:  maxDocSize,
		AllowedMIMEs:      splitAndTrim(v.GetString("SPMB_ALLOWED_MIME_TYPES")),
		WorkerConcurrency: v.GetInt("SPMB_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("SPMB_WORKER_RETRIES"),
	}

	maxImageSize := v.GetInt64("UPLOADS_MAX_FILE_SIZE")
	if maxImageSize <= 0 {
		maxImageSize = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		ImageDir:         v.GetString("UPLOADS_IMAGE_DIR"),
		MaxFileSizeBytes: maxImageSize,
	}

	cfg.Cache = CacheConfig{
		Enabled:   v.GetBool("ENABLE_PUBLIC_CACHE"),
		PublicTTL: parseDuration(v.GetString("PUBLIC_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Mail = MailConfig{
		Provider:      v.GetString("MAIL_PROVIDER"),
		SendgridKey:   v.GetString("SENDGRID_API_KEY"),
		FromAddress:   v.GetString("MAIL_FROM_ADDRESS"),
		FromName:      v.GetString("MAIL_FROM_NAME"),
		NotifyAddress: v.GetString("MAIL_NOTIFY_ADDRESS"),
	}

	cfg.Client = ClientConfig{
		BaseURL:  v.GetString("CLIENT_BASE_URL"),
		Timeout:  parseDuration(v.GetString("CLIENT_TIMEOUT"), 10*time.Second),
		Debug:    v.GetBool("CLIENT_DEBUG"),
		StateDir: v.GetString("CLIENT_STATE_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_cms")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_REMEMBER_EXPIRATION", "720h")
	v.SetDefault("JWT_ISSUER", "school-cms-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHOOL_NAME", "SMK Nusantara Tech")
	v.SetDefault("SCHOOL_TAGLINE", "Membangun Generasi Digital Indonesia")
	v.SetDefault("SCHOOL_ADDRESS", "Jl. Teknologi No. 123, Jakarta Selatan 12345")
	v.SetDefault("SCHOOL_PHONE", "(021) 1234-5678")
	v.SetDefault("SCHOOL_EMAIL", "info@smknusantara.sch.id")
	v.SetDefault("SCHOOL_WEBSITE", "www.smknusantara.sch.id")
	v.SetDefault("SCHOOL_LOGO_URL", "/images/logo.png")
	v.SetDefault("SCHOOL_PRIMARY_COLOR", "#1e40af")
	v.SetDefault("SCHOOL_SECONDARY_COLOR", "#3b82f6")
	v.SetDefault("SCHOOL_ACADEMIC_YEAR", "2025/2026")
	v.SetDefault("SCHOOL_CONTACT_PERSON", "Panitia SPMB")
	v.SetDefault("SCHOOL_CONTACT_WHATSAPP", "")

	v.SetDefault("CONTACT_OFFICE_HOURS", "Senin-Jumat 07.00-16.00 WIB")
	v.SetDefault("CONTACT_MAPS_EMBED_URL", "")
	v.SetDefault("CONTACT_MAPS_LATITUDE", 0.0)
	v.SetDefault("CONTACT_MAPS_LONGITUDE", 0.0)
	v.SetDefault("CONTACT_INSTAGRAM", "")
	v.SetDefault("CONTACT_FACEBOOK", "")

	v.SetDefault("SPMB_REGISTRATION_OPEN", true)
	v.SetDefault("SPMB_DOCUMENT_DIR", "./storage/spmb")
	v.SetDefault("SPMB_RECEIPT_DIR", "./storage/receipts")
	v.SetDefault("SPMB_SIGNED_URL_SECRET", "dev_receipt_secret")
	v.SetDefault("SPMB_SIGNED_URL_TTL", "168h")
	v.SetDefault("SPMB_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("SPMB_ALLOWED_MIME_TYPES", "image/jpeg,image/png,application/pdf")
	v.SetDefault("SPMB_WORKER_CONCURRENCY", 1)
	v.SetDefault("SPMB_WORKER_RETRIES", 3)

	v.SetDefault("UPLOADS_IMAGE_DIR", "./storage/images")
	v.SetDefault("UPLOADS_MAX_FILE_SIZE", 5*1024*1024)

	v.SetDefault("ENABLE_PUBLIC_CACHE", false)
	v.SetDefault("PUBLIC_CACHE_TTL", "5m")

	v.SetDefault("MAIL_PROVIDER", "console")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM_ADDRESS", "noreply@smknusantara.sch.id")
	v.SetDefault("MAIL_FROM_NAME", "SMK Nusantara Tech")
	v.SetDefault("MAIL_NOTIFY_ADDRESS", "tu@smknusantara.sch.id")

	v.SetDefault("CLIENT_BASE_URL", "http://localhost:5000")
	v.SetDefault("CLIENT_TIMEOUT", "10s")
	v.SetDefault("CLIENT_DEBUG", false)
	v.SetDefault("CLIENT_STATE_DIR", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
