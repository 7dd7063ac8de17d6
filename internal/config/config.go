package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseURL     string
	RealtimeChannel string

	SupabaseURL       string
	SupabaseJWTSecret string
	AvatarBucketURL   string

	RedisURL    string
	RabbitMQURL string

	// WebhookSecret vazio desliga a checagem de assinatura do intake.
	WebhookSecret string

	CORSAllowedOrigins []string
	// TrustProxy liga o chimw.RealIP; só com proxy reverso na frente.
	TrustProxy      bool
	IntakeRateLimit int // requisições por minuto, por IP
	SLATick         time.Duration

	SentryDSN string

	MailHost      string
	MailPort      int
	MailUser      string
	MailPass      string
	SaleAlertFrom string
	SaleAlertTo   []string
}

// Load lê o .env (se existir) e depois o ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RealtimeChannel: getEnv("REALTIME_CHANNEL", "sales_os_changes"),

		SupabaseURL:       strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),
		AvatarBucketURL:   strings.TrimRight(os.Getenv("AVATAR_BUCKET_URL"), "/"),

		RedisURL:    os.Getenv("REDIS_URL"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		TrustProxy:         getEnvBool("TRUST_PROXY", false),
		IntakeRateLimit:    getEnvInt("INTAKE_RATE_LIMIT", 10),
		SLATick:            time.Duration(getEnvInt("SLA_TICK_SECONDS", 60)) * time.Second,

		SentryDSN: os.Getenv("SENTRY_DSN"),

		MailHost:      os.Getenv("MAIL_HOST"),
		MailPort:      getEnvInt("MAIL_PORT", 587),
		MailUser:      os.Getenv("MAIL_USER"),
		MailPass:      os.Getenv("MAIL_PASS"),
		SaleAlertFrom: getEnv("SALE_ALERT_FROM", "nao-responda@salesos.com.br"),
		SaleAlertTo:   getEnvList("SALE_ALERT_TO", nil),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.SupabaseJWTSecret == "" {
		missing = append(missing, "SUPABASE_JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("variáveis obrigatórias ausentes: %s", strings.Join(missing, ", "))
	}
	if c.IntakeRateLimit <= 0 {
		return errors.New("INTAKE_RATE_LIMIT deve ser positivo")
	}
	if c.SLATick <= 0 {
		return errors.New("SLA_TICK_SECONDS deve ser positivo")
	}
	return nil
}

// ProjectID é o primeiro label do host do SUPABASE_URL
// (https://abcd.supabase.co -> abcd).
func (c *Config) ProjectID() string {
	u, err := url.Parse(c.SupabaseURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := u.Hostname()
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}

// AvatarBaseURL é o prefixo público do bucket de avatares.
func (c *Config) AvatarBaseURL() string {
	if c.AvatarBucketURL != "" {
		return c.AvatarBucketURL
	}
	return fmt.Sprintf("https://%s.supabase.co/storage/v1/object/public/avatars", c.ProjectID())
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != "" && len(c.SaleAlertTo) > 0
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
