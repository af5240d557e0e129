package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	JWT         JWTConfig
	Sefaz       SefazConfig
	Conciliacao ConciliacaoConfig
	Email       EmailConfig
	S3          S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds token validation settings for the admin API.
// Tokens are issued by the main CIPT portal; this service only verifies them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// SefazConfig holds settings for the SEFAZ payment listing API.
type SefazConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	AppToken string        `mapstructure:"app_token"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// Receitas lists the revenue codes queried per run (permissionário
	// and evento codes by default).
	Receitas []int `mapstructure:"receitas"`
}

// ConciliacaoConfig holds the reconciliation engine settings.
type ConciliacaoConfig struct {
	// ToleranciaCentavos is the base monetary tolerance in cents used by
	// the tolerance ladder (legacy env CONCILIACAO_TOLERANCIA_CENTAVOS).
	ToleranciaCentavos int64 `mapstructure:"tolerancia_centavos"`
	// Debug enables per-candidate debug logging (legacy env DEBUG_CONCILIACAO).
	Debug bool `mapstructure:"debug"`
	// BaseDia selects which day a zero-arg run targets: "ontem" or "hoje"
	// (legacy env CONCILIAR_BASE_DIA).
	BaseDia string `mapstructure:"base_dia"`
	// LockPath is the lock file preventing overlapping runs.
	LockPath string `mapstructure:"lock_path"`
	// Timezone resolves "yesterday"/"today" and the schedule time.
	Timezone string `mapstructure:"timezone"`
	// ScheduleHour/ScheduleMinute define the daily trigger (default 06:00).
	ScheduleHour   int  `mapstructure:"schedule_hour"`
	ScheduleMinute int  `mapstructure:"schedule_minute"`
	SchedulerOn    bool `mapstructure:"scheduler_on"`
}

// EmailConfig holds operator alert delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// S3Config holds object storage settings for archived run reports.
type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Load reads configuration from environment variables with the CIPT_ prefix.
// The three reconciliation knobs inherited from the legacy cron scripts keep
// their original unprefixed names.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CIPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "ciptpag")
	v.SetDefault("db.password", "ciptpag_secret")
	v.SetDefault("db.name", "ciptpag_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "cipt-portal")

	// SEFAZ defaults
	v.SetDefault("sefaz.base_url", "")
	v.SetDefault("sefaz.app_token", "")
	v.SetDefault("sefaz.timeout", "30s")
	v.SetDefault("sefaz.receitas", []int{20165, 20166})

	// Conciliação defaults
	v.SetDefault("conciliacao.tolerancia_centavos", 500)
	v.SetDefault("conciliacao.debug", true)
	v.SetDefault("conciliacao.base_dia", "ontem")
	v.SetDefault("conciliacao.lock_path", "/tmp/ciptpag-conciliacao.lock")
	v.SetDefault("conciliacao.timezone", "America/Maceio")
	v.SetDefault("conciliacao.schedule_hour", 6)
	v.SetDefault("conciliacao.schedule_minute", 0)
	v.SetDefault("conciliacao.scheduler_on", true)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "sa-east-1")
	v.SetDefault("email.from_address", "noreply@cipt.al.gov.br")
	v.SetDefault("email.from_name", "CIPT Pagamentos")
	v.SetDefault("email.to_address", "")

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "sa-east-1")
	v.SetDefault("s3.bucket", "ciptpag-relatorios")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "conciliacoes")

	// Legacy env names take precedence over the prefixed equivalents when set.
	bindLegacy(v, "conciliacao.tolerancia_centavos", "CONCILIACAO_TOLERANCIA_CENTAVOS")
	bindLegacy(v, "conciliacao.debug", "DEBUG_CONCILIACAO")
	bindLegacy(v, "conciliacao.base_dia", "CONCILIAR_BASE_DIA")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Conciliacao.BaseDia != "ontem" && cfg.Conciliacao.BaseDia != "hoje" {
		return nil, fmt.Errorf("conciliacao.base_dia must be \"ontem\" or \"hoje\", got %q", cfg.Conciliacao.BaseDia)
	}
	return &cfg, nil
}

func bindLegacy(v *viper.Viper, key, env string) {
	// BindEnv only errors on an empty key, which cannot happen here.
	_ = v.BindEnv(key, env)
}
