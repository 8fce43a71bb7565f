package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/shopspring/decimal"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Provider  ProviderConfig  `toml:"provider"`
	Catalog   CatalogConfig   `toml:"catalog"`
	MailQueue MailQueueConfig `toml:"mail_queue"`
	CORS      CORSConfig      `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver" env:"DB_DRIVER"`
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE"`
	Level string `toml:"level" env:"LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	SlotDurationMinutes   int    `toml:"slot_duration_minutes"`
	MaxBookingsPerDay     int    `toml:"max_bookings_per_day"`
	AdvanceBookingDays    int    `toml:"advance_booking_days"`
	MinHoursBeforeBooking int    `toml:"min_hours_before_booking"`
	CancellationHours     int    `toml:"cancellation_hours"`
	BookingCodePrefix     string `toml:"booking_code_prefix"`
	Timezone              string `toml:"timezone" env:"APP_TIMEZONE"`
}

// Rules переводит секцию [booking] в доменные правила
func (b BookingConfig) Rules() (domain.BookingRules, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return domain.BookingRules{}, fmt.Errorf("booking.timezone %q: %w", b.Timezone, err)
	}
	return domain.BookingRules{
		SlotDurationMinutes:   b.SlotDurationMinutes,
		MaxBookingsPerDay:     b.MaxBookingsPerDay,
		AdvanceBookingDays:    b.AdvanceBookingDays,
		MinHoursBeforeBooking: b.MinHoursBeforeBooking,
		CancellationHours:     b.CancellationHours,
		BookingCodePrefix:     b.BookingCodePrefix,
		Location:              loc,
	}, nil
}

// ProviderConfig контакты клиники для писем пациентам и адрес администратора
type ProviderConfig struct {
	Name       string `toml:"name"`
	Phone      string `toml:"phone"`
	Email      string `toml:"email"`
	AdminEmail string `toml:"admin_email" env:"ADMIN_EMAIL"`
}

type CatalogConfig struct {
	URL       string                 `toml:"url" env:"CATALOG_URL"`
	Timeout   int                    `toml:"timeout"`
	CacheSize int                    `toml:"cache_size"`
	CacheTTL  int                    `toml:"cache_ttl"`
	Services  []CatalogServiceConfig `toml:"services"`
}

// CatalogServiceConfig услуга статического каталога (когда url не задан)
type CatalogServiceConfig struct {
	ID              int64           `toml:"id"`
	Name            string          `toml:"name"`
	Price           decimal.Decimal `toml:"price"`
	DurationMinutes int             `toml:"duration_minutes"`
	Active          bool            `toml:"active"`
}

type MailQueueConfig struct {
	Enabled    bool   `toml:"enabled" env:"RABBITMQ_ENABLED"`
	URL        string `toml:"url" env:"RABBITMQ_URL"`
	Exchange   string `toml:"exchange"`
	RoutingKey string `toml:"routing_key"`
	Queue      string `toml:"queue"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Load читает TOML файл, применяет переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "homecare-booking-service",
		},
		Booking: BookingConfig{
			SlotDurationMinutes:   domain.DefaultSlotDurationMinutes,
			MaxBookingsPerDay:     domain.DefaultMaxBookingsPerDay,
			AdvanceBookingDays:    domain.DefaultAdvanceBookingDays,
			MinHoursBeforeBooking: domain.DefaultMinHoursBeforeBooking,
			CancellationHours:     domain.DefaultCancellationHours,
			BookingCodePrefix:     domain.DefaultBookingCodePrefix,
			Timezone:              domain.DefaultTimezone,
		},
		Catalog: CatalogConfig{
			Timeout:   5,
			CacheSize: 128,
			CacheTTL:  300,
		},
		MailQueue: MailQueueConfig{
			Exchange:   "",
			RoutingKey: "booking.emails",
			Queue:      "booking.emails",
		},
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Database.Driver))
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	b := c.Booking
	if b.SlotDurationMinutes < domain.MinSlotDurationMinutes || b.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		errs = append(errs, fmt.Errorf("booking.slot_duration_minutes must be in [%d, %d]",
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes))
	}
	if b.MaxBookingsPerDay <= 0 {
		errs = append(errs, errors.New("booking.max_bookings_per_day must be positive"))
	}
	if b.AdvanceBookingDays <= 0 {
		errs = append(errs, errors.New("booking.advance_booking_days must be positive"))
	}
	if b.MinHoursBeforeBooking < 0 || b.CancellationHours < 0 {
		errs = append(errs, errors.New("booking hours limits must not be negative"))
	}
	if b.BookingCodePrefix == "" {
		errs = append(errs, errors.New("booking.booking_code_prefix is required"))
	}
	if _, err := time.LoadLocation(b.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("booking.timezone %q: %w", b.Timezone, err))
	}

	if c.MailQueue.Enabled && c.MailQueue.URL == "" {
		errs = append(errs, errors.New("mail_queue.url is required when mail_queue.enabled"))
	}

	if c.Catalog.URL == "" && len(c.Catalog.Services) == 0 {
		errs = append(errs, errors.New("catalog.url or at least one [[catalog.services]] entry is required"))
	}

	return errors.Join(errs...)
}
