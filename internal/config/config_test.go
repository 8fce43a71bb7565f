package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
driver = "memory"

[booking]
max_bookings_per_day = 6
timezone = "UTC"

[provider]
name = "Clinic"
admin_email = "admin@example.com"

[[catalog.services]]
id = 1
name = "Home visit"
price = "250000.50"
duration_minutes = 60
active = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesFileOverDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 6, cfg.Booking.MaxBookingsPerDay)
	assert.Equal(t, 14, cfg.Booking.AdvanceBookingDays)
	assert.Equal(t, "CVA", cfg.Booking.BookingCodePrefix)

	require.Len(t, cfg.Catalog.Services, 1)
	assert.True(t, decimal.RequireFromString("250000.50").Equal(cfg.Catalog.Services[0].Price))
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("ADMIN_EMAIL", "ops@example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "ops@example.com", cfg.Provider.AdminEmail)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ValidationErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
driver = "mysql"

[booking]
max_bookings_per_day = 0
timezone = "Mars/Olympus"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.driver")
	assert.Contains(t, err.Error(), "max_bookings_per_day")
	assert.Contains(t, err.Error(), "timezone")
	assert.Contains(t, err.Error(), "catalog")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestBookingConfig_Rules(t *testing.T) {
	rules, err := Default().Booking.Rules()
	require.NoError(t, err)

	assert.Equal(t, 60, rules.SlotDurationMinutes)
	assert.Equal(t, 4, rules.MaxBookingsPerDay)
	assert.Equal(t, "Asia/Jakarta", rules.Location.String())
}
