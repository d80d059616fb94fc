package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "3001", cfg.Server.Port)
	require.Equal(t, "aerocode", cfg.Database.DBName)
	require.Equal(t, "admin@aerocode.com", cfg.Admin.Email)
	require.Equal(t, 90, cfg.Snapshot.RetentionDays)
	require.Equal(t, 300, cfg.Snapshot.CacheTTLSeconds)
	require.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("POSTGRES_DB", "aerocode_test")
	t.Setenv("SNAPSHOT_RETENTION_DAYS", "7")
	t.Setenv("SNAPSHOT_INTERVAL_MINUTES", "nao-numero")

	cfg := Load()
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "aerocode_test", cfg.Database.DBName)
	require.Equal(t, 7, cfg.Snapshot.RetentionDays)
	// Unparseable numbers fall back to the default.
	require.Equal(t, 60, cfg.Snapshot.IntervalMinutes)
}

func TestDatabaseConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		User:     "aero",
		Password: "segredo",
		DBName:   "aerocode",
		SSLMode:  "disable",
	}
	require.Equal(t, "postgres://aero:segredo@db:5433/aerocode?sslmode=disable", cfg.ConnectionString())
}
