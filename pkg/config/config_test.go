package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/blog")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.PrivateReads)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("PRIVATE_READS", "true")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("CORS_ORIGINS", " https://blog.example.com , ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.True(t, cfg.PrivateReads)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://blog.example.com"}, cfg.CORSOrigins)
}

func TestLoadReportsEveryProblem(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("BCRYPT_COST", "99")

	_, err := Load()
	require.Error(t, err)
	for _, want := range []string{"DATABASE_URL", "JWT_SECRET", "TOKEN_TTL", "BCRYPT_COST"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestOpenDatabaseSQLite(t *testing.T) {
	db, err := OpenDatabase(DatabaseConfig{Driver: DriverSQLite, URL: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	defer CloseDatabase(db, zap.NewNop())

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestOpenDatabaseUnknownDriver(t *testing.T) {
	_, err := OpenDatabase(DatabaseConfig{Driver: "oracle", URL: "x"}, zap.NewNop())
	assert.Error(t, err)
}
