package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicine-inventory-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "clamp", cfg.Inventory.QuantityPolicy)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("DB_DRIVER", "MONGO")
	t.Setenv("INVENTORY_QUANTITY_POLICY", "absolute")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverMongo, cfg.DB.Driver)
	assert.Equal(t, "absolute", cfg.Inventory.QuantityPolicy)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_PoliticaInvalida(t *testing.T) {
	t.Setenv("INVENTORY_QUANTITY_POLICY", "floor")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProduccionSinSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "clinic", Password: "p@ss:word", DBName: "clinic", SSLMode: "disable"}
	assert.Equal(t, "postgres://clinic:p%40ss%3Aword@db:5432/clinic?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
