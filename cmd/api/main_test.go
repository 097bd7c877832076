package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicine-inventory-api/pkg/config"
	"github.com/jhoicas/medicine-inventory-api/pkg/logger"
)

func TestRun_DriverNoSoportado_RetornaError(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{Driver: "sqlite"}}

	err := run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no soportado")
}

func TestRun_RedisCaido_RetornaErrorSinSalir(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cfg := &config.Config{
		DB:    config.DBConfig{Driver: config.DriverMemory},
		Redis: config.RedisConfig{Addr: addr},
	}

	err = run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión a Redis")
}

func TestOpenStorage_Memory(t *testing.T) {
	store, err := openStorage(context.Background(), &config.Config{DB: config.DBConfig{Driver: config.DriverMemory}})
	require.NoError(t, err)
	defer store.close()

	assert.NotNil(t, store.txRunner)
	assert.NotNil(t, store.items)
	assert.NotNil(t, store.stockIns)
	assert.NotNil(t, store.disposals)
	assert.NotNil(t, store.adjustments)
}
