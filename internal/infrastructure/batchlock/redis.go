package batchlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/pkg/config"
	"github.com/jhoicas/medicine-inventory-api/pkg/logger"
)

var _ inventory.BatchLocker = (*Redis)(nil)

const retryInterval = 25 * time.Millisecond

// unlockScript borra la llave solo si sigue siendo nuestra (el TTL pudo expirar y otro tomarla).
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// LockKey llave Redis del lote.
func LockKey(batchID string) string {
	return fmt.Sprintf("inventory:batch:%s:lock", batchID)
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Redis lock distribuido por lote (SET NX PX + borrado condicional), válido entre instancias.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	log    *logger.Logger
}

// NewRedis construye el lock. ttl acota cuánto puede retener una instancia caída; wait cuánto se reintenta.
func NewRedis(client *redis.Client, ttl, wait time.Duration, log *logger.Logger) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Redis{client: client, ttl: ttl, wait: wait, log: log.Component("batchlock")}
}

// Lock reintenta hasta wait; si no obtiene la llave devuelve domain.ErrLockNotAcquired.
func (r *Redis) Lock(ctx context.Context, batchID string) (func(), error) {
	key := LockKey(batchID)
	token := uuid.New().String()
	deadline := time.Now().Add(r.wait)

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, domain.WrapStorage("redis lock", err)
		}
		if ok {
			break
		}
		if !time.Now().Before(deadline) {
			return nil, domain.ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrLockNotAcquired, ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	return func() {
		// El ctx de la petición puede estar cancelado; liberar igual.
		uctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := unlockScript.Run(uctx, r.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			r.log.Warn().Err(err).Str("batch_id", batchID).Msg("no se pudo liberar el lock")
		}
	}, nil
}
