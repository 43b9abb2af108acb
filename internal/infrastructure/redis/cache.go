// Package redis implementa las vistas de lectura cacheadas y su invalidación sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/pkg/config"
)

var (
	_ ports.CacheInvalidator = (*Cache)(nil)
	_ ports.ReadCache        = (*Cache)(nil)
)

// Cache guarda vistas de lectura con TTL. Cada clave se registra en un set por familia
// para poder invalidar la familia completa sin recorrer el keyspace.
type Cache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewClient crea el cliente Redis desde la configuración.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// New construye el caché. prefix separa instancias que comparten Redis.
func New(client *goredis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// Get lee la vista y la decodifica en dest. found=false si no existe o expiró.
func (c *Cache) Get(ctx context.Context, family ports.Family, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, c.entryKey(family, key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decode cached view: %w", err)
	}
	return true, nil
}

// Set guarda la vista con TTL y la registra en el set de su familia.
func (c *Cache) Set(ctx context.Context, family ports.Family, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached view: %w", err)
	}
	entry := c.entryKey(family, key)
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, entry, payload, c.ttl)
	pipe.SAdd(ctx, c.familyKey(family), entry)
	pipe.Expire(ctx, c.familyKey(family), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate borra todas las vistas registradas en cada familia y el set mismo.
func (c *Cache) Invalidate(ctx context.Context, families ...ports.Family) error {
	var errs []error
	for _, f := range families {
		setKey := c.familyKey(f)
		members, err := c.client.SMembers(ctx, setKey).Result()
		if err != nil {
			errs = append(errs, fmt.Errorf("redis smembers %s: %w", setKey, err))
			continue
		}
		keys := append(members, setKey)
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis del %s: %w", setKey, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Cache) entryKey(family ports.Family, key string) string {
	return fmt.Sprintf("%s:view:%s:%s", c.prefix, family, key)
}

func (c *Cache) familyKey(family ports.Family) string {
	return fmt.Sprintf("%s:family:%s", c.prefix, family)
}
