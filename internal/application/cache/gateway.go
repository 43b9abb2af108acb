// Package cache implementa la compuerta de invalidación posterior al commit.
package cache

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
)

// NoopInvalidator no invalida nada (despliegues sin Redis).
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(context.Context, ...ports.Family) error { return nil }

// Gateway dispara la invalidación de vistas de lectura estrictamente después del commit.
// Un fallo de invalidación se registra y no es fatal: el TTL de las entradas acota la inconsistencia.
type Gateway struct {
	inv   ports.CacheInvalidator
	views ports.ReadCache
	log   zerolog.Logger
}

// NewGateway construye la compuerta. inv nil equivale a NoopInvalidator.
func NewGateway(inv ports.CacheInvalidator, log zerolog.Logger) *Gateway {
	if inv == nil {
		inv = NoopInvalidator{}
	}
	return &Gateway{inv: inv, log: log}
}

// Run ejecuta fn en una transacción y, solo si confirmó, invalida las familias indicadas.
// Si la transacción falla no se invalida nada y se devuelve el error original.
func (g *Gateway) Run(ctx context.Context, tx ports.TxRunner, fn func(repos ports.Repos) error, families ...ports.Family) error {
	if err := tx.Run(ctx, fn); err != nil {
		return err
	}
	g.AfterCommit(ctx, families...)
	return nil
}

// AfterCommit invalida las familias. Nunca devuelve error.
func (g *Gateway) AfterCommit(ctx context.Context, families ...ports.Family) {
	if len(families) == 0 {
		return
	}
	if err := g.inv.Invalidate(ctx, families...); err != nil {
		g.log.Warn().Err(err).Interface("families", families).Msg("invalidación de caché fallida; se confía en el TTL")
	}
}

// WithReadCache habilita las vistas de lectura cacheadas (ver Cached).
func (g *Gateway) WithReadCache(views ports.ReadCache) *Gateway {
	g.views = views
	return g
}

// Cached devuelve la vista desde el caché o la carga con load y la guarda.
// Cualquier error del caché se registra y se cae a load; nunca se sirve un error de Redis.
func Cached[T any](ctx context.Context, g *Gateway, family ports.Family, key string, load func() (T, error)) (T, error) {
	if g == nil || g.views == nil {
		return load()
	}
	var cached T
	found, err := g.views.Get(ctx, family, key, &cached)
	if err != nil {
		g.log.Warn().Err(err).Str("family", string(family)).Str("key", key).Msg("lectura de caché fallida")
	}
	if found {
		return cached, nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if err := g.views.Set(ctx, family, key, v); err != nil {
		g.log.Warn().Err(err).Str("family", string(family)).Str("key", key).Msg("escritura de caché fallida")
	}
	return v, nil
}
