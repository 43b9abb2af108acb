package returns

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// GetReturn devuelve la devolución con sus líneas o ErrNotFound.
func (uc *ProcessReturnUseCase) GetReturn(ctx context.Context, id string) (*entity.Return, error) {
	ret, err := cache.Cached(ctx, uc.cache, ports.FamilyReturns, "return:"+id, func() (entity.Return, error) {
		var ret entity.Return
		err := uc.txRunner.Read(ctx, func(repos ports.Repos) error {
			r, err := repos.Returns.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("get return: %w", err)
			}
			if r == nil {
				return domain.NotFound("devolución", id)
			}
			ret = *r
			return nil
		})
		return ret, err
	})
	if err != nil {
		return nil, domain.Integrity(err)
	}
	return &ret, nil
}

// ListReturns devoluciones de la orden en orden de registro. ErrNotFound si la orden no existe.
func (uc *ProcessReturnUseCase) ListReturns(ctx context.Context, orderID string) ([]*entity.Return, error) {
	var list []*entity.Return
	err := uc.txRunner.Read(ctx, func(repos ports.Repos) error {
		order, err := repos.Orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if order == nil {
			return domain.NotFound("orden", orderID)
		}
		list, err = repos.Returns.ListByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("list returns: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Integrity(err)
	}
	return list, nil
}
