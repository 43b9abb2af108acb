package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para cabeceras y líneas de compra/venta.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLineItem(ctx context.Context, item *entity.OrderLineItem) error
	// GetByID devuelve la cabecera con sus líneas.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera y devuelve sus líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ExistsByPartyAndInvoice(ctx context.Context, kind entity.OrderKind, partyID, invoiceNumber string) (bool, error)
	UpdateReturnedQuantity(ctx context.Context, lineItemID string, returned decimal.Decimal) error
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
}
