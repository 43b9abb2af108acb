package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo compras y ventas (cabecera + líneas) sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, kind, party_id, invoice_number, total, discount, net_amount, paid_amount,
	status, money_box_id, notes, created_by, created_at, updated_at`

// Create inserta la cabecera. La restricción única (kind, party_id, invoice_number) se traduce a ErrDuplicateReference.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.ID, string(o.Kind), o.PartyID, o.InvoiceNumber, o.Total, o.Discount, o.NetAmount, o.PaidAmount,
		string(o.Status), nullString(o.MoneyBoxID), o.Notes, nullString(o.CreatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicateReference, o.InvoiceNumber)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) CreateLineItem(ctx context.Context, item *entity.OrderLineItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	var productID *string
	if entity.IsCatalogProduct(item.ProductID) {
		productID = item.ProductID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_line_items (id, order_id, product_id, description, quantity, price, returned_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.OrderID, productID, item.Description, item.Quantity, item.Price, item.ReturnedQuantity,
	)
	if err != nil {
		return fmt.Errorf("insert order line item: %w", err)
	}
	return nil
}

// GetByID devuelve la orden con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id, false)
}

// GetForUpdate bloquea la cabecera y sus líneas hasta el fin de la transacción.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id, true)
}

func (r *OrderRepo) get(ctx context.Context, query, id string, lock bool) (*entity.Order, error) {
	var o entity.Order
	var kind, status string
	var moneyBoxID, createdBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &kind, &o.PartyID, &o.InvoiceNumber, &o.Total, &o.Discount, &o.NetAmount, &o.PaidAmount,
		&status, &moneyBoxID, &o.Notes, &createdBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Kind = entity.OrderKind(kind)
	o.Status = entity.OrderStatus(status)
	o.MoneyBoxID, o.CreatedBy = fromNull(moneyBoxID), fromNull(createdBy)

	linesQuery := `
		SELECT id, order_id, product_id, description, quantity, price, returned_quantity
		FROM order_line_items WHERE order_id = $1 ORDER BY id`
	if lock {
		linesQuery += ` FOR UPDATE`
	}
	rows, err := r.q.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list order line items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLineItem
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Description, &l.Quantity, &l.Price, &l.ReturnedQuantity); err != nil {
			return nil, fmt.Errorf("scan order line item: %w", err)
		}
		o.Items = append(o.Items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order line items: %w", err)
	}
	return &o, nil
}

func (r *OrderRepo) ExistsByPartyAndInvoice(ctx context.Context, kind entity.OrderKind, partyID, invoiceNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM orders WHERE kind = $1 AND party_id = $2 AND invoice_number = $3)`,
		string(kind), partyID, invoiceNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order invoice: %w", err)
	}
	return exists, nil
}

// UpdateReturnedQuantity fija la cantidad devuelta acumulada. El CHECK returned_quantity <= quantity
// de la tabla respalda la validación previa del procesador de devoluciones.
func (r *OrderRepo) UpdateReturnedQuantity(ctx context.Context, lineItemID string, returned decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE order_line_items SET returned_quantity = $2 WHERE id = $1`, lineItemID, returned)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: línea %s", domain.ErrRejectedQuantity, lineItemID)
		}
		return fmt.Errorf("update returned quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("línea", lineItemID)
	}
	return nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("orden", id)
	}
	return nil
}
