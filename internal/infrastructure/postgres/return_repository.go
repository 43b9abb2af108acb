package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo devoluciones sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, order_id, order_kind, reason, refund_method, money_box_id, total_amount, cash_refunded, created_by, created_at`

func (r *ReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	if ret.CreatedAt.IsZero() {
		ret.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO returns (`+returnColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ret.ID, ret.OrderID, string(ret.OrderKind), ret.Reason, ret.RefundMethod,
		nullString(ret.MoneyBoxID), ret.TotalAmount, ret.CashRefunded, nullString(ret.CreatedBy), ret.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

func (r *ReturnRepo) CreateItem(ctx context.Context, item *entity.ReturnItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO return_items (id, return_id, order_line_item_id, product_id, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.ReturnID, item.OrderLineItemID, item.ProductID, item.Quantity, item.Price, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert return item: %w", err)
	}
	return nil
}

// GetByID devuelve la devolución con sus líneas.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.Return, error) {
	ret, err := scanReturn(r.q.QueryRow(ctx, `SELECT `+returnColumns+` FROM returns WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	if err := r.loadItems(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// ListByOrder lista las devoluciones de una orden en orden de creación.
func (r *ReturnRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Return, error) {
	rows, err := r.q.Query(ctx, `SELECT `+returnColumns+` FROM returns WHERE order_id = $1 ORDER BY created_at`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	var list []*entity.Return
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, ret)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	for _, ret := range list {
		if err := r.loadItems(ctx, ret); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func scanReturn(row pgx.Row) (*entity.Return, error) {
	var ret entity.Return
	var kind string
	var moneyBoxID, createdBy *string
	if err := row.Scan(&ret.ID, &ret.OrderID, &kind, &ret.Reason, &ret.RefundMethod,
		&moneyBoxID, &ret.TotalAmount, &ret.CashRefunded, &createdBy, &ret.CreatedAt); err != nil {
		return nil, err
	}
	ret.OrderKind = entity.OrderKind(kind)
	ret.MoneyBoxID, ret.CreatedBy = fromNull(moneyBoxID), fromNull(createdBy)
	return &ret, nil
}

func (r *ReturnRepo) loadItems(ctx context.Context, ret *entity.Return) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, return_id, order_line_item_id, product_id, quantity, price, total
		FROM return_items WHERE return_id = $1 ORDER BY id`, ret.ID)
	if err != nil {
		return fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.OrderLineItemID, &it.ProductID, &it.Quantity, &it.Price, &it.Total); err != nil {
			return fmt.Errorf("scan return item: %w", err)
		}
		ret.Items = append(ret.Items, it)
	}
	return rows.Err()
}
