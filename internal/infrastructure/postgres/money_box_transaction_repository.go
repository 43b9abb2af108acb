package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.MoneyBoxTransactionRepository = (*MoneyBoxTransactionRepo)(nil)

// MoneyBoxTransactionRepo transacciones de caja (solo inserción) sobre PostgreSQL.
type MoneyBoxTransactionRepo struct {
	q Querier
}

// NewMoneyBoxTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMoneyBoxTransactionRepository(q Querier) *MoneyBoxTransactionRepo {
	return &MoneyBoxTransactionRepo{q: q}
}

func (r *MoneyBoxTransactionRepo) Create(ctx context.Context, t *entity.MoneyBoxTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO money_box_transactions
			(id, box_id, type, amount, balance_after, related_box_id, reference_type, reference_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.BoxID, t.Type.String(), t.Amount, t.BalanceAfter, t.RelatedBoxID,
		nullString(t.ReferenceType), nullString(t.ReferenceID), t.Notes, nullString(t.CreatedBy), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create money box transaction: %w", err)
	}
	return nil
}

// ListByBox lista las transacciones de la caja, más recientes primero.
func (r *MoneyBoxTransactionRepo) ListByBox(ctx context.Context, boxID string, limit, offset int) ([]*entity.MoneyBoxTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, box_id, type, amount, balance_after, related_box_id, reference_type, reference_id, notes, created_by, created_at
		FROM money_box_transactions WHERE box_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, boxID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list money box transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.MoneyBoxTransaction
	for rows.Next() {
		var t entity.MoneyBoxTransaction
		var typ string
		var refType, refID, createdBy *string
		if err := rows.Scan(&t.ID, &t.BoxID, &typ, &t.Amount, &t.BalanceAfter, &t.RelatedBoxID,
			&refType, &refID, &t.Notes, &createdBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan money box transaction: %w", err)
		}
		tt, err := moneybox.ParseTransactionType(typ)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		t.Type = tt
		t.ReferenceType, t.ReferenceID, t.CreatedBy = fromNull(refType), fromNull(refID), fromNull(createdBy)
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SumByBox suma los montos firmados de la caja.
func (r *MoneyBoxTransactionRepo) SumByBox(ctx context.Context, boxID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM money_box_transactions WHERE box_id = $1`, boxID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum money box transactions: %w", err)
	}
	return sum, nil
}
