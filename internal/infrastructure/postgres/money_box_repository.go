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

var _ repository.MoneyBoxRepository = (*MoneyBoxRepo)(nil)

// MoneyBoxRepo cajas sobre PostgreSQL.
type MoneyBoxRepo struct {
	q Querier
}

// NewMoneyBoxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMoneyBoxRepository(q Querier) *MoneyBoxRepo {
	return &MoneyBoxRepo{q: q}
}

func (r *MoneyBoxRepo) Create(ctx context.Context, b *entity.MoneyBox) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	_, err := r.q.Exec(ctx, `
		INSERT INTO money_boxes (id, name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Name, b.Balance, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: caja %s", domain.ErrDuplicateReference, b.Name)
		}
		return fmt.Errorf("insert money box: %w", err)
	}
	return nil
}

func (r *MoneyBoxRepo) GetByID(ctx context.Context, id string) (*entity.MoneyBox, error) {
	return r.get(ctx, `SELECT id, name, balance, created_at, updated_at FROM money_boxes WHERE id = $1`, id)
}

// GetForUpdate bloquea la caja hasta el fin de la transacción.
func (r *MoneyBoxRepo) GetForUpdate(ctx context.Context, id string) (*entity.MoneyBox, error) {
	return r.get(ctx, `SELECT id, name, balance, created_at, updated_at FROM money_boxes WHERE id = $1 FOR UPDATE`, id)
}

func (r *MoneyBoxRepo) get(ctx context.Context, query, id string) (*entity.MoneyBox, error) {
	var b entity.MoneyBox
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Balance, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get money box: %w", err)
	}
	return &b, nil
}

func (r *MoneyBoxRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE money_boxes SET balance = $2, updated_at = now() WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("update money box balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("caja", id)
	}
	return nil
}

func (r *MoneyBoxRepo) List(ctx context.Context) ([]*entity.MoneyBox, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, balance, created_at, updated_at FROM money_boxes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list money boxes: %w", err)
	}
	defer rows.Close()
	var list []*entity.MoneyBox
	for rows.Next() {
		var b entity.MoneyBox
		if err := rows.Scan(&b.ID, &b.Name, &b.Balance, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan money box: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
