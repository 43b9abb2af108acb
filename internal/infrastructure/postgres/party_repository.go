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

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo clientes y proveedores sobre PostgreSQL.
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	_, err := r.q.Exec(ctx, `
		INSERT INTO parties (id, kind, name, balance, credit_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Kind, p.Name, p.Balance, p.CreditLimit, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

func (r *PartyRepo) GetByID(ctx context.Context, id string) (*entity.Party, error) {
	return r.get(ctx, `SELECT id, kind, name, balance, credit_limit, created_at, updated_at FROM parties WHERE id = $1`, id)
}

// GetForUpdate bloquea el tercero hasta el fin de la transacción.
func (r *PartyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Party, error) {
	return r.get(ctx, `SELECT id, kind, name, balance, credit_limit, created_at, updated_at FROM parties WHERE id = $1 FOR UPDATE`, id)
}

func (r *PartyRepo) get(ctx context.Context, query, id string) (*entity.Party, error) {
	var p entity.Party
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Kind, &p.Name, &p.Balance, &p.CreditLimit, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return &p, nil
}

func (r *PartyRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE parties SET balance = $2, updated_at = now() WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("update party balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("tercero", id)
	}
	return nil
}
