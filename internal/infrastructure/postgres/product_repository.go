package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, current_stock, total_sold, total_purchased, average_cost,
	purchase_price, sale_price, min_stock, max_stock, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.SKU, p.Name, p.CurrentStock, p.TotalSold, p.TotalPurchased, p.AverageCost,
		p.PurchasePrice, p.SalePrice, p.MinStock, p.MaxStock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicateReference, p.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.CurrentStock, &p.TotalSold, &p.TotalPurchased, &p.AverageCost,
		&p.PurchasePrice, &p.SalePrice, &p.MinStock, &p.MaxStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// UpdateAggregates persiste stock, totales y costo promedio. Solo lo invoca el registrador de movimientos.
func (r *ProductRepo) UpdateAggregates(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now().UTC()
	cmd, err := r.q.Exec(ctx, `
		UPDATE products
		SET current_stock = $2, total_sold = $3, total_purchased = $4, average_cost = $5, updated_at = $6
		WHERE id = $1`,
		p.ID, p.CurrentStock, p.TotalSold, p.TotalPurchased, p.AverageCost, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product aggregates: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto", p.ID)
	}
	return nil
}
