package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx). Solo inserta y lee.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, product_id, type, quantity, previous_stock, new_stock, reference_type,
	reference_id, unit_cost, notes, created_by, created_at`

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.ProductID, string(m.Type), m.Quantity, m.PreviousStock, m.NewStock, m.ReferenceType,
		m.ReferenceID, m.UnitCost, m.Notes, nullString(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+` FROM inventory_movements
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	return scanMovements(rows)
}

// ListByReference lista los movimientos originados por un documento.
func (r *InventoryMovementRepo) ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+` FROM inventory_movements
		WHERE reference_type = $1 AND reference_id = $2 ORDER BY created_at`,
		referenceType, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list by reference: %w", err)
	}
	return scanMovements(rows)
}

// SumByProduct suma los deltas firmados del producto.
func (r *InventoryMovementRepo) SumByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory_movements WHERE product_id = $1`,
		productID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var typ string
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.PreviousStock, &m.NewStock,
			&m.ReferenceType, &m.ReferenceID, &m.UnitCost, &m.Notes, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		m.CreatedBy = fromNull(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
