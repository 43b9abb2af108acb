package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository             = (*productRepo)(nil)
	_ repository.InventoryMovementRepository   = (*movementRepo)(nil)
	_ repository.MoneyBoxRepository            = (*moneyBoxRepo)(nil)
	_ repository.MoneyBoxTransactionRepository = (*moneyBoxTxRepo)(nil)
	_ repository.PartyRepository               = (*partyRepo)(nil)
	_ repository.OrderRepository               = (*orderRepo)(nil)
	_ repository.ReturnRepository              = (*returnRepo)(nil)
)

// view es el estado sobre el que operan los repositorios de una transacción.
type view struct {
	st   *state
	hook FailureHook
}

func (v *view) fail(op string) error {
	if v.hook == nil {
		return nil
	}
	return v.hook(op)
}

func newRepos(st *state, hook FailureHook) ports.Repos {
	v := &view{st: st, hook: hook}
	return ports.Repos{
		Products:    &productRepo{v},
		Movements:   &movementRepo{v},
		MoneyBoxes:  &moneyBoxRepo{v},
		MoneyBoxTxs: &moneyBoxTxRepo{v},
		Parties:     &partyRepo{v},
		Orders:      &orderRepo{v},
		Returns:     &returnRepo{v},
	}
}

func newID() string { return uuid.New().String() }

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}

func copyDecimal(p *decimal.Decimal) *decimal.Decimal {
	if p == nil {
		return nil
	}
	d := *p
	return &d
}

// ── Productos ────────────────────────────────────────────────────────────────

type productRepo struct{ v *view }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	if err := r.v.fail("products.create"); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = newID()
	}
	if _, exists := r.v.st.products[p.ID]; exists {
		return domain.Validation("producto %s ya existe", p.ID)
	}
	for _, other := range r.v.st.products {
		if other.SKU == p.SKU {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicateReference, p.SKU)
		}
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.v.st.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.v.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateAggregates(_ context.Context, p *entity.Product) error {
	if err := r.v.fail("products.update_aggregates"); err != nil {
		return err
	}
	cur, ok := r.v.st.products[p.ID]
	if !ok {
		return domain.NotFound("producto", p.ID)
	}
	cur.CurrentStock = p.CurrentStock
	cur.TotalSold = p.TotalSold
	cur.TotalPurchased = p.TotalPurchased
	cur.AverageCost = p.AverageCost
	cur.UpdatedAt = time.Now().UTC()
	r.v.st.products[p.ID] = cur
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type movementRepo struct{ v *view }

func (r *movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if err := r.v.fail("movements.create"); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	r.v.st.movements = append(r.v.st.movements, *m)
	return nil
}

func (r *movementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	for i := len(r.v.st.movements) - 1; i >= 0; i-- {
		if r.v.st.movements[i].ProductID == productID {
			m := r.v.st.movements[i]
			list = append(list, &m)
		}
	}
	return paginate(list, limit, offset), nil
}

func (r *movementRepo) ListByReference(_ context.Context, referenceType, referenceID string) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	for _, m := range r.v.st.movements {
		if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			m := m
			list = append(list, &m)
		}
	}
	return list, nil
}

func (r *movementRepo) SumByProduct(_ context.Context, productID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.v.st.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

// ── Cajas ────────────────────────────────────────────────────────────────────

type moneyBoxRepo struct{ v *view }

func (r *moneyBoxRepo) Create(_ context.Context, b *entity.MoneyBox) error {
	if err := r.v.fail("money_boxes.create"); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = newID()
	}
	for _, other := range r.v.st.boxes {
		if other.Name == b.Name {
			return fmt.Errorf("%w: caja %s", domain.ErrDuplicateReference, b.Name)
		}
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	r.v.st.boxes[b.ID] = *b
	return nil
}

func (r *moneyBoxRepo) GetByID(_ context.Context, id string) (*entity.MoneyBox, error) {
	b, ok := r.v.st.boxes[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *moneyBoxRepo) GetForUpdate(ctx context.Context, id string) (*entity.MoneyBox, error) {
	return r.GetByID(ctx, id)
}

func (r *moneyBoxRepo) UpdateBalance(_ context.Context, id string, balance decimal.Decimal) error {
	if err := r.v.fail("money_boxes.update_balance"); err != nil {
		return err
	}
	b, ok := r.v.st.boxes[id]
	if !ok {
		return domain.NotFound("caja", id)
	}
	b.Balance = balance
	b.UpdatedAt = time.Now().UTC()
	r.v.st.boxes[id] = b
	return nil
}

func (r *moneyBoxRepo) List(_ context.Context) ([]*entity.MoneyBox, error) {
	list := make([]*entity.MoneyBox, 0, len(r.v.st.boxes))
	for _, b := range r.v.st.boxes {
		b := b
		list = append(list, &b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type moneyBoxTxRepo struct{ v *view }

func (r *moneyBoxTxRepo) Create(_ context.Context, t *entity.MoneyBoxTransaction) error {
	if err := r.v.fail("money_box_transactions.create"); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	row := *t
	row.RelatedBoxID = copyString(t.RelatedBoxID)
	r.v.st.boxTxs = append(r.v.st.boxTxs, row)
	return nil
}

func (r *moneyBoxTxRepo) ListByBox(_ context.Context, boxID string, limit, offset int) ([]*entity.MoneyBoxTransaction, error) {
	var list []*entity.MoneyBoxTransaction
	for i := len(r.v.st.boxTxs) - 1; i >= 0; i-- {
		if r.v.st.boxTxs[i].BoxID == boxID {
			t := r.v.st.boxTxs[i]
			t.RelatedBoxID = copyString(t.RelatedBoxID)
			list = append(list, &t)
		}
	}
	return paginate(list, limit, offset), nil
}

func (r *moneyBoxTxRepo) SumByBox(_ context.Context, boxID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.v.st.boxTxs {
		if t.BoxID == boxID {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

// ── Terceros ─────────────────────────────────────────────────────────────────

type partyRepo struct{ v *view }

func (r *partyRepo) Create(_ context.Context, p *entity.Party) error {
	if err := r.v.fail("parties.create"); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = newID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	row := *p
	row.CreditLimit = copyDecimal(p.CreditLimit)
	r.v.st.parties[p.ID] = row
	return nil
}

func (r *partyRepo) GetByID(_ context.Context, id string) (*entity.Party, error) {
	p, ok := r.v.st.parties[id]
	if !ok {
		return nil, nil
	}
	p.CreditLimit = copyDecimal(p.CreditLimit)
	return &p, nil
}

func (r *partyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Party, error) {
	return r.GetByID(ctx, id)
}

func (r *partyRepo) UpdateBalance(_ context.Context, id string, balance decimal.Decimal) error {
	if err := r.v.fail("parties.update_balance"); err != nil {
		return err
	}
	p, ok := r.v.st.parties[id]
	if !ok {
		return domain.NotFound("tercero", id)
	}
	p.Balance = balance
	p.UpdatedAt = time.Now().UTC()
	r.v.st.parties[id] = p
	return nil
}

// ── Órdenes ──────────────────────────────────────────────────────────────────

type orderRepo struct{ v *view }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	if err := r.v.fail("orders.create"); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = newID()
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	row := *o
	row.Items = nil
	r.v.st.orders[o.ID] = row
	return nil
}

func (r *orderRepo) CreateLineItem(_ context.Context, item *entity.OrderLineItem) error {
	if err := r.v.fail("orders.create_line_item"); err != nil {
		return err
	}
	if _, ok := r.v.st.orders[item.OrderID]; !ok {
		return domain.NotFound("orden", item.OrderID)
	}
	if item.ID == "" {
		item.ID = newID()
	}
	row := *item
	row.ProductID = copyString(item.ProductID)
	r.v.st.lines[item.ID] = row
	r.v.st.orderLines[item.OrderID] = append(r.v.st.orderLines[item.OrderID], item.ID)
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.v.st.orders[id]
	if !ok {
		return nil, nil
	}
	ids := r.v.st.orderLines[id]
	o.Items = make([]entity.OrderLineItem, 0, len(ids))
	for _, lid := range ids {
		l := r.v.st.lines[lid]
		l.ProductID = copyString(l.ProductID)
		o.Items = append(o.Items, l)
	}
	return &o, nil
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) ExistsByPartyAndInvoice(_ context.Context, kind entity.OrderKind, partyID, invoiceNumber string) (bool, error) {
	for _, o := range r.v.st.orders {
		if o.Kind == kind && o.PartyID == partyID && o.InvoiceNumber == invoiceNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *orderRepo) UpdateReturnedQuantity(_ context.Context, lineItemID string, returned decimal.Decimal) error {
	if err := r.v.fail("orders.update_returned_quantity"); err != nil {
		return err
	}
	l, ok := r.v.st.lines[lineItemID]
	if !ok {
		return domain.NotFound("línea", lineItemID)
	}
	if returned.GreaterThan(l.Quantity) || returned.IsNegative() {
		return domain.Integrity(&domain.RejectedQuantityError{LineItemID: lineItemID, Requested: returned, Available: l.Quantity})
	}
	l.ReturnedQuantity = returned
	r.v.st.lines[lineItemID] = l
	return nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	if err := r.v.fail("orders.update_status"); err != nil {
		return err
	}
	o, ok := r.v.st.orders[id]
	if !ok {
		return domain.NotFound("orden", id)
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	r.v.st.orders[id] = o
	return nil
}

// ── Devoluciones ─────────────────────────────────────────────────────────────

type returnRepo struct{ v *view }

func (r *returnRepo) Create(_ context.Context, ret *entity.Return) error {
	if err := r.v.fail("returns.create"); err != nil {
		return err
	}
	if ret.ID == "" {
		ret.ID = newID()
	}
	if ret.CreatedAt.IsZero() {
		ret.CreatedAt = time.Now().UTC()
	}
	row := *ret
	row.Items = nil
	r.v.st.returns[ret.ID] = row
	r.v.st.returnOrder = append(r.v.st.returnOrder, ret.ID)
	return nil
}

func (r *returnRepo) CreateItem(_ context.Context, item *entity.ReturnItem) error {
	if err := r.v.fail("returns.create_item"); err != nil {
		return err
	}
	if _, ok := r.v.st.returns[item.ReturnID]; !ok {
		return domain.NotFound("devolución", item.ReturnID)
	}
	if item.ID == "" {
		item.ID = newID()
	}
	row := *item
	row.ProductID = copyString(item.ProductID)
	r.v.st.returnItems[item.ReturnID] = append(r.v.st.returnItems[item.ReturnID], row)
	return nil
}

func (r *returnRepo) GetByID(_ context.Context, id string) (*entity.Return, error) {
	ret, ok := r.v.st.returns[id]
	if !ok {
		return nil, nil
	}
	ret.Items = append([]entity.ReturnItem(nil), r.v.st.returnItems[id]...)
	return &ret, nil
}

func (r *returnRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Return, error) {
	var list []*entity.Return
	for _, id := range r.v.st.returnOrder {
		if r.v.st.returns[id].OrderID != orderID {
			continue
		}
		ret, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		list = append(list, ret)
	}
	return list, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
