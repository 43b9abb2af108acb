// Package memory implementa el ledger sobre estructuras en memoria con la misma
// semántica transaccional que PostgreSQL: un solo escritor, todo o nada, y lectores
// que solo ven el último estado confirmado.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

// state es una instantánea completa del ledger.
type state struct {
	products    map[string]entity.Product
	movements   []entity.InventoryMovement
	boxes       map[string]entity.MoneyBox
	boxTxs      []entity.MoneyBoxTransaction
	parties     map[string]entity.Party
	orders      map[string]entity.Order // sin Items; las líneas viven en lines
	lines       map[string]entity.OrderLineItem
	orderLines  map[string][]string // orderID -> ids de línea en orden de inserción
	returns     map[string]entity.Return
	returnItems map[string][]entity.ReturnItem
	returnOrder []string
}

func newState() *state {
	return &state{
		products:    make(map[string]entity.Product),
		boxes:       make(map[string]entity.MoneyBox),
		parties:     make(map[string]entity.Party),
		orders:      make(map[string]entity.Order),
		lines:       make(map[string]entity.OrderLineItem),
		orderLines:  make(map[string][]string),
		returns:     make(map[string]entity.Return),
		returnItems: make(map[string][]entity.ReturnItem),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:    make(map[string]entity.Product, len(s.products)),
		movements:   append([]entity.InventoryMovement(nil), s.movements...),
		boxes:       make(map[string]entity.MoneyBox, len(s.boxes)),
		boxTxs:      append([]entity.MoneyBoxTransaction(nil), s.boxTxs...),
		parties:     make(map[string]entity.Party, len(s.parties)),
		orders:      make(map[string]entity.Order, len(s.orders)),
		lines:       make(map[string]entity.OrderLineItem, len(s.lines)),
		orderLines:  make(map[string][]string, len(s.orderLines)),
		returns:     make(map[string]entity.Return, len(s.returns)),
		returnItems: make(map[string][]entity.ReturnItem, len(s.returnItems)),
		returnOrder: append([]string(nil), s.returnOrder...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.boxes {
		c.boxes[k] = v
	}
	for k, v := range s.parties {
		c.parties[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = v
	}
	for k, v := range s.orderLines {
		c.orderLines[k] = append([]string(nil), v...)
	}
	for k, v := range s.returns {
		c.returns[k] = v
	}
	for k, v := range s.returnItems {
		c.returnItems[k] = append([]entity.ReturnItem(nil), v...)
	}
	return c
}

// FailureHook permite simular fallas de escritura (op = "products.update_aggregates", etc.).
type FailureHook func(op string) error

// Store es el almacenamiento en memoria.
type Store struct {
	writeMu   sync.Mutex   // serializa escritores: uno activo a la vez
	mu        sync.RWMutex // protege committed
	committed *state
	hook      FailureHook
}

// New crea un store vacío.
func New() *Store {
	return &Store{committed: newState()}
}

// SetFailureHook instala un hook que se consulta antes de cada escritura.
func (s *Store) SetFailureHook(h FailureHook) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.hook = h
}

// Run ejecuta fn sobre una copia privada del estado confirmado y la publica solo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(newRepos(work, s.hook)); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	return nil
}

// Read ejecuta fn sobre la última instantánea confirmada. No bloquea ni es bloqueado por escritores;
// cualquier escritura hecha por fn se descarta.
func (s *Store) Read(ctx context.Context, fn func(repos ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	view := s.committed.clone()
	s.mu.RUnlock()
	return fn(newRepos(view, nil))
}
