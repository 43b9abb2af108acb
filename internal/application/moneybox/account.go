// Package moneybox implementa la cuenta de cajas: transacciones tipadas y transferencias.
package moneybox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/moneybox"
)

var tracer = otel.Tracer("github.com/jhoicas/Inventario-ledger/internal/application/moneybox")

// RecordInput transacción a registrar. Amount siempre positivo; el signo lo define Type.
// RelatedBoxID opcional: caja contraparte, debe existir y ser distinta de BoxID.
type RecordInput struct {
	BoxID        string
	Type         moneybox.TransactionType
	Amount       decimal.Decimal
	RelatedBoxID string
	Reference    entity.Reference
	Notes        string
	Actor        string
}

// RecordResult id de la transacción escrita y saldo resultante.
type RecordResult struct {
	TransactionID string
	NewBalance    decimal.Decimal
	Transaction   entity.MoneyBoxTransaction
}

// TransferInput transferencia entre dos cajas.
type TransferInput struct {
	FromID string
	ToID   string
	Amount decimal.Decimal
	Notes  string
	Actor  string
}

// TransferResult estado final de ambas cajas.
type TransferResult struct {
	FromBox entity.MoneyBox
	ToBox   entity.MoneyBox
}

// Account opera las cajas. Sus métodos *InTx se usan desde compras, ventas y devoluciones
// con los repositorios de la transacción del llamador.
type Account struct {
	txRunner ports.TxRunner
	cache    *cache.Gateway
	log      zerolog.Logger
}

// NewAccount construye la cuenta de cajas.
func NewAccount(txRunner ports.TxRunner, gateway *cache.Gateway, log zerolog.Logger) *Account {
	return &Account{txRunner: txRunner, cache: gateway, log: log}
}

// RecordTransaction registra una transacción en su propia transacción de BD.
func (a *Account) RecordTransaction(ctx context.Context, in RecordInput) (*RecordResult, error) {
	ctx, span := tracer.Start(ctx, "moneybox.RecordTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("box_id", in.BoxID), attribute.String("type", in.Type.String()))
	if in.RelatedBoxID != "" {
		span.SetAttributes(attribute.String("related_box_id", in.RelatedBoxID))
	}

	var res *RecordResult
	err := a.cache.Run(ctx, a.txRunner, func(repos ports.Repos) error {
		var err error
		res, err = a.RecordInTx(ctx, repos, in)
		return err
	}, ports.FamilyMoneyBoxes)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Integrity(err)
	}
	a.log.Info().
		Str("box_id", in.BoxID).
		Str("type", in.Type.String()).
		Str("amount", in.Amount.String()).
		Str("new_balance", res.NewBalance.String()).
		Msg("transacción de caja registrada")
	return res, nil
}

// RecordInTx registra la transacción con los repositorios de una transacción abierta.
// Los tipos de transferencia solo se generan desde TransferBetweenBoxes.
func (a *Account) RecordInTx(ctx context.Context, repos ports.Repos, in RecordInput) (*RecordResult, error) {
	if in.Type == moneybox.TransferIn || in.Type == moneybox.TransferOut {
		return nil, domain.Validation("el tipo %s solo se usa en transferencias entre cajas", in.Type)
	}
	return a.record(ctx, repos, in)
}

func (a *Account) record(ctx context.Context, repos ports.Repos, in RecordInput) (*RecordResult, error) {
	if strings.TrimSpace(in.BoxID) == "" {
		return nil, domain.Validation("caja obligatoria")
	}
	if _, err := in.Type.Effect(); err != nil {
		return nil, err
	}
	var related *string
	if id := strings.TrimSpace(in.RelatedBoxID); id != "" {
		if id == in.BoxID {
			return nil, domain.Validation("la caja relacionada debe ser distinta de la caja")
		}
		rel, err := repos.MoneyBoxes.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get related money box %s: %w", id, err)
		}
		if rel == nil {
			return nil, domain.NotFound("caja", id)
		}
		related = &id
	}

	box, err := repos.MoneyBoxes.GetForUpdate(ctx, in.BoxID)
	if err != nil {
		return nil, fmt.Errorf("lock money box %s: %w", in.BoxID, err)
	}
	if box == nil {
		return nil, domain.NotFound("caja", in.BoxID)
	}

	app, err := moneybox.Apply(box.ID, box.Name, box.Balance, in.Type, in.Amount)
	if err != nil {
		return nil, err
	}

	if err := repos.MoneyBoxes.UpdateBalance(ctx, box.ID, app.NewBalance); err != nil {
		return nil, fmt.Errorf("update money box balance: %w", err)
	}
	tx := entity.MoneyBoxTransaction{
		BoxID:         box.ID,
		Type:          in.Type,
		Amount:        app.Signed,
		BalanceAfter:  app.NewBalance,
		RelatedBoxID:  related,
		ReferenceType: in.Reference.Type,
		ReferenceID:   in.Reference.ID,
		Notes:         in.Notes,
		CreatedBy:     in.Actor,
		CreatedAt:     time.Now().UTC(),
	}
	if err := repos.MoneyBoxTxs.Create(ctx, &tx); err != nil {
		return nil, fmt.Errorf("create money box transaction: %w", err)
	}
	return &RecordResult{TransactionID: tx.ID, NewBalance: app.NewBalance, Transaction: tx}, nil
}

// TransferBetweenBoxes debita from y acredita to en una sola transacción.
// Las cajas se bloquean en orden de id para que dos transferencias cruzadas no se bloqueen mutuamente.
func (a *Account) TransferBetweenBoxes(ctx context.Context, in TransferInput) (*TransferResult, error) {
	ctx, span := tracer.Start(ctx, "moneybox.TransferBetweenBoxes")
	defer span.End()
	span.SetAttributes(attribute.String("from_box_id", in.FromID), attribute.String("to_box_id", in.ToID))

	if strings.TrimSpace(in.FromID) == "" || strings.TrimSpace(in.ToID) == "" {
		return nil, domain.Validation("caja de origen y destino son obligatorias")
	}
	if in.FromID == in.ToID {
		return nil, domain.ErrSameBoxTransfer
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Validation("el monto debe ser mayor que cero")
	}

	ref := entity.Reference{Type: entity.ReferenceTransfer, ID: uuid.New().String()}
	var res TransferResult
	err := a.cache.Run(ctx, a.txRunner, func(repos ports.Repos) error {
		first, second := in.FromID, in.ToID
		if second < first {
			first, second = second, first
		}
		for _, id := range []string{first, second} {
			box, err := repos.MoneyBoxes.GetForUpdate(ctx, id)
			if err != nil {
				return fmt.Errorf("lock money box %s: %w", id, err)
			}
			if box == nil {
				return domain.NotFound("caja", id)
			}
		}

		if _, err := a.record(ctx, repos, RecordInput{
			BoxID: in.FromID, Type: moneybox.TransferOut, Amount: in.Amount, RelatedBoxID: in.ToID,
			Reference: ref, Notes: in.Notes, Actor: in.Actor,
		}); err != nil {
			return err
		}
		if _, err := a.record(ctx, repos, RecordInput{
			BoxID: in.ToID, Type: moneybox.TransferIn, Amount: in.Amount, RelatedBoxID: in.FromID,
			Reference: ref, Notes: in.Notes, Actor: in.Actor,
		}); err != nil {
			return err
		}

		from, err := repos.MoneyBoxes.GetByID(ctx, in.FromID)
		if err != nil {
			return fmt.Errorf("get money box: %w", err)
		}
		to, err := repos.MoneyBoxes.GetByID(ctx, in.ToID)
		if err != nil {
			return fmt.Errorf("get money box: %w", err)
		}
		res = TransferResult{FromBox: *from, ToBox: *to}
		return nil
	}, ports.FamilyMoneyBoxes)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Integrity(err)
	}
	a.log.Info().
		Str("from_box_id", in.FromID).
		Str("to_box_id", in.ToID).
		Str("amount", in.Amount.String()).
		Msg("transferencia entre cajas registrada")
	return &res, nil
}

// CreateBox crea una caja. Un saldo inicial se registra como depósito para que el saldo
// siga siendo la suma de sus transacciones.
func (a *Account) CreateBox(ctx context.Context, name string, opening decimal.Decimal, actor string) (*entity.MoneyBox, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("nombre de caja obligatorio")
	}
	if opening.IsNegative() {
		return nil, domain.Validation("saldo inicial negativo")
	}
	var box entity.MoneyBox
	err := a.cache.Run(ctx, a.txRunner, func(repos ports.Repos) error {
		now := time.Now().UTC()
		box = entity.MoneyBox{Name: name, Balance: decimal.Zero, CreatedAt: now, UpdatedAt: now}
		if err := repos.MoneyBoxes.Create(ctx, &box); err != nil {
			return fmt.Errorf("create money box: %w", err)
		}
		if opening.IsPositive() {
			r, err := a.record(ctx, repos, RecordInput{
				BoxID: box.ID, Type: moneybox.Deposit, Amount: opening,
				Notes: "saldo inicial", Actor: actor,
			})
			if err != nil {
				return err
			}
			box.Balance = r.NewBalance
		}
		return nil
	}, ports.FamilyMoneyBoxes)
	if err != nil {
		return nil, domain.Integrity(err)
	}
	return &box, nil
}

// GetBox devuelve la caja o ErrNotFound. La vista se sirve desde el caché de lectura si está habilitado.
func (a *Account) GetBox(ctx context.Context, id string) (*entity.MoneyBox, error) {
	box, err := cache.Cached(ctx, a.cache, ports.FamilyMoneyBoxes, "box:"+id, func() (entity.MoneyBox, error) {
		var box entity.MoneyBox
		err := a.txRunner.Read(ctx, func(repos ports.Repos) error {
			b, err := repos.MoneyBoxes.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("get money box: %w", err)
			}
			if b == nil {
				return domain.NotFound("caja", id)
			}
			box = *b
			return nil
		})
		return box, err
	})
	if err != nil {
		return nil, domain.Integrity(err)
	}
	return &box, nil
}

// ListBoxes devuelve todas las cajas ordenadas por nombre.
func (a *Account) ListBoxes(ctx context.Context) ([]*entity.MoneyBox, error) {
	var list []*entity.MoneyBox
	err := a.txRunner.Read(ctx, func(repos ports.Repos) error {
		var err error
		list, err = repos.MoneyBoxes.List(ctx)
		if err != nil {
			return fmt.Errorf("list money boxes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Integrity(err)
	}
	return list, nil
}

// ListTransactions lista las transacciones de la caja, más recientes primero.
func (a *Account) ListTransactions(ctx context.Context, boxID string, limit, offset int) ([]*entity.MoneyBoxTransaction, error) {
	var list []*entity.MoneyBoxTransaction
	err := a.txRunner.Read(ctx, func(repos ports.Repos) error {
		box, err := repos.MoneyBoxes.GetByID(ctx, boxID)
		if err != nil {
			return fmt.Errorf("get money box: %w", err)
		}
		if box == nil {
			return domain.NotFound("caja", boxID)
		}
		list, err = repos.MoneyBoxTxs.ListByBox(ctx, boxID, limit, offset)
		if err != nil {
			return fmt.Errorf("list money box transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Integrity(err)
	}
	return list, nil
}
