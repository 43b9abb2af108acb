package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/credit"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// PartyInput alta de cliente o proveedor. CreditLimit nil = sin límite.
type PartyInput struct {
	Kind        string
	Name        string
	CreditLimit *decimal.Decimal
}

// PartyView tercero con su estado de crédito actual.
type PartyView struct {
	Party  entity.Party
	Credit credit.Status
}

// PartyUseCase alta y consulta de terceros.
type PartyUseCase struct {
	txRunner ports.TxRunner
	cache    *cache.Gateway
	log      zerolog.Logger
}

// NewPartyUseCase construye el caso de uso.
func NewPartyUseCase(txRunner ports.TxRunner, gateway *cache.Gateway, log zerolog.Logger) *PartyUseCase {
	return &PartyUseCase{txRunner: txRunner, cache: gateway, log: log}
}

// Create registra el tercero con saldo cero; el saldo solo cambia con compras, ventas y devoluciones.
func (uc *PartyUseCase) Create(ctx context.Context, in PartyInput) (*entity.Party, error) {
	if in.Kind != entity.PartyCustomer && in.Kind != entity.PartySupplier {
		return nil, domain.Validation("tipo de tercero inválido: %q", in.Kind)
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.Validation("nombre obligatorio")
	}
	if in.CreditLimit != nil {
		if in.CreditLimit.IsNegative() {
			return nil, domain.Validation("límite de crédito negativo")
		}
		if err := domain.CheckMoney("el límite de crédito", *in.CreditLimit); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	party := entity.Party{
		Kind:        in.Kind,
		Name:        in.Name,
		Balance:     decimal.Zero,
		CreditLimit: in.CreditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.cache.Run(ctx, uc.txRunner, func(repos ports.Repos) error {
		if err := repos.Parties.Create(ctx, &party); err != nil {
			return fmt.Errorf("create party: %w", err)
		}
		return nil
	}, ports.FamilyParties)
	if err != nil {
		return nil, domain.Integrity(err)
	}
	uc.log.Info().Str("party_id", party.ID).Str("kind", party.Kind).Msg("tercero creado")
	return &party, nil
}

// Get devuelve el tercero con su estado de crédito (operación prospectiva cero).
func (uc *PartyUseCase) Get(ctx context.Context, id string) (*PartyView, error) {
	var party entity.Party
	err := uc.txRunner.Read(ctx, func(repos ports.Repos) error {
		p, err := repos.Parties.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get party: %w", err)
		}
		if p == nil {
			return domain.NotFound("tercero", id)
		}
		party = *p
		return nil
	})
	if err != nil {
		return nil, domain.Integrity(err)
	}
	st, _ := credit.Check(party, decimal.Zero)
	return &PartyView{Party: party, Credit: st}, nil
}
