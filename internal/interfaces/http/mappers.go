package http

import (
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain/credit"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

func toWarnings(ws []entity.Warning) []dto.WarningResponse {
	out := make([]dto.WarningResponse, 0, len(ws))
	for _, w := range ws {
		r := dto.WarningResponse{Code: w.Code, Message: w.Message, PartyID: w.PartyID, ProductID: w.ProductID}
		if w.Code == entity.WarningCreditExceeded {
			excess := w.Excess
			r.Excess = &excess
		}
		out = append(out, r)
	}
	return out
}

func toMovement(m entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		UnitCost:      m.UnitCost,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func toOrder(o entity.Order) dto.OrderResponse {
	items := make([]dto.OrderLineResponse, 0, len(o.Items))
	for _, l := range o.Items {
		r := dto.OrderLineResponse{
			ID:               l.ID,
			Description:      l.Description,
			Quantity:         l.Quantity,
			Price:            l.Price,
			ReturnedQuantity: l.ReturnedQuantity,
		}
		if l.ProductID != nil {
			r.ProductID = *l.ProductID
		}
		items = append(items, r)
	}
	return dto.OrderResponse{
		ID:            o.ID,
		Kind:          string(o.Kind),
		PartyID:       o.PartyID,
		InvoiceNumber: o.InvoiceNumber,
		Total:         o.Total,
		Discount:      o.Discount,
		NetAmount:     o.NetAmount,
		PaidAmount:    o.PaidAmount,
		Status:        string(o.Status),
		MoneyBoxID:    o.MoneyBoxID,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}

func toCreditStatus(st *credit.Status) *dto.CreditStatusResponse {
	if st == nil {
		return nil
	}
	return &dto.CreditStatusResponse{
		CurrentBalance:  st.CurrentBalance,
		Prospective:     st.Prospective,
		NewBalance:      st.NewBalance,
		CreditLimit:     st.CreditLimit,
		AvailableCredit: st.AvailableCredit,
		Exceeded:        st.Exceeded,
	}
}

func toMoneyBox(b entity.MoneyBox) dto.MoneyBoxResponse {
	return dto.MoneyBoxResponse{ID: b.ID, Name: b.Name, Balance: b.Balance, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

func toMoneyBoxTransaction(t entity.MoneyBoxTransaction) dto.MoneyBoxTransactionResponse {
	r := dto.MoneyBoxTransactionResponse{
		ID:            t.ID,
		BoxID:         t.BoxID,
		Type:          t.Type.String(),
		Amount:        t.Amount,
		BalanceAfter:  t.BalanceAfter,
		ReferenceType: t.ReferenceType,
		ReferenceID:   t.ReferenceID,
		Notes:         t.Notes,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
	}
	if t.RelatedBoxID != nil {
		r.RelatedBoxID = *t.RelatedBoxID
	}
	return r
}

func toProduct(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		CurrentStock:   p.CurrentStock,
		TotalSold:      p.TotalSold,
		TotalPurchased: p.TotalPurchased,
		AverageCost:    p.AverageCost,
		PurchasePrice:  p.PurchasePrice,
		SalePrice:      p.SalePrice,
		MinStock:       p.MinStock,
		MaxStock:       p.MaxStock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toParty(p entity.Party, st *credit.Status) dto.PartyResponse {
	return dto.PartyResponse{
		ID:          p.ID,
		Kind:        p.Kind,
		Name:        p.Name,
		Balance:     p.Balance,
		CreditLimit: p.CreditLimit,
		Credit:      toCreditStatus(st),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toReturn(r entity.Return) dto.ReturnDetailResponse {
	items := make([]dto.ReturnItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		ri := dto.ReturnItemResponse{
			ID:              it.ID,
			OrderLineItemID: it.OrderLineItemID,
			Quantity:        it.Quantity,
			Price:           it.Price,
			Total:           it.Total,
		}
		if it.ProductID != nil {
			ri.ProductID = *it.ProductID
		}
		items = append(items, ri)
	}
	return dto.ReturnDetailResponse{
		ID:           r.ID,
		OrderID:      r.OrderID,
		OrderKind:    string(r.OrderKind),
		Reason:       r.Reason,
		RefundMethod: r.RefundMethod,
		MoneyBoxID:   r.MoneyBoxID,
		TotalAmount:  r.TotalAmount,
		CashRefunded: r.CashRefunded,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		Items:        items,
	}
}
