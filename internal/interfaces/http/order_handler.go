package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/orders"
)

// OrderHandler compras y ventas.
type OrderHandler struct {
	uc *orders.CreateOrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.CreateOrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Purchase POST /api/purchases
func (h *OrderHandler) Purchase(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := decode(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.ApplyPurchase(c.UserContext(), toOrderInput(in, GetActor(c)))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderResultResponse{
		Order:    toOrder(res.Order),
		Credit:   toCreditStatus(res.CreditStatus),
		Warnings: toWarnings(res.Warnings),
	})
}

// Sale POST /api/sales
func (h *OrderHandler) Sale(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := decode(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.ApplySale(c.UserContext(), toOrderInput(in, GetActor(c)))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderResultResponse{
		Order:    toOrder(res.Order),
		Warnings: toWarnings(res.Warnings),
	})
}

func toOrderInput(in dto.OrderRequest, actor string) orders.OrderInput {
	items := make([]orders.LineInput, 0, len(in.Items))
	for _, it := range in.Items {
		li := orders.LineInput{Description: it.Description, Quantity: it.Quantity, Price: it.Price}
		if it.ProductID != "" {
			id := it.ProductID
			li.ProductID = &id
		}
		items = append(items, li)
	}
	return orders.OrderInput{
		PartyID:       in.PartyID,
		InvoiceNumber: in.InvoiceNumber,
		Items:         items,
		Discount:      in.Discount,
		PaidAmount:    in.PaidAmount,
		MoneyBoxID:    in.MoneyBoxID,
		Notes:         in.Notes,
		Actor:         actor,
	}
}
