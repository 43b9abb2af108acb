package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/returns"
)

// ReturnHandler devoluciones sobre órdenes.
type ReturnHandler struct {
	uc *returns.ProcessReturnUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *returns.ProcessReturnUseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Create POST /api/orders/:id/returns
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if err := decode(c, &in); err != nil {
		return writeError(c, err)
	}
	lines := make([]returns.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, returns.LineInput{LineItemID: l.LineItemID, Quantity: l.Quantity})
	}
	res, err := h.uc.ProcessReturn(c.UserContext(), returns.ReturnInput{
		OrderID:      c.Params("id"),
		Lines:        lines,
		Reason:       in.Reason,
		RefundMethod: in.RefundMethod,
		MoneyBoxID:   in.MoneyBoxID,
		Actor:        GetActor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReturnResponse{
		ReturnID:       res.ReturnID,
		TotalAmount:    res.TotalAmount,
		CashRefunded:   res.Return.CashRefunded,
		NewOrderStatus: string(res.NewOrderStatus),
		Warnings:       toWarnings(res.Warnings),
	})
}

// List GET /api/orders/:id/returns
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListReturns(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.ReturnDetailResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toReturn(*r))
	}
	return c.JSON(dto.ReturnsList{Items: items})
}

// Get GET /api/returns/:id
func (h *ReturnHandler) Get(c *fiber.Ctx) error {
	ret, err := h.uc.GetReturn(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toReturn(*ret))
}
