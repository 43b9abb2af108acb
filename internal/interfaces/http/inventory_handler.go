package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
)

// InventoryHandler ajustes manuales de inventario.
type InventoryHandler struct {
	uc *inventory.AdjustStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.AdjustStockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Adjust POST /api/inventory/adjustments
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := decode(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.AdjustFromRequest(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AdjustmentResponse{
		Movement: toMovement(res.Movement),
		Warnings: toWarnings(res.Warnings),
	})
}
