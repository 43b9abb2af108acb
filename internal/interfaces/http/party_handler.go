package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/usecase"
)

// PartyHandler clientes y proveedores.
type PartyHandler struct {
	uc *usecase.PartyUseCase
}

// NewPartyHandler construye el handler.
func NewPartyHandler(uc *usecase.PartyUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// Create POST /api/parties
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := decode(c, &in); err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Create(c.UserContext(), usecase.PartyInput{
		Kind:        in.Kind,
		Name:        in.Name,
		CreditLimit: in.CreditLimit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toParty(*p, nil))
}

// Get GET /api/parties/:id
func (h *PartyHandler) Get(c *fiber.Ctx) error {
	view, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toParty(view.Party, &view.Credit))
}
