package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/usecase"
)

// ProductHandler catálogo de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := decode(c, &in); err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Create(c.UserContext(), usecase.ProductInput{
		SKU:           in.SKU,
		Name:          in.Name,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		OpeningStock:  in.OpeningStock,
		Actor:         GetActor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProduct(*p))
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toProduct(*p))
}

// ListMovements GET /api/products/:id/movements
func (h *ProductHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, &requestError{code: "INVALID_QUERY"})
	}
	page.DefaultPage()
	if err := check(&page); err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ListMovements(c.UserContext(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovement(*m))
	}
	return c.JSON(dto.MovementsPage{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
