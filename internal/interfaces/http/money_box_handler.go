package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domainmb "github.com/jhoicas/Inventario-ledger/internal/domain/moneybox"
)

// MoneyBoxHandler cajas, transacciones y transferencias.
type MoneyBoxHandler struct {
	account *moneybox.Account
}

// NewMoneyBoxHandler construye el handler.
func NewMoneyBoxHandler(account *moneybox.Account) *MoneyBoxHandler {
	return &MoneyBoxHandler{account: account}
}

// Create POST /api/money-boxes
func (h *MoneyBoxHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMoneyBoxRequest
	if err := decode(c, &in); err != nil {
		return writeError(c, err)
	}
	box, err := h.account.CreateBox(c.UserContext(), in.Name, in.OpeningBalance, GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMoneyBox(*box))
}

// List GET /api/money-boxes
func (h *MoneyBoxHandler) List(c *fiber.Ctx) error {
	list, err := h.account.ListBoxes(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MoneyBoxResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toMoneyBox(*b))
	}
	return c.JSON(dto.MoneyBoxesList{Items: items})
}

// Get GET /api/money-boxes/:id
func (h *MoneyBoxHandler) Get(c *fiber.Ctx) error {
	box, err := h.account.GetBox(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMoneyBox(*box))
}

// ListTransactions GET /api/money-boxes/:id/transactions
func (h *MoneyBoxHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, &requestError{code: "INVALID_QUERY"})
	}
	page.DefaultPage()
	if err := check(&page); err != nil {
		return writeError(c, err)
	}
	list, err := h.account.ListTransactions(c.UserContext(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MoneyBoxTransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toMoneyBoxTransaction(*t))
	}
	return c.JSON(dto.MoneyBoxTransactionsPage{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// RecordTransaction POST /api/money-boxes/:id/transactions
func (h *MoneyBoxHandler) RecordTransaction(c *fiber.Ctx) error {
	var in dto.MoneyBoxTransactionRequest
	if err := decode(c, &in); err != nil {
		return writeError(c, err)
	}
	t, err := domainmb.ParseTransactionType(in.Type)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.account.RecordTransaction(c.UserContext(), moneybox.RecordInput{
		BoxID:        c.Params("id"),
		Type:         t,
		Amount:       in.Amount,
		RelatedBoxID: in.RelatedBoxID,
		Reference:    entity.Reference{Type: in.ReferenceType, ID: in.ReferenceID},
		Notes:        in.Notes,
		Actor:        GetActor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordTransactionResponse{
		TransactionID: res.TransactionID,
		NewBalance:    res.NewBalance,
	})
}

// Transfer POST /api/money-boxes/transfers
func (h *MoneyBoxHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := decode(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.account.TransferBetweenBoxes(c.UserContext(), moneybox.TransferInput{
		FromID: in.FromBoxID,
		ToID:   in.ToBoxID,
		Amount: in.Amount,
		Notes:  in.Notes,
		Actor:  GetActor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		FromBox: toMoneyBox(res.FromBox),
		ToBox:   toMoneyBox(res.ToBox),
	})
}
