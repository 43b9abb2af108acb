package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/application/orders"
	"github.com/jhoicas/Inventario-ledger/internal/application/returns"
	"github.com/jhoicas/Inventario-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Products    *usecase.ProductUseCase
	Parties     *usecase.PartyUseCase
	AdjustStock *inventory.AdjustStockUseCase
	Orders      *orders.CreateOrderUseCase
	Returns     *returns.ProcessReturnUseCase
	MoneyBoxes  *moneybox.Account
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware(deps.JWTSecret))

	// Catálogo y terceros
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Products)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.Get)
	products.Get("/:id/movements", productHandler.ListMovements)

	parties := api.Group("/parties")
	partyHandler := NewPartyHandler(deps.Parties)
	parties.Post("/", partyHandler.Create)
	parties.Get("/:id", partyHandler.Get)

	orderHandler := NewOrderHandler(deps.Orders)
	api.Post("/purchases", orderHandler.Purchase)
	api.Post("/sales", orderHandler.Sale)

	returnHandler := NewReturnHandler(deps.Returns)
	api.Post("/orders/:id/returns", returnHandler.Create)
	api.Get("/orders/:id/returns", returnHandler.List)
	api.Get("/returns/:id", returnHandler.Get)

	// Cajas
	boxes := api.Group("/money-boxes")
	boxHandler := NewMoneyBoxHandler(deps.MoneyBoxes)
	boxes.Get("/", boxHandler.List)
	boxes.Post("/", boxHandler.Create)
	boxes.Post("/transfers", boxHandler.Transfer)
	boxes.Get("/:id", boxHandler.Get)
	boxes.Get("/:id/transactions", boxHandler.ListTransactions)
	boxes.Post("/:id/transactions", boxHandler.RecordTransaction)

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustStock)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
}
