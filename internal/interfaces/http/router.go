package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-wms/internal/application/catalog"
	"github.com/tu-usuario/almacen-wms/internal/application/ledger"
	"github.com/tu-usuario/almacen-wms/internal/application/locations"
	"github.com/tu-usuario/almacen-wms/internal/application/picklist"
	"github.com/tu-usuario/almacen-wms/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC *locations.UseCase
	CatalogUC  *catalog.UseCase
	LedgerUC   *ledger.UseCase
	ScanOps    *ledger.ScanOps
	PickListUC *picklist.UseCase
	ReportUC   *reports.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Locations (protegido)
	locGroup := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locGroup.Post("/", locationHandler.Create)
	locGroup.Post("/bulk-generate", locationHandler.BulkGenerate)
	locGroup.Get("/", locationHandler.List)
	locGroup.Get("/zones", locationHandler.Zones)
	locGroup.Get("/code/:code", locationHandler.Lookup)
	locGroup.Delete("/:id", locationHandler.Delete)

	// Items y etiquetas (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.Search)
	items.Get("/resolve/:code", itemHandler.Resolve)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Post("/:id/tags", itemHandler.AttachTag)
	items.Delete("/:id", itemHandler.Delete)

	// Ledger de stock y flujos de escaneo (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ScanOps)
	invGroup.Post("/movements", inventoryHandler.ApplyMovement)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Post("/putaway", inventoryHandler.Putaway)
	invGroup.Post("/pick", inventoryHandler.Pick)
	invGroup.Get("/stock", inventoryHandler.Stock)
	invGroup.Get("/consistency", inventoryHandler.Consistency)

	// Listas de picking por orden (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.PickListUC)
	orders.Get("/:id/picklist", orderHandler.GetPickList)
	orders.Post("/:id/picklist/materialize", orderHandler.Materialize)
	orders.Post("/:id/picklist/scan", orderHandler.RecordScan)

	// Reportes de stock (protegido)
	reportGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportGroup.Get("/stock/by-warehouse", reportHandler.ByWarehouse)
	reportGroup.Get("/stock/by-item", reportHandler.ByItem)
	reportGroup.Get("/stock/by-model", reportHandler.ByModel)
}
