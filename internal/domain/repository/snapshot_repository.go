package repository

import (
	"context"

	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// SnapshotRepository puerto para la vista materializada de stock por
// (item, ubicación). Se usa dentro de transacciones para mantener el snapshot
// en lock-step con cada inserción de movimiento.
type SnapshotRepository interface {
	// Get devuelve el snapshot o uno en cero si el par no existe todavía.
	Get(ctx context.Context, itemID, locationID int64) (*entity.StockSnapshot, error)
	// GetForUpdate igual que Get pero bloqueando la fila (SELECT FOR UPDATE)
	// para serializar escrituras concurrentes sobre el mismo par.
	GetForUpdate(ctx context.Context, itemID, locationID int64) (*entity.StockSnapshot, error)
	Upsert(ctx context.Context, snap *entity.StockSnapshot) error
	// ListByItem snapshots con stock > 0 de un item, orden descendente por cantidad.
	ListByItem(ctx context.Context, itemID int64) ([]*entity.StockSnapshot, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.StockSnapshot, error)
}
