package repository

import (
	"context"

	"github.com/tu-usuario/almacen-wms/internal/domain"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// ItemRepository puerto de persistencia para items del catálogo.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// GetBySKU busca por SKU exacto (case-sensitive). nil si no existe.
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// Search busca por SKU o nombre (contains), ordenado por SKU.
	Search(ctx context.Context, query string, limit int) ([]*entity.Item, error)
	// CountReferences cuenta las referencias que bloquean el borrado del item
	// (componentes de modelo, alternativas, líneas de picking, tareas de robot).
	CountReferences(ctx context.Context, itemID int64) ([]domain.RefCount, error)
	Delete(ctx context.Context, id int64) error
}
