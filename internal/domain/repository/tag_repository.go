package repository

import (
	"context"

	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// TagRepository puerto de persistencia para etiquetas físicas.
type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	// GetByCode busca por código exacto. nil si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Tag, error)
	ListByItem(ctx context.Context, itemID int64) ([]*entity.Tag, error)
}
