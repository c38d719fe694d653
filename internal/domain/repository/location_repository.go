package repository

import (
	"context"

	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// LocationRepository puerto de persistencia para ubicaciones.
type LocationRepository interface {
	// Create inserta una ubicación; código duplicado -> domain.ErrDuplicate.
	Create(ctx context.Context, loc *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	// GetByCode busca por código normalizado exacto. nil si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Location, error)
	// ExistsByCode consulta de existencia barata para la generación masiva.
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, zone string, limit int) ([]*entity.Location, error)
	Zones(ctx context.Context) ([]string, error)
	// Delete borra sin comprobar referencias; la capa de constraints decide.
	Delete(ctx context.Context, id int64) error
}
