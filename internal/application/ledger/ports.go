package ledger

import (
	"context"

	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de DB, pasando
// repositorios atados a esa tx. Garantiza la atomicidad movimiento+snapshot
// del ledger: o se persiste todo o no se persiste nada (incluida la
// cancelación del contexto, que hace rollback completo).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		snapRepo repository.SnapshotRepository,
	) error) error
}

// CodeResolver resuelve un código escaneado a (etiqueta, item). La etiqueta
// puede ser nil cuando el código es un SKU sin etiqueta.
type CodeResolver interface {
	ResolveTag(ctx context.Context, code string) (*entity.Tag, *entity.Item, error)
}

// SystemLocations get-or-create de pseudo-ubicaciones (RECEPTION, DEST:...).
type SystemLocations interface {
	GetOrCreateSystem(ctx context.Context, code, locType string) (*entity.Location, error)
	Lookup(ctx context.Context, code string) (*entity.Location, error)
}
