package picklist

import (
	"context"

	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de DB con el
// repositorio de líneas de picking atado a esa tx. RecordScan depende de él
// para que leer-sumar-incrementar sea atómico por orden.
type TxRunner interface {
	RunPickList(ctx context.Context, fn func(pickRepo repository.PickLineRepository) error) error
}

// CodeResolver resuelve un código escaneado a su item (etiqueta o SKU).
type CodeResolver interface {
	ResolveByScan(ctx context.Context, code string) (*entity.Item, error)
}
