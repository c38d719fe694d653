package repository

import (
	"context"

	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// BuildOrderRepository puerto de lectura de órdenes de fabricación.
type BuildOrderRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.BuildOrder, error)
}

// PickLineRepository puerto para las líneas persistentes de picking por orden.
type PickLineRepository interface {
	// Create inserta una línea; par (orden, item) duplicado -> domain.ErrDuplicate.
	Create(ctx context.Context, line *entity.OrderPickLine) error
	ListByOrder(ctx context.Context, orderID int64) ([]*entity.OrderPickLine, error)
	// GetForUpdate bloquea la línea (orden, item) para el incremento atómico
	// de RecordScan. nil si no existe.
	GetForUpdate(ctx context.Context, orderID, itemID int64) (*entity.OrderPickLine, error)
	// ListByOrderForUpdate bloquea todas las líneas de la orden, para calcular
	// la suma por slot sin carreras entre escaneos simultáneos.
	ListByOrderForUpdate(ctx context.Context, orderID int64) ([]*entity.OrderPickLine, error)
	UpdatePicked(ctx context.Context, line *entity.OrderPickLine) error
}
