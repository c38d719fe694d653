package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// MovementRepository puerto de persistencia para el log append-only de
// movimientos. No expone Update ni Delete: el log es inmutable.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	ListByItem(ctx context.Context, itemID int64, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByLocation(ctx context.Context, locationID int64, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error)
	// SignedSum suma con signo de los movimientos del par (item, ubicación):
	// +qty por cada movimiento hacia la ubicación, -qty por cada salida.
	// Herramienta de verificación del invariante snapshot == ledger.
	SignedSum(ctx context.Context, itemID, locationID int64) (int, error)
}
