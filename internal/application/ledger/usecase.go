package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-wms/internal/domain"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
	"github.com/tu-usuario/almacen-wms/pkg/logger"
)

// UseCase ledger de stock: único punto de mutación ApplyMovement, que inserta
// el movimiento inmutable y mantiene el snapshot materializado en lock-step
// dentro de una misma transacción.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	locRepo  repository.LocationRepository
	// Lecturas fuera de transacción (consultas y pre-checks). Las escrituras
	// usan siempre los repos atados a la tx que entrega el TxRunner.
	movRepo  repository.MovementRepository
	snapRepo repository.SnapshotRepository
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	locRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
	snapRepo repository.SnapshotRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		locRepo:  locRepo,
		movRepo:  movRepo,
		snapRepo: snapRepo,
		log:      log,
	}
}

// MovementInput entrada de ApplyMovement. Type es metadato de auditoría
// (IN/OUT/TRANSFER/ADJUST); el efecto sobre el stock lo determina solo la
// presencia de FromLocationID/ToLocationID.
type MovementInput struct {
	Type           string
	ItemID         int64
	Quantity       int
	FromLocationID *int64
	ToLocationID   *int64
	PerformedBy    string
	Notes          string
	// TransactionID opcional: agrupa este movimiento con otros de la misma
	// operación lógica. Vacío -> se genera un uuid nuevo.
	TransactionID string
}

func validMovementType(t string) bool {
	switch t {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeTRANSFER, entity.MovementTypeADJUST:
		return true
	}
	return false
}

// ApplyMovement registra un movimiento y actualiza los snapshots afectados
// como una sola unidad de trabajo:
//
//  1. valida cantidad >= 1, tipo conocido y al menos una ubicación;
//  2. inserta la fila inmutable de Movement (UTC);
//  3. con origen: bloquea la fila del snapshot (FOR UPDATE; ausente = 0) y
//     aplica max(0, actual - solicitado). El clamp a cero NO es un fallo del
//     ledger — el log de auditoría refleja lo solicitado — pero se registra
//     como evento warn para detectar deriva. El check duro de stock
//     insuficiente vive en el caller (Pick), no aquí;
//  4. con destino: bloquea-o-crea el snapshot y suma;
//  5. commit de todo o rollback de todo.
//
// Devuelve el TransactionID que agrupa la operación.
func (uc *UseCase) ApplyMovement(ctx context.Context, in MovementInput) (string, error) {
	if in.Quantity < 1 {
		return "", domain.ErrInvalidInput
	}
	if !validMovementType(in.Type) {
		return "", domain.ErrInvalidInput
	}
	if in.FromLocationID == nil && in.ToLocationID == nil {
		return "", domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}
	if err := uc.checkLocation(ctx, in.FromLocationID); err != nil {
		return "", err
	}
	if err := uc.checkLocation(ctx, in.ToLocationID); err != nil {
		return "", err
	}

	txID := in.TransactionID
	if txID == "" {
		txID = uuid.New().String()
	}
	now := time.Now().UTC()

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, snapRepo repository.SnapshotRepository) error {
		mov := &entity.Movement{
			TransactionID:  txID,
			Type:           in.Type,
			ItemID:         in.ItemID,
			Quantity:       in.Quantity,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			PerformedBy:    in.PerformedBy,
			Notes:          in.Notes,
			TimestampUTC:   now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		if in.FromLocationID != nil {
			snap, err := snapRepo.GetForUpdate(ctx, in.ItemID, *in.FromLocationID)
			if err != nil {
				return err
			}
			newQty := snap.Quantity - in.Quantity
			if newQty < 0 {
				uc.log.Warn().
					Int64("item_id", in.ItemID).
					Int64("location_id", *in.FromLocationID).
					Int("available", snap.Quantity).
					Int("requested", in.Quantity).
					Msg("snapshot clamp a cero: decremento mayor que el disponible")
				newQty = 0
			}
			snap.Quantity = newQty
			snap.UpdatedAtUTC = now
			if err := snapRepo.Upsert(ctx, snap); err != nil {
				return err
			}
		}
		if in.ToLocationID != nil {
			snap, err := snapRepo.GetForUpdate(ctx, in.ItemID, *in.ToLocationID)
			if err != nil {
				return err
			}
			snap.Quantity += in.Quantity
			snap.UpdatedAtUTC = now
			if err := snapRepo.Upsert(ctx, snap); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return txID, nil
}

func (uc *UseCase) checkLocation(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	loc, err := uc.locRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return nil
}

// Stock devuelve el snapshot actual de un par (item, ubicación); cero si el
// par no existe todavía. Lectura siempre fresca, sin caché en proceso.
func (uc *UseCase) Stock(ctx context.Context, itemID, locationID int64) (*entity.StockSnapshot, error) {
	return uc.snapRepo.Get(ctx, itemID, locationID)
}

// RecentStock listado de snapshots más recientes.
func (uc *UseCase) RecentStock(ctx context.Context, limit int) ([]*entity.StockSnapshot, error) {
	if limit <= 0 {
		limit = 500
	}
	return uc.snapRepo.ListRecent(ctx, limit)
}

// RecentMovements últimas filas del log de auditoría.
func (uc *UseCase) RecentMovements(ctx context.Context, limit int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 500
	}
	return uc.movRepo.ListRecent(ctx, limit)
}

// MovementsByItem historial de movimientos de un item con rango de fechas.
func (uc *UseCase) MovementsByItem(ctx context.Context, itemID int64, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByItem(ctx, itemID, from, to, limit, offset)
}

// MovementsByLocation historial de movimientos de una ubicación.
func (uc *UseCase) MovementsByLocation(ctx context.Context, locationID int64, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByLocation(ctx, locationID, from, to, limit, offset)
}

// CheckConsistency compara el snapshot materializado con la suma con signo
// del log de movimientos para un par (item, ubicación). La suma del ledger
// puede ser negativa si hubo decrementos con clamp; el snapshot nunca.
func (uc *UseCase) CheckConsistency(ctx context.Context, itemID, locationID int64) (ledgerSum, snapshot int, consistent bool, err error) {
	ledgerSum, err = uc.movRepo.SignedSum(ctx, itemID, locationID)
	if err != nil {
		return 0, 0, false, err
	}
	snap, err := uc.snapRepo.Get(ctx, itemID, locationID)
	if err != nil {
		return 0, 0, false, err
	}
	expected := ledgerSum
	if expected < 0 {
		expected = 0
	}
	return ledgerSum, snap.Quantity, snap.Quantity == expected, nil
}
