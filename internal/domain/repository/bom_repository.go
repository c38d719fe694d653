package repository

import (
	"context"

	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// ComponentSlot un componente del BOM con sus alternativas ya resueltas.
// ItemIDs devuelve el conjunto de items sustituibles del slot (principal +
// alternativas) en orden estable.
type ComponentSlot struct {
	Component    entity.MachineModelComponent
	Alternatives []entity.ComponentAlternative
}

// ItemIDs conjunto de items del slot: el principal primero, luego las
// alternativas por SortOrder.
func (s *ComponentSlot) ItemIDs() []int64 {
	ids := make([]int64, 0, 1+len(s.Alternatives))
	ids = append(ids, s.Component.ItemID)
	for _, a := range s.Alternatives {
		ids = append(ids, a.ItemID)
	}
	return ids
}

// Contains informa si el item pertenece al slot (principal o alternativa).
func (s *ComponentSlot) Contains(itemID int64) bool {
	for _, id := range s.ItemIDs() {
		if id == itemID {
			return true
		}
	}
	return false
}

// BOMRepository puerto de lectura del BOM (modelos, componentes, alternativas).
type BOMRepository interface {
	GetModel(ctx context.Context, id int64) (*entity.MachineModel, error)
	// Slots componentes del modelo con sus alternativas, orden estable.
	Slots(ctx context.Context, machineModelID int64) ([]*ComponentSlot, error)
}
