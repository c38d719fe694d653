package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de BOMRepository sobre PostgreSQL (solo lectura).
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Acepta pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

func (r *BOMRepo) GetModel(ctx context.Context, id int64) (*entity.MachineModel, error) {
	query := `SELECT id, name, active FROM machine_models WHERE id = $1`
	var m entity.MachineModel
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine model: %w", err)
	}
	return &m, nil
}

// Slots componentes del modelo con sus alternativas, en orden estable
// (componentes por id, alternativas por sort_order). Dos consultas en lugar de
// un join: la segunda trae todas las alternativas del modelo de una vez.
func (r *BOMRepo) Slots(ctx context.Context, machineModelID int64) ([]*repository.ComponentSlot, error) {
	compQuery := `
		SELECT id, machine_model_id, item_id, quantity, notes
		FROM machine_model_components
		WHERE machine_model_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, compQuery, machineModelID)
	if err != nil {
		return nil, fmt.Errorf("list model components: %w", err)
	}
	defer rows.Close()

	var slots []*repository.ComponentSlot
	byComponent := make(map[int64]*repository.ComponentSlot)
	for rows.Next() {
		var c entity.MachineModelComponent
		if err := rows.Scan(&c.ID, &c.MachineModelID, &c.ItemID, &c.Quantity, &c.Notes); err != nil {
			return nil, fmt.Errorf("scan model component: %w", err)
		}
		slot := &repository.ComponentSlot{Component: c}
		slots = append(slots, slot)
		byComponent[c.ID] = slot
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	altQuery := `
		SELECT a.id, a.component_id, a.item_id, a.sort_order
		FROM component_alternatives a
		JOIN machine_model_components c ON c.id = a.component_id
		WHERE c.machine_model_id = $1
		ORDER BY a.component_id, a.sort_order, a.id`
	altRows, err := r.q.Query(ctx, altQuery, machineModelID)
	if err != nil {
		return nil, fmt.Errorf("list component alternatives: %w", err)
	}
	defer altRows.Close()
	for altRows.Next() {
		var a entity.ComponentAlternative
		if err := altRows.Scan(&a.ID, &a.ComponentID, &a.ItemID, &a.SortOrder); err != nil {
			return nil, fmt.Errorf("scan component alternative: %w", err)
		}
		if slot, ok := byComponent[a.ComponentID]; ok {
			slot.Alternatives = append(slot.Alternatives, a)
		}
	}
	return slots, altRows.Err()
}
