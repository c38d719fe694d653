package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

var _ repository.BuildOrderRepository = (*BuildOrderRepo)(nil)

// BuildOrderRepo implementación de BuildOrderRepository sobre PostgreSQL.
type BuildOrderRepo struct {
	q Querier
}

// NewBuildOrderRepository construye el adaptador. Acepta pool o tx (Querier).
func NewBuildOrderRepository(q Querier) *BuildOrderRepo {
	return &BuildOrderRepo{q: q}
}

func (r *BuildOrderRepo) GetByID(ctx context.Context, id int64) (*entity.BuildOrder, error) {
	query := `
		SELECT id, external_ref, serial_number, machine_model_id, status, created_at
		FROM build_orders WHERE id = $1`
	var o entity.BuildOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.ExternalRef, &o.SerialNumber, &o.MachineModelID, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get build order: %w", err)
	}
	return &o, nil
}
