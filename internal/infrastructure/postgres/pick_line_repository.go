package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-wms/internal/domain"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

var _ repository.PickLineRepository = (*PickLineRepo)(nil)

// PickLineRepo implementación de PickLineRepository sobre PostgreSQL.
type PickLineRepo struct {
	q Querier
}

// NewPickLineRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPickLineRepository(q Querier) *PickLineRepo {
	return &PickLineRepo{q: q}
}

const pickLineColumns = `id, build_order_id, item_id, quantity_required, quantity_picked`

func (r *PickLineRepo) Create(ctx context.Context, line *entity.OrderPickLine) error {
	query := `
		INSERT INTO order_pick_lines (build_order_id, item_id, quantity_required, quantity_picked)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		line.BuildOrderID, line.ItemID, line.QuantityRequired, line.QuantityPicked,
	).Scan(&line.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create pick line: %w", err)
	}
	return nil
}

func (r *PickLineRepo) ListByOrder(ctx context.Context, orderID int64) ([]*entity.OrderPickLine, error) {
	query := `SELECT ` + pickLineColumns + ` FROM order_pick_lines WHERE build_order_id = $1 ORDER BY id`
	return r.list(ctx, query, orderID)
}

func (r *PickLineRepo) GetForUpdate(ctx context.Context, orderID, itemID int64) (*entity.OrderPickLine, error) {
	query := `SELECT ` + pickLineColumns + ` FROM order_pick_lines WHERE build_order_id = $1 AND item_id = $2 FOR UPDATE`
	var l entity.OrderPickLine
	err := r.q.QueryRow(ctx, query, orderID, itemID).Scan(
		&l.ID, &l.BuildOrderID, &l.ItemID, &l.QuantityRequired, &l.QuantityPicked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pick line for update: %w", err)
	}
	return &l, nil
}

// ListByOrderForUpdate bloquea todas las líneas de la orden. Dos escaneos
// simultáneos del mismo slot se serializan aquí, no en el caller.
func (r *PickLineRepo) ListByOrderForUpdate(ctx context.Context, orderID int64) ([]*entity.OrderPickLine, error) {
	query := `SELECT ` + pickLineColumns + ` FROM order_pick_lines WHERE build_order_id = $1 ORDER BY id FOR UPDATE`
	return r.list(ctx, query, orderID)
}

func (r *PickLineRepo) UpdatePicked(ctx context.Context, line *entity.OrderPickLine) error {
	query := `UPDATE order_pick_lines SET quantity_picked = $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, line.ID, line.QuantityPicked)
	if err != nil {
		return fmt.Errorf("update pick line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PickLineRepo) list(ctx context.Context, query string, args ...any) ([]*entity.OrderPickLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pick lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderPickLine
	for rows.Next() {
		var l entity.OrderPickLine
		if err := rows.Scan(&l.ID, &l.BuildOrderID, &l.ItemID, &l.QuantityRequired, &l.QuantityPicked); err != nil {
			return nil, fmt.Errorf("scan pick line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
