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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Acepta pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, sku, name, family, model_or_type, unit, is_serialized, material_id, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.SKU, &it.Name, &it.Family, &it.ModelOrType,
		&it.Unit, &it.IsSerialized, &it.MaterialID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (sku, name, family, model_or_type, unit, is_serialized, material_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		item.SKU, item.Name, item.Family, item.ModelOrType, item.Unit, item.IsSerialized, item.MaterialID,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by sku: %w", err)
	}
	return it, nil
}

func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, family = $3, model_or_type = $4, unit = $5, is_serialized = $6, material_id = $7, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Family, item.ModelOrType, item.Unit, item.IsSerialized, item.MaterialID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) Search(ctx context.Context, q string, limit int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE sku ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY sku LIMIT $2`
	rows, err := r.q.Query(ctx, query, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.SKU, &it.Name, &it.Family, &it.ModelOrType,
			&it.Unit, &it.IsSerialized, &it.MaterialID, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// CountReferences cuenta, por tipo, las filas que referencian al item y que
// bloquearían su borrado. El orden de las etiquetas es estable para que el
// mensaje de error sea determinista.
func (r *ItemRepo) CountReferences(ctx context.Context, itemID int64) ([]domain.RefCount, error) {
	query := `
		SELECT
			(SELECT count(*) FROM machine_model_components WHERE item_id = $1),
			(SELECT count(*) FROM component_alternatives   WHERE item_id = $1),
			(SELECT count(*) FROM order_pick_lines         WHERE item_id = $1),
			(SELECT count(*) FROM robot_tasks              WHERE item_id = $1)`
	var components, alternatives, pickLines, robotTasks int
	err := r.q.QueryRow(ctx, query, itemID).Scan(&components, &alternatives, &pickLines, &robotTasks)
	if err != nil {
		return nil, fmt.Errorf("count item references: %w", err)
	}
	return []domain.RefCount{
		{Kind: "componente(s) de modelo", Count: components},
		{Kind: "alternativa(s) de componente", Count: alternatives},
		{Kind: "línea(s) de picking", Count: pickLines},
		{Kind: "tarea(s) de robot", Count: robotTasks},
	}, nil
}

func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
