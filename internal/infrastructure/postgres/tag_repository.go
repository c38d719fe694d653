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

var _ repository.TagRepository = (*TagRepo)(nil)

// TagRepo implementación de TagRepository sobre PostgreSQL.
type TagRepo struct {
	q Querier
}

// NewTagRepository construye el adaptador. Acepta pool o tx (Querier).
func NewTagRepository(q Querier) *TagRepo {
	return &TagRepo{q: q}
}

func (r *TagRepo) Create(ctx context.Context, tag *entity.Tag) error {
	query := `
		INSERT INTO tags (code, tag_type, pack_quantity, item_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, tag.Code, tag.TagType, tag.PackQuantity, tag.ItemID).Scan(&tag.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *TagRepo) GetByCode(ctx context.Context, code string) (*entity.Tag, error) {
	query := `SELECT id, code, tag_type, pack_quantity, item_id FROM tags WHERE code = $1`
	var t entity.Tag
	err := r.q.QueryRow(ctx, query, code).Scan(&t.ID, &t.Code, &t.TagType, &t.PackQuantity, &t.ItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag by code: %w", err)
	}
	return &t, nil
}

func (r *TagRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.Tag, error) {
	query := `SELECT id, code, tag_type, pack_quantity, item_id FROM tags WHERE item_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list tags by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tag
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Code, &t.TagType, &t.PackQuantity, &t.ItemID); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
