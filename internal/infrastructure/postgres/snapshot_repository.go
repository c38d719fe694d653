package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de SnapshotRepository sobre PostgreSQL.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Acepta pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

func (r *SnapshotRepo) get(ctx context.Context, itemID, locationID int64, forUpdate bool) (*entity.StockSnapshot, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at_utc
		FROM stock_snapshots
		WHERE item_id = $1 AND location_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.StockSnapshot
	err := r.q.QueryRow(ctx, query, itemID, locationID).Scan(
		&s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAtUTC,
	)
	if err != nil {
		// Par aún sin fila: snapshot en cero, no un error.
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockSnapshot{ItemID: itemID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

func (r *SnapshotRepo) Get(ctx context.Context, itemID, locationID int64) (*entity.StockSnapshot, error) {
	return r.get(ctx, itemID, locationID, false)
}

// GetForUpdate bloquea la fila del par con SELECT FOR UPDATE. Si el par aún no
// existe no hay fila que bloquear; la serialización la da entonces la
// constraint única del Upsert.
func (r *SnapshotRepo) GetForUpdate(ctx context.Context, itemID, locationID int64) (*entity.StockSnapshot, error) {
	return r.get(ctx, itemID, locationID, true)
}

func (r *SnapshotRepo) Upsert(ctx context.Context, snap *entity.StockSnapshot) error {
	query := `
		INSERT INTO stock_snapshots (item_id, location_id, quantity, updated_at_utc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at_utc = EXCLUDED.updated_at_utc`
	_, err := r.q.Exec(ctx, query, snap.ItemID, snap.LocationID, snap.Quantity, snap.UpdatedAtUTC)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.StockSnapshot, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at_utc
		FROM stock_snapshots
		WHERE item_id = $1 AND quantity > 0
		ORDER BY quantity DESC, location_id`
	return r.list(ctx, query, itemID)
}

func (r *SnapshotRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockSnapshot, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at_utc
		FROM stock_snapshots
		ORDER BY updated_at_utc DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *SnapshotRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockSnapshot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSnapshot
	for rows.Next() {
		var s entity.StockSnapshot
		if err := rows.Scan(&s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAtUTC); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
