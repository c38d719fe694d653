package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// El log es append-only: no hay Update ni Delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Acepta pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, transaction_id, type, item_id, quantity, from_location_id, to_location_id, performed_by, notes, timestamp_utc`

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (transaction_id, type, item_id, quantity, from_location_id, to_location_id, performed_by, notes, timestamp_utc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.TransactionID, m.Type, m.ItemID, m.Quantity,
		m.FromLocationID, m.ToLocationID, m.PerformedBy, m.Notes, m.TimestampUTC,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.TransactionID, &m.Type, &m.ItemID, &m.Quantity,
		&m.FromLocationID, &m.ToLocationID, &m.PerformedBy, &m.Notes, &m.TimestampUTC,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

func (r *MovementRepo) ListByItem(ctx context.Context, itemID int64, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE item_id = $1
		  AND ($2::timestamptz IS NULL OR timestamp_utc >= $2)
		  AND ($3::timestamptz IS NULL OR timestamp_utc <= $3)
		ORDER BY timestamp_utc DESC, id DESC LIMIT $4 OFFSET $5`
	return r.list(ctx, query, itemID, from, to, limit, offset)
}

func (r *MovementRepo) ListByLocation(ctx context.Context, locationID int64, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE (from_location_id = $1 OR to_location_id = $1)
		  AND ($2::timestamptz IS NULL OR timestamp_utc >= $2)
		  AND ($3::timestamptz IS NULL OR timestamp_utc <= $3)
		ORDER BY timestamp_utc DESC, id DESC LIMIT $4 OFFSET $5`
	return r.list(ctx, query, locationID, from, to, limit, offset)
}

func (r *MovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements ORDER BY timestamp_utc DESC, id DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.Type, &m.ItemID, &m.Quantity,
			&m.FromLocationID, &m.ToLocationID, &m.PerformedBy, &m.Notes, &m.TimestampUTC,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SignedSum suma con signo del ledger para un par (item, ubicación):
// entradas (+qty) menos salidas (-qty). Puede ser negativa si hubo decrementos
// con clamp; el snapshot materializado nunca baja de cero.
func (r *MovementRepo) SignedSum(ctx context.Context, itemID, locationID int64) (int, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN to_location_id = $2 THEN quantity ELSE 0 END -
			CASE WHEN from_location_id = $2 THEN quantity ELSE 0 END
		), 0)
		FROM movements
		WHERE item_id = $1 AND (from_location_id = $2 OR to_location_id = $2)`
	var sum int
	if err := r.q.QueryRow(ctx, query, itemID, locationID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("signed sum movements: %w", err)
	}
	return sum, nil
}
