package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/orders-api/internal/domain/entity"
	"github.com/jhoicas/orders-api/internal/domain/repository"
)

var _ repository.TruckRepository = (*TruckRepo)(nil)

// TruckRepo implementación de TruckRepository (usable con pool o tx).
type TruckRepo struct {
	q Querier
}

// NewTruckRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTruckRepository(q Querier) *TruckRepo {
	return &TruckRepo{q: q}
}

// FindByID obtiene un móvil por ID; (nil, nil) si no existe.
func (r *TruckRepo) FindByID(ctx context.Context, id int64) (*entity.Truck, error) {
	var t entity.Truck
	err := r.q.QueryRow(ctx, `SELECT id, name FROM trucks WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dataAccessErr("trucks.FindByID", err)
	}
	return &t, nil
}

// Count total de móviles registrados.
func (r *TruckRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM trucks`).Scan(&n); err != nil {
		return 0, dataAccessErr("trucks.Count", err)
	}
	return n, nil
}
