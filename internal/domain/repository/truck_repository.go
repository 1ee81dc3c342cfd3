package repository

import (
	"context"

	"github.com/jhoicas/orders-api/internal/domain/entity"
)

// TruckRepository consulta de móviles.
type TruckRepository interface {
	// FindByID devuelve (nil, nil) si el móvil no existe.
	FindByID(ctx context.Context, id int64) (*entity.Truck, error)
	Count(ctx context.Context) (int, error)
}
