package repository

import (
	"context"
	"time"

	"github.com/jhoicas/orders-api/internal/domain/entity"
	"github.com/jhoicas/orders-api/internal/domain/sales"
)

// OrderQueryRepository fachada de consulta de pedidos (solo lectura).
// Cada pedido se devuelve con cliente, móvil e ítems ya resueltos, ordenado por
// fecha e ID. La agregación nunca filtra más allá de lo que pide aquí.
//
// Ojo con las dos semánticas de rango: las ventanas del dashboard son
// semiabiertas [start, end) y los reportes por móvil son cerrados [start, end].
type OrderQueryRepository interface {
	// FindByDate pedidos cuya fecha es exactamente date, sin filtro de estado.
	FindByDate(ctx context.Context, date time.Time) ([]entity.Order, error)

	// FindByDateRange pedidos en la ventana semiabierta [period.Start, period.End).
	FindByDateRange(ctx context.Context, period sales.Period) ([]entity.Order, error)

	// FindByTruckAndDateRange pedidos del móvil en el rango cerrado [start, end].
	FindByTruckAndDateRange(ctx context.Context, truckID int64, start, end time.Time) ([]entity.Order, error)

	// FindByTruckAndDay pedidos del móvil en la ventana semiabierta [date, date+1).
	FindByTruckAndDay(ctx context.Context, truckID int64, date time.Time) ([]entity.Order, error)

	// FindByStatus pedidos en el estado indicado.
	FindByStatus(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error)
}
