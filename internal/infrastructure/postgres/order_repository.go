package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orders-api/internal/domain/entity"
	"github.com/jhoicas/orders-api/internal/domain/repository"
	"github.com/jhoicas/orders-api/internal/domain/sales"
)

var _ repository.OrderQueryRepository = (*OrderRepo)(nil)

// OrderRepo consultas de solo lectura sobre pedidos.
//
// Cada lectura hace dos queries: cabeceras (pedido + cliente + móvil) y luego
// las líneas de todos esos pedidos con un único ANY($1). Sobre un pool ambas
// corren en la misma transacción de solo lectura.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderHeaderSelect = `
	SELECT o.id, o.date, o.status, o.flete, o.total_price,
	       c.id, c.name, COALESCE(c.address, ''), COALESCE(c.phone_number, ''),
	       t.id, t.name
	FROM orders o
	JOIN customers   c ON c.id = o.customer_id
	LEFT JOIN trucks t ON t.id = o.truck_id
	`

const orderHeaderOrder = `
	ORDER BY o.date, o.id`

// FindByDate pedidos del día exacto.
func (r *OrderRepo) FindByDate(ctx context.Context, date time.Time) ([]entity.Order, error) {
	return r.find(ctx, "orders.FindByDate",
		orderHeaderSelect+`WHERE o.date = $1`+orderHeaderOrder,
		sales.Day(date))
}

// FindByDateRange ventana semiabierta [start, end).
func (r *OrderRepo) FindByDateRange(ctx context.Context, period sales.Period) ([]entity.Order, error) {
	return r.find(ctx, "orders.FindByDateRange",
		orderHeaderSelect+`WHERE o.date >= $1 AND o.date < $2`+orderHeaderOrder,
		period.Start, period.End)
}

// FindByTruckAndDateRange rango cerrado [start, end] del móvil.
func (r *OrderRepo) FindByTruckAndDateRange(ctx context.Context, truckID int64, start, end time.Time) ([]entity.Order, error) {
	return r.find(ctx, "orders.FindByTruckAndDateRange",
		orderHeaderSelect+`WHERE o.truck_id = $1 AND o.date >= $2 AND o.date <= $3`+orderHeaderOrder,
		truckID, sales.Day(start), sales.Day(end))
}

// FindByTruckAndDay ventana semiabierta [date, date+1) del móvil.
func (r *OrderRepo) FindByTruckAndDay(ctx context.Context, truckID int64, date time.Time) ([]entity.Order, error) {
	p := sales.DayPeriod(date)
	return r.find(ctx, "orders.FindByTruckAndDay",
		orderHeaderSelect+`WHERE o.truck_id = $1 AND o.date >= $2 AND o.date < $3`+orderHeaderOrder,
		truckID, p.Start, p.End)
}

// FindByStatus pedidos en el estado indicado, sin filtro de fecha.
func (r *OrderRepo) FindByStatus(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	return r.find(ctx, "orders.FindByStatus",
		orderHeaderSelect+`WHERE o.status = $1`+orderHeaderOrder,
		string(status))
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (r *OrderRepo) find(ctx context.Context, op, query string, args ...any) ([]entity.Order, error) {
	var orders []entity.Order
	err := runSnapshot(ctx, r.q, func(q Querier) error {
		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		orders, err = pgx.CollectRows(rows, scanOrderHeader)
		if err != nil || len(orders) == 0 {
			return err
		}

		ids := make([]int64, len(orders))
		for i, o := range orders {
			ids[i] = o.ID
		}
		items, err := itemsByOrder(ctx, q, ids)
		if err != nil {
			return fmt.Errorf("items: %w", err)
		}
		orders = attachItems(orders, items)
		return nil
	})
	if err != nil {
		return nil, dataAccessErr(op, err)
	}
	return orders, nil
}

func scanOrderHeader(row pgx.CollectableRow) (entity.Order, error) {
	var (
		o         entity.Order
		status    string
		fee       decimal.NullDecimal
		truckID   *int64
		truckName *string
	)
	if err := row.Scan(
		&o.ID, &o.Date, &status, &fee, &o.TotalPrice,
		&o.Customer.ID, &o.Customer.Name, &o.Customer.Address, &o.Customer.PhoneNumber,
		&truckID, &truckName,
	); err != nil {
		return entity.Order{}, err
	}
	o.Status = entity.OrderStatus(status)
	o.Date = sales.Day(o.Date)
	if fee.Valid {
		o.DeliveryFee = &fee.Decimal
	}
	if truckID != nil {
		o.Truck = &entity.Truck{ID: *truckID}
		if truckName != nil {
			o.Truck.Name = *truckName
		}
	}
	return o, nil
}

type itemRow struct {
	orderID int64
	item    entity.OrderItem
}

// itemsByOrder líneas de los pedidos indicados, en el orden en que fueron cargadas.
func itemsByOrder(ctx context.Context, q Querier, orderIDs []int64) ([]itemRow, error) {
	const query = `
	SELECT oi.order_id, i.id, i.name, i.price, oi.quantity
	FROM order_items oi
	JOIN items i ON i.id = oi.item_id
	WHERE oi.order_id = ANY($1)
	ORDER BY oi.order_id, oi.id`

	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (itemRow, error) {
		var ir itemRow
		err := row.Scan(&ir.orderID, &ir.item.Item.ID, &ir.item.Item.Name, &ir.item.Item.Price, &ir.item.Quantity)
		return ir, err
	})
}

// attachItems asigna a cada pedido sus líneas conservando el orden de ambos listados.
func attachItems(orders []entity.Order, items []itemRow) []entity.Order {
	byOrder := make(map[int64][]entity.OrderItem, len(orders))
	for _, ir := range items {
		byOrder[ir.orderID] = append(byOrder[ir.orderID], ir.item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders
}
