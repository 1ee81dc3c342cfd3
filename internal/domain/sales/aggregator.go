// Package sales contiene la agregación pura de ventas: totales por período,
// por móvil y por día. No realiza consultas; opera sobre pedidos ya obtenidos.
package sales

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orders-api/internal/domain/entity"
)

// Bucket total vendido y cantidad de pedidos de un conjunto de pedidos.
// Un bucket sin pedidos vale {0, 0}; nunca se omite.
type Bucket struct {
	TotalSales decimal.Decimal `json:"totalSales"`
	OrderCount int             `json:"orderCount"`
}

// DailyBucket bucket etiquetado con su día (YYYY-MM-DD).
type DailyBucket struct {
	Date string `json:"date"`
	Bucket
}

// ── Llave por móvil ───────────────────────────────────────────────────────────

// unassignedLabel es la llave JSON de los pedidos sin móvil asignado.
const unassignedLabel = "null"

// TruckKey identifica el móvil de un grupo. El valor cero representa
// "sin móvil asignado"; esos pedidos se agrupan, no se descartan.
type TruckKey struct {
	ID       int64
	Assigned bool
}

// Unassigned llave de los pedidos sin móvil.
var Unassigned = TruckKey{}

// KeyFor devuelve la llave del móvil asignado al pedido.
func KeyFor(o entity.Order) TruckKey {
	if o.Truck == nil {
		return Unassigned
	}
	return TruckKey{ID: o.Truck.ID, Assigned: true}
}

func (k TruckKey) String() string {
	if !k.Assigned {
		return unassignedLabel
	}
	return strconv.FormatInt(k.ID, 10)
}

// MarshalText permite usar TruckKey como llave de un mapa JSON ("12" o "null").
func (k TruckKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText interpreta la llave producida por MarshalText.
func (k *TruckKey) UnmarshalText(b []byte) error {
	s := string(b)
	if s == unassignedLabel || s == "" {
		*k = Unassigned
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*k = TruckKey{ID: id, Assigned: true}
	return nil
}

// ── Agregación ────────────────────────────────────────────────────────────────

// Aggregate suma TotalPrice y cuenta los pedidos. Lista vacía → {0, 0}.
func Aggregate(orders []entity.Order) Bucket {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalPrice)
	}
	return Bucket{TotalSales: total, OrderCount: len(orders)}
}

// GroupByTruck agrupa los pedidos por móvil. Los pedidos sin móvil quedan bajo Unassigned.
func GroupByTruck(orders []entity.Order) map[TruckKey]Bucket {
	groups := make(map[TruckKey][]entity.Order)
	for _, o := range orders {
		k := KeyFor(o)
		groups[k] = append(groups[k], o)
	}
	out := make(map[TruckKey]Bucket, len(groups))
	for k, g := range groups {
		out[k] = Aggregate(g)
	}
	return out
}

// AggregateByDay devuelve un bucket por cada día pedido, en el mismo orden,
// incluyendo los días sin pedidos como {0, 0}.
func AggregateByDay(orders []entity.Order, days []time.Time) []DailyBucket {
	byDay := groupByLabel(orders)
	out := make([]DailyBucket, 0, len(days))
	for _, d := range days {
		label := Label(Day(d))
		out = append(out, DailyBucket{Date: label, Bucket: Aggregate(byDay[label])})
	}
	return out
}

// GroupByDate agrupa por fecha distinta de pedido (los días sin pedidos no aparecen)
// y ordena ascendentemente por la etiqueta de fecha.
func GroupByDate(orders []entity.Order) []DailyBucket {
	byDay := groupByLabel(orders)
	out := make([]DailyBucket, 0, len(byDay))
	for label, g := range byDay {
		out = append(out, DailyBucket{Date: label, Bucket: Aggregate(g)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func groupByLabel(orders []entity.Order) map[string][]entity.Order {
	byDay := make(map[string][]entity.Order)
	for _, o := range orders {
		label := Label(Day(o.Date))
		byDay[label] = append(byDay[label], o)
	}
	return byDay
}
