package sales

import "time"

// DateLayout formato de día calendario usado en etiquetas y parámetros.
const DateLayout = "2006-01-02"

// Day normaliza t a su día calendario (medianoche UTC), descartando la hora.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay interpreta un string YYYY-MM-DD como día calendario.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Label devuelve la etiqueta YYYY-MM-DD del día.
func Label(t time.Time) string {
	return t.Format(DateLayout)
}

// Period ventana semiabierta de días [Start, End). Es la semántica que usan las
// ventanas del dashboard (día, semana, mes) al consultar pedidos.
type Period struct {
	Start time.Time
	End   time.Time
}

// DayPeriod ventana de un único día.
func DayPeriod(d time.Time) Period {
	start := Day(d)
	return Period{Start: start, End: start.AddDate(0, 0, 1)}
}

// WeekPeriod siete días consecutivos a partir de start (no se alinea a lunes).
func WeekPeriod(start time.Time) Period {
	s := Day(start)
	return Period{Start: s, End: s.AddDate(0, 0, 7)}
}

// MonthPeriod mes calendario completo del día indicado: [día 1, día 1 del mes siguiente).
func MonthPeriod(anyDay time.Time) Period {
	first := time.Date(anyDay.Year(), anyDay.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: first, End: first.AddDate(0, 1, 0)}
}

// LastDay último día incluido en la ventana.
func (p Period) LastDay() time.Time {
	return p.End.AddDate(0, 0, -1)
}

// Contains indica si el día de t cae dentro de [Start, End).
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start) && d.Before(p.End)
}

// Days enumera cada día calendario de la ventana, en orden.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := p.Start; d.Before(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DateRange rango cerrado de días [Start, End], usado por los reportes de entrega.
type DateRange struct {
	Start time.Time
	End   time.Time
}
