package postgres

import (
	"context"
)

// BackfillDeliveryFees pone flete = 0 en los pedidos históricos que lo tienen en NULL.
// Se corre al arrancar; es idempotente. Devuelve la cantidad de filas actualizadas.
//
// Si la columna flete todavía no existe (esquema anterior) no hay nada que
// completar y se devuelve 0 sin error.
func BackfillDeliveryFees(ctx context.Context, q Querier) (int64, error) {
	tag, err := q.Exec(ctx, `UPDATE orders SET flete = 0 WHERE flete IS NULL`)
	if err != nil {
		if isUndefinedColumn(err) {
			return 0, nil
		}
		return 0, dataAccessErr("orders.BackfillDeliveryFees", err)
	}
	return tag.RowsAffected(), nil
}
