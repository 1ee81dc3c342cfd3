// Package jobs contiene las tareas en segundo plano (asynq) del servicio.
package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault cola de las tareas del servicio.
	QueueDefault = "default"
	// TaskSalesWarmup precalcula las ventanas de ventas del dashboard en el caché.
	TaskSalesWarmup = "sales:warmup"
)

// SalesWarmupPayload cuántos meses hacia atrás (además del actual) se precalculan.
type SalesWarmupPayload struct {
	PreviousMonths int `json:"previousMonths"`
}

// NewSalesWarmupTask construye la tarea de precalentamiento.
func NewSalesWarmupTask(previousMonths int) (*asynq.Task, error) {
	if previousMonths < 0 {
		return nil, fmt.Errorf("jobs: previousMonths negativo (%d)", previousMonths)
	}
	data, err := json.Marshal(SalesWarmupPayload{PreviousMonths: previousMonths})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSalesWarmup, data, asynq.Queue(QueueDefault)), nil
}
