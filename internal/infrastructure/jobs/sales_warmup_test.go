package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/domain/sales"
	"github.com/jhoicas/orders-api/pkg/logger"
)

type recordingWarmer struct {
	today   time.Time
	daily   []string
	weekly  []string
	monthly []string
	err     error
}

func (w *recordingWarmer) Today() time.Time { return w.today }

func (w *recordingWarmer) DailySales(_ context.Context, d time.Time) (*dto.DailySalesDTO, error) {
	w.daily = append(w.daily, sales.Label(d))
	return &dto.DailySalesDTO{}, w.err
}

func (w *recordingWarmer) WeeklySales(_ context.Context, d time.Time) (*dto.WeeklySalesDTO, error) {
	w.weekly = append(w.weekly, sales.Label(d))
	return &dto.WeeklySalesDTO{}, nil
}

func (w *recordingWarmer) MonthlySales(_ context.Context, d time.Time) (*dto.MonthlySalesDTO, error) {
	w.monthly = append(w.monthly, d.Format("2006-01"))
	return &dto.MonthlySalesDTO{}, nil
}

func newJob(w SalesWarmer, buf *bytes.Buffer) *SalesWarmupJob {
	return NewSalesWarmupJob(w, logger.FromZerolog(zerolog.New(buf)))
}

func march3() time.Time { return time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC) }

func TestSalesWarmup_PrecalculaVentanasCerradas(t *testing.T) {
	var buf bytes.Buffer
	w := &recordingWarmer{today: march3()}
	task, err := NewSalesWarmupTask(2)
	require.NoError(t, err)

	require.NoError(t, newJob(w, &buf).Handle(context.Background(), task))

	assert.Equal(t, []string{"2024-03-02"}, w.daily, "ayer")
	assert.Equal(t, []string{"2024-02-25"}, w.weekly, "semana que termina ayer")
	assert.Equal(t, []string{"2024-02", "2024-01"}, w.monthly, "el mes en curso no se precalcula")
	assert.Contains(t, buf.String(), "ventanas de ventas precalculadas")
}

func TestSalesWarmup_PayloadInvalidoNoSeReintenta(t *testing.T) {
	var buf bytes.Buffer
	w := &recordingWarmer{today: march3()}

	err := newJob(w, &buf).Handle(context.Background(), asynq.NewTask(TaskSalesWarmup, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, w.daily)
}

func TestSalesWarmup_FallaSePropagaParaReintento(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("db caída")
	w := &recordingWarmer{today: march3(), err: boom}
	task, err := NewSalesWarmupTask(0)
	require.NoError(t, err)

	err = newJob(w, &buf).Handle(context.Background(), task)

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, w.weekly)
	assert.Contains(t, buf.String(), "warmup fallido")
}

func TestNewSalesWarmupTask(t *testing.T) {
	task, err := NewSalesWarmupTask(1)
	require.NoError(t, err)
	assert.Equal(t, TaskSalesWarmup, task.Type())
	assert.JSONEq(t, `{"previousMonths":1}`, string(task.Payload()))

	_, err = NewSalesWarmupTask(-1)
	assert.Error(t, err)
}

func TestNewWorker_CronInvalido(t *testing.T) {
	task, err := NewSalesWarmupTask(0)
	require.NoError(t, err)

	_, err = NewWorker(WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: "127.0.0.1:0"},
		Logger:    logger.FromZerolog(zerolog.Nop()),
		Cron:      []CronRegistration{{Spec: "cada quince minutos", Task: task}},
	})
	assert.Error(t, err)
}

func TestNewWorker_SinLogger(t *testing.T) {
	_, err := NewWorker(WorkerConfig{})
	assert.Error(t, err)
}
