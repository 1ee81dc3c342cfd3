package ports

import "context"

// DiagnosticSink recibe las fallas que la aplicación absorbe sin propagarlas al
// cliente (por ejemplo, la instantánea del dashboard que cae a ceros).
type DiagnosticSink interface {
	Report(ctx context.Context, operation string, err error)
}

// NopSink descarta los reportes; útil cuando no se configura un sink.
type NopSink struct{}

// Report no hace nada.
func (NopSink) Report(context.Context, string, error) {}
