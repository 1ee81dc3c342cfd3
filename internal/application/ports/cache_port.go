package ports

import "context"

// SalesCache caché de lectura para las ventanas de ventas ya calculadas.
// La invalidación es por versión: al cambiar los pedidos se incrementa la
// versión y las llaves anteriores dejan de usarse.
type SalesCache interface {
	// BuildKey compone la llave con la versión vigente del caché.
	BuildKey(ctx context.Context, parts ...string) (string, error)

	// FetchJSON carga dest desde el caché o lo llena con loader y lo guarda.
	FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error
}
