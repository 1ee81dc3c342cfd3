package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrDataAccess = errors.New("falla de acceso a datos")
)
