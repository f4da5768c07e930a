package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnsupportedFormat = errors.New("formato de archivo no soportado")
	ErrEmptyOrCorrupt    = errors.New("archivo vacío o corrupto")
	ErrMissingColumn     = errors.New("columna obligatoria ausente")
)

// MissingColumnError indica qué columna obligatoria falta en el conjunto de registros crudo.
// errors.Is(err, ErrMissingColumn) es verdadero para cualquier instancia.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingColumn.Error(), e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
