package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNotOnPickList     = errors.New("el item no pertenece a la lista de picking de la orden")
	ErrRetryExhausted    = errors.New("conflicto de concurrencia tras reintento")
)

// RefCount referencia que bloquea un borrado, con su conteo.
type RefCount struct {
	Kind  string // "machine model component(s)", "order pick line(s)", ...
	Count int
}

// ReferencedError borrado rechazado por referencias existentes. Enumera cada
// tipo de referencia con su conteo para que el caller muestre un mensaje
// accionable en lugar de un error FK crudo.
type ReferencedError struct {
	Entity string // lo que se intentó borrar, ej. el SKU
	Refs   []RefCount
}

func (e *ReferencedError) Error() string {
	parts := make([]string, 0, len(e.Refs))
	for _, r := range e.Refs {
		parts = append(parts, fmt.Sprintf("%d %s", r.Count, r.Kind))
	}
	return fmt.Sprintf("no se puede borrar %q: referenciado por %s", e.Entity, strings.Join(parts, ", "))
}

// Un ReferencedError es también un ErrConflict a efectos de errors.Is.
func (e *ReferencedError) Is(target error) bool { return target == ErrConflict }
