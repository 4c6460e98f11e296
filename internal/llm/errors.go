package llm

import (
	"context"
	"errors"
	"strings"
)

// Errores centinela de generación. Cualquiera de ellos activa el camino
// determinístico del asesor.
var (
	ErrTimeout  = errors.New("LLM timeout")
	ErrAPI      = errors.New("LLM API error")
	ErrGeneric  = errors.New("LLM error")
	ErrEmpty    = errors.New("LLM error: empty response")
	ErrDisabled = errors.New("LLM disabled")
)

// FailureMarkers son los textos que algunos proveedores devuelven en banda
// en lugar de un error.
var FailureMarkers = []string{"LLM error", "LLM timeout", "LLM API error"}

// ContainsFailureMarker indica si el texto contiene un marcador de fallo.
func ContainsFailureMarker(text string) bool {
	for _, m := range FailureMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// IsFailure clasifica un resultado de generación como fallido.
func IsFailure(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrAPI) ||
		errors.Is(err, ErrGeneric) ||
		errors.Is(err, ErrEmpty) ||
		errors.Is(err, ErrDisabled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
