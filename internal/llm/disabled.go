package llm

import (
	"context"
	"fmt"
)

type disabledClient struct {
	reason string
}

// NewDisabledClient devuelve un Client que siempre falla con ErrDisabled.
// Se usa cuando falta la configuración del proveedor.
func NewDisabledClient(reason string) Client {
	return &disabledClient{reason: reason}
}

func (c *disabledClient) Generate(_ context.Context, _ Request) (string, error) {
	if c.reason == "" {
		return "", ErrDisabled
	}
	return "", fmt.Errorf("%w: %s", ErrDisabled, c.reason)
}
