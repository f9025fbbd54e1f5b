package notify

import (
	"context"
	"strings"

	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/errors"
)

// Multi envía el mismo mensaje a varios canales. Un canal que falla no
// impide el envío al resto.
type Multi struct {
	notifiers []ports.Notifier
}

// NewMulti agrupa notifiers. Los nil se ignoran.
func NewMulti(notifiers ...ports.Notifier) *Multi {
	m := &Multi{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

// Len retorna el número de canales activos.
func (m *Multi) Len() int {
	return len(m.notifiers)
}

// Name implements ports.Notifier.
func (m *Multi) Name() string {
	names := make([]string, len(m.notifiers))
	for i, n := range m.notifiers {
		names[i] = n.Name()
	}
	return strings.Join(names, "+")
}

// Notify implements ports.Notifier. Retorna los errores de todos los canales unidos.
func (m *Multi) Notify(ctx context.Context, msg ports.Message) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
