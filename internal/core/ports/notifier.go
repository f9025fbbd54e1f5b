// internal/core/ports/notifier.go
package ports

import (
	"context"

	"assetmonitor/internal/core/domain"
)

// Notifier es el port para el envío de informes de cambios.
// Debe ser seguro para uso concurrente desde varios workers.
type Notifier interface {
	// Name retorna el nombre del canal (ej: "discord", "slack")
	Name() string

	// Notify envía el mensaje. Un fallo es no fatal (domain.ErrNotification).
	Notify(ctx context.Context, msg Message) error
}

// Message es el payload de texto y los adjuntos opcionales.
type Message struct {
	Domain      domain.Domain
	Text        string
	Attachments []Attachment
}

// Attachment referencia un fichero local a adjuntar.
type Attachment struct {
	// Name nombre con el que se publica
	Name string
	// Path ruta local
	Path string
}
