// internal/core/ports/source.go
package ports

import (
	"context"

	"assetmonitor/internal/core/domain"
)

// Collaborator es una herramienta externa (binario) usada por el pipeline.
type Collaborator interface {
	// Name retorna el nombre de la herramienta (ej: "subfinder", "httpx")
	Name() string

	// Initialize verifica que la herramienta esté disponible. Un fallo aquí
	// es fatal para el proceso (domain.ErrToolNotFound).
	Initialize() error
}

// Enumerator descubre subdominios de un dominio.
type Enumerator interface {
	Collaborator

	// Enumerate escribe los subdominios descubiertos, uno por línea, en outPath.
	Enumerate(ctx context.Context, d domain.Domain, outPath string) error
}

// ProbeRequest describe una ejecución del probe sobre el delta.
type ProbeRequest struct {
	// InputPath lista de hosts a sondear (el delta, nunca el baseline)
	InputPath string

	// OutputPath fichero donde se vuelca la salida verbatim
	OutputPath string

	// Captures solicita capturas visuales
	Captures bool

	// CaptureDir directorio de capturas propio del dominio
	CaptureDir string
}

// Prober sondea la vivacidad de los hosts nuevos.
type Prober interface {
	Collaborator

	// Probe ejecuta el probe y retorna el número de líneas escritas.
	Probe(ctx context.Context, req ProbeRequest) (int, error)
}

// ScopeSource obtiene el documento de scope crudo de un programa.
type ScopeSource interface {
	FetchScope(ctx context.Context, program string) ([]byte, error)
}

// ScopeResolver expande un programa a la lista de dominios en scope.
type ScopeResolver interface {
	Resolve(ctx context.Context, program string, forceRefresh bool) ([]domain.Domain, error)
}
