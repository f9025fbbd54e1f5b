// internal/core/ports/repository.go
package ports

import (
	"assetmonitor/internal/core/domain"
)

// StateStore persiste el estado por dominio (baseline, candidato, delta,
// salida del probe, informe). Cada dominio posee su subárbol en exclusiva.
type StateStore interface {
	// Paths retorna el layout de un dominio sin tocar el disco
	Paths(d domain.Domain) domain.StatePaths

	// Prepare crea el directorio del dominio y deriva su estado de seguimiento
	Prepare(d domain.Domain) (domain.StatePaths, domain.TrackingState, error)

	// ReadSet lee un fichero de subdominios; ausente equivale a conjunto vacío
	ReadSet(path string) (*domain.SubdomainSet, error)

	// ReadLines lee un fichero línea a línea omitiendo vacías; ausente equivale a nil
	ReadLines(path string) ([]string, error)

	// WriteLines sobrescribe el fichero con una entrada por línea
	WriteLines(path string, lines []string) error

	// AppendLines añade entradas al final sin reescribir lo existente
	AppendLines(path string, lines []string) error

	// WriteText sobrescribe el fichero con text
	WriteText(path, text string) error

	// Copy copia src en dst
	Copy(src, dst string) error

	// Exists indica si la ruta existe
	Exists(path string) bool

	// MoveDir mueve un directorio, reemplazando dst si existe
	MoveDir(src, dst string) error

	// Remove borra un fichero o un directorio completo; ausente no es error
	Remove(path string) error
}

// Archiver empaqueta un directorio en un único fichero comprimido.
type Archiver interface {
	// Archive retorna el número de ficheros incluidos
	Archive(srcDir, dstPath string) (int, error)
}
