// internal/adapters/statestore/fs.go
package statestore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
)

// FS implementa ports.StateStore sobre el sistema de ficheros local,
// con un subdirectorio por dominio bajo Root.
type FS struct {
	root   string
	logger logx.Logger
}

// New crea un store con raíz en root.
func New(root string, logger logx.Logger) *FS {
	if root == "" {
		root = "."
	}
	return &FS{
		root:   root,
		logger: logger.With("component", "statestore"),
	}
}

// Root retorna el directorio raíz.
func (s *FS) Root() string {
	return s.root
}

// Paths retorna el layout de un dominio.
func (s *FS) Paths(d domain.Domain) domain.StatePaths {
	return domain.NewStatePaths(s.root, d)
}

// Prepare crea el directorio del dominio y deriva su estado de seguimiento.
// Sin fichero de baseline el dominio no está inicializado.
func (s *FS) Prepare(d domain.Domain) (domain.StatePaths, domain.TrackingState, error) {
	paths := s.Paths(d)

	if err := os.MkdirAll(paths.Dir, 0o755); err != nil {
		return paths, domain.StateUninitialized, domain.NewOpError(domain.ErrIO, "prepare", paths.Dir, err)
	}

	// Un baseline vacío sigue siendo un baseline: el dominio ya tuvo su primera pasada
	_, err := os.Stat(paths.Baseline)
	switch {
	case err == nil:
		return paths, domain.StateTracked, nil
	case os.IsNotExist(err):
		return paths, domain.StateUninitialized, nil
	default:
		return paths, domain.StateUninitialized, domain.NewOpError(domain.ErrIO, "stat", paths.Baseline, err)
	}
}

// ReadSet lee un fichero de subdominios. Un fichero ausente es un conjunto vacío.
func (s *FS) ReadSet(path string) (*domain.SubdomainSet, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return domain.NewSubdomainSet(), nil
	}
	if err != nil {
		return nil, domain.NewOpError(domain.ErrIO, "read", path, err)
	}
	defer f.Close()

	set, err := domain.ReadSubdomainSet(f)
	if err != nil {
		return nil, domain.NewOpError(domain.ErrIO, "read", path, err)
	}
	return set, nil
}

// ReadLines lee las líneas no vacías (sin normalizar). Ausente retorna nil.
func (s *FS) ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewOpError(domain.ErrIO, "read", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewOpError(domain.ErrIO, "read", path, err)
	}
	return lines, nil
}

// WriteLines sobrescribe path de forma atómica.
func (s *FS) WriteLines(path string, lines []string) error {
	return s.WriteText(path, joinLines(lines))
}

// WriteText sobrescribe path de forma atómica (temporal + rename).
func (s *FS) WriteText(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return domain.NewOpError(domain.ErrIO, "write", path, err)
	}
	tmpName := tmp.Name()

	if _, err := io.WriteString(tmp, text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.NewOpError(domain.ErrIO, "write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.NewOpError(domain.ErrIO, "write", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		s.logger.Debug("chmod failed", "path", tmpName, "error", err.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return domain.NewOpError(domain.ErrIO, "write", path, err)
	}
	return nil
}

// AppendLines añade líneas al final de path sin reescribir el contenido.
// Si el fichero no termina en salto de línea se añade uno antes.
func (s *FS) AppendLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	prefix := ""
	if last, err := lastByte(path); err == nil && last != '\n' {
		prefix = "\n"
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return domain.NewOpError(domain.ErrIO, "append", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, prefix+joinLines(lines)); err != nil {
		return domain.NewOpError(domain.ErrIO, "append", path, err)
	}
	if err := f.Sync(); err != nil {
		return domain.NewOpError(domain.ErrIO, "append", path, err)
	}
	return nil
}

// Copy copia src en dst (sobrescribe).
func (s *FS) Copy(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return domain.NewOpError(domain.ErrIO, "copy", src, err)
	}
	return s.WriteText(dst, string(data))
}

// Exists indica si la ruta existe.
func (s *FS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MoveDir mueve src a dst, reemplazando dst.
func (s *FS) MoveDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return domain.NewOpError(domain.ErrIO, "move", src, err)
	}
	if !info.IsDir() {
		return domain.NewOpError(domain.ErrIO, "move", src, fmt.Errorf("not a directory"))
	}
	if err := os.RemoveAll(dst); err != nil {
		return domain.NewOpError(domain.ErrIO, "move", dst, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return domain.NewOpError(domain.ErrIO, "move", src, err)
	}
	return nil
}

// Remove borra path, fichero o directorio con su contenido. Un path ausente no es error.
func (s *FS) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return domain.NewOpError(domain.ErrIO, "remove", path, err)
	}
	return nil
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// lastByte retorna el último byte del fichero; io.EOF si está vacío.
func lastByte(path string) (byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if info.Size() == 0 {
		return 0, io.EOF
	}

	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, info.Size()-1); err != nil {
		return 0, err
	}
	return buf[0], nil
}
