// Package archive packs capture directories into compressed tarballs.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
)

// TarGz implementa ports.Archiver generando .tar.gz.
type TarGz struct {
	level  int
	logger logx.Logger
}

// New crea un archiver con compresión por defecto.
func New(logger logx.Logger) *TarGz {
	return &TarGz{
		level:  gzip.DefaultCompression,
		logger: logger.With("component", "archive"),
	}
}

// Archive empaqueta el contenido de srcDir en dstPath. Las rutas del tar son
// relativas a srcDir. Retorna el número de ficheros regulares incluidos.
func (a *TarGz) Archive(srcDir, dstPath string) (int, error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		return 0, domain.NewOpError(domain.ErrIO, "archive", srcDir, err)
	}
	if !info.IsDir() {
		return 0, domain.NewOpError(domain.ErrIO, "archive", srcDir, fmt.Errorf("not a directory"))
	}

	tmp, err := os.CreateTemp(filepath.Dir(dstPath), "."+filepath.Base(dstPath)+".*")
	if err != nil {
		return 0, domain.NewOpError(domain.ErrIO, "archive", dstPath, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op tras el rename

	files, err := a.write(tmp, srcDir)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, domain.NewOpError(domain.ErrIO, "archive", srcDir, err)
	}

	if err := os.Rename(tmpName, dstPath); err != nil {
		return 0, domain.NewOpError(domain.ErrIO, "archive", dstPath, err)
	}

	a.logger.Debug("archive created", "src", srcDir, "dst", dstPath, "files", files)
	return files, nil
}

func (a *TarGz) write(w io.Writer, srcDir string) (int, error) {
	gzWriter, err := gzip.NewWriterLevel(w, a.level)
	if err != nil {
		return 0, err
	}
	tarWriter := tar.NewWriter(gzWriter)

	files := 0
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil || rel == "." {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		// symlinks y otros ficheros especiales no se empaquetan
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			header.Name += "/"
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.Copy(tarWriter, f); err != nil {
			return err
		}
		files++
		return nil
	})
	if walkErr != nil {
		return 0, walkErr
	}

	if err := tarWriter.Close(); err != nil {
		return 0, err
	}
	if err := gzWriter.Close(); err != nil {
		return 0, err
	}
	return files, nil
}
