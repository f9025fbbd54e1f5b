package hackerone

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
)

var errMissingData = errors.New(`document has no "data" field`)

// Resolver implementa ports.ScopeResolver con caché en disco por programa.
type Resolver struct {
	source ports.ScopeSource // nil sin credenciales
	root   string
	logger logx.Logger
}

// NewResolver crea un resolver que cachea bajo root. source puede ser nil
// cuando no hay credenciales: solo se podrán usar scopes ya cacheados.
func NewResolver(source ports.ScopeSource, root string, logger logx.Logger) *Resolver {
	return &Resolver{
		source: source,
		root:   root,
		logger: logger.With("component", "scope-resolver"),
	}
}

// Resolve retorna los dominios en scope de program. Usa la caché salvo que
// no exista o forceRefresh esté activo; en ese caso descarga y persiste el
// documento crudo antes de parsearlo.
func (r *Resolver) Resolve(ctx context.Context, program string, forceRefresh bool) ([]domain.Domain, error) {
	cachePath := domain.ScopeCachePath(r.root, program)

	raw, err := os.ReadFile(cachePath)
	cached := err == nil
	if err != nil && !os.IsNotExist(err) {
		return nil, domain.NewOpError(domain.ErrIO, "read-scope", cachePath, err)
	}

	if !cached || forceRefresh {
		if r.source == nil {
			return nil, domain.NewOpError(domain.ErrCredential, "fetch-scope", program,
				errors.New("hackerone credentials are not set"))
		}

		r.logger.Info("fetching program scope", "program", program, "refresh", forceRefresh)
		raw, err = r.source.FetchScope(ctx, program)
		if err != nil {
			return nil, err
		}
		if err := r.persist(cachePath, raw); err != nil {
			return nil, err
		}
	} else {
		r.logger.Debug("using cached scope", "program", program, "path", cachePath)
	}

	domains, err := ParseScope(program, raw, r.logger)
	if err != nil {
		return nil, err
	}

	r.logger.Info("program scope resolved", "program", program, "domains", len(domains))
	return domains, nil
}

func (r *Resolver) persist(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.NewOpError(domain.ErrIO, "write-scope", path, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return domain.NewOpError(domain.ErrIO, "write-scope", path, err)
	}
	return nil
}
