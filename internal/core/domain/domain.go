// internal/core/domain/domain.go
package domain

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"assetmonitor/internal/platform/validator"
)

// Domain es un hostname normalizado (minúsculas, sin esquema, ruta ni puerto).
// La identidad es el propio string.
type Domain string

// NormalizeDomain deriva un Domain de una entrada libre del operador o del scope.
// Es idempotente: NormalizeDomain(string(d)) == d para todo d válido.
func NormalizeDomain(raw string) (Domain, error) {
	host := validator.HostOf(raw)
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidDomain)
	}

	// IDN -> punycode
	ascii, err := idna.Punycode.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidDomain, raw, err)
	}
	ascii = strings.ToLower(ascii)

	if !validator.IsDomain(ascii) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, raw)
	}
	return Domain(ascii), nil
}

// String retorna el hostname.
func (d Domain) String() string {
	return string(d)
}

// IsPublicSuffix indica si el dominio es en sí un sufijo público
// (co.uk, github.io, s3.amazonaws.com...).
func (d Domain) IsPublicSuffix() bool {
	suffix, _ := publicsuffix.PublicSuffix(string(d))
	return suffix == string(d)
}

// NormalizeAll normaliza y deduplica una lista de entradas. Devuelve los
// dominios ordenados y las entradas descartadas por inválidas.
func NormalizeAll(raws []string) ([]Domain, []string) {
	seen := make(map[Domain]struct{}, len(raws))
	var invalid []string

	for _, raw := range raws {
		if validator.IsEmpty(raw) {
			continue
		}
		d, err := NormalizeDomain(raw)
		if err != nil {
			invalid = append(invalid, strings.TrimSpace(raw))
			continue
		}
		seen[d] = struct{}{}
	}

	return sortedDomains(seen), invalid
}

// Dedupe devuelve la unión ordenada y sin duplicados de varias listas.
func Dedupe(lists ...[]Domain) []Domain {
	seen := make(map[Domain]struct{})
	for _, list := range lists {
		for _, d := range list {
			seen[d] = struct{}{}
		}
	}
	return sortedDomains(seen)
}

func sortedDomains(set map[Domain]struct{}) []Domain {
	out := make([]Domain, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
