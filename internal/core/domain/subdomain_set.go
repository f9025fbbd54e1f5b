// internal/core/domain/subdomain_set.go
package domain

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// SubdomainSet es un conjunto de subdominios normalizados de un Domain en un
// instante dado (baseline o candidato). El valor cero es usable.
type SubdomainSet struct {
	entries map[string]struct{}
}

// NewSubdomainSet crea un conjunto con las entradas dadas.
func NewSubdomainSet(entries ...string) *SubdomainSet {
	s := &SubdomainSet{entries: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// ReadSubdomainSet lee una entrada por línea. Las líneas vacías se ignoran.
func ReadSubdomainSet(r io.Reader) (*SubdomainSet, error) {
	s := NewSubdomainSet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// normalizeEntry: minúsculas, sin espacios ni punto final.
func normalizeEntry(entry string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(entry)), ".")
}

// Add inserta una entrada; devuelve false si estaba vacía o ya existía.
func (s *SubdomainSet) Add(entry string) bool {
	entry = normalizeEntry(entry)
	if entry == "" {
		return false
	}
	if s.entries == nil {
		s.entries = make(map[string]struct{})
	}
	if _, ok := s.entries[entry]; ok {
		return false
	}
	s.entries[entry] = struct{}{}
	return true
}

// Has indica si la entrada pertenece al conjunto.
func (s *SubdomainSet) Has(entry string) bool {
	_, ok := s.entries[normalizeEntry(entry)]
	return ok
}

// Len retorna el número de entradas.
func (s *SubdomainSet) Len() int {
	return len(s.entries)
}

// Sorted retorna las entradas en orden lexicográfico.
func (s *SubdomainSet) Sorted() []string {
	out := make([]string, 0, len(s.entries))
	for e := range s.entries {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Difference retorna s − other, ordenado.
func (s *SubdomainSet) Difference(other *SubdomainSet) []string {
	out := make([]string, 0)
	for e := range s.entries {
		if other != nil && other.Has(e) {
			continue
		}
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

