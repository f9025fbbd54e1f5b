package hackerone

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
)

// Asset types that may carry a wildcard.
const (
	AssetWildcard = "WILDCARD"
	AssetURL      = "URL"
)

// wildcardPattern matches "*.example.com" and "https://*.example.com".
var wildcardPattern = regexp.MustCompile(`^(?:https?://)?\*\..*`)

// ScopeAsset is one structured scope entry.
type ScopeAsset struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		AssetType         string `json:"asset_type"`
		AssetIdentifier   string `json:"asset_identifier"`
		EligibleForBounty bool   `json:"eligible_for_bounty"`
	} `json:"attributes"`
}

// scopeDocument is the cached document: data entries stay raw so one bad
// entry does not reject the whole program.
type scopeDocument struct {
	Data *[]json.RawMessage `json:"data"`
}

// ParseScope extrae los dominios monitorizables de un documento de scope.
// Entradas ilegibles o fuera de criterio se omiten; un documento sin data
// es domain.ErrParse.
func ParseScope(program string, raw []byte, logger logx.Logger) ([]domain.Domain, error) {
	var doc scopeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, domain.NewOpError(domain.ErrParse, "parse-scope", program, err)
	}
	if doc.Data == nil {
		return nil, domain.NewOpError(domain.ErrParse, "parse-scope", program, errMissingData)
	}

	var out []domain.Domain
	for i, entry := range *doc.Data {
		var asset ScopeAsset
		if err := json.Unmarshal(entry, &asset); err != nil {
			logger.Debug("skipping unreadable scope entry", "program", program, "index", i)
			continue
		}

		d, ok := WildcardDomain(asset)
		if !ok {
			continue
		}
		if d.IsPublicSuffix() {
			logger.Warn("skipping wildcard on a public suffix",
				"program", program,
				"asset", asset.Attributes.AssetIdentifier,
			)
			continue
		}
		out = append(out, d)
	}

	return domain.Dedupe(out), nil
}

// WildcardDomain returns the bare domain of an eligible wildcard asset.
func WildcardDomain(asset ScopeAsset) (domain.Domain, bool) {
	attrs := asset.Attributes
	if !attrs.EligibleForBounty {
		return "", false
	}
	if attrs.AssetType != AssetWildcard && attrs.AssetType != AssetURL {
		return "", false
	}

	identifier := strings.TrimSpace(attrs.AssetIdentifier)
	if !wildcardPattern.MatchString(identifier) {
		return "", false
	}

	host := identifier
	if strings.HasPrefix(strings.ToLower(identifier), "http") {
		u, err := url.Parse(identifier)
		if err != nil {
			return "", false
		}
		host = u.Host
	}
	host = strings.TrimPrefix(host, "*.")

	d, err := domain.NormalizeDomain(host)
	if err != nil {
		return "", false
	}
	return d, true
}
