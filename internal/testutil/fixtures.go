// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureDomains contiene dominios de prueba válidos.
var FixtureDomains = []string{
	"example.com",
	"example.org",
	"hackerone.com",
	"bugcrowd.io",
}

// FixtureInvalidDomains contiene entradas que no normalizan a un dominio.
var FixtureInvalidDomains = []string{
	"",
	"   ",
	"not a domain",
	"192.168.1.1",
	"-invalid.com",
	"example..com",
	"https://",
}

// FixtureScopeJSON is a two-page scope response, first page.
const FixtureScopeJSON = `{
  "data": [
    {"id": "1", "type": "structured-scope", "attributes": {"asset_type": "WILDCARD", "asset_identifier": "*.example.com", "eligible_for_bounty": true}},
    {"id": "2", "type": "structured-scope", "attributes": {"asset_type": "URL", "asset_identifier": "https://*.Example.org", "eligible_for_bounty": true}},
    {"id": "3", "type": "structured-scope", "attributes": {"asset_type": "URL", "asset_identifier": "api.example.net", "eligible_for_bounty": true}},
    {"id": "4", "type": "structured-scope", "attributes": {"asset_type": "WILDCARD", "asset_identifier": "*.noreward.com", "eligible_for_bounty": false}},
    {"id": "5", "type": "structured-scope", "attributes": {"asset_type": "CIDR", "asset_identifier": "*.cidr.example", "eligible_for_bounty": true}},
    {"id": "6", "type": "structured-scope", "attributes": {"asset_type": "WILDCARD", "asset_identifier": "*.EXAMPLE.com", "eligible_for_bounty": true}},
    {"id": "7", "type": "structured-scope", "attributes": "garbage"}
  ],
  "links": {}
}`
