// Package subfinder implements integration with Project Discovery's subfinder CLI tool.
// It executes subfinder as a subprocess and parses its JSONL output into host lines.
package subfinder

import (
	"encoding/json"
	"fmt"
	"strings"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/platform/validator"
)

// StringOrArray is a custom type that can unmarshal both string and []string from JSON
type StringOrArray []string

// UnmarshalJSON implements custom unmarshaling to handle both string and array
func (sa *StringOrArray) UnmarshalJSON(data []byte) error {
	// Try unmarshaling as array first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = StringOrArray(arr)
		return nil
	}

	// If that fails, try as string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = StringOrArray([]string{str})
	return nil
}

// SubfinderResponse represents a single JSON record from subfinder output.
// Subfinder outputs JSONL format (one JSON object per line).
type SubfinderResponse struct {
	Host      string        `json:"host"`
	Input     string        `json:"input,omitempty"`
	Source    StringOrArray `json:"source"`
	Timestamp string        `json:"timestamp,omitempty"`
}

// Parser turns subfinder output lines into in-scope hostnames.
type Parser struct {
	logger logx.Logger
}

// NewParser creates a new subfinder output parser.
func NewParser(logger logx.Logger) *Parser {
	return &Parser{
		logger: logger.With("component", "subfinder_parser"),
	}
}

// ParseLine decodes one stdout line. JSON records are preferred; a bare
// hostname (plain -silent output) is accepted as well.
func (p *Parser) ParseLine(line []byte) (*SubfinderResponse, error) {
	text := strings.TrimSpace(string(line))
	if text == "" {
		return nil, nil
	}

	if strings.HasPrefix(text, "{") {
		var resp SubfinderResponse
		if err := json.Unmarshal([]byte(text), &resp); err != nil {
			return nil, fmt.Errorf("invalid subfinder record: %w", err)
		}
		return &resp, nil
	}

	return &SubfinderResponse{Host: text}, nil
}

// Host returns the normalized host of resp when it belongs to target, or "".
func (p *Parser) Host(resp *SubfinderResponse, target domain.Domain) string {
	if resp == nil || resp.Host == "" {
		return ""
	}

	host := strings.TrimSuffix(strings.TrimSpace(strings.ToLower(resp.Host)), ".")

	// Skip wildcards
	if strings.HasPrefix(host, "*.") {
		p.logger.Debug("skipping wildcard subdomain", "host", host)
		return ""
	}

	if !validator.IsDomain(host) {
		p.logger.Debug("skipping invalid host", "host", host)
		return ""
	}

	// Verify host is in scope
	if host != string(target) && !validator.IsSubdomain(host, string(target)) {
		p.logger.Debug("host out of scope", "host", host, "target", target)
		return ""
	}

	return host
}

// ValidateResponse checks if a SubfinderResponse is valid.
func (p *Parser) ValidateResponse(resp *SubfinderResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if resp.Host == "" {
		return fmt.Errorf("host is empty")
	}

	// Host should not contain protocol
	if strings.Contains(resp.Host, "://") {
		return fmt.Errorf("host contains protocol: %s", resp.Host)
	}

	return nil
}
