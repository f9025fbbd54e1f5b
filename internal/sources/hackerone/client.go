// Package hackerone resolves HackerOne program scopes into monitored domains.
package hackerone

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/errors"
	"assetmonitor/internal/platform/httpclient"
	"assetmonitor/internal/platform/logx"
)

// DefaultBaseURL is the hacker API root for program scopes.
const DefaultBaseURL = "https://api.hackerone.com/v1/hackers/programs"

// maxPages evita bucles infinitos si links.next no avanza.
const maxPages = 100

// ClientConfig configura el cliente de la API.
type ClientConfig struct {
	BaseURL  string
	Username string
	Token    string
	HTTP     httpclient.Config
}

// Client implementa ports.ScopeSource contra la API de HackerOne.
type Client struct {
	http    *httpclient.Client
	baseURL string
	auth    string
	logger  logx.Logger
}

// scopePage es una página de structured_scopes. Los elementos de data se
// conservan crudos: el parser decide cuáles son válidos.
type scopePage struct {
	Data  []json.RawMessage `json:"data"`
	Links struct {
		Next string `json:"next,omitempty"`
	} `json:"links"`
}

// NewClient crea el cliente. Username y Token son obligatorios.
func NewClient(cfg ClientConfig, logger logx.Logger) (*Client, error) {
	if cfg.Username == "" || cfg.Token == "" {
		return nil, domain.NewOpError(domain.ErrCredential, "hackerone", "client",
			fmt.Errorf("hackerone-username and hackerone-api must be set"))
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP = httpclient.DefaultConfig()
	}

	hc, err := httpclient.New(cfg.HTTP, logger)
	if err != nil {
		return nil, err
	}

	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Token))
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		auth:    "Basic " + creds,
		logger:  logger.With("component", "hackerone"),
	}, nil
}

// FetchScope descarga todas las páginas del scope de program y retorna un
// único documento JSON con los data fusionados.
func (c *Client) FetchScope(ctx context.Context, program string) ([]byte, error) {
	next := fmt.Sprintf("%s/%s/structured_scopes", c.baseURL, url.PathEscape(program))
	headers := map[string]string{
		"Accept":        "application/json",
		"Authorization": c.auth,
	}

	merged := scopePage{Data: []json.RawMessage{}}
	start := time.Now()

	for page := 1; next != ""; page++ {
		if page > maxPages {
			return nil, domain.NewOpError(domain.ErrFetch, "fetch-scope", program,
				fmt.Errorf("more than %d pages", maxPages))
		}

		body, err := c.http.Fetch(ctx, next, headers)
		if err != nil {
			if errors.IsUnauthorized(err) {
				err = errors.Wrap(err, "check hackerone credentials in config.yaml")
			}
			return nil, domain.NewOpError(domain.ErrFetch, "fetch-scope", program, err)
		}

		var p scopePage
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, domain.NewOpError(domain.ErrParse, "fetch-scope", program,
				errors.Wrapf(errors.ErrInvalidResponse, "page %d: %v", page, err))
		}
		merged.Data = append(merged.Data, p.Data...)

		if p.Links.Next == next {
			break
		}
		next = p.Links.Next
	}

	c.logger.Debug("scope fetched",
		"program", program,
		"assets", len(merged.Data),
		"duration", time.Since(start).String(),
	)

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return nil, domain.NewOpError(domain.ErrParse, "fetch-scope", program, err)
	}
	return out, nil
}
