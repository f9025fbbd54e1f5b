package hackerone

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assetmonitor/internal/core/domain"
	platformerrors "assetmonitor/internal/platform/errors"
	"assetmonitor/internal/platform/httpclient"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/testutil"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	httpCfg := httpclient.DefaultConfig()
	httpCfg.MaxRetries = 0
	httpCfg.Timeout = 5 * time.Second

	c, err := NewClient(ClientConfig{
		BaseURL:  baseURL,
		Username: "hunter",
		Token:    "s3cret",
		HTTP:     httpCfg,
	}, logx.NewSilent())
	testutil.AssertNoError(t, err, "new client")
	return c
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(ClientConfig{Username: "hunter"}, logx.NewSilent())
	testutil.AssertTrue(t, errors.Is(err, domain.ErrCredential), "missing token is a credential error")
}

func TestClient_FetchScope_FollowsPagination(t *testing.T) {
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("hunter:s3cret"))

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != wantAuth || r.Header.Get("Accept") != "application/json" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/acme/structured_scopes":
			w.Write([]byte(`{"data":[{"id":"1","attributes":{"asset_type":"WILDCARD","asset_identifier":"*.acme.com","eligible_for_bounty":true}}],
				"links":{"next":"` + server.URL + `/acme/structured_scopes/page2"}}`))
		case "/acme/structured_scopes/page2":
			w.Write([]byte(`{"data":[{"id":"2","attributes":{"asset_type":"URL","asset_identifier":"https://*.acme.io","eligible_for_bounty":true}}],"links":{}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	raw, err := testClient(t, server.URL).FetchScope(context.Background(), "acme")
	testutil.AssertNoError(t, err, "fetch")

	var doc struct {
		Data []json.RawMessage `json:"data"`
	}
	testutil.AssertNoError(t, json.Unmarshal(raw, &doc), "merged document decodes")
	testutil.AssertEqual(t, len(doc.Data), 2, "both pages merged")

	domains, err := ParseScope("acme", raw, logx.NewSilent())
	testutil.AssertNoError(t, err, "parse merged")
	testutil.AssertEqual(t, len(domains), 2, "domains")
	testutil.AssertEqual(t, domains[0], domain.Domain("acme.com"), "first")
	testutil.AssertEqual(t, domains[1], domain.Domain("acme.io"), "second")
}

func TestClient_FetchScope_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).FetchScope(context.Background(), "acme")

	testutil.AssertTrue(t, errors.Is(err, domain.ErrFetch), "fetch error")
	testutil.AssertTrue(t, platformerrors.IsUnauthorized(err), "keeps transport cause")
	testutil.AssertTrue(t, domain.IsFatal(err), "scope fetch failures are fatal")
}

func TestClient_FetchScope_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).FetchScope(context.Background(), "acme")
	testutil.AssertTrue(t, errors.Is(err, domain.ErrParse), "parse error")
}
