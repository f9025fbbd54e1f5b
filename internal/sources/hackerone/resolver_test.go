package hackerone

import (
	"context"
	"errors"
	"os"
	"testing"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/testutil"
)

type fakeSource struct {
	doc   string
	err   error
	calls int
}

func (f *fakeSource) FetchScope(ctx context.Context, program string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.doc), nil
}

func TestResolver_FetchesAndCaches(t *testing.T) {
	root := t.TempDir()
	src := &fakeSource{doc: testutil.FixtureScopeJSON}
	r := NewResolver(src, root, logx.NewSilent())
	ctx := context.Background()

	domains, err := r.Resolve(ctx, "acme", false)
	testutil.AssertNoError(t, err, "first resolve")
	testutil.AssertEqual(t, len(domains), 2, "domains")
	testutil.AssertEqual(t, src.calls, 1, "fetched once")

	cache := domain.ScopeCachePath(root, "acme")
	testutil.AssertEqual(t, testutil.ReadFile(t, cache), testutil.FixtureScopeJSON, "raw document persisted")

	_, err = r.Resolve(ctx, "acme", false)
	testutil.AssertNoError(t, err, "cached resolve")
	testutil.AssertEqual(t, src.calls, 1, "cache hit")

	_, err = r.Resolve(ctx, "acme", true)
	testutil.AssertNoError(t, err, "forced resolve")
	testutil.AssertEqual(t, src.calls, 2, "force refresh fetches")
}

func TestResolver_CachedScopeWithoutCredentials(t *testing.T) {
	root := t.TempDir()
	cache := domain.ScopeCachePath(root, "acme")
	testutil.AssertNoError(t, os.WriteFile(cache, []byte(testutil.FixtureScopeJSON), 0o644), "seed cache")

	r := NewResolver(nil, root, logx.NewSilent())

	domains, err := r.Resolve(context.Background(), "acme", false)
	testutil.AssertNoError(t, err, "cached scope needs no credentials")
	testutil.AssertEqual(t, len(domains), 2, "domains")

	_, err = r.Resolve(context.Background(), "acme", true)
	testutil.AssertTrue(t, errors.Is(err, domain.ErrCredential), "refresh needs credentials")
}

func TestResolver_MissingCacheWithoutCredentials(t *testing.T) {
	r := NewResolver(nil, t.TempDir(), logx.NewSilent())

	_, err := r.Resolve(context.Background(), "acme", false)
	testutil.AssertTrue(t, errors.Is(err, domain.ErrCredential), "credential error")
	testutil.AssertTrue(t, domain.IsFatal(err), "fatal")
}

func TestResolver_FetchErrorNotCached(t *testing.T) {
	root := t.TempDir()
	fetchErr := domain.NewOpError(domain.ErrFetch, "fetch-scope", "acme", errors.New("boom"))
	r := NewResolver(&fakeSource{err: fetchErr}, root, logx.NewSilent())

	_, err := r.Resolve(context.Background(), "acme", false)
	testutil.AssertTrue(t, errors.Is(err, domain.ErrFetch), "fetch error propagated")
	testutil.AssertFalse(t, testutil.FileExists(domain.ScopeCachePath(root, "acme")), "nothing cached")
}

