package errors

import (
	"fmt"
	"testing"

	"assetmonitor/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		baseErr := New("base error")
		wrapped := Wrap(baseErr, "additional context")

		testutil.AssertTrue(t, Is(wrapped, baseErr), "should unwrap to base error")
		testutil.AssertEqual(t, wrapped.Error(), "additional context: base error", "message")
	})

	t.Run("returns nil when wrapping nil", func(t *testing.T) {
		testutil.AssertTrue(t, Wrap(nil, "context") == nil, "wrapping nil should return nil")
	})

	t.Run("multiple wraps preserve chain", func(t *testing.T) {
		baseErr := New("base")
		wrapped := Wrap(Wrap(baseErr, "layer 1"), "layer 2")

		testutil.AssertTrue(t, Is(wrapped, baseErr), "should unwrap to base error")
		testutil.AssertEqual(t, wrapped.Error(), "layer 2: layer 1: base", "full chain")
	})
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrRateLimit, "scope page %d", 3)

	testutil.AssertEqual(t, wrapped.Error(), "scope page 3: rate limit exceeded", "message")
	testutil.AssertTrue(t, IsRateLimit(wrapped), "should match sentinel")
	testutil.AssertTrue(t, Wrapf(nil, "x %d", 1) == nil, "nil stays nil")
}

func TestSentinelsThroughFmt(t *testing.T) {
	err := fmt.Errorf("fetch: %w", ErrUnauthorized)

	testutil.AssertTrue(t, IsUnauthorized(err), "fmt wrapping keeps sentinel")
	testutil.AssertFalse(t, IsRateLimit(err), "different sentinel")
}

func TestJoin(t *testing.T) {
	a := New("a")
	joined := Join(a, nil, ErrNotFound)

	testutil.AssertTrue(t, Is(joined, a), "joined contains a")
	testutil.AssertTrue(t, Is(joined, ErrNotFound), "joined contains not found")
	testutil.AssertTrue(t, Join(nil, nil) == nil, "all nil joins to nil")
}
