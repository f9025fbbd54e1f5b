// internal/core/domain/subdomain_set_test.go
package domain

import (
	"strings"
	"testing"

	"assetmonitor/internal/testutil"
)

func TestSubdomainSet_Add(t *testing.T) {
	var s SubdomainSet

	testutil.AssertTrue(t, s.Add("API.example.com"), "zero value is usable")
	testutil.AssertFalse(t, s.Add(" api.example.com. "), "duplicate after normalization")
	testutil.AssertFalse(t, s.Add("   "), "blank entry")
	testutil.AssertEqual(t, s.Len(), 1, "len")
	testutil.AssertTrue(t, s.Has("Api.Example.Com"), "case-insensitive lookup")
}

func TestReadSubdomainSet(t *testing.T) {
	input := "b.example.com\n\na.example.com\r\nB.example.com\n"

	s, err := ReadSubdomainSet(strings.NewReader(input))
	testutil.AssertNoError(t, err, "read")
	testutil.AssertStrings(t, s.Sorted(), []string{"a.example.com", "b.example.com"}, "sorted entries")
}

func TestSubdomainSet_Difference(t *testing.T) {
	baseline := NewSubdomainSet("a", "b")
	candidate := NewSubdomainSet("a", "b", "d", "c")

	testutil.AssertStrings(t, candidate.Difference(baseline), []string{"c", "d"}, "new entries")
	testutil.AssertEqual(t, len(baseline.Difference(candidate)), 0, "baseline ⊂ candidate")
	testutil.AssertStrings(t, candidate.Difference(nil), []string{"a", "b", "c", "d"}, "nil other")
}
