package usecases

import (
	"testing"

	"assetmonitor/internal/adapters/statestore"
	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/testutil"
)

func TestDiffEngine_Compute(t *testing.T) {
	store := statestore.New(t.TempDir(), logx.NewSilent())
	paths, _, err := store.Prepare("example.com")
	testutil.AssertNoError(t, err, "prepare")

	testutil.WriteLines(t, paths.Baseline, "b.example.com", "a.example.com")
	testutil.WriteLines(t, paths.Candidate, "d.example.com", "a.example.com", "c.example.com", "b.example.com", "c.example.com")

	engine := NewDiffEngine(store, logx.NewSilent())

	diff, err := engine.Compute("example.com", paths)
	testutil.AssertNoError(t, err, "compute")
	testutil.AssertTrue(t, diff.Changed, "changed")
	testutil.AssertStrings(t, diff.NewEntries, []string{"c.example.com", "d.example.com"}, "new entries")

	testutil.AssertStrings(t, testutil.ReadLines(t, paths.Delta), []string{"c.example.com", "d.example.com"}, "delta artifact")
	testutil.AssertStrings(t, testutil.ReadLines(t, paths.Candidate),
		[]string{"a.example.com", "b.example.com", "c.example.com", "d.example.com"}, "candidate sorted and deduplicated")
	// append-only: el orden histórico del baseline se conserva
	testutil.AssertStrings(t, testutil.ReadLines(t, paths.Baseline),
		[]string{"b.example.com", "a.example.com", "c.example.com", "d.example.com"}, "baseline is the union")

	t.Run("second run with unchanged candidate is empty", func(t *testing.T) {
		diff, err := engine.Compute("example.com", paths)
		testutil.AssertNoError(t, err, "compute")
		testutil.AssertFalse(t, diff.Changed, "unchanged")
		testutil.AssertEqual(t, len(diff.NewEntries), 0, "no new entries")
		testutil.AssertEqual(t, len(testutil.ReadLines(t, paths.Baseline)), 4, "baseline not grown")
		testutil.AssertEqual(t, len(testutil.ReadLines(t, paths.Delta)), 0, "delta emptied")
	})
}

func TestDiffEngine_BaselineNeverShrinks(t *testing.T) {
	store := statestore.New(t.TempDir(), logx.NewSilent())
	paths, _, _ := store.Prepare("example.com")

	testutil.WriteLines(t, paths.Baseline, "a.example.com", "b.example.com")
	testutil.WriteLines(t, paths.Candidate, "c.example.com")

	diff, err := NewDiffEngine(store, logx.NewSilent()).Compute("example.com", paths)
	testutil.AssertNoError(t, err, "compute")
	testutil.AssertStrings(t, diff.NewEntries, []string{"c.example.com"}, "new entries")
	testutil.AssertStrings(t, testutil.ReadLines(t, paths.Baseline),
		[]string{"a.example.com", "b.example.com", "c.example.com"}, "vanished hosts stay known")
}

func TestDiffEngine_MissingBaseline(t *testing.T) {
	store := statestore.New(t.TempDir(), logx.NewSilent())
	paths, _, _ := store.Prepare("example.com")
	testutil.WriteLines(t, paths.Candidate, "a.example.com")

	diff, err := NewDiffEngine(store, logx.NewSilent()).Compute(domain.Domain("example.com"), paths)
	testutil.AssertNoError(t, err, "compute")
	testutil.AssertStrings(t, diff.NewEntries, []string{"a.example.com"}, "everything is new")
	testutil.AssertStrings(t, testutil.ReadLines(t, paths.Baseline), []string{"a.example.com"}, "baseline created")
}
