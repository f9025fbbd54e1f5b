// internal/adapters/statestore/fs_test.go
package statestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/testutil"
)

func newStore(t *testing.T) *FS {
	t.Helper()
	return New(t.TempDir(), logx.NewSilent())
}

func TestFS_Prepare(t *testing.T) {
	store := newStore(t)

	t.Run("new domain is uninitialized", func(t *testing.T) {
		paths, state, err := store.Prepare("example.com")
		testutil.AssertNoError(t, err, "prepare")
		testutil.AssertEqual(t, state, domain.StateUninitialized, "state")
		testutil.AssertTrue(t, testutil.FileExists(paths.Dir), "dir created")
	})

	t.Run("empty baseline is tracked", func(t *testing.T) {
		paths := store.Paths("empty.example.com")
		testutil.WriteLines(t, paths.Baseline)

		_, state, err := store.Prepare("empty.example.com")
		testutil.AssertNoError(t, err, "prepare")
		testutil.AssertEqual(t, state, domain.StateTracked, "state")
	})

	t.Run("existing baseline is tracked", func(t *testing.T) {
		paths := store.Paths("tracked.example.com")
		testutil.WriteLines(t, paths.Baseline, "a.tracked.example.com")

		_, state, err := store.Prepare("tracked.example.com")
		testutil.AssertNoError(t, err, "prepare")
		testutil.AssertEqual(t, state, domain.StateTracked, "state")
	})
}

func TestFS_ReadSet(t *testing.T) {
	store := newStore(t)

	set, err := store.ReadSet(filepath.Join(store.Root(), "missing.txt"))
	testutil.AssertNoError(t, err, "missing file")
	testutil.AssertEqual(t, set.Len(), 0, "missing is empty")

	path := filepath.Join(store.Root(), "set.txt")
	testutil.WriteLines(t, path, "B.example.com", "", "a.example.com", "b.example.com")

	set, err = store.ReadSet(path)
	testutil.AssertNoError(t, err, "read")
	testutil.AssertStrings(t, set.Sorted(), []string{"a.example.com", "b.example.com"}, "entries")
}

func TestFS_WriteAndAppend(t *testing.T) {
	store := newStore(t)
	path := filepath.Join(store.Root(), "baseline.txt")

	testutil.AssertNoError(t, store.WriteLines(path, []string{"a", "b"}), "write")
	testutil.AssertNoError(t, store.AppendLines(path, []string{"c"}), "append")
	testutil.AssertNoError(t, store.AppendLines(path, nil), "append nothing")
	testutil.AssertEqual(t, testutil.ReadFile(t, path), "a\nb\nc\n", "content")

	t.Run("append after missing newline", func(t *testing.T) {
		raw := filepath.Join(store.Root(), "raw.txt")
		testutil.AssertNoError(t, os.WriteFile(raw, []byte("x"), 0o644), "seed")
		testutil.AssertNoError(t, store.AppendLines(raw, []string{"y"}), "append")
		testutil.AssertEqual(t, testutil.ReadFile(t, raw), "x\ny\n", "newline inserted")
	})

	t.Run("write empty truncates", func(t *testing.T) {
		testutil.AssertNoError(t, store.WriteLines(path, nil), "write empty")
		testutil.AssertEqual(t, testutil.ReadFile(t, path), "", "truncated")
	})
}

func TestFS_ReadLines(t *testing.T) {
	store := newStore(t)
	path := filepath.Join(store.Root(), "probe.txt")
	testutil.WriteLines(t, path, "https://a.example.com [200]", "", "https://B.example.com")

	lines, err := store.ReadLines(path)
	testutil.AssertNoError(t, err, "read")
	testutil.AssertStrings(t, lines, []string{"https://a.example.com [200]", "https://B.example.com"}, "verbatim lines")

	lines, err = store.ReadLines(filepath.Join(store.Root(), "nope"))
	testutil.AssertNoError(t, err, "missing")
	testutil.AssertEqual(t, len(lines), 0, "missing is nil")
}

func TestFS_CopyAndMove(t *testing.T) {
	store := newStore(t)
	src := filepath.Join(store.Root(), "src.txt")
	dst := filepath.Join(store.Root(), "dst.txt")
	testutil.WriteLines(t, src, "a")

	testutil.AssertNoError(t, store.Copy(src, dst), "copy")
	testutil.AssertEqual(t, testutil.ReadFile(t, dst), "a\n", "copied")

	staging := filepath.Join(store.Root(), "staging")
	target := filepath.Join(store.Root(), "screenshots")
	testutil.WriteLines(t, filepath.Join(staging, "shot.png"), "png")
	testutil.WriteLines(t, filepath.Join(target, "old.png"), "old")

	testutil.AssertNoError(t, store.MoveDir(staging, target), "move")
	testutil.AssertFalse(t, store.Exists(staging), "staging gone")
	testutil.AssertTrue(t, store.Exists(filepath.Join(target, "shot.png")), "moved content")
	testutil.AssertFalse(t, store.Exists(filepath.Join(target, "old.png")), "previous target replaced")

	err := store.MoveDir(filepath.Join(store.Root(), "absent"), target)
	testutil.AssertTrue(t, errors.Is(err, domain.ErrIO), "missing source is ErrIO")
}

func TestFS_Remove(t *testing.T) {
	store := newStore(t)
	path := filepath.Join(store.Root(), "subdomains.txt")
	testutil.WriteLines(t, path, "a.example.com")

	testutil.AssertNoError(t, store.Remove(path), "remove existing")
	testutil.AssertFalse(t, store.Exists(path), "file gone")
	testutil.AssertNoError(t, store.Remove(path), "remove missing is not an error")

	t.Run("directory with content", func(t *testing.T) {
		dir := filepath.Join(store.Root(), "httpx_output")
		testutil.WriteLines(t, filepath.Join(dir, "screenshot", "index.png"), "png")

		testutil.AssertNoError(t, store.Remove(dir), "remove dir")
		testutil.AssertFalse(t, store.Exists(dir), "dir gone")
	})
}
