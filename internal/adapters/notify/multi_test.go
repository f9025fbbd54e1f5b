package notify

import (
	"context"
	"errors"
	"testing"

	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/testutil"
)

type fakeNotifier struct {
	name  string
	err   error
	calls int
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Notify(ctx context.Context, msg ports.Message) error {
	f.calls++
	return f.err
}

func TestMulti_Notify(t *testing.T) {
	failing := &fakeNotifier{name: "discord", err: errors.New("down")}
	ok := &fakeNotifier{name: "slack"}
	m := NewMulti(failing, nil, ok)

	testutil.AssertEqual(t, m.Len(), 2, "nil skipped")
	testutil.AssertEqual(t, m.Name(), "discord+slack", "name")

	err := m.Notify(context.Background(), ports.Message{Text: "x"})
	testutil.AssertTrue(t, errors.Is(err, failing.err), "joined error")
	testutil.AssertEqual(t, ok.calls, 1, "second channel still notified")
}

func TestMulti_Empty(t *testing.T) {
	testutil.AssertNoError(t, NewMulti().Notify(context.Background(), ports.Message{}), "no channels")
}
