package services

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeSender records sends and fails for a configured set of recipients
type fakeSender struct {
	blocked map[string]bool
	sent    []string
}

func (f *fakeSender) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if f.blocked[to.Recipient()] {
		return nil, errors.New("telegram: bot was blocked by the user")
	}
	f.sent = append(f.sent, to.Recipient())
	return &telebot.Message{}, nil
}

func newStoreWithUsers(t *testing.T, ids []int64) *UserStore {
	t.Helper()
	store := NewUserStore(filepath.Join(t.TempDir(), "users.json"), testLogger())
	for _, id := range ids {
		if _, err := store.Add(id); err != nil {
			t.Fatalf("failed to seed user %d: %v", id, err)
		}
	}
	return store
}

func TestBroadcast_CountsPartialFailures(t *testing.T) {
	store := newStoreWithUsers(t, []int64{1, 2, 3, 4, 5})
	sender := &fakeSender{blocked: map[string]bool{"2": true, "4": true}}

	svc := NewBroadcastService(store, 0, testLogger())
	summary := svc.Broadcast(sender, "hello")

	if summary.Delivered != 3 {
		t.Errorf("Delivered = %d, want 3", summary.Delivered)
	}
	if summary.Failed != 2 {
		t.Errorf("Failed = %d, want 2", summary.Failed)
	}
	if len(sender.sent) != 3 {
		t.Errorf("sent to %d recipients, want 3", len(sender.sent))
	}
}

func TestBroadcast_FailureDoesNotAbortLoop(t *testing.T) {
	store := newStoreWithUsers(t, []int64{10, 11, 12})
	sender := &fakeSender{blocked: map[string]bool{"10": true}}

	svc := NewBroadcastService(store, 0, testLogger())
	summary := svc.Broadcast(sender, "hi")

	// The first recipient fails; the remaining two must still receive it
	if summary.Delivered != 2 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 2 delivered / 1 failed", summary)
	}
}

func TestBroadcast_EmptyStore(t *testing.T) {
	store := newStoreWithUsers(t, nil)
	sender := &fakeSender{}

	svc := NewBroadcastService(store, 0, testLogger())
	summary := svc.Broadcast(sender, "nobody home")

	if summary.Delivered != 0 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want zeros", summary)
	}
}
