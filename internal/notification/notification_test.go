package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func TestNewChangesMessage(t *testing.T) {
	msg := NewChangesMessage("u1", "my-app", "my-app-abc")
	assert.Equal(t, Message{
		UserID: "u1",
		Title:  "New Code Changes",
		Body:   "You have new changes to reflect on in my-app",
		URL:    "/dashboard#my-app-abc",
	}, msg)
}

func TestHTTPSender(t *testing.T) {
	var (
		got    Message
		gotKey string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got.UserID == "fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	s := NewHTTPSender(ts.URL, "key-1", ts.Client())

	require.NoError(t, s.Send(context.Background(), NewChangesMessage("u1", "app", "app-1")))
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "/dashboard#app-1", got.URL)

	err := s.Send(context.Background(), Message{UserID: "fail"})
	assert.ErrorContains(t, err, "502")

	noKey := NewHTTPSender(ts.URL, "", ts.Client())
	require.NoError(t, noKey.Send(context.Background(), Message{UserID: "u2"}))
	assert.Empty(t, gotKey)
}

type fakePublisher struct {
	subject string
	data    []byte
	err     error
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	p.subject, p.data = subject, data
	return p.err
}

func TestNATSSender(t *testing.T) {
	pub := &fakePublisher{}
	s := NewNATSSender(pub, "ptm.notifications")

	require.NoError(t, s.Send(context.Background(), NewChangesMessage("u1", "app", "app-1")))
	assert.Equal(t, "ptm.notifications", pub.subject)
	assert.JSONEq(t, `{"userId":"u1","title":"New Code Changes","body":"You have new changes to reflect on in app","url":"/dashboard#app-1"}`, string(pub.data))

	pub.err = errors.New("disconnected")
	assert.Error(t, s.Send(context.Background(), Message{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{}), context.Canceled)
}

type blockingSender struct {
	release chan struct{}
	calls   atomic.Int32
	mu      sync.Mutex
	msgs    []Message
	err     error
}

func (s *blockingSender) Send(ctx context.Context, msg Message) error {
	s.calls.Add(1)
	select {
	case <-s.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
	return s.err
}

func TestDispatcher_DoesNotBlock(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	d := NewDispatcher(sender, time.Second, &mockLogger{})

	start := time.Now()
	d.Notify("u1", "app", "app-1")
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(sender.release)
	require.NoError(t, d.Wait(context.Background()))
	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "/dashboard#app-1", sender.msgs[0].URL)
}

func TestDispatcher_SwallowsErrorsAndTimesOut(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	d := NewDispatcher(sender, 20*time.Millisecond, &mockLogger{})

	d.Notify("u1", "app", "app-1")
	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, int32(1), sender.calls.Load())
	assert.Empty(t, sender.msgs)

	failing := &blockingSender{release: make(chan struct{}), err: errors.New("boom")}
	close(failing.release)
	d = NewDispatcher(failing, time.Second, &mockLogger{})
	d.Notify("u1", "app", "app-2")
	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, int32(1), failing.calls.Load())
}

func TestDispatcher_WaitHonoursContext(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	defer close(sender.release)
	d := NewDispatcher(sender, time.Minute, &mockLogger{})
	d.Notify("u1", "app", "app-1")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)
}
