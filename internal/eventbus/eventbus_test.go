package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"modgrip/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type collector struct {
	mu     sync.Mutex
	events []DomainEvent
	got    chan struct{}
}

func newCollector() *collector {
	return &collector{got: make(chan struct{}, 64)}
}

func (c *collector) handle(e DomainEvent) {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
	c.got <- struct{}{}
}

func (c *collector) wait(t *testing.T, n int) []DomainEvent {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-c.got:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DomainEvent(nil), c.events...)
}

func TestPublishDeliversInOrder(t *testing.T) {
	bus := New(zap.NewNop())
	defer bus.Close()

	c := newCollector()
	bus.Subscribe(EventModuleDeleted, c.handle)

	for id := 1; id <= 3; id++ {
		bus.Publish(ModuleDeletedEvent{ID: id})
	}

	events := c.wait(t, 3)
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.(ModuleDeletedEvent).ID)
	}
}

func TestSubscribeFiltersByType(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	loaded := newCollector()
	failed := newCollector()
	bus.Subscribe(EventModulesLoaded, loaded.handle)
	bus.Subscribe(EventSearchFailed, failed.handle)

	bus.Publish(SearchFailedEvent{Query: domain.ModuleQuery{FreeText: "x"}})

	events := failed.wait(t, 1)
	assert.Equal(t, "x", events[0].(SearchFailedEvent).Query.FreeText)

	loaded.mu.Lock()
	assert.Empty(t, loaded.events)
	loaded.mu.Unlock()
}

func TestUnsubscribe(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	first := newCollector()
	second := newCollector()
	unsubscribe := bus.Subscribe(EventUserLoaded, first.handle)
	bus.Subscribe(EventUserLoaded, second.handle)

	unsubscribe()
	bus.Publish(UserLoadedEvent{User: domain.User{Username: "ops"}})

	second.wait(t, 1)
	first.mu.Lock()
	assert.Empty(t, first.events)
	first.mu.Unlock()
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	bus := New(zap.NewNop())
	defer bus.Close()

	c := newCollector()
	bus.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	bus.Subscribe(EventError, c.handle)

	bus.Publish(ErrorEvent{Message: "first"})
	bus.Publish(ErrorEvent{Message: "second"})

	events := c.wait(t, 2)
	assert.Equal(t, "second", events[1].(ErrorEvent).Message)
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := New(nil)
	bus.Close()
	bus.Close()

	// Publishing after close must not block.
	bus.Publish(ConfigSavedEvent{Path: "x"})
}

func TestCloseWaitsForRunningHandler(t *testing.T) {
	bus := New(zap.NewNop())

	started := make(chan struct{})
	release := make(chan struct{})
	var finished bool
	bus.Subscribe(EventError, func(DomainEvent) {
		close(started)
		<-release
		finished = true
	})

	bus.Publish(ErrorEvent{Message: "slow"})
	<-started

	closed := make(chan struct{})
	go func() {
		bus.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a handler was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after the handler finished")
	}
	assert.True(t, finished)
}
