package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestBusPublishReachesAllSubscribers(t *testing.T) {
	bus := New(zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	calls := 0
	listener := func(_ context.Context, _ Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		wg.Done()
		return nil
	}

	bus.Subscribe("request.created", listener)
	bus.Subscribe("request.created", listener)
	bus.Publish(context.Background(), testEvent{name: "request.created"})

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("слушатели не были вызваны")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}

func TestBusIgnoresUnknownEvents(t *testing.T) {
	bus := New(zap.NewNop())

	called := make(chan struct{}, 1)
	bus.Subscribe("request.created", func(_ context.Context, _ Event) error {
		called <- struct{}{}
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "request.deleted"})

	select {
	case <-called:
		t.Fatal("слушатель не должен был сработать")
	case <-time.After(100 * time.Millisecond):
	}
}
