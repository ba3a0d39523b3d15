package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type rowChange struct {
	Index int
	ID    string
}

func TestBroker_DeliversToAllSubscribers(t *testing.T) {
	broker := NewBroker[rowChange]()
	defer broker.Close()

	ctx := context.Background()
	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(MovedEvent, rowChange{Index: 1, ID: "a"})

	for i, ch := range []<-chan Event[rowChange]{ch1, ch2} {
		select {
		case ev := <-ch:
			require.Equal(t, MovedEvent, ev.Type, "subscriber %d", i)
			require.Equal(t, 1, ev.Payload.Index, "subscriber %d", i)
			require.False(t, ev.Timestamp.IsZero())
		case <-time.After(100 * time.Millisecond):
			require.Fail(t, "timeout waiting for event", "subscriber %d", i)
		}
	}
}

func TestBroker_ContextCancellationClosesChannel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 },
		time.Second, 5*time.Millisecond)
	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_PublishDoesNotBlockWhenFull(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		broker.Publish(UpdatedEvent, 1)
		broker.Publish(UpdatedEvent, 2)
		broker.Publish(UpdatedEvent, 3)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "publish blocked")
	}
	ev := <-ch
	require.Equal(t, 1, ev.Payload)
}

func TestBroker_SubscribeAfterClose(t *testing.T) {
	broker := NewBroker[string]()
	broker.Close()
	broker.Close()

	_, ok := <-broker.Subscribe(context.Background())
	require.False(t, ok)
	require.Equal(t, 0, broker.SubscriberCount())
	broker.Publish(CreatedEvent, "ignored")
}
