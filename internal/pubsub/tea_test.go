package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReturnsEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx := context.Background()
	listener := NewContinuousListener(ctx, broker)
	broker.Publish(ReloadEvent, "schema.yaml")

	msg := listener.Listen()()
	ev, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, ReloadEvent, ev.Type)
	require.Equal(t, "schema.yaml", ev.Payload)
}

func TestListenCmd_CancelledContextReturnsNil(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan Event[int])
	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_ClosedChannelReturnsNil(t *testing.T) {
	ch := make(chan Event[int])
	close(ch)
	require.Nil(t, ListenCmd(context.Background(), ch)())
}
