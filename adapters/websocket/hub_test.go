package websocket

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastWhileClientsChurn(t *testing.T) {
	hub := NewHub()
	hub.Run()

	// Registrations and broadcasts arrive on different goroutines in
	// production; interleaving them must not corrupt the client set.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			hub.Register(NewClient(nil, fmt.Sprintf("session-%d", i)))
		}
	}()

	for i := 0; i < 200; i++ {
		hub.Broadcast([]byte("exchange"))
	}
	<-done

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 200
	}, time.Second, 5*time.Millisecond)
}

func TestHubSendToSession(t *testing.T) {
	hub := NewHub()
	hub.Run()

	first := NewClient(nil, "session-a")
	second := NewClient(nil, "session-b")
	hub.Register(first)
	hub.Register(second)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.SendToSession("session-b", []byte("targeted")))
	assert.Equal(t, []byte("targeted"), <-second.send)
	assert.Empty(t, first.send, "only the addressed session receives the message")

	err := hub.SendToSession("session-unknown", []byte("x"))
	assert.Error(t, err)
}

func TestHubUnregisterClosesClient(t *testing.T) {
	hub := NewHub()
	hub.Run()

	client := NewClient(nil, "session-a")
	hub.Register(client)
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0 && client.IsClosed()
	}, time.Second, 5*time.Millisecond)
}

func TestClientSendDuringCloseDoesNotPanic(t *testing.T) {
	for i := 0; i < 100; i++ {
		client := NewClient(nil, "session-a")

		closed := make(chan struct{})
		go func() {
			client.Close()
			close(closed)
		}()

		client.SendMessage([]byte("x"))
		<-closed
	}
}
