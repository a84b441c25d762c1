package message_broker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribeRoundtrip(t *testing.T) {
	broker := NewChannelMessageBroker()
	defer broker.Close()
	ctx := context.Background()

	messages, err := broker.Subscribe(ctx, "chat.exchanges", "")
	require.NoError(t, err)

	require.NoError(t, broker.Publish(ctx, "chat.exchanges", "", []byte("payload")))

	msg := <-messages
	assert.Equal(t, "chat.exchanges", msg.Topic)
	assert.Equal(t, []byte("payload"), msg.Payload)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestPublishIsNonBlocking(t *testing.T) {
	broker := NewChannelMessageBroker()
	defer broker.Close()
	ctx := context.Background()

	// Fill the topic buffer with no subscriber draining it.
	var err error
	for i := 0; i < 200; i++ {
		if err = broker.Publish(ctx, "chat.exchanges", "", []byte("x")); err != nil {
			break
		}
	}
	assert.Error(t, err, "a full topic must error instead of blocking the chat turn")
}

func TestRoutingKeysAreIsolated(t *testing.T) {
	broker := NewChannelMessageBroker()
	defer broker.Close()
	ctx := context.Background()

	a, err := broker.Subscribe(ctx, "topic", "a")
	require.NoError(t, err)
	_, err = broker.Subscribe(ctx, "topic", "b")
	require.NoError(t, err)

	require.NoError(t, broker.Publish(ctx, "topic", "a", []byte("for-a")))

	msg := <-a
	assert.Equal(t, "a", msg.RoutingKey)
	assert.Equal(t, 2, broker.TopicCount())
}

func TestClosedBrokerRejectsOperations(t *testing.T) {
	broker := NewChannelMessageBroker()
	require.NoError(t, broker.Close())

	err := broker.Publish(context.Background(), "topic", "", []byte("x"))
	assert.Error(t, err)

	_, err = broker.Subscribe(context.Background(), "topic", "")
	assert.Error(t, err)

	assert.NoError(t, broker.Close(), "closing twice is fine")
}
