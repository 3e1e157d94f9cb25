package kafka

import (
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishBuffering(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "order.created", 1)

	require.NoError(t, p.Publish([]byte("k"), []byte("v")))
	assert.ErrorIs(t, p.Publish([]byte("k"), []byte("v")), ErrBufferFull)

	p.Close()
	p.Close()
	assert.ErrorIs(t, p.Publish([]byte("k"), []byte("v")), ErrProducerClosed)
}

func TestHeaders(t *testing.T) {
	m := kafka.Message{Headers: EventHeaders("OrderCreated", 1)}
	assert.Equal(t, "OrderCreated", Header(m, HeaderEventType))
	assert.Equal(t, "1", Header(m, HeaderEventVersion))
	assert.Empty(t, Header(m, "missing"))
}

func TestUnwrapPayload(t *testing.T) {
	type payload struct {
		OrderID string `json:"order_id"`
	}
	got, err := UnwrapPayload[payload](json.RawMessage(`{"order_id":"o-1"}`))
	require.NoError(t, err)
	assert.Equal(t, "o-1", got.OrderID)

	_, err = UnwrapPayload[payload](json.RawMessage(`[`))
	assert.Error(t, err)
}

func TestInstanceGroup(t *testing.T) {
	assert.Equal(t, "storefront-admin-feed-7f3a", InstanceGroup("storefront-admin-feed", "7f3a"))
	assert.Equal(t, "storefront-admin-feed", InstanceGroup("storefront-admin-feed", ""))
	assert.NotEqual(t, InstanceGroup("feed", "a"), InstanceGroup("feed", "b"), "replicas never share a group")
}
