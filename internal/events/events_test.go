package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewEvent(UserRegistered, map[string]string{"username": "alice"})

	assert.Equal(t, UserRegistered, event.Type)
	assert.False(t, event.OccurredAt.Before(before))
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
}

func TestEvent_ToJSON(t *testing.T) {
	event := Event{
		Type:       TransactionCreated,
		OccurredAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		Payload:    map[string]any{"amount": -42.5},
	}

	body, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "transaction.created", decoded["type"])
	assert.Equal(t, "2024-03-10T12:00:00Z", decoded["occurred_at"])
	assert.Equal(t, -42.5, decoded["payload"].(map[string]any)["amount"])
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}

	assert.NoError(t, p.Publish(context.Background(), NewEvent(UserRegistered, nil)))
	assert.NoError(t, p.Close())
}

func TestNewAMQPPublisher_InvalidURL(t *testing.T) {
	_, err := NewAMQPPublisher("not-a-url", "finance", nil)
	assert.ErrorContains(t, err, "dial AMQP")
}
