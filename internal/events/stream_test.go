package events

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessageRestoresEventAndAttempt(t *testing.T) {
	recipient := int64(42)
	evt := Event{
		Type:          TypeInvitationSent,
		WorkspaceID:   7,
		WorkspaceName: "Research",
		ActorID:       1,
		ActorName:     "Ada",
		RecipientID:   &recipient,
		Email:         "bob@example.com",
		Token:         "abc",
		Role:          "viewer",
		OccurredAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	values, err := encodeMessage(evt, 3)
	require.NoError(t, err)

	// Redis hands values back as strings.
	raw := redis.XMessage{ID: "1-0", Values: map[string]any{
		"event_type": values["event_type"],
		"payload":    values["payload"],
		"attempt":    "3",
	}}
	msg, err := decodeMessage(raw)
	require.NoError(t, err)

	assert.Equal(t, "1-0", msg.ID)
	assert.Equal(t, 3, msg.Attempt)
	assert.Equal(t, evt, msg.Event)
}

func TestDecodeMessageRejectsMalformed(t *testing.T) {
	_, err := decodeMessage(redis.XMessage{ID: "1-0", Values: map[string]any{}})
	assert.Error(t, err)

	_, err = decodeMessage(redis.XMessage{ID: "1-0", Values: map[string]any{"payload": "{not json"}})
	assert.Error(t, err)

	_, err = decodeMessage(redis.XMessage{ID: "1-0", Values: map[string]any{"payload": `{"workspaceID":1}`}})
	assert.Error(t, err, "event type is required")
}

func TestDecodeMessageDefaultsAttempt(t *testing.T) {
	msg, err := decodeMessage(redis.XMessage{ID: "2-0", Values: map[string]any{"payload": `{"type":"member.added"}`}})
	require.NoError(t, err)
	assert.Equal(t, 1, msg.Attempt)
	assert.Equal(t, TypeMemberAdded, msg.Event.Type)
}
