package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseEventMessage(t *testing.T) {
	msg := NewExpenseEventMessage("expense.created", "exp-1", "tokyo-2026")

	assert.Equal(t, "expense.created", msg.Action)
	assert.Equal(t, "exp-1", msg.ExpenseID)
	assert.Equal(t, "tokyo-2026", msg.RoomID)
	assert.False(t, msg.Timestamp.IsZero())
	assert.LessOrEqual(t, time.Since(msg.Timestamp), time.Second)
}

func TestExpenseEventMessage_JSONRoundTrip(t *testing.T) {
	msg := &ExpenseEventMessage{
		Action:    "expense.deleted",
		ExpenseID: "exp-9",
		RoomID:    "tokyo-2026",
		Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	body, err := msg.ToJSON()
	require.NoError(t, err)

	parsed, err := ExpenseEventMessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, msg.Action, parsed.Action)
	assert.Equal(t, msg.ExpenseID, parsed.ExpenseID)
	assert.Equal(t, msg.RoomID, parsed.RoomID)
	assert.True(t, parsed.Timestamp.Equal(msg.Timestamp))
}

func TestExpenseEventMessage_InvalidJSON(t *testing.T) {
	_, err := ExpenseEventMessageFromJSON([]byte(`{"action": 42}`))
	assert.Error(t, err)
}
