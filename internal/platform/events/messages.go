package events

import (
	"encoding/json"
	"time"
)

// ExpenseEventMessage is a lightweight notification that an expense changed.
// Consumers fetch the full record themselves; carrying only IDs keeps the
// message valid even if the expense is edited again before consumption.
type ExpenseEventMessage struct {
	Action    string    `json:"action"` // expense.created, expense.updated, expense.deleted
	ExpenseID string    `json:"expenseId"`
	RoomID    string    `json:"roomId"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEventMessage creates a new event message stamped with the
// current time.
func NewExpenseEventMessage(action, expenseID, roomID string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Action:    action,
		ExpenseID: expenseID,
		RoomID:    roomID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
