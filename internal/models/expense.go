package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the database representation of an expense row. Splits live in
// their own table (expense_splits), mirroring how the splits list is an
// embedded collection on the domain entity.
type Expense struct {
	ExpenseID     string          `db:"expense_id"`
	RoomID        string          `db:"room_id"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	PaidBy        string          `db:"paid_by"`
	PaidByName    string          `db:"paid_by_name"`
	Category      string          `db:"category"`
	Date          time.Time       `db:"date"`
	Receipt       string          `db:"receipt"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	LastUpdatedBy string          `db:"last_updated_by"`
}

// ExpenseSplit is the database representation of one split line.
type ExpenseSplit struct {
	ExpenseID       string          `db:"expense_id"`
	ParticipantID   string          `db:"participant_id"`
	ParticipantName string          `db:"participant_name"`
	Amount          decimal.Decimal `db:"amount"`
	Position        int             `db:"position"` // Preserves the caller's split ordering
}
