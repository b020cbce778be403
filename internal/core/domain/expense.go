package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense into one of a fixed set of buckets.
type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "Food"
	CategoryTransportation ExpenseCategory = "Transportation"
	CategoryAccommodation  ExpenseCategory = "Accommodation"
	CategoryActivities     ExpenseCategory = "Activities"
	CategoryShopping       ExpenseCategory = "Shopping"
	CategoryOther          ExpenseCategory = "Other"
)

// ExpenseCategories lists every valid category, in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood,
	CategoryTransportation,
	CategoryAccommodation,
	CategoryActivities,
	CategoryShopping,
	CategoryOther,
}

// IsValid reports whether c is one of the known categories.
func (c ExpenseCategory) IsValid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ExpenseSplit allocates a portion of an expense's cost to one participant.
// ParticipantName is a denormalized snapshot taken when the expense was
// logged; it is intentionally not re-synced if the member later renames
// themselves, so historical summaries show the name as it was.
type ExpenseSplit struct {
	ParticipantID   string          `json:"participantID"` // FK -> room_members.member_id
	ParticipantName string          `json:"participantName"`
	Amount          decimal.Decimal `json:"amount"` // What this participant owes
}

// Expense represents one shared cost logged in a room.
// PaidByName is a snapshot of the payer's name at creation time, same
// rationale as ExpenseSplit.ParticipantName.
//
// The sum of SplitBetween amounts is NOT required to equal Amount; the
// split allocation is caller-controlled and stored as given.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (UUID)
	RoomID       string          `json:"roomID"`    // FK -> rooms.room_id
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"` // Positive, base currency
	PaidBy       string          `json:"paidBy"` // FK -> room_members.member_id
	PaidByName   string          `json:"paidByName"`
	Category     ExpenseCategory `json:"category"`
	Date         time.Time       `json:"date"`
	SplitBetween []ExpenseSplit  `json:"splitBetween"`
	Receipt      string          `json:"receipt"` // URL to an externally stored receipt image
	AuditFields
}
