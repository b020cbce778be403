package domain

import "github.com/shopspring/decimal"

// ParticipantBalance is the per-participant position derived from a room's
// expenses. It is recomputed on every summary request and never persisted.
// A room member with no expense participation does not get a balance entry.
type ParticipantBalance struct {
	ParticipantID   string          `json:"participantID"`
	ParticipantName string          `json:"participantName"`
	Paid            decimal.Decimal `json:"paid"`       // Sum of amounts this participant paid
	Owed            decimal.Decimal `json:"owed"`       // Sum of split amounts naming this participant
	NetBalance      decimal.Decimal `json:"netBalance"` // Paid - Owed; positive means owed money
}

// Settlement is one recommended point-to-point transfer. Purely advisory
// output; produced fresh on each summary request.
type Settlement struct {
	FromID   string          `json:"fromID"`
	FromName string          `json:"fromName"`
	ToID     string          `json:"toID"`
	ToName   string          `json:"toName"`
	Amount   decimal.Decimal `json:"amount"` // Always positive, rounded to 2 dp
}

// ExpenseSummary is the full settlement report for a room.
type ExpenseSummary struct {
	TotalAmount decimal.Decimal                     `json:"totalAmount"`
	ByCategory  map[ExpenseCategory]decimal.Decimal `json:"byCategory"`
	Balances    []ParticipantBalance                `json:"balances"`
	Settlements []Settlement                        `json:"settlements"`
	Members     []RoomMember                        `json:"members"`
}
