package dto

import (
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ParticipantBalanceResponse is one participant's line in the balance
// summary.
type ParticipantBalanceResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Paid       decimal.Decimal `json:"paid"`
	Owed       decimal.Decimal `json:"owed"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

// SettlementResponse is one suggested transfer. The from/to keys carry
// display names; the *Id keys carry member IDs.
type SettlementResponse struct {
	From   string          `json:"from"`
	FromID string          `json:"fromId"`
	To     string          `json:"to"`
	ToID   string          `json:"toId"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseSummaryResponse is the full settlement report for a room.
type ExpenseSummaryResponse struct {
	TotalAmount        decimal.Decimal              `json:"totalAmount"`
	ExpensesByCategory map[string]decimal.Decimal   `json:"expensesByCategory"`
	BalanceSummary     []ParticipantBalanceResponse `json:"balanceSummary"`
	Settlements        []SettlementResponse         `json:"settlements"`
	RoomMembers        []RoomMemberResponse         `json:"roomMembers"`
}

// ToExpenseSummaryResponse converts a domain.ExpenseSummary to the response
// DTO. Slices are always non-nil so empty rooms serialize as [] rather
// than null.
func ToExpenseSummaryResponse(summary *domain.ExpenseSummary) ExpenseSummaryResponse {
	byCategory := make(map[string]decimal.Decimal, len(summary.ByCategory))
	for category, total := range summary.ByCategory {
		byCategory[string(category)] = total
	}

	balances := make([]ParticipantBalanceResponse, len(summary.Balances))
	for i, b := range summary.Balances {
		balances[i] = ParticipantBalanceResponse{
			ID:         b.ParticipantID,
			Name:       b.ParticipantName,
			Paid:       b.Paid,
			Owed:       b.Owed,
			NetBalance: b.NetBalance,
		}
	}

	settlements := make([]SettlementResponse, len(summary.Settlements))
	for i, s := range summary.Settlements {
		settlements[i] = SettlementResponse{
			From:   s.FromName,
			FromID: s.FromID,
			To:     s.ToName,
			ToID:   s.ToID,
			Amount: s.Amount,
		}
	}

	return ExpenseSummaryResponse{
		TotalAmount:        summary.TotalAmount,
		ExpensesByCategory: byCategory,
		BalanceSummary:     balances,
		Settlements:        settlements,
		RoomMembers:        ToRoomMemberResponses(summary.Members),
	}
}
