package services

import (
	"context"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
)

// CreateExpenseInput carries the caller-supplied fields for a new expense.
// The payer is the authenticated member; their name is snapshotted
// server-side at creation time.
type CreateExpenseInput struct {
	Description  string
	Amount       string // Decimal string, parsed and validated by the service
	Category     domain.ExpenseCategory
	Date         *string // RFC 3339; nil defaults to now
	SplitBetween []SplitInput
	Receipt      string
}

// SplitInput is one caller-supplied split line. The split amounts are
// stored as given; the service does not require them to sum to the expense
// amount.
type SplitInput struct {
	ParticipantID   string
	ParticipantName string
	Amount          string
}

// UpdateExpenseInput carries the updatable fields of an expense. Nil/empty
// fields keep their current value, mirroring a partial update.
type UpdateExpenseInput struct {
	Description  *string
	Amount       *string
	Category     *domain.ExpenseCategory
	SplitBetween []SplitInput // nil keeps the existing splits
	Receipt      *string
}

// RoomExpensesPage is one page of a room's expenses plus the member list.
type RoomExpensesPage struct {
	Expenses  []domain.Expense
	Members   []domain.RoomMember
	NextToken string
}

// ExpenseSvcFacade is the service surface for expense CRUD, listing,
// export and the settlement summary.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, roomID, payerID string, input CreateExpenseInput) (*domain.Expense, error)
	ListRoomExpenses(ctx context.Context, roomID string, limit int, nextToken string) (*RoomExpensesPage, error)
	UpdateExpense(ctx context.Context, expenseID, callerID string, input UpdateExpenseInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID, callerID string) error

	// GetExpenseSummary derives the full settlement report for a room:
	// totals, per-category aggregates, per-participant balances, a greedy
	// transfer plan, and the member list. Read-only; recomputed fresh on
	// every call.
	GetExpenseSummary(ctx context.Context, roomID string) (*domain.ExpenseSummary, error)

	// ExportRoomExpenses returns every expense of the room for CSV export,
	// ordered by date descending.
	ExportRoomExpenses(ctx context.Context, roomID string) ([]domain.Expense, error)
}
