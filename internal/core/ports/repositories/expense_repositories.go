package repositories

import (
	"context"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
)

// ExpenseRepository is the persistence surface for expenses and their
// splits. Implementations must treat an expense and its splits as one
// atomic unit per operation; the summary computation relies on reading a
// consistent-enough snapshot, not on cross-record transactions.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	// FindExpenseByID returns apperrors.ErrNotFound when absent.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	// FindExpensesByRoom returns every expense for the room, splits
	// included, ordered by date descending.
	FindExpensesByRoom(ctx context.Context, roomID string) ([]domain.Expense, error)
	// FindExpensesByRoomPaginated returns up to limit expenses after the
	// cursor, plus the next cursor ("" when the page is the last one).
	FindExpensesByRoomPaginated(ctx context.Context, roomID string, limit int, nextToken string) ([]domain.Expense, string, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}
