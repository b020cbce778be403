package mapping

import (
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	"github.com/tripmates/trip_planner_app/internal/models"
)

// ToModelExpense converts a domain.Expense to its database model. Splits
// are mapped separately via ToModelExpenseSplits.
func ToModelExpense(expense domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:     expense.ExpenseID,
		RoomID:        expense.RoomID,
		Description:   expense.Description,
		Amount:        expense.Amount,
		PaidBy:        expense.PaidBy,
		PaidByName:    expense.PaidByName,
		Category:      string(expense.Category),
		Date:          expense.Date,
		Receipt:       expense.Receipt,
		CreatedAt:     expense.CreatedAt,
		CreatedBy:     expense.CreatedBy,
		LastUpdatedAt: expense.LastUpdatedAt,
		LastUpdatedBy: expense.LastUpdatedBy,
	}
}

// ToModelExpenseSplits converts the split list of an expense, assigning
// positions so the caller's ordering survives a round trip.
func ToModelExpenseSplits(expense domain.Expense) []models.ExpenseSplit {
	splits := make([]models.ExpenseSplit, len(expense.SplitBetween))
	for i, s := range expense.SplitBetween {
		splits[i] = models.ExpenseSplit{
			ExpenseID:       expense.ExpenseID,
			ParticipantID:   s.ParticipantID,
			ParticipantName: s.ParticipantName,
			Amount:          s.Amount,
			Position:        i,
		}
	}
	return splits
}

// ToDomainExpense converts a database expense row plus its split rows to
// the domain entity. Split rows must already be ordered by position.
func ToDomainExpense(m models.Expense, splits []models.ExpenseSplit) domain.Expense {
	expense := domain.Expense{
		ExpenseID:    m.ExpenseID,
		RoomID:       m.RoomID,
		Description:  m.Description,
		Amount:       m.Amount,
		PaidBy:       m.PaidBy,
		PaidByName:   m.PaidByName,
		Category:     domain.ExpenseCategory(m.Category),
		Date:         m.Date,
		Receipt:      m.Receipt,
		SplitBetween: make([]domain.ExpenseSplit, len(splits)),
	}
	expense.CreatedAt = m.CreatedAt
	expense.CreatedBy = m.CreatedBy
	expense.LastUpdatedAt = m.LastUpdatedAt
	expense.LastUpdatedBy = m.LastUpdatedBy
	for i, s := range splits {
		expense.SplitBetween[i] = domain.ExpenseSplit{
			ParticipantID:   s.ParticipantID,
			ParticipantName: s.ParticipantName,
			Amount:          s.Amount,
		}
	}
	return expense
}
