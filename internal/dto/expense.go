package dto

import (
	"time"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// SplitRequest is one split line in an expense request. Amounts travel as
// strings so clients can't lose precision to float encoding.
type SplitRequest struct {
	ParticipantID   string `json:"participantId" binding:"required"`
	ParticipantName string `json:"participantName"`
	Amount          string `json:"amount" binding:"required"`
}

// CreateExpenseRequest defines the data needed to log an expense.
type CreateExpenseRequest struct {
	Description  string         `json:"description" binding:"required,max=256"`
	Amount       string         `json:"amount" binding:"required"`
	Category     string         `json:"category" binding:"required,expensecategory"`
	Date         *string        `json:"date"` // RFC 3339; omitted means now
	SplitBetween []SplitRequest `json:"splitBetween" binding:"dive"`
	Receipt      string         `json:"receipt"`
}

// UpdateExpenseRequest defines the updatable fields of an expense.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateExpenseRequest struct {
	Description  *string        `json:"description"`
	Amount       *string        `json:"amount"`
	Category     *string        `json:"category" binding:"omitempty,expensecategory"`
	SplitBetween []SplitRequest `json:"splitBetween" binding:"omitempty,dive"`
	Receipt      *string        `json:"receipt"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// SplitResponse is one split line of an expense.
type SplitResponse struct {
	ParticipantID   string          `json:"participantId"`
	ParticipantName string          `json:"participantName"`
	Amount          decimal.Decimal `json:"amount"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID    string          `json:"expenseId"`
	RoomID       string          `json:"roomId"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	PaidBy       string          `json:"paidBy"`
	PaidByName   string          `json:"paidByName"`
	Category     string          `json:"category"`
	Date         time.Time       `json:"date"`
	SplitBetween []SplitResponse `json:"splitBetween"`
	Receipt      string          `json:"receipt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListExpensesResponse is one page of a room's expenses plus the member
// list, so clients can render payer pickers without a second call.
type ListExpensesResponse struct {
	Expenses    []ExpenseResponse    `json:"expenses"`
	RoomMembers []RoomMemberResponse `json:"roomMembers"`
	NextToken   string               `json:"nextToken,omitempty"`
}

// ExpenseCSVRow is one line of the expense export.
type ExpenseCSVRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Category    string `csv:"category"`
	Amount      string `csv:"amount"`
	PaidByName  string `csv:"paid_by"`
	SplitCount  int    `csv:"split_count"`
}

// ToCreateExpenseInput converts the request into the service input.
func (r CreateExpenseRequest) ToCreateExpenseInput() portssvc.CreateExpenseInput {
	return portssvc.CreateExpenseInput{
		Description:  r.Description,
		Amount:       r.Amount,
		Category:     domain.ExpenseCategory(r.Category),
		Date:         r.Date,
		SplitBetween: toSplitInputs(r.SplitBetween),
		Receipt:      r.Receipt,
	}
}

// ToUpdateExpenseInput converts the request into the service input.
func (r UpdateExpenseRequest) ToUpdateExpenseInput() portssvc.UpdateExpenseInput {
	input := portssvc.UpdateExpenseInput{
		Description: r.Description,
		Amount:      r.Amount,
		Receipt:     r.Receipt,
	}
	if r.Category != nil {
		category := domain.ExpenseCategory(*r.Category)
		input.Category = &category
	}
	if r.SplitBetween != nil {
		input.SplitBetween = toSplitInputs(r.SplitBetween)
	}
	return input
}

func toSplitInputs(splits []SplitRequest) []portssvc.SplitInput {
	inputs := make([]portssvc.SplitInput, len(splits))
	for i, s := range splits {
		inputs[i] = portssvc.SplitInput{
			ParticipantID:   s.ParticipantID,
			ParticipantName: s.ParticipantName,
			Amount:          s.Amount,
		}
	}
	return inputs
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(expense *domain.Expense) ExpenseResponse {
	splits := make([]SplitResponse, len(expense.SplitBetween))
	for i, s := range expense.SplitBetween {
		splits[i] = SplitResponse{
			ParticipantID:   s.ParticipantID,
			ParticipantName: s.ParticipantName,
			Amount:          s.Amount,
		}
	}
	return ExpenseResponse{
		ExpenseID:    expense.ExpenseID,
		RoomID:       expense.RoomID,
		Description:  expense.Description,
		Amount:       expense.Amount,
		PaidBy:       expense.PaidBy,
		PaidByName:   expense.PaidByName,
		Category:     string(expense.Category),
		Date:         expense.Date,
		SplitBetween: splits,
		Receipt:      expense.Receipt,
		CreatedAt:    expense.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to []ExpenseResponse.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = ToExpenseResponse(&expense)
	}
	return responses
}

// ToListExpensesResponse assembles the paginated listing payload.
func ToListExpensesResponse(page *portssvc.RoomExpensesPage) ListExpensesResponse {
	return ListExpensesResponse{
		Expenses:    ToExpenseResponses(page.Expenses),
		RoomMembers: ToRoomMemberResponses(page.Members),
		NextToken:   page.NextToken,
	}
}

// ToExpenseCSVRows converts expenses into export rows.
func ToExpenseCSVRows(expenses []domain.Expense) []ExpenseCSVRow {
	rows := make([]ExpenseCSVRow, len(expenses))
	for i, expense := range expenses {
		rows[i] = ExpenseCSVRow{
			Date:        expense.Date.Format("2006-01-02"),
			Description: expense.Description,
			Category:    string(expense.Category),
			Amount:      expense.Amount.StringFixed(2),
			PaidByName:  expense.PaidByName,
			SplitCount:  len(expense.SplitBetween),
		}
	}
	return rows
}
