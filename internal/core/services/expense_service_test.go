package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/tripmates/trip_planner_app/internal/apperrors"
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
	"github.com/tripmates/trip_planner_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseRepository (based on ExpenseService usage) ---
type MockExpenseRepository struct {
	mock.Mock
	SaveExpenseFn                 func(ctx context.Context, expense domain.Expense) error
	FindExpenseByIDFn             func(ctx context.Context, expenseID string) (*domain.Expense, error)
	FindExpensesByRoomFn          func(ctx context.Context, roomID string) ([]domain.Expense, error)
	FindExpensesByRoomPaginatedFn func(ctx context.Context, roomID string, limit int, nextToken string) ([]domain.Expense, string, error)
	UpdateExpenseFn               func(ctx context.Context, expense domain.Expense) error
	DeleteExpenseFn               func(ctx context.Context, expenseID string) error
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	if m.SaveExpenseFn != nil {
		return m.SaveExpenseFn(ctx, expense)
	}
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	if m.FindExpenseByIDFn != nil {
		return m.FindExpenseByIDFn(ctx, expenseID)
	}
	args := m.Called(ctx, expenseID)
	var expense *domain.Expense
	if args.Get(0) != nil {
		expense = args.Get(0).(*domain.Expense)
	}
	return expense, args.Error(1)
}

func (m *MockExpenseRepository) FindExpensesByRoom(ctx context.Context, roomID string) ([]domain.Expense, error) {
	if m.FindExpensesByRoomFn != nil {
		return m.FindExpensesByRoomFn(ctx, roomID)
	}
	args := m.Called(ctx, roomID)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) FindExpensesByRoomPaginated(ctx context.Context, roomID string, limit int, nextToken string) ([]domain.Expense, string, error) {
	if m.FindExpensesByRoomPaginatedFn != nil {
		return m.FindExpensesByRoomPaginatedFn(ctx, roomID, limit, nextToken)
	}
	args := m.Called(ctx, roomID, limit, nextToken)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.String(1), args.Error(2)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	if m.UpdateExpenseFn != nil {
		return m.UpdateExpenseFn(ctx, expense)
	}
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	if m.DeleteExpenseFn != nil {
		return m.DeleteExpenseFn(ctx, expenseID)
	}
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishExpenseEvent(ctx context.Context, action, expenseID, roomID string) error {
	args := m.Called(ctx, action, expenseID, roomID)
	return args.Error(0)
}

// --- Test Suite ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockRoomRepo    *MockRoomRepository
	mockPublisher   *MockEventPublisher
	service         portssvc.ExpenseSvcFacade
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockRoomRepo = new(MockRoomRepository)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewExpenseService(
		suite.mockExpenseRepo,
		suite.mockRoomRepo,
		services.WithEventPublisher(suite.mockPublisher),
	)
}

// --- CreateExpense Tests ---
func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	payerID := uuid.NewString()

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID}, nil).Once()
	suite.mockRoomRepo.On("FindMemberByID", ctx, payerID).Return(&domain.RoomMember{
		MemberID: payerID, RoomID: roomID, Name: "Alice",
	}, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.MatchedBy(func(expense domain.Expense) bool {
		return expense.RoomID == roomID &&
			expense.PaidBy == payerID &&
			expense.PaidByName == "Alice" &&
			expense.Amount.Equal(decimal.RequireFromString("90")) &&
			len(expense.SplitBetween) == 2
	})).Return(nil).Once()
	suite.mockPublisher.On("PublishExpenseEvent", ctx, "expense.created", mock.AnythingOfType("string"), roomID).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, roomID, payerID, portssvc.CreateExpenseInput{
		Description: "Dinner",
		Amount:      "90",
		Category:    domain.CategoryFood,
		SplitBetween: []portssvc.SplitInput{
			{ParticipantID: payerID, ParticipantName: "Alice", Amount: "45"},
			{ParticipantID: uuid.NewString(), ParticipantName: "Bob", Amount: "45"},
		},
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.NotEmpty(expense.ExpenseID)
	suite.Equal("Alice", expense.PaidByName)
	suite.Equal(payerID, expense.CreatedBy)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockRoomRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_InvalidAmount() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	payerID := uuid.NewString()

	suite.mockRoomRepo.FindRoomByIDFn = func(ctx context.Context, id string) (*domain.Room, error) {
		return &domain.Room{RoomID: id}, nil
	}
	suite.mockRoomRepo.FindMemberByIDFn = func(ctx context.Context, id string) (*domain.RoomMember, error) {
		return &domain.RoomMember{MemberID: id, Name: "Alice"}, nil
	}

	for _, amount := range []string{"-5", "0", "not-a-number"} {
		expense, err := suite.service.CreateExpense(ctx, roomID, payerID, portssvc.CreateExpenseInput{
			Description: "Bad",
			Amount:      amount,
			Category:    domain.CategoryOther,
		})
		suite.Require().Error(err, "amount %q", amount)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(expense)
	}
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_UnknownCategory() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	payerID := uuid.NewString()

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID}, nil).Once()
	suite.mockRoomRepo.On("FindMemberByID", ctx, payerID).Return(&domain.RoomMember{MemberID: payerID, Name: "Alice"}, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, roomID, payerID, portssvc.CreateExpenseInput{
		Description: "Mystery",
		Amount:      "10",
		Category:    domain.ExpenseCategory("Gambling"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(expense)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RoomNotFound() {
	ctx := context.Background()

	suite.mockRoomRepo.On("FindRoomByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	expense, err := suite.service.CreateExpense(ctx, "nope", uuid.NewString(), portssvc.CreateExpenseInput{
		Description: "Dinner",
		Amount:      "90",
		Category:    domain.CategoryFood,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(expense)
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_PublishFailureDoesNotFailRequest() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	payerID := uuid.NewString()

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID}, nil).Once()
	suite.mockRoomRepo.On("FindMemberByID", ctx, payerID).Return(&domain.RoomMember{MemberID: payerID, Name: "Alice"}, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	suite.mockPublisher.On("PublishExpenseEvent", ctx, "expense.created", mock.AnythingOfType("string"), roomID).Return(assert.AnError).Once()

	expense, err := suite.service.CreateExpense(ctx, roomID, payerID, portssvc.CreateExpenseInput{
		Description: "Dinner",
		Amount:      "90",
		Category:    domain.CategoryFood,
	})

	suite.Require().NoError(err)
	suite.NotNil(expense)
	suite.mockPublisher.AssertExpectations(suite.T())
}

// --- UpdateExpense Tests ---
func (suite *ExpenseServiceTestSuite) TestUpdateExpense_OnlyPayerMayUpdate() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	payerID := uuid.NewString()
	intruderID := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(&domain.Expense{
		ExpenseID: expenseID, RoomID: "tokyo-2026", PaidBy: payerID, Amount: decimal.RequireFromString("90"),
	}, nil).Once()

	newDescription := "Updated"
	expense, err := suite.service.UpdateExpense(ctx, expenseID, intruderID, portssvc.UpdateExpenseInput{
		Description: &newDescription,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(expense)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_Success() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	payerID := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(&domain.Expense{
		ExpenseID: expenseID, RoomID: "tokyo-2026", PaidBy: payerID,
		Amount: decimal.RequireFromString("90"), Category: domain.CategoryFood,
	}, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(expense domain.Expense) bool {
		return expense.Amount.Equal(decimal.RequireFromString("120.50")) && expense.LastUpdatedBy == payerID
	})).Return(nil).Once()
	suite.mockPublisher.On("PublishExpenseEvent", ctx, "expense.updated", expenseID, "tokyo-2026").Return(nil).Once()

	newAmount := "120.50"
	expense, err := suite.service.UpdateExpense(ctx, expenseID, payerID, portssvc.UpdateExpenseInput{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.True(expense.Amount.Equal(decimal.RequireFromString("120.50")))
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

// --- DeleteExpense Tests ---
func (suite *ExpenseServiceTestSuite) TestDeleteExpense_Success() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	payerID := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(&domain.Expense{
		ExpenseID: expenseID, RoomID: "tokyo-2026", PaidBy: payerID,
	}, nil).Once()
	suite.mockExpenseRepo.On("DeleteExpense", ctx, expenseID).Return(nil).Once()
	suite.mockPublisher.On("PublishExpenseEvent", ctx, "expense.deleted", expenseID, "tokyo-2026").Return(nil).Once()

	err := suite.service.DeleteExpense(ctx, expenseID, payerID)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_OnlyPayerMayDelete() {
	ctx := context.Background()
	expenseID := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(&domain.Expense{
		ExpenseID: expenseID, RoomID: "tokyo-2026", PaidBy: uuid.NewString(),
	}, nil).Once()

	err := suite.service.DeleteExpense(ctx, expenseID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

// --- ListRoomExpenses Tests ---
func (suite *ExpenseServiceTestSuite) TestListRoomExpenses_Success() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	expenses := []domain.Expense{
		{ExpenseID: uuid.NewString(), RoomID: roomID, Amount: decimal.RequireFromString("90")},
	}
	members := []domain.RoomMember{{MemberID: uuid.NewString(), RoomID: roomID, Name: "Alice"}}

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID}, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByRoomPaginated", ctx, roomID, 20, "").Return(expenses, "next-cursor", nil).Once()
	suite.mockRoomRepo.On("FindRoomMembers", ctx, roomID).Return(members, nil).Once()

	page, err := suite.service.ListRoomExpenses(ctx, roomID, 20, "")

	suite.Require().NoError(err)
	suite.Len(page.Expenses, 1)
	suite.Len(page.Members, 1)
	suite.Equal("next-cursor", page.NextToken)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

// --- GetExpenseSummary Tests ---
func (suite *ExpenseServiceTestSuite) TestGetExpenseSummary_EndToEnd() {
	ctx := context.Background()
	roomID := "tokyo-2026"

	members := []domain.RoomMember{
		{MemberID: "alice", RoomID: roomID, Name: "Alice"},
		{MemberID: "bob", RoomID: roomID, Name: "Bob"},
	}
	expenses := []domain.Expense{
		{
			ExpenseID: uuid.NewString(), RoomID: roomID,
			Amount: decimal.RequireFromString("90"), PaidBy: "alice", PaidByName: "Alice",
			Category: domain.CategoryFood,
			SplitBetween: []domain.ExpenseSplit{
				{ParticipantID: "alice", ParticipantName: "Alice", Amount: decimal.RequireFromString("45")},
				{ParticipantID: "bob", ParticipantName: "Bob", Amount: decimal.RequireFromString("45")},
			},
		},
	}

	suite.mockRoomRepo.On("FindRoomByID", mock.Anything, roomID).Return(&domain.Room{RoomID: roomID}, nil).Once()
	suite.mockRoomRepo.On("FindRoomMembers", mock.Anything, roomID).Return(members, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByRoom", mock.Anything, roomID).Return(expenses, nil).Once()

	summary, err := suite.service.GetExpenseSummary(ctx, roomID)

	suite.Require().NoError(err)
	suite.True(summary.TotalAmount.Equal(decimal.RequireFromString("90")))
	suite.True(summary.ByCategory[domain.CategoryFood].Equal(decimal.RequireFromString("90")))
	suite.Len(summary.Balances, 2)
	suite.Require().Len(summary.Settlements, 1)
	suite.Equal("bob", summary.Settlements[0].FromID)
	suite.Equal("alice", summary.Settlements[0].ToID)
	suite.True(summary.Settlements[0].Amount.Equal(decimal.RequireFromString("45")))
	suite.Len(summary.Members, 2)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseSummary_EmptyRoom() {
	ctx := context.Background()
	roomID := "tokyo-2026"

	suite.mockRoomRepo.On("FindRoomByID", mock.Anything, roomID).Return(&domain.Room{RoomID: roomID}, nil).Once()
	suite.mockRoomRepo.On("FindRoomMembers", mock.Anything, roomID).Return([]domain.RoomMember{}, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByRoom", mock.Anything, roomID).Return([]domain.Expense{}, nil).Once()

	summary, err := suite.service.GetExpenseSummary(ctx, roomID)

	suite.Require().NoError(err)
	suite.True(summary.TotalAmount.IsZero())
	suite.Empty(summary.Balances)
	suite.Empty(summary.Settlements)
	suite.NotNil(summary.ByCategory)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseSummary_RoomNotFound() {
	ctx := context.Background()

	suite.mockRoomRepo.On("FindRoomByID", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound).Once()
	// The expense fetch runs concurrently and may or may not be reached.
	suite.mockExpenseRepo.FindExpensesByRoomFn = func(ctx context.Context, roomID string) ([]domain.Expense, error) {
		return nil, nil
	}

	summary, err := suite.service.GetExpenseSummary(ctx, "nope")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(summary)
}

// --- ExportRoomExpenses Tests ---
func (suite *ExpenseServiceTestSuite) TestExportRoomExpenses_Success() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	expenses := []domain.Expense{
		{ExpenseID: uuid.NewString(), RoomID: roomID, Amount: decimal.RequireFromString("90"), Date: time.Now()},
	}

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID}, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesByRoom", ctx, roomID).Return(expenses, nil).Once()

	exported, err := suite.service.ExportRoomExpenses(ctx, roomID)

	suite.Require().NoError(err)
	suite.Len(exported, 1)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
