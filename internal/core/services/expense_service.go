package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripmates/trip_planner_app/internal/apperrors"
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portsrepo "github.com/tripmates/trip_planner_app/internal/core/ports/repositories"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
	"github.com/tripmates/trip_planner_app/internal/utils/splitting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// expenseService implements the ExpenseSvcFacade interface.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
	roomRepo    portsrepo.RoomReader
	events      portssvc.EventPublisher
}

// ExpenseServiceOption is a functional option for configuring the expense service.
type ExpenseServiceOption func(*expenseService)

// WithEventPublisher sets the event publisher used to announce expense
// mutations. Without it, no events are emitted.
func WithEventPublisher(publisher portssvc.EventPublisher) ExpenseServiceOption {
	return func(s *expenseService) {
		s.events = publisher
	}
}

// NewExpenseService creates a new expense service with the provided options.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepository, roomRepo portsrepo.RoomReader, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo: expenseRepo,
		roomRepo:    roomRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure expenseService implements the ExpenseSvcFacade interface.
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense validates and persists a new expense. The payer is the
// authenticated member; their display name is snapshotted from the
// membership record so later renames don't rewrite history.
func (s *expenseService) CreateExpense(ctx context.Context, roomID, payerID string, input portssvc.CreateExpenseInput) (*domain.Expense, error) {
	if _, err := s.roomRepo.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}

	payer, err := s.roomRepo.FindMemberByID(ctx, payerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve payer", slog.String("payer_id", payerID))
		return nil, err
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("expense amount must be a positive decimal: %w", apperrors.ErrValidation)
	}
	if !input.Category.IsValid() {
		return nil, fmt.Errorf("unknown expense category %q: %w", input.Category, apperrors.ErrValidation)
	}

	date := time.Now()
	if input.Date != nil {
		parsed, err := time.Parse(time.RFC3339, *input.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid expense date: %w", apperrors.ErrValidation)
		}
		date = parsed
	}

	splits, err := parseSplits(input.SplitBetween)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		RoomID:       roomID,
		Description:  input.Description,
		Amount:       amount,
		PaidBy:       payer.MemberID,
		PaidByName:   payer.Name,
		Category:     input.Category,
		Date:         date,
		SplitBetween: splits,
		Receipt:      input.Receipt,
	}
	expense.CreatedAt = now
	expense.CreatedBy = payer.MemberID
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = payer.MemberID

	// Split totals are caller-controlled and stored as given; a mismatch is
	// only worth a warning, not a rejection.
	if total := sumSplits(splits); len(splits) > 0 && !total.Equal(amount) {
		s.LogWarn(ctx, "Expense splits do not sum to the expense amount",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("amount", amount.String()),
			slog.String("split_total", total.String()))
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("room_id", roomID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense created successfully",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("room_id", roomID))
	s.publishEvent(ctx, "expense.created", expense.ExpenseID, roomID)
	return &expense, nil
}

// ListRoomExpenses returns one page of the room's expenses, newest first,
// together with the member list so clients don't need a second call.
func (s *expenseService) ListRoomExpenses(ctx context.Context, roomID string, limit int, nextToken string) (*portssvc.RoomExpensesPage, error) {
	if _, err := s.roomRepo.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}

	expenses, token, err := s.expenseRepo.FindExpensesByRoomPaginated(ctx, roomID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list room expenses", slog.String("room_id", roomID))
		return nil, err
	}

	members, err := s.roomRepo.FindRoomMembers(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch room members", slog.String("room_id", roomID))
		return nil, err
	}

	return &portssvc.RoomExpensesPage{Expenses: expenses, Members: members, NextToken: token}, nil
}

// UpdateExpense applies a partial update. Only the member who paid for the
// expense may change it.
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID, callerID string, input portssvc.UpdateExpenseInput) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.PaidBy != callerID {
		s.LogWarn(ctx, "Member attempted to update someone else's expense",
			slog.String("expense_id", expenseID), slog.String("caller_id", callerID))
		return nil, fmt.Errorf("only the payer may update an expense: %w", apperrors.ErrForbidden)
	}

	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		amount, err := decimal.NewFromString(*input.Amount)
		if err != nil || !amount.IsPositive() {
			return nil, fmt.Errorf("expense amount must be a positive decimal: %w", apperrors.ErrValidation)
		}
		expense.Amount = amount
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, fmt.Errorf("unknown expense category %q: %w", *input.Category, apperrors.ErrValidation)
		}
		expense.Category = *input.Category
	}
	if input.SplitBetween != nil {
		splits, err := parseSplits(input.SplitBetween)
		if err != nil {
			return nil, err
		}
		expense.SplitBetween = splits
	}
	if input.Receipt != nil {
		expense.Receipt = *input.Receipt
	}

	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = callerID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated successfully", slog.String("expense_id", expenseID))
	s.publishEvent(ctx, "expense.updated", expenseID, expense.RoomID)
	return expense, nil
}

// DeleteExpense removes an expense. Only the payer may delete it.
func (s *expenseService) DeleteExpense(ctx context.Context, expenseID, callerID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.PaidBy != callerID {
		s.LogWarn(ctx, "Member attempted to delete someone else's expense",
			slog.String("expense_id", expenseID), slog.String("caller_id", callerID))
		return fmt.Errorf("only the payer may delete an expense: %w", apperrors.ErrForbidden)
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return err
	}

	s.LogInfo(ctx, "Expense deleted successfully", slog.String("expense_id", expenseID))
	s.publishEvent(ctx, "expense.deleted", expenseID, expense.RoomID)
	return nil
}

// GetExpenseSummary derives the settlement report for a room. Members and
// expenses are fetched concurrently; the aggregation itself is pure and
// operates on the local snapshot only, so concurrent summary requests never
// interfere with each other.
func (s *expenseService) GetExpenseSummary(ctx context.Context, roomID string) (*domain.ExpenseSummary, error) {
	var (
		members  []domain.RoomMember
		expenses []domain.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.roomRepo.FindRoomByID(gctx, roomID); err != nil {
			return err
		}
		var err error
		members, err = s.roomRepo.FindRoomMembers(gctx, roomID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRepo.FindExpensesByRoom(gctx, roomID)
		return err
	})
	if err := g.Wait(); err != nil {
		if isNotFound(err) {
			s.LogWarn(ctx, "Summary requested for unknown room", slog.String("room_id", roomID))
		} else {
			s.LogError(ctx, err, "Failed to fetch data for expense summary", slog.String("room_id", roomID))
		}
		return nil, err
	}

	if skipped := splitting.CountMalformed(expenses); skipped > 0 {
		s.LogWarn(ctx, "Skipping malformed expense records in summary",
			slog.String("room_id", roomID),
			slog.Int("skipped", skipped))
	}

	total, byCategory := splitting.SummarizeByCategory(expenses)
	balances := splitting.ComputeBalances(expenses)
	settlements := splitting.PlanSettlements(balances)

	s.LogInfo(ctx, "Expense summary computed",
		slog.String("room_id", roomID),
		slog.Int("expense_count", len(expenses)),
		slog.Int("participant_count", len(balances)),
		slog.Int("settlement_count", len(settlements)))

	return &domain.ExpenseSummary{
		TotalAmount: total,
		ByCategory:  byCategory,
		Balances:    balances,
		Settlements: settlements,
		Members:     members,
	}, nil
}

// ExportRoomExpenses returns the room's full expense list for CSV export.
func (s *expenseService) ExportRoomExpenses(ctx context.Context, roomID string) ([]domain.Expense, error) {
	if _, err := s.roomRepo.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindExpensesByRoom(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch expenses for export", slog.String("room_id", roomID))
		return nil, err
	}
	return expenses, nil
}

// publishEvent emits an expense mutation event when a publisher is
// configured. Failures are logged and swallowed; the write already
// succeeded and must not be reported as failed.
func (s *expenseService) publishEvent(ctx context.Context, action, expenseID, roomID string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, action, expenseID, roomID); err != nil {
		s.LogWarn(ctx, "Failed to publish expense event",
			slog.String("action", action),
			slog.String("expense_id", expenseID),
			slog.String("error", err.Error()))
	}
}

// parseSplits validates and converts caller-supplied split lines.
func parseSplits(inputs []portssvc.SplitInput) ([]domain.ExpenseSplit, error) {
	splits := make([]domain.ExpenseSplit, len(inputs))
	for i, in := range inputs {
		if in.ParticipantID == "" {
			return nil, fmt.Errorf("split %d is missing a participant id: %w", i, apperrors.ErrValidation)
		}
		amount, err := decimal.NewFromString(in.Amount)
		if err != nil || amount.IsNegative() {
			return nil, fmt.Errorf("split %d amount must be a non-negative decimal: %w", i, apperrors.ErrValidation)
		}
		splits[i] = domain.ExpenseSplit{
			ParticipantID:   in.ParticipantID,
			ParticipantName: in.ParticipantName,
			Amount:          amount,
		}
	}
	return splits, nil
}

// sumSplits totals the owed amounts of a split list.
func sumSplits(splits []domain.ExpenseSplit) decimal.Decimal {
	total := decimal.Zero
	for _, s := range splits {
		total = total.Add(s.Amount)
	}
	return total
}
