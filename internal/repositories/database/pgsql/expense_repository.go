package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/tripmates/trip_planner_app/internal/apperrors"
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portsrepo "github.com/tripmates/trip_planner_app/internal/core/ports/repositories"
	"github.com/tripmates/trip_planner_app/internal/models"
	"github.com/tripmates/trip_planner_app/internal/utils/mapping"
	"github.com/tripmates/trip_planner_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseSelectColumns = `
	expense_id, room_id, description, amount, paid_by, paid_by_name,
	category, date, receipt, created_at, created_by, last_updated_at, last_updated_by
`

const splitInsertQuery = `
	INSERT INTO expense_splits (expense_id, participant_id, participant_name, amount, position)
	VALUES ($1, $2, $3, $4, $5);
`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense and split data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepository
var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

// SaveExpense inserts an expense and its splits within one DB transaction.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	modelExpense := mapping.ToModelExpense(expense)
	expenseQuery := `
		INSERT INTO expenses (
			expense_id, room_id, description, amount, paid_by, paid_by_name,
			category, date, receipt,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, expenseQuery,
		modelExpense.ExpenseID,
		modelExpense.RoomID,
		modelExpense.Description,
		modelExpense.Amount,
		modelExpense.PaidBy,
		modelExpense.PaidByName,
		modelExpense.Category,
		modelExpense.Date,
		modelExpense.Receipt,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: expense %s already exists", apperrors.ErrDuplicate, expense.ExpenseID)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("%w: room or payer referenced by expense %s does not exist", apperrors.ErrNotFound, expense.ExpenseID)
			}
		}
		return apperrors.NewAppError(500, "failed to insert expense "+expense.ExpenseID, err)
	}

	if err := queueSplitInserts(ctx, tx, expense); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit expense "+expense.ExpenseID, err)
	}
	return nil
}

// queueSplitInserts batches the split inserts of an expense onto tx.
func queueSplitInserts(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	modelSplits := mapping.ToModelExpenseSplits(expense)
	if len(modelSplits) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, split := range modelSplits {
		batch.Queue(splitInsertQuery,
			split.ExpenseID,
			split.ParticipantID,
			split.ParticipantName,
			split.Amount,
			split.Position,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert splits for expense "+expense.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense and its splits.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseSelectColumns + ` FROM expenses WHERE expense_id = $1;`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expense "+expenseID, err)
	}
	modelExpense, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan expense "+expenseID, err)
	}

	splitsByExpense, err := r.findSplits(ctx, []string{expenseID})
	if err != nil {
		return nil, err
	}

	expense := mapping.ToDomainExpense(modelExpense, splitsByExpense[expenseID])
	return &expense, nil
}

// FindExpensesByRoom retrieves every expense of a room, splits included,
// newest first.
func (r *PgxExpenseRepository) FindExpensesByRoom(ctx context.Context, roomID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseSelectColumns + `
		FROM expenses
		WHERE room_id = $1
		ORDER BY date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses for room "+roomID, err)
	}
	modelExpenses, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect expense rows for room "+roomID, err)
	}

	return r.attachSplits(ctx, modelExpenses)
}

// FindExpensesByRoomPaginated retrieves one page of a room's expenses using
// token-based pagination over (date DESC, created_at DESC).
func (r *PgxExpenseRepository) FindExpensesByRoomPaginated(ctx context.Context, roomID string, limit int, nextToken string) ([]domain.Expense, string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + expenseSelectColumns + `
		FROM expenses
		WHERE room_id = $1
	`
	args := []any{roomID}

	if nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(nextToken)
		if decodeErr != nil {
			return nil, "", apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}

	// Fetch one extra row to know whether a next page exists.
	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to query expense page for room "+roomID, err)
	}
	modelExpenses, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to collect expense page rows for room "+roomID, err)
	}

	var token string
	if len(modelExpenses) > limit {
		last := modelExpenses[limit-1] // Last row actually included in this page
		token = pagination.EncodeToken(last.Date, last.CreatedAt)
		modelExpenses = modelExpenses[:limit]
	}

	expenses, err := r.attachSplits(ctx, modelExpenses)
	if err != nil {
		return nil, "", err
	}
	return expenses, token, nil
}

// UpdateExpense rewrites the expense row and replaces its splits within one
// DB transaction.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelExpense := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET description = $2, amount = $3, category = $4, date = $5, receipt = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE expense_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		modelExpense.ExpenseID,
		modelExpense.Description,
		modelExpense.Amount,
		modelExpense.Category,
		modelExpense.Date,
		modelExpense.Receipt,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Replacing wholesale is simpler than diffing and keeps positions dense.
	if _, err := tx.Exec(ctx, `DELETE FROM expense_splits WHERE expense_id = $1;`, expense.ExpenseID); err != nil {
		return apperrors.NewAppError(500, "failed to clear splits for expense "+expense.ExpenseID, err)
	}
	if err := queueSplitInserts(ctx, tx, expense); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit update of expense "+expense.ExpenseID, err)
	}
	return nil
}

// DeleteExpense removes an expense; splits cascade via the FK.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// attachSplits loads the splits of the given expense rows and assembles the
// domain entities, preserving row order.
func (r *PgxExpenseRepository) attachSplits(ctx context.Context, modelExpenses []models.Expense) ([]domain.Expense, error) {
	ids := make([]string, len(modelExpenses))
	for i, m := range modelExpenses {
		ids[i] = m.ExpenseID
	}

	splitsByExpense, err := r.findSplits(ctx, ids)
	if err != nil {
		return nil, err
	}

	expenses := make([]domain.Expense, len(modelExpenses))
	for i, m := range modelExpenses {
		expenses[i] = mapping.ToDomainExpense(m, splitsByExpense[m.ExpenseID])
	}
	return expenses, nil
}

// findSplits loads split rows for a set of expenses, grouped by expense and
// ordered by position.
func (r *PgxExpenseRepository) findSplits(ctx context.Context, expenseIDs []string) (map[string][]models.ExpenseSplit, error) {
	grouped := make(map[string][]models.ExpenseSplit, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT expense_id, participant_id, participant_name, amount, position
		FROM expense_splits
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, expenseIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expense splits", err)
	}
	modelSplits, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExpenseSplit])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect expense split rows", err)
	}

	for _, split := range modelSplits {
		grouped[split.ExpenseID] = append(grouped[split.ExpenseID], split)
	}
	return grouped, nil
}
