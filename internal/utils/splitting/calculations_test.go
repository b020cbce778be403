package splitting

import (
	"testing"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func expense(payer, payerName string, amount float64, splits ...domain.ExpenseSplit) domain.Expense {
	return domain.Expense{
		ExpenseID:    "exp-" + payer,
		RoomID:       "room-1",
		Description:  "test expense",
		Amount:       dec(amount),
		PaidBy:       payer,
		PaidByName:   payerName,
		Category:     domain.CategoryFood,
		SplitBetween: splits,
	}
}

func split(id, name string, amount float64) domain.ExpenseSplit {
	return domain.ExpenseSplit{ParticipantID: id, ParticipantName: name, Amount: dec(amount)}
}

func balanceByID(t *testing.T, balances []domain.ParticipantBalance, id string) domain.ParticipantBalance {
	t.Helper()
	for _, b := range balances {
		if b.ParticipantID == id {
			return b
		}
	}
	t.Fatalf("no balance for participant %s", id)
	return domain.ParticipantBalance{}
}

// applySettlements replays a transfer plan against the balances and returns
// the resulting net position per participant.
func applySettlements(balances []domain.ParticipantBalance, settlements []domain.Settlement) map[string]decimal.Decimal {
	nets := make(map[string]decimal.Decimal)
	for _, b := range balances {
		nets[b.ParticipantID] = b.NetBalance
	}
	for _, s := range settlements {
		nets[s.FromID] = nets[s.FromID].Add(s.Amount)
		nets[s.ToID] = nets[s.ToID].Sub(s.Amount)
	}
	return nets
}

func TestComputeBalances_SingleExpenseEqualSplit(t *testing.T) {
	// A pays 90, split equally among A, B, C.
	expenses := []domain.Expense{
		expense("a", "Alice", 90,
			split("a", "Alice", 30),
			split("b", "Bob", 30),
			split("c", "Carol", 30),
		),
	}

	balances := ComputeBalances(expenses)
	require.Len(t, balances, 3)

	a := balanceByID(t, balances, "a")
	assert.True(t, a.Paid.Equal(dec(90)), "Alice paid: %s", a.Paid)
	assert.True(t, a.Owed.Equal(dec(30)), "Alice owed: %s", a.Owed)
	assert.True(t, a.NetBalance.Equal(dec(60)), "Alice net: %s", a.NetBalance)

	for _, id := range []string{"b", "c"} {
		b := balanceByID(t, balances, id)
		assert.True(t, b.Paid.IsZero())
		assert.True(t, b.Owed.Equal(dec(30)))
		assert.True(t, b.NetBalance.Equal(dec(-30)))
	}

	settlements := PlanSettlements(balances)
	require.Len(t, settlements, 2)
	totalToAlice := decimal.Zero
	for _, s := range settlements {
		assert.Equal(t, "a", s.ToID)
		totalToAlice = totalToAlice.Add(s.Amount)
	}
	assert.True(t, totalToAlice.Equal(dec(60)), "total transferred to Alice: %s", totalToAlice)
}

func TestComputeBalances_CrossPayments(t *testing.T) {
	// A pays 100 split [A:50, B:50]; B pays 60 split [A:30, B:30].
	expenses := []domain.Expense{
		expense("a", "Alice", 100, split("a", "Alice", 50), split("b", "Bob", 50)),
		expense("b", "Bob", 60, split("a", "Alice", 30), split("b", "Bob", 30)),
	}

	balances := ComputeBalances(expenses)
	require.Len(t, balances, 2)

	a := balanceByID(t, balances, "a")
	assert.True(t, a.Paid.Equal(dec(100)))
	assert.True(t, a.Owed.Equal(dec(80)))
	assert.True(t, a.NetBalance.Equal(dec(20)))

	b := balanceByID(t, balances, "b")
	assert.True(t, b.Paid.Equal(dec(60)))
	assert.True(t, b.Owed.Equal(dec(80)))
	assert.True(t, b.NetBalance.Equal(dec(-20)))

	settlements := PlanSettlements(balances)
	require.Len(t, settlements, 1)
	assert.Equal(t, "b", settlements[0].FromID)
	assert.Equal(t, "a", settlements[0].ToID)
	assert.True(t, settlements[0].Amount.Equal(dec(20)))
}

func TestComputeBalances_Conservation(t *testing.T) {
	// When every expense's splits sum to its amount, total paid == total
	// owed == total expense amount.
	expenses := []domain.Expense{
		expense("a", "Alice", 75.30, split("a", "Alice", 25.10), split("b", "Bob", 25.10), split("c", "Carol", 25.10)),
		expense("b", "Bob", 42.50, split("a", "Alice", 21.25), split("c", "Carol", 21.25)),
		expense("c", "Carol", 18, split("b", "Bob", 18)),
	}

	balances := ComputeBalances(expenses)
	totalPaid, totalOwed := decimal.Zero, decimal.Zero
	for _, b := range balances {
		totalPaid = totalPaid.Add(b.Paid)
		totalOwed = totalOwed.Add(b.Owed)
	}

	total, _ := SummarizeByCategory(expenses)
	assert.True(t, totalPaid.Equal(total), "paid %s vs total %s", totalPaid, total)
	assert.True(t, totalOwed.Equal(total), "owed %s vs total %s", totalOwed, total)
}

func TestComputeBalances_SplitsNotSummingToAmount(t *testing.T) {
	// amount=100 but splits only cover 80: the raw, inconsistent balances
	// are reported as-is, never silently corrected.
	expenses := []domain.Expense{
		expense("a", "Alice", 100, split("b", "Bob", 40), split("c", "Carol", 40)),
	}

	balances := ComputeBalances(expenses)
	require.Len(t, balances, 3)

	a := balanceByID(t, balances, "a")
	assert.True(t, a.Paid.Equal(dec(100)))
	assert.True(t, a.Owed.IsZero())
	assert.True(t, a.NetBalance.Equal(dec(100)))

	totalOwed := decimal.Zero
	for _, b := range balances {
		totalOwed = totalOwed.Add(b.Owed)
	}
	assert.True(t, totalOwed.Equal(dec(80)), "owed should stay at the raw 80")

	// The planner must still terminate; it settles what it can and
	// tolerates the residual imbalance.
	settlements := PlanSettlements(balances)
	for _, s := range settlements {
		assert.True(t, s.Amount.IsPositive())
	}
}

func TestComputeBalances_EmptyRoom(t *testing.T) {
	total, byCategory := SummarizeByCategory(nil)
	assert.True(t, total.IsZero())
	assert.Empty(t, byCategory)

	balances := ComputeBalances(nil)
	assert.Empty(t, balances)

	settlements := PlanSettlements(balances)
	assert.Empty(t, settlements)
}

func TestComputeBalances_SkipsMalformedRecords(t *testing.T) {
	expenses := []domain.Expense{
		expense("a", "Alice", 50, split("b", "Bob", 50)),
		expense("", "Nobody", 99, split("b", "Bob", 99)), // no payer
		expense("c", "Carol", 0),                         // non-positive amount
	}

	assert.Equal(t, 2, CountMalformed(expenses))

	balances := ComputeBalances(expenses)
	require.Len(t, balances, 2)
	assert.True(t, balanceByID(t, balances, "a").Paid.Equal(dec(50)))
	assert.True(t, balanceByID(t, balances, "b").Owed.Equal(dec(50)))

	total, _ := SummarizeByCategory(expenses)
	assert.True(t, total.Equal(dec(50)))
}

func TestPlanSettlements_ZeroesAllBalances(t *testing.T) {
	// Three debtors, one creditor, with sub-cent remainders: the plan must
	// bring every net within 0.01 of zero and terminate cleanly.
	expenses := []domain.Expense{
		expense("a", "Alice", 100,
			split("a", "Alice", 33.33),
			split("b", "Bob", 33.33),
			split("c", "Carol", 33.34),
		),
		expense("a", "Alice", 10, split("d", "Dave", 10)),
	}

	balances := ComputeBalances(expenses)
	settlements := PlanSettlements(balances)
	require.NotEmpty(t, settlements)

	epsilon := dec(0.01)
	for id, net := range applySettlements(balances, settlements) {
		assert.True(t, net.Abs().LessThan(epsilon), "participant %s left with net %s", id, net)
	}
}

func TestPlanSettlements_AmountsPositiveAndBounded(t *testing.T) {
	expenses := []domain.Expense{
		expense("a", "Alice", 120, split("b", "Bob", 40), split("c", "Carol", 40), split("d", "Dave", 40)),
		expense("b", "Bob", 30, split("c", "Carol", 15), split("d", "Dave", 15)),
	}

	balances := ComputeBalances(expenses)
	original := make(map[string]decimal.Decimal)
	for _, b := range balances {
		original[b.ParticipantID] = b.NetBalance
	}

	for _, s := range PlanSettlements(balances) {
		assert.True(t, s.Amount.IsPositive(), "settlement amount must be > 0")
		assert.NotEqual(t, s.FromID, s.ToID, "no self-settlement")
		assert.True(t, s.Amount.LessThanOrEqual(original[s.FromID].Abs()),
			"%s pays more than their original debt", s.FromID)
		assert.True(t, s.Amount.LessThanOrEqual(original[s.ToID]),
			"%s receives more than their original credit", s.ToID)
	}
}

func TestPlanSettlements_Deterministic(t *testing.T) {
	expenses := []domain.Expense{
		expense("a", "Alice", 60, split("b", "Bob", 30), split("c", "Carol", 30)),
		expense("d", "Dave", 60, split("b", "Bob", 30), split("c", "Carol", 30)),
	}

	first := ComputeBalances(expenses)
	second := ComputeBalances(expenses)
	assert.Equal(t, first, second)

	planA := PlanSettlements(first)
	planB := PlanSettlements(second)
	assert.Equal(t, planA, planB)

	// The input balances are scratch-copied, not mutated in place.
	for i := range first {
		assert.True(t, first[i].NetBalance.Equal(second[i].NetBalance))
	}
}

func TestPlanSettlements_SubCentResiduesEmitNoTransfer(t *testing.T) {
	// Splits with more than two decimal places can leave nets like ±0.004.
	// Such residues round to 0.00 and must not surface as settlements.
	balances := []domain.ParticipantBalance{
		{ParticipantID: "a", ParticipantName: "Alice", Paid: dec(10.004), Owed: dec(10), NetBalance: dec(0.004)},
		{ParticipantID: "b", ParticipantName: "Bob", Paid: dec(10), Owed: dec(10.004), NetBalance: dec(-0.004)},
	}

	settlements := PlanSettlements(balances)
	assert.Empty(t, settlements, "sub-cent residues should settle to nothing")
}

func TestPlanSettlements_SubCentTailAfterRealTransfer(t *testing.T) {
	// One genuine debt plus a sub-cent pair: only the real transfer is
	// emitted, every amount is strictly positive, and the plan still zeroes
	// all nets within epsilon.
	balances := []domain.ParticipantBalance{
		{ParticipantID: "a", ParticipantName: "Alice", Paid: dec(50), Owed: dec(30), NetBalance: dec(20)},
		{ParticipantID: "b", ParticipantName: "Bob", Paid: dec(30), Owed: dec(50), NetBalance: dec(-20)},
		{ParticipantID: "c", ParticipantName: "Carol", Paid: dec(10.006), Owed: dec(10), NetBalance: dec(0.006)},
		{ParticipantID: "d", ParticipantName: "Dave", Paid: dec(10), Owed: dec(10.006), NetBalance: dec(-0.006)},
	}

	settlements := PlanSettlements(balances)
	require.Len(t, settlements, 1)
	assert.Equal(t, "b", settlements[0].FromID)
	assert.Equal(t, "a", settlements[0].ToID)
	assert.True(t, settlements[0].Amount.Equal(dec(20)))

	epsilon := dec(0.01)
	for id, net := range applySettlements(balances, settlements) {
		assert.True(t, net.Abs().LessThan(epsilon), "participant %s left with net %s", id, net)
	}
}

func TestPlanSettlements_InputNotMutated(t *testing.T) {
	balances := []domain.ParticipantBalance{
		{ParticipantID: "a", ParticipantName: "Alice", Paid: dec(90), Owed: dec(30), NetBalance: dec(60)},
		{ParticipantID: "b", ParticipantName: "Bob", Paid: dec(0), Owed: dec(30), NetBalance: dec(-30)},
		{ParticipantID: "c", ParticipantName: "Carol", Paid: dec(0), Owed: dec(30), NetBalance: dec(-30)},
	}

	_ = PlanSettlements(balances)

	assert.True(t, balances[0].NetBalance.Equal(dec(60)))
	assert.True(t, balances[1].NetBalance.Equal(dec(-30)))
	assert.True(t, balances[2].NetBalance.Equal(dec(-30)))
}

func TestSummarizeByCategory_Buckets(t *testing.T) {
	food := expense("a", "Alice", 25)
	transport := expense("b", "Bob", 40)
	transport.Category = domain.CategoryTransportation
	moreFood := expense("c", "Carol", 15)

	total, byCategory := SummarizeByCategory([]domain.Expense{food, transport, moreFood})
	assert.True(t, total.Equal(dec(80)))
	assert.True(t, byCategory[domain.CategoryFood].Equal(dec(40)))
	assert.True(t, byCategory[domain.CategoryTransportation].Equal(dec(40)))
	_, ok := byCategory[domain.CategoryShopping]
	assert.False(t, ok, "categories with no expenses get no bucket")
}
