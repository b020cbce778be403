package splitting

import (
	"sort"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// settledEpsilon is the tolerance below which a net balance is treated as
// zero. The same threshold gates both settlement emission and cursor
// advancement; if they ever diverged the planner could loop forever or
// leave residues behind.
var settledEpsilon = decimal.New(1, -2) // 0.01

// SummarizeByCategory computes the total of all expense amounts and the
// per-category subtotals. Malformed records (see wellFormed) are skipped.
func SummarizeByCategory(expenses []domain.Expense) (decimal.Decimal, map[domain.ExpenseCategory]decimal.Decimal) {
	total := decimal.Zero
	byCategory := make(map[domain.ExpenseCategory]decimal.Decimal)
	for _, exp := range expenses {
		if !wellFormed(exp) {
			continue
		}
		total = total.Add(exp.Amount)
		byCategory[exp.Category] = byCategory[exp.Category].Add(exp.Amount)
	}
	return total, byCategory
}

// ComputeBalances folds a room's expenses into per-participant balances.
// Each expense credits its payer's Paid total and debits the Owed total of
// every split participant. NetBalance = Paid - Owed.
//
// Balances appear in first-touch order over the expense list, which keeps
// repeated summaries of the same data byte-identical. Participants never
// named by any expense get no entry; membership alone does not create one.
//
// Records with no payer or a non-positive amount are skipped rather than
// aborting the whole summary; the caller is expected to log how many were
// dropped (see CountMalformed).
func ComputeBalances(expenses []domain.Expense) []domain.ParticipantBalance {
	balances := make([]domain.ParticipantBalance, 0)
	index := make(map[string]int) // participant id -> position in balances

	touch := func(id, name string) int {
		pos, ok := index[id]
		if !ok {
			pos = len(balances)
			index[id] = pos
			balances = append(balances, domain.ParticipantBalance{
				ParticipantID:   id,
				ParticipantName: name,
				Paid:            decimal.Zero,
				Owed:            decimal.Zero,
			})
		}
		return pos
	}

	for _, exp := range expenses {
		if !wellFormed(exp) {
			continue
		}

		pos := touch(exp.PaidBy, exp.PaidByName)
		balances[pos].Paid = balances[pos].Paid.Add(exp.Amount)

		for _, split := range exp.SplitBetween {
			if split.ParticipantID == "" {
				continue
			}
			pos := touch(split.ParticipantID, split.ParticipantName)
			balances[pos].Owed = balances[pos].Owed.Add(split.Amount)
		}
	}

	for i := range balances {
		balances[i].NetBalance = balances[i].Paid.Sub(balances[i].Owed)
	}
	return balances
}

// CountMalformed reports how many expense records would be skipped by the
// aggregation pass.
func CountMalformed(expenses []domain.Expense) int {
	n := 0
	for _, exp := range expenses {
		if !wellFormed(exp) {
			n++
		}
	}
	return n
}

func wellFormed(exp domain.Expense) bool {
	return exp.PaidBy != "" && exp.Amount.IsPositive()
}

// PlanSettlements produces a transfer plan that drives every net balance to
// within settledEpsilon of zero, using greedy largest-magnitude-first
// matching. The input balances are not modified; the simulation runs on
// local copies.
//
// The plan is the standard greedy approximation, not a guaranteed-minimal
// transfer count. Emitted amounts are positive and rounded to 2 decimal
// places for display; transfers below settledEpsilon are dropped rather
// than emitted as zero. The working balances are adjusted by the unrounded
// transfer so rounding noise cannot accumulate across iterations.
func PlanSettlements(balances []domain.ParticipantBalance) []domain.Settlement {
	var debtors, creditors []domain.ParticipantBalance
	for _, b := range balances {
		switch {
		case b.NetBalance.IsNegative():
			debtors = append(debtors, b)
		case b.NetBalance.IsPositive():
			creditors = append(creditors, b)
		}
	}

	// Largest debt first, largest credit first. Ties break on participant
	// id so that equal balances always settle in the same order.
	sort.SliceStable(debtors, func(i, j int) bool {
		if !debtors[i].NetBalance.Equal(debtors[j].NetBalance) {
			return debtors[i].NetBalance.LessThan(debtors[j].NetBalance)
		}
		return debtors[i].ParticipantID < debtors[j].ParticipantID
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		if !creditors[i].NetBalance.Equal(creditors[j].NetBalance) {
			return creditors[i].NetBalance.GreaterThan(creditors[j].NetBalance)
		}
		return creditors[i].ParticipantID < creditors[j].ParticipantID
	})

	settlements := make([]domain.Settlement, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		debt := debtor.NetBalance.Abs()
		credit := creditor.NetBalance

		transfer := decimal.Min(debt, credit)
		// A sub-cent residue is below the settled threshold on both sides;
		// emitting it would produce a zero or inflated rounded amount.
		if transfer.GreaterThanOrEqual(settledEpsilon) {
			settlements = append(settlements, domain.Settlement{
				FromID:   debtor.ParticipantID,
				FromName: debtor.ParticipantName,
				ToID:     creditor.ParticipantID,
				ToName:   creditor.ParticipantName,
				Amount:   transfer.Round(2),
			})
		}

		debtor.NetBalance = debtor.NetBalance.Add(transfer)
		creditor.NetBalance = creditor.NetBalance.Sub(transfer)

		if debtor.NetBalance.Abs().LessThan(settledEpsilon) {
			i++
		}
		if creditor.NetBalance.Abs().LessThan(settledEpsilon) {
			j++
		}
	}
	return settlements
}
