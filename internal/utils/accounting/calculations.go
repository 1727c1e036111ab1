// Package accounting holds the pure balance math of the ledger. Everything
// here recomputes from the entries it is handed; nothing is incrementally
// maintained. The Ledger type adds memoization scoped to a single logical
// operation and must never outlive it.
package accounting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
)

// onOrBefore reports whether the entry falls within the [start, toDate] range
// of its journal. Ledger dates are day-granular.
func onOrBefore(entry domain.Entry, toDate time.Time) bool {
	return !entry.Date.After(toDate)
}

// IncomeSum totals item amounts over income entries dated up to toDate.
func IncomeSum(entries []domain.Entry, toDate time.Time) decimal.Decimal {
	return sumItems(entries, toDate, false, func(item domain.Item) decimal.Decimal { return item.Amount })
}

// ExpenseSum totals item amounts over expense entries dated up to toDate.
func ExpenseSum(entries []domain.Entry, toDate time.Time) decimal.Decimal {
	return sumItems(entries, toDate, true, func(item domain.Item) decimal.Decimal { return item.Amount })
}

// IncomeSumOnePercent totals the parallel one-percent amounts over income
// entries dated up to toDate.
func IncomeSumOnePercent(entries []domain.Entry, toDate time.Time) decimal.Decimal {
	return sumItems(entries, toDate, false, func(item domain.Item) decimal.Decimal { return item.AmountOnePercent })
}

// ExpenseSumOnePercent totals the parallel one-percent amounts over expense
// entries dated up to toDate.
func ExpenseSumOnePercent(entries []domain.Entry, toDate time.Time) decimal.Decimal {
	return sumItems(entries, toDate, true, func(item domain.Item) decimal.Decimal { return item.AmountOnePercent })
}

func sumItems(entries []domain.Entry, toDate time.Time, isExpense bool, field func(domain.Item) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		if entry.IsExpense != isExpense || !onOrBefore(entry, toDate) {
			continue
		}
		for _, item := range entry.Items {
			total = total.Add(field(item))
		}
	}
	return total
}

// CategorySum totals item amounts for one category over all entries dated up
// to toDate, regardless of entry sign.
func CategorySum(entries []domain.Entry, categoryID int64, toDate time.Time) decimal.Decimal {
	return categorySum(entries, categoryID, toDate, func(item domain.Item) decimal.Decimal { return item.Amount })
}

// CategorySumOnePercent is the one-percent variant of CategorySum.
func CategorySumOnePercent(entries []domain.Entry, categoryID int64, toDate time.Time) decimal.Decimal {
	return categorySum(entries, categoryID, toDate, func(item domain.Item) decimal.Decimal { return item.AmountOnePercent })
}

func categorySum(entries []domain.Entry, categoryID int64, toDate time.Time, field func(domain.Item) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		if !onOrBefore(entry, toDate) {
			continue
		}
		for _, item := range entry.Items {
			if item.CategoryID == categoryID {
				total = total.Add(field(item))
			}
		}
	}
	return total
}

// GrantSum totals item grant splits for one grant, restricted to entries of
// the given sign and dated up to toDate.
func GrantSum(entries []domain.Entry, grantID int64, toDate time.Time, isExpense bool) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		if entry.IsExpense != isExpense || !onOrBefore(entry, toDate) {
			continue
		}
		for _, item := range entry.Items {
			for _, ig := range item.Grants {
				if ig.GrantID == grantID {
					total = total.Add(ig.Amount)
				}
			}
		}
	}
	return total
}

// GrantSumInCategory totals grant splits for one grant restricted to items of
// one category, over entries of either sign dated up to toDate.
func GrantSumInCategory(entries []domain.Entry, grantID, categoryID int64, toDate time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		if !onOrBefore(entry, toDate) {
			continue
		}
		for _, item := range entry.Items {
			if item.CategoryID != categoryID {
				continue
			}
			for _, ig := range item.Grants {
				if ig.GrantID == grantID {
					total = total.Add(ig.Amount)
				}
			}
		}
	}
	return total
}

// RunningBalance computes the balance after the given entry: the journal's
// initial balance adjusted by every entry at or before it in the strict
// (date, id) order. Same-day entries tie-break on id.
func RunningBalance(initialBalance decimal.Decimal, entries []domain.Entry, upTo domain.Entry) decimal.Decimal {
	balance := initialBalance
	for _, entry := range entries {
		if entry.Date.After(upTo.Date) {
			continue
		}
		if entry.Date.Equal(upTo.Date) && entry.EntryID > upTo.EntryID {
			continue
		}
		if entry.IsExpense {
			balance = balance.Sub(entry.Sum())
		} else {
			balance = balance.Add(entry.Sum())
		}
	}
	return balance
}

// Ledger computes authoritative sums for one journal from its loaded entries.
// It memoizes per (query, cutoff) so that verification, which asks for many
// balances of the same journal, enumerates the entries only once per
// question. A Ledger is built per logical operation and discarded with it; it
// must not survive any write to the underlying entries.
type Ledger struct {
	Journal      domain.Journal
	Entries      []domain.Entry
	grantInitial map[int64]decimal.Decimal

	memo map[string]decimal.Decimal
}

// NewLedger builds a Ledger over the journal's persisted entries and its
// lazily created per-grant initial balances.
func NewLedger(journal domain.Journal, journalGrants []domain.JournalGrant, entries []domain.Entry) *Ledger {
	grantInitial := make(map[int64]decimal.Decimal, len(journalGrants))
	for _, jg := range journalGrants {
		grantInitial[jg.GrantID] = jg.InitialGrantBalance
	}
	return &Ledger{
		Journal:      journal,
		Entries:      entries,
		grantInitial: grantInitial,
		memo:         make(map[string]decimal.Decimal),
	}
}

func (l *Ledger) memoized(key string, compute func() decimal.Decimal) decimal.Decimal {
	if v, ok := l.memo[key]; ok {
		return v
	}
	v := compute()
	l.memo[key] = v
	return v
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// IncomeSum totals income item amounts up to toDate.
func (l *Ledger) IncomeSum(toDate time.Time) decimal.Decimal {
	return l.memoized("income_"+dayKey(toDate), func() decimal.Decimal {
		return IncomeSum(l.Entries, toDate)
	})
}

// ExpenseSum totals expense item amounts up to toDate.
func (l *Ledger) ExpenseSum(toDate time.Time) decimal.Decimal {
	return l.memoized("expense_"+dayKey(toDate), func() decimal.Decimal {
		return ExpenseSum(l.Entries, toDate)
	})
}

// IncomeSumOnePercent totals income one-percent amounts up to toDate.
func (l *Ledger) IncomeSumOnePercent(toDate time.Time) decimal.Decimal {
	return l.memoized("income1p_"+dayKey(toDate), func() decimal.Decimal {
		return IncomeSumOnePercent(l.Entries, toDate)
	})
}

// ExpenseSumOnePercent totals expense one-percent amounts up to toDate.
func (l *Ledger) ExpenseSumOnePercent(toDate time.Time) decimal.Decimal {
	return l.memoized("expense1p_"+dayKey(toDate), func() decimal.Decimal {
		return ExpenseSumOnePercent(l.Entries, toDate)
	})
}

// CategorySum totals one category's item amounts up to toDate.
func (l *Ledger) CategorySum(categoryID int64, toDate time.Time) decimal.Decimal {
	return l.memoized(fmt.Sprintf("cat_%d_%s", categoryID, dayKey(toDate)), func() decimal.Decimal {
		return CategorySum(l.Entries, categoryID, toDate)
	})
}

// CategorySumOnePercent totals one category's one-percent amounts up to toDate.
func (l *Ledger) CategorySumOnePercent(categoryID int64, toDate time.Time) decimal.Decimal {
	return l.memoized(fmt.Sprintf("cat1p_%d_%s", categoryID, dayKey(toDate)), func() decimal.Decimal {
		return CategorySumOnePercent(l.Entries, categoryID, toDate)
	})
}

// GrantIncomeSum totals one grant's splits over income entries up to toDate.
func (l *Ledger) GrantIncomeSum(grantID int64, toDate time.Time) decimal.Decimal {
	return l.memoized(fmt.Sprintf("grantin_%d_%s", grantID, dayKey(toDate)), func() decimal.Decimal {
		return GrantSum(l.Entries, grantID, toDate, false)
	})
}

// GrantExpenseSum totals one grant's splits over expense entries up to toDate.
func (l *Ledger) GrantExpenseSum(grantID int64, toDate time.Time) decimal.Decimal {
	return l.memoized(fmt.Sprintf("grantout_%d_%s", grantID, dayKey(toDate)), func() decimal.Decimal {
		return GrantSum(l.Entries, grantID, toDate, true)
	})
}

// InitialBalanceForGrant returns the grant's opening balance in this journal,
// zero when no JournalGrant row exists yet.
func (l *Ledger) InitialBalanceForGrant(grantID int64) decimal.Decimal {
	if v, ok := l.grantInitial[grantID]; ok {
		return v
	}
	return decimal.Zero
}

// Balance is initial balance + income − expense up to toDate.
func (l *Ledger) Balance(toDate time.Time) decimal.Decimal {
	return l.Journal.InitialBalance.Add(l.IncomeSum(toDate)).Sub(l.ExpenseSum(toDate))
}

// BalanceOnePercent is the one-percent analogue of Balance.
func (l *Ledger) BalanceOnePercent(toDate time.Time) decimal.Decimal {
	return l.Journal.InitialBalanceOnePercent.Add(l.IncomeSumOnePercent(toDate)).Sub(l.ExpenseSumOnePercent(toDate))
}

// BalanceForGrant is the grant's opening balance + grant income − grant
// expense up to toDate.
func (l *Ledger) BalanceForGrant(grantID int64, toDate time.Time) decimal.Decimal {
	return l.InitialBalanceForGrant(grantID).Add(l.GrantIncomeSum(grantID, toDate)).Sub(l.GrantExpenseSum(grantID, toDate))
}

// FinalBalance is the full-year closing balance.
func (l *Ledger) FinalBalance() decimal.Decimal {
	return l.Balance(l.Journal.EndOfYear())
}

// FinalBalanceOnePercent is the full-year one-percent closing balance.
func (l *Ledger) FinalBalanceOnePercent() decimal.Decimal {
	return l.BalanceOnePercent(l.Journal.EndOfYear())
}

// FinalBalanceForGrant is the grant's full-year closing balance.
func (l *Ledger) FinalBalanceForGrant(grantID int64) decimal.Decimal {
	return l.BalanceForGrant(grantID, l.Journal.EndOfYear())
}

// EntryBalance is the running balance after the given entry.
func (l *Ledger) EntryBalance(entry domain.Entry) decimal.Decimal {
	return RunningBalance(l.Journal.InitialBalance, l.Entries, entry)
}
