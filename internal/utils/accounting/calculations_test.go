package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func onePercentCategory() *domain.Category {
	return &domain.Category{CategoryID: 7, Name: "1%", IsOnePercent: true}
}

func fixtureEntries() []domain.Entry {
	return []domain.Entry{
		{
			EntryID:   1,
			Date:      domain.Day(2024, time.January, 10),
			IsExpense: false,
			Items: []domain.Item{
				{CategoryID: 1, Amount: dec(100)},
				{CategoryID: 7, Amount: dec(40), AmountOnePercent: dec(40), Category: onePercentCategory()},
			},
		},
		{
			EntryID:   2,
			Date:      domain.Day(2024, time.February, 5),
			IsExpense: true,
			Items: []domain.Item{
				{
					CategoryID: 2,
					Amount:     dec(30),
					Grants:     []domain.ItemGrant{{GrantID: 5, Amount: dec(20)}},
				},
			},
		},
		{
			EntryID:   3,
			Date:      domain.Day(2024, time.June, 1),
			IsExpense: false,
			Items: []domain.Item{
				{
					CategoryID: 1,
					Amount:     dec(60),
					Grants:     []domain.ItemGrant{{GrantID: 5, Amount: dec(60)}},
				},
			},
		},
	}
}

func TestIncomeAndExpenseSums(t *testing.T) {
	entries := fixtureEntries()
	endOfYear := domain.EndOfYear(2024)

	assert.True(t, IncomeSum(entries, endOfYear).Equal(dec(200)))
	assert.True(t, ExpenseSum(entries, endOfYear).Equal(dec(30)))

	// A mid-year cutoff drops the June income entry.
	may := domain.Day(2024, time.May, 31)
	assert.True(t, IncomeSum(entries, may).Equal(dec(140)))
	assert.True(t, ExpenseSum(entries, may).Equal(dec(30)))
}

func TestOnePercentSums(t *testing.T) {
	entries := fixtureEntries()
	endOfYear := domain.EndOfYear(2024)

	assert.True(t, IncomeSumOnePercent(entries, endOfYear).Equal(dec(40)))
	assert.True(t, ExpenseSumOnePercent(entries, endOfYear).Equal(decimal.Zero))
}

func TestCategorySumIgnoresEntrySign(t *testing.T) {
	entries := fixtureEntries()
	endOfYear := domain.EndOfYear(2024)

	assert.True(t, CategorySum(entries, 1, endOfYear).Equal(dec(160)))
	assert.True(t, CategorySum(entries, 2, endOfYear).Equal(dec(30)))
	assert.True(t, CategorySum(entries, 99, endOfYear).Equal(decimal.Zero))
}

func TestGrantSum(t *testing.T) {
	entries := fixtureEntries()
	endOfYear := domain.EndOfYear(2024)

	assert.True(t, GrantSum(entries, 5, endOfYear, false).Equal(dec(60)))
	assert.True(t, GrantSum(entries, 5, endOfYear, true).Equal(dec(20)))

	// The cutoff applies to grant splits as well.
	assert.True(t, GrantSum(entries, 5, domain.Day(2024, time.May, 31), false).Equal(decimal.Zero))
}

func TestGrantSumInCategory(t *testing.T) {
	entries := fixtureEntries()
	endOfYear := domain.EndOfYear(2024)

	assert.True(t, GrantSumInCategory(entries, 5, 1, endOfYear).Equal(dec(60)))
	assert.True(t, GrantSumInCategory(entries, 5, 2, endOfYear).Equal(dec(20)))
	assert.True(t, GrantSumInCategory(entries, 5, 99, endOfYear).Equal(decimal.Zero))
}

func TestRunningBalance(t *testing.T) {
	entries := fixtureEntries()

	// After the January income: 50 + 140.
	assert.True(t, RunningBalance(dec(50), entries, entries[0]).Equal(dec(190)))
	// After the February expense: 190 - 30.
	assert.True(t, RunningBalance(dec(50), entries, entries[1]).Equal(dec(160)))
	// After the June income: 160 + 60.
	assert.True(t, RunningBalance(dec(50), entries, entries[2]).Equal(dec(220)))
}

func TestRunningBalanceSameDayTieBreaksOnID(t *testing.T) {
	entries := []domain.Entry{
		{EntryID: 1, Date: domain.Day(2024, time.March, 1), Items: []domain.Item{{Amount: dec(100)}}},
		{EntryID: 2, Date: domain.Day(2024, time.March, 1), IsExpense: true, Items: []domain.Item{{Amount: dec(30)}}},
		{EntryID: 3, Date: domain.Day(2024, time.March, 1), Items: []domain.Item{{Amount: dec(5)}}},
	}

	assert.True(t, RunningBalance(decimal.Zero, entries, entries[0]).Equal(dec(100)))
	assert.True(t, RunningBalance(decimal.Zero, entries, entries[1]).Equal(dec(70)))
	assert.True(t, RunningBalance(decimal.Zero, entries, entries[2]).Equal(dec(75)))
}

func TestLedgerBalances(t *testing.T) {
	journal := domain.Journal{
		JournalID:                1,
		Year:                     2024,
		InitialBalance:           dec(50),
		InitialBalanceOnePercent: dec(10),
	}
	grants := []domain.JournalGrant{{JournalID: 1, GrantID: 5, InitialGrantBalance: dec(15)}}
	ledger := NewLedger(journal, grants, fixtureEntries())

	assert.True(t, ledger.FinalBalance().Equal(dec(220)))
	assert.True(t, ledger.FinalBalanceOnePercent().Equal(dec(50)))
	assert.True(t, ledger.FinalBalanceForGrant(5).Equal(dec(55)))

	// A grant with no JournalGrant row starts from zero.
	assert.True(t, ledger.FinalBalanceForGrant(99).Equal(decimal.Zero))

	may := domain.Day(2024, time.May, 31)
	assert.True(t, ledger.Balance(may).Equal(dec(160)))
	assert.True(t, ledger.BalanceForGrant(5, may).Equal(decimal.Zero.Add(dec(15)).Sub(dec(20))))
}

func TestLedgerMemoizesPerCutoff(t *testing.T) {
	journal := domain.Journal{JournalID: 1, Year: 2024}
	ledger := NewLedger(journal, nil, fixtureEntries())

	endOfYear := domain.EndOfYear(2024)
	first := ledger.IncomeSum(endOfYear)
	second := ledger.IncomeSum(endOfYear)
	assert.True(t, first.Equal(second))
	assert.Len(t, ledger.memo, 1)

	ledger.IncomeSum(domain.Day(2024, time.May, 31))
	assert.Len(t, ledger.memo, 2)
}

func TestLedgerEntryBalance(t *testing.T) {
	journal := domain.Journal{JournalID: 1, Year: 2024, InitialBalance: dec(50)}
	entries := fixtureEntries()
	ledger := NewLedger(journal, nil, entries)

	assert.True(t, ledger.EntryBalance(entries[1]).Equal(dec(160)))
}
