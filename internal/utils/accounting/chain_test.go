package accounting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
)

func grantedEntry(id int64, year int, isExpense bool, amount int64, grantID int64) domain.Entry {
	return domain.Entry{
		EntryID:   id,
		Date:      domain.Day(year, time.April, 10),
		IsExpense: isExpense,
		Items: []domain.Item{
			{Amount: dec(amount), Grants: []domain.ItemGrant{{GrantID: grantID, Amount: dec(amount)}}},
		},
	}
}

func TestNextInitialBalancesMatchesPredecessorClosing(t *testing.T) {
	prev := domain.Journal{JournalID: 1, Year: 2023, InitialBalance: dec(100), InitialBalanceOnePercent: dec(10)}
	prevGrants := []domain.JournalGrant{{JournalID: 1, GrantID: 9, InitialGrantBalance: dec(20)}}
	entries := []domain.Entry{
		grantedEntry(1, 2023, false, 50, 9),
		{EntryID: 2, Date: domain.Day(2023, time.May, 1), IsExpense: true, Items: []domain.Item{{Amount: dec(30)}}},
	}
	next := domain.Journal{JournalID: 2, Year: 2024}

	next, rows := NextInitialBalances(prev, prevGrants, entries, next, nil)

	assert.True(t, next.InitialBalance.Equal(dec(120)))
	assert.True(t, next.InitialBalanceOnePercent.Equal(dec(10)))
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].JournalID)
	assert.Equal(t, int64(9), rows[0].GrantID)
	assert.True(t, rows[0].InitialGrantBalance.Equal(dec(70)))
}

func TestNextInitialBalancesResetsGrantNoLongerReferenced(t *testing.T) {
	// A chain head with no grant rows and no remaining splits; the successor
	// still carries a row written before the granted entries were deleted.
	prev := domain.Journal{JournalID: 1, Year: 2023}
	entries := []domain.Entry{
		{EntryID: 3, Date: domain.Day(2023, time.June, 1), IsExpense: false, Items: []domain.Item{{Amount: dec(80)}}},
	}
	next := domain.Journal{JournalID: 2, Year: 2024, InitialBalance: dec(200)}
	nextGrants := []domain.JournalGrant{{JournalID: 2, GrantID: 9, InitialGrantBalance: dec(40)}}

	next, rows := NextInitialBalances(prev, nil, entries, next, nextGrants)

	assert.True(t, next.InitialBalance.Equal(dec(80)))
	require.Len(t, rows, 1)
	assert.Equal(t, int64(9), rows[0].GrantID)
	assert.True(t, rows[0].InitialGrantBalance.IsZero())
}

func TestNextInitialBalancesChainTransitivity(t *testing.T) {
	chain := []domain.Journal{
		{JournalID: 1, Year: 2022},
		{JournalID: 2, Year: 2023},
		{JournalID: 3, Year: 2024},
	}
	entriesByJournal := map[int64][]domain.Entry{
		1: {grantedEntry(1, 2022, false, 100, 9)},
		2: {grantedEntry(2, 2023, true, 100, 9)},
	}
	grantsByJournal := map[int64][]domain.JournalGrant{}

	for i := 0; i+1 < len(chain); i++ {
		next, rows := NextInitialBalances(
			chain[i], grantsByJournal[chain[i].JournalID], entriesByJournal[chain[i].JournalID],
			chain[i+1], grantsByJournal[chain[i+1].JournalID])
		chain[i+1] = next
		grantsByJournal[next.JournalID] = rows
	}

	assert.True(t, chain[1].InitialBalance.Equal(dec(100)))
	assert.True(t, chain[2].InitialBalance.IsZero())

	require.Len(t, grantsByJournal[2], 1)
	assert.True(t, grantsByJournal[2][0].InitialGrantBalance.Equal(dec(100)))

	// The grant balance spent in 2023 returns to zero, and the 2024 row says so.
	require.Len(t, grantsByJournal[3], 1)
	assert.Equal(t, int64(9), grantsByJournal[3][0].GrantID)
	assert.True(t, grantsByJournal[3][0].InitialGrantBalance.IsZero())
}

func TestNextInitialBalancesIdempotent(t *testing.T) {
	prev := domain.Journal{JournalID: 1, Year: 2023, InitialBalance: dec(50)}
	prevGrants := []domain.JournalGrant{{JournalID: 1, GrantID: 9, InitialGrantBalance: dec(20)}}
	entries := []domain.Entry{grantedEntry(1, 2023, false, 30, 9)}
	next := domain.Journal{JournalID: 2, Year: 2024}

	next, rows := NextInitialBalances(prev, prevGrants, entries, next, nil)
	again, rowsAgain := NextInitialBalances(prev, prevGrants, entries, next, rows)

	assert.True(t, again.InitialBalance.Equal(next.InitialBalance))
	require.Len(t, rowsAgain, 1)
	assert.True(t, rowsAgain[0].InitialGrantBalance.Equal(rows[0].InitialGrantBalance))
}
