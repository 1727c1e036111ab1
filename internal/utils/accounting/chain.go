package accounting

import (
	"slices"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
)

// NextInitialBalances re-derives the successor journal's opening balances
// from the predecessor's full-year closing balances. The grant scope is the
// union of both journals' grant rows and the predecessor's entry splits, so a
// grant whose closing balance drops to zero still gets its successor row
// rewritten instead of left stale. Returns the updated successor and the full
// set of its per-grant opening rows.
func NextInitialBalances(prev domain.Journal, prevGrants []domain.JournalGrant, prevEntries []domain.Entry, next domain.Journal, nextGrants []domain.JournalGrant) (domain.Journal, []domain.JournalGrant) {
	ledger := NewLedger(prev, prevGrants, prevEntries)

	next.InitialBalance = ledger.FinalBalance()
	next.InitialBalanceOnePercent = ledger.FinalBalanceOnePercent()

	grantIDs := grantIDsInScope(prevGrants, nextGrants, prevEntries)
	rows := make([]domain.JournalGrant, 0, len(grantIDs))
	for _, grantID := range grantIDs {
		rows = append(rows, domain.JournalGrant{
			JournalID:           next.JournalID,
			GrantID:             grantID,
			InitialGrantBalance: ledger.FinalBalanceForGrant(grantID),
		})
	}
	return next, rows
}

// grantIDsInScope collects every grant either journal has a row for plus
// those referenced by the predecessor's entry splits, ascending.
func grantIDsInScope(prevGrants, nextGrants []domain.JournalGrant, entries []domain.Entry) []int64 {
	seen := map[int64]bool{}
	ids := []int64{}
	add := func(grantID int64) {
		if !seen[grantID] {
			seen[grantID] = true
			ids = append(ids, grantID)
		}
	}
	for _, jg := range prevGrants {
		add(jg.GrantID)
	}
	for _, jg := range nextGrants {
		add(jg.GrantID)
	}
	for _, entry := range entries {
		for _, item := range entry.Items {
			for _, ig := range item.Grants {
				add(ig.GrantID)
			}
		}
	}
	slices.Sort(ids)
	return ids
}
