package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/skarbnik/troop_ledger_app/internal/core/ports/services"
	"github.com/skarbnik/troop_ledger_app/internal/dto"
	"github.com/skarbnik/troop_ledger_app/internal/platform/logging"
	"github.com/skarbnik/troop_ledger_app/internal/utils/accounting"
)

var (
	ErrSubentriesNotAllowed = errors.New("sub-entries are only allowed on non-subentry parents in bank journals")
)

// subentryPlaceholderAmount keeps a freshly generated sub-entry individually
// valid until the user edits it. Policy, not accounting law.
var subentryPlaceholderAmount = decimal.New(1, -2) // 0.01

// entryService is the entry validation state machine. The "closed" state is
// never stored on the entry; the owning journal's block boundary is consulted
// at every mutation.
type entryService struct {
	entryRepo       portsrepo.EntryRepositoryFacade
	journalRepo     portsrepo.JournalRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
	journalTypeRepo portsrepo.JournalTypeRepositoryFacade
}

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, journalTypeRepo portsrepo.JournalTypeRepositoryFacade) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:       entryRepo,
		journalRepo:     journalRepo,
		categoryRepo:    categoryRepo,
		journalTypeRepo: journalTypeRepo,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// GetEntryByID retrieves an entry with its items.
func (s *entryService) GetEntryByID(ctx context.Context, entryID int64) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %d: %w", entryID, err)
	}
	return entry, nil
}

// journalContext bundles what validation needs to know about a journal.
type journalContext struct {
	journal     domain.Journal
	journalType domain.JournalType
	categories  map[int64]domain.Category
}

func (s *entryService) loadJournalContext(ctx context.Context, journalID int64) (*journalContext, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %d: %w", journalID, err)
	}
	journalType, err := s.journalTypeRepo.FindJournalTypeByID(ctx, journal.JournalTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal type %d: %w", journal.JournalTypeID, err)
	}
	categories, err := s.categoryRepo.FindCategoriesByYear(ctx, journal.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for year %d: %w", journal.Year, err)
	}
	categoryMap := make(map[int64]domain.Category, len(categories))
	for _, category := range categories {
		categoryMap[category.CategoryID] = category
	}
	return &journalContext{journal: *journal, journalType: *journalType, categories: categoryMap}, nil
}

// buildItems maps item inputs into domain items and attaches registry
// categories where known. Unknown category ids surface during validation.
func (s *entryService) buildItems(inputs []dto.ItemInput, jc *journalContext) []domain.Item {
	items := make([]domain.Item, 0, len(inputs))
	for _, input := range inputs {
		item := domain.Item{
			CategoryID:       input.CategoryID,
			Amount:           input.Amount,
			AmountOnePercent: input.AmountOnePercent,
		}
		for _, grantInput := range input.Grants {
			item.Grants = append(item.Grants, domain.ItemGrant{
				GrantID: grantInput.GrantID,
				Amount:  grantInput.Amount,
			})
		}
		if category, ok := jc.categories[input.CategoryID]; ok {
			c := category
			item.Category = &c
		}
		items = append(items, item)
	}
	return items
}

// CreateEntry validates and persists a new entry, together with its optional
// linked opposite-type entry, in one transaction.
func (s *entryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.Entry, error) {
	logger := logging.FromCtx(ctx)

	jc, err := s.loadJournalContext(ctx, req.JournalID)
	if err != nil {
		return nil, err
	}

	entry := domain.Entry{
		JournalID:       req.JournalID,
		Date:            req.Date,
		Name:            req.Name,
		IsExpense:       req.IsExpense,
		DocumentNumber:  req.DocumentNumber,
		StatementNumber: req.StatementNumber,
		SubentriesCount: 1,
		Items:           s.buildItems(req.Items, jc),
	}

	fields := apperrors.FieldErrors{}
	s.validateEntry(entry, jc, fields)

	var linked *domain.Entry
	if req.Linked != nil {
		linkedJC := jc
		if req.Linked.JournalID != req.JournalID {
			linkedJC, err = s.loadJournalContext(ctx, req.Linked.JournalID)
			if err != nil {
				return nil, err
			}
		}
		linked = &domain.Entry{
			JournalID:       req.Linked.JournalID,
			Date:            req.Date,
			Name:            req.Linked.Name,
			IsExpense:       !req.IsExpense,
			DocumentNumber:  req.Linked.DocumentNumber,
			StatementNumber: req.Linked.StatementNumber,
			SubentriesCount: 1,
			Items:           s.buildItems(req.Linked.Items, linkedJC),
		}
		s.validateEntry(*linked, linkedJC, fields)
		validateLinkedPair(entry, *linked, fields)
	}

	if !fields.IsEmpty() {
		return nil, apperrors.NewValidationError(fields)
	}

	if err := s.entryRepo.SaveEntry(ctx, &entry, linked); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	logger.Info("Entry created", slog.Int64("entry_id", entry.EntryID), slog.Int64("journal_id", entry.JournalID), slog.Bool("is_expense", entry.IsExpense))
	return &entry, nil
}

// UpdateEntry atomically replaces the entry's fields and items. A type change
// ships the re-categorized items in the same request and is validated against
// that final state; there is no deferred second pass.
func (s *entryService) UpdateEntry(ctx context.Context, entryID int64, req dto.UpdateEntryRequest) (*domain.Entry, error) {
	logger := logging.FromCtx(ctx)

	existing, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %d: %w", entryID, err)
	}
	jc, err := s.loadJournalContext(ctx, existing.JournalID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Date = req.Date
	updated.Name = req.Name
	updated.IsExpense = req.IsExpense
	updated.DocumentNumber = req.DocumentNumber
	updated.StatementNumber = req.StatementNumber
	updated.Items = s.buildItems(req.Items, jc)

	fields := apperrors.FieldErrors{}
	s.validateEntry(updated, jc, fields)

	if updated.LinkedEntryID != nil {
		linked, err := s.entryRepo.FindEntryByID(ctx, *updated.LinkedEntryID)
		if err != nil {
			return nil, fmt.Errorf("failed to find linked entry %d: %w", *updated.LinkedEntryID, err)
		}
		validateLinkedPair(updated, *linked, fields)
	}

	if !fields.IsEmpty() {
		return nil, apperrors.NewValidationError(fields)
	}

	if err := s.entryRepo.SaveEntry(ctx, &updated, nil); err != nil {
		return nil, fmt.Errorf("failed to update entry %d: %w", entryID, err)
	}
	logger.Info("Entry updated", slog.Int64("entry_id", entryID), slog.Int64("journal_id", updated.JournalID))
	return &updated, nil
}

// DeleteEntry removes the entry, guarded by the journal's block state as of
// the entry's persisted date.
func (s *entryService) DeleteEntry(ctx context.Context, entryID int64) error {
	logger := logging.FromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %d: %w", entryID, err)
	}
	journal, err := s.journalRepo.FindJournalByID(ctx, entry.JournalID)
	if err != nil {
		return fmt.Errorf("failed to find journal %d: %w", entry.JournalID, err)
	}
	if !journal.IsNotBlocked(entry.Date) {
		fields := apperrors.FieldErrors{}
		fields.Add("journal", "the journal must be open to change its entries")
		return apperrors.NewValidationError(fields)
	}
	if err := s.entryRepo.DeleteEntry(ctx, *entry); err != nil {
		return fmt.Errorf("failed to delete entry %d: %w", entryID, err)
	}
	logger.Info("Entry deleted", slog.Int64("entry_id", entryID), slog.Int64("journal_id", entry.JournalID))
	return nil
}

// EntryBalance derives the running balance after the entry in the strict
// (date, id) order.
func (s *entryService) EntryBalance(ctx context.Context, entryID int64) (decimal.Decimal, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find entry %d: %w", entryID, err)
	}
	journal, err := s.journalRepo.FindJournalByID(ctx, entry.JournalID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find journal %d: %w", entry.JournalID, err)
	}
	entries, err := s.journalRepo.FindEntriesForRange(ctx, journal.JournalID, nil, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load entries for journal %d: %w", journal.JournalID, err)
	}
	return accounting.RunningBalance(journal.InitialBalance, entries, *entry), nil
}

// UpdateSubentries grows or shrinks the parent's lettered sub-entries to the
// requested count. Growth appends copies of the parent's items with a nominal
// placeholder on the first category; shrinking removes from the highest
// letter down. The parent's subentries count stays 1 + len(sub-entries).
func (s *entryService) UpdateSubentries(ctx context.Context, parentEntryID int64, subentryCount int) ([]domain.Entry, error) {
	logger := logging.FromCtx(ctx)

	fields := apperrors.FieldErrors{}
	if subentryCount < 0 {
		fields.Add("subentries", "sub-entry count must not be negative")
		return nil, apperrors.NewValidationError(fields)
	}

	parent, err := s.entryRepo.FindEntryByID(ctx, parentEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %d: %w", parentEntryID, err)
	}
	jc, err := s.loadJournalContext(ctx, parent.JournalID)
	if err != nil {
		return nil, err
	}
	if parent.IsSubentry || !jc.journalType.IsBank() {
		fields.Add("subentries", ErrSubentriesNotAllowed.Error())
	}
	if !jc.journal.IsNotBlocked(parent.Date) {
		fields.Add("journal", "the journal must be open to change its entries")
	}
	if !fields.IsEmpty() {
		return nil, apperrors.NewValidationError(fields)
	}

	subentries, err := s.entryRepo.FindSubentries(ctx, parentEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sub-entries of entry %d: %w", parentEntryID, err)
	}

	var toCreate []domain.Entry
	var toDeleteIDs []int64
	switch {
	case subentryCount > len(subentries):
		for i := len(subentries); i < subentryCount; i++ {
			toCreate = append(toCreate, s.newSubentry(*parent, i))
		}
	case subentryCount < len(subentries):
		// Shrink from the highest letter down.
		for i := len(subentries) - 1; i >= subentryCount; i-- {
			toDeleteIDs = append(toDeleteIDs, subentries[i].EntryID)
		}
	}

	parent.SubentriesCount = 1 + subentryCount
	if err := s.entryRepo.ReplaceSubentries(ctx, parent, toCreate, toDeleteIDs); err != nil {
		return nil, fmt.Errorf("failed to update sub-entries of entry %d: %w", parentEntryID, err)
	}
	logger.Info("Sub-entries updated", slog.Int64("parent_entry_id", parentEntryID), slog.Int("subentry_count", subentryCount))

	return s.entryRepo.FindSubentries(ctx, parentEntryID)
}

// newSubentry duplicates the parent's items for the i-th sub-entry (0-based).
// The first category (by registry position) carries the nominal placeholder,
// all others are zero, so the sub-entry is individually valid pending edit.
func (s *entryService) newSubentry(parent domain.Entry, i int) domain.Entry {
	position := domain.SubentryPositionFor(i)
	parentID := parent.EntryID

	items := make([]domain.Item, len(parent.Items))
	copy(items, parent.Items)
	sort.SliceStable(items, func(a, b int) bool {
		pa, pb := 0, 0
		if items[a].Category != nil {
			pa = items[a].Category.Position
		}
		if items[b].Category != nil {
			pb = items[b].Category.Position
		}
		return pa < pb
	})
	for j := range items {
		amount := decimal.Zero
		if j == 0 {
			amount = subentryPlaceholderAmount
		}
		items[j] = domain.Item{
			CategoryID: items[j].CategoryID,
			Amount:     amount,
			Category:   items[j].Category,
		}
	}

	return domain.Entry{
		JournalID:        parent.JournalID,
		Date:             parent.Date,
		Name:             fmt.Sprintf("%s (%s)", parent.Name, position),
		IsExpense:        parent.IsExpense,
		DocumentNumber:   parent.DocumentNumber,
		StatementNumber:  parent.StatementNumber,
		ParentEntryID:    &parentID,
		IsSubentry:       true,
		SubentryPosition: position,
		SubentriesCount:  1,
		Items:            items,
	}
}

// validateEntry evaluates the full validation contract; every violation is
// collected into fields, none stops the others.
func (s *entryService) validateEntry(entry domain.Entry, jc *journalContext, fields apperrors.FieldErrors) {
	if len(entry.Items) == 0 {
		fields.Add("items", "an entry must have at least one item")
	}
	if entry.Date.IsZero() {
		fields.Add("date", "date is required")
	}
	if entry.Name == "" {
		fields.Add("name", "name is required")
	}

	if !entry.Date.IsZero() && entry.Date.Year() != jc.journal.Year {
		fields.Add("date", fmt.Sprintf("entry must be from the journal's year: journal.year=%d != entry.year=%d", jc.journal.Year, entry.Date.Year()))
	}

	if jc.journalType.IsBank() {
		if entry.EffectiveStatementNumber() == "" {
			fields.Add("statement_number", "statement number is required for bank journals")
		}
	} else {
		if entry.DocumentNumber == "" {
			fields.Add("document_number", "document number is required for cash journals")
		}
	}

	seenCategories := make(map[int64]bool, len(entry.Items))
	for _, item := range entry.Items {
		if seenCategories[item.CategoryID] {
			fields.Add("items", "an entry must not have several amounts in the same category")
			break
		}
		seenCategories[item.CategoryID] = true
	}

	for _, item := range entry.Items {
		category, ok := jc.categories[item.CategoryID]
		if !ok {
			fields.Add("items", fmt.Sprintf("item category %d must belong to the journal's year %d", item.CategoryID, jc.journal.Year))
			continue
		}
		if !item.Amount.IsZero() && category.IsExpense != entry.IsExpense {
			kind := "income"
			if entry.IsExpense {
				kind = "expense"
			}
			fields.Add("items", fmt.Sprintf("all non-zero items must match the entry type (%s); category %s does not", kind, category.Name))
		}
		if item.GrantTotal().GreaterThan(item.Amount) {
			fields.Add("items", fmt.Sprintf("grant splits for category %s exceed the item amount", category.Name))
		}
	}

	if !jc.journal.IsNotBlocked(entry.Date) {
		fields.Add("journal", "the journal must be open to change its entries")
	}
}

// validateLinkedPair checks the mirror rules for a linked opposite-type pair.
func validateLinkedPair(entry, linked domain.Entry, fields apperrors.FieldErrors) {
	if !entry.Sum().Equal(linked.Sum()) {
		fields.Add("linked_entry", "a linked entry must have the same amount")
	}
	if entry.IsExpense == linked.IsExpense {
		fields.Add("linked_entry", "a linked entry must be of the opposite type")
	}
}
