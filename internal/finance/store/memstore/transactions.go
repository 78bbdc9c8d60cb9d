package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
)

// txRow holds the booking columns shared by both transaction kinds. Lookups
// are referenced by id and resolved to names at read time, like the SQL join.
type txRow struct {
	id          int64
	userID      int64
	isExpense   bool
	amount      int64
	description *string
	categoryID  int64
	shopID      *int64
	createdAt   time.Time
	updatedAt   time.Time
}

type oneoffRow struct {
	txRow
	date domain.Date
}

type monthlyRow struct {
	txRow
	monthFrom domain.Month
	monthTo   *domain.Month
}

func (s *Store) newTxRow(userID int64, params domain.TransactionParams) (txRow, error) {
	if _, ok := s.categories[params.CategoryID]; !ok {
		return txRow{}, store.ErrInvalidReference
	}
	if params.ShopID != nil {
		if _, ok := s.shops[*params.ShopID]; !ok {
			return txRow{}, store.ErrInvalidReference
		}
	}

	now := s.now()
	return txRow{
		id:          s.id(),
		userID:      userID,
		isExpense:   params.IsExpense,
		amount:      params.Amount,
		description: clonePtr(params.Description),
		categoryID:  params.CategoryID,
		shopID:      clonePtr(params.ShopID),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// patchTxRow applies the touched shared fields. It reports whether anything
// changed so the caller can decide about the updated_at bump.
func (s *Store) patchTxRow(row *txRow, patch domain.TransactionPatch) error {
	if patch.IsExpense != nil {
		row.isExpense = *patch.IsExpense
	}
	if patch.Amount != nil {
		row.amount = *patch.Amount
	}
	if patch.Description.Defined() {
		row.description = patch.Description.Ptr()
	}
	if patch.CategoryID != nil {
		if _, ok := s.categories[*patch.CategoryID]; !ok {
			return store.ErrInvalidReference
		}
		row.categoryID = *patch.CategoryID
	}
	if patch.ShopID.Defined() {
		if id, ok := patch.ShopID.Get(); ok {
			if _, ok := s.shops[id]; !ok {
				return store.ErrInvalidReference
			}
		}
		row.shopID = patch.ShopID.Ptr()
	}
	return nil
}

func (s *Store) resolveRefs(row txRow) (domain.LookupRef, *domain.LookupRef) {
	category := domain.LookupRef{ID: row.categoryID, Name: s.categories[row.categoryID].Name}
	var shop *domain.LookupRef
	if row.shopID != nil {
		shop = &domain.LookupRef{ID: *row.shopID, Name: s.shops[*row.shopID].Name}
	}
	return category, shop
}

func (s *Store) matchTxFilter(row txRow, f domain.TransactionFilter) bool {
	if f.IsExpense != nil && row.isExpense != *f.IsExpense {
		return false
	}
	if f.AmountFrom != nil && row.amount < *f.AmountFrom {
		return false
	}
	if f.AmountTo != nil && row.amount > *f.AmountTo {
		return false
	}
	if f.CategoryID != nil && row.categoryID != *f.CategoryID {
		return false
	}
	if f.ShopID != nil && (row.shopID == nil || *row.shopID != *f.ShopID) {
		return false
	}
	return true
}

// sortTxRows orders rows like the SQL driver: the allow-listed key with the
// requested direction (nulls last ascending, first descending), then id
// ascending as tie-break.
func sortTxRows[T any](rows []T, base func(T) txRow, timeKey func(T) time.Time, key domain.OrderKey, order domain.SortOrder, s *Store) {
	compare := func(a, b T) int {
		ra, rb := base(a), base(b)
		switch key {
		case domain.OrderByAmount:
			return compareInt64(ra.amount, rb.amount)
		case domain.OrderByCategory:
			return compareString(s.categories[ra.categoryID].Name, s.categories[rb.categoryID].Name)
		case domain.OrderByShop:
			return compareNullable(shopName(s, ra.shopID), shopName(s, rb.shopID))
		default:
			return timeKey(a).Compare(timeKey(b))
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		c := compare(rows[i], rows[j])
		if order == domain.SortDesc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return base(rows[i]).id < base(rows[j]).id
	})
}

func shopName(s *Store, id *int64) *string {
	if id == nil {
		return nil
	}
	name := s.shops[*id].Name
	return &name
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareNullable sorts nil after every value, matching NULLS LAST.
func compareNullable(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return compareString(*a, *b)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

type oneoffRepo Store

func (r *oneoffRepo) Create(_ context.Context, userID int64, params domain.OneoffParams) (domain.OneoffTransaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.newTxRow(userID, params.TransactionParams)
	if err != nil {
		return domain.OneoffTransaction{}, err
	}
	rec := oneoffRow{txRow: row, date: params.Date}
	s.oneoff[rec.id] = rec
	return s.oneoffRecord(rec), nil
}

func (r *oneoffRepo) Fetch(_ context.Context, userID int64, filter domain.OneoffFilter, page domain.Page) ([]domain.OneoffTransaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := []oneoffRow{}
	for _, row := range s.oneoff {
		if row.userID != userID || !s.matchTxFilter(row.txRow, filter.TransactionFilter) {
			continue
		}
		if filter.DateFrom != nil && row.date.Time.Before(filter.DateFrom.Time) {
			continue
		}
		if filter.DateTo != nil && row.date.Time.After(filter.DateTo.Time) {
			continue
		}
		matches = append(matches, row)
	}

	sortTxRows(matches,
		func(r oneoffRow) txRow { return r.txRow },
		func(r oneoffRow) time.Time { return r.date.Time },
		filter.OrderKey, filter.Order, s)

	records := []domain.OneoffTransaction{}
	for _, row := range paginate(matches, page) {
		records = append(records, s.oneoffRecord(row))
	}
	return records, nil
}

func (r *oneoffRepo) GetByID(_ context.Context, userID, id int64) (domain.OneoffTransaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.oneoff[id]
	if !ok || row.userID != userID {
		return domain.OneoffTransaction{}, store.ErrNotFound
	}
	return s.oneoffRecord(row), nil
}

func (r *oneoffRepo) Update(_ context.Context, userID, id int64, patch domain.OneoffPatch) (domain.OneoffTransaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.oneoff[id]
	if !ok || row.userID != userID {
		return domain.OneoffTransaction{}, store.ErrNotFound
	}
	if patch.Empty() {
		return s.oneoffRecord(row), nil
	}

	if err := s.patchTxRow(&row.txRow, patch.TransactionPatch); err != nil {
		return domain.OneoffTransaction{}, err
	}
	if patch.Date != nil {
		row.date = *patch.Date
	}
	row.updatedAt = s.now()
	s.oneoff[id] = row
	return s.oneoffRecord(row), nil
}

func (r *oneoffRepo) Delete(_ context.Context, userID, id int64) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.oneoff[id]
	if !ok || row.userID != userID {
		return 0, nil
	}
	delete(s.oneoff, id)
	return 1, nil
}

func (s *Store) oneoffRecord(row oneoffRow) domain.OneoffTransaction {
	category, shop := s.resolveRefs(row.txRow)
	return domain.OneoffTransaction{
		ID:          row.id,
		UserID:      row.userID,
		Date:        row.date,
		IsExpense:   row.isExpense,
		Amount:      row.amount,
		Description: clonePtr(row.description),
		Category:    category,
		Shop:        shop,
		CreatedAt:   row.createdAt,
		UpdatedAt:   row.updatedAt,
	}
}

type monthlyRepo Store

func (r *monthlyRepo) Create(_ context.Context, userID int64, params domain.MonthlyParams) (domain.MonthlyTransaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.newTxRow(userID, params.TransactionParams)
	if err != nil {
		return domain.MonthlyTransaction{}, err
	}
	rec := monthlyRow{txRow: row, monthFrom: params.MonthFrom, monthTo: clonePtr(params.MonthTo)}
	s.monthly[rec.id] = rec
	return s.monthlyRecord(rec), nil
}

func (r *monthlyRepo) Fetch(_ context.Context, userID int64, filter domain.MonthlyFilter, page domain.Page) ([]domain.MonthlyTransaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := []monthlyRow{}
	for _, row := range s.monthly {
		if row.userID != userID || !s.matchTxFilter(row.txRow, filter.TransactionFilter) {
			continue
		}
		if filter.MonthFrom != nil && row.monthTo != nil && row.monthTo.Before(*filter.MonthFrom) {
			continue
		}
		if filter.MonthTo.Defined() {
			if to, ok := filter.MonthTo.Get(); ok {
				if to.Before(row.monthFrom) {
					continue
				}
			} else if row.monthTo != nil {
				continue
			}
		}
		matches = append(matches, row)
	}

	sortTxRows(matches,
		func(r monthlyRow) txRow { return r.txRow },
		func(r monthlyRow) time.Time { return r.monthFrom.Time },
		filter.OrderKey, filter.Order, s)

	records := []domain.MonthlyTransaction{}
	for _, row := range paginate(matches, page) {
		records = append(records, s.monthlyRecord(row))
	}
	return records, nil
}

func (r *monthlyRepo) GetByID(_ context.Context, userID, id int64) (domain.MonthlyTransaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.monthly[id]
	if !ok || row.userID != userID {
		return domain.MonthlyTransaction{}, store.ErrNotFound
	}
	return s.monthlyRecord(row), nil
}

func (r *monthlyRepo) Update(_ context.Context, userID, id int64, patch domain.MonthlyPatch) (domain.MonthlyTransaction, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.monthly[id]
	if !ok || row.userID != userID {
		return domain.MonthlyTransaction{}, store.ErrNotFound
	}
	if patch.Empty() {
		return s.monthlyRecord(row), nil
	}

	if err := s.patchTxRow(&row.txRow, patch.TransactionPatch); err != nil {
		return domain.MonthlyTransaction{}, err
	}
	if patch.MonthFrom != nil {
		row.monthFrom = *patch.MonthFrom
	}
	if patch.MonthTo.Defined() {
		row.monthTo = patch.MonthTo.Ptr()
	}
	row.updatedAt = s.now()
	s.monthly[id] = row
	return s.monthlyRecord(row), nil
}

func (r *monthlyRepo) Delete(_ context.Context, userID, id int64) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.monthly[id]
	if !ok || row.userID != userID {
		return 0, nil
	}
	delete(s.monthly, id)
	return 1, nil
}

func (s *Store) monthlyRecord(row monthlyRow) domain.MonthlyTransaction {
	category, shop := s.resolveRefs(row.txRow)
	return domain.MonthlyTransaction{
		ID:          row.id,
		UserID:      row.userID,
		MonthFrom:   row.monthFrom,
		MonthTo:     clonePtr(row.monthTo),
		IsExpense:   row.isExpense,
		Amount:      row.amount,
		Description: clonePtr(row.description),
		Category:    category,
		Shop:        shop,
		CreatedAt:   row.createdAt,
		UpdatedAt:   row.updatedAt,
	}
}
