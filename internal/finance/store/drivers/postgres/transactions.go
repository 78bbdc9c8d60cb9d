package postgres

import (
	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
)

// Helpers shared by the two transaction repositories. Both tables carry the
// same booking columns and join the same lookup tables, aliased t, c and s.

// applyTransactionFilter adds the conjuncts of the shared filter fields.
func applyTransactionFilter(qb *QueryBuilder, f domain.TransactionFilter) {
	if f.IsExpense != nil {
		qb.Where("t.is_expense = %s", *f.IsExpense)
	}
	if f.AmountFrom != nil {
		qb.Where("t.amount >= %s", *f.AmountFrom)
	}
	if f.AmountTo != nil {
		qb.Where("t.amount <= %s", *f.AmountTo)
	}
	if f.CategoryID != nil {
		qb.Where("t.category_id = %s", *f.CategoryID)
	}
	if f.ShopID != nil {
		qb.Where("t.shop_id = %s", *f.ShopID)
	}
}

// applyTransactionPatch adds the assignments of the touched shared fields, in
// a fixed order so statements stay deterministic.
func applyTransactionPatch(qb *QueryBuilder, p domain.TransactionPatch) {
	if p.IsExpense != nil {
		qb.Set("is_expense = %s", *p.IsExpense)
	}
	if p.Amount != nil {
		qb.Set("amount = %s", *p.Amount)
	}
	if p.Description.Defined() {
		qb.Set("description = %s", p.Description.Ptr())
	}
	if p.CategoryID != nil {
		qb.Set("category_id = %s", *p.CategoryID)
	}
	if p.ShopID.Defined() {
		qb.Set("shop_id = %s", p.ShopID.Ptr())
	}
}

// orderClause renders the ORDER BY from the allow-listed key. The id tie-break
// keeps pagination stable across equal sort values.
func orderClause(key domain.OrderKey, order domain.SortOrder, timeColumn string) string {
	column := timeColumn
	switch key {
	case domain.OrderByAmount:
		column = "t.amount"
	case domain.OrderByCategory:
		column = "c.name"
	case domain.OrderByShop:
		column = "s.name"
	}
	direction := "ASC"
	if order == domain.SortDesc {
		direction = "DESC"
	}
	return " ORDER BY " + column + " " + direction + ", t.id ASC"
}

// shopRef folds the two nullable join columns into an optional reference.
func shopRef(id *int64, name *string) *domain.LookupRef {
	if id == nil || name == nil {
		return nil
	}
	return &domain.LookupRef{ID: *id, Name: *name}
}
