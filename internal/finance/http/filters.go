package http

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
	"github.com/pfennigfuchs/pfennig/pkg/optional"
)

var (
	errInvalidBool = errors.New("invalid boolean parameter")
	errInvalidInt  = errors.New("invalid numeric parameter")
)

// Filter parsers translate query strings into the typed filters the services
// take. Absent parameters impose no predicate.

func parseLookupFilter(query url.Values) (domain.LookupFilter, error) {
	var f domain.LookupFilter
	if v := query.Get("name"); v != "" {
		f.Name = &v
	}
	return f, nil
}

func parseTransactionFilter(query url.Values) (domain.TransactionFilter, error) {
	var f domain.TransactionFilter

	if v := query.Get("isExpense"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errInvalidBool
		}
		f.IsExpense = &b
	}
	for _, field := range []struct {
		name string
		dst  **int64
	}{
		{"amountFrom", &f.AmountFrom},
		{"amountTo", &f.AmountTo},
		{"categoryId", &f.CategoryID},
		{"shopId", &f.ShopID},
	} {
		if v := query.Get(field.name); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return f, errInvalidInt
			}
			*field.dst = &n
		}
	}

	key, err := domain.ParseOrderKey(query.Get("orderBy"))
	if err != nil {
		return f, err
	}
	order, err := domain.ParseSortOrder(query.Get("order"))
	if err != nil {
		return f, err
	}
	f.OrderKey = key
	f.Order = order
	return f, nil
}

func parseOneoffFilter(query url.Values) (domain.OneoffFilter, error) {
	base, err := parseTransactionFilter(query)
	if err != nil {
		return domain.OneoffFilter{}, err
	}
	f := domain.OneoffFilter{TransactionFilter: base}

	if v := query.Get("dateFrom"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return domain.OneoffFilter{}, err
		}
		f.DateFrom = &d
	}
	if v := query.Get("dateTo"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return domain.OneoffFilter{}, err
		}
		f.DateTo = &d
	}
	return f, nil
}

func parseMonthlyFilter(query url.Values) (domain.MonthlyFilter, error) {
	base, err := parseTransactionFilter(query)
	if err != nil {
		return domain.MonthlyFilter{}, err
	}
	f := domain.MonthlyFilter{TransactionFilter: base}

	if v := query.Get("monthFrom"); v != "" {
		m, err := domain.ParseMonth(v)
		if err != nil {
			return domain.MonthlyFilter{}, err
		}
		f.MonthFrom = &m
	}
	// monthTo is three-valued: absent means no predicate, the literal "null"
	// selects open-ended recurrences, a month caps the start.
	if v := query.Get("monthTo"); v != "" {
		if v == "null" {
			f.MonthTo = optional.Null[domain.Month]()
		} else {
			m, err := domain.ParseMonth(v)
			if err != nil {
				return domain.MonthlyFilter{}, err
			}
			f.MonthTo = optional.Of(m)
		}
	}
	return f, nil
}
