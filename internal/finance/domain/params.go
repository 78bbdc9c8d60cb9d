package domain

import (
	"errors"

	"github.com/pfennigfuchs/pfennig/pkg/optional"
)

var (
	ErrMissingName       = errors.New("domain: name must not be empty")
	ErrInvalidAmount     = errors.New("domain: amount must be positive")
	ErrMissingCategory   = errors.New("domain: categoryId is required")
	ErrMissingDate       = errors.New("domain: date is required")
	ErrMissingMonthFrom  = errors.New("domain: monthFrom is required")
	ErrInvalidMonthRange = errors.New("domain: monthFrom must not be after monthTo")
	ErrInvalidOrderKey   = errors.New("domain: unknown order key")
	ErrInvalidOrder      = errors.New("domain: order must be ASC or DESC")
)

// LookupParams carries the single mutable field of a category or shop.
type LookupParams struct {
	Name string `json:"name"`
}

func (p LookupParams) Validate() error {
	if p.Name == "" {
		return ErrMissingName
	}
	return nil
}

// LookupFilter narrows a lookup fetch to an exact name match.
type LookupFilter struct {
	Name *string
}

// SortOrder is a caller-selected direction, never interpolated raw.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "", string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	}
	return "", ErrInvalidOrder
}

// OrderKey selects the transaction sort column from a fixed allow list.
type OrderKey string

const (
	OrderByTime     OrderKey = "time" // date for one-off, monthFrom for monthly
	OrderByAmount   OrderKey = "amount"
	OrderByCategory OrderKey = "category"
	OrderByShop     OrderKey = "shop"
)

func ParseOrderKey(s string) (OrderKey, error) {
	switch OrderKey(s) {
	case "", OrderByTime:
		return OrderByTime, nil
	case OrderByAmount, OrderByCategory, OrderByShop:
		return OrderKey(s), nil
	}
	return "", ErrInvalidOrderKey
}

// TransactionParams are the creation fields shared by both transaction kinds.
type TransactionParams struct {
	IsExpense   bool    `json:"isExpense"`
	Amount      int64   `json:"amount"`
	Description *string `json:"description"`
	CategoryID  int64   `json:"categoryId"`
	ShopID      *int64  `json:"shopId"`
}

func (p TransactionParams) Validate() error {
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.CategoryID <= 0 {
		return ErrMissingCategory
	}
	return nil
}

// OneoffParams creates a one-off transaction.
type OneoffParams struct {
	TransactionParams
	Date Date `json:"date"`
}

func (p OneoffParams) Validate() error {
	if err := p.TransactionParams.Validate(); err != nil {
		return err
	}
	if p.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// MonthlyParams creates a monthly transaction; a nil MonthTo is open-ended.
type MonthlyParams struct {
	TransactionParams
	MonthFrom Month  `json:"monthFrom"`
	MonthTo   *Month `json:"monthTo"`
}

func (p MonthlyParams) Validate() error {
	if err := p.TransactionParams.Validate(); err != nil {
		return err
	}
	if p.MonthFrom.IsZero() {
		return ErrMissingMonthFrom
	}
	if p.MonthTo != nil && p.MonthTo.Before(p.MonthFrom) {
		return ErrInvalidMonthRange
	}
	return nil
}

// TransactionPatch is the partial-update payload shared by both kinds.
// Nullable columns use optional.Field so "absent" and "explicit null" stay
// distinct; non-nullable ones use plain pointers where nil means untouched.
type TransactionPatch struct {
	IsExpense   *bool                  `json:"isExpense"`
	Amount      *int64                 `json:"amount"`
	Description optional.Field[string] `json:"description"`
	CategoryID  *int64                 `json:"categoryId"`
	ShopID      optional.Field[int64]  `json:"shopId"`
}

func (p TransactionPatch) Validate() error {
	if p.Amount != nil && *p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		return ErrMissingCategory
	}
	return nil
}

// Empty reports whether the patch touches any shared field.
func (p TransactionPatch) Empty() bool {
	return p.IsExpense == nil && p.Amount == nil && !p.Description.Defined() &&
		p.CategoryID == nil && !p.ShopID.Defined()
}

// OneoffPatch partially updates a one-off transaction.
type OneoffPatch struct {
	TransactionPatch
	Date *Date `json:"date"`
}

func (p OneoffPatch) Empty() bool {
	return p.TransactionPatch.Empty() && p.Date == nil
}

// MonthlyPatch partially updates a monthly transaction. MonthTo may be
// explicitly cleared to turn the recurrence open-ended.
type MonthlyPatch struct {
	TransactionPatch
	MonthFrom *Month                `json:"monthFrom"`
	MonthTo   optional.Field[Month] `json:"monthTo"`
}

func (p MonthlyPatch) Empty() bool {
	return p.TransactionPatch.Empty() && p.MonthFrom == nil && !p.MonthTo.Defined()
}

// TransactionFilter narrows a transaction fetch. Absent fields impose no
// predicate.
type TransactionFilter struct {
	IsExpense  *bool
	AmountFrom *int64
	AmountTo   *int64
	CategoryID *int64
	ShopID     *int64
	OrderKey   OrderKey
	Order      SortOrder
}

// OneoffFilter adds the date window.
type OneoffFilter struct {
	TransactionFilter
	DateFrom *Date
	DateTo   *Date
}

// MonthlyFilter adds the month window. MonthTo distinguishes "no filter"
// (undefined) from "only open-ended recurrences" (explicit null) from an
// upper bound (value).
type MonthlyFilter struct {
	TransactionFilter
	MonthFrom *Month
	MonthTo   optional.Field[Month]
}

func (f MonthlyFilter) Validate() error {
	if f.MonthFrom == nil {
		return nil
	}
	if to, ok := f.MonthTo.Get(); ok && to.Before(*f.MonthFrom) {
		return ErrInvalidMonthRange
	}
	return nil
}
