package domain

// Totals sums expenses and incomes separately; amounts are in minor units.
type Totals struct {
	Expenses int64 `json:"expenses"`
	Incomes  int64 `json:"incomes"`
}

// MonthSummary splits one calendar month's totals by transaction kind.
type MonthSummary struct {
	Oneoff  Totals `json:"oneoff"`
	Monthly Totals `json:"monthly"`
}

// YearlySummary holds one entry per month, January first.
type YearlySummary [12]MonthSummary
