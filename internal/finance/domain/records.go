package domain

import "time"

// Lookup is the shared shape of the two user-owned lookup kinds. Uniqueness
// rule for both: (user_id, name).
type Lookup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type (
	Category = Lookup
	Shop     = Lookup
)

// LookupRef is the embedded form of a category or shop inside a transaction
// payload, resolved by the fetch join.
type LookupRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OneoffTransaction is a single dated booking.
type OneoffTransaction struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Date        Date       `json:"date"`
	IsExpense   bool       `json:"isExpense"`
	Amount      int64      `json:"amount"`
	Description *string    `json:"description"`
	Category    LookupRef  `json:"category"`
	Shop        *LookupRef `json:"shop"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// MonthlyTransaction is a recurring booking active from MonthFrom up to and
// including MonthTo. A nil MonthTo means the recurrence has no known end.
type MonthlyTransaction struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	MonthFrom   Month      `json:"monthFrom"`
	MonthTo     *Month     `json:"monthTo"`
	IsExpense   bool       `json:"isExpense"`
	Amount      int64      `json:"amount"`
	Description *string    `json:"description"`
	Category    LookupRef  `json:"category"`
	Shop        *LookupRef `json:"shop"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
