package memstore

import (
	"context"
	"time"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
)

type analysisRepo Store

func (r *analysisRepo) YearlySummary(_ context.Context, userID int64, year int) (domain.YearlySummary, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary domain.YearlySummary

	for _, row := range s.oneoff {
		if row.userID != userID || row.date.Year() != year {
			continue
		}
		add(&summary[row.date.Month()-1].Oneoff, row.isExpense, row.amount)
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)
	for _, row := range s.monthly {
		if row.userID != userID {
			continue
		}
		if !row.monthFrom.Time.Before(yearEnd) {
			continue
		}
		if row.monthTo != nil && row.monthTo.Time.Before(yearStart) {
			continue
		}

		first := time.January
		if row.monthFrom.Time.After(yearStart) {
			first = row.monthFrom.Month()
		}
		last := time.December
		if row.monthTo != nil && row.monthTo.Time.Before(yearEnd) {
			last = row.monthTo.Month()
		}
		for m := first; m <= last; m++ {
			add(&summary[m-1].Monthly, row.isExpense, row.amount)
		}
	}
	return summary, nil
}

func add(t *domain.Totals, isExpense bool, amount int64) {
	if isExpense {
		t.Expenses += amount
	} else {
		t.Incomes += amount
	}
}
