package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
)

type analysisRepo struct {
	db *pgxpool.Pool
}

// YearlySummary aggregates one-off bookings in SQL and expands monthly
// recurrences in Go, clamped to the requested year. Both halves are scoped to
// the owner.
func (r *analysisRepo) YearlySummary(ctx context.Context, userID int64, year int) (domain.YearlySummary, error) {
	var summary domain.YearlySummary

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	if err := r.sumOneoff(ctx, &summary, userID, yearStart, yearEnd); err != nil {
		return domain.YearlySummary{}, err
	}
	if err := r.sumMonthly(ctx, &summary, userID, yearStart, yearEnd); err != nil {
		return domain.YearlySummary{}, err
	}
	return summary, nil
}

func (r *analysisRepo) sumOneoff(ctx context.Context, summary *domain.YearlySummary, userID int64, yearStart, yearEnd time.Time) error {
	rows, err := r.db.Query(ctx, `
		SELECT EXTRACT(MONTH FROM entry_date)::int, is_expense, SUM(amount)
		FROM oneoff_transactions
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3
		GROUP BY 1, 2`,
		userID, yearStart, yearEnd,
	)
	if err != nil {
		return mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			month     int
			isExpense bool
			total     int64
		)
		if err := rows.Scan(&month, &isExpense, &total); err != nil {
			return mapError(err)
		}
		totals := &summary[month-1].Oneoff
		if isExpense {
			totals.Expenses += total
		} else {
			totals.Incomes += total
		}
	}
	return mapError(rows.Err())
}

func (r *analysisRepo) sumMonthly(ctx context.Context, summary *domain.YearlySummary, userID int64, yearStart, yearEnd time.Time) error {
	rows, err := r.db.Query(ctx, `
		SELECT month_from, month_to, is_expense, amount
		FROM monthly_transactions
		WHERE user_id = $1
		  AND month_from < $2
		  AND (month_to IS NULL OR month_to >= $3)`,
		userID, yearEnd, yearStart,
	)
	if err != nil {
		return mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			from      time.Time
			to        *time.Time
			isExpense bool
			amount    int64
		)
		if err := rows.Scan(&from, &to, &isExpense, &amount); err != nil {
			return mapError(err)
		}

		// Clamp the active range to the requested year, then charge the
		// amount once per covered month.
		first := time.January
		if from.After(yearStart) {
			first = from.Month()
		}
		last := time.December
		if to != nil && to.Before(yearEnd) {
			last = to.Month()
		}
		for m := first; m <= last; m++ {
			totals := &summary[m-1].Monthly
			if isExpense {
				totals.Expenses += amount
			} else {
				totals.Incomes += amount
			}
		}
	}
	return mapError(rows.Err())
}
