package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
)

type monthlyRepo struct {
	db *pgxpool.Pool
}

const monthlySelect = `
	SELECT t.id, t.user_id, t.month_from, t.month_to, t.is_expense, t.amount,
	       t.description, t.category_id, c.name, t.shop_id, s.name,
	       t.created_at, t.updated_at
	FROM monthly_transactions t
	JOIN categories c ON c.id = t.category_id
	LEFT JOIN shops s ON s.id = t.shop_id`

func (r *monthlyRepo) Create(ctx context.Context, userID int64, params domain.MonthlyParams) (domain.MonthlyTransaction, error) {
	var monthTo *time.Time
	if params.MonthTo != nil {
		monthTo = &params.MonthTo.Time
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO monthly_transactions
			(user_id, month_from, month_to, is_expense, amount, description, category_id, shop_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		userID, params.MonthFrom.Time, monthTo, params.IsExpense, params.Amount,
		params.Description, params.CategoryID, params.ShopID,
	).Scan(&id)
	if err != nil {
		return domain.MonthlyTransaction{}, mapError(err)
	}
	return r.GetByID(ctx, userID, id)
}

func (r *monthlyRepo) Fetch(ctx context.Context, userID int64, filter domain.MonthlyFilter, page domain.Page) ([]domain.MonthlyTransaction, error) {
	var qb QueryBuilder
	qb.Where("t.user_id = %s", userID)
	applyTransactionFilter(&qb, filter.TransactionFilter)
	if filter.MonthFrom != nil {
		// Still active in or after the lower bound.
		qb.Where("(t.month_to IS NULL OR t.month_to >= %s)", filter.MonthFrom.Time)
	}
	if filter.MonthTo.Defined() {
		if to, ok := filter.MonthTo.Get(); ok {
			qb.Where("t.month_from <= %s", to.Time)
		} else {
			// Explicit null selects open-ended recurrences only.
			qb.Where("t.month_to IS NULL")
		}
	}

	query := monthlySelect + qb.WhereClause() +
		orderClause(filter.OrderKey, filter.Order, "t.month_from") +
		" LIMIT " + qb.Bind(page.Limit) + " OFFSET " + qb.Bind(page.Offset)

	rows, err := r.db.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	records := []domain.MonthlyTransaction{}
	for rows.Next() {
		rec, err := scanMonthly(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, mapError(rows.Err())
}

func (r *monthlyRepo) GetByID(ctx context.Context, userID, id int64) (domain.MonthlyTransaction, error) {
	row := r.db.QueryRow(ctx,
		monthlySelect+" WHERE t.id = $1 AND t.user_id = $2",
		id, userID,
	)
	return scanMonthly(row)
}

func (r *monthlyRepo) Update(ctx context.Context, userID, id int64, patch domain.MonthlyPatch) (domain.MonthlyTransaction, error) {
	var qb QueryBuilder
	applyTransactionPatch(&qb, patch.TransactionPatch)
	if patch.MonthFrom != nil {
		qb.Set("month_from = %s", patch.MonthFrom.Time)
	}
	if patch.MonthTo.Defined() {
		var monthTo *time.Time
		if to, ok := patch.MonthTo.Get(); ok {
			monthTo = &to.Time
		}
		qb.Set("month_to = %s", monthTo)
	}
	if !qb.HasSets() {
		return r.GetByID(ctx, userID, id)
	}
	qb.Set("updated_at = now()")

	query := "UPDATE monthly_transactions t " + qb.SetClause() +
		" WHERE t.id = " + qb.Bind(id) + " AND t.user_id = " + qb.Bind(userID) +
		" RETURNING t.id"

	var updated int64
	if err := r.db.QueryRow(ctx, query, qb.Args()...).Scan(&updated); err != nil {
		return domain.MonthlyTransaction{}, mapError(err)
	}
	return r.GetByID(ctx, userID, id)
}

func (r *monthlyRepo) Delete(ctx context.Context, userID, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM monthly_transactions WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

func scanMonthly(row pgx.Row) (domain.MonthlyTransaction, error) {
	var (
		rec      domain.MonthlyTransaction
		monthTo  *time.Time
		shopID   *int64
		shopName *string
	)
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.MonthFrom.Time, &monthTo, &rec.IsExpense,
		&rec.Amount, &rec.Description, &rec.Category.ID, &rec.Category.Name,
		&shopID, &shopName, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return domain.MonthlyTransaction{}, mapError(err)
	}
	if monthTo != nil {
		rec.MonthTo = &domain.Month{Time: *monthTo}
	}
	rec.Shop = shopRef(shopID, shopName)
	return rec, nil
}
