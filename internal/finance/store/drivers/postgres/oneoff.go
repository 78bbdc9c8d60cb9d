package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
)

type oneoffRepo struct {
	db *pgxpool.Pool
}

const oneoffSelect = `
	SELECT t.id, t.user_id, t.entry_date, t.is_expense, t.amount, t.description,
	       t.category_id, c.name, t.shop_id, s.name, t.created_at, t.updated_at
	FROM oneoff_transactions t
	JOIN categories c ON c.id = t.category_id
	LEFT JOIN shops s ON s.id = t.shop_id`

func (r *oneoffRepo) Create(ctx context.Context, userID int64, params domain.OneoffParams) (domain.OneoffTransaction, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO oneoff_transactions
			(user_id, entry_date, is_expense, amount, description, category_id, shop_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		userID, params.Date.Time, params.IsExpense, params.Amount,
		params.Description, params.CategoryID, params.ShopID,
	).Scan(&id)
	if err != nil {
		return domain.OneoffTransaction{}, mapError(err)
	}
	// Re-read through the join so the response carries resolved names.
	return r.GetByID(ctx, userID, id)
}

func (r *oneoffRepo) Fetch(ctx context.Context, userID int64, filter domain.OneoffFilter, page domain.Page) ([]domain.OneoffTransaction, error) {
	var qb QueryBuilder
	qb.Where("t.user_id = %s", userID)
	applyTransactionFilter(&qb, filter.TransactionFilter)
	if filter.DateFrom != nil {
		qb.Where("t.entry_date >= %s", filter.DateFrom.Time)
	}
	if filter.DateTo != nil {
		qb.Where("t.entry_date <= %s", filter.DateTo.Time)
	}

	query := oneoffSelect + qb.WhereClause() +
		orderClause(filter.OrderKey, filter.Order, "t.entry_date") +
		" LIMIT " + qb.Bind(page.Limit) + " OFFSET " + qb.Bind(page.Offset)

	rows, err := r.db.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	records := []domain.OneoffTransaction{}
	for rows.Next() {
		rec, err := scanOneoff(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, mapError(rows.Err())
}

func (r *oneoffRepo) GetByID(ctx context.Context, userID, id int64) (domain.OneoffTransaction, error) {
	row := r.db.QueryRow(ctx,
		oneoffSelect+" WHERE t.id = $1 AND t.user_id = $2",
		id, userID,
	)
	return scanOneoff(row)
}

func (r *oneoffRepo) Update(ctx context.Context, userID, id int64, patch domain.OneoffPatch) (domain.OneoffTransaction, error) {
	var qb QueryBuilder
	applyTransactionPatch(&qb, patch.TransactionPatch)
	if patch.Date != nil {
		qb.Set("entry_date = %s", patch.Date.Time)
	}
	if !qb.HasSets() {
		return r.GetByID(ctx, userID, id)
	}
	qb.Set("updated_at = now()")

	query := "UPDATE oneoff_transactions t " + qb.SetClause() +
		" WHERE t.id = " + qb.Bind(id) + " AND t.user_id = " + qb.Bind(userID) +
		" RETURNING t.id"

	var updated int64
	if err := r.db.QueryRow(ctx, query, qb.Args()...).Scan(&updated); err != nil {
		return domain.OneoffTransaction{}, mapError(err)
	}
	return r.GetByID(ctx, userID, id)
}

func (r *oneoffRepo) Delete(ctx context.Context, userID, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM oneoff_transactions WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

func scanOneoff(row pgx.Row) (domain.OneoffTransaction, error) {
	var (
		rec      domain.OneoffTransaction
		shopID   *int64
		shopName *string
	)
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date.Time, &rec.IsExpense, &rec.Amount,
		&rec.Description, &rec.Category.ID, &rec.Category.Name,
		&shopID, &shopName, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return domain.OneoffTransaction{}, mapError(err)
	}
	rec.Shop = shopRef(shopID, shopName)
	return rec, nil
}
