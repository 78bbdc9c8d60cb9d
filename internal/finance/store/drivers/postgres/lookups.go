package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pfennigfuchs/pfennig/internal/finance/domain"
)

// lookupsRepo serves both lookup tables; only the table name differs. The
// table field is set from a fixed literal at construction, never from input.
type lookupsRepo struct {
	db    *pgxpool.Pool
	table string
}

const lookupColumns = "id, user_id, name, created_at, updated_at"

func (r *lookupsRepo) Create(ctx context.Context, userID int64, name string) (domain.Lookup, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO `+r.table+` (user_id, name)
		VALUES ($1, $2)
		RETURNING `+lookupColumns,
		userID, name,
	)
	return scanLookup(row)
}

func (r *lookupsRepo) Fetch(ctx context.Context, userID int64, filter domain.LookupFilter, page domain.Page) ([]domain.Lookup, error) {
	var qb QueryBuilder
	qb.Where("user_id = %s", userID)
	if filter.Name != nil {
		qb.Where("name = %s", *filter.Name)
	}

	query := "SELECT " + lookupColumns + " FROM " + r.table +
		qb.WhereClause() +
		" ORDER BY name ASC, id ASC" +
		" LIMIT " + qb.Bind(page.Limit) + " OFFSET " + qb.Bind(page.Offset)

	rows, err := r.db.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	records := []domain.Lookup{}
	for rows.Next() {
		rec, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, mapError(rows.Err())
}

func (r *lookupsRepo) GetByID(ctx context.Context, userID, id int64) (domain.Lookup, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+lookupColumns+" FROM "+r.table+" WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	return scanLookup(row)
}

func (r *lookupsRepo) Rename(ctx context.Context, userID, id int64, name string) (domain.Lookup, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE `+r.table+`
		SET name = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING `+lookupColumns,
		name, id, userID,
	)
	return scanLookup(row)
}

func (r *lookupsRepo) Delete(ctx context.Context, userID, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM "+r.table+" WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *lookupsRepo) Exists(ctx context.Context, userID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM "+r.table+" WHERE id = $1 AND user_id = $2)",
		id, userID,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func scanLookup(row pgx.Row) (domain.Lookup, error) {
	var rec domain.Lookup
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return domain.Lookup{}, mapError(err)
	}
	return rec, nil
}
