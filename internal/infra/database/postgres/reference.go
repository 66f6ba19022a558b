package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

const (
	appTypeCols     = "id, name, description, processingtimelimit, created_at"
	specialTypeCols = "id, applicationtypeid, name, processingtimelimit, created_at"
)

func scanApplicationType(row pgx.Row) (domain.ApplicationType, error) {
	var t domain.ApplicationType
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.ProcessingTimeLimit, &t.CreatedAt)
	return t, err
}

func scanSpecialType(row pgx.Row) (domain.SpecialApplicationType, error) {
	var t domain.SpecialApplicationType
	err := row.Scan(&t.ID, &t.ApplicationTypeID, &t.Name, &t.ProcessingTimeLimit, &t.CreatedAt)
	return t, err
}

func (r *PGRepo) ApplicationTypesList(ctx context.Context) ([]domain.ApplicationType, error) {
	q := r.qb().Select(appTypeCols).
		From(r.tbl("applicationtypes")).
		OrderBy("id ASC")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("ApplicationTypesList", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.ApplicationType
	for rows.Next() {
		t, err := scanApplicationType(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, t)
	}
	return out, mapErr(rows.Err())
}

func (r *PGRepo) ApplicationTypeByID(ctx context.Context, id int64) (domain.ApplicationType, error) {
	q := r.qb().Select(appTypeCols).
		From(r.tbl("applicationtypes")).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("ApplicationTypeByID", sqlStr, args)

	t, err := scanApplicationType(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.ApplicationType{}, mapErr(err)
	}
	return t, nil
}

func (r *PGRepo) CreateApplicationType(ctx context.Context, t domain.ApplicationType) (domain.ApplicationType, error) {
	q := r.qb().Insert(r.tbl("applicationtypes")).
		Columns("name", "description", "processingtimelimit").
		Values(t.Name, t.Description, t.ProcessingTimeLimit).
		Suffix("RETURNING " + appTypeCols)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateApplicationType", sqlStr, args)

	out, err := scanApplicationType(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.ApplicationType{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) UpdateApplicationType(ctx context.Context, t domain.ApplicationType) (domain.ApplicationType, error) {
	q := r.qb().Update(r.tbl("applicationtypes")).
		SetMap(map[string]any{
			"name":                t.Name,
			"description":         t.Description,
			"processingtimelimit": t.ProcessingTimeLimit,
		}).
		Where(sq.Eq{"id": t.ID}).
		Suffix("RETURNING " + appTypeCols)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateApplicationType", sqlStr, args)

	out, err := scanApplicationType(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.ApplicationType{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) DeleteApplicationType(ctx context.Context, id int64) error {
	q := r.qb().Delete(r.tbl("applicationtypes")).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteApplicationType", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRepo) SpecialTypesList(ctx context.Context) ([]domain.SpecialApplicationType, error) {
	q := r.qb().Select(specialTypeCols).
		From(r.tbl("specialapplicationtypes")).
		OrderBy("id ASC")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("SpecialTypesList", sqlStr, args)
	return r.querySpecialTypes(ctx, sqlStr, args)
}

func (r *PGRepo) SpecialTypesByApplicationType(ctx context.Context, typeID int64) ([]domain.SpecialApplicationType, error) {
	q := r.qb().Select(specialTypeCols).
		From(r.tbl("specialapplicationtypes")).
		Where(sq.Eq{"applicationtypeid": typeID}).
		OrderBy("id ASC")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("SpecialTypesByApplicationType", sqlStr, args)
	return r.querySpecialTypes(ctx, sqlStr, args)
}

func (r *PGRepo) querySpecialTypes(ctx context.Context, sqlStr string, args []any) ([]domain.SpecialApplicationType, error) {
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.SpecialApplicationType
	for rows.Next() {
		t, err := scanSpecialType(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, t)
	}
	return out, mapErr(rows.Err())
}

func (r *PGRepo) SpecialTypeByID(ctx context.Context, id int64) (domain.SpecialApplicationType, error) {
	q := r.qb().Select(specialTypeCols).
		From(r.tbl("specialapplicationtypes")).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("SpecialTypeByID", sqlStr, args)

	t, err := scanSpecialType(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.SpecialApplicationType{}, mapErr(err)
	}
	return t, nil
}

func (r *PGRepo) CreateSpecialType(ctx context.Context, t domain.SpecialApplicationType) (domain.SpecialApplicationType, error) {
	q := r.qb().Insert(r.tbl("specialapplicationtypes")).
		Columns("applicationtypeid", "name", "processingtimelimit").
		Values(t.ApplicationTypeID, t.Name, t.ProcessingTimeLimit).
		Suffix("RETURNING " + specialTypeCols)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateSpecialType", sqlStr, args)

	out, err := scanSpecialType(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.SpecialApplicationType{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) UpdateSpecialType(ctx context.Context, t domain.SpecialApplicationType) (domain.SpecialApplicationType, error) {
	q := r.qb().Update(r.tbl("specialapplicationtypes")).
		SetMap(map[string]any{
			"applicationtypeid":   t.ApplicationTypeID,
			"name":                t.Name,
			"processingtimelimit": t.ProcessingTimeLimit,
		}).
		Where(sq.Eq{"id": t.ID}).
		Suffix("RETURNING " + specialTypeCols)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateSpecialType", sqlStr, args)

	out, err := scanSpecialType(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.SpecialApplicationType{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) DeleteSpecialType(ctx context.Context, id int64) error {
	q := r.qb().Delete(r.tbl("specialapplicationtypes")).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteSpecialType", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
