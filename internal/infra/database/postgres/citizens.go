package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

const citizenCols = "id, username, fullname, email, passwordhash, areacode, created_at"

func scanCitizen(row pgx.Row) (domain.Citizen, error) {
	var c domain.Citizen
	err := row.Scan(&c.ID, &c.Username, &c.FullName, &c.Email, &c.PassHash, &c.AreaCode, &c.CreatedAt)
	return c, err
}

func (r *PGRepo) CreateCitizen(ctx context.Context, c domain.Citizen) (domain.Citizen, error) {
	q := r.qb().Insert(r.tbl("citizens")).
		Columns("username", "fullname", "email", "passwordhash", "areacode").
		Values(c.Username, c.FullName, c.Email, c.PassHash, c.AreaCode).
		Suffix("RETURNING " + citizenCols)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateCitizen", sqlStr, args)

	out, err := scanCitizen(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Citizen{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) CitizenByUsername(ctx context.Context, username string) (domain.Citizen, error) {
	q := r.qb().Select(citizenCols).
		From(r.tbl("citizens")).
		Where(sq.Eq{"username": username})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CitizenByUsername", sqlStr, args)

	out, err := scanCitizen(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Citizen{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) CitizenByID(ctx context.Context, id int64) (domain.Citizen, error) {
	q := r.qb().Select(citizenCols).
		From(r.tbl("citizens")).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CitizenByID", sqlStr, args)

	out, err := scanCitizen(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Citizen{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) StaffByUsername(ctx context.Context, username string) (domain.Staff, error) {
	q := r.qb().Select("id", "username", "fullname", "passwordhash", "agencyid", "role", "created_at").
		From(r.tbl("staff")).
		Where(sq.Eq{"username": username})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("StaffByUsername", sqlStr, args)

	var s domain.Staff
	err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&s.ID, &s.Username, &s.FullName, &s.PassHash, &s.AgencyID, &s.Role, &s.CreatedAt,
	)
	if err != nil {
		return domain.Staff{}, mapErr(err)
	}
	return s, nil
}
