package postgres

import (
	"context"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

func (r *PGRepo) StatusCounts(ctx context.Context) (map[domain.ApplicationStatus]int64, error) {
	q := r.qb().Select("status", "count(*)").
		From(r.tbl("applications")).
		GroupBy("status")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("StatusCounts", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := map[domain.ApplicationStatus]int64{
		domain.StatusSubmitted:  0,
		domain.StatusProcessing: 0,
		domain.StatusCompleted:  0,
		domain.StatusRejected:   0,
	}
	for rows.Next() {
		var (
			st domain.ApplicationStatus
			n  int64
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, mapErr(err)
		}
		out[st] = n
	}
	return out, mapErr(rows.Err())
}
