package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

const applicationCols = "id, citizenid, applicationtypeid, specialapplicationtypeid, title, description, status, submissiondate, duedate, hasattachments, created_at, updated_at"

func scanApplication(row pgx.Row) (domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.CitizenID, &a.ApplicationTypeID, &a.SpecialApplicationTypeID,
		&a.Title, &a.Description, &a.Status,
		&a.SubmissionDate, &a.DueDate, &a.HasAttachments,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// CreateApplication — транзакционная подача заявления: родительская строка
// и все mediafile-строки пишутся атомарно. Порядок фиксирован: сначала
// родитель, затем вложения; при любой ошибке — полный откат, осиротевших
// mediafile-строк не остаётся. Файлы на диске транзакция не трогает.
func (r *PGRepo) CreateApplication(ctx context.Context, app domain.Application, staged []domain.StagedFile) (domain.Application, []domain.MediaFile, error) {
	var (
		out   domain.Application
		files []domain.MediaFile
	)

	err := r.runInTx(ctx, func(tx pgx.Tx) error {
		// лимит обработки типа читаем в той же транзакции
		q := r.qb().Select("processingtimelimit").
			From(r.tbl("applicationtypes")).
			Where(sq.Eq{"id": app.ApplicationTypeID})
		sqlStr, args, _ := q.ToSql()
		r.logSQL("CreateApplication.limit", sqlStr, args)

		var limitDays int
		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&limitDays); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: application type %d", domain.ErrBadParams, app.ApplicationTypeID)
			}
			return mapErr(err)
		}

		now := time.Now().UTC()
		qi := r.qb().Insert(r.tbl("applications")).
			Columns("citizenid", "applicationtypeid", "specialapplicationtypeid",
				"title", "description", "status", "submissiondate", "duedate", "hasattachments").
			Values(app.CitizenID, app.ApplicationTypeID, app.SpecialApplicationTypeID,
				app.Title, app.Description, domain.StatusSubmitted,
				now, domain.DueDate(now, limitDays), len(staged) > 0).
			Suffix("RETURNING " + applicationCols)
		sqlStr, args, _ = qi.ToSql()
		r.logSQL("CreateApplication", sqlStr, args)

		start := time.Now()
		parent, err := scanApplication(tx.QueryRow(ctx, sqlStr, args...))
		if err != nil {
			r.logger.Printf("CreateApplication scan error after %s: %v", time.Since(start), err)
			return mapErr(err)
		}

		files = make([]domain.MediaFile, 0, len(staged))
		for _, sf := range staged {
			qf := r.qb().Insert(r.tbl("mediafiles")).
				Columns("applicationid", "filepath", "filesize", "mimetype").
				Values(parent.ID, sf.Path, sf.Size, sf.MimeType).
				Suffix("RETURNING id, applicationid, filepath, filesize, mimetype, uploaddate")
			sqlStr, args, _ = qf.ToSql()
			r.logSQL("CreateApplication.mediafile", sqlStr, args)

			var mf domain.MediaFile
			if err := tx.QueryRow(ctx, sqlStr, args...).Scan(
				&mf.ID, &mf.ApplicationID, &mf.FilePath, &mf.FileSize, &mf.MimeType, &mf.UploadDate,
			); err != nil {
				r.logger.Printf("CreateApplication mediafile insert error: %v", err)
				return mapErr(err)
			}
			files = append(files, mf)
		}

		out = parent
		return nil
	})
	if err != nil {
		return domain.Application{}, nil, err
	}
	r.logger.Printf("CreateApplication ok id=%d files=%d", out.ID, len(files))
	return out, files, nil
}

func (r *PGRepo) ApplicationByID(ctx context.Context, id int64) (domain.Application, []domain.MediaFile, error) {
	q := r.qb().Select(applicationCols).
		From(r.tbl("applications")).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("ApplicationByID", sqlStr, args)

	a, err := scanApplication(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Application{}, nil, mapErr(err)
	}

	files, err := r.mediaFilesByApplication(ctx, id)
	if err != nil {
		return domain.Application{}, nil, err
	}
	return a, files, nil
}

func (r *PGRepo) mediaFilesByApplication(ctx context.Context, applicationID int64) ([]domain.MediaFile, error) {
	q := r.qb().Select("id", "applicationid", "filepath", "filesize", "mimetype", "uploaddate").
		From(r.tbl("mediafiles")).
		Where(sq.Eq{"applicationid": applicationID}).
		OrderBy("id ASC")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("mediaFilesByApplication", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.MediaFile
	for rows.Next() {
		var mf domain.MediaFile
		if err := rows.Scan(&mf.ID, &mf.ApplicationID, &mf.FilePath, &mf.FileSize, &mf.MimeType, &mf.UploadDate); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, mf)
	}
	return out, mapErr(rows.Err())
}

func (r *PGRepo) MediaFileByID(ctx context.Context, applicationID, fileID int64) (domain.MediaFile, error) {
	q := r.qb().Select("id", "applicationid", "filepath", "filesize", "mimetype", "uploaddate").
		From(r.tbl("mediafiles")).
		Where(sq.Eq{"id": fileID, "applicationid": applicationID})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("MediaFileByID", sqlStr, args)

	var mf domain.MediaFile
	err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&mf.ID, &mf.ApplicationID, &mf.FilePath, &mf.FileSize, &mf.MimeType, &mf.UploadDate,
	)
	if err != nil {
		return domain.MediaFile{}, mapErr(err)
	}
	return mf, nil
}

func (r *PGRepo) applicationsQuery(f domain.ApplicationFilter) sq.SelectBuilder {
	sb := r.qb().Select(applicationCols).
		From(r.tbl("applications")).
		OrderBy("submissiondate DESC", "id DESC")

	if f.Status != "" {
		sb = sb.Where(sq.Eq{"status": f.Status})
	}
	if f.TypeID > 0 {
		sb = sb.Where(sq.Eq{"applicationtypeid": f.TypeID})
	}
	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return sb.Limit(uint64(limit))
}

func (r *PGRepo) ApplicationsList(ctx context.Context, f domain.ApplicationFilter) ([]domain.Application, error) {
	sqlStr, args, _ := r.applicationsQuery(f).ToSql()
	r.logSQL("ApplicationsList", sqlStr, args)
	return r.queryApplications(ctx, sqlStr, args)
}

func (r *PGRepo) ApplicationsByCitizen(ctx context.Context, citizenID int64) ([]domain.Application, error) {
	sb := r.applicationsQuery(domain.ApplicationFilter{}).Where(sq.Eq{"citizenid": citizenID})
	sqlStr, args, _ := sb.ToSql()
	r.logSQL("ApplicationsByCitizen", sqlStr, args)
	return r.queryApplications(ctx, sqlStr, args)
}

func (r *PGRepo) ApplicationsByType(ctx context.Context, typeID int64) ([]domain.Application, error) {
	sqlStr, args, _ := r.applicationsQuery(domain.ApplicationFilter{TypeID: typeID}).ToSql()
	r.logSQL("ApplicationsByType", sqlStr, args)
	return r.queryApplications(ctx, sqlStr, args)
}

func (r *PGRepo) queryApplications(ctx context.Context, sqlStr string, args []any) ([]domain.Application, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("queryApplications error after %s: %v", time.Since(start), err)
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	r.logger.Printf("queryApplications ok in %s count=%d", time.Since(start), len(out))
	return out, nil
}

// UpdateStatus — смена статуса + запись истории обработки и уведомления
// гражданину в одной транзакции.
func (r *PGRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, staffID int64, notes string) (domain.Application, error) {
	var out domain.Application

	err := r.runInTx(ctx, func(tx pgx.Tx) error {
		qu := r.qb().Update(r.tbl("applications")).
			SetMap(map[string]any{
				"status":     status,
				"updated_at": sq.Expr("now()"),
			}).
			Where(sq.Eq{"id": id}).
			Suffix("RETURNING " + applicationCols)
		sqlStr, args, _ := qu.ToSql()
		r.logSQL("UpdateStatus", sqlStr, args)

		a, err := scanApplication(tx.QueryRow(ctx, sqlStr, args...))
		if err != nil {
			return mapErr(err)
		}

		qh := r.qb().Insert(r.tbl("processinghistory")).
			Columns("applicationid", "staffid", "actiontaken", "notes").
			Values(a.ID, staffID, "status:"+string(status), notes)
		sqlStr, args, _ = qh.ToSql()
		r.logSQL("UpdateStatus.history", sqlStr, args)
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return mapErr(err)
		}

		qn := r.qb().Insert(r.tbl("notifications")).
			Columns("citizenid", "applicationid", "message").
			Values(a.CitizenID, a.ID, fmt.Sprintf("Application %q is now %s", a.Title, status))
		sqlStr, args, _ = qn.ToSql()
		r.logSQL("UpdateStatus.notification", sqlStr, args)
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return mapErr(err)
		}

		out = a
		return nil
	})
	if err != nil {
		return domain.Application{}, err
	}
	return out, nil
}

// DeleteApplication — удаление заявителем. FK каскадом убирает mediafiles;
// пути вложений возвращаются наверх для best-effort чистки хранилища.
func (r *PGRepo) DeleteApplication(ctx context.Context, id, citizenID int64) ([]string, error) {
	var paths []string

	err := r.runInTx(ctx, func(tx pgx.Tx) error {
		q := r.qb().Select("citizenid").
			From(r.tbl("applications")).
			Where(sq.Eq{"id": id})
		sqlStr, args, _ := q.ToSql()
		r.logSQL("DeleteApplication.owner", sqlStr, args)

		var owner int64
		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&owner); err != nil {
			return mapErr(err)
		}
		if owner != citizenID {
			return domain.ErrForbidden
		}

		qp := r.qb().Select("filepath").
			From(r.tbl("mediafiles")).
			Where(sq.Eq{"applicationid": id})
		sqlStr, args, _ = qp.ToSql()
		r.logSQL("DeleteApplication.paths", sqlStr, args)

		rows, err := tx.Query(ctx, sqlStr, args...)
		if err != nil {
			return mapErr(err)
		}
		for rows.Next() {
			var p string
			if err := rows.Scan(&p); err != nil {
				rows.Close()
				return mapErr(err)
			}
			paths = append(paths, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return mapErr(err)
		}

		qd := r.qb().Delete(r.tbl("applications")).Where(sq.Eq{"id": id})
		sqlStr, args, _ = qd.ToSql()
		r.logSQL("DeleteApplication", sqlStr, args)
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return mapErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Printf("DeleteApplication ok id=%d files=%d", id, len(paths))
	return paths, nil
}
