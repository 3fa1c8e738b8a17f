// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lmscatalog/internal/platform/database/schema"
	"github.com/taibuivan/lmscatalog/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed course store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = schema.List("", schema.CatalogCourse.Columns()...)

func (repository *PostgresRepository) FindAll(ctx context.Context) ([]*Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		selectColumns, schema.CatalogCourse.Table, schema.CatalogCourse.ID)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_courses")
	}
	defer rows.Close()

	courses := make([]*Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_course")
		}
		courses = append(courses, course)
	}

	return courses, dberr.Wrap(rows.Err(), "list_courses")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Course, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogCourse.Table, schema.CatalogCourse.ID)

	return repository.findOne(ctx, "get_course", query, id)
}

/*
FindByName returns the course with the given name.

Description: Duplicate names are resolved deterministically by picking the
lowest id.
*/
func (repository *PostgresRepository) FindByName(ctx context.Context, name string) (*Course, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC LIMIT 1`,
		selectColumns, schema.CatalogCourse.Table, schema.CatalogCourse.Name, schema.CatalogCourse.ID)

	return repository.findOne(ctx, "get_course_by_name", query, name)
}

func (repository *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogCourse.Table, schema.CatalogCourse.ID)

	var exists bool
	err := repository.pool.QueryRow(ctx, query, id).Scan(&exists)
	return exists, dberr.Wrap(err, "exists_course")
}

/*
Save upserts a course in a single statement.

Description: The UPDATE branch runs first; the INSERT branch only fires when
the UPDATE matched nothing, so unknown ids fall back to a fresh identity value.
*/
func (repository *PostgresRepository) Save(ctx context.Context, course *Course) error {
	table := schema.CatalogCourse
	returning := schema.List("", table.ID, table.CreatedAt, table.UpdatedAt)

	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE %[1]s SET %[2]s = $2, %[3]s = $3, %[5]s = NOW()
			WHERE %[6]s = $1
			RETURNING %[7]s
		), inserted AS (
			INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s)
			SELECT $2, $3, NOW(), NOW()
			WHERE NOT EXISTS (SELECT 1 FROM updated)
			RETURNING %[7]s
		)
		SELECT %[7]s FROM updated
		UNION ALL
		SELECT %[7]s FROM inserted
	`,
		table.Table, table.Name, table.Description, table.CreatedAt, table.UpdatedAt, table.ID, returning,
	)

	err := repository.pool.QueryRow(ctx, query, course.ID, course.Name, course.Description).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	return dberr.Wrap(err, "save_course")
}

func (repository *PostgresRepository) UpdateIfExists(ctx context.Context, course *Course) (bool, error) {
	table := schema.CatalogCourse
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		table.Table, table.Name, table.Description, table.UpdatedAt,
		table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query, course.ID, course.Name, course.Description).
		Scan(&course.CreatedAt, &course.UpdatedAt)
	if dberr.IsNoRows(err) {
		return false, nil
	}
	return err == nil, dberr.Wrap(err, "update_course")
}

func (repository *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := repository.DeleteIfExists(ctx, id)
	return err
}

// DeleteIfExists removes a course; chapters and lessons follow through ON DELETE CASCADE.
func (repository *PostgresRepository) DeleteIfExists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogCourse.Table, schema.CatalogCourse.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_course")
	}
	return result.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) findOne(ctx context.Context, action, query string, arg any) (*Course, bool, error) {
	course, err := scanCourse(repository.pool.QueryRow(ctx, query, arg))
	if dberr.IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, action)
	}
	return course, true, nil
}

func scanCourse(row pgx.Row) (*Course, error) {
	var course Course
	err := row.Scan(&course.ID, &course.Name, &course.Description, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &course, nil
}
