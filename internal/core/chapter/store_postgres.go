// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

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

// NewPostgresRepository constructs a PostgreSQL backed chapter store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = schema.List("", schema.CatalogChapter.Columns()...)

func (repository *PostgresRepository) FindAll(ctx context.Context) ([]*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		selectColumns, schema.CatalogChapter.Table, schema.CatalogChapter.ID)

	return repository.list(ctx, "list_chapters", query)
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Chapter, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogChapter.Table, schema.CatalogChapter.ID)

	return repository.findOne(ctx, "get_chapter", query, id)
}

func (repository *PostgresRepository) FindByName(ctx context.Context, name string) (*Chapter, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC LIMIT 1`,
		selectColumns, schema.CatalogChapter.Table, schema.CatalogChapter.Name, schema.CatalogChapter.ID)

	return repository.findOne(ctx, "get_chapter_by_name", query, name)
}

/*
FindByCourseID lists the chapters of a course.

Description: Served by the (course_id, order_number, id) index.
*/
func (repository *PostgresRepository) FindByCourseID(ctx context.Context, courseID int64) ([]*Chapter, error) {
	table := schema.CatalogChapter
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		selectColumns, table.Table, table.CourseID, table.Order, table.ID)

	return repository.list(ctx, "list_chapters_by_course", query, courseID)
}

func (repository *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogChapter.Table, schema.CatalogChapter.ID)

	var exists bool
	err := repository.pool.QueryRow(ctx, query, id).Scan(&exists)
	return exists, dberr.Wrap(err, "exists_chapter")
}

// Save upserts a chapter in a single statement; see the course store for the shape.
func (repository *PostgresRepository) Save(ctx context.Context, chapter *Chapter) error {
	table := schema.CatalogChapter
	returning := schema.List("", table.ID, table.CreatedAt, table.UpdatedAt)

	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE %[1]s SET %[2]s = $2, %[3]s = $3, %[4]s = $4, %[5]s = $5, %[7]s = NOW()
			WHERE %[8]s = $1
			RETURNING %[9]s
		), inserted AS (
			INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s)
			SELECT $2, $3, $4, $5, NOW(), NOW()
			WHERE NOT EXISTS (SELECT 1 FROM updated)
			RETURNING %[9]s
		)
		SELECT %[9]s FROM updated
		UNION ALL
		SELECT %[9]s FROM inserted
	`,
		table.Table, table.Name, table.Description, table.Order, table.CourseID,
		table.CreatedAt, table.UpdatedAt, table.ID, returning,
	)

	err := repository.pool.QueryRow(ctx, query,
		chapter.ID, chapter.Name, chapter.Description, chapter.Order, chapter.CourseID,
	).Scan(&chapter.ID, &chapter.CreatedAt, &chapter.UpdatedAt)
	return dberr.Wrap(err, "save_chapter")
}

func (repository *PostgresRepository) UpdateIfExists(ctx context.Context, chapter *Chapter) (bool, error) {
	table := schema.CatalogChapter
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		table.Table, table.Name, table.Description, table.Order, table.CourseID, table.UpdatedAt,
		table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		chapter.ID, chapter.Name, chapter.Description, chapter.Order, chapter.CourseID,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)
	if dberr.IsNoRows(err) {
		return false, nil
	}
	return err == nil, dberr.Wrap(err, "update_chapter")
}

func (repository *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := repository.DeleteIfExists(ctx, id)
	return err
}

// DeleteIfExists removes a chapter; its lessons follow through ON DELETE CASCADE.
func (repository *PostgresRepository) DeleteIfExists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogChapter.Table, schema.CatalogChapter.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_chapter")
	}
	return result.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) list(ctx context.Context, action, query string, args ...any) ([]*Chapter, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	chapters := make([]*Chapter, 0)
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, chapter)
	}

	return chapters, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) findOne(ctx context.Context, action, query string, arg any) (*Chapter, bool, error) {
	chapter, err := scanChapter(repository.pool.QueryRow(ctx, query, arg))
	if dberr.IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, action)
	}
	return chapter, true, nil
}

func scanChapter(row pgx.Row) (*Chapter, error) {
	var chapter Chapter
	err := row.Scan(
		&chapter.ID, &chapter.Name, &chapter.Description, &chapter.Order,
		&chapter.CourseID, &chapter.CreatedAt, &chapter.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}
