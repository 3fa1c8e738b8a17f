// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lesson

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lmscatalog/internal/platform/database/schema"
	"github.com/taibuivan/lmscatalog/internal/platform/dberr"
	"github.com/taibuivan/lmscatalog/pkg/textfold"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] and [CourseScopedFinder] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed lesson store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = schema.List("", schema.CatalogLesson.Columns()...)

func (repository *PostgresRepository) FindAll(ctx context.Context) ([]*Lesson, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		selectColumns, schema.CatalogLesson.Table, schema.CatalogLesson.ID)

	return repository.list(ctx, "list_lessons", query)
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Lesson, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogLesson.Table, schema.CatalogLesson.ID)

	return repository.findOne(ctx, "get_lesson", query, id)
}

func (repository *PostgresRepository) FindByName(ctx context.Context, name string) (*Lesson, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC LIMIT 1`,
		selectColumns, schema.CatalogLesson.Table, schema.CatalogLesson.Name, schema.CatalogLesson.ID)

	return repository.findOne(ctx, "get_lesson_by_name", query, name)
}

func (repository *PostgresRepository) FindByChapterID(ctx context.Context, chapterID int64) ([]*Lesson, error) {
	table := schema.CatalogLesson
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		selectColumns, table.Table, table.ChapterID, table.Order, table.ID)

	return repository.list(ctx, "list_lessons_by_chapter", query, chapterID)
}

/*
FindByCourseID lists every lesson of a course with one join through chapters.

Description: Ordering follows the chapter first, so the result equals the
concatenation of the per-chapter listings.
*/
func (repository *PostgresRepository) FindByCourseID(ctx context.Context, courseID int64) ([]*Lesson, error) {
	lesson, chapter := schema.CatalogLesson, schema.CatalogChapter

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s l
		JOIN %s c ON c.%s = l.%s
		WHERE c.%s = $1
		ORDER BY c.%s ASC, c.%s ASC, l.%s ASC, l.%s ASC
	`,
		schema.List("l", lesson.Columns()...),
		lesson.Table,
		chapter.Table, chapter.ID, lesson.ChapterID,
		chapter.CourseID,
		chapter.Order, chapter.ID, lesson.Order, lesson.ID,
	)

	return repository.list(ctx, "list_lessons_by_course", query, courseID)
}

/*
SearchByName returns lessons whose name contains fragment.

Description: The fragment is folded with [textfold] and matched against the
folded name kept beside every row, so only matches leave the database and
case and accent handling is identical on every backend.
*/
func (repository *PostgresRepository) SearchByName(ctx context.Context, fragment string) ([]*Lesson, error) {
	needle := textfold.Fold(fragment)
	if needle == "" {
		return make([]*Lesson, 0), nil
	}

	table := schema.CatalogLesson
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE strpos(%s, $1) > 0 ORDER BY %s ASC`,
		selectColumns, table.Table, table.NameFolded, table.ID)

	return repository.list(ctx, "search_lessons", query, needle)
}

func (repository *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogLesson.Table, schema.CatalogLesson.ID)

	var exists bool
	err := repository.pool.QueryRow(ctx, query, id).Scan(&exists)
	return exists, dberr.Wrap(err, "exists_lesson")
}

// Save upserts a lesson in a single statement; see the course store for the shape.
func (repository *PostgresRepository) Save(ctx context.Context, lesson *Lesson) error {
	table := schema.CatalogLesson
	returning := schema.List("", table.ID, table.CreatedAt, table.UpdatedAt)

	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE %[1]s SET %[2]s = $2, %[3]s = $3, %[4]s = $4, %[5]s = $5, %[10]s = $6, %[7]s = NOW()
			WHERE %[8]s = $1
			RETURNING %[9]s
		), inserted AS (
			INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[10]s, %[6]s, %[7]s)
			SELECT $2, $3, $4, $5, $6, NOW(), NOW()
			WHERE NOT EXISTS (SELECT 1 FROM updated)
			RETURNING %[9]s
		)
		SELECT %[9]s FROM updated
		UNION ALL
		SELECT %[9]s FROM inserted
	`,
		table.Table, table.Name, table.Description, table.Order, table.ChapterID,
		table.CreatedAt, table.UpdatedAt, table.ID, returning, table.NameFolded,
	)

	err := repository.pool.QueryRow(ctx, query,
		lesson.ID, lesson.Name, lesson.Description, lesson.Order, lesson.ChapterID, textfold.Fold(lesson.Name),
	).Scan(&lesson.ID, &lesson.CreatedAt, &lesson.UpdatedAt)
	return dberr.Wrap(err, "save_lesson")
}

func (repository *PostgresRepository) UpdateIfExists(ctx context.Context, lesson *Lesson) (bool, error) {
	table := schema.CatalogLesson
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		table.Table, table.Name, table.Description, table.Order, table.ChapterID, table.NameFolded, table.UpdatedAt,
		table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		lesson.ID, lesson.Name, lesson.Description, lesson.Order, lesson.ChapterID, textfold.Fold(lesson.Name),
	).Scan(&lesson.CreatedAt, &lesson.UpdatedAt)
	if dberr.IsNoRows(err) {
		return false, nil
	}
	return err == nil, dberr.Wrap(err, "update_lesson")
}

func (repository *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := repository.DeleteIfExists(ctx, id)
	return err
}

func (repository *PostgresRepository) DeleteIfExists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogLesson.Table, schema.CatalogLesson.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_lesson")
	}
	return result.RowsAffected() > 0, nil
}

// list runs query and collects every row.
func (repository *PostgresRepository) list(ctx context.Context, action, query string, args ...any) ([]*Lesson, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	lessons := make([]*Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_lesson")
		}
		lessons = append(lessons, lesson)
	}

	return lessons, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) findOne(ctx context.Context, action, query string, arg any) (*Lesson, bool, error) {
	lesson, err := scanLesson(repository.pool.QueryRow(ctx, query, arg))
	if dberr.IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, action)
	}
	return lesson, true, nil
}

func scanLesson(row pgx.Row) (*Lesson, error) {
	var lesson Lesson
	err := row.Scan(
		&lesson.ID, &lesson.Name, &lesson.Description, &lesson.Order,
		&lesson.ChapterID, &lesson.CreatedAt, &lesson.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}
