// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lesson_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/core/chapter"
	"github.com/taibuivan/lmscatalog/internal/core/course"
	"github.com/taibuivan/lmscatalog/internal/core/lesson"
	"github.com/taibuivan/lmscatalog/internal/platform/apperr"
	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
	"github.com/taibuivan/lmscatalog/internal/platform/postgres/pgtest"
	"github.com/taibuivan/lmscatalog/internal/platform/sqlite"
)

// fixture is one persistence engine with its three stores and the lesson service.
type fixture struct {
	courses  course.Repository
	chapters chapter.Repository
	lessons  lesson.Repository
	service  *lesson.Service
}

func newFixture(courses course.Repository, chapters chapter.Repository, lessons lesson.Repository) fixture {
	return fixture{
		courses:  courses,
		chapters: chapters,
		lessons:  lessons,
		service:  lesson.NewService(lessons, chapters, slog.New(slog.DiscardHandler)),
	}
}

func memoryFixture() fixture {
	db := memstore.New()
	return newFixture(course.NewMemoryRepository(db), chapter.NewMemoryRepository(db), lesson.NewMemoryRepository(db))
}

// fixtures opens one fixture per engine; postgres skips itself without a database.
func fixtures() map[string]func(t *testing.T) fixture {
	return map[string]func(t *testing.T) fixture{
		"memory": func(*testing.T) fixture { return memoryFixture() },
		"sqlite": func(t *testing.T) fixture {
			db, err := sqlite.Open(sqlite.MemoryPath, slog.New(slog.DiscardHandler))
			require.NoError(t, err)
			t.Cleanup(func() { _ = sqlite.Close(db) })
			return newFixture(course.NewGormRepository(db), chapter.NewGormRepository(db), lesson.NewGormRepository(db))
		},
		"postgres": func(t *testing.T) fixture {
			pool := pgtest.Open(t)
			return newFixture(course.NewPostgresRepository(pool), chapter.NewPostgresRepository(pool), lesson.NewPostgresRepository(pool))
		},
	}
}

func (f fixture) course(t *testing.T, name string) *course.Course {
	t.Helper()
	row := &course.Course{Name: name}
	require.NoError(t, f.courses.Save(context.Background(), row))
	return row
}

func (f fixture) chapter(t *testing.T, courseID int64, name string, order int) *chapter.Chapter {
	t.Helper()
	row := &chapter.Chapter{Name: name, Order: order, CourseID: courseID}
	require.NoError(t, f.chapters.Save(context.Background(), row))
	return row
}

func (f fixture) lesson(t *testing.T, chapterID int64, name string, order int) *lesson.Lesson {
	t.Helper()
	row, err := f.service.Create(context.Background(), &lesson.Lesson{Name: name, Order: order, ChapterID: chapterID})
	require.NoError(t, err)
	return row
}

func names(lessons []*lesson.Lesson) []string {
	result := make([]string, len(lessons))
	for i, l := range lessons {
		result[i] = l.Name
	}
	return result
}

/*
TestService_CourseHierarchy walks a course down to its lessons and back.
*/
func TestService_CourseHierarchy(t *testing.T) {
	for name, open := range fixtures() {
		t.Run(name, func(t *testing.T) {
			f := open(t)
			ctx := context.Background()

			// 1. Build the hierarchy
			owner := f.course(t, "Go")
			basics := f.chapter(t, owner.ID, "Basics", 1)
			created := f.lesson(t, basics.ID, "Variables", 1)

			// 2. Every lookup path reaches the lesson
			byChapter, err := f.service.GetLessonsByChapterID(ctx, basics.ID)
			require.NoError(t, err)
			assert.Equal(t, []string{"Variables"}, names(byChapter))

			byCourse, err := f.service.GetLessonsByCourseID(ctx, owner.ID)
			require.NoError(t, err)
			require.Len(t, byCourse, 1)
			assert.Equal(t, created.ID, byCourse[0].ID)
			assert.Equal(t, basics.ID, byCourse[0].ChapterID)

			// 3. Unknown course yields an empty list
			none, err := f.service.GetLessonsByCourseID(ctx, 9999)
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)

			// 4. Deleting the course removes chapter and lesson
			require.NoError(t, course.NewService(f.courses, slog.New(slog.DiscardHandler)).DeleteByID(ctx, owner.ID))

			_, err = f.service.GetByID(ctx, created.ID)
			assert.True(t, apperr.IsNotFound(err))

			_, found, err := f.chapters.FindByID(ctx, basics.ID)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

/*
TestService_GetLessonsByCourseID_Ordering checks that the join and the
chapter-by-chapter composition agree.
*/
func TestService_GetLessonsByCourseID_Ordering(t *testing.T) {
	for name, open := range fixtures() {
		t.Run(name, func(t *testing.T) {
			f := open(t)
			owner := f.course(t, "Go")
			other := f.course(t, "Rust")

			late := f.chapter(t, owner.ID, "Late", 2)
			early := f.chapter(t, owner.ID, "Early", 1)
			tied := f.chapter(t, owner.ID, "Tied", 1)
			foreign := f.chapter(t, other.ID, "Foreign", 0)

			f.lesson(t, late.ID, "late-a", 0)
			f.lesson(t, early.ID, "early-b", 2)
			f.lesson(t, early.ID, "early-a", 1)
			f.lesson(t, tied.ID, "tied-a", 5)
			f.lesson(t, early.ID, "early-c", 2)
			f.lesson(t, foreign.ID, "foreign", 0)

			got, err := f.service.GetLessonsByCourseID(context.Background(), owner.ID)
			require.NoError(t, err)
			assert.Equal(t, []string{"early-a", "early-b", "early-c", "tied-a", "late-a"}, names(got))
		})
	}
}

func TestService_SearchLessons(t *testing.T) {
	for name, open := range fixtures() {
		t.Run(name, func(t *testing.T) {
			f := open(t)
			ctx := context.Background()
			owner := f.course(t, "Go")
			basics := f.chapter(t, owner.ID, "Basics", 1)

			f.lesson(t, basics.ID, "Énumérations", 1)
			loops := f.lesson(t, basics.ID, "Loops", 2)
			f.lesson(t, basics.ID, "ENUM tricks", 3)

			tests := []struct {
				fragment string
				want     []string
			}{
				{"enum", []string{"Énumérations", "ENUM tricks"}},
				{"ÉNUMÉ", []string{"Énumérations"}},
				{"oop", []string{"Loops"}},
				{"missing", []string{}},
				{"", []string{}},
				{"   ", []string{}},
			}

			for _, tt := range tests {
				got, err := f.service.SearchLessons(ctx, tt.fragment)
				require.NoError(t, err)
				assert.Equal(t, tt.want, names(got), "fragment %q", tt.fragment)
			}

			// A rename is searchable under the new name only
			loops.Name = "Itération"
			_, err := f.service.Update(ctx, loops)
			require.NoError(t, err)

			got, err := f.service.SearchLessons(ctx, "iter")
			require.NoError(t, err)
			assert.Equal(t, []string{"Itération"}, names(got))

			got, err = f.service.SearchLessons(ctx, "loop")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	f := memoryFixture()

	_, err := f.service.GetByID(ctx, 100)
	assert.Equal(t, "Lesson with id 100 not found", err.Error())

	_, err = f.service.GetByName(ctx, "Variables")
	assert.Equal(t, "Lesson with name 'Variables' not found", err.Error())

	_, err = f.service.Update(ctx, &lesson.Lesson{ID: 100})
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(f.service.DeleteByID(ctx, 100)))
}

func TestService_Create_MissingChapter(t *testing.T) {
	var logs bytes.Buffer
	db := memstore.New()
	course.NewMemoryRepository(db)
	chapters := chapter.NewMemoryRepository(db)
	service := lesson.NewService(lesson.NewMemoryRepository(db), chapters, slog.New(slog.NewJSONHandler(&logs, nil)))

	_, err := service.Create(context.Background(), &lesson.Lesson{Name: "orphan", ChapterID: 1})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternal, apperr.As(err).Code)
	assert.Contains(t, logs.String(), `"msg":"lesson_chapter_missing"`)

	// Other failures are not reported as a missing chapter.
	logs.Reset()
	_, err = service.Update(context.Background(), &lesson.Lesson{ID: 5, ChapterID: 1})
	assert.True(t, apperr.IsNotFound(err))
	assert.NotContains(t, logs.String(), "lesson_chapter_missing")
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := memoryFixture()
	owner := f.course(t, "Go")
	first := f.chapter(t, owner.ID, "First", 1)
	second := f.chapter(t, owner.ID, "Second", 2)
	row := f.lesson(t, first.ID, "Variables", 1)

	// Moving a lesson to another chapter re-homes it.
	row.ChapterID = second.ID
	_, err := f.service.Update(ctx, row)
	require.NoError(t, err)

	moved, err := f.service.GetLessonsByChapterID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Variables"}, names(moved))

	left, err := f.service.GetLessonsByChapterID(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}
