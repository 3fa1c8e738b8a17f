// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/core/course"
	"github.com/taibuivan/lmscatalog/internal/platform/postgres/pgtest"
	"github.com/taibuivan/lmscatalog/internal/platform/sqlite"
)

// repositories opens one SQL-backed store per engine; postgres skips itself without a database.
func repositories() map[string]func(t *testing.T) course.Repository {
	return map[string]func(t *testing.T) course.Repository{
		"sqlite": func(t *testing.T) course.Repository {
			db, err := sqlite.Open(sqlite.MemoryPath, slog.New(slog.DiscardHandler))
			require.NoError(t, err)
			t.Cleanup(func() { _ = sqlite.Close(db) })
			return course.NewGormRepository(db)
		},
		"postgres": func(t *testing.T) course.Repository {
			return course.NewPostgresRepository(pgtest.Open(t))
		},
	}
}

/*
TestRepository_Save covers insert, overwrite and the unknown-id fallback.
*/
func TestRepository_Save(t *testing.T) {
	for name, open := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			// 1. Insert assigns identity and equal stamps
			first := &course.Course{Name: "Go", Description: "a"}
			require.NoError(t, repo.Save(ctx, first))
			assert.NotZero(t, first.ID)
			assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))

			// 2. Overwrite keeps the creation stamp
			createdAt := first.CreatedAt
			overwrite := &course.Course{ID: first.ID, Name: "Go 2", Description: "b"}
			require.NoError(t, repo.Save(ctx, overwrite))
			assert.Equal(t, first.ID, overwrite.ID)
			assert.True(t, createdAt.Equal(overwrite.CreatedAt))

			stored, found, err := repo.FindByID(ctx, first.ID)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "Go 2", stored.Name)
			assert.True(t, createdAt.Equal(stored.CreatedAt))

			// 3. Unknown id inserts under a store-assigned id
			ghost := &course.Course{ID: 500, Name: "Ghost"}
			require.NoError(t, repo.Save(ctx, ghost))
			assert.NotEqual(t, int64(500), ghost.ID)

			exists, err := repo.ExistsByID(ctx, 500)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestRepository_Lookups(t *testing.T) {
	for name, open := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			_, found, err := repo.FindByID(ctx, 1)
			require.NoError(t, err)
			assert.False(t, found)

			a := &course.Course{Name: "Twin"}
			b := &course.Course{Name: "Twin"}
			require.NoError(t, repo.Save(ctx, a))
			require.NoError(t, repo.Save(ctx, b))

			got, found, err := repo.FindByName(ctx, "Twin")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, a.ID, got.ID)

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Less(t, all[0].ID, all[1].ID)
		})
	}
}

func TestRepository_ConditionalWrites(t *testing.T) {
	for name, open := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			updated, err := repo.UpdateIfExists(ctx, &course.Course{ID: 3, Name: "x"})
			require.NoError(t, err)
			assert.False(t, updated)

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)

			row := &course.Course{Name: "Go"}
			require.NoError(t, repo.Save(ctx, row))

			row.Name = "Go!"
			updated, err = repo.UpdateIfExists(ctx, row)
			require.NoError(t, err)
			assert.True(t, updated)

			deleted, err := repo.DeleteIfExists(ctx, row.ID)
			require.NoError(t, err)
			assert.True(t, deleted)

			deleted, err = repo.DeleteIfExists(ctx, row.ID)
			require.NoError(t, err)
			assert.False(t, deleted)

			assert.NoError(t, repo.DeleteByID(ctx, row.ID))
		})
	}
}
