// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/taibuivan/lmscatalog/internal/platform/constants"
)

// cacheKeyPrefix namespaces course entries in the shared cache.
const cacheKeyPrefix = "catalog:course:"

// evictionHold is how long an evicted key refuses fills. It outlives any
// request that may have read the row before the write.
const evictionHold = constants.GlobalRequestTimeout

// evictedMarker takes the place of an evicted entry. JSON payloads never start with NUL.
var evictedMarker = []byte("\x00evicted")

// Cache is the byte-level key/value contract the read-through decorator needs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetIfAbsent stores value only when key holds nothing, reporting whether it did.
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}

/*
CachedRepository decorates a [Repository] with a read-through cache for
lookups by id.

Description: Writes through the decorator replace the entry with a marker
for [evictionHold] instead of deleting it, and fills only land on empty
keys. A reader that loaded the row before a concurrent write therefore
cannot put the old row back.

Cache failures are logged and never fail the call; the wrapped repository
stays the source of truth.
*/
type CachedRepository struct {
	Repository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with cache.
func NewCachedRepository(next Repository, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{Repository: next, cache: cache, ttl: ttl, logger: logger}
}

func (repository *CachedRepository) FindByID(ctx context.Context, id int64) (*Course, bool, error) {
	key := cacheKey(id)

	if payload, hit, err := repository.cache.Get(ctx, key); err != nil {
		repository.logger.Warn("course_cache_read_failed", slog.Int64("course_id", id), slog.Any("error", err))
	} else if hit && !bytes.Equal(payload, evictedMarker) {
		var course Course
		if err := json.Unmarshal(payload, &course); err == nil {
			return &course, true, nil
		}
	}

	course, found, err := repository.Repository.FindByID(ctx, id)
	if err != nil || !found {
		return course, found, err
	}

	if payload, err := json.Marshal(course); err == nil {
		if _, err := repository.cache.SetIfAbsent(ctx, key, payload, repository.ttl); err != nil {
			repository.logger.Warn("course_cache_write_failed", slog.Int64("course_id", id), slog.Any("error", err))
		}
	}

	return course, true, nil
}

func (repository *CachedRepository) Save(ctx context.Context, course *Course) error {
	// A fresh insert has nothing cached; an overwrite keeps its id.
	previousID := course.ID
	err := repository.Repository.Save(ctx, course)
	repository.evict(ctx, previousID)
	return err
}

func (repository *CachedRepository) UpdateIfExists(ctx context.Context, course *Course) (bool, error) {
	found, err := repository.Repository.UpdateIfExists(ctx, course)
	repository.evict(ctx, course.ID)
	return found, err
}

func (repository *CachedRepository) DeleteByID(ctx context.Context, id int64) error {
	err := repository.Repository.DeleteByID(ctx, id)
	repository.evict(ctx, id)
	return err
}

func (repository *CachedRepository) DeleteIfExists(ctx context.Context, id int64) (bool, error) {
	found, err := repository.Repository.DeleteIfExists(ctx, id)
	repository.evict(ctx, id)
	return found, err
}

func (repository *CachedRepository) evict(ctx context.Context, id int64) {
	if id == 0 {
		return
	}

	if err := repository.cache.Set(ctx, cacheKey(id), evictedMarker, evictionHold); err != nil {
		repository.logger.Warn("course_cache_evict_failed", slog.Int64("course_id", id), slog.Any("error", err))
	}
}

func cacheKey(id int64) string {
	return cacheKeyPrefix + strconv.FormatInt(id, 10)
}
