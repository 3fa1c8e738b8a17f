// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Absence of a row is never an error at the store layer: stores translate
// [IsNoRows] into a found=false result. Everything else is unclassified and
// becomes an [apperr.Internal].
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/taibuivan/lmscatalog/internal/platform/apperr"
	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
)

// SQLSTATE codes inspected by [IsForeignKeyViolation].
const (
	foreignKeyViolation = "23503"
)

// Wrap tags a storage error with the failed action and classifies it as an
// [apperr.AppError]. A nil error stays nil.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNoRows reports whether err signals an empty single-row result for any of
// the supported backends.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsForeignKeyViolation reports whether err is a referential-integrity failure
// raised by PostgreSQL, SQLite (through gorm) or the in-memory store.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolation
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, memstore.ErrForeignKey)
}
