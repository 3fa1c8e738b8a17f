// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/platform/apperr"
)

func TestNotFound_Messages(t *testing.T) {
	tests := []struct {
		name    string
		err     *apperr.AppError
		message string
	}{
		{"by_id", apperr.NotFoundByID("Course", 7), "Course with id 7 not found"},
		{"by_field", apperr.NotFoundByField("Chapter", "name", "Intro"), "Chapter with name 'Intro' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, apperr.CodeNotFound, tt.err.Code)
			assert.Equal(t, http.StatusNotFound, tt.err.HTTPStatus)
			assert.True(t, apperr.IsNotFound(tt.err))
		})
	}
}

func TestIsNotFound_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", apperr.NotFoundByID("Course", 1))

	assert.True(t, apperr.IsNotFound(wrapped))
	assert.False(t, apperr.IsNotFound(apperr.Internal(errors.New("boom"))))
	assert.False(t, apperr.IsNotFound(errors.New("plain")))
	assert.False(t, apperr.IsNotFound(nil))
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Internal(cause)

	require.NotNil(t, apperr.As(err))
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "connection refused")
}
