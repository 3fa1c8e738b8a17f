// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/platform/apperr"
	"github.com/taibuivan/lmscatalog/internal/platform/validate"
)

/*
TestValidator_Reference tests the parent reference rule.
*/
func TestValidator_Reference(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		hasError bool
	}{
		{"positive", 10, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Reference("course.id", tt.id)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				ae := apperr.As(v.Err())
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, "course.id", ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").
		Reference("chapter.id", 0).
		Custom("order", true, "broken").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}

func TestParseID(t *testing.T) {
	id, err := validate.ParseID("id", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = validate.ParseID("id", "forty-two")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Equal(t, "id", ae.Details[0].Field)
}
