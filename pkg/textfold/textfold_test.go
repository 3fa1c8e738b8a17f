// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textfold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/lmscatalog/pkg/textfold"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "variables", textfold.Fold("VARIABLES"))
	assert.Equal(t, "enumerations", textfold.Fold("Énumérations"))
	assert.Equal(t, "hello world", textfold.Fold("  Hello \t World "))
}

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		fragment string
		want     bool
	}{
		{"case_insensitive", "Java Variables", "variab", true},
		{"accent_insensitive", "Les Énumérations", "enum", true},
		{"missing", "Loops", "var", false},
		{"empty_fragment", "Loops", "", false},
		{"blank_fragment", "Loops", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textfold.Contains(tt.s, tt.fragment))
		})
	}
}
