// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textfold normalizes display names for loose, human-friendly matching.
//
// # Usage
//
// Lesson search compares names without regard to case or accents
// (e.g., "Énumérations" matches "enum").
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts s into its comparison form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Applies Unicode case folding.
// 4. Collapses runs of whitespace into a single space.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = cases.Fold().String(result)
	return strings.Join(strings.Fields(result), " ")
}

// Contains reports whether fragment occurs in s after folding both.
// An empty fragment never matches.
func Contains(s, fragment string) bool {
	needle := Fold(fragment)
	if needle == "" {
		return false
	}
	return strings.Contains(Fold(s), needle)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
