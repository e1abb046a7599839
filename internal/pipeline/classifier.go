// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// classifier.go - Decides whether a query is routed through the math pipeline.
package pipeline

import (
	"regexp"
	"strings"
)

// =============================================================================
// MATH QUERY CLASSIFIER
// =============================================================================

// mathKeywords are the phrases that mark a query as arithmetic.
// Matched case-insensitively as substrings of the query.
var mathKeywords = []string{
	"calculate",
	"compute",
	"solve",
	"what is",
	"how much",
	"sum",
	"difference",
	"product",
	"quotient",
	"average",
	"percentage",
	"percent",
	"add",
	"subtract",
	"multiply",
	"divide",
	"plus",
	"minus",
	"times",
}

// operatorPattern matches two digit runs joined by an arithmetic operator,
// e.g. "7+5", "12 * 3", "2 ^ 8". Checked against the raw query text.
var operatorPattern = regexp.MustCompile(`\d+\s*[+\-*/^%]\s*\d+`)

// IsMathQuery reports whether text should be routed through the math
// pipeline. It returns true when the lowercased text contains any math
// keyword, or when the raw text contains a digit-operator-digit pattern.
//
// Pure and infallible: no error path, no side effects.
func IsMathQuery(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range mathKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return operatorPattern.MatchString(text)
}
