// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"strings"
	"testing"
)

// =============================================================================
// SANITIZATION TESTS
// =============================================================================

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain expression", "12+5", "12+5"},
		{"model prose", "The answer is 12+5!", "12+5"},
		{"whitespace", " 2 + 2 ", "2+2"},
		{"markdown fence", "```\n100-37\n```", "100-37"},
		{"parens and decimals", "(1.5 * 4)", "(1.5*4)"},
		{"nothing usable", "hello there", ""},
		{"equals sign stripped", "2+2=4", "2+24"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.raw); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

// =============================================================================
// EXACT PATH TESTS
// =============================================================================

func TestEvaluate_ExactPath(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"addition", "1234567890+1", "1234567891"},
		{"subtraction", "10000000000-1", "9999999999"},
		{"multiplication", "9999999999*2", "19999999998"},
		{"truncating division", "10000000001/2", "5000000000"},
		{"huge operands", "123456789012345678901234567890+1", "123456789012345678901234567891"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Evaluate(tc.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tc.expr, err)
			}
			if !res.IsExact() {
				t.Errorf("Evaluate(%q) should use the exact path", tc.expr)
			}
			if res.Exact != tc.want {
				t.Errorf("Exact = %q, want %q", res.Exact, tc.want)
			}
			if res.Formatted != tc.want {
				t.Errorf("Formatted = %q, want %q", res.Formatted, tc.want)
			}
		})
	}
}

func TestEvaluate_ExactPathRejectsComplex(t *testing.T) {
	// The exact path only supports a single binary operation.
	tests := []string{
		"1234567890+1+1",
		"(1234567890+1)",
		"1234567890*2-3",
		"1234567890.5+1",
	}

	for _, expr := range tests {
		_, err := Evaluate(expr)
		if err == nil {
			t.Errorf("Evaluate(%q) should fail in exact mode", expr)
			continue
		}
		if err.Error() != "Complex expression not supported" {
			t.Errorf("Evaluate(%q) error = %q, want %q", expr, err.Error(), "Complex expression not supported")
		}
	}
}

func TestEvaluate_ExactPathDivisionByZero(t *testing.T) {
	_, err := Evaluate("1234567890/0")
	if err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Errorf("expected division by zero error, got %v", err)
	}
}

// =============================================================================
// FLOAT PATH TESTS
// =============================================================================

func TestEvaluate_FloatPath(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"simple addition", "2+2", "4"},
		{"precedence", "2+3*4", "14"},
		{"parentheses", "(2+3)*4", "20"},
		{"decimals", "12.5*3", "37.5"},
		{"division", "100/8", "12.5"},
		{"unary minus", "-3+5", "2"},
		{"negated group", "-(2+3)*2", "-10"},
		{"double negation", "--4", "4"},
		{"nested parens", "((1+2)*(3+4))", "21"},
		{"six decimal rounding", "1/3", "0.333333"},
		{"float artifact rounded away", "0.1+0.2", "0.3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Evaluate(tc.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tc.expr, err)
			}
			if res.IsExact() {
				t.Errorf("Evaluate(%q) should use the float path", tc.expr)
			}
			if res.Formatted != tc.want {
				t.Errorf("Formatted = %q, want %q", res.Formatted, tc.want)
			}
		})
	}
}

func TestEvaluate_FloatPathErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"operator only", "+"},
		{"trailing operator", "2+"},
		{"mismatched open paren", "(2+3"},
		{"mismatched close paren", "2+3)"},
		{"empty parens", "()"},
		{"double dot", "1..2"},
		{"division by zero", "1/0"},
		{"letters", "2+x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Evaluate(tc.expr); err == nil {
				t.Errorf("Evaluate(%q) should fail", tc.expr)
			}
		})
	}
}

// Evaluating the same expression twice must yield identical results.
func TestEvaluate_Idempotent(t *testing.T) {
	for _, expr := range []string{"2+2", "1/3", "1234567890+1", "(1.5*4)-2"} {
		a, errA := Evaluate(expr)
		b, errB := Evaluate(expr)
		if (errA == nil) != (errB == nil) {
			t.Fatalf("Evaluate(%q): inconsistent errors %v / %v", expr, errA, errB)
		}
		if a != b {
			t.Errorf("Evaluate(%q): %+v != %+v", expr, a, b)
		}
	}
}

// =============================================================================
// FORMATTING TESTS
// =============================================================================

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0"},
		{"integer", 4, "4"},
		{"plain decimal", 37.5, "37.5"},
		{"six decimals kept", 123.456789, "123.456789"},
		{"trailing zeros stripped", 2.5000001, "2.5"},
		{"tiny goes scientific", 0.00005, "5.0000e-05"},
		{"boundary stays plain", 0.0001, "0.0001"},
		{"huge goes scientific", 1e11, "1.0000e+11"},
		{"large but plain", 1e10, "10000000000"},
		{"negative", -12.25, "-12.25"},
		{"tiny negative scientific", -0.00005, "-5.0000e-05"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatNumber(tc.in); got != tc.want {
				t.Errorf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
