// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import "testing"

func TestIsMathQuery(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"keyword and pattern", "what is 7+5", true},
		{"keyword only", "calculate the tip for dinner", true},
		{"keyword uppercase", "CALCULATE 2 AND 3", true},
		{"plus keyword", "seven plus five", true},
		{"percentage keyword", "what percentage of users churned", true},
		{"pattern only", "7+5", true},
		{"pattern with spaces", "12 * 3", true},
		{"caret pattern", "2 ^ 8", true},
		{"modulo pattern", "10 % 3", true},
		{"greeting", "hello there", false},
		{"plain question", "tell me about go interfaces", false},
		{"digits without operator", "list 3 facts about 7 continents", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsMathQuery(tc.text); got != tc.want {
				t.Errorf("IsMathQuery(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
