// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxRunes int
		want     string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"tiny max", "hello", 2, "he"},
		{"zero max", "hello", 0, ""},
		{"unicode safe", "日本語のテキスト", 5, "日本..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateRunes(tc.in, tc.maxRunes); got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.in, tc.maxRunes, got, tc.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	// CJK characters are two columns wide.
	if got := TruncateWidth("日本語", 10); got != "日本語" {
		t.Errorf("TruncateWidth = %q, want unchanged", got)
	}
	got := TruncateWidth("日本語のテキスト", 8)
	if StringWidth(got) > 8 {
		t.Errorf("TruncateWidth result %q is %d columns, want <= 8", got, StringWidth(got))
	}

	if got := TruncateWidth("hello", 0); got != "" {
		t.Errorf("TruncateWidth with zero width = %q", got)
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{4823449600, "4.5 GB"},
	}

	for _, tc := range tests {
		if got := HumanBytes(tc.in); got != tc.want {
			t.Errorf("HumanBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
