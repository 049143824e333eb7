package cli

import (
	"testing"
	"unicode/utf8"
)

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{250, "$2.50"},
		{1648, "$16.48"},
		{2097, "$20.97"},
		{-699, "-$6.99"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.cents); got != tc.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestParseCents(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"12", 1200},
		{"12.5", 1250},
		{"12.34", 1234},
		{"$6.99", 699},
		{" 0.05 ", 5},
		{"-3.25", -325},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.input)
		if err != nil {
			t.Errorf("ParseCents(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCents(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	cases := []struct {
		input string
		max   int
		want  string
	}{
		{"Pizza", 10, "Pizza"},
		{"Margherita Special", 10, "Margherit…"},
		{"Пельмени со сметаной", 10, "Пельмени …"},
		{"日本語のメニュー項目です", 5, "日本語の…"},
	}
	for _, tc := range cases {
		got := truncate(tc.input, tc.max)
		if got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tc.input, tc.max)
		}
	}
}

func TestParseCentsRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "abc", "1.234", "1.x"} {
		if _, err := ParseCents(input); err == nil {
			t.Errorf("ParseCents(%q) should fail", input)
		}
	}
}
