package internal

import "testing"

func TestFormatCLP(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "$0"},
		{950, "$950"},
		{25000, "$25.000"},
		{1234567, "$1.234.567"},
		{10000000, "$10.000.000"},
	}

	for _, tt := range tests {
		if got := FormatCLP(tt.amount); got != tt.expected {
			t.Errorf("FormatCLP(%d): expected %q, got %q", tt.amount, tt.expected, got)
		}
	}
}

func TestFormatCLPRange(t *testing.T) {
	if got := FormatCLPRange(12000, 15000); got != "$12.000-$15.000" {
		t.Errorf("unexpected range format: %q", got)
	}
}
