package invoice

import (
	"math"
	"testing"

	"invoicer/pkg/models"
)

func TestTotalToWords(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Zero Rupees Only."},
		{1, "One Rupees Only."},
		{13, "Thirteen Rupees Only."},
		{40, "Forty Rupees Only."},
		{21, "Twenty-one Rupees Only."},
		{100, "One Hundred Rupees Only."},
		{105, "One Hundred Five Rupees Only."},
		{1500, "One Thousand Five Hundred Rupees Only."},
		{2250, "Two Thousand Two Hundred Fifty Rupees Only."},
		{50000, "Fifty Thousand Rupees Only."},
		{1000001, "One Million One Rupees Only."},
		{987654321, "Nine Hundred Eighty-seven Million Six Hundred Fifty-four Thousand Three Hundred Twenty-one Rupees Only."},
		{2_000_000_000, "Two Billion Rupees Only."},
	}

	for _, tt := range tests {
		if got := TotalToWords(tt.in); got != tt.want {
			t.Errorf("TotalToWords(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTotalToWordsFloorsInput(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"fraction dropped", 1500.99, "One Thousand Five Hundred Rupees Only."},
		{"below one", 0.75, "Zero Rupees Only."},
		{"negative", -250, "Zero Rupees Only."},
		{"NaN", math.NaN(), "Zero Rupees Only."},
		{"negative infinity", math.Inf(-1), "Zero Rupees Only."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalToWords(tt.in); got != tt.want {
				t.Errorf("TotalToWords(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTotalToWordsSaturates(t *testing.T) {
	got := TotalToWords(math.Inf(1))
	want := TotalToWords(float64(math.MaxInt64))
	if got != want {
		t.Errorf("TotalToWords(+Inf) = %q, want %q", got, want)
	}
	if got[:4] != "Nine" {
		t.Errorf("TotalToWords(+Inf) = %q, want it to start with Nine Quintillion", got)
	}
}

func TestTotalToWordsAboveBillions(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1e12, "One Trillion Rupees Only."},
		{36_854_775_807_000, "Thirty-six Trillion Eight Hundred Fifty-four Billion Seven Hundred Seventy-five Million Eight Hundred Seven Thousand Rupees Only."},
		{2e15, "Two Quadrillion Rupees Only."},
	}
	for _, tt := range tests {
		if got := TotalToWords(tt.in); got != tt.want {
			t.Errorf("TotalToWords(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// A saturated total still renders every scale.
	totals := CalcTotals([]models.LineItem{{Quantity: 2, UnitPrice: 5e18}}, nil)
	want := "Nine Quintillion Two Hundred Twenty-three Quadrillion Three Hundred Seventy-two Trillion " +
		"Thirty-six Billion Eight Hundred Fifty-four Million Seven Hundred Seventy-five Thousand " +
		"Eight Hundred Seven Rupees Only."
	if got := TotalToWords(float64(totals.Total)); got != want {
		t.Errorf("TotalToWords(MaxInt64) = %q, want %q", got, want)
	}
}
