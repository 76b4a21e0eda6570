package equation

import (
	"errors"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []float64
	}{
		{"constant", "3", []float64{3}},
		{"identity", "x", []float64{0, 1}},
		{"negated identity", "-x", []float64{0, -1}},
		{"cubic", "x^3 + 4x^2 + 3x - 1", []float64{-1, 3, 4, 1}},
		{"unordered", "2 - x^2", []float64{2, 0, -1}},
		{"y prefix", "y = 0.5x", []float64{0, 0.5}},
		{"accumulates", "x + x + 1 + 2", []float64{3, 2}},
		{"gap", "x^4", []float64{0, 0, 0, 0, 1}},
		{"explicit multiply", "2*x^2", []float64{0, 0, 2}},
		{"uppercase", "X^2", []float64{0, 0, 1}},
		{"leading plus", "+1.5x", []float64{0, 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrEmptyEquation},
		{"blank", "   ", ErrEmptyEquation},
		{"only prefix", "y=", ErrEmptyEquation},
		{"letters", "abc", ErrInvalidTerm},
		{"double x", "xx", ErrInvalidTerm},
		{"missing caret", "x2", ErrInvalidTerm},
		{"bad exponent", "x^q", ErrInvalidTerm},
		{"huge exponent", "x^100000", ErrInvalidTerm},
		{"dangling sign", "x+", ErrInvalidTerm},
		{"trig", "sin(x)", ErrUnsupportedEquation},
		{"exponential", "2^x", ErrUnsupportedEquation},
		{"circle", "x^2 + y^2 = 1", ErrUnsupportedEquation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"x^2", Polynomial},
		{"y = cos(x)", Trigonometric},
		{"exp(x)", Exponential},
		{"x^2 + y^2 = 4", Circle},
	}
	for _, tt := range tests {
		if got := New(tt.in).Kind; got != tt.want {
			t.Errorf("New(%q).Kind = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   []float64
		want string
	}{
		{nil, "0"},
		{[]float64{0, 0}, "0"},
		{[]float64{1}, "1"},
		{[]float64{-2.5}, "-2.5"},
		{[]float64{0, 1}, "x"},
		{[]float64{0, -1}, "-x"},
		{[]float64{1, -3, 0.5}, "0.5x^2-3x+1"},
		{[]float64{0, 0, 0, 1}, "x^3"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Format(tt.in)
			if got != tt.want {
				t.Fatalf("Format(%v) = %q, want %q", tt.in, got, tt.want)
			}
			back, err := Parse(got)
			if err != nil {
				t.Fatalf("Parse(%q): %v", got, err)
			}
			for i := range max(len(back), len(tt.in)) {
				var a, b float64
				if i < len(back) {
					a = back[i]
				}
				if i < len(tt.in) {
					b = tt.in[i]
				}
				if a != b {
					t.Errorf("Parse(Format(%v))[%d] = %v, want %v", tt.in, i, a, b)
				}
			}
		})
	}
}
