// Package equation parses user-entered equation text into polynomial coefficients.
package equation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrEmptyEquation is returned for blank input.
	ErrEmptyEquation = errors.New("equation is empty")
	// ErrInvalidTerm is returned when a term's coefficient or exponent cannot be read.
	ErrInvalidTerm = errors.New("invalid term")
	// ErrUnsupportedEquation is returned for equation kinds that cannot be plotted yet.
	ErrUnsupportedEquation = errors.New("unsupported equation kind")
)

// MaxDegree bounds the exponent accepted by the parser.
const MaxDegree = 64

// Kind is the family an equation belongs to.
type Kind int

const (
	Polynomial Kind = iota
	Exponential
	Trigonometric
	Circle
)

func (k Kind) String() string {
	switch k {
	case Polynomial:
		return "polynomial"
	case Exponential:
		return "exponential"
	case Trigonometric:
		return "trigonometric"
	case Circle:
		return "circle"
	default:
		return "unknown"
	}
}

var termPattern = regexp.MustCompile(`([+-]?[^+-]+)`)

// Equation is a piece of equation text and its detected kind.
type Equation struct {
	Text string
	Kind Kind
}

// New normalizes text and classifies it.
//
// Parameters:
//   - text: the raw equation text, optionally prefixed with "y="
//
// Returns:
//   - Equation: the classified equation
func New(text string) Equation {
	norm := normalize(text)
	return Equation{Text: norm, Kind: classify(norm)}
}

// Coefficients returns the ascending-power coefficients of a polynomial equation.
//
// Returns:
//   - []float64: coefficients, index i is the weight of x^i
//   - error: ErrEmptyEquation, ErrInvalidTerm or ErrUnsupportedEquation
func (e Equation) Coefficients() ([]float64, error) {
	if e.Kind != Polynomial {
		return nil, fmt.Errorf("%s %q: %w", e.Kind, e.Text, ErrUnsupportedEquation)
	}
	return parsePolynomial(e.Text)
}

// Parse is shorthand for New(text).Coefficients().
func Parse(text string) ([]float64, error) {
	return New(text).Coefficients()
}

func normalize(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	s := b.String()
	s = strings.TrimPrefix(s, "y=")
	return s
}

func classify(s string) Kind {
	switch {
	case strings.Contains(s, "y"):
		return Circle
	case strings.Contains(s, "sin") || strings.Contains(s, "cos") || strings.Contains(s, "tan"):
		return Trigonometric
	case strings.Contains(s, "^x") || strings.Contains(s, "exp"):
		return Exponential
	default:
		return Polynomial
	}
}

func parsePolynomial(s string) ([]float64, error) {
	if s == "" {
		return nil, ErrEmptyEquation
	}
	terms := termPattern.FindAllString(s, -1)
	if len(terms) == 0 || strings.Join(terms, "") != s {
		return nil, fmt.Errorf("%q: %w", s, ErrInvalidTerm)
	}

	var coeffs []float64
	for _, term := range terms {
		c, p, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		if p >= len(coeffs) {
			coeffs = append(coeffs, make([]float64, p+1-len(coeffs))...)
		}
		coeffs[p] += c
	}
	return coeffs, nil
}

// parseTerm reads "[+-][coefficient][*]x[^power]" or a bare constant.
func parseTerm(term string) (float64, int, error) {
	parts := strings.Split(term, "x")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("%q: %w", term, ErrInvalidTerm)
	}

	power := 0
	if len(parts) == 2 {
		power = 1
		if exp := parts[1]; exp != "" {
			if !strings.HasPrefix(exp, "^") {
				return 0, 0, fmt.Errorf("%q: exponent must follow '^': %w", term, ErrInvalidTerm)
			}
			p, err := strconv.ParseUint(exp[1:], 10, 32)
			if err != nil || p > MaxDegree {
				return 0, 0, fmt.Errorf("%q: bad exponent: %w", term, ErrInvalidTerm)
			}
			power = int(p)
		}
	}

	raw := strings.TrimSuffix(parts[0], "*")
	switch raw {
	case "", "+":
		return 1, power, nil
	case "-":
		return -1, power, nil
	}
	if len(parts) == 1 && strings.HasSuffix(parts[0], "*") {
		return 0, 0, fmt.Errorf("%q: %w", term, ErrInvalidTerm)
	}
	c, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: bad coefficient: %w", term, ErrInvalidTerm)
	}
	return c, power, nil
}

// Format renders coefficients as an equation Parse accepts, highest power first.
// Zero terms are omitted; an all-zero or empty list renders as "0".
//
// Parameters:
//   - coefficients: weights in ascending powers of x
//
// Returns:
//   - string: the equation text, without a "y=" prefix
func Format(coefficients []float64) string {
	var b strings.Builder
	for p := len(coefficients) - 1; p >= 0; p-- {
		c := coefficients[p]
		if c == 0 {
			continue
		}
		if c < 0 {
			b.WriteByte('-')
			c = -c
		} else if b.Len() > 0 {
			b.WriteByte('+')
		}
		if c != 1 || p == 0 {
			b.WriteString(strconv.FormatFloat(c, 'f', -1, 64))
		}
		switch {
		case p == 1:
			b.WriteByte('x')
		case p > 1:
			b.WriteString("x^" + strconv.Itoa(p))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
