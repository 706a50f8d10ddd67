package numeric

import (
	"fmt"
	"math"
	"strings"
)

// Polynomial holds coefficients from highest degree to constant term.
type Polynomial struct {
	_      doNotCompare
	coeffs []float64
}

// NewPolynomial builds lead·x^n + rest[0]·x^(n-1) + ... + rest[n-1].
func NewPolynomial(lead float64, rest ...float64) (Polynomial, error) {
	if lead == 0 {
		return Polynomial{}, fmt.Errorf("%w: leading coefficient is zero", ErrInvalidArgument)
	}
	coeffs := make([]float64, 0, len(rest)+1)
	coeffs = append(coeffs, lead)
	coeffs = append(coeffs, rest...)
	return Polynomial{coeffs: coeffs}, nil
}

// MustPolynomial is NewPolynomial for constant coefficients.
func MustPolynomial(lead float64, rest ...float64) Polynomial {
	p, err := NewPolynomial(lead, rest...)
	if err != nil {
		panic(err)
	}
	return p
}

// Degree returns the polynomial degree.
func (p Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// At evaluates the polynomial at x.
func (p Polynomial) At(x float64) float64 {
	var acc float64
	for _, c := range p.coeffs {
		acc = acc*x + c
	}
	return acc
}

func (p Polynomial) String() string {
	var sb strings.Builder
	n := p.Degree()
	for i, c := range p.coeffs {
		pow := n - i
		if c == 0 {
			continue
		}
		if c < 0 {
			sb.WriteByte('-')
		} else if sb.Len() > 0 {
			sb.WriteByte('+')
		}
		a := math.Abs(c)
		if a != 1 || pow == 0 {
			sb.WriteString(fmt.Sprint(a))
		}
		switch {
		case pow == 1:
			sb.WriteByte('x')
		case pow > 1:
			fmt.Fprintf(&sb, "x^%d", pow)
		}
	}
	return sb.String()
}
