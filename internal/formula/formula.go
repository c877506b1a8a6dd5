// Package formula evaluates user-authored pricing formulas.
//
// The grammar is deliberately tiny: numeric literals, the four arithmetic
// operators, parentheses, unary minus, right-associative '^' for exponents
// and a postfix '%' that divides by 100. Variables appear as literal
// {preco}-style tokens and are substituted textually before parsing; an
// unknown {token} fails closed instead of evaluating to NaN. No host code
// is ever executed.
package formula

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/construsol/proposal-service/internal/domain/errs"
)

// Variable names accepted inside {braces}.
const (
	VarPreco      = "preco"
	VarConsumo    = "consumo"
	VarQuebra     = "quebra"
	VarFator      = "fator"
	VarRendimento = "rendimento"
)

// Evaluate substitutes variables into the formula, parses it and returns
// the result rounded to 2 decimal places. Syntax errors, unknown variable
// references and non-finite results are reported as *errs.FormulaError.
func Evaluate(text string, vars map[string]float64) (decimal.Decimal, error) {
	substituted, err := substitute(text, vars)
	if err != nil {
		return decimal.Zero, err
	}

	p := &parser{src: substituted, formula: text}
	result := p.parseExpr()
	if p.err != nil {
		return decimal.Zero, p.err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return decimal.Zero, &errs.FormulaError{Formula: text, Reason: "unexpected trailing input at position " + strconv.Itoa(p.pos)}
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return decimal.Zero, &errs.FormulaError{Formula: text, Reason: "result is not a finite number"}
	}
	return decimal.NewFromFloat(result).Round(2), nil
}

// substitute replaces every {name} token with its numeric value. Values are
// parenthesized so negative substitutions keep their sign under operators.
func substitute(text string, vars map[string]float64) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] != '{' {
			b.WriteByte(text[i])
			i++
			continue
		}
		end := strings.IndexByte(text[i:], '}')
		if end < 0 {
			return "", &errs.FormulaError{Formula: text, Reason: "unterminated variable reference"}
		}
		name := strings.TrimSpace(text[i+1 : i+end])
		value, ok := vars[name]
		if !ok {
			return "", &errs.FormulaError{Formula: text, Reason: "undefined variable {" + name + "}"}
		}
		b.WriteByte('(')
		b.WriteString(strconv.FormatFloat(value, 'f', -1, 64))
		b.WriteByte(')')
		i += end + 1
	}
	return b.String(), nil
}

type parser struct {
	src     string
	formula string
	pos     int
	err     error
}

func (p *parser) fail(reason string) float64 {
	if p.err == nil {
		p.err = &errs.FormulaError{Formula: p.formula, Reason: reason}
	}
	return 0
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

// parseExpr handles '+' and '-'.
func (p *parser) parseExpr() float64 {
	left := p.parseTerm()
	for p.err == nil {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			left += p.parseTerm()
		case '-':
			p.pos++
			left -= p.parseTerm()
		default:
			return left
		}
	}
	return left
}

// parseTerm handles '*' and '/'.
func (p *parser) parseTerm() float64 {
	left := p.parseFactor()
	for p.err == nil {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			left *= p.parseFactor()
		case '/':
			p.pos++
			left /= p.parseFactor()
		default:
			return left
		}
	}
	return left
}

// parseFactor handles right-associative exponentiation.
func (p *parser) parseFactor() float64 {
	base := p.parseUnary()
	p.skipSpace()
	if p.peek() == '^' {
		p.pos++
		return math.Pow(base, p.parseFactor())
	}
	return base
}

func (p *parser) parseUnary() float64 {
	p.skipSpace()
	if p.peek() == '-' {
		p.pos++
		return -p.parseUnary()
	}
	if p.peek() == '+' {
		p.pos++
		return p.parseUnary()
	}
	return p.parsePostfix()
}

// parsePostfix applies any trailing '%' markers (10% == 0.1).
func (p *parser) parsePostfix() float64 {
	v := p.parsePrimary()
	for p.err == nil {
		p.skipSpace()
		if p.peek() != '%' {
			return v
		}
		p.pos++
		v /= 100
	}
	return v
}

func (p *parser) parsePrimary() float64 {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return p.fail("unexpected end of formula")
	}
	if p.src[p.pos] == '(' {
		p.pos++
		v := p.parseExpr()
		p.skipSpace()
		if p.peek() != ')' {
			return p.fail("missing closing parenthesis")
		}
		p.pos++
		return v
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() float64 {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if unicode.IsDigit(c) || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return p.fail("expected a number at position " + strconv.Itoa(start))
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return p.fail("invalid number " + strconv.Quote(p.src[start:p.pos]))
	}
	return v
}
