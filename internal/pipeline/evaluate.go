// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// evaluate.go - Safe arithmetic evaluation for the math pipeline.
//
// SECURITY: This evaluator is a hard boundary. It parses numeric literals,
// the four binary operators, parentheses, and unary minus - nothing else.
// There is no identifier resolution and no function call syntax, so model
// output can never cause anything to execute.
package pipeline

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// RESULT TYPE
// =============================================================================

// Result is the outcome of a successful evaluation.
//
// Exactly one of the two value fields is meaningful: Exact holds the full
// decimal string of a big-integer result when the exact path ran, otherwise
// Value holds the float result. Formatted is always display-ready.
type Result struct {
	Value     float64 // Float result (float path only)
	Exact     string  // Exact decimal string (exact path only)
	Formatted string  // Display-ready rendering of the result
}

// IsExact reports whether the result came from the arbitrary-precision path.
func (r Result) IsExact() bool {
	return r.Exact != ""
}

// =============================================================================
// SANITIZATION
// =============================================================================

// disallowedExprChars matches every character outside the expression
// character class [0-9+-*/().].
var disallowedExprChars = regexp.MustCompile(`[^0-9+\-*/().]`)

// Sanitize strips every character outside the expression character class.
// Raw model output like "The answer is 12+5!" becomes "12+5".
func Sanitize(raw string) string {
	return disallowedExprChars.ReplaceAllString(raw, "")
}

// =============================================================================
// EVALUATION
// =============================================================================

// longDigitRun detects operands large enough to lose precision in float64.
var longDigitRun = regexp.MustCompile(`[0-9]{10,}`)

// exactBinaryOp matches the single-operation integer form the exact path
// supports: <integer> <op> <integer>.
var exactBinaryOp = regexp.MustCompile(`^([0-9]+)([+\-*/])([0-9]+)$`)

// ErrComplexExpression is returned when a big-operand expression is more
// than a single binary integer operation. The exact path deliberately
// supports only the two-operand case.
var ErrComplexExpression = errors.New("Complex expression not supported")

// Evaluate computes a sanitized arithmetic expression.
//
// Expressions containing a run of ten or more digits take the exact path:
// a single <integer><op><integer> operation over math/big integers, with
// truncating division. Everything else takes the float path: a full
// expression grammar with precedence, parentheses, and unary minus.
//
// Pure function of its input; evaluating twice yields identical results.
func Evaluate(expr string) (Result, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Result{}, errors.New("empty expression")
	}
	if disallowedExprChars.MatchString(expr) {
		return Result{}, errors.New("expression contains invalid characters")
	}

	if longDigitRun.MatchString(expr) {
		return evaluateExact(expr)
	}
	return evaluateFloat(expr)
}

// evaluateExact handles the arbitrary-precision path.
func evaluateExact(expr string) (Result, error) {
	m := exactBinaryOp.FindStringSubmatch(expr)
	if m == nil {
		return Result{}, ErrComplexExpression
	}

	a, okA := new(big.Int).SetString(m[1], 10)
	b, okB := new(big.Int).SetString(m[3], 10)
	if !okA || !okB {
		return Result{}, fmt.Errorf("invalid integer operand")
	}

	result := new(big.Int)
	switch m[2] {
	case "+":
		result.Add(a, b)
	case "-":
		result.Sub(a, b)
	case "*":
		result.Mul(a, b)
	case "/":
		if b.Sign() == 0 {
			return Result{}, errors.New("division by zero")
		}
		// Integer (truncating) division.
		result.Quo(a, b)
	}

	s := result.String()
	return Result{Exact: s, Formatted: s}, nil
}

// evaluateFloat handles the general float path: tokenize, convert to RPN
// with the shunting-yard algorithm, then evaluate the RPN stack.
func evaluateFloat(expr string) (Result, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return Result{}, err
	}

	rpn, err := toRPN(tokens)
	if err != nil {
		return Result{}, err
	}

	v, err := evaluateRPN(rpn)
	if err != nil {
		return Result{}, err
	}

	return Result{Value: v, Formatted: FormatNumber(v)}, nil
}

// =============================================================================
// NUMBER FORMATTING
// =============================================================================

// FormatNumber renders a float result for display.
//
// Very small (non-zero, below 1e-4) and very large (above 1e10) magnitudes
// use scientific notation with 4 fractional digits. Everything else is
// rounded to 6 decimal places with redundant trailing zeros stripped.
func FormatNumber(v float64) string {
	abs := math.Abs(v)
	if (abs != 0 && abs < 1e-4) || abs > 1e10 {
		return strconv.FormatFloat(v, 'e', 4, 64)
	}

	s := strconv.FormatFloat(v, 'f', 6, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// =============================================================================
// TOKENIZER
// =============================================================================

type tokenType int

const (
	tokenNumber tokenType = iota
	tokenOperator
	tokenLeftParen
	tokenRightParen
)

type token struct {
	typ   tokenType
	value string
}

// unaryMinus is the internal operator emitted when '-' negates a value
// rather than subtracting. It binds tighter than * and / and associates
// to the right, so "--3" and "-(2+3)" parse correctly.
const unaryMinus = "u-"

// tokenize splits an expression into number, operator, and parenthesis
// tokens. A '-' at the start of the expression, after an operator, or
// after '(' is classified as unary minus.
func tokenize(expr string) ([]token, error) {
	var tokens []token

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '(':
			tokens = append(tokens, token{typ: tokenLeftParen, value: "("})
		case c == ')':
			tokens = append(tokens, token{typ: tokenRightParen, value: ")"})
		case c == '+' || c == '-' || c == '*' || c == '/':
			if c == '-' && expectsOperand(tokens) {
				tokens = append(tokens, token{typ: tokenOperator, value: unaryMinus})
				continue
			}
			tokens = append(tokens, token{typ: tokenOperator, value: string(c)})
		case (c >= '0' && c <= '9') || c == '.':
			j := i
			for j < len(expr) && ((expr[j] >= '0' && expr[j] <= '9') || expr[j] == '.') {
				j++
			}
			tokens = append(tokens, token{typ: tokenNumber, value: expr[i:j]})
			i = j - 1
		default:
			return nil, fmt.Errorf("invalid character: %c", c)
		}
	}

	if len(tokens) == 0 {
		return nil, errors.New("empty expression")
	}
	return tokens, nil
}

// expectsOperand reports whether the parser is at a position where a value
// must come next, which is what distinguishes unary from binary minus.
func expectsOperand(tokens []token) bool {
	if len(tokens) == 0 {
		return true
	}
	last := tokens[len(tokens)-1]
	return last.typ == tokenOperator || last.typ == tokenLeftParen
}

// =============================================================================
// SHUNTING-YARD CONVERSION
// =============================================================================

// precedence returns the binding strength of an operator token.
func precedence(op string) int {
	switch op {
	case unaryMinus:
		return 3
	case "*", "/":
		return 2
	case "+", "-":
		return 1
	default:
		return 0
	}
}

// toRPN converts infix tokens to reverse Polish notation.
func toRPN(tokens []token) ([]token, error) {
	var output []token
	var stack []token

	for _, tok := range tokens {
		switch tok.typ {
		case tokenNumber:
			output = append(output, tok)
		case tokenOperator:
			for len(stack) > 0 && stack[len(stack)-1].typ == tokenOperator {
				top := stack[len(stack)-1]
				// Unary minus is right-associative: equal precedence stays
				// on the stack.
				if precedence(top.value) > precedence(tok.value) ||
					(precedence(top.value) == precedence(tok.value) && tok.value != unaryMinus) {
					output = append(output, top)
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			stack = append(stack, tok)
		case tokenLeftParen:
			stack = append(stack, tok)
		case tokenRightParen:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.typ == tokenLeftParen {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, errors.New("mismatched parentheses")
			}
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.typ == tokenLeftParen {
			return nil, errors.New("mismatched parentheses")
		}
		output = append(output, top)
	}

	return output, nil
}

// =============================================================================
// RPN EVALUATION
// =============================================================================

// evaluateRPN computes the value of an RPN token stream.
func evaluateRPN(rpn []token) (float64, error) {
	var stack []float64

	for _, tok := range rpn {
		switch tok.typ {
		case tokenNumber:
			n, err := strconv.ParseFloat(tok.value, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid number: %s", tok.value)
			}
			stack = append(stack, n)
		case tokenOperator:
			if tok.value == unaryMinus {
				if len(stack) < 1 {
					return 0, errors.New("malformed expression")
				}
				stack[len(stack)-1] = -stack[len(stack)-1]
				continue
			}

			if len(stack) < 2 {
				return 0, errors.New("malformed expression")
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			var v float64
			switch tok.value {
			case "+":
				v = a + b
			case "-":
				v = a - b
			case "*":
				v = a * b
			case "/":
				if b == 0 {
					return 0, errors.New("division by zero")
				}
				v = a / b
			}
			stack = append(stack, v)
		}
	}

	if len(stack) != 1 {
		return 0, errors.New("malformed expression")
	}
	return stack[0], nil
}
