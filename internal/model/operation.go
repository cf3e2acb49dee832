package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Operation is a binary operator awaiting its right operand.
type Operation int

const (
	OpNone Operation = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// DivisionScale is the number of fractional digits kept by a division.
const DivisionScale = 20

var opNames = map[Operation]string{
	OpAdd:      "add",
	OpSubtract: "subtract",
	OpMultiply: "multiply",
	OpDivide:   "divide",
}

var opSymbols = map[Operation]string{
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "×",
	OpDivide:   "÷",
}

// String returns the lower-case operation name ("add", "divide", ...).
func (op Operation) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "none"
}

// Symbol returns the symbol used in the expression display.
func (op Operation) Symbol() string {
	return opSymbols[op]
}

// Valid reports whether op is one of the four arithmetic operations.
func (op Operation) Valid() bool {
	_, ok := opNames[op]
	return ok
}

// opTokens lists the spellings ParseOperation accepts, lower case.
var opTokens = map[Operation][]string{
	OpAdd:      {"+", "add"},
	OpSubtract: {"-", "subtract"},
	OpMultiply: {"*", "x", "×", "multiply"},
	OpDivide:   {"/", "÷", "divide"},
}

// Tokens returns the spellings ParseOperation accepts for op.
func (op Operation) Tokens() []string {
	return slices.Clone(opTokens[op])
}

// ParseOperation accepts a symbol (+ - * / × ÷ x) or a name (add, subtract,
// multiply, divide). Matching is case-insensitive.
func ParseOperation(s string) (Operation, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	for op, tokens := range opTokens {
		if slices.Contains(tokens, t) {
			return op, nil
		}
	}
	return OpNone, fmt.Errorf("unknown operation %q", s)
}

// Apply evaluates a <op> b. The only failure is ErrDivisionByZero.
func (op Operation) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case OpAdd:
		return a.Add(b), nil
	case OpSubtract:
		return a.Sub(b), nil
	case OpMultiply:
		return a.Mul(b), nil
	case OpDivide:
		if b.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		return a.DivRound(b, DivisionScale), nil
	}
	return decimal.Zero, fmt.Errorf("apply %s: invalid operation", op)
}
