// Package model is the calculator state machine: digit entry, left-to-right
// operator chaining, exact decimal arithmetic and a latched error state.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxDigits caps the number of digits that can be typed into one operand.
const MaxDigits = 15

// Calculator is the calculator's arithmetic state machine. It performs no I/O
// and no locking: callers must drive a given Calculator from one goroutine.
type Calculator struct {
	input   string
	acc     decimal.Decimal
	pending Operation
	trace   []string
	err     error

	// awaiting marks the displayed value as committed by an operator; the
	// next digit starts the right operand.
	awaiting   bool
	calculated bool
}

// New returns an engine in its initial state.
func New() *Calculator {
	c := &Calculator{}
	c.Clear()
	return c
}

// Clear resets the engine to its initial state.
func (c *Calculator) Clear() {
	*c = Calculator{input: "0"}
}

// ClearEntry resets the current input to "0" and keeps the pending operation,
// accumulated value and expression. In the error state it behaves like Clear.
func (c *Calculator) ClearEntry() {
	if c.err != nil {
		c.Clear()
		return
	}
	c.input = "0"
	c.awaiting = false
}

// InputDigit appends d to the current input. Digits past MaxDigits are
// dropped; runes outside '0'..'9' are ignored.
func (c *Calculator) InputDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	c.beginEntry()

	if strings.TrimPrefix(c.input, "-") == "0" {
		c.input = strings.TrimSuffix(c.input, "0") + string(d)
		return
	}
	if countDigits(c.input) >= MaxDigits {
		return
	}
	c.input += string(d)
}

// InputDecimal appends a decimal point unless the input already has one.
// A fresh entry is seeded as "0.".
func (c *Calculator) InputDecimal() {
	c.beginEntry()
	if strings.Contains(c.input, ".") {
		return
	}
	c.input += "."
}

// ToggleSign negates the current input. Zero has no sign.
func (c *Calculator) ToggleSign() {
	if c.err != nil || parseInput(c.input).IsZero() {
		return
	}
	if strings.HasPrefix(c.input, "-") {
		c.input = c.input[1:]
		return
	}
	c.input = "-" + c.input
}

// Backspace removes the last character of the current input, flooring at "0".
func (c *Calculator) Backspace() {
	if c.err != nil {
		return
	}
	s := c.input
	if len(s) > 0 {
		s = s[:len(s)-1]
	}
	if !validInput(s) || s == "-0" {
		s = "0"
	}
	c.input = s
}

// SetOperation selects op as the pending operation. With an operation already
// pending and a new operand entered, the pending one is evaluated first; with
// no new operand the pending operation is just replaced.
func (c *Calculator) SetOperation(op Operation) {
	if c.err != nil || !op.Valid() {
		return
	}

	if c.pending != OpNone && c.awaiting {
		c.pending = op
		c.trace[len(c.trace)-1] = op.Symbol()
		return
	}

	left := c.DisplayValue()
	if c.pending != OpNone {
		result, err := c.pending.Apply(c.acc, left)
		if err != nil {
			c.fail(err)
			return
		}
		left = result
	}

	c.acc = left
	c.pending = op
	c.input = Format(left)
	c.trace = []string{Format(left), op.Symbol()}
	c.awaiting = true
	c.calculated = false
}

// Calculate evaluates the pending operation against the current input. It is
// a no-op when nothing is pending, so repeated presses keep the result.
func (c *Calculator) Calculate() {
	if c.err != nil || c.pending == OpNone {
		return
	}

	right := c.DisplayValue()
	result, err := c.pending.Apply(c.acc, right)
	if err != nil {
		c.fail(err)
		return
	}

	c.trace = append(c.trace, Format(right), "=")
	c.input = Format(result)
	c.acc = decimal.Zero
	c.pending = OpNone
	c.awaiting = false
	c.calculated = true
}

// CurrentDisplay returns the primary display text.
func (c *Calculator) CurrentDisplay() string {
	return c.input
}

// ExpressionDisplay returns the expression trace joined by single spaces.
func (c *Calculator) ExpressionDisplay() string {
	return strings.Join(c.trace, " ")
}

// HasError reports whether an error is latched.
func (c *Calculator) HasError() bool {
	return c.err != nil
}

// Err returns the latched error, if any.
func (c *Calculator) Err() error {
	return c.err
}

// CurrentValue returns the accumulated left operand, zero when absent.
func (c *Calculator) CurrentValue() decimal.Decimal {
	return c.acc
}

// CurrentOperation returns the pending operation.
func (c *Calculator) CurrentOperation() (Operation, bool) {
	return c.pending, c.pending != OpNone
}

// DisplayValue returns the numeric value of the current input, zero in the
// error state.
func (c *Calculator) DisplayValue() decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}
	return parseInput(c.input)
}

// Snapshot returns the observable state.
func (c *Calculator) Snapshot() State {
	s := State{
		Display:    c.CurrentDisplay(),
		Expression: c.ExpressionDisplay(),
		Error:      c.HasError(),
		Value:      c.acc.String(),
	}
	if c.err != nil {
		s.ErrorMessage = c.err.Error()
	}
	if op, ok := c.CurrentOperation(); ok {
		s.Operation = op.Symbol()
	}
	return s
}

// beginEntry prepares the input for a new keystroke: it recovers from a
// latched error and starts a new operand after equals or an operator.
func (c *Calculator) beginEntry() {
	if c.err != nil {
		c.Clear()
	}
	if c.calculated {
		c.input = "0"
		c.trace = nil
		c.calculated = false
	}
	if c.awaiting {
		c.input = "0"
		c.awaiting = false
	}
}

func (c *Calculator) fail(err error) {
	c.err = err
	c.input = DisplayMessage(err)
	c.trace = nil
	c.acc = decimal.Zero
	c.pending = OpNone
	c.awaiting = false
	c.calculated = false
}
