package model

import "errors"

// ErrDivisionByZero is latched by the engine when DIVIDE meets a zero right
// operand.
var ErrDivisionByZero = errors.New("division by zero")

// ErrOperandTooLong is returned by CheckOperand for values that need more
// than MaxDigits digits.
var ErrOperandTooLong = errors.New("operand too long")

// displayMessages maps latched errors to the text shown on the primary
// display.
var displayMessages = map[error]string{
	ErrDivisionByZero: "Error: Division by zero",
}

// DisplayMessage returns the primary-display text for a latched error.
func DisplayMessage(err error) string {
	for target, msg := range displayMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return "Error"
}
