// Package keypad maps key tokens from keyboards, buttons and API clients onto
// calculator engine operations.
package keypad

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"go-chi-calculator/internal/model"
)

// ErrUnknownKey is returned for tokens that do not name a calculator key.
var ErrUnknownKey = errors.New("unknown key")

// Key is one calculator button.
type Key int

const (
	Digit0 Key = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Decimal
	Add
	Subtract
	Multiply
	Divide
	Equals
	Clear
	ClearEntry
	Backspace
	ToggleSign
)

var labels = map[Key]string{
	Decimal:    ".",
	Add:        "+",
	Subtract:   "-",
	Multiply:   "×",
	Divide:     "÷",
	Equals:     "=",
	Clear:      "AC",
	ClearEntry: "CE",
	Backspace:  "←",
	ToggleSign: "±",
}

var names = map[Key]string{
	Decimal:    "decimal",
	Add:        "add",
	Subtract:   "subtract",
	Multiply:   "multiply",
	Divide:     "divide",
	Equals:     "equals",
	Clear:      "clear",
	ClearEntry: "clear_entry",
	Backspace:  "backspace",
	ToggleSign: "toggle_sign",
}

// aliases covers every non-digit key except the operators, which are
// resolved through model.ParseOperation.
var aliases = map[string]Key{
	".":           Decimal,
	",":           Decimal,
	"decimal":     Decimal,
	"=":           Equals,
	"enter":       Equals,
	"equals":      Equals,
	"esc":         Clear,
	"escape":      Clear,
	"ac":          Clear,
	"clear":       Clear,
	"delete":      ClearEntry,
	"del":         ClearEntry,
	"ce":          ClearEntry,
	"backspace":   Backspace,
	"←":           Backspace,
	"±":           ToggleSign,
	"neg":         ToggleSign,
	"negate":      ToggleSign,
	"f9":          ToggleSign,
	"clear_entry": ClearEntry,
	"toggle_sign": ToggleSign,
}

// Keys lists every key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, ToggleSign+1)
	for k := Digit0; k <= ToggleSign; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Aliases returns the tokens Parse accepts for k, sorted.
func (k Key) Aliases() []string {
	if k.IsDigit() {
		return []string{k.Label()}
	}
	if op, ok := k.Operation(); ok {
		out := op.Tokens()
		slices.Sort(out)
		return out
	}
	var out []string
	for tok, ak := range aliases {
		if ak == k {
			out = append(out, tok)
		}
	}
	slices.Sort(out)
	return out
}

// Label returns the button caption.
func (k Key) Label() string {
	if k.IsDigit() {
		return string(rune('0' + int(k)))
	}
	if l, ok := labels[k]; ok {
		return l
	}
	return "?"
}

// Name returns an ASCII identifier suitable for span names and metric
// attributes: the digit itself, or "add", "clear_entry" and so on.
func (k Key) Name() string {
	if k.IsDigit() {
		return k.Label()
	}
	if n, ok := names[k]; ok {
		return n
	}
	return "unknown"
}

func (k Key) String() string {
	return k.Label()
}

// IsDigit reports whether k is one of Digit0..Digit9.
func (k Key) IsDigit() bool {
	return k >= Digit0 && k <= Digit9
}

var operatorKeys = map[model.Operation]Key{
	model.OpAdd:      Add,
	model.OpSubtract: Subtract,
	model.OpMultiply: Multiply,
	model.OpDivide:   Divide,
}

// Operation returns the engine operation for an operator key.
func (k Key) Operation() (model.Operation, bool) {
	switch k {
	case Add:
		return model.OpAdd, true
	case Subtract:
		return model.OpSubtract, true
	case Multiply:
		return model.OpMultiply, true
	case Divide:
		return model.OpDivide, true
	}
	return model.OpNone, false
}

// Parse resolves a single key token. Matching is case-insensitive.
func Parse(token string) (Key, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if len(t) == 1 && t[0] >= '0' && t[0] <= '9' {
		return Digit0 + Key(t[0]-'0'), nil
	}
	if k, ok := aliases[t]; ok {
		return k, nil
	}
	if op, err := model.ParseOperation(t); err == nil {
		return operatorKeys[op], nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// ParseAll resolves a list of tokens.
func ParseAll(tokens []string) ([]Key, error) {
	keys := make([]Key, 0, len(tokens))
	for i, tok := range tokens {
		k, err := Parse(tok)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Tokens splits a compact key string such as "12+3×2=" into keys, one per
// rune. Whitespace is skipped.
func Tokens(expr string) ([]Key, error) {
	var keys []Key
	for i, r := range expr {
		if unicode.IsSpace(r) {
			continue
		}
		k, err := Parse(string(r))
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Press applies exactly one engine operation for k.
func Press(c *model.Calculator, k Key) {
	if k.IsDigit() {
		c.InputDigit(rune('0' + int(k)))
		return
	}
	if op, ok := k.Operation(); ok {
		c.SetOperation(op)
		return
	}

	switch k {
	case Decimal:
		c.InputDecimal()
	case Equals:
		c.Calculate()
	case Clear:
		c.Clear()
	case ClearEntry:
		c.ClearEntry()
	case Backspace:
		c.Backspace()
	case ToggleSign:
		c.ToggleSign()
	}
}

// PressAll applies keys in order.
func PressAll(c *model.Calculator, keys []Key) {
	for _, k := range keys {
		Press(c, k)
	}
}
