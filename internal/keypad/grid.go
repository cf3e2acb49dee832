package keypad

// Kind groups buttons for styling.
type Kind int

const (
	KindNumber Kind = iota
	KindOperation
	KindClear
	KindEquals
)

// Button is one cell of the grid.
type Button struct {
	Key  Key
	Kind Kind
}

// Label returns the caption shown on the button.
func (b Button) Label() string {
	return b.Key.Label()
}

// Grid is the 5x4 button layout, top row first.
var Grid = [][]Button{
	{{Clear, KindClear}, {ClearEntry, KindClear}, {Backspace, KindClear}, {Divide, KindOperation}},
	{{Digit7, KindNumber}, {Digit8, KindNumber}, {Digit9, KindNumber}, {Multiply, KindOperation}},
	{{Digit4, KindNumber}, {Digit5, KindNumber}, {Digit6, KindNumber}, {Subtract, KindOperation}},
	{{Digit1, KindNumber}, {Digit2, KindNumber}, {Digit3, KindNumber}, {Add, KindOperation}},
	{{ToggleSign, KindOperation}, {Digit0, KindNumber}, {Decimal, KindNumber}, {Equals, KindEquals}},
}

// Find returns the grid position of k.
func Find(k Key) (row, col int, ok bool) {
	for r, cells := range Grid {
		for c, b := range cells {
			if b.Key == k {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
