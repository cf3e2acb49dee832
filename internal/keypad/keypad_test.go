package keypad

import (
	"errors"
	"strings"
	"testing"

	"go-chi-calculator/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  Key
	}{
		{token: "0", want: Digit0},
		{token: "7", want: Digit7},
		{token: ".", want: Decimal},
		{token: ",", want: Decimal},
		{token: "+", want: Add},
		{token: "-", want: Subtract},
		{token: "*", want: Multiply},
		{token: "X", want: Multiply},
		{token: "×", want: Multiply},
		{token: "/", want: Divide},
		{token: "÷", want: Divide},
		{token: "=", want: Equals},
		{token: "Enter", want: Equals},
		{token: "esc", want: Clear},
		{token: "Escape", want: Clear},
		{token: "AC", want: Clear},
		{token: "delete", want: ClearEntry},
		{token: "CE", want: ClearEntry},
		{token: "backspace", want: Backspace},
		{token: "←", want: Backspace},
		{token: "±", want: ToggleSign},
		{token: " neg ", want: ToggleSign},
	}

	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			got, err := Parse(tc.token)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseUnknownKey(t *testing.T) {
	for _, token := range []string{"", "sqrt", "%", "10", "m+"} {
		t.Run(token, func(t *testing.T) {
			_, err := Parse(token)
			if !errors.Is(err, ErrUnknownKey) {
				t.Fatalf("expected ErrUnknownKey, got %v", err)
			}
		})
	}
}

func TestParseAllReportsIndex(t *testing.T) {
	_, err := ParseAll([]string{"1", "+", "bogus"})
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if got := err.Error(); got != `key 2: unknown key: "bogus"` {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestTokens(t *testing.T) {
	keys, err := Tokens("12 + 3×2=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Key{Digit1, Digit2, Add, Digit3, Multiply, Digit2, Equals}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key %d: expected %s, got %s", i, want[i], keys[i])
		}
	}

	if _, err := Tokens("1+a"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

func TestPressDrivesEngine(t *testing.T) {
	tests := []struct {
		keys       string
		display    string
		expression string
	}{
		{keys: "5+3*2=", display: "16", expression: "8 × 2 ="},
		{keys: "3.14+2.86=", display: "6", expression: "3.14 + 2.86 ="},
		{keys: "1/0=", display: "Error: Division by zero", expression: ""},
		{keys: "1/0=5", display: "5", expression: ""},
		{keys: "15/3+2*4=", display: "28", expression: "7 × 4 ="},
		{keys: "5+3==", display: "8", expression: "5 + 3 ="},
	}

	for _, tc := range tests {
		t.Run(tc.keys, func(t *testing.T) {
			keys, err := Tokens(tc.keys)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			e := model.New()
			PressAll(e, keys)

			if got := e.CurrentDisplay(); got != tc.display {
				t.Fatalf("expected display %q, got %q", tc.display, got)
			}
			if got := e.ExpressionDisplay(); got != tc.expression {
				t.Fatalf("expected expression %q, got %q", tc.expression, got)
			}
		})
	}
}

func TestPressEditingKeys(t *testing.T) {
	e := model.New()
	PressAll(e, []Key{Digit1, Digit2, Digit3, Backspace, ToggleSign})
	if got := e.CurrentDisplay(); got != "-12" {
		t.Fatalf("expected %q, got %q", "-12", got)
	}

	PressAll(e, []Key{Add, Digit4, ClearEntry})
	if got := e.CurrentDisplay(); got != "0" {
		t.Fatalf("expected %q, got %q", "0", got)
	}
	if got := e.ExpressionDisplay(); got != "-12 +" {
		t.Fatalf("expected %q, got %q", "-12 +", got)
	}

	Press(e, Clear)
	if got := e.ExpressionDisplay(); got != "" {
		t.Fatalf("expected empty expression, got %q", got)
	}
}

func TestGridCoversEveryKey(t *testing.T) {
	for k := Digit0; k <= ToggleSign; k++ {
		if _, _, ok := Find(k); !ok {
			t.Fatalf("key %s missing from grid", k)
		}
	}

	row, col, _ := Find(Digit0)
	if row != 4 || col != 1 {
		t.Fatalf("expected 0 at (4,1), got (%d,%d)", row, col)
	}
}

func TestNameRoundTrips(t *testing.T) {
	for k := Digit0; k <= ToggleSign; k++ {
		got, err := Parse(k.Name())
		if err != nil {
			t.Fatalf("parsing name %q: %v", k.Name(), err)
		}
		if got != k {
			t.Fatalf("name %q: expected %s, got %s", k.Name(), k, got)
		}
	}
}

func TestAliases(t *testing.T) {
	if got := strings.Join(Equals.Aliases(), " "); got != "= enter equals" {
		t.Fatalf("unexpected equals aliases %q", got)
	}
	if got := strings.Join(Multiply.Aliases(), " "); got != "* multiply x ×" {
		t.Fatalf("unexpected multiply aliases %q", got)
	}
	for _, k := range Keys() {
		for _, tok := range k.Aliases() {
			if got, err := Parse(tok); err != nil || got != k {
				t.Fatalf("alias %q: expected %s, got %s (%v)", tok, k, got, err)
			}
		}
	}
	if got := Digit3.Aliases(); len(got) != 1 || got[0] != "3" {
		t.Fatalf("unexpected digit aliases %v", got)
	}
	if n := len(Keys()); n != 20 {
		t.Fatalf("expected 20 keys, got %d", n)
	}
}
