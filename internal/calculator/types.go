package calculator

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"go-chi-calculator/internal/keypad"
	"go-chi-calculator/internal/model"
)

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Keys []string `json:"keys"` // key tokens: "7", "+", "enter", "esc", ...
}

// SessionResponse is the JSON response for all session endpoints.
type SessionResponse struct {
	SessionID string      `json:"session_id"`
	State     model.State `json:"state"`
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Keys KeyInput `json:"keys"`
}

// KeyInput is either a compact key string, one rune per key ("5+3×2="), or a
// list of key tokens (["5", "+", "enter"]).
type KeyInput struct {
	Compact string
	Tokens  []string
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (k *KeyInput) UnmarshalJSON(data []byte) error {
	var compact string
	if err := json.Unmarshal(data, &compact); err == nil {
		*k = KeyInput{Compact: compact}
		return nil
	}

	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return errors.New("keys: expected a string or an array of strings")
	}
	*k = KeyInput{Tokens: tokens}
	return nil
}

// MarshalJSON writes the form the value was built from.
func (k KeyInput) MarshalJSON() ([]byte, error) {
	if k.Tokens != nil {
		return json.Marshal(k.Tokens)
	}
	return json.Marshal(k.Compact)
}

// Keys resolves the input into calculator keys.
func (k KeyInput) Keys() ([]keypad.Key, error) {
	if k.Tokens != nil {
		return keypad.ParseAll(k.Tokens)
	}
	return keypad.Tokens(k.Compact)
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Keys  []string    `json:"keys"` // the keys applied, by name
	State model.State `json:"state"`
}

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
// Operands may be JSON numbers or decimal strings, each limited to what the
// keypad could enter (model.CheckOperand).
type CalcRequest struct {
	A decimal.Decimal `json:"a"`
	B decimal.Decimal `json:"b"`
}

// CalcResponse is the JSON response for binary operations.
type CalcResponse struct {
	Operation  string `json:"operation"`
	A          string `json:"a"`
	B          string `json:"b"`
	Result     string `json:"result"`
	Expression string `json:"expression"`
}
