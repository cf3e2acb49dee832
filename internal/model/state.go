package model

// State is a read-only view of a Calculator for presentation adapters.
type State struct {
	Display      string `json:"display"`
	Expression   string `json:"expression"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message,omitempty"`
	Operation    string `json:"operation,omitempty"`
	Value        string `json:"value"`
}
