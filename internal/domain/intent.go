package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Entity is one value extracted by the NLU collaborator. Value is untrusted
// and may hold a string, a json.Number, a float64 or a nested shape.
type Entity struct {
	Value any    `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

type Entities map[string][]Entity

const (
	EntityAmount       = "amount_of_money"
	EntityTransferType = "transferMoney"
	EntityContact      = "contact"
	EntityLocation     = "location"
	EntityFromLedger   = "from_ledger"
	EntityToLedger     = "to_ledger"
)

// First returns the first entity recorded under key.
func (e Entities) First(key string) (Entity, bool) {
	values, ok := e[key]
	if !ok || len(values) == 0 {
		return Entity{}, false
	}
	return values[0], true
}

// Text returns the entity value as a trimmed string, rejecting non-scalar shapes.
func (e Entity) Text() (string, bool) {
	switch v := e.Value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed, trimmed != ""
	case json.Number:
		return v.String(), true
	case float64, int, int64:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

// Decimal parses the entity value as a decimal amount.
func (e Entity) Decimal() (decimal.Decimal, error) {
	switch v := e.Value.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
		}
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		return decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(v), "$"))
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported value %T", ErrInvalidAmount, e.Value)
	}
}

// IntentEvent is the inbound event produced by the NLU collaborator.
type IntentEvent struct {
	SessionID  SessionID `json:"sessionId" validate:"required"`
	IntentName string    `json:"intentName" validate:"required"`
	Entities   Entities  `json:"entities"`
	Context    Context   `json:"context"`
	Text       string    `json:"text,omitempty"`
}

// IntentRequest is what a handler receives: the event enriched with the
// resolved session.
type IntentRequest struct {
	SessionID  SessionID
	AccountID  AccountID
	IntentName string
	Entities   Entities
	Context    Context
	Text       string
}
