package domain

import (
	"maps"
	"strings"
)

type SessionID string

// Context is the cross-turn memory of a conversation.
type Context map[string]any

const (
	ContextContact      = "contact"
	ContextCash         = "cash"
	ContextTransferType = "transferType"
	ContextDone         = "done"
)

func (c Context) Clone() Context {
	if c == nil {
		return Context{}
	}
	return maps.Clone(c)
}

// Merge returns a copy of c overlaid with other.
func (c Context) Merge(other Context) Context {
	merged := c.Clone()
	maps.Copy(merged, other)
	return merged
}

func (c Context) String(key string) string {
	value, _ := c[key].(string)
	return value
}

type Session struct {
	ID        SessionID
	AccountID AccountID
	Context   Context
}

func (s Session) Bound() bool {
	return strings.TrimSpace(string(s.AccountID)) != ""
}
