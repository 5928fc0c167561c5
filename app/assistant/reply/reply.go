// Package reply holds the response envelope every interpreted command yields.
package reply

import (
	"VoiceMart/app/assistant/catalog"
	"VoiceMart/app/assistant/directive"
	"VoiceMart/app/assistant/intent"
)

// Resolution records which path produced an envelope.
type Resolution string

const (
	ResolutionRule     Resolution = "rule"
	ResolutionAI       Resolution = "ai"
	ResolutionFallback Resolution = "fallback"
)

// PageContext describes where in the storefront the command was issued.
type PageContext struct {
	Page string `json:"page,omitempty"`
}

// Envelope is the outcome of one command. Message is never empty; Action is
// None for purely informational replies.
type Envelope struct {
	Intent     intent.Kind
	Confidence intent.Confidence
	Resolution Resolution
	Message    string
	Action     directive.Action
	URL        string
	Category   string
	MinPrice   *int64
	MaxPrice   *int64
	Products   []catalog.ProductSummary
}

// WithAction returns a copy of e carrying action a.
func (e Envelope) WithAction(a directive.Action) Envelope {
	e.Action = a
	return e
}

func Bound(v int64) *int64 {
	return &v
}
