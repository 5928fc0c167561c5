package mq

import (
	"time"

	"VoiceMart/app/assistant/reply"
	"VoiceMart/app/common/consts/biz"
	"VoiceMart/app/common/snowflake"
)

// CommandEvent records one interpreted command for analytics consumers.
type CommandEvent struct {
	EventID      int64  `json:"event_id,string"`
	Type         string `json:"type"`
	Utterance    string `json:"utterance"`
	Page         string `json:"page,omitempty"`
	Intent       string `json:"intent"`
	Confidence   string `json:"confidence"`
	Resolution   string `json:"resolution"`
	Action       string `json:"action,omitempty"`
	ProductCount int    `json:"product_count"`
	OccurredAt   int64  `json:"occurred_at"`
}

func NewCommandEvent(env reply.Envelope, utterance string, page reply.PageContext) CommandEvent {
	return CommandEvent{
		EventID:      snowflake.Next(),
		Type:         biz.CommandEventType,
		Utterance:    utterance,
		Page:         page.Page,
		Intent:       env.Intent.String(),
		Confidence:   env.Confidence.String(),
		Resolution:   string(env.Resolution),
		Action:       env.Action.String(),
		ProductCount: len(env.Products),
		OccurredAt:   time.Now().UnixMilli(),
	}
}
