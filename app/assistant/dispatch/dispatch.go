// Package dispatch routes a classified command to the rule responder or the
// fallback resolver and shapes the final envelope.
package dispatch

import (
	"context"
	"errors"
	"strings"

	"VoiceMart/app/assistant/directive"
	"VoiceMart/app/assistant/fallback"
	"VoiceMart/app/assistant/intent"
	"VoiceMart/app/assistant/reply"
	"VoiceMart/app/assistant/responder"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/metric"
)

var ErrEmptyCommand = errors.New("command is required")

const defaultMessage = "How can I help you?"

var commandsTotal = metric.NewCounterVec(&metric.CounterVecOpts{
	Namespace: "voicemart",
	Subsystem: "assistant",
	Name:      "commands_total",
	Help:      "interpreted commands by intent, confidence and resolution.",
	Labels:    []string{"intent", "confidence", "resolution"},
})

// searchActions are the directives the UI needs to embed a result set.
var searchActions = map[intent.Kind]directive.Action{
	intent.KindSearchCategory:     directive.SearchCategory,
	intent.KindSearchByPrice:      directive.SearchPrice,
	intent.KindSearchByPriceRange: directive.SearchPriceRange,
}

type Dispatcher struct {
	responder *responder.Responder
	resolver  *fallback.Resolver
}

func New(r *responder.Responder, f *fallback.Resolver) *Dispatcher {
	return &Dispatcher{responder: r, resolver: f}
}

// Dispatch interprets one utterance. The only error is ErrEmptyCommand.
func (d *Dispatcher) Dispatch(ctx context.Context, utterance string, page reply.PageContext) (reply.Envelope, error) {
	if strings.TrimSpace(utterance) == "" {
		return reply.Envelope{}, ErrEmptyCommand
	}

	in := intent.Classify(utterance)

	var env reply.Envelope
	if in.Confidence == intent.ConfidenceHigh || in.Kind == intent.KindRecommendation {
		env = d.responder.Respond(ctx, in)
		if action, ok := searchActions[in.Kind]; ok {
			env = env.WithAction(action)
		}
	} else {
		env = d.resolver.Resolve(ctx, in, utterance, page)
	}

	if !env.Action.Valid() {
		logx.WithContext(ctx).Errorw("dropping unknown action",
			logx.Field("intent", in.Kind.String()),
			logx.Field("action", int(env.Action)),
		)
		env.Action = directive.None
	}
	if env.Message == "" {
		env.Message = defaultMessage
	}

	commandsTotal.Inc(in.Kind.String(), in.Confidence.String(), string(env.Resolution))
	logx.WithContext(ctx).Infow("command interpreted",
		logx.Field("intent", in.String()),
		logx.Field("resolution", string(env.Resolution)),
		logx.Field("action", env.Action.String()),
		logx.Field("products", len(env.Products)),
	)
	return env, nil
}
