// Package fallback resolves commands the rule table could not pin down, using
// a generative model when one is configured and keyword search otherwise.
package fallback

import (
	"context"
	"fmt"

	"VoiceMart/app/assistant/catalog"
	"VoiceMart/app/assistant/completion"
	"VoiceMart/app/assistant/directive"
	"VoiceMart/app/assistant/intent"
	"VoiceMart/app/assistant/reply"

	"github.com/zeromicro/go-zero/core/logx"
)

const (
	ReplyProductLimit = 5

	noResultsMessage = "I can help you find products. Try asking about specific items or categories."
)

type Resolver struct {
	catalog   catalog.Service
	generator completion.Generator
}

// New returns a resolver. A nil generator keeps the resolver in keyword-only
// mode without ever attempting a model call.
func New(c catalog.Service, g completion.Generator) *Resolver {
	return &Resolver{catalog: c, generator: g}
}

// Resolve never fails: model and catalog errors degrade the reply instead.
func (r *Resolver) Resolve(ctx context.Context, in intent.Intent, utterance string, page reply.PageContext) reply.Envelope {
	logger := logx.WithContext(ctx)
	products, categories := r.relevant(ctx, utterance)

	env := reply.Envelope{
		Intent:     in.Kind,
		Confidence: in.Confidence,
		Products:   top(products, ReplyProductLimit),
	}

	if r.generator != nil {
		text, err := r.generate(ctx, utterance, products, categories, page)
		if err == nil {
			env.Resolution = reply.ResolutionAI
			env.Message = text
			env.Action = directive.ShowResults
			return env
		}
		logger.Errorw("generative reply failed, degrading to keyword search",
			logx.Field("utterance", utterance),
			logx.Field("err", err),
		)
	}

	env.Resolution = reply.ResolutionFallback
	if len(products) > 0 {
		env.Message = fmt.Sprintf("I found %d products matching your search. Check them out!", len(products))
		env.Action = directive.ShowResults
	} else {
		env.Message = noResultsMessage
	}
	return env
}

// Relevant returns the products the relevance query selects for utterance.
func (r *Resolver) Relevant(ctx context.Context, utterance string) []catalog.ProductSummary {
	products, _ := r.relevant(ctx, utterance)
	return products
}

func (r *Resolver) relevant(ctx context.Context, utterance string) ([]catalog.ProductSummary, []catalog.Category) {
	logger := logx.WithContext(ctx)

	categories, err := r.catalog.ActiveCategories(ctx)
	if err != nil {
		logger.Errorw("list categories failed", logx.Field("err", err))
		categories = nil
	}

	products, err := r.catalog.Find(ctx, RelevanceQuery(utterance, categories))
	if err != nil {
		logger.Errorw("relevance query failed", logx.Field("utterance", utterance), logx.Field("err", err))
		return []catalog.ProductSummary{}, categories
	}
	if products == nil {
		products = []catalog.ProductSummary{}
	}
	return products, categories
}

func (r *Resolver) generate(ctx context.Context, utterance string, products []catalog.ProductSummary,
	categories []catalog.Category, page reply.PageContext) (string, error) {
	prompt, err := BuildPrompt(utterance, products, categories, page)
	if err != nil {
		return "", err
	}
	text, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", completion.ErrEmptyCompletion
	}
	return text, nil
}

func top(products []catalog.ProductSummary, n int) []catalog.ProductSummary {
	if len(products) > n {
		return products[:n]
	}
	return products
}
