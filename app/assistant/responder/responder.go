// Package responder answers high confidence intents from fixed templates and
// direct catalog lookups.
package responder

import (
	"context"
	"fmt"

	"VoiceMart/app/assistant/catalog"
	"VoiceMart/app/assistant/directive"
	"VoiceMart/app/assistant/intent"
	"VoiceMart/app/assistant/reply"

	"github.com/zeromicro/go-zero/core/logx"
)

const (
	SearchLimit         = 20
	RecommendationLimit = 10

	defaultMessage        = "How can I help you?"
	recommendationMessage = "Here are our top-rated products based on customer reviews."
	helpMessage           = `I can help you with: searching products, finding items by category or price, viewing your cart, checking out, and getting recommendations. Try saying "show me smartphones" or "find laptops under 1000".`
)

type template struct {
	message string
	action  directive.Action
	url     string
}

var templates = map[intent.Kind]template{
	intent.KindNavigateHome: {"Taking you to the home page.", directive.Navigate, "/"},
	intent.KindViewCart:     {"Opening your shopping cart now.", directive.Navigate, "/cart"},
	intent.KindShowProducts: {"Showing all products.", directive.Navigate, "/products"},
	intent.KindAddToCart: {
		message: `I can help you add items to your cart. Please select a product first, then say "add to cart".`,
	},
	intent.KindRemoveFromCart: {"You can remove items from your cart by clicking the remove button.", directive.ViewCart, "/cart"},
	intent.KindCheckout:       {"Taking you to checkout.", directive.Navigate, "/checkout"},
	intent.KindViewOrders:     {"Opening your order history.", directive.Navigate, "/orders"},
	intent.KindSortPriceLow:   {"Showing products from lowest to highest price.", directive.Navigate, "/products?sort=price-asc"},
	intent.KindSortPriceHigh:  {"Showing products from highest to lowest price.", directive.Navigate, "/products?sort=price-desc"},
	intent.KindSortNewest:     {"Showing the newest products first.", directive.Navigate, "/products?sort=newest"},
	intent.KindHelp:           {message: helpMessage},
}

type Responder struct {
	catalog catalog.Service
}

func New(c catalog.Service) *Responder {
	return &Responder{catalog: c}
}

// RecommendationPredicate selects the best reviewed active products.
func RecommendationPredicate() catalog.Predicate {
	return catalog.Predicate{
		ActiveOnly: true,
		Sort:       []catalog.SortKey{catalog.SortRatingDesc, catalog.SortReviewsDesc},
		Limit:      RecommendationLimit,
	}
}

// Respond builds the envelope for in. Catalog failures yield an empty
// product list, never an error.
func (r *Responder) Respond(ctx context.Context, in intent.Intent) reply.Envelope {
	env := reply.Envelope{
		Intent:     in.Kind,
		Confidence: in.Confidence,
		Resolution: reply.ResolutionRule,
	}

	switch in.Kind {
	case intent.KindNavigateHome, intent.KindViewCart, intent.KindShowProducts,
		intent.KindAddToCart, intent.KindRemoveFromCart, intent.KindCheckout,
		intent.KindViewOrders, intent.KindSortPriceLow, intent.KindSortPriceHigh,
		intent.KindSortNewest, intent.KindHelp:
		t := templates[in.Kind]
		env.Message, env.Action, env.URL = t.message, t.action, t.url
	case intent.KindSearchCategory:
		env.Message = fmt.Sprintf("Let me find %s for you.", in.Category)
		env.Action = directive.ShowResults
		env.Category = in.Category
		env.Products = r.searchCategory(ctx, in.Category)
	case intent.KindSearchByPrice:
		env.Message = fmt.Sprintf("Searching for products under $%d.", in.MaxPrice)
		env.Action = directive.ShowResults
		env.MaxPrice = reply.Bound(in.MaxPrice)
		env.Products = r.searchPrice(ctx, nil, catalog.Price(float64(in.MaxPrice)))
	case intent.KindSearchByPriceRange:
		env.Message = fmt.Sprintf("Searching for products between $%d and $%d.", in.MinPrice, in.MaxPrice)
		env.Action = directive.ShowResults
		env.MinPrice = reply.Bound(in.MinPrice)
		env.MaxPrice = reply.Bound(in.MaxPrice)
		env.Products = r.searchPrice(ctx, catalog.Price(float64(in.MinPrice)), catalog.Price(float64(in.MaxPrice)))
	case intent.KindRecommendation:
		env.Message = recommendationMessage
		env.Action = directive.ShowResults
		env.Products = r.find(ctx, RecommendationPredicate())
	case intent.KindComparison, intent.KindSearch, intent.KindUnknown:
		env.Message = defaultMessage
	default:
		env.Message = defaultMessage
	}

	return env
}

// searchCategory lists the products of the first category whose name contains
// keyword, or products mentioning keyword when no such category exists.
func (r *Responder) searchCategory(ctx context.Context, keyword string) []catalog.ProductSummary {
	p := catalog.Predicate{
		ActiveOnly: true,
		Sort:       []catalog.SortKey{catalog.SortRatingDesc},
		Limit:      SearchLimit,
	}

	categories, err := r.catalog.ActiveCategories(ctx)
	if err != nil {
		logx.WithContext(ctx).Errorw("list categories failed", logx.Field("category", keyword), logx.Field("err", err))
		return []catalog.ProductSummary{}
	}

	if c, ok := catalog.FindCategory(categories, keyword); ok {
		p.CategoryID = c.ID
	} else {
		p.Keywords = []string{keyword}
		p.Fields = []catalog.Field{catalog.FieldName, catalog.FieldDescription}
	}
	return r.find(ctx, p)
}

func (r *Responder) searchPrice(ctx context.Context, min, max *float64) []catalog.ProductSummary {
	return r.find(ctx, catalog.Predicate{
		ActiveOnly: true,
		MinPrice:   min,
		MaxPrice:   max,
		Sort:       []catalog.SortKey{catalog.SortPriceAsc},
		Limit:      SearchLimit,
	})
}

func (r *Responder) find(ctx context.Context, p catalog.Predicate) []catalog.ProductSummary {
	products, err := r.catalog.Find(ctx, p)
	if err != nil {
		logx.WithContext(ctx).Errorw("catalog lookup failed", logx.Field("err", err))
		return []catalog.ProductSummary{}
	}
	if products == nil {
		return []catalog.ProductSummary{}
	}
	return products
}
