package intent

import "regexp"

// Rule is one entry of the priority table. Match returns false when the rule
// does not apply, including when a required number is missing.
type Rule struct {
	Name  string
	Match func(text string) (Intent, bool)
}

// CategoryKeywords maps each canonical category to the words that select it.
var CategoryKeywords = []struct {
	Category string
	Words    string
}{
	{Category: "smartphones", Words: `smartphones?|phones?|mobiles?`},
	{Category: "laptops", Words: `laptops?|computers?|notebooks?`},
	{Category: "headphones", Words: `headphones?|earphones?|earbuds?`},
	{Category: "watches", Words: `watch|watches|smartwatch|smartwatches`},
	{Category: "cameras", Words: `cameras?`},
	{Category: "tvs", Words: `tv|tvs|televisions?`},
	{Category: "tablets", Words: `tablets?|ipads?`},
}

var (
	navigateHomePattern = regexp.MustCompile(`\b(go to|open|show me|take me to|navigate to)\s+(the\s+)?(home|homepage|home page|main page)\b`)
	viewCartPattern     = regexp.MustCompile(`\b(go to|open|show|view|check)\s+(me\s+)?(my\s+|the\s+)?(cart|shopping cart|basket)\b`)
	showProductsPattern = regexp.MustCompile(`\b(go to|open|show|view)\s+(all products|products|product page|shop)\b`)

	addToCartPattern      = regexp.MustCompile(`\b(add|put|place)\s+(this|that|it)?\s*(to|in|into)?\s*(the\s+|my\s+)?(cart|basket)\b`)
	removeFromCartPattern = regexp.MustCompile(`\b(remove|delete|take out)\b.*\bfrom\s+(the\s+|my\s+)?(cart|basket)\b`)

	checkoutPattern   = regexp.MustCompile(`\b(checkout|place order|buy now|purchase|proceed to checkout)\b`)
	viewOrdersPattern = regexp.MustCompile(`\b(my orders|order history|previous orders|past orders)\b`)

	priceCeilingPattern = regexp.MustCompile(`\b(under|below|less than|cheaper than|budget of|max|maximum)\s*\$?\s*\d+`)
	priceRangePattern   = regexp.MustCompile(`\b(between|from)\s*\$?\s*\d+\s*(to|and|-)\s*\$?\s*\d+`)

	recommendationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(what are|show me|find|get)\s+(the\s+)?(best|top|highest rated|popular|recommended)\b`),
		regexp.MustCompile(`\b(recommend|suggest)\s+(me\s+)?(a|an|some)\b`),
	}

	comparisonPattern = regexp.MustCompile(`\b(compare|difference between|which is better)\b`)

	sortPriceLowPattern  = regexp.MustCompile(`\b(cheapest|lowest price|most affordable)\b`)
	sortPriceHighPattern = regexp.MustCompile(`\b(most expensive|highest price|premium)\b`)
	sortNewestPattern    = regexp.MustCompile(`\b(newest|latest|recent)\b`)

	helpPattern = regexp.MustCompile(`\b(help|what can you do|how to use|commands)\b`)

	genericSearchPattern = regexp.MustCompile(`\b(show|find|search|get|looking for|want|need)\b`)
)

// defaultRules is the priority list. Order matters: rules overlap and the
// first match wins.
var defaultRules = buildRules()

func buildRules() []Rule {
	rules := []Rule{
		fixed("navigate_home", navigateHomePattern, KindNavigateHome, ConfidenceHigh),
		fixed("view_cart", viewCartPattern, KindViewCart, ConfidenceHigh),
		fixed("show_products", showProductsPattern, KindShowProducts, ConfidenceHigh),
		fixed("add_to_cart", addToCartPattern, KindAddToCart, ConfidenceHigh),
		fixed("remove_from_cart", removeFromCartPattern, KindRemoveFromCart, ConfidenceHigh),
		fixed("checkout", checkoutPattern, KindCheckout, ConfidenceHigh),
		fixed("view_orders", viewOrdersPattern, KindViewOrders, ConfidenceHigh),
	}

	for _, set := range CategoryKeywords {
		rules = append(rules, categoryRule(set.Category, set.Words))
	}

	rules = append(rules,
		Rule{Name: "price_ceiling", Match: matchPriceCeiling},
		Rule{Name: "price_range", Match: matchPriceRange},
		anyOf("recommendation", recommendationPatterns, KindRecommendation, ConfidenceHigh),
		fixed("comparison", comparisonPattern, KindComparison, ConfidenceMedium),
		fixed("sort_price_low", sortPriceLowPattern, KindSortPriceLow, ConfidenceHigh),
		fixed("sort_price_high", sortPriceHighPattern, KindSortPriceHigh, ConfidenceHigh),
		fixed("sort_newest", sortNewestPattern, KindSortNewest, ConfidenceHigh),
		fixed("help", helpPattern, KindHelp, ConfidenceHigh),
		fixed("generic_search", genericSearchPattern, KindSearch, ConfidenceMedium),
	)
	return rules
}

func fixed(name string, re *regexp.Regexp, kind Kind, confidence Confidence) Rule {
	return Rule{
		Name: name,
		Match: func(text string) (Intent, bool) {
			if !re.MatchString(text) {
				return Intent{}, false
			}
			return Intent{Kind: kind, Confidence: confidence}, true
		},
	}
}

func anyOf(name string, patterns []*regexp.Regexp, kind Kind, confidence Confidence) Rule {
	return Rule{
		Name: name,
		Match: func(text string) (Intent, bool) {
			for _, re := range patterns {
				if re.MatchString(text) {
					return Intent{Kind: kind, Confidence: confidence}, true
				}
			}
			return Intent{}, false
		},
	}
}

func categoryRule(category, words string) Rule {
	re := regexp.MustCompile(`\b(` + words + `)\b`)
	return Rule{
		Name: "category_" + category,
		Match: func(text string) (Intent, bool) {
			if !re.MatchString(text) {
				return Intent{}, false
			}
			return Intent{Kind: KindSearchCategory, Confidence: ConfidenceHigh, Category: category}, true
		},
	}
}

// matchPriceCeiling takes the first integer in the whole utterance as the
// bound, not the number next to the keyword.
func matchPriceCeiling(text string) (Intent, bool) {
	if !priceCeilingPattern.MatchString(text) {
		return Intent{}, false
	}
	numbers := Numbers(text, 1)
	if len(numbers) < 1 {
		return Intent{}, false
	}
	return Intent{Kind: KindSearchByPrice, Confidence: ConfidenceHigh, MaxPrice: numbers[0]}, true
}

func matchPriceRange(text string) (Intent, bool) {
	if !priceRangePattern.MatchString(text) {
		return Intent{}, false
	}
	numbers := Numbers(text, 2)
	if len(numbers) < 2 {
		return Intent{}, false
	}
	return Intent{
		Kind:       KindSearchByPriceRange,
		Confidence: ConfidenceHigh,
		MinPrice:   numbers[0],
		MaxPrice:   numbers[1],
	}, true
}
