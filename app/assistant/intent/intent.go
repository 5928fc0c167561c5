package intent

import "fmt"

// Kind is the closed set of purposes an utterance can be classified into.
type Kind int

const (
	KindUnknown Kind = iota
	KindNavigateHome
	KindViewCart
	KindShowProducts
	KindAddToCart
	KindRemoveFromCart
	KindCheckout
	KindViewOrders
	KindSearchCategory
	KindSearchByPrice
	KindSearchByPriceRange
	KindRecommendation
	KindComparison
	KindSortPriceLow
	KindSortPriceHigh
	KindSortNewest
	KindHelp
	KindSearch
)

var kindNames = map[Kind]string{
	KindNavigateHome:       "NAVIGATE_HOME",
	KindViewCart:           "VIEW_CART",
	KindShowProducts:       "SHOW_PRODUCTS",
	KindAddToCart:          "ADD_TO_CART",
	KindRemoveFromCart:     "REMOVE_FROM_CART",
	KindCheckout:           "CHECKOUT",
	KindViewOrders:         "VIEW_ORDERS",
	KindSearchCategory:     "SEARCH_CATEGORY",
	KindSearchByPrice:      "SEARCH_BY_PRICE",
	KindSearchByPriceRange: "SEARCH_BY_PRICE_RANGE",
	KindRecommendation:     "RECOMMENDATION",
	KindComparison:         "COMPARISON",
	KindSortPriceLow:       "SORT_PRICE_LOW",
	KindSortPriceHigh:      "SORT_PRICE_HIGH",
	KindSortNewest:         "SORT_NEWEST",
	KindHelp:               "HELP",
	KindSearch:             "SEARCH",
}

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindNavigateHome; k <= KindSearch; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// NeedsCatalog reports whether resolving the kind requires product data.
func (k Kind) NeedsCatalog() bool {
	switch k {
	case KindSearchCategory, KindSearchByPrice, KindSearchByPriceRange, KindRecommendation:
		return true
	default:
		return false
	}
}

// Confidence buckets the classifier's certainty and drives routing.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return fmt.Sprintf("Confidence(%d)", int(c))
	}
}

// Intent is the classified purpose of one utterance. Price bounds are only
// meaningful for the price search kinds and category only for SEARCH_CATEGORY.
type Intent struct {
	Kind       Kind
	Confidence Confidence
	Category   string
	MinPrice   int64
	MaxPrice   int64
}

func (i Intent) String() string {
	switch i.Kind {
	case KindSearchCategory:
		return fmt.Sprintf("%s{category:%s}/%s", i.Kind, i.Category, i.Confidence)
	case KindSearchByPrice:
		return fmt.Sprintf("%s{maxPrice:%d}/%s", i.Kind, i.MaxPrice, i.Confidence)
	case KindSearchByPriceRange:
		return fmt.Sprintf("%s{minPrice:%d,maxPrice:%d}/%s", i.Kind, i.MinPrice, i.MaxPrice, i.Confidence)
	default:
		return fmt.Sprintf("%s/%s", i.Kind, i.Confidence)
	}
}
