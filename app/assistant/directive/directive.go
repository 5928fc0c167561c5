// Package directive names the next step the storefront UI should take after a
// command. The interpreter only names directives; the UI executes them.
package directive

import "fmt"

type Action int

const (
	None Action = iota
	Navigate
	SearchCategory
	SearchPrice
	SearchPriceRange
	ShowResults
	ViewCart
	Checkout
)

var actionNames = map[Action]string{
	Navigate:         "NAVIGATE",
	SearchCategory:   "SEARCH_CATEGORY",
	SearchPrice:      "SEARCH_PRICE",
	SearchPriceRange: "SEARCH_PRICE_RANGE",
	ShowResults:      "SHOW_RESULTS",
	ViewCart:         "VIEW_CART",
	Checkout:         "CHECKOUT",
}

// String returns the wire name of the action; None renders as "".
func (a Action) String() string {
	if a == None {
		return ""
	}
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Valid reports whether a belongs to the closed directive set. None is valid.
func (a Action) Valid() bool {
	if a == None {
		return true
	}
	_, ok := actionNames[a]
	return ok
}

// Present reports whether the action asks the UI to do something.
func (a Action) Present() bool {
	return a != None && a.Valid()
}

func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown action %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown action %q", string(text))
	}
	*a = parsed
	return nil
}

// Parse maps a wire name back to its Action. The empty string is None.
func Parse(name string) (Action, bool) {
	if name == "" {
		return None, true
	}
	for action, n := range actionNames {
		if n == name {
			return action, true
		}
	}
	return None, false
}

// Actions lists every action that carries a directive.
func Actions() []Action {
	return []Action{Navigate, SearchCategory, SearchPrice, SearchPriceRange, ShowResults, ViewCart, Checkout}
}
