// Package intent classifies storefront voice and text commands with an
// ordered table of pattern rules.
package intent

import "strings"

// Classify maps an utterance to exactly one Intent. It never fails: input no
// rule recognises becomes a low confidence SEARCH.
func Classify(utterance string) Intent {
	return classifyWith(defaultRules, utterance)
}

// Rules returns a copy of the priority table, highest priority first.
func Rules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

// Normalize lowercases the utterance, trims it and collapses inner whitespace.
func Normalize(utterance string) string {
	return strings.Join(strings.Fields(strings.ToLower(utterance)), " ")
}

func classifyWith(rules []Rule, utterance string) Intent {
	text := Normalize(utterance)
	if text != "" {
		for _, rule := range rules {
			if in, ok := rule.Match(text); ok {
				return in
			}
		}
	}
	return Intent{Kind: KindSearch, Confidence: ConfidenceLow}
}
