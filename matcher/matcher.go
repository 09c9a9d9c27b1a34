// Package matcher evaluates a single predicate ("matcher dict") against a
// configuration line's text, the leaf-most building block of hierconfig's
// lineage and tag-rule engines.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// Dict is a matcher dict: one or more test kinds, each mapped to a string
// or a []string of values to test a line's text against. A node's text
// matches a Dict when every test kind present is satisfied.
type Dict map[string]interface{}

// Error reports that a Dict used a test kind Match does not recognize.
type Error struct {
	Kind string
}

func (e *Error) Error() string {
	return fmt.Sprintf("matcher: unknown test kind %q", e.Kind)
}

type testFunc func(text, value string) bool

var kinds = map[string]testFunc{
	"equals":     func(text, value string) bool { return text == value },
	"startswith": strings.HasPrefix,
	"endswith":   strings.HasSuffix,
	"contains":   strings.Contains,
	"re_search":  reSearch,
}

func reSearch(text, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// Match reports whether text satisfies every test kind in d. Multiple
// kinds are ANDed; multiple values for one kind are ORed. A kind name
// prefixed with "not_" (e.g. "not_startswith") is satisfied when none of
// its values match. Match returns a *Error if d names a kind Match does
// not recognize.
func Match(d Dict, text string) (bool, error) {
	for kind, raw := range d {
		baseKind := kind
		negate := false
		if strings.HasPrefix(kind, "not_") {
			negate = true
			baseKind = strings.TrimPrefix(kind, "not_")
		}
		fn, ok := kinds[baseKind]
		if !ok {
			return false, &Error{Kind: kind}
		}
		values, err := asStrings(raw)
		if err != nil {
			return false, err
		}
		anyMatched := false
		for _, v := range values {
			if fn(text, v) {
				anyMatched = true
				break
			}
		}
		satisfied := anyMatched
		if negate {
			satisfied = !anyMatched
		}
		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}

func asStrings(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("matcher: value must be string or []string, got %T", raw)
	}
}
