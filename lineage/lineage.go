// Package lineage matches an ordered sequence of matcher dicts against a
// node's ancestor chain.
package lineage

import "github.com/netdevops/hierconfig/matcher"

// Ancestor is the minimal view of a tree node lineage.Test needs.
// *hconfig.Node implements it directly, so this package stays independent
// of the tree implementation.
type Ancestor interface {
	// Text returns this node's own line text.
	Text() string
	// Parent returns this node's parent, or nil if this node is the root.
	Parent() Ancestor
	// IsRoot reports whether this node is the tree root. The root is
	// always excluded from the lineage chain.
	IsRoot() bool
}

// Test reports whether node's ancestor chain (root-exclusive, node itself
// always included as the last element) can be aligned to rules in order,
// anchored so the last rule must match node itself. With strict, every
// earlier rule must align to the immediately-next ancestor with no gaps;
// without it, rules may skip over ancestors that don't match.
func Test(rules []matcher.Dict, node Ancestor, strict bool) (bool, error) {
	if len(rules) == 0 {
		return true, nil
	}
	chain := ancestorChain(node)
	if len(chain) == 0 {
		return false, nil
	}

	ok, err := matcher.Match(rules[len(rules)-1], chain[0].Text())
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	ri := len(rules) - 2
	ci := 1
	for ri >= 0 {
		if ci >= len(chain) {
			return false, nil
		}
		ok, err := matcher.Match(rules[ri], chain[ci].Text())
		if err != nil {
			return false, err
		}
		if ok {
			ri--
			ci++
			continue
		}
		if strict {
			return false, nil
		}
		ci++
	}
	return true, nil
}

// ancestorChain returns node and its ancestors, deepest first (chain[0] is
// node itself), stopping before the root.
func ancestorChain(node Ancestor) []Ancestor {
	var chain []Ancestor
	for cur := node; cur != nil && !cur.IsRoot(); cur = cur.Parent() {
		chain = append(chain, cur)
	}
	return chain
}
