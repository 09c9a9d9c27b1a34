package hconfig

import (
	"strings"

	"github.com/netdevops/hierconfig/host"
	"github.com/netdevops/hierconfig/matcher"
)

// ConfigToGetTo computes the remediation tree that, applied to r's running
// configuration, produces compiled's configuration: a left-only pass
// negates running lines compiled lacks, a right-only pass adds compiled
// lines running lacks, and sectional-overwrite sections are replaced
// wholesale. The result is pruned of scaffold nodes that ended up empty
// and has its order weights assigned per r.Host.Options.Ordering.
func (r *Root) ConfigToGetTo(compiled *Root) *Root {
	remediation := NewRoot(r.Host)
	r.Node.configToGetToLeft(&compiled.Node, &remediation.Node)
	r.Node.configToGetToRight(&compiled.Node, &remediation.Node)
	remediation.Node.prune()
	remediation.SetOrderWeight()
	return remediation
}

// configToGetToLeft emits, under remediation, a negation of every direct
// child of n ("running") absent from compiled — unless it is new_in_config
// (never negated), or it is an idempotent command whose replacement value
// is about to be emitted by the right pass instead.
func (n *Node) configToGetToLeft(compiled, remediation *Node) {
	opts := n.options()
	for _, rChild := range n.children {
		if rChild.newInConfig {
			continue
		}
		if _, exists := compiled.childrenDict[rChild.text]; exists {
			continue
		}
		if key, ok := idempotentKey(rChild, opts); ok && hasIdempotentSibling(compiled, key) {
			continue
		}
		neg := remediation.AddChild(rChild.text)
		neg.negateWithWord(opts.NegationWord())
	}
}

// configToGetToRight emits, under remediation, every direct child of
// compiled running lacks (deep-copied, marked new_in_config), replaces
// sectional-overwrite sections wholesale, and recurses into sections
// common to both.
func (n *Node) configToGetToRight(compiled, remediation *Node) {
	opts := n.options()
	for _, cChild := range compiled.children {
		rChild, exists := n.childrenDict[cChild.text]
		switch {
		case !exists:
			fresh := remediation.AddChild(cChild.text)
			fresh.newInConfig = true
			copyAttrs(fresh, cChild)
			for _, gc := range cChild.children {
				fresh.AddDeepCopyOf(gc)
			}

		case matchesAnyRuleSet(rChild, opts.SectionalOverwrite) && !rChild.Equal(cChild):
			neg := remediation.AddChild(rChild.text)
			neg.negateWithWord(opts.NegationWord())
			fresh := remediation.AddChildForce(cChild.text)
			fresh.newInConfig = true
			copyAttrs(fresh, cChild)
			for _, gc := range cChild.children {
				fresh.AddDeepCopyOf(gc)
			}

		case matchesAnyRuleSet(rChild, opts.SectionalOverwriteNoNegate) && !rChild.Equal(cChild):
			fresh := remediation.AddChild(cChild.text)
			fresh.newInConfig = true
			copyAttrs(fresh, cChild)
			for _, gc := range cChild.children {
				fresh.AddDeepCopyOf(gc)
			}

		default:
			child := remediation.AddChild(rChild.text)
			child.scaffold = true
			rChild.configToGetToLeft(cChild, child)
			rChild.configToGetToRight(cChild, child)
		}
	}
}

// prune removes, recursively and in post-order, any child that is a
// scaffold node (created purely to host nested changes) and ended up with
// no children of its own.
func (n *Node) prune() {
	var kept []*Node
	for _, c := range n.children {
		c.prune()
		if c.scaffold && len(c.children) == 0 {
			continue
		}
		kept = append(kept, c)
	}
	n.children = kept
	n.RebuildChildrenDict()
}

// Difference returns the subtree of step not present in other: a purely
// additive structural diff with no negation, used to answer "what does
// step have that other doesn't", preserving just enough common-ancestor
// scaffolding to place the new lines correctly.
func (step *Root) Difference(other *Root) *Root {
	result := NewRoot(step.Host)
	diffRightOnly(&step.Node, &other.Node, &result.Node)
	result.Node.prune()
	return result
}

func diffRightOnly(self, other, dest *Node) {
	for _, c := range self.children {
		if match, ok := other.childrenDict[c.text]; ok {
			child := dest.AddChild(c.text)
			child.scaffold = true
			diffRightOnly(c, match, child)
			continue
		}
		fresh := dest.AddChild(c.text)
		copyAttrs(fresh, c)
		for _, gc := range c.children {
			fresh.AddDeepCopyOf(gc)
		}
	}
}

// SetOrderWeight assigns every descendant's order weight from
// r.Host.Options.Ordering's first matching rule, falling back to
// NegatedOrderWeight for a "no "-prefixed line and DefaultOrderWeight
// otherwise.
func (r *Root) SetOrderWeight() {
	opts := host.Options{}
	if r.Host != nil {
		opts = r.Host.Options
	}
	for _, n := range r.AllChildren().Collect() {
		n.orderWeight = computeOrderWeight(n, opts)
	}
}

func computeOrderWeight(n *Node, opts host.Options) int {
	for _, rule := range opts.Ordering {
		if ok, err := n.LineageTest(rule.Lineage, false); err == nil && ok {
			return rule.Weight
		}
	}
	if strings.HasPrefix(n.text, "no ") {
		return NegatedOrderWeight
	}
	return DefaultOrderWeight
}

// idempotentKey reports the prefix identifying n's idempotent "slot" (two
// nodes sharing this prefix, e.g. "ip address ", are the same slot), and
// whether n's lineage matches any host.Options.IdempotentCommands rule
// whose deepest matcher constrains text via "startswith".
func idempotentKey(n *Node, opts host.Options) (string, bool) {
	for _, rule := range opts.IdempotentCommands {
		ok, err := n.LineageTest(rule, false)
		if err != nil || !ok || len(rule) == 0 {
			continue
		}
		last := rule[len(rule)-1]
		raw, ok := last["startswith"]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case string:
			return v, true
		case []string:
			if len(v) > 0 {
				return v[0], true
			}
		}
	}
	return "", false
}

func hasIdempotentSibling(parent *Node, key string) bool {
	for _, c := range parent.children {
		if strings.HasPrefix(c.text, key) {
			return true
		}
	}
	return false
}

func matchesAnyRuleSet(n *Node, ruleSets [][]matcher.Dict) bool {
	for _, rs := range ruleSets {
		if ok, err := n.LineageTest(rs, false); err == nil && ok {
			return true
		}
	}
	return false
}
