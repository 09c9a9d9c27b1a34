// Package tagrules applies lineage-matched tag rules to a configuration
// tree: adding or removing tags on every node whose ancestor chain matches
// a rule's lineage template, and filtering traversal by the resulting
// tags.
package tagrules

import (
	"github.com/netdevops/hierconfig/lineage"
	"github.com/netdevops/hierconfig/matcher"
)

// Node is the minimal surface tagrules needs from a tree node; hconfig.Node
// satisfies it, so this package stays independent of the tree
// implementation.
type Node interface {
	lineage.Ancestor
	AppendTags(tags ...string)
	RemoveTags(tags ...string)
	EffectiveTags() map[string]struct{}
}

// Rule adds or removes tags on every node whose lineage matches Lineage.
// An empty Lineage matches every node.
type Rule struct {
	Lineage    []matcher.Dict `yaml:"lineage"`
	AddTags    []string       `yaml:"add_tags,omitempty"`
	RemoveTags []string       `yaml:"remove_tags,omitempty"`
}

// Apply applies rules, in order, to each of nodes. Later rules observe the
// tag state left by earlier ones.
func Apply(rules []Rule, nodes []Node) error {
	for _, rule := range rules {
		for _, n := range nodes {
			ok, err := lineage.Test(rule.Lineage, n, false)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if len(rule.AddTags) > 0 {
				n.AppendTags(rule.AddTags...)
			}
			if len(rule.RemoveTags) > 0 {
				n.RemoveTags(rule.RemoveTags...)
			}
		}
	}
	return nil
}

// LineageRule selects nodes for AllChildrenSortedWithLineageRules-style
// traversal: a node is selected when its lineage matches Lineage and its
// effective tags are not disjoint from IncludeTags (or IncludeTags is
// empty). If a matching rule's ExcludeTags intersects the node's
// effective tags, the node (and, by convention, the subtree rooted at it)
// is excluded instead of merely unselected.
type LineageRule struct {
	Lineage     []matcher.Dict `yaml:"lineage"`
	IncludeTags []string       `yaml:"include_tags,omitempty"`
	ExcludeTags []string       `yaml:"exclude_tags,omitempty"`
}

// Selection reports whether node is selected by any of rules, and whether
// it (and its subtree) should be pruned from further descent because some
// matching rule's ExcludeTags applies.
func Selection(rules []LineageRule, node Node) (selected, prune bool, err error) {
	eff := node.EffectiveTags()
	for _, rule := range rules {
		ok, testErr := lineage.Test(rule.Lineage, node, false)
		if testErr != nil {
			return false, false, testErr
		}
		if !ok {
			continue
		}
		if intersects(rule.ExcludeTags, eff) {
			return false, true, nil
		}
		if len(rule.IncludeTags) == 0 || intersects(rule.IncludeTags, eff) {
			selected = true
		}
	}
	return selected, false, nil
}

func intersects(vals []string, set map[string]struct{}) bool {
	for _, v := range vals {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
