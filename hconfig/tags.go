package hconfig

import (
	"sort"

	"github.com/netdevops/hierconfig/tagrules"
	"github.com/netdevops/hierconfig/util"
)

// AbsenceTag is the sentinel EffectiveTags reports when a node has no
// tags of its own and none of its ancestors do either. It lets
// LineInclusionTest and AllChildrenSortedUntagged treat "no tags" as a
// first-class, matchable value instead of a special case.
const AbsenceTag = "\x00hconfig:untagged\x00"

// AppendTags adds tags to n's own tag set.
func (n *Node) AppendTags(tags ...string) {
	if n.tags == nil {
		n.tags = map[string]struct{}{}
	}
	for _, t := range tags {
		n.tags[t] = struct{}{}
	}
}

// RemoveTags removes tags from n's own tag set. It does not affect tags a
// node inherited from an ancestor.
func (n *Node) RemoveTags(tags ...string) {
	for _, t := range tags {
		delete(n.tags, t)
	}
}

// Tags returns n's own tags (not ancestor-inherited), sorted.
func (n *Node) Tags() []string {
	out := make([]string, 0, len(n.tags))
	for t := range n.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// EffectiveTags returns the union of n's own tags and every ancestor's
// tags: a node inherits the tags of the sections it lives under. A node
// with no tags of its own and no tagged ancestor reports {AbsenceTag}.
//
// See DESIGN.md "Open Question decisions" #7 for why this reads
// ancestor-down rather than descendant-up.
func (n *Node) EffectiveTags() map[string]struct{} {
	eff := map[string]struct{}{}
	for t := range n.tags {
		eff[t] = struct{}{}
	}
	if n.parent != nil {
		for t := range n.parent.EffectiveTags() {
			eff[t] = struct{}{}
		}
	}
	if len(eff) == 0 {
		eff[AbsenceTag] = struct{}{}
	}
	return eff
}

func anyIn(vals []string, set map[string]struct{}) bool {
	for _, v := range vals {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// LineInclusionTest reports whether n should be included in output
// constrained by required/excluded tag sets.
//
// required == nil (as opposed to an empty, non-nil slice) means "no tag
// set was specified" and is unconditionally unsatisfiable: nothing
// matches a nil required filter. A non-empty required filter passes only
// if it intersects n's effective tags.
//
// excluded == nil means "exclude untagged lines": a node with no
// effective tags, own or inherited (AbsenceTag), fails. A non-nil, non-empty
// excluded filter fails n if it intersects n's effective tags; a non-nil
// empty excluded filter excludes nothing.
func (n *Node) LineInclusionTest(required, excluded []string) bool {
	if required == nil {
		return false
	}
	eff := n.EffectiveTags()
	if len(required) > 0 && !anyIn(required, eff) {
		return false
	}
	if excluded == nil {
		if _, untagged := eff[AbsenceTag]; untagged {
			return false
		}
	} else if len(excluded) > 0 && anyIn(excluded, eff) {
		return false
	}
	return true
}

// AllChildrenSortedByTags returns every descendant, in AllChildrenSorted
// order, whose effective tags intersect required (if non-empty) and don't
// intersect excluded (if non-empty). Unlike LineInclusionTest, a nil or
// empty required/excluded here means "no constraint on that axis" — there
// is no None-is-always-false special case.
func (n *Node) AllChildrenSortedByTags(required, excluded []string) []*Node {
	var out []*Node
	for _, c := range n.AllChildrenSorted() {
		eff := c.EffectiveTags()
		if len(required) > 0 && !anyIn(required, eff) {
			continue
		}
		if len(excluded) > 0 && anyIn(excluded, eff) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// AllChildrenSortedUntagged returns every descendant with no effective
// tags: neither its own nor any ancestor's.
func (n *Node) AllChildrenSortedUntagged() []*Node {
	return n.AllChildrenSortedByTags([]string{AbsenceTag}, nil)
}

// AddTags applies rules (C7) to n and every descendant, in rule order.
func (n *Node) AddTags(rules []tagrules.Rule) error {
	descendants := n.AllChildren().Collect()
	nodes := make([]tagrules.Node, 0, len(descendants)+1)
	nodes = append(nodes, n)
	for _, d := range descendants {
		nodes = append(nodes, d)
	}
	return tagrules.Apply(rules, nodes)
}

// AllChildrenSortedWithLineageRules returns, in AllChildrenSorted order,
// every descendant selected by tagrules.Selection against rules, pruning
// (not descending into) any subtree a matching rule's ExcludeTags
// excludes. Every node the walk visits is tested even after a matcher
// error, so a malformed rule reports every node it failed on (via
// util.Errors) instead of hiding all but the first.
func (n *Node) AllChildrenSortedWithLineageRules(rules []tagrules.LineageRule) ([]*Node, error) {
	var out []*Node
	var errs util.Errors
	var walk func(node *Node)
	walk = func(node *Node) {
		for _, c := range node.sortedChildren() {
			selected, prune, err := tagrules.Selection(rules, c)
			if err != nil {
				errs = util.AppendErr(errs, err)
				walk(c)
				continue
			}
			if prune {
				continue
			}
			if selected {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	if errs != nil {
		return nil, errs
	}
	return out, nil
}
