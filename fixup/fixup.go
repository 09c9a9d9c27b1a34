// Package fixup implements OS-dispatched remediation rewriters: scenario
// based tree rewrites that run after the delta engine, tagging or
// commenting nodes a given device family needs special handling for.
package fixup

import (
	"github.com/netdevops/hierconfig/hconfig"
	"github.com/netdevops/hierconfig/host"
	"github.com/netdevops/hierconfig/matcher"
)

// Scenario describes one remediation scenario: the tags that activate it,
// the comment(s) it attaches, and where those tags land once it fires.
type Scenario struct {
	Tags     []string
	Comments []string
	// Actions is a subset of "add_to_node", "add_to_children",
	// "add_to_parents".
	Actions []string
}

// Fixup is an OS-dispatched remediation rewriter: given an active tag
// set, it decides which of its Scenarios() are relevant and runs them
// against a host's facts.
type Fixup interface {
	Scenarios() map[string]Scenario
	IsCompatible(h *host.Host) bool
	Run(h *host.Host, activeTags map[string]struct{}) error
}

// Tags returns the union of every scenario's Tags. It reads each
// scenario's "tags" field directly off the typed Scenario struct — the
// Go equivalent of reading the literal "tags" key of a scenario dict;
// the Python source accidentally indexes by the loop variable instead
// of the string "tags".
func Tags(f Fixup) map[string]struct{} {
	out := map[string]struct{}{}
	for _, s := range f.Scenarios() {
		for _, t := range s.Tags {
			out[t] = struct{}{}
		}
	}
	return out
}

// IsRelevant reports whether f should run at all: f.IsCompatible(h)
// called as a method (the Python source treats it as a property) and
// whether activeTags contains "all" or
// intersects f's Tags().
func IsRelevant(f Fixup, h *host.Host, activeTags map[string]struct{}) bool {
	if !f.IsCompatible(h) {
		return false
	}
	if _, ok := activeTags["all"]; ok {
		return true
	}
	for t := range Tags(f) {
		if _, ok := activeTags[t]; ok {
			return true
		}
	}
	return false
}

// Base provides the scenario-application plumbing every Fixup
// implementation shares: dispatching a scenario's Actions across a
// node's own tags, its descendants, or its ancestors.
type Base struct{}

// ApplyScenario applies scenario's tags and comments to target per its
// Actions, optionally rewriting target's text first.
func (Base) ApplyScenario(scenario Scenario, target *hconfig.Node, newText string) {
	if newText != "" {
		target.SetText(newText)
	}
	for _, c := range scenario.Comments {
		target.AddComment(c)
	}
	for _, action := range scenario.Actions {
		switch action {
		case "add_to_node":
			target.AppendTags(scenario.Tags...)
		case "add_to_children":
			// Tags target itself and every descendant, matching the
			// Python original's apply_tags_deep.
			target.AppendTags(scenario.Tags...)
			for _, d := range target.AllChildren().Collect() {
				d.AppendTags(scenario.Tags...)
			}
		case "add_to_parents":
			// Tags target itself and every ancestor up to (not
			// including) the tree root, matching apply_tags_ancestors.
			target.AppendTags(scenario.Tags...)
			for cur := target.ParentNode(); cur != nil && !cur.IsRoot(); cur = cur.ParentNode() {
				cur.AppendTags(scenario.Tags...)
			}
		}
	}
}

// ApplyScenarioViaRules applies scenario to every descendant of root
// whose lineage matches rules.
func (b Base) ApplyScenarioViaRules(scenario Scenario, root *hconfig.Node, rules []matcher.Dict) error {
	for _, child := range root.AllChildren().Collect() {
		ok, err := child.LineageTest(rules, false)
		if err != nil {
			return err
		}
		if ok {
			b.ApplyScenario(scenario, child, "")
		}
	}
	return nil
}
