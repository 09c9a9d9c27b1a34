package tagrules

import (
	"testing"

	"github.com/netdevops/hierconfig/lineage"
	"github.com/netdevops/hierconfig/matcher"
)

type fakeNode struct {
	text   string
	parent *fakeNode
	root   bool
	tags   map[string]struct{}
}

func (f *fakeNode) Text() string { return f.text }
func (f *fakeNode) Parent() lineage.Ancestor {
	if f.parent == nil {
		return nil
	}
	return f.parent
}
func (f *fakeNode) IsRoot() bool { return f.root }
func (f *fakeNode) AppendTags(tags ...string) {
	if f.tags == nil {
		f.tags = map[string]struct{}{}
	}
	for _, t := range tags {
		f.tags[t] = struct{}{}
	}
}
func (f *fakeNode) RemoveTags(tags ...string) {
	for _, t := range tags {
		delete(f.tags, t)
	}
}
func (f *fakeNode) EffectiveTags() map[string]struct{} {
	eff := map[string]struct{}{}
	for t := range f.tags {
		eff[t] = struct{}{}
	}
	if f.parent != nil {
		for t := range f.parent.EffectiveTags() {
			eff[t] = struct{}{}
		}
	}
	return eff
}

func tree() (root, iface, desc *fakeNode) {
	root = &fakeNode{text: "", root: true}
	iface = &fakeNode{text: "interface Vlan2", parent: root}
	desc = &fakeNode{text: "description switch-mgmt", parent: iface}
	return
}

func TestApplyAddAndRemove(t *testing.T) {
	_, iface, desc := tree()
	nodes := []Node{iface, desc}
	rules := []Rule{
		{Lineage: []matcher.Dict{{"startswith": "interface "}}, AddTags: []string{"safe"}},
	}
	if err := Apply(rules, nodes); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, ok := iface.tags["safe"]; !ok {
		t.Error("interface node missing 'safe' tag")
	}
	if _, ok := desc.tags["safe"]; ok {
		t.Error("description node should not be tagged directly, only via ancestor-down effective tags")
	}
	if _, ok := desc.EffectiveTags()["safe"]; !ok {
		t.Error("description node's effective tags should inherit 'safe' from its parent")
	}

	removeRules := []Rule{
		{Lineage: []matcher.Dict{{"startswith": "interface "}}, RemoveTags: []string{"safe"}},
	}
	if err := Apply(removeRules, nodes); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, ok := iface.tags["safe"]; ok {
		t.Error("'safe' tag should have been removed")
	}
}

func TestApplyLaterRuleSeesEarlierEffect(t *testing.T) {
	_, iface, _ := tree()
	nodes := []Node{iface}
	rules := []Rule{
		{Lineage: nil, AddTags: []string{"a"}},
		{Lineage: nil, RemoveTags: []string{"a"}, AddTags: []string{"b"}},
	}
	if err := Apply(rules, nodes); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, ok := iface.tags["a"]; ok {
		t.Error("'a' should have been removed by the second rule")
	}
	if _, ok := iface.tags["b"]; !ok {
		t.Error("'b' should have been added by the second rule")
	}
}

func TestSelectionIncludeExclude(t *testing.T) {
	_, iface, desc := tree()
	iface.AppendTags("safe")
	rules := []LineageRule{
		{Lineage: []matcher.Dict{{"startswith": "description "}}, IncludeTags: []string{"safe"}},
	}
	selected, prune, err := Selection(rules, desc)
	if err != nil {
		t.Fatalf("Selection() error = %v", err)
	}
	if prune {
		t.Error("Selection() pruned unexpectedly")
	}
	if !selected {
		t.Error("Selection() = false, want true (desc inherits 'safe' from iface)")
	}
}

func TestSelectionExcludePrunes(t *testing.T) {
	_, iface, desc := tree()
	iface.AppendTags("unsafe")
	rules := []LineageRule{
		{Lineage: []matcher.Dict{{"startswith": "description "}}, ExcludeTags: []string{"unsafe"}},
	}
	_, prune, err := Selection(rules, desc)
	if err != nil {
		t.Fatalf("Selection() error = %v", err)
	}
	if !prune {
		t.Error("Selection() should prune a node whose effective tags hit ExcludeTags")
	}
}

func TestSelectionNoMatchingRule(t *testing.T) {
	_, _, desc := tree()
	rules := []LineageRule{
		{Lineage: []matcher.Dict{{"startswith": "router "}}, IncludeTags: []string{"safe"}},
	}
	selected, prune, err := Selection(rules, desc)
	if err != nil {
		t.Fatalf("Selection() error = %v", err)
	}
	if selected || prune {
		t.Errorf("Selection() = %v, %v, want false, false", selected, prune)
	}
}
