package fixup

import (
	"testing"

	"github.com/netdevops/hierconfig/hconfig"
	"github.com/netdevops/hierconfig/host"
)

func hasTag(n *hconfig.Node, want string) bool {
	for _, tag := range n.Tags() {
		if tag == want {
			return true
		}
	}
	return false
}

func TestApplyScenarioAddToChildrenTagsSelfAndDescendants(t *testing.T) {
	h := host.New("h", "ios", host.Options{})
	root := hconfig.NewRoot(h)
	iface := root.AddChild("interface Vlan2")
	child := iface.AddChild("description mgmt")
	grandchild := child.AddChild("nested")

	var b Base
	scenario := Scenario{Tags: []string{"deep"}, Actions: []string{"add_to_children"}}
	b.ApplyScenario(scenario, iface, "")

	if !hasTag(iface, "deep") {
		t.Error("add_to_children should tag the target node itself")
	}
	if !hasTag(child, "deep") {
		t.Error("add_to_children should tag direct descendants")
	}
	if !hasTag(grandchild, "deep") {
		t.Error("add_to_children should tag all descendants, not just direct children")
	}
}

func TestApplyScenarioAddToParentsTagsSelfAndAncestors(t *testing.T) {
	h := host.New("h", "ios", host.Options{})
	root := hconfig.NewRoot(h)
	iface := root.AddChild("interface Vlan2")
	child := iface.AddChild("description mgmt")

	var b Base
	scenario := Scenario{Tags: []string{"up"}, Actions: []string{"add_to_parents"}}
	b.ApplyScenario(scenario, child, "")

	if !hasTag(child, "up") {
		t.Error("add_to_parents should tag the target node itself")
	}
	if !hasTag(iface, "up") {
		t.Error("add_to_parents should tag the node's ancestors")
	}
	for _, tag := range root.Tags() {
		if tag == "up" {
			t.Error("add_to_parents should not tag the tree root")
		}
	}
}
