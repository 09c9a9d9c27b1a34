package fixup

import (
	"testing"

	"github.com/netdevops/hierconfig/hconfig"
	"github.com/netdevops/hierconfig/host"
)

func TestInactiveBlocksIsCompatible(t *testing.T) {
	var f InactiveBlocks
	if !f.IsCompatible(host.New("h", "junos", host.Options{})) {
		t.Error("expected junos to be compatible")
	}
	if f.IsCompatible(host.New("h", "ios", host.Options{})) {
		t.Error("expected ios to not be compatible")
	}
}

func TestInactiveBlocksTagsMarkedNodes(t *testing.T) {
	h := host.New("h", "junos", host.Options{})
	remediation := hconfig.NewRoot(h)
	blk := remediation.AddChild("inactive: system services")
	child := blk.AddChild("ssh")
	h.Facts["remediation"] = remediation

	var f InactiveBlocks
	if err := f.Run(h, map[string]struct{}{"all": {}}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !hasTag(blk, "inactive_block") {
		t.Error("inactive block node should be tagged inactive_block")
	}
	if !hasTag(child, "inactive_block") {
		t.Error("add_to_children should propagate the tag to the block's children")
	}
}

func TestInactiveBlocksNoOpWithoutRemediationFact(t *testing.T) {
	h := host.New("h", "junos", host.Options{})
	var f InactiveBlocks
	if err := f.Run(h, map[string]struct{}{"all": {}}); err != nil {
		t.Fatalf("Run() error = %v, want nil when remediation fact is absent", err)
	}
}
