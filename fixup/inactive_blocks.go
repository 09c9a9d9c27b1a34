package fixup

import (
	"strings"

	"github.com/netdevops/hierconfig/hconfig"
	"github.com/netdevops/hierconfig/host"
)

const inactivePrefix = "inactive: "

var inactiveBlockScenarios = map[string]Scenario{
	"inactive_block": {
		Tags:     []string{"safe", "inactive_block"},
		Comments: []string{"administratively inactive"},
		Actions:  []string{"add_to_node", "add_to_children"},
	},
}

// InactiveBlocks tags Junos configuration blocks marked with the
// "inactive: " line prefix, so remediation tooling can treat a
// reactivation (removing "inactive: ") the same as any other safe,
// self-contained change rather than a structural section rewrite.
//
// Grounded on original_source's remediation_fixups package; added here
// since Junos's inactive-block marker is an OS-specific quirk of the
// same shape the other fixups already handle.
type InactiveBlocks struct {
	Base
}

func (InactiveBlocks) Scenarios() map[string]Scenario { return inactiveBlockScenarios }

func (InactiveBlocks) IsCompatible(h *host.Host) bool { return h.OS == "junos" }

func (f InactiveBlocks) Run(h *host.Host, activeTags map[string]struct{}) error {
	if !IsRelevant(f, h, activeTags) {
		return nil
	}
	remediation, ok := h.Facts["remediation"].(*hconfig.Root)
	if !ok || remediation == nil {
		return nil
	}
	scenario := f.Scenarios()["inactive_block"]
	for _, n := range remediation.AllChildren().Collect() {
		if strings.HasPrefix(n.Text(), inactivePrefix) {
			f.ApplyScenario(scenario, n, "")
		}
	}
	return nil
}
