package fixup

import (
	"fmt"
	"strings"

	"github.com/netdevops/hierconfig/hconfig"
	"github.com/netdevops/hierconfig/host"
)

var unusedObjectScenarios = map[string]Scenario{
	"unused_object": {
		Tags:     []string{"safe", "unused_object"},
		Comments: []string{"unused object"},
		// Normalized here at the table, not patched at dispatch time, so
		// this table is the single source of truth (the Python source
		// uses an unnormalized ('node',) action tuple here).
		Actions: []string{"add_to_node"},
	},
}

// objectPrefixesByOS lists, per OS, the line prefixes that declare a
// named, potentially-unused object (ACL, prefix-list, route-map, ...).
// iosxr's entries are written without a trailing space on purpose —
// canonicalPrefix normalizes every entry the same way before use, so the
// inconsistent spelling here never leaks into a comparison.
var objectPrefixesByOS = map[string][]string{
	"ios": {
		"ip prefix-list ",
		"ipv6 prefix-list ",
		"ipv6 access-list ",
		"ip as-path access-list ",
		"ipv6 general-prefix ",
		"route-map ",
		"ip access-list extended ",
		"ip access-list standard ",
		"class-map match-any ",
		"class-map match-all ",
	},
	"eos": {
		"ip prefix-list ",
		"ipv6 prefix-list ",
		"route-map ",
		"ip access-list ",
		"class-map ",
	},
	"nxos": {
		"ip prefix-list ",
		"ipv6 prefix-list ",
		"ipv6 access-list ",
		"ip as-path access-list ",
		"route-map ",
		"ip access-list ",
		"class-map match-any ",
		"class-map match-all ",
		"object-group ip address ",
		"object-group ip port ",
		"object-group ipv6 address ",
	},
	"iosxr": {
		"prefix-set",
		"route-policy",
		"community-set",
		"as-path-set",
		"class-map match-any",
		"class-map match-all",
	},
}

// UnusedObjects tags object declarations (prefix-lists, route-maps,
// class-maps, ...) that nothing else in the running configuration
// references, so they can be safely removed.
//
// Grounded on original_source/hier_config/remediation_fixups/
// unused_objects.py, fixing four of its bugs along the way: reading the
// literal "tags" key, calling IsCompatible as a method, normalizing
// scenario actions at the table, and canonicalizing the object prefix's
// trailing whitespace before every concatenation.
type UnusedObjects struct {
	Base
}

func (UnusedObjects) Scenarios() map[string]Scenario { return unusedObjectScenarios }

func (UnusedObjects) IsCompatible(h *host.Host) bool {
	_, ok := objectPrefixesByOS[h.OS]
	return ok
}

// Run scans host.Facts["running_config"] for unused object declarations
// and tags their corresponding negation in host.Facts["remediation"].
func (u UnusedObjects) Run(h *host.Host, activeTags map[string]struct{}) error {
	if !IsRelevant(u, h, activeTags) {
		return nil
	}
	prefixes, ok := objectPrefixesByOS[h.OS]
	if !ok {
		return &NotImplementedError{Fixup: "UnusedObjects", OS: h.OS}
	}
	running, ok := h.Facts["running_config"].(*hconfig.Root)
	if !ok || running == nil {
		return fmt.Errorf("fixup: UnusedObjects requires host.Facts[\"running_config\"] to be a *hconfig.Root")
	}
	remediation, ok := h.Facts["remediation"].(*hconfig.Root)
	if !ok || remediation == nil {
		return fmt.Errorf("fixup: UnusedObjects requires host.Facts[\"remediation\"] to be a *hconfig.Root")
	}

	scenario := u.Scenarios()["unused_object"]
	negWord := h.Options.NegationWord()
	for _, rawPrefix := range prefixes {
		u.unusedObjectCommonLogic(scenario, negWord, running, remediation, rawPrefix)
	}
	return nil
}

// canonicalPrefix trims any existing trailing whitespace and re-adds
// exactly one trailing space, so every OS's prefix table concatenates
// consistently regardless of how it was originally spelled.
func canonicalPrefix(p string) string {
	return strings.TrimRight(p, " ") + " "
}

func (u UnusedObjects) unusedObjectCommonLogic(scenario Scenario, negWord string, running, remediation *hconfig.Root, rawPrefix string) {
	prefix := canonicalPrefix(rawPrefix)
	prefixFieldCount := len(strings.Fields(prefix))

	for _, rcObj := range running.GetChildren("startswith", prefix) {
		fields := strings.Fields(rcObj.Text())
		if len(fields) <= prefixFieldCount {
			continue
		}
		name := stripParenArgs(fields[prefixFieldCount])

		negText := negWord + " " + rcObj.Text()
		negNode := remediation.GetChild("equals", negText)
		if negNode == nil {
			continue
		}
		if !usedElsewhere(running, prefix, name) {
			u.ApplyScenario(scenario, negNode, "")
		}
	}
}

func stripParenArgs(name string) string {
	if idx := strings.Index(name, "("); idx >= 0 {
		return name[:idx]
	}
	return name
}

// usedElsewhere reports whether name appears outside of its own
// top-level declaration line(s) anywhere in running: as a standalone
// word, as the start of a parenthesized argument, or as the last word of
// a line.
func usedElsewhere(running *hconfig.Root, prefix, name string) bool {
	for _, n := range running.AllChildren().Collect() {
		if n.Depth() == 1 && strings.HasPrefix(n.Text(), prefix) {
			fields := strings.Fields(n.Text())
			if k := len(strings.Fields(prefix)); len(fields) > k && stripParenArgs(fields[k]) == name {
				continue
			}
		}
		t := n.Text()
		if strings.Contains(t, " "+name+" ") ||
			strings.Contains(t, " "+name+"(") ||
			strings.HasSuffix(t, " "+name) {
			return true
		}
	}
	return false
}
