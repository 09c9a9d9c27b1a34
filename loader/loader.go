// Package loader reads host options, tagging rules, and inventory
// descriptors from YAML files on disk into the typed structures the
// hconfig, tagrules, and fixup packages consume.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netdevops/hierconfig/host"
	"github.com/netdevops/hierconfig/tagrules"
)

// HostDescriptor is one entry of an inventory file: a host's identity
// plus the paths to the YAML files describing its options and tag
// rules.
type HostDescriptor struct {
	Hostname    string `yaml:"hostname"`
	OS          string `yaml:"os"`
	OptionsFile string `yaml:"options_file"`
	TagsFile    string `yaml:"tags_file,omitempty"`
}

// Inventory is the top-level shape of an inventory YAML file: a flat
// list of hosts to load and operate on.
type Inventory struct {
	Hosts []HostDescriptor `yaml:"hosts"`
}

// LoadOptions reads a host.Options value from a YAML file, e.g.
// options_ios.yml in the original hier_config tag/options convention.
func LoadOptions(path string) (host.Options, error) {
	var opts host.Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("loader: reading options file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("loader: parsing options file %q: %w", path, err)
	}
	return opts, nil
}

// LoadTagRules reads a list of tagrules.Rule from a YAML file.
func LoadTagRules(path string) ([]tagrules.Rule, error) {
	var rules []tagrules.Rule
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: reading tags file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("loader: parsing tags file %q: %w", path, err)
	}
	return rules, nil
}

// LoadLineageRules reads a list of tagrules.LineageRule from a YAML
// file, in the shape (*hconfig.Node).AllChildrenSortedWithLineageRules
// takes.
func LoadLineageRules(path string) ([]tagrules.LineageRule, error) {
	var rules []tagrules.LineageRule
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: reading lineage rules file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("loader: parsing lineage rules file %q: %w", path, err)
	}
	return rules, nil
}

// LoadInventory reads a multi-host inventory file.
func LoadInventory(path string) (Inventory, error) {
	var inv Inventory
	data, err := os.ReadFile(path)
	if err != nil {
		return inv, fmt.Errorf("loader: reading inventory file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return inv, fmt.Errorf("loader: parsing inventory file %q: %w", path, err)
	}
	return inv, nil
}

// NewHost builds a *host.Host from a descriptor, loading its options
// file and, if set, storing the rules of its tags file in
// h.Facts["tag_rules"] as a []tagrules.Rule. No tags are applied here.
func NewHost(d HostDescriptor) (*host.Host, error) {
	opts, err := LoadOptions(d.OptionsFile)
	if err != nil {
		return nil, err
	}
	h := host.New(d.Hostname, d.OS, opts)
	if d.TagsFile != "" {
		rules, err := LoadTagRules(d.TagsFile)
		if err != nil {
			return nil, err
		}
		h.Facts["tag_rules"] = rules
	}
	return h, nil
}
