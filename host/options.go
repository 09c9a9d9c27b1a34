package host

import "github.com/netdevops/hierconfig/matcher"

// OrderingRule assigns OrderWeight to any remediation node whose lineage
// matches Lineage.
type OrderingRule struct {
	Lineage []matcher.Dict `yaml:"lineage"`
	Weight  int            `yaml:"weight"`
}

// SectionalExitingRule names a synthetic Terminator line that
// (*hconfig.Root).AddSectionalExiting appends as the last child of any
// section matched by Lineage, e.g. "exit-peer-policy" in a BGP
// peer-policy template. Render orders children by (order weight, text),
// so the terminator is not necessarily the section's last rendered line.
type SectionalExitingRule struct {
	Lineage    []matcher.Dict `yaml:"lineage"`
	Terminator string         `yaml:"terminator"`
}

// PerLineSubRule is a search/replace pair applied to a line's rendered
// text, e.g. to mask a shared secret before printing.
type PerLineSubRule struct {
	Search  string `yaml:"search"`
	Replace string `yaml:"replace"`
}

// Options carries the device-family-specific behavior consumed read-only
// by the parser, renderer, and delta engine. It is immutable after
// construction; multiple trees may share one Options value.
type Options struct {
	// IdempotentCommands lists lineage templates marking commands where
	// issuing a new value replaces the prior one in place; no explicit
	// negation is emitted for these by the delta engine.
	IdempotentCommands [][]matcher.Dict `yaml:"idempotent_commands"`

	// Negation is the word prefixed to negate a command. Defaults to
	// "no"; some platforms use "default" instead.
	Negation string `yaml:"negation"`

	// SectionalOverwrite lists lineage templates marking sections that
	// must be replaced wholesale (negate-then-recreate) rather than
	// diffed child by child.
	SectionalOverwrite [][]matcher.Dict `yaml:"sectional_overwrite"`

	// SectionalOverwriteNoNegate is like SectionalOverwrite, but the
	// replacement omits the negation of the old section.
	SectionalOverwriteNoNegate [][]matcher.Dict `yaml:"sectional_overwrite_no_negate"`

	// SectionalExiting lists sections that need a synthetic terminator
	// line appended as their last child by
	// (*hconfig.Root).AddSectionalExiting; Render does not inject it.
	SectionalExiting []SectionalExitingRule `yaml:"sectional_exiting"`

	// Ordering lists lineage-to-weight rules consulted by
	// (*hconfig.Root).SetOrderWeight.
	Ordering []OrderingRule `yaml:"ordering"`

	// PerLineSub lists search/replace pairs applied to every rendered
	// line's text.
	PerLineSub []PerLineSubRule `yaml:"per_line_sub"`

	// ParentAllowsDuplicateChild lists lineage templates for parents
	// under which two children with identical text may coexist,
	// overriding the normal add-child-deduplicates rule.
	ParentAllowsDuplicateChild [][]matcher.Dict `yaml:"parent_allows_duplicate_child"`
}

// NegationWord returns o.Negation, defaulting to "no".
func (o Options) NegationWord() string {
	if o.Negation == "" {
		return "no"
	}
	return o.Negation
}
