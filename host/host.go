// Package host describes the device a configuration tree is bound to: its
// OS identifier, its device-family Options, and the fact bag collaborators
// (such as the unused-object fixup) read and write.
package host

// Host binds a configuration tree to a device identity. A Host is built
// once and then treated as read-only; it may be shared across multiple
// trees so long as no tree is mutated concurrently with another reader.
type Host struct {
	Hostname string
	OS       string
	Options  Options

	// Facts is a free-form bag of host-scoped data fixups consult, e.g.
	// facts["running_config"] and facts["remediation"] as used by
	// fixup.UnusedObjects.
	Facts map[string]interface{}
}

// New returns a Host bound to hostname/os with the given Options.
func New(hostname, os string, opts Options) *Host {
	return &Host{
		Hostname: hostname,
		OS:       os,
		Options:  opts,
		Facts:    map[string]interface{}{},
	}
}
