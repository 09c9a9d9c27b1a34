package hconfig

import "github.com/netdevops/hierconfig/host"

// DumpNode is the serializable form of a Node subtree: every field Equal
// doesn't already reconstruct from structure (tags, comments, order
// weight, new_in_config, instances) plus nested Children, so a tree
// dumped and loaded back reproduces the original structurally.
type DumpNode struct {
	Text        string     `yaml:"text" json:"text"`
	Tags        []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
	Comments    []string   `yaml:"comments,omitempty" json:"comments,omitempty"`
	OrderWeight int        `yaml:"order_weight" json:"order_weight"`
	NewInConfig bool       `yaml:"new_in_config,omitempty" json:"new_in_config,omitempty"`
	Instances   []string   `yaml:"instances,omitempty" json:"instances,omitempty"`
	Children    []DumpNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// Dump returns n and its subtree as a DumpNode tree, n's own text, tags
// and other fields included. To dump a whole tree without the root's own
// empty entry, use Root.Dump, which returns only the top-level children.
func (n *Node) Dump() DumpNode {
	d := DumpNode{
		Text:        n.text,
		Tags:        n.Tags(),
		Comments:    n.Comments(),
		OrderWeight: n.orderWeight,
		NewInConfig: n.newInConfig,
		Instances:   n.Instances(),
	}
	for _, c := range n.children {
		d.Children = append(d.Children, c.Dump())
	}
	return d
}

// Dump returns r's top-level children as a DumpNode slice.
func (r *Root) Dump() []DumpNode {
	out := make([]DumpNode, 0, len(r.children))
	for _, c := range r.children {
		out = append(out, c.Dump())
	}
	return out
}

// LoadFromDump rebuilds a tree from the output of Dump into a fresh Root
// bound to h.
func LoadFromDump(h *host.Host, dump []DumpNode) *Root {
	r := NewRoot(h)
	r.Node.loadDump(dump)
	return r
}

func (n *Node) loadDump(dump []DumpNode) {
	for _, d := range dump {
		child := n.AddChildForce(d.Text)
		child.orderWeight = d.OrderWeight
		child.newInConfig = d.NewInConfig
		child.instances = append([]string(nil), d.Instances...)
		child.AppendTags(d.Tags...)
		for _, c := range d.Comments {
			child.AddComment(c)
		}
		child.loadDump(d.Children)
	}
}
