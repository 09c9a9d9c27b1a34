package hconfig

import (
	"os"
	"strings"

	"github.com/netdevops/hierconfig/host"
)

// Root is the top of a configuration tree, bound to a host.Host. Root
// embeds Node so every Node operation (AddChild, AllChildren, ...) is
// available directly on a Root; Root.Node.parent is always nil, making
// Root.Node.IsRoot() true and excluding it from lineage chains.
type Root struct {
	Node

	Host *host.Host

	// version is bumped on every structural mutation anywhere in the
	// tree, so a live NodeIter can detect concurrent modification.
	version uint64
}

// NewRoot returns an empty tree bound to h.
func NewRoot(h *host.Host) *Root {
	r := &Root{Host: h}
	r.Node.tags = map[string]struct{}{}
	r.Node.comments = map[string]struct{}{}
	r.Node.childrenDict = map[string]*Node{}
	r.Node.root = r
	return r
}

// LoadFromFile reads path and parses it as Cisco-style indented text.
func LoadFromFile(h *host.Host, path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := NewRoot(h)
	if err := r.LoadFromString(string(data)); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFromString parses text into r, which should be empty. It fails fast
// on the first *ParseError it cannot recover from (e.g. an indented line
// with no ancestor at a smaller indent to attach to).
func (r *Root) LoadFromString(text string) error {
	type frame struct {
		indent int
		node   *Node
	}
	var stack []frame
	var lastNode *Node = &r.Node

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))

		if strings.HasPrefix(trimmed, "!") {
			lastNode.AddComment(strings.TrimSpace(strings.TrimPrefix(trimmed, "!")))
			continue
		}

		text, comment := splitTrailingComment(trimmed)

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}

		var parent *Node
		if len(stack) == 0 {
			if indent > 0 {
				return &ParseError{Line: lineNo, Msg: "indented line has no ancestor to attach to"}
			}
			parent = &r.Node
		} else {
			parent = stack[len(stack)-1].node
		}

		child := parent.AddChild(text)
		if comment != "" {
			child.AddComment(comment)
		}
		stack = append(stack, frame{indent: indent, node: child})
		lastNode = child
	}
	return nil
}

// splitTrailingComment splits "ip address 1.1.1.1 255.255.255.0 ! masked"
// into its command text and trailing comment, at the first " !" that
// isn't the start of the line.
func splitTrailingComment(line string) (text, comment string) {
	idx := strings.Index(line, " !")
	if idx < 0 {
		return line, ""
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+2:])
}

// AddSectionalExiting injects host.Options.SectionalExiting's Terminator
// line as the last child of every section matching a rule's Lineage. Safe
// to call more than once: AddChild is idempotent.
func (r *Root) AddSectionalExiting() error {
	rules := r.Host.Options.SectionalExiting
	if len(rules) == 0 {
		return nil
	}
	for _, n := range r.AllChildren().Collect() {
		for _, rule := range rules {
			ok, err := n.LineageTest(rule.Lineage, false)
			if err != nil {
				return err
			}
			if ok {
				n.AddChild(rule.Terminator)
			}
		}
	}
	return nil
}

// Render walks AllChildrenSorted and writes out each node's
// CiscoStyleText, with any per-line comment appended as "! comment". Each
// line is then passed through host.Options.PerLineSub's search/replace
// pairs, in order, e.g. to mask a shared secret before printing.
func (r *Root) Render() string {
	subs := r.Host.Options.PerLineSub
	var sb strings.Builder
	for _, n := range r.AllChildrenSorted() {
		line := n.CiscoStyleText(DefaultIndent)
		if len(n.comments) > 0 {
			line += " ! " + strings.Join(n.Comments(), ",")
		}
		for _, sub := range subs {
			line = strings.ReplaceAll(line, sub.Search, sub.Replace)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// String satisfies fmt.Stringer by rendering r.
func (r *Root) String() string { return r.Render() }

// Merge concatenates other's top-level children (and their subtrees) onto
// r, without deduplicating by text: merging a root with itself doubles
// every top-level section.
func (r *Root) Merge(other *Root) {
	for _, c := range other.children {
		r.Node.AddDeepCopyOfForce(c)
	}
}

// Equal reports whether r and other have the same top-level children, in
// order (Node.Equal recurses into subtrees).
func (r *Root) Equal(other *Root) bool {
	if len(r.children) != len(other.children) {
		return false
	}
	for i := range r.children {
		if !r.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}
