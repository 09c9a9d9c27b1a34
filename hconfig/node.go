// Package hconfig implements the hierarchical, indentation-based
// configuration tree at the center of hierconfig: parsing Cisco-style text
// into a Node tree, rendering it back out, applying tags, and computing the
// remediation delta between a running and a compiled tree.
package hconfig

import (
	"sort"
	"strings"

	"github.com/netdevops/hierconfig/host"
	"github.com/netdevops/hierconfig/lineage"
	"github.com/netdevops/hierconfig/matcher"
	"github.com/netdevops/hierconfig/util"
)

// DefaultOrderWeight is the order_weight new nodes are created with, and
// the weight (*Root).SetOrderWeight falls back to for lines it has no
// rule or "no "-prefix opinion about.
const DefaultOrderWeight = 500

// NegatedOrderWeight is the order_weight (*Root).SetOrderWeight assigns to
// a "no "-prefixed line with no matching host.OrderingRule.
const NegatedOrderWeight = 700

// Node is one line of configuration, plus its children. A Node owns its
// children but only holds a non-owning back-reference to its parent and
// tree root.
type Node struct {
	text string

	parent *Node
	root   *Root

	children     []*Node
	childrenDict map[string]*Node

	tags     map[string]struct{}
	comments map[string]struct{}

	orderWeight int
	newInConfig bool
	instances   []string

	// scaffold marks a remediation node created purely to host nested
	// changes during ConfigToGetTo/Difference recursion; if it ends up
	// childless it is pruned rather than emitted.
	scaffold bool

	// prefixIndex lazily accelerates GetChildren("startswith", ...)
	// against n's direct children; prefixIndexVersion pins it to the
	// tree state it was built from so a stale index is rebuilt rather
	// than trusted after a mutation.
	prefixIndex        *util.PathIndex
	prefixIndexVersion uint64
}

// PathStep is one (kind, value) step of a GetChildDeep path.
type PathStep struct {
	Kind  string
	Value string
}

func newNode(text string, parent *Node) *Node {
	n := &Node{
		text:         text,
		parent:       parent,
		tags:         map[string]struct{}{},
		comments:     map[string]struct{}{},
		childrenDict: map[string]*Node{},
		orderWeight:  DefaultOrderWeight,
	}
	if parent != nil {
		n.root = parent.root
	}
	return n
}

// Text returns the node's own line text.
func (n *Node) Text() string { return n.text }

// SetText overwrites the node's line text directly. It does not update the
// parent's children-by-text index; call (*Node).RebuildChildrenDict on the
// parent afterward if duplicate-child detection or GetChild lookups by the
// old or new text matter again.
func (n *Node) SetText(text string) { n.text = text }

// ParentNode returns n's parent, or nil if n is a tree root.
func (n *Node) ParentNode() *Node { return n.parent }

// Parent implements lineage.Ancestor.
func (n *Node) Parent() lineage.Ancestor {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// IsRoot implements lineage.Ancestor: true for the Node embedded in a Root,
// false for every other node.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Root returns the tree root n belongs to.
func (n *Node) Root() *Root { return n.root }

// Children returns n's direct children, in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// HasChildren reports whether n has at least one direct child.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Depth returns the number of ancestor links between n and the tree root;
// the root itself is 0, its direct children are 1.
func (n *Node) Depth() int {
	d := 0
	for cur := n; cur.parent != nil; cur = cur.parent {
		d++
	}
	return d
}

// OrderWeight returns n's current order weight.
func (n *Node) OrderWeight() int { return n.orderWeight }

// SetWeight sets n's order weight directly, bypassing SetOrderWeight's
// rule-driven assignment.
func (n *Node) SetWeight(w int) { n.orderWeight = w }

// NewInConfig reports whether n was introduced by the delta engine as a
// line present only in the compiled configuration.
func (n *Node) NewInConfig() bool { return n.newInConfig }

// SetNewInConfig sets the new-in-config flag directly.
func (n *Node) SetNewInConfig(v bool) { n.newInConfig = v }

// Instances returns the prior text values n has held, oldest first,
// recorded by OverwriteWith.
func (n *Node) Instances() []string {
	out := make([]string, len(n.instances))
	copy(out, n.instances)
	return out
}

// Comments returns n's comments, sorted for deterministic rendering.
func (n *Node) Comments() []string {
	out := make([]string, 0, len(n.comments))
	for c := range n.comments {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// AddComment attaches a comment to n.
func (n *Node) AddComment(c string) {
	if c == "" {
		return
	}
	if n.comments == nil {
		n.comments = map[string]struct{}{}
	}
	n.comments[c] = struct{}{}
}

func (n *Node) bumpVersion() {
	if n.root != nil {
		n.root.version++
	}
}

func (n *Node) options() host.Options {
	if n.root != nil && n.root.Host != nil {
		return n.root.Host.Options
	}
	return host.Options{}
}

func (n *Node) ensureDict() {
	if n.childrenDict == nil {
		n.childrenDict = map[string]*Node{}
	}
}

func (n *Node) addChildRaw(text string) *Node {
	n.ensureDict()
	child := newNode(text, n)
	n.children = append(n.children, child)
	if _, exists := n.childrenDict[text]; !exists {
		n.childrenDict[text] = child
	}
	n.bumpVersion()
	return child
}

// AddChild returns n's existing child with this text, or appends and
// returns a new one. If n's own lineage matches one of
// host.Options.ParentAllowsDuplicateChild's templates, the dedup check is
// skipped and a new child is always appended.
func (n *Node) AddChild(text string) *Node {
	n.ensureDict()
	if n.allowsDuplicateChild() {
		return n.addChildRaw(text)
	}
	if child, ok := n.childrenDict[text]; ok {
		return child
	}
	return n.addChildRaw(text)
}

// allowsDuplicateChild reports whether n matches any of
// host.Options.ParentAllowsDuplicateChild's lineage templates.
func (n *Node) allowsDuplicateChild() bool {
	if n.root == nil || n.root.Host == nil {
		return false
	}
	for _, rule := range n.root.Host.Options.ParentAllowsDuplicateChild {
		if ok, err := n.LineageTest(rule, false); err == nil && ok {
			return true
		}
	}
	return false
}

// AddChildForce always appends a new child even when one with the same
// text already exists, regardless of
// host.Options.ParentAllowsDuplicateChild.
func (n *Node) AddChildForce(text string) *Node {
	return n.addChildRaw(text)
}

// AddChildren adds texts as children of n. A single string is added as one
// child (not iterated character by character); a []string adds one child
// per element, in order.
func (n *Node) AddChildren(texts interface{}) []*Node {
	switch v := texts.(type) {
	case string:
		return []*Node{n.AddChild(v)}
	case []string:
		out := make([]*Node, 0, len(v))
		for _, t := range v {
			out = append(out, n.AddChild(t))
		}
		return out
	default:
		panic("hconfig: AddChildren: argument must be string or []string")
	}
}

// DelChild removes child from n, if it is in fact a direct child.
func (n *Node) DelChild(child *Node) {
	if child == nil {
		return
	}
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	if n.childrenDict[child.text] == child {
		delete(n.childrenDict, child.text)
	}
	n.bumpVersion()
}

// DelChildByText removes n's child with the given text, if present.
func (n *Node) DelChildByText(text string) {
	if child, ok := n.childrenDict[text]; ok {
		n.DelChild(child)
	}
}

func (n *Node) removeChildRef(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	if n.childrenDict[child.text] == child {
		delete(n.childrenDict, child.text)
	}
}

// Move reparents n under newParent, including across trees.
func (n *Node) Move(newParent *Node) {
	oldRoot := n.root
	if n.parent != nil {
		n.parent.removeChildRef(n)
	}
	n.parent = newParent
	n.root = newParent.root
	newParent.ensureDict()
	newParent.children = append(newParent.children, n)
	if _, exists := newParent.childrenDict[n.text]; !exists {
		newParent.childrenDict[n.text] = n
	}
	if oldRoot != nil {
		oldRoot.version++
	}
	if n.root != nil && n.root != oldRoot {
		n.root.version++
	}
}

// RebuildChildrenDict recomputes n's text-to-child index from n.Children(),
// first-write-wins on duplicate text. Call after bulk restructuring (Move,
// direct SetText calls) that may have left the index stale.
func (n *Node) RebuildChildrenDict() {
	n.childrenDict = map[string]*Node{}
	for _, c := range n.children {
		if _, exists := n.childrenDict[c.text]; !exists {
			n.childrenDict[c.text] = c
		}
	}
}

// GetChild returns the first direct child whose text matches the single
// (kind, value) matcher test, or nil.
func (n *Node) GetChild(kind, value string) *Node {
	d := matcher.Dict{kind: value}
	for _, c := range n.children {
		if ok, err := matcher.Match(d, c.text); err == nil && ok {
			return c
		}
	}
	return nil
}

// GetChildren returns every direct child whose text matches the single
// (kind, value) matcher test. A "startswith" query is served from a
// lazily-built, version-pinned util.PathIndex instead of a linear scan,
// so a per-OS object-prefix sweep over a large running config (see
// fixup.UnusedObjects) stays sub-linear in the number of siblings.
func (n *Node) GetChildren(kind, value string) []*Node {
	if kind == "startswith" {
		n.ensurePrefixIndex()
		matches := n.prefixIndex.WithPrefix(value)
		if len(matches) == 0 {
			return nil
		}
		out := make([]*Node, len(matches))
		for i, m := range matches {
			out[i] = m.(*Node)
		}
		return out
	}
	d := matcher.Dict{kind: value}
	var out []*Node
	for _, c := range n.children {
		if ok, err := matcher.Match(d, c.text); err == nil && ok {
			out = append(out, c)
		}
	}
	return out
}

// ensurePrefixIndex (re)builds n.prefixIndex from n.children if it is
// missing or was built against a since-mutated tree.
func (n *Node) ensurePrefixIndex() {
	version := n.root.version
	if n.prefixIndex != nil && n.prefixIndexVersion == version {
		return
	}
	idx := util.NewPathIndex()
	for _, c := range n.children {
		idx.Add(c.text, c)
	}
	n.prefixIndex = idx
	n.prefixIndexVersion = version
}

// GetChildDeep follows path one direct-child GetChild lookup at a time,
// returning nil as soon as any step fails to resolve.
func (n *Node) GetChildDeep(path []PathStep) *Node {
	cur := n
	for _, step := range path {
		cur = cur.GetChild(step.Kind, step.Value)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// LineageTest reports whether n's ancestor chain aligns with rules; see
// lineage.Test.
func (n *Node) LineageTest(rules []matcher.Dict, strict bool) (bool, error) {
	return lineage.Test(rules, n, strict)
}

const negateWord = "no"

// Negate toggles the "no " prefix on n's text.
func (n *Node) Negate() *Node {
	n.negateWithWord(negateWord)
	return n
}

func (n *Node) negateWithWord(word string) {
	prefix := word + " "
	if strings.HasPrefix(n.text, prefix) {
		n.text = strings.TrimPrefix(n.text, prefix)
	} else {
		n.text = prefix + n.text
	}
}

// DefaultIndent is the number of spaces CiscoStyleText indents per
// nesting level.
const DefaultIndent = 2

// CiscoStyleText renders n's text indented (n.Depth()-1)*indent spaces:
// top-level lines get no indent, their direct children get one level, and
// so on.
func (n *Node) CiscoStyleText(indent int) string {
	depth := n.Depth()
	pad := 0
	if depth > 1 {
		pad = (depth - 1) * indent
	}
	return strings.Repeat(" ", pad) + n.text
}

// String renders n with DefaultIndent, satisfying fmt.Stringer.
func (n *Node) String() string { return n.CiscoStyleText(DefaultIndent) }

// AllChildren returns a lazy, pre-order iterator over every descendant of
// n (not including n itself).
func (n *Node) AllChildren() *NodeIter {
	it := &NodeIter{}
	if n.root != nil {
		it.version = n.root.version
		it.root = n.root
	}
	it.stack = append(it.stack, n.children...)
	reverseNodes(it.stack)
	return it
}

func reverseNodes(s []*Node) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// NodeIter walks a subtree lazily in pre-order, panicking with
// *MutationDuringIterationError if the tree structure changes mid-walk.
type NodeIter struct {
	stack   []*Node
	root    *Root
	version uint64
}

// Next returns the next node, or nil once the walk is exhausted.
func (it *NodeIter) Next() *Node {
	if it.root != nil && it.root.version != it.version {
		panic(&MutationDuringIterationError{})
	}
	if len(it.stack) == 0 {
		return nil
	}
	n := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	children := append([]*Node(nil), n.children...)
	reverseNodes(children)
	it.stack = append(it.stack, children...)
	return n
}

// Collect drains the iterator into a slice.
func (it *NodeIter) Collect() []*Node {
	var out []*Node
	for n := it.Next(); n != nil; n = it.Next() {
		out = append(out, n)
	}
	return out
}

// AllChildrenSorted returns every descendant in render order: each node
// immediately followed by its own (order_weight, text)-sorted subtree.
func (n *Node) AllChildrenSorted() []*Node {
	return n.allChildrenSortedInto(nil)
}

func (n *Node) allChildrenSortedInto(out []*Node) []*Node {
	children := n.sortedChildren()
	for _, c := range children {
		out = append(out, c)
		out = c.allChildrenSortedInto(out)
	}
	return out
}

func (n *Node) sortedChildren() []*Node {
	children := append([]*Node(nil), n.children...)
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].orderWeight != children[j].orderWeight {
			return children[i].orderWeight < children[j].orderWeight
		}
		return children[i].text < children[j].text
	})
	return children
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// Equal reports whether n and other have the same text, order weight,
// tags, comments, and an equal, equally-ordered list of children.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.text != other.text || n.orderWeight != other.orderWeight {
		return false
	}
	if !setEqual(n.tags, other.tags) || !setEqual(n.comments, other.comments) {
		return false
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

func copyAttrs(dst, src *Node) {
	dst.orderWeight = src.orderWeight
	for t := range src.tags {
		dst.tags[t] = struct{}{}
	}
	for c := range src.comments {
		dst.comments[c] = struct{}{}
	}
}

// AddDeepCopyOf adds a copy of src (and its entire subtree) as a child of
// n, reusing n's existing child of that text if one exists.
func (n *Node) AddDeepCopyOf(src *Node) *Node {
	child := n.AddChild(src.text)
	copyAttrs(child, src)
	for _, c := range src.children {
		child.AddDeepCopyOf(c)
	}
	return child
}

// AddDeepCopyOfForce is like AddDeepCopyOf but always appends a new
// sibling, even if n already has a child with src's text. Used by Merge,
// where identical top-level sections must coexist rather than collapse.
func (n *Node) AddDeepCopyOfForce(src *Node) *Node {
	child := n.AddChildForce(src.text)
	copyAttrs(child, src)
	for _, c := range src.children {
		child.AddDeepCopyOf(c)
	}
	return child
}

// AddAncestorCopyOf adds a copy of src and its ancestors (excluding the
// tree root), but not src's own descendants, under n. Because AddChild is
// idempotent, any ancestor n already has is reused rather than duplicated.
func (n *Node) AddAncestorCopyOf(src *Node) *Node {
	var chain []*Node
	for cur := src; cur != nil && !cur.IsRoot(); cur = cur.parent {
		chain = append(chain, cur)
	}
	reverseNodes(chain)

	cur := n
	for _, anc := range chain {
		child := cur.AddChild(anc.text)
		copyAttrs(child, anc)
		cur = child
	}
	return cur
}

// OverwriteWith replaces n's children wholesale with copies of other's,
// recording n's prior text in Instances. Used where sectional-overwrite
// semantics call for replacing a section rather than diffing it line by
// line.
func (n *Node) OverwriteWith(other *Node) {
	n.instances = append(n.instances, n.text)
	n.children = nil
	n.childrenDict = map[string]*Node{}
	n.bumpVersion()
	for _, c := range other.children {
		n.AddDeepCopyOf(c)
	}
}
