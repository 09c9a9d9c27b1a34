package util

import "github.com/derekparker/trie"

// PathIndex is a trie-backed index over a set of configuration line
// texts, supporting fast startswith-style prefix lookups. It is built
// once over a snapshot of a subtree's line texts and queried many times,
// the same usage shape as a gNMI path-prefix trie
// (github.com/derekparker/trie), just repointed at config line text
// instead of gNMI path strings.
type PathIndex struct {
	t        *trie.Trie
	payloads map[string][]interface{}
}

// NewPathIndex returns an empty PathIndex.
func NewPathIndex() *PathIndex {
	return &PathIndex{
		t:        trie.New(),
		payloads: map[string][]interface{}{},
	}
}

// Add indexes text, associating it with payload (typically a node
// pointer). The same text may be added more than once with different
// payloads.
func (p *PathIndex) Add(text string, payload interface{}) {
	if _, ok := p.payloads[text]; !ok {
		p.t.Add(text, nil)
	}
	p.payloads[text] = append(p.payloads[text], payload)
}

// WithPrefix returns the payloads of every indexed text that starts
// with prefix.
func (p *PathIndex) WithPrefix(prefix string) []interface{} {
	var out []interface{}
	for _, key := range p.t.PrefixSearch(prefix) {
		out = append(out, p.payloads[key]...)
	}
	return out
}

// Len returns the number of distinct texts indexed.
func (p *PathIndex) Len() int {
	return len(p.payloads)
}
