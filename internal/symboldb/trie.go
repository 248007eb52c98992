package symboldb

import "github.com/balsymbols/symbolindex/internal/symbols"

// prefixTrie accelerates the name* search tier without scanning every
// entry of byNameCI. It is a secondary structure: dropping it under
// memory pressure only degrades prefix search back to a full scan,
// never correctness.
type prefixTrie struct {
	root *trieNode
}

type trieNode struct {
	children map[byte]*trieNode
	objects  []*symbols.Object
}

func newPrefixTrie() *prefixTrie {
	return &prefixTrie{root: &trieNode{children: make(map[byte]*trieNode)}}
}

func (t *prefixTrie) insert(nameLower string, obj *symbols.Object) {
	node := t.root
	for i := 0; i < len(nameLower); i++ {
		c := nameLower[i]
		child, ok := node.children[c]
		if !ok {
			child = &trieNode{children: make(map[byte]*trieNode)}
			node.children[c] = child
		}
		node = child
	}
	node.objects = append(node.objects, obj)
}

func (t *prefixTrie) remove(nameLower string, obj *symbols.Object) {
	node := t.root
	for i := 0; i < len(nameLower); i++ {
		child, ok := node.children[nameLower[i]]
		if !ok {
			return
		}
		node = child
	}
	node.objects = removeObject(node.objects, obj)
}

// search returns every object whose lowercased name has prefixLower as
// a prefix.
func (t *prefixTrie) search(prefixLower string) []*symbols.Object {
	node := t.root
	for i := 0; i < len(prefixLower); i++ {
		child, ok := node.children[prefixLower[i]]
		if !ok {
			return nil
		}
		node = child
	}
	var out []*symbols.Object
	collect(node, &out)
	return out
}

func collect(node *trieNode, out *[]*symbols.Object) {
	*out = append(*out, node.objects...)
	for _, child := range node.children {
		collect(child, out)
	}
}
