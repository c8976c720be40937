package tree

import (
	"bytes"
	"fmt"
	"strings"
)

// Node is a single node of a phylogenetic tree. Every tree is represented by
// its root node.
type Node struct {
	// The label of this node. If it's `nil`, then this node does not have a
	// name. An empty label is a name.
	Name *string

	// The branch length of this node corresponding to the distance between
	// it and its parent node. If it's `nil`, then no distance exists.
	Length *float64

	// Support values for the edge above this node, in order of appearance.
	Confidences []float64

	// All children of this node, which may be empty.
	Children []*Node

	// The parent of this node, or nil for a root. This is only valid after
	// LinkParents has been called on the tree and no structural change has
	// been made since.
	Parent *Node

	// Set by display oriented producers to hide the children of this node.
	// Only PreOrder looks at it.
	Collapsed bool

	// Data carried for other producers (taxonomy, sequence annotations and
	// so on). It is never read or changed by this module.
	Data interface{}
}

// Label returns a pointer to a copy of s, for use as a Node's Name.
func Label(s string) *string {
	return &s
}

// Length returns a pointer to a copy of f, for use as a Node's Length.
func Length(f float64) *float64 {
	return &f
}

// Label returns the name of this node, or an empty string if it has none.
func (n *Node) Label() string {
	if n.Name == nil {
		return ""
	}
	return *n.Name
}

// IsLeaf returns true when the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// String recursively converts a tree to a string, with whitespace indenting
// to indicate depth.
func (n *Node) String() string {
	buf := new(bytes.Buffer)
	pf := func(format string, v ...interface{}) {
		fmt.Fprintf(buf, format, v...)
	}

	var out func(t *Node, depth int)
	out = func(t *Node, depth int) {
		name, length, conf := "N/A", "", ""
		if t.Name != nil {
			name = fmt.Sprintf("%q", *t.Name)
		}
		if t.Length != nil {
			length = fmt.Sprintf(" (%f)", *t.Length)
		}
		if len(t.Confidences) > 0 {
			conf = fmt.Sprintf(" %v", t.Confidences)
		}
		pf("%s%s%s%s\n", strings.Repeat("  ", depth), name, length, conf)
		for _, child := range t.Children {
			out(child, depth+1)
		}
	}
	out(n, 0)
	return buf.String()
}
