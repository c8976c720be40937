/*
Package tree provides the node model shared by the phylogenetic tree readers
and writers in this module, along with traversal, name lookup and re-rooting.

A tree is just its root *Node. Children are owned by their parent and their
order is significant. The Parent field is a derived index: nothing in this
package keeps it up to date except LinkParents, which must be called after a
tree is built and again after any structural change (such as ReRoot) before
Root or any other upward navigation is used.
*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'phylo.tree'
func tracer() tracing.Trace {
	return tracing.Select("phylo.tree")
}
