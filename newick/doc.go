/*
Package newick provides facilities for reading and writing trees in the
Newick (New Hampshire) format. The format used is roughly equivalent to the
conventions established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html.

An informal description of the Newick format can be found here:
http://evolution.genetics.washington.edu/phylip/newicktree.html.

A few extensions are accepted. Labels may be quoted with either single or
double quotes; a doubled quote inside a quoted label is a literal quote.
Unquoted labels may contain blanks. A bracketed number following a node's
label or branch length, as in "(a,b)[95]:0.1", is read as a confidence value
of that node. Any other bracketed text is a comment and is dropped, wherever
it appears (see Normalize).

Trees are read into and written from *tree.Node values.
*/
package newick

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'phylo.newick'
func tracer() tracing.Trace {
	return tracing.Select("phylo.newick")
}
