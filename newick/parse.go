package newick

import (
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/TuftsBCB/phylo/tree"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Reader corresponds to the state necessary to read trees from Newick
// formatted input.
//
// The whole input is read and stripped of comments (see Normalize) on the
// first call to ReadTree or ReadAll.
type Reader struct {
	*lexer
	input io.Reader
	count int
}

// NewReader returns a reader ready for reading trees from `r`.
func NewReader(r io.Reader) *Reader {
	return &Reader{input: r}
}

// ParseString returns all of the trees in `s`. See ReadAll.
func ParseString(s string) ([]*tree.Node, error) {
	return NewReader(strings.NewReader(s)).ReadAll()
}

// ReadAll returns all of the Newick trees in the source input, in order.
//
// A statement that fails to parse does not stop the others from being read.
// The returned error combines one error for each failed statement (use
// multierr.Errors to get them separately), and the returned trees are the
// ones that parsed. The error is never `io.EOF`.
func (lx *Reader) ReadAll() ([]*tree.Node, error) {
	var errs error
	trees := make([]*tree.Node, 0)
	for {
		t, err := lx.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			if _, ok := err.(readError); ok {
				return nil, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		trees = append(trees, t)
	}
	return trees, errs
}

// ReadTree reads a single tree from the source input. If the end of the
// input is reached, then a nil tree is returned with `io.EOF` as the error.
//
// If the tree is malformed, an error is returned and the rest of its
// statement (up to the next ';') is skipped, so ReadTree may be called
// again to read the following tree.
//
// Parent links are not set. Use tree.LinkParents.
func (lx *Reader) ReadTree() (*tree.Node, error) {
	if lx.lexer == nil {
		if err := lx.load(); err != nil {
			return nil, err
		}
	}

	item := lx.nextItem()
	if item.typ == itemEOF {
		return nil, io.EOF
	}
	lx.count++

	root := &tree.Node{}
	next, err := lx.parse(root, item)
	if err == nil && next.typ != itemTerminal && next.typ != itemEOF {
		err = expectErr(next, fmt.Sprintf("a terminal '%c'", terminal))
	}
	if err != nil {
		lx.skipStatement(next)
		tracer().Errorf("tree %d: %s", lx.count, err)
		return nil, errors.Wrapf(err, "Tree %d", lx.count)
	}
	tracer().Debugf("read tree %d", lx.count)
	return root, nil
}

type readError struct {
	error
}

func (lx *Reader) load() error {
	bs, err := ioutil.ReadAll(lx.input)
	if err != nil {
		return readError{errors.Wrap(err, "Could not read Newick input")}
	}
	text, tail := Normalize(string(bs))
	lx.lexer = lex(text, tail)
	return nil
}

// skipStatement drops items up to the end of the statement containing
// `last`, which is the item parsing stopped at.
func (lx *Reader) skipStatement(last item) {
	for last.typ != itemTerminal && last.typ != itemEOF {
		last = lx.nextItem()
	}
}

// parse reads the subtree starting with `next` into `parent`, and returns
// the first item following it.
func (lx *Reader) parse(parent *tree.Node, next item) (item, error) {
	if next.typ == itemDescendentsStart {
		// A descendent list has one child for each slot between commas, even
		// when the slot is empty.
	CHILDREN:
		for {
			child := &tree.Node{}
			after, err := lx.parse(child, lx.nextItem())
			if err != nil {
				return after, err
			}
			parent.Children = append(parent.Children, child)

			switch after.typ {
			case itemDelimiter:
			case itemDescendentsEnd:
				break CHILDREN
			default:
				return after, expectErr(after,
					fmt.Sprintf("'%c' or '%c'", descDelimiter, descEnd))
			}
		}
		next = lx.nextItem()
	}
	return lx.annotate(parent, next)
}

// annotate reads the optional label, branch length and confidence values of
// a node. The label must come first; the branch length and the confidence
// values may be given in any order.
func (lx *Reader) annotate(t *tree.Node, next item) (item, error) {
	if next.typ == itemLabel {
		t.Name = tree.Label(next.val)
		next = lx.nextItem()
	}
	for {
		switch next.typ {
		case itemLength:
			if t.Length != nil {
				return next, errf(next.line, "Found a second branch length "+
					"'%s' for the same node.", next.val)
			}
			length, err := strconv.ParseFloat(next.val, 64)
			if err != nil {
				return next, errf(next.line, "Invalid branch length: %s", err)
			}
			t.Length = &length
		case itemConfidence:
			conf, err := strconv.ParseFloat(next.val, 64)
			if err != nil {
				return next, errf(next.line, "Invalid confidence value: %s",
					err)
			}
			t.Confidences = append(t.Confidences, conf)
		case itemError, itemLabel, itemDescendentsStart:
			return next, expectErr(next,
				"a branch length, a confidence value or the end of a subtree")
		default:
			return next, nil
		}
		next = lx.nextItem()
	}
}

func expectErr(item item, expected string) error {
	if item.typ == itemError {
		return errf(item.line, "%s", item.val)
	}
	return errf(item.line, "Unexpected %s, expected %s.", item.typ, expected)
}

func errf(line int, format string, v ...interface{}) error {
	return errors.Errorf("Error on line %d: %s", line, fmt.Sprintf(format, v...))
}
