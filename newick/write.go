package newick

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/TuftsBCB/phylo/tree"
)

// NaturalPrecision formats branch lengths with the fewest digits that read
// back as the same number, without rounding.
const NaturalPrecision = -1

// unsafeLabel lists the characters that force a label to be quoted.
const unsafeLabel = " \t\r\n()[],:;'\""

// A Writer writes trees in the Newick format.
//
// With the default settings, any tree read by a Reader is written back as
// the text it was read from (apart from comments, blanks and quoting, which
// are written in one canonical way).
type Writer struct {
	// The maximum number of decimals of a branch length. Trailing zeros are
	// always dropped. By default, this is NaturalPrecision; any negative
	// value means the same.
	Precision int

	// Whether confidence values are written as '[value]' after a node's
	// branch length. By default, this is true.
	Confidences bool
	buf         *bufio.Writer
}

// NewWriter creates a new Newick writer that writes trees to an io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Precision:   NaturalPrecision,
		Confidences: true,
		buf:         bufio.NewWriter(w),
	}
}

// Format returns the Newick text of a single tree, terminated by ';', using
// the default writer settings.
func Format(t *tree.Node) string {
	return FormatPrecision(t, NaturalPrecision)
}

// FormatPrecision is like Format, but rounds branch lengths to at most
// `precision` decimals.
func FormatPrecision(t *tree.Node, precision int) string {
	buf := new(bytes.Buffer)
	w := NewWriter(buf)
	w.Precision = precision
	if err := w.Write(t); err != nil {
		panic(err) // a bytes.Buffer does not fail
	}
	if err := w.Flush(); err != nil {
		panic(err)
	}
	return buf.String()
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write writes a single tree followed by ';'. Nodes are written in their
// stored order; nothing is renamed or reordered.
//
// You may need to call Flush in order for the changes to be written.
func (w *Writer) Write(t *tree.Node) error {
	w.subtree(t)
	_, err := w.buf.WriteRune(terminal)
	return err
}

// WriteAll writes a slice of trees to the underyling io.Writer, one after
// the other, and calls Flush.
func (w *Writer) WriteAll(trees []*tree.Node) error {
	for _, t := range trees {
		if err := w.Write(t); err != nil {
			return err
		}
	}
	return w.Flush()
}

// subtree writes to the buffer only; write errors are reported by the
// bufio.Writer on the next write or flush.
func (w *Writer) subtree(t *tree.Node) {
	if len(t.Children) > 0 {
		w.buf.WriteRune(descStart)
		for i, child := range t.Children {
			if i > 0 {
				w.buf.WriteRune(descDelimiter)
			}
			w.subtree(child)
		}
		w.buf.WriteRune(descEnd)
	}
	if t.Name != nil {
		w.buf.WriteString(quoteLabel(*t.Name))
	}
	if t.Length != nil {
		w.buf.WriteRune(lengthStart)
		w.buf.WriteString(w.formatLength(*t.Length))
	}
	if w.Confidences {
		for _, conf := range t.Confidences {
			w.buf.WriteRune(confStart)
			w.buf.WriteString(strconv.FormatFloat(conf, 'f', -1, 64))
			w.buf.WriteRune(confEnd)
		}
	}
}

func (w *Writer) formatLength(length float64) string {
	var s string
	if w.Precision < 0 {
		s = strconv.FormatFloat(length, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(length, 'f', w.Precision, 64)
		if strings.ContainsRune(s, '.') {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
	}
	if s == "-0" { // negative zero, or a tiny negative length rounded away
		return "0"
	}
	return s
}

// quoteLabel wraps a label in single quotes if it is empty or contains a
// character with a meaning in the format. Single quotes inside are doubled.
func quoteLabel(label string) string {
	if len(label) > 0 && !strings.ContainsAny(label, unsafeLabel) {
		return label
	}
	return "'" + strings.Replace(label, "'", "''", -1) + "'"
}
