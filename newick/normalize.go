package newick

import (
	"bytes"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	spanText = iota
	spanConfidence
)

var (
	spans     *lexmachine.Lexer
	spansErr  error
	spansOnce sync.Once
)

// spanLexer compiles the DFA used by Normalize. A bracketed span holding
// only a number is a confidence marker; any other bracketed span is a
// comment. On equal length matches, the pattern added first wins.
func spanLexer() (*lexmachine.Lexer, error) {
	spansOnce.Do(func() {
		spans = lexmachine.NewLexer()
		spans.Add(
			[]byte(`\[[ \t\r\n]*[\+\-]?[0-9]+(\.[0-9]*)?[ \t\r\n]*\]`),
			makeSpan(spanConfidence))
		spans.Add([]byte(`\[[^\]]*\]`), skipSpan)
		spans.Add([]byte(`[^\[]+`), makeSpan(spanText))
		spansErr = spans.Compile()
	})
	return spans, spansErr
}

func makeSpan(typ int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typ, string(m.Bytes), m), nil
	}
}

func skipSpan(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Normalize removes comments from Newick text: every bracketed span that
// does not hold a single number is deleted, wherever it occurs (including
// inside quoted labels and in the middle of a label). Numeric spans are
// kept as confidence markers, with the blanks around the number removed.
//
// If a '[' is never closed, the text before it is returned along with an
// error.
func Normalize(text string) (string, error) {
	lx, err := spanLexer()
	if err != nil {
		return "", errors.Wrap(err, "Could not compile the comment lexer")
	}
	scan, err := lx.Scanner([]byte(text))
	if err != nil {
		return "", errors.Wrap(err, "Could not scan for comments")
	}

	buf := new(bytes.Buffer)
	for {
		tok, err, eof := scan.Next()
		if eof {
			break
		} else if ui, ok := err.(*machines.UnconsumedInput); ok {
			return buf.String(), errors.Errorf(
				"Unterminated comment starting at line %d, column %d.",
				ui.StartLine, ui.StartColumn)
		} else if err != nil {
			return buf.String(), errors.WithStack(err)
		}

		token := tok.(*lexmachine.Token)
		switch token.Type {
		case spanConfidence:
			buf.WriteByte('[')
			buf.WriteString(strings.TrimSpace(strings.Trim(
				string(token.Lexeme), "[]")))
			buf.WriteByte(']')
		default:
			buf.Write(token.Lexeme)
		}
	}
	tracer().Debugf("normalized %d bytes to %d bytes", len(text), buf.Len())
	return buf.String(), nil
}
