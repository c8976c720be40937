package newick

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemTerminal
	itemDescendentsStart
	itemDescendentsEnd
	itemDelimiter
	itemLabel
	itemLength
	itemConfidence
)

const (
	eof           = -1
	terminal      = ';'
	descDelimiter = ','
	descStart     = '('
	descEnd       = ')'
	quoteSingle   = '\''
	quoteDouble   = '"'
	lengthStart   = ':'
	confStart     = '['
	confEnd       = ']'
)

const unquoteBanned = "]'\""

type stateFn func(lx *lexer) stateFn

// lexer splits normalized Newick text (see Normalize) into items. Comments
// are already gone at this point, so every '[' starts a confidence marker.
type lexer struct {
	buf   string
	start int
	pos   int
	width int
	line  int
	tail  error
	state stateFn
	items chan item
}

type item struct {
	typ  itemType
	val  string
	line int
}

func (lx *lexer) nextItem() item {
	for {
		select {
		case item := <-lx.items:
			return item
		default:
			if lx.state == nil {
				return item{itemEOF, "", lx.line}
			}
			lx.state = lx.state(lx)
		}
	}
}

// lex starts lexing `input`. If `tail` is not nil, it is reported as an
// error once the input runs out; this is how a failure to normalize the rest
// of the input reaches the statement it belongs to.
func lex(input string, tail error) *lexer {
	return &lexer{
		buf:   input,
		tail:  tail,
		state: lexStatement,
		line:  1,
		items: make(chan item, 10),
	}
}

func (lx *lexer) current() string {
	return lx.buf[lx.start:lx.pos]
}

func (lx *lexer) emit(typ itemType) {
	lx.emitValue(typ, lx.current())
}

func (lx *lexer) emitValue(typ itemType, val string) {
	lx.items <- item{typ, val, lx.line}
	lx.start = lx.pos
}

func (lx *lexer) next() (r rune) {
	if lx.pos >= len(lx.buf) {
		lx.width = 0
		return eof
	}

	if lx.buf[lx.pos] == '\n' {
		lx.line++
	}
	r, lx.width = utf8.DecodeRuneInString(lx.buf[lx.pos:])
	lx.pos += lx.width
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.start = lx.pos
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
	if lx.width > 0 && lx.buf[lx.pos] == '\n' {
		lx.line--
	}
}

// peek returns but does not consume the next rune in the input.
func (lx *lexer) peek() rune {
	r := lx.next()
	lx.backup()
	return r
}

// errorf emits an error and skips to the end of the current statement.
func (lx *lexer) errorf(format string, values ...interface{}) stateFn {
	lx.items <- item{
		itemError,
		fmt.Sprintf(format, values...),
		lx.line,
	}
	return lexRecover
}

func lexStatement(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		return lexSkip(lx, lexStatement)
	}

	switch r {
	case descStart:
		lx.emit(itemDescendentsStart)
	case descEnd:
		lx.emit(itemDescendentsEnd)
	case descDelimiter:
		lx.emit(itemDelimiter)
	case terminal:
		lx.emit(itemTerminal)
	case lengthStart:
		lx.ignore()
		return lexLengthStart
	case confStart:
		lx.ignore()
		return lexConfidence
	case quoteSingle, quoteDouble:
		lx.ignore()
		return lexQuoted(r)
	case confEnd:
		return lx.errorf("Found '%c' without a matching '%c'.", confEnd, confStart)
	case eof:
		if lx.tail != nil {
			return lx.errorf("%s", lx.tail)
		}
		lx.emit(itemEOF)
		return nil
	default:
		lx.backup()
		return lexLabel
	}
	return lexStatement
}

// lexLabel reads an unquoted label. Blanks inside the label are kept, blanks
// at its end are not.
func lexLabel(lx *lexer) stateFn {
	for {
		r := lx.next()
		if isLabelEnd(r) {
			lx.backup()
			break
		} else if strings.ContainsRune(unquoteBanned, r) {
			return lx.errorf("Found '%c' in an unquoted label, which may not "+
				"contain the following characters: '%s'.", r, unquoteBanned)
		}
	}
	lx.emitValue(itemLabel, strings.TrimRight(lx.current(), " \t"))
	return lexStatement
}

// lexQuoted reads a label delimited by `delim`. A doubled delimiter stands
// for one literal delimiter.
func lexQuoted(delim rune) stateFn {
	return func(lx *lexer) stateFn {
		label := new(strings.Builder)
		for {
			r := lx.next()
			if r == eof {
				return lx.errorf("Unterminated quoted label starting with %c.",
					delim)
			} else if r == delim {
				if lx.peek() != delim {
					lx.emitValue(itemLabel, label.String())
					return lexStatement
				}
				lx.next()
			}
			label.WriteRune(r)
		}
	}
}

func lexLengthStart(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		return lexSkip(lx, lexLengthStart)
	}
	lx.backup()
	return lexLength
}

// lexLength reads the text of a branch length. Whether it is a number is
// up to the parser.
func lexLength(lx *lexer) stateFn {
	for {
		r := lx.next()
		if isLabelEnd(r) || isBlank(r) || r == quoteSingle || r == quoteDouble {
			lx.backup()
			break
		}
	}
	if lx.pos == lx.start {
		return lx.errorf("Expected a branch length after '%c'.", lengthStart)
	} else if !isDecimal(lx.current()) {
		return lx.errorf("Expected a decimal branch length, but got '%s' "+
			"instead.", lx.current())
	}
	lx.emit(itemLength)
	return lexStatement
}

func lexConfidence(lx *lexer) stateFn {
	for {
		r := lx.next()
		if r == eof {
			return lx.errorf("Expected '%c' after a confidence value.", confEnd)
		} else if r == confEnd {
			break
		}
	}
	val := strings.TrimSpace(strings.TrimSuffix(lx.current(), string(confEnd)))
	if !isDecimal(val) {
		return lx.errorf("Expected a decimal confidence value, but got '%s' "+
			"instead.", val)
	}
	lx.emitValue(itemConfidence, val)
	return lexStatement
}

// lexRecover drops the rest of a statement that failed to lex, so that
// reading may continue with the next one.
func lexRecover(lx *lexer) stateFn {
	for {
		switch lx.next() {
		case terminal:
			lx.emitValue(itemTerminal, string(terminal))
			return lexStatement
		case eof:
			lx.ignore()
			lx.emit(itemEOF)
			return nil
		}
	}
}

// lexSkip ignores all slurped input and moves on to the next state.
func lexSkip(lx *lexer, nextState stateFn) stateFn {
	return func(lx *lexer) stateFn {
		lx.ignore()
		return nextState
	}
}

func isLabelEnd(r rune) bool {
	switch r {
	case descDelimiter, descStart, descEnd, terminal, lengthStart, confStart,
		eof:
		return true
	}
	return isNL(r)
}

// isDecimal reports whether s is a signed decimal number with an optional
// exponent, such as "-1.5", ".25" or "2.5e-1".
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		for i++; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for ; i < len(s) && isDigit(s[i]); i++ {
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isBlank(r rune) bool {
	return r == '\t' || r == ' '
}

func isNL(r rune) bool {
	return r == '\n' || r == '\r'
}

func (itype itemType) String() string {
	switch itype {
	case itemError:
		return "Error"
	case itemEOF:
		return "EOF"
	case itemTerminal:
		return "Terminal"
	case itemDescendentsStart:
		return "Descendents (start)"
	case itemDescendentsEnd:
		return "Descendents (end)"
	case itemDelimiter:
		return "Delimiter"
	case itemLabel:
		return "Label"
	case itemLength:
		return "Branch length"
	case itemConfidence:
		return "Confidence"
	}
	panic(fmt.Sprintf("BUG: Unknown type '%d'.", int(itype)))
}

func (item item) String() string {
	return fmt.Sprintf("(%s, %s)", item.typ.String(), item.val)
}
