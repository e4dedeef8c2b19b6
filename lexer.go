// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

package jevent

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

// lexState is the primary state of the scanning DFA.
type lexState byte

const (
	lexIdle   lexState = iota // between tokens
	lexNumber                 // inside a numeric literal
	lexString                 // inside a string literal
)

// numState tracks progress inside a numeric literal. The states split into
// two groups: incomplete states, where end of input is an error, and
// complete states, where end of input flushes the buffered token.
type numState byte

const (
	numNegStart      numState = iota // after "-", no digits yet
	numZeroStart                     // after a leading zero
	numDigits                        // integer digits, no leading zero
	numFracStart                     // after ".", no fraction digits yet
	numFrac                          // fraction digits
	numExpStart                      // after "e", no sign or digits yet
	numExpMinusStart                 // after "e-", no digits yet
	numExpDigits                     // exponent digits
	numExpMinusDigits                // exponent digits after "e-"
)

// strState tracks progress inside a string literal.
type strState byte

const (
	strBody    strState = iota // ordinary characters
	strEscape                  // after a backslash
	strUnicode                 // inside the four hex digits of "\uXXXX"
)

// A Lexer reads lexical tokens from a character stream. Each call to Next
// advances the lexer to the next token, or reports an error. A Lexer makes
// a single forward pass over its input and is not restartable; once an
// error has been reported the stream is exhausted.
type Lexer struct {
	r   *bufio.Reader
	tok Token
	err error
	pos Pos

	// One character may be pushed back when the lexer over-reads while
	// settling a token boundary (for example, the character after "0" that
	// decides between int-value and float-value). The slot is consulted
	// before the source on every read and never holds more than one
	// character.
	unget    rune
	hasUnget bool

	state lexState
	nsub  numState
	ssub  strState
	buf   bytes.Buffer

	hex  [4]byte // pending "\uXXXX" digits
	nhex int
}

// NewLexer constructs a lexer that consumes input from r.
func NewLexer(r io.Reader) *Lexer {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Lexer{r: br}
}

// Next advances l to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF. Any other error is either
// a *LexError or an error from the underlying reader.
func (l *Lexer) Next() error {
	if l.err != nil {
		return l.err
	}
	l.tok = Token{}

	for {
		ch, err := l.read()
		if err == io.EOF {
			return l.flushEOF()
		} else if err != nil {
			return l.setErr(err)
		}

		var done bool
		switch l.state {
		case lexNumber:
			done, err = l.stepNumber(ch)
		case lexString:
			done, err = l.stepString(ch)
		default:
			done, err = l.stepIdle(ch)
		}
		if err != nil {
			return err
		} else if done {
			return nil
		}
	}
}

// Token returns the current token. It is valid until the next call of Next.
func (l *Lexer) Token() Token { return l.tok }

// Err returns the last error reported by Next.
func (l *Lexer) Err() error { return l.err }

// Pos reports the current position of the lexer in its input. The position
// advances as characters are consumed, so after Next it points just past
// the current token.
func (l *Lexer) Pos() Pos { return l.pos }

// stepIdle consumes one character between tokens.
func (l *Lexer) stepIdle(ch rune) (bool, error) {
	switch {
	case isSpace(ch):
		return false, nil

	case ch == 'f':
		return l.constant("alse", Bool, "false")
	case ch == 't':
		return l.constant("rue", Bool, "true")
	case ch == 'n':
		return l.constant("ull", Null, "null")

	case ch == '{':
		return l.emit(BeginObject, "")
	case ch == '}':
		return l.emit(EndObject, "")
	case ch == '[':
		return l.emit(BeginArray, "")
	case ch == ']':
		return l.emit(EndArray, "")
	case ch == ':':
		return l.emit(NameSep, "")
	case ch == ',':
		return l.emit(ValueSep, "")

	case ch == '-':
		l.startNumber(numNegStart, ch)
	case ch == '0':
		l.startNumber(numZeroStart, ch)
	case isDigit(ch):
		l.startNumber(numDigits, ch)

	case ch == '"':
		l.state, l.ssub = lexString, strBody
		l.buf.Reset()

	default:
		return false, l.failf("Unexpected char %q", ch)
	}
	return false, nil
}

func (l *Lexer) startNumber(sub numState, first rune) {
	l.state, l.nsub = lexNumber, sub
	l.buf.Reset()
	l.buf.WriteRune(first)
}

// constant matches the fixed remainder of one of the keywords false, true
// or null, reading the whole suffix in one step.
func (l *Lexer) constant(rest string, kind Kind, name string) (bool, error) {
	got := make([]byte, 0, len(rest))
	for range len(rest) {
		ch, err := l.read()
		if err == io.EOF {
			return false, l.failf("Expected `%s`", name)
		} else if err != nil {
			return false, l.setErr(err)
		}
		got = utf8.AppendRune(got, ch)
	}
	if !mem.B(got).Equal(mem.S(rest)) {
		return false, l.failf("Expected `%s`", name)
	}
	return l.emit(kind, name)
}

// stepNumber consumes one character of a numeric literal.
func (l *Lexer) stepNumber(ch rune) (bool, error) {
	switch l.nsub {
	case numNegStart:
		switch {
		case ch == '0':
			l.nsub = numZeroStart
			l.buf.WriteByte('0')
		case isDigit(ch):
			l.nsub = numDigits
			l.buf.WriteRune(ch)
		default:
			return false, l.failf("Expected digit")
		}

	case numZeroStart, numDigits:
		switch {
		case l.nsub == numDigits && isDigit(ch):
			l.buf.WriteRune(ch)
		case ch == '.':
			l.nsub = numFracStart
			l.buf.WriteByte('.')
		case ch == 'e' || ch == 'E':
			l.nsub = numExpStart
			l.buf.WriteByte('e')
		default:
			return l.finishNumber(Int, ch)
		}

	case numFracStart:
		if !isDigit(ch) {
			return false, l.failf("Missing decimals")
		}
		l.nsub = numFrac
		l.buf.WriteRune(ch)

	case numFrac:
		switch {
		case isDigit(ch):
			l.buf.WriteRune(ch)
		case ch == 'e' || ch == 'E':
			l.nsub = numExpStart
			l.buf.WriteByte('e')
		default:
			return l.finishNumber(Float, ch)
		}

	case numExpStart:
		switch {
		case ch == '-':
			l.nsub = numExpMinusStart
			l.buf.WriteByte('-')
		case isDigit(ch):
			l.nsub = numExpDigits
			l.buf.WriteRune(ch)
		default:
			return false, l.failf("Missing exp")
		}

	case numExpMinusStart:
		if !isDigit(ch) {
			return false, l.failf("Missing exp")
		}
		l.nsub = numExpMinusDigits
		l.buf.WriteRune(ch)

	case numExpDigits, numExpMinusDigits:
		if !isDigit(ch) {
			return l.finishNumber(Float, ch)
		}
		l.buf.WriteRune(ch)
	}
	return false, nil
}

// finishNumber completes the buffered number and pushes back the character
// that ended it, to be re-consumed on the next step.
func (l *Lexer) finishNumber(kind Kind, next rune) (bool, error) {
	l.unget, l.hasUnget = next, true
	return l.emit(kind, l.numberText())
}

// numberText is the literal text of the buffered number. A bare zero,
// signed or not, is emitted in its canonical form.
func (l *Lexer) numberText() string {
	if l.nsub == numZeroStart {
		return "0"
	}
	return l.buf.String()
}

// stepString consumes one character of a string literal.
func (l *Lexer) stepString(ch rune) (bool, error) {
	switch l.ssub {
	case strEscape:
		switch ch {
		case '"', '\\':
			l.buf.WriteRune(ch)
		case 'b':
			l.buf.WriteByte('\b')
		case 'f':
			l.buf.WriteByte('\f')
		case 'n':
			l.buf.WriteByte('\n')
		case 'r':
			l.buf.WriteByte('\r')
		case 't':
			l.buf.WriteByte('\t')
		case 'u':
			l.ssub = strUnicode
			l.nhex = 0
			return false, nil
		default:
			return false, l.failf("Unknown escaped char %q", ch)
		}
		l.ssub = strBody

	case strUnicode:
		if !isHexDigit(ch) {
			return false, l.failf("Expected hex digit")
		}
		l.hex[l.nhex] = byte(ch)
		l.nhex++
		if l.nhex == 4 {
			// Each escape is decoded on its own; a surrogate half is not
			// combined with its partner and degrades to the replacement rune.
			l.buf.WriteRune(hex4(l.hex))
			l.ssub = strBody
		}

	default: // strBody
		switch ch {
		case '\\':
			l.ssub = strEscape
		case '"':
			return l.emit(String, l.buf.String())
		default:
			l.buf.WriteRune(ch)
		}
	}
	return false, nil
}

// flushEOF resolves the end of the input. A syntactically complete number
// is flushed as a final token even without a terminating character; any
// other open state is an error.
func (l *Lexer) flushEOF() error {
	switch l.state {
	case lexNumber:
		switch l.nsub {
		case numNegStart:
			return l.failf("Missing digits")
		case numFracStart:
			return l.failf("Missing decimals")
		case numExpStart, numExpMinusStart:
			return l.failf("Missing exp")
		case numZeroStart, numDigits:
			_, err := l.emit(Int, l.numberText())
			return err
		default: // numFrac, numExpDigits, numExpMinusDigits
			_, err := l.emit(Float, l.numberText())
			return err
		}
	case lexString:
		return l.failf("Missing end quote")
	}
	return l.setErr(io.EOF)
}

func (l *Lexer) emit(kind Kind, text string) (bool, error) {
	l.tok = Token{Kind: kind, Text: text}
	l.state = lexIdle
	return true, nil
}

// read returns the next character, preferring the pushback slot. Position
// accounting applies only to characters read from the source; a pushed
// back character was already counted when first read.
func (l *Lexer) read() (rune, error) {
	if l.hasUnget {
		l.hasUnget = false
		return l.unget, nil
	}
	ch, _, err := l.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if ch == '\n' {
		l.pos.Line++
		l.pos.Column = 0
	} else {
		l.pos.Column++
	}
	return ch, nil
}

func (l *Lexer) setErr(err error) error {
	l.err = err
	return err
}

func (l *Lexer) failf(msg string, args ...any) error {
	return l.setErr(&LexError{Msg: fmt.Sprintf(msg, args...), Pos: l.pos})
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// hex4 decodes four hex digits into a rune.
func hex4(d [4]byte) rune {
	var v rune
	for _, b := range d {
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b-'a') + 10
		default:
			v += rune(b-'A') + 10
		}
	}
	return v
}
