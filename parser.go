// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

package jevent

import (
	"fmt"
	"io"

	"github.com/creachadair/mds/stack"
)

// parseState is the state of the grammar validator. The validator is a
// pushdown automaton: entering a nested array or object pushes the state
// to resume once the container closes.
type parseState byte

const (
	pStart               parseState = iota // before the top-level value
	pInArray                               // awaiting an array element
	pInArraySep                            // after an array element
	pInObject                              // awaiting a member key
	pInObjectMember                        // after a member key
	pInObjectMemberValue                   // awaiting a member value
	pInObjectSep                           // after a member value
	pDone                                  // after the top-level value
)

// truncLabel names each non-terminal state for premature end-of-input
// errors.
var truncLabel = [...]string{
	pInArray:             "in array",
	pInArraySep:          "in array after element",
	pInObject:            "in object",
	pInObjectMember:      "in object member",
	pInObjectMemberValue: "in object member value",
	pInObjectSep:         "in object after member",
}

// A Parser validates the token stream of a Lexer against the JSON grammar
// and re-emits it as a sequence of events. Each call to Next advances the
// parser to the next event, or reports an error. Name and value separators
// are consumed by the validator and produce no event; a string token in
// member-name position is re-emitted as an ObjectKey event.
//
// Like the Lexer, a Parser makes a single pass and is not restartable.
type Parser struct {
	lx     *Lexer
	evt    Event
	err    error
	state  parseState
	resume *stack.Stack[parseState]
}

// NewParser constructs a parser that consumes input from r.
func NewParser(r io.Reader) *Parser { return NewParserWithLexer(NewLexer(r)) }

// NewParserWithLexer constructs a parser that consumes tokens from lx.
func NewParserWithLexer(lx *Lexer) *Parser {
	return &Parser{lx: lx, resume: stack.New[parseState]()}
}

// Next advances p to the next event of the input, or reports an error.
// At the end of a fully-parsed input, Next returns io.EOF. A grammar
// violation is reported as a *ParseError; lexical errors from the
// underlying lexer are passed through unchanged.
func (p *Parser) Next() error {
	if p.err != nil {
		return p.err
	}
	p.evt = Event{}

	for {
		if err := p.lx.Next(); err == io.EOF {
			return p.finishEOF()
		} else if err != nil {
			return p.setErr(err)
		}
		emit, err := p.step(p.lx.Token())
		if err != nil {
			return err
		} else if emit {
			return nil
		}
	}
}

// Event returns the current event. It is valid until the next call of Next.
func (p *Parser) Event() Event { return p.evt }

// Err returns the last error reported by Next.
func (p *Parser) Err() error { return p.err }

// Pos reports the position of the underlying lexer.
func (p *Parser) Pos() Pos { return p.lx.Pos() }

// Depth reports the current array/object nesting depth.
func (p *Parser) Depth() int { return p.resume.Len() }

// step applies one token to the automaton. It reports whether the token
// produced an event.
func (p *Parser) step(t Token) (bool, error) {
	switch p.state {
	case pStart:
		switch {
		case t.Kind == BeginArray:
			p.push(pDone, pInArray)
		case t.Kind == BeginObject:
			p.push(pDone, pInObject)
		case t.Kind.isScalar():
			p.state = pDone
		default:
			return false, p.failf("unexpected %s as top-level value", tokLabel(t))
		}
		return p.emit(t)

	case pInArray:
		switch {
		case t.Kind == EndArray:
			p.state = p.pop()
		case t.Kind.isScalar():
			p.state = pInArraySep
		case t.Kind == BeginArray:
			p.push(pInArraySep, pInArray)
		case t.Kind == BeginObject:
			p.push(pInArraySep, pInObject)
		default:
			return false, p.failf("unexpected %s as array element", tokLabel(t))
		}
		return p.emit(t)

	case pInArraySep:
		switch t.Kind {
		case EndArray:
			p.state = p.pop()
			return p.emit(t)
		case ValueSep:
			p.state = pInArray
			return false, nil
		}
		return false, p.failf("expected value-separator, got %s", tokLabel(t))

	case pInObject:
		switch {
		case t.Kind == EndObject:
			p.state = p.pop()
			return p.emit(t)
		case t.Kind == String:
			p.state = pInObjectMember
			p.evt = Event{Kind: ObjectKey, Text: t.Text}
			return true, nil
		}
		return false, p.failf("unexpected %s as object member", tokLabel(t))

	case pInObjectMember:
		if t.Kind != NameSep {
			return false, p.failf("expected name-separator, got %s", tokLabel(t))
		}
		p.state = pInObjectMemberValue
		return false, nil

	case pInObjectMemberValue:
		switch {
		case t.Kind.isScalar():
			p.state = pInObjectSep
		case t.Kind == BeginArray:
			p.push(pInObjectSep, pInArray)
		case t.Kind == BeginObject:
			p.push(pInObjectSep, pInObject)
		default:
			return false, p.failf("unexpected %s as member value", tokLabel(t))
		}
		return p.emit(t)

	case pInObjectSep:
		switch t.Kind {
		case EndObject:
			p.state = p.pop()
			return p.emit(t)
		case ValueSep:
			p.state = pInObject
			return false, nil
		}
		return false, p.failf("expected value-separator, got %s", tokLabel(t))

	default: // pDone
		return false, p.failf("unexpected %s after top-level value", tokLabel(t))
	}
}

// finishEOF resolves the end of the token stream. Any state other than the
// initial and terminal ones means the document was truncated.
func (p *Parser) finishEOF() error {
	if p.state == pStart || p.state == pDone {
		return p.setErr(io.EOF)
	}
	return p.failf("unexpected end of input %s", truncLabel[p.state])
}

func (p *Parser) emit(t Token) (bool, error) {
	p.evt = Event{Kind: t.Kind, Text: t.Text}
	return true, nil
}

// push records where to resume when the container being opened closes.
func (p *Parser) push(resume, next parseState) {
	p.resume.Push(resume)
	p.state = next
}

func (p *Parser) pop() parseState {
	st, ok := p.resume.Pop()
	if !ok {
		// Unreachable: every state that pops was entered by a push.
		return pDone
	}
	return st
}

func (p *Parser) setErr(err error) error {
	p.err = err
	return err
}

// failf reports a grammar violation at the lexer's current position. The
// lexer has already consumed the offending token when the violation is
// detected, so the position points just past it.
func (p *Parser) failf(msg string, args ...any) error {
	return p.setErr(&ParseError{Msg: fmt.Sprintf(msg, args...), Pos: p.lx.Pos()})
}

// tokLabel renders a token for an error message, including its text when
// it carries one.
func tokLabel(t Token) string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
