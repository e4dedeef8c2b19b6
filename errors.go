// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

package jevent

import "fmt"

// A LexError reports a malformed token: a bad constant, a bad escape, a
// malformed number, or an unterminated string or number. Pos is the
// position of the offending character.
//
// A LexError is terminal for its input stream; the lexer does not resume
// after reporting one.
type LexError struct {
	Msg string
	Pos Pos
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error: %s at %s", e.Msg, e.Pos)
}

// A ParseError reports a grammar violation: a token that is illegal in the
// current context, a missing separator, a premature end of input, or
// trailing tokens after a complete value.
//
// Pos is sampled from the lexer after the offending token has already been
// consumed, so the reported coordinates point just past the token.
type ParseError struct {
	Msg string
	Pos Pos
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s at %s", e.Msg, e.Pos)
}
