// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

// Package jevent implements an incremental, single-pass recognizer for
// JSON (RFC 8259): a character-level lexer and a token-level grammar
// validator that together convert an input stream into a validated,
// ordered sequence of structural and value events.
//
// Both layers are strictly streaming. No tree is ever materialized; tokens
// and events are produced lazily, one at a time, and a given input can be
// traversed at most once.
//
// # Scanning
//
// The Lexer type implements the lexical scanner. Construct a lexer from an
// io.Reader and call its Next method to iterate over the stream. Next
// advances to the next token and returns nil, or reports an error:
//
//	lx := jevent.NewLexer(input)
//	for lx.Next() == nil {
//	   log.Printf("Next token: %v", lx.Token().Kind)
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other
// error indicates an I/O error or a lexical error (*LexError) in the
// input:
//
//	if lx.Err() != io.EOF {
//	   log.Fatalf("Scanning failed: %v", lx.Err())
//	}
//
// String tokens are fully decoded, including escape sequences. Number
// tokens preserve their literal text; no numeric conversion is performed.
//
// # Parsing
//
// The Parser type drives a Lexer and enforces the JSON grammar, re-emitting
// the validated tokens as events. A string in object member-name position
// is re-emitted as an ObjectKey event; name and value separators are
// consumed and produce no event.
//
//	p := jevent.NewParser(input)
//	for p.Next() == nil {
//	   log.Printf("Next event: %v", p.Event())
//	}
//	if p.Err() != io.EOF {
//	   log.Fatalf("Parse failed: %v", p.Err())
//	}
//
// The parser guarantees that begin-object/end-object and begin-array/
// end-array events are correctly balanced, that every ObjectKey is followed
// by exactly one value, and that the input holds exactly one top-level
// value. A violation is reported as a *ParseError carrying the line and
// column where it was detected.
package jevent
