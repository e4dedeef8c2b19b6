// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

package jevent_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/jevent-go/jevent"
)

// tok is shorthand for constructing expected tokens in test tables.
func tok(k jevent.Kind, text string) jevent.Token {
	return jevent.Token{Kind: k, Text: text}
}

// scanAll collects the tokens of input until end of input or an error.
func scanAll(input string) ([]jevent.Token, error) {
	lx := jevent.NewLexer(strings.NewReader(input))
	var toks []jevent.Token
	for {
		err := lx.Next()
		if err == io.EOF {
			return toks, nil
		} else if err != nil {
			return toks, err
		}
		toks = append(toks, lx.Token())
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input string
		want  []jevent.Token
	}{
		// Empty inputs
		{"", nil},
		{"   ", nil},
		{"\t  \r\n \t \n", nil},

		// Constants
		{"true false null", []jevent.Token{
			tok(jevent.Bool, "true"), tok(jevent.Bool, "false"), tok(jevent.Null, "null"),
		}},

		// Punctuation
		{"{ [ ] } , :", []jevent.Token{
			tok(jevent.BeginObject, ""), tok(jevent.BeginArray, ""), tok(jevent.EndArray, ""),
			tok(jevent.EndObject, ""), tok(jevent.ValueSep, ""), tok(jevent.NameSep, ""),
		}},

		// Strings are decoded, not merely recognized.
		{`"abc"`, []jevent.Token{tok(jevent.String, "abc")}},
		{`"a b c"`, []jevent.Token{tok(jevent.String, "a b c")}},
		{`"" "x"`, []jevent.Token{tok(jevent.String, ""), tok(jevent.String, "x")}},
		{`"\t\r\n\b\f"`, []jevent.Token{tok(jevent.String, "\t\r\n\b\f")}},
		{`"a\"b\\c"`, []jevent.Token{tok(jevent.String, `a"b\c`)}},
		{`"abc"`, []jevent.Token{tok(jevent.String, "abc")}},
		{`"Ǽ"`, []jevent.Token{tok(jevent.String, "Ǽ")}},
		{"\"a\nb\"", []jevent.Token{tok(jevent.String, "a\nb")}},

		// Unicode escapes are decoded in place.
		{`"\u0062"`, []jevent.Token{tok(jevent.String, "b")}},
		{`"a\u0062c"`, []jevent.Token{tok(jevent.String, "abc")}},

		// Each \uXXXX escape decodes on its own; surrogate halves are not
		// combined and degrade to the replacement rune.
		{`"\uD83D\uDE00"`, []jevent.Token{tok(jevent.String, "\ufffd\ufffd")}},

		// Numbers
		{"0", []jevent.Token{tok(jevent.Int, "0")}},
		{"-0", []jevent.Token{tok(jevent.Int, "0")}},
		{"10", []jevent.Token{tok(jevent.Int, "10")}},
		{"-151", []jevent.Token{tok(jevent.Int, "-151")}},
		{"2.5", []jevent.Token{tok(jevent.Float, "2.5")}},
		{"-0.7e10", []jevent.Token{tok(jevent.Float, "-0.7e10")}},
		{"2.5E10", []jevent.Token{tok(jevent.Float, "2.5e10")}},
		{"0e5", []jevent.Token{tok(jevent.Float, "0e5")}},
		{"1e-9", []jevent.Token{tok(jevent.Float, "1e-9")}},

		// Adjacent numbers are legal at the lexer level: a leading zero ends
		// the first token and the next digit starts another.
		{"01", []jevent.Token{tok(jevent.Int, "0"), tok(jevent.Int, "1")}},

		// A syntactically complete number is flushed at end of input.
		{`{"a": 10`, []jevent.Token{
			tok(jevent.BeginObject, ""), tok(jevent.String, "a"), tok(jevent.NameSep, ""),
			tok(jevent.Int, "10"),
		}},

		// Mixed input
		{`{"a": [-1, 2.0, {"b": -0.7e10, "column":["x", "y"]}]}`, []jevent.Token{
			tok(jevent.BeginObject, ""),
			tok(jevent.String, "a"), tok(jevent.NameSep, ""),
			tok(jevent.BeginArray, ""),
			tok(jevent.Int, "-1"), tok(jevent.ValueSep, ""),
			tok(jevent.Float, "2.0"), tok(jevent.ValueSep, ""),
			tok(jevent.BeginObject, ""),
			tok(jevent.String, "b"), tok(jevent.NameSep, ""),
			tok(jevent.Float, "-0.7e10"), tok(jevent.ValueSep, ""),
			tok(jevent.String, "column"), tok(jevent.NameSep, ""),
			tok(jevent.BeginArray, ""),
			tok(jevent.String, "x"), tok(jevent.ValueSep, ""),
			tok(jevent.String, "y"),
			tok(jevent.EndArray, ""),
			tok(jevent.EndObject, ""),
			tok(jevent.EndArray, ""),
			tok(jevent.EndObject, ""),
		}},
	}

	for _, test := range tests {
		got, err := scanAll(test.input)
		if err != nil {
			t.Errorf("Input: %#q\nNext failed: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string // full display form of the error
	}{
		// Malformed or truncated numbers
		{"0.", "lex error: Missing decimals at 0:2"},
		{"0.x", "lex error: Missing decimals at 0:3"},
		{"0.1e", "lex error: Missing exp at 0:4"},
		{"1e+5", "lex error: Missing exp at 0:3"},
		{"1e-", "lex error: Missing exp at 0:3"},
		{"-", "lex error: Missing digits at 0:1"},
		{"-x", "lex error: Expected digit at 0:2"},

		// Unterminated strings and bad escapes
		{`"foo`, "lex error: Missing end quote at 0:4"},
		{`"`, "lex error: Missing end quote at 0:1"},
		{`"a\`, "lex error: Missing end quote at 0:3"},
		{`"\x"`, `lex error: Unknown escaped char 'x' at 0:3`},
		{`"\/"`, `lex error: Unknown escaped char '/' at 0:3`},
		{`"\u00z"`, "lex error: Expected hex digit at 0:6"},
		{`"\u12`, "lex error: Missing end quote at 0:5"},

		// Bad constants and stray characters
		{"Wrong", `lex error: Unexpected char 'W' at 0:1`},
		{"fals!", "lex error: Expected `false` at 0:5"},
		{"tru", "lex error: Expected `true` at 0:3"},
		{"nil", "lex error: Expected `null` at 0:3"},

		// Positions are line-aware: line counts completed newlines, column
		// resets after each one.
		{"[\n1,\nx]", `lex error: Unexpected char 'x' at 2:1`},
	}

	for _, test := range tests {
		_, err := scanAll(test.input)
		if err == nil {
			t.Errorf("Input: %#q\nGot no error, want %q", test.input, test.want)
			continue
		}
		lerr, ok := err.(*jevent.LexError)
		if !ok {
			t.Errorf("Input: %#q\nGot error %v of type %T, want *LexError", test.input, err, err)
			continue
		}
		if got := lerr.Error(); got != test.want {
			t.Errorf("Input: %#q\nGot:  %s\nWant: %s", test.input, got, test.want)
		}
	}
}

func TestLexerErrorsAreSticky(t *testing.T) {
	lx := jevent.NewLexer(strings.NewReader(`[true, nope]`))
	var first error
	for {
		if err := lx.Next(); err != nil {
			first = err
			break
		}
	}
	if first == nil {
		t.Fatal("Expected a lexical error, got none")
	}
	if again := lx.Next(); again != first {
		t.Errorf("Next after error: got %v, want %v", again, first)
	}
	if lx.Err() != first {
		t.Errorf("Err: got %v, want %v", lx.Err(), first)
	}
}

func TestLexerReadErrorPassthrough(t *testing.T) {
	want := errors.New("pipe burst")

	// The reader fails partway through a keyword. The failure must come back
	// as-is, not dressed up as a lexical error.
	lx := jevent.NewLexer(io.MultiReader(strings.NewReader(`[tr`), iotest.ErrReader(want)))
	var got error
	for {
		if got = lx.Next(); got != nil {
			break
		}
	}
	if got != want {
		t.Errorf("Next: got %v, want %v", got, want)
	}
	var lexErr *jevent.LexError
	if errors.As(got, &lexErr) {
		t.Errorf("Next reported a lexical error for a reader failure: %v", lexErr)
	}
}

func TestLexerIdempotence(t *testing.T) {
	const input = `{"a": [-1, 2.0, ""], "b": {"c": null, "d": [true, false]}}`

	first, err1 := scanAll(input)
	second, err2 := scanAll(input)
	if err1 != nil || err2 != nil {
		t.Fatalf("Next failed: %v / %v", err1, err2)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Two passes over the same input disagree: (-first, +second)\n%s", diff)
	}
}
