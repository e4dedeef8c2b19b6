// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

package jevent

// Kind is the type of a lexical token or parser event in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid kind
	BeginObject             // left brace "{"
	EndObject               // right brace "}"
	BeginArray              // left square bracket "["
	EndArray                // right square bracket "]"
	NameSep                 // colon ":"
	ValueSep                // comma ","
	Int                     // number: integer with no fraction or exponent
	Float                   // number with fraction and/or exponent
	String                  // quoted string, decoded
	Bool                    // constant: true or false
	Null                    // constant: null

	// ObjectKey is never produced by the lexer. The parser synthesizes it in
	// place of a string token that sits in object member-name position.
	ObjectKey
)

var kindStr = [...]string{
	Invalid:     "invalid",
	BeginObject: "begin-object",
	EndObject:   "end-object",
	BeginArray:  "begin-array",
	EndArray:    "end-array",
	NameSep:     "name-separator",
	ValueSep:    "value-separator",
	Int:         "int-value",
	Float:       "float-value",
	String:      "string",
	Bool:        "boolean-value",
	Null:        "null-value",
	ObjectKey:   "object-key",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// isScalar reports whether k is a self-contained value kind.
func (k Kind) isScalar() bool {
	switch k {
	case Int, Float, String, Bool, Null:
		return true
	}
	return false
}

// A Token is a classified lexical unit of the input.
//
// For strings, Text is the decoded value with all escape sequences
// resolved. For numbers, Text is the literal text with sign and digits
// preserved verbatim; no numeric conversion is performed. For the
// constants true, false and null, Text is the constant's name. Structural
// tokens carry no text.
type Token struct {
	Kind Kind
	Text string
}

// An Event is the parser's output unit: a validated token re-emitted in
// document order, or an ObjectKey synthesized for a member name.
type Event struct {
	Kind Kind
	Text string
}
