// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/jevent-go/jevent/internal/escape"
	"go4.org/mem"
)

func TestText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"1.5e-3", "1.5e-3"},

		// Markup-significant characters force a CDATA section.
		{"a < b", "<![CDATA[a < b]]>"},
		{"x>y", "<![CDATA[x>y]]>"},
		{"tom & jerry", "<![CDATA[tom & jerry]]>"},
		{`say "hi"`, `<![CDATA[say "hi"]]>`},
		{"it's", "<![CDATA[it's]]>"},

		// A literal "]]>" is split across two sections.
		{"a]]>b", "<![CDATA[a]]]]><![CDATA[>b]]>"},
		{"<]]>", "<![CDATA[<]]]]><![CDATA[>]]>"},
	}
	for _, test := range tests {
		got := string(escape.Text(mem.S(test.input)))
		if got != test.want {
			t.Errorf("Text(%#q):\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}
