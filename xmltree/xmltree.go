// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

// Package xmltree renders a validated JSON event stream as an XML
// document. The rendering is mechanical: objects and arrays become nested
// elements, member values render under their key's tag, array slots render
// under a configurable list-element tag, and the whole document is wrapped
// in a configurable root tag.
//
// Rendering is streaming. The renderer consumes one event at a time and
// holds only a stack of open elements, never a document tree.
package xmltree

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/mds/stack"
	"go4.org/mem"

	"github.com/jevent-go/jevent"
	"github.com/jevent-go/jevent/internal/escape"
)

// Header is the default XML declaration emitted before the root element.
const Header = `<?xml version="1.0" encoding="utf-8"?>`

// Default tag and indentation settings.
const (
	DefaultRootTag     = "root"
	DefaultListElement = "list_element"
	DefaultIndent      = "    "
)

// A Renderer carries the settings for converting a JSON document to XML.
// A zero value is ready for use with default settings.
type Renderer struct {
	// Header is the XML declaration written before the root element.
	// If empty, the Header constant is used; see OmitHeader.
	Header string

	// RootTag is the name of the enclosing root element ("root" if empty).
	RootTag string

	// ListElement is the element name used for array slots and for a bare
	// top-level scalar ("list_element" if empty).
	ListElement string

	// Indent is prepended once per nesting level (four spaces if empty).
	Indent string

	// Typed annotates every value element with a type attribute, one of
	// "string", "int", "float", "boolean" or "null".
	Typed bool

	// OmitHeader suppresses the XML declaration.
	OmitHeader bool
}

func (r Renderer) header() string {
	if r.Header == "" {
		return Header
	}
	return r.Header
}

func (r Renderer) rootTag() string {
	if r.RootTag == "" {
		return DefaultRootTag
	}
	return r.RootTag
}

func (r Renderer) listElement() string {
	if r.ListElement == "" {
		return DefaultListElement
	}
	return r.ListElement
}

func (r Renderer) indent() string {
	if r.Indent == "" {
		return DefaultIndent
	}
	return r.Indent
}

// Render parses the JSON document from src and writes its XML rendering to
// w, one line per element. In case of malformed input the error is the
// *jevent.LexError or *jevent.ParseError that ended the parse; output
// already rendered before the failing event may have been written.
func (r Renderer) Render(w io.Writer, src io.Reader) error {
	bw := bufio.NewWriter(w)
	if !r.OmitHeader {
		fmt.Fprintln(bw, r.header())
	}
	fmt.Fprintf(bw, "<%s>\n", r.rootTag())
	if err := r.renderBody(bw, jevent.NewParser(src)); err != nil {
		bw.Flush()
		return err
	}
	fmt.Fprintf(bw, "</%s>\n", r.rootTag())
	return bw.Flush()
}

// RenderString renders the JSON document src to a string with the settings
// from r.
func (r Renderer) RenderString(src string) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, strings.NewReader(src)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Render renders the JSON document from src to w with default settings.
func Render(w io.Writer, src io.Reader) error {
	var r Renderer
	return r.Render(w, src)
}

func (r Renderer) renderBody(bw *bufio.Writer, p *jevent.Parser) error {
	var (
		depth  int
		open   = stack.New[string]() // tags of open container elements
		key    string                // pending member name
		hasKey bool
	)

	// nextTag chooses the tag for the value or container about to render:
	// the pending member key inside an object, the list element otherwise.
	nextTag := func() string {
		if hasKey {
			hasKey = false
			return key
		}
		return r.listElement()
	}

	for {
		if err := p.Next(); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		evt := p.Event()
		switch evt.Kind {
		case jevent.BeginObject, jevent.BeginArray:
			// The outermost container is merged into the root element and
			// opens no tag of its own.
			tag := ""
			if depth > 0 {
				tag = nextTag()
				fmt.Fprintf(bw, "%s<%s>\n", r.prefix(depth), tag)
			}
			open.Push(tag)
			depth++

		case jevent.EndObject, jevent.EndArray:
			tag, _ := open.Pop()
			depth--
			if tag != "" {
				fmt.Fprintf(bw, "%s</%s>\n", r.prefix(depth), tag)
			}

		case jevent.ObjectKey:
			key, hasKey = evt.Text, true

		default:
			d := depth
			if d == 0 {
				d = 1 // bare top-level scalar, still inside the root element
			}
			r.renderValue(bw, evt, nextTag(), d)
		}
	}
}

func (r Renderer) renderValue(bw *bufio.Writer, evt jevent.Event, tag string, depth int) {
	prefix := r.prefix(depth)
	attr := ""
	if r.Typed {
		attr = fmt.Sprintf(" type=%q", typeName(evt.Kind))
	}
	if evt.Kind == jevent.String && evt.Text == "" {
		fmt.Fprintf(bw, "%s<%s%s/>\n", prefix, tag, attr)
		return
	}
	fmt.Fprintf(bw, "%s<%s%s>%s</%s>\n", prefix, tag, attr, escape.Text(mem.S(evt.Text)), tag)
}

func (r Renderer) prefix(depth int) string {
	return strings.Repeat(r.indent(), depth)
}

func typeName(k jevent.Kind) string {
	switch k {
	case jevent.Int:
		return "int"
	case jevent.Float:
		return "float"
	case jevent.Bool:
		return "boolean"
	case jevent.Null:
		return "null"
	default:
		return "string"
	}
}
