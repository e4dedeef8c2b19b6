// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

// Command json2xml converts a JSON document to a streaming XML rendering
// of its structure.
//
// Usage:
//
//	json2xml [flags] [input.json]
//
// With no input argument the document is read from stdin. Output goes to
// stdout unless -o is given.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"

	"github.com/jevent-go/jevent/xmltree"
)

var (
	rootTag  = pflag.String("root", xmltree.DefaultRootTag, "Name of the enclosing root element")
	listElem = pflag.String("list-element", xmltree.DefaultListElement, "Element name for array entries")
	indent   = pflag.String("indent", xmltree.DefaultIndent, "Indentation per nesting level")
	typed    = pflag.Bool("typed", false, "Annotate value elements with a type attribute")
	noHeader = pflag.Bool("no-header", false, "Do not emit the XML declaration")
	jwcc     = pflag.Bool("jwcc", false, "Accept comments and trailing commas (standardized before parsing)")
	outPath  = pflag.StringP("output", "o", "", "Write output to this file instead of stdout")
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input.json]\n\nOptions:\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	log := zap.Must(zap.NewDevelopment()).Sugar()
	defer log.Sync()

	if pflag.NArg() > 1 {
		pflag.Usage()
		os.Exit(2)
	}

	src, name, err := openInput(pflag.Arg(0))
	if err != nil {
		log.Fatalf("Open input: %v", err)
	}
	defer src.Close()

	if *jwcc {
		src, err = standardize(src)
		if err != nil {
			log.Fatalf("Standardize %s: %v", name, err)
		}
	}

	out := io.WriteCloser(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Create output: %v", err)
		}
		out = f
	}

	r := xmltree.Renderer{
		RootTag:     *rootTag,
		ListElement: *listElem,
		Indent:      *indent,
		Typed:       *typed,
		OmitHeader:  *noHeader,
	}
	if err := r.Render(out, src); err != nil {
		log.Fatalf("Convert %s: %v", name, err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("Close output: %v", err)
	}
}

func openInput(arg string) (io.ReadCloser, string, error) {
	if arg == "" || arg == "-" {
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	f, err := os.Open(arg)
	return f, arg, err
}

// standardize rewrites JWCC input (comments, trailing commas) into plain
// JSON. Unlike the main path this reads the whole input up front.
func standardize(src io.ReadCloser) (io.ReadCloser, error) {
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(std)), nil
}
