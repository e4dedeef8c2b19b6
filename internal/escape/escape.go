// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

// Package escape handles escaping of text content for XML rendering.
package escape

import "go4.org/mem"

// Text encodes src for inclusion as XML text content. Text with no
// markup-significant characters is returned unchanged; anything else is
// wrapped in a CDATA section. A literal "]]>" inside the text is split
// across two sections so it cannot terminate the enclosing one.
func Text(src mem.RO) []byte {
	if !needsCData(src) {
		return mem.Append(nil, src)
	}
	buf := make([]byte, 0, src.Len()+24)
	buf = append(buf, "<![CDATA["...)
	for src.Len() != 0 {
		i := indexEndMark(src)
		if i < 0 {
			buf = mem.Append(buf, src)
			break
		}
		buf = mem.Append(buf, src.SliceTo(i+2)) // up to and including "]]"
		buf = append(buf, "]]><![CDATA[>"...)
		src = src.SliceFrom(i + 3)
	}
	return append(buf, "]]>"...)
}

func needsCData(src mem.RO) bool {
	for i := 0; i < src.Len(); i++ {
		switch src.At(i) {
		case '<', '>', '&', '"', '\'':
			return true
		}
	}
	return false
}

// indexEndMark returns the index of the first "]]>" in src, or -1.
func indexEndMark(src mem.RO) int {
	for i := 0; i+2 < src.Len(); i++ {
		if src.At(i) == ']' && src.At(i+1) == ']' && src.At(i+2) == '>' {
			return i
		}
	}
	return -1
}
