// Copyright (C) 2024 The jevent Authors. All Rights Reserved.

package jevent

import "fmt"

// A Pos describes a location in source text. Line is the number of
// completed newlines (0-based); Column is the number of characters
// consumed since the last newline, reset to 0 when one is seen.
//
// Tokens do not carry positions; only errors do.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }
