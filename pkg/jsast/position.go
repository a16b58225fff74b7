package jsast

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Position is a 1-based line/column pair for reporting.
type Position struct {
	Line   uint
	Column uint
}

// StartPosition returns the 1-based start position of node.
func StartPosition(node *ts.Node) Position {
	p := node.StartPosition()
	return Position{Line: uint(p.Row) + 1, Column: uint(p.Column) + 1}
}

// EndPosition returns the 1-based end position of node.
func EndPosition(node *ts.Node) Position {
	p := node.EndPosition()
	return Position{Line: uint(p.Row) + 1, Column: uint(p.Column) + 1}
}

// Covers reports whether outer's byte range fully contains inner's.
func Covers(outer, inner *ts.Node) bool {
	if outer == nil || inner == nil {
		return false
	}
	return uint32(outer.StartByte()) <= uint32(inner.StartByte()) &&
		uint32(outer.EndByte()) >= uint32(inner.EndByte())
}
