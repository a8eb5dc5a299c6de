package ast

// CommentMarkers lists the characters that can start a comment line.
const CommentMarkers = ";#%|*"

// Comment represents an annotation line. Comments are recognised by the parser
// but never attached to a transaction or posting.
//
// Example:
//
//	; This is a comment "with quotes"
type Comment struct {
	Pos    Position
	Marker rune   // One of CommentMarkers
	Text   string // Content after the marker and its mandatory space
}
