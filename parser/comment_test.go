package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseComment(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantMarker rune
		wantText   string
		wantColumn int
	}{
		{"Quotes", `; This is a comment "with quotes"`, ';', `This is a comment "with quotes"`, 1},
		{"Hash", "# hash", '#', "hash", 1},
		{"Percent", "% percent", '%', "percent", 1},
		{"Pipe", "| pipe", '|', "pipe", 1},
		{"Star", "* star", '*', "star", 1},
		{"Indented", "    ; indented", ';', "indented", 5},
		{"Empty", "; ", ';', "", 1},
		{"KeepsExtraSpaces", ";   spaced  ", ';', "  spaced  ", 1},
		{"Unicode", "; café €5", ';', "café €5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment, err := ParseComment(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantMarker, comment.Marker)
			assert.Equal(t, tt.wantText, comment.Text)
			assert.Equal(t, tt.wantColumn, comment.Pos.Column)
		})
	}
}

func TestParseCommentErrors(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantColumn   int
		wantExpected string
	}{
		{"NoMarker", "comment", 1, `one of ";#%|*"`},
		{"NoSpace", ";comment", 2, `" "`},
		{"MarkerOnly", ";", 2, `" "`},
		{"Empty", "", 1, `one of ";#%|*"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseComment(tt.input)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, StructuralMismatch))

			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantColumn, pe.Pos.Column)
			assert.Equal(t, tt.wantExpected, pe.Expected)
		})
	}
}
