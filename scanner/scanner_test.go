package scanner_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/golox-lang/golox/loxerr"
	"github.com/golox-lang/golox/scanner"
	"github.com/golox-lang/golox/token"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Token
	}{
		{
			name: "punctuation",
			src:  "(){},.-+;/*",
			want: []token.Token{
				{Type: token.LeftParen, Lexeme: "(", Line: 1},
				{Type: token.RightParen, Lexeme: ")", Line: 1},
				{Type: token.LeftBrace, Lexeme: "{", Line: 1},
				{Type: token.RightBrace, Lexeme: "}", Line: 1},
				{Type: token.Comma, Lexeme: ",", Line: 1},
				{Type: token.Dot, Lexeme: ".", Line: 1},
				{Type: token.Minus, Lexeme: "-", Line: 1},
				{Type: token.Plus, Lexeme: "+", Line: 1},
				{Type: token.Semicolon, Lexeme: ";", Line: 1},
				{Type: token.Slash, Lexeme: "/", Line: 1},
				{Type: token.Asterisk, Lexeme: "*", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "one and two char operators",
			src:  "! != = == < <= > >=",
			want: []token.Token{
				{Type: token.Bang, Lexeme: "!", Line: 1},
				{Type: token.BangEqual, Lexeme: "!=", Line: 1},
				{Type: token.Assign, Lexeme: "=", Line: 1},
				{Type: token.Equal, Lexeme: "==", Line: 1},
				{Type: token.Less, Lexeme: "<", Line: 1},
				{Type: token.LessEqual, Lexeme: "<=", Line: 1},
				{Type: token.Greater, Lexeme: ">", Line: 1},
				{Type: token.GreaterEqual, Lexeme: ">=", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "line comment ignored",
			src:  "1 // this is a comment\n2",
			want: []token.Token{
				{Type: token.Number, Lexeme: "1", Literal: 1.0, Line: 1},
				{Type: token.Number, Lexeme: "2", Literal: 2.0, Line: 2},
				{Type: token.EOF, Line: 2},
			},
		},
		{
			name: "string literal",
			src:  `"hello world"`,
			want: []token.Token{
				{Type: token.String, Lexeme: `"hello world"`, Literal: "hello world", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "multiline string literal",
			src:  "\"foo\nbar\"",
			want: []token.Token{
				{Type: token.String, Lexeme: "\"foo\nbar\"", Literal: "foo\nbar", Line: 1},
				{Type: token.EOF, Line: 2},
			},
		},
		{
			name: "number literals",
			src:  "123 3.14",
			want: []token.Token{
				{Type: token.Number, Lexeme: "123", Literal: 123.0, Line: 1},
				{Type: token.Number, Lexeme: "3.14", Literal: 3.14, Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "identifiers and keywords",
			src:  "foo bar123 class",
			want: []token.Token{
				{Type: token.Ident, Lexeme: "foo", Line: 1},
				{Type: token.Ident, Lexeme: "bar123", Line: 1},
				{Type: token.Class, Lexeme: "class", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "whitespace tracks lines",
			src:  "1\n\n2",
			want: []token.Token{
				{Type: token.Number, Lexeme: "1", Literal: 1.0, Line: 1},
				{Type: token.Number, Lexeme: "2", Literal: 2.0, Line: 3},
				{Type: token.EOF, Line: 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := loxerr.New(&bytes.Buffer{})
			got := scanner.New(tt.src, sink).Scan()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
			}
			if sink.HadParseError() {
				t.Error("unexpected scan error reported")
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unexpected character", "@"},
		{"unterminated string", `"unterminated`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := loxerr.New(&buf)
			scanner.New(tt.src, sink).Scan()
			if !sink.HadParseError() {
				t.Error("expected a scan error to be reported, got none")
			}
			if buf.Len() == 0 {
				t.Error("expected a diagnostic to be written")
			}
		})
	}
}
