// Package scanner defines Scanner, which turns Lox source text into a sequence of lexical tokens.
package scanner

import (
	"fmt"
	"strconv"

	"github.com/golox-lang/golox/loxerr"
	"github.com/golox-lang/golox/token"
)

const nullChar = 0

// Scanner scans Lox source code into lexical tokens. It never aborts on an invalid character:
// the offending character is reported through the diagnostics sink and scanning continues.
type Scanner struct {
	src   string
	sink  *loxerr.Sink
	start int // byte offset of the first character of the lexeme currently being scanned
	pos   int // byte offset of the character currently being considered
	line  int
}

// New constructs a Scanner which will scan src, reporting errors through sink.
func New(src string, sink *loxerr.Sink) *Scanner {
	return &Scanner{src: src, sink: sink, line: 1}
}

// Scan scans the source into an ordered token sequence terminated by a single EOF token.
func (s *Scanner) Scan() []token.Token {
	var tokens []token.Token
	for {
		tok, ok := s.scanToken()
		if !ok {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

// scanToken scans and returns the next token. ok is false when the character scanned produced no
// token (whitespace, comments, or an invalid character that was reported and skipped).
func (s *Scanner) scanToken() (tok token.Token, ok bool) {
	s.start = s.pos
	c := s.advance()
	switch c {
	case nullChar:
		return s.newToken(token.EOF), true
	case ' ', '\r', '\t':
		return token.Token{}, false
	case '\n':
		s.line++
		return token.Token{}, false
	case '(':
		return s.newToken(token.LeftParen), true
	case ')':
		return s.newToken(token.RightParen), true
	case '{':
		return s.newToken(token.LeftBrace), true
	case '}':
		return s.newToken(token.RightBrace), true
	case ',':
		return s.newToken(token.Comma), true
	case '.':
		return s.newToken(token.Dot), true
	case '-':
		return s.newToken(token.Minus), true
	case '+':
		return s.newToken(token.Plus), true
	case ';':
		return s.newToken(token.Semicolon), true
	case '*':
		return s.newToken(token.Asterisk), true
	case '!':
		return s.newToken(s.ifMatch('=', token.BangEqual, token.Bang)), true
	case '=':
		return s.newToken(s.ifMatch('=', token.Equal, token.Assign)), true
	case '<':
		return s.newToken(s.ifMatch('=', token.LessEqual, token.Less)), true
	case '>':
		return s.newToken(s.ifMatch('=', token.GreaterEqual, token.Greater)), true
	case '/':
		if s.peek() == '/' {
			for s.peek() != '\n' && s.peek() != nullChar {
				s.advance()
			}
			return token.Token{}, false
		}
		return s.newToken(token.Slash), true
	case '"':
		return s.scanString()
	default:
		switch {
		case isDigit(c):
			return s.scanNumber(), true
		case isAlpha(c):
			return s.scanIdent(), true
		default:
			s.sink.Error(s.line, fmt.Sprintf("unexpected character '%c'", c))
			return token.Token{}, false
		}
	}
}

func (s *Scanner) scanString() (token.Token, bool) {
	startLine := s.line
	for s.peek() != '"' && s.peek() != nullChar {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.peek() == nullChar {
		s.sink.Error(startLine, "unterminated string")
		return token.Token{}, false
	}
	s.advance() // the closing "
	literal := s.src[s.start+1 : s.pos-1]
	return token.Token{
		Type:    token.String,
		Lexeme:  s.src[s.start:s.pos],
		Literal: literal,
		Line:    startLine,
	}, true
}

func (s *Scanner) scanNumber() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lexeme := s.src[s.start:s.pos]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		panic(fmt.Sprintf("scanner: parsing number literal %q should never fail: %s", lexeme, err))
	}
	return token.Token{Type: token.Number, Lexeme: lexeme, Literal: value, Line: s.line}
}

func (s *Scanner) scanIdent() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lexeme := s.src[s.start:s.pos]
	return token.Token{Type: token.LookupIdent(lexeme), Lexeme: lexeme, Line: s.line}
}

func (s *Scanner) advance() byte {
	if s.pos >= len(s.src) {
		return nullChar
	}
	c := s.src[s.pos]
	s.pos++
	return c
}

func (s *Scanner) peek() byte {
	if s.pos >= len(s.src) {
		return nullChar
	}
	return s.src[s.pos]
}

func (s *Scanner) peekNext() byte {
	if s.pos+1 >= len(s.src) {
		return nullChar
	}
	return s.src[s.pos+1]
}

// ifMatch consumes the next character and returns matched if it equals want, else returns
// unmatched without consuming anything.
func (s *Scanner) ifMatch(want byte, matched, unmatched token.Type) token.Type {
	if s.peek() == want {
		s.advance()
		return matched
	}
	return unmatched
}

func (s *Scanner) newToken(t token.Type) token.Token {
	return token.Token{Type: t, Lexeme: s.src[s.start:s.pos], Line: s.line}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
