package decl

import (
	"fmt"
	"strings"
)

type tokenKind uint8

const (
	tokWord   tokenKind = iota // bare word: identifier, number, "any", "50%"
	tokString                  // double-quoted string, unescaped
	tokLBrace                  // {
	tokRBrace                  // }
	tokEnd                     // statement terminator: newline or ';'
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexer is a value type so the parser can snapshot and rewind it.
type lexer struct {
	file string
	src  []byte
	pos  int
	line int
}

func (l *lexer) errorf(format string, args ...any) error {
	return &Error{File: l.file, Line: l.line, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.pos++
			l.line++
			return token{kind: tokEnd, text: "\n", line: l.line - 1}, nil
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
		case c == '/' && l.peek(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peek(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return token{}, err
			}
		case c == ';':
			l.pos++
			return token{kind: tokEnd, text: ";", line: l.line}, nil
		case c == '{':
			l.pos++
			return token{kind: tokLBrace, text: "{", line: l.line}, nil
		case c == '}':
			l.pos++
			return token{kind: tokRBrace, text: "}", line: l.line}, nil
		case c == '"':
			return l.quoted()
		default:
			return l.word(), nil
		}
	}
	return token{kind: tokEOF, line: l.line}, nil
}

func (l *lexer) skipBlockComment() error {
	start := l.line
	l.pos += 2
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peek(1) == '/' {
			l.pos += 2
			return nil
		}
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	return &Error{File: l.file, Line: start, Msg: "unterminated comment"}
}

func (l *lexer) quoted() (token, error) {
	line := l.line
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokString, text: b.String(), line: line}, nil
		case '\n':
			return token{}, l.errorf("unterminated string")
		case '\\':
			esc := l.peek(1)
			switch esc {
			case '"', '\\':
				b.WriteByte(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return token{}, l.errorf("unknown escape sequence \\%c", esc)
			}
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return token{}, l.errorf("unterminated string")
}

func (l *lexer) word() token {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isDelimiter(c) || (c == '/' && (l.peek(1) == '/' || l.peek(1) == '*')) {
			break
		}
		l.pos++
	}
	return token{kind: tokWord, text: string(l.src[start:l.pos]), line: l.line}
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v', ';', '{', '}', '"':
		return true
	}
	return false
}
