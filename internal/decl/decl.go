// Package decl parses sprite declaration files into a tree of statements.
//
// A declaration file is a sequence of statements. Each statement is an
// identifier followed by parameters and ends at a newline or ';'. A parameter
// is a bare word, a double-quoted string, or a '{ ... }' block holding a
// nested program. A block closes its statement, and its opening brace may sit
// on the line after the identifier:
//
//	sprite "hero"
//	{
//	    source_file "images/hero.png"
//	    animation 0 { data 0 1 2; fps 8 }
//	}
//
// Comments use // or /* */.
package decl

import "fmt"

// Program is an ordered list of statements.
type Program []*Statement

// Statement is an identifier with its parameters.
type Statement struct {
	Ident  string
	Params []Param
	Line   int
}

// Param is either a word (bare or quoted) or a nested program.
type Param struct {
	word    string
	block   Program
	isBlock bool
	Line    int
}

// NumParams returns the number of parameters of the statement.
func (s *Statement) NumParams() int {
	return len(s.Params)
}

// Param returns the i-th parameter, counting from 1. It returns nil when i is
// out of range.
func (s *Statement) Param(i int) *Param {
	if i < 1 || i > len(s.Params) {
		return nil
	}
	return &s.Params[i-1]
}

// IsProgram reports whether the parameter is a '{ ... }' block.
func (p *Param) IsProgram() bool {
	return p.isBlock
}

// String returns the text of a word parameter, or "" for a block.
func (p *Param) String() string {
	return p.word
}

// Program returns the nested program of a block parameter, or nil for a word.
func (p *Param) Program() Program {
	return p.block
}

// Error is a syntax error with its position in the source.
type Error struct {
	File string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Parse parses src, naming it file in error messages.
func Parse(file string, src []byte) (Program, error) {
	p := &parser{lex: lexer{file: file, src: src, line: 1}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.program(false)
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &Error{File: p.lex.file, Line: p.tok.line, Msg: fmt.Sprintf(format, args...)}
}

// program parses statements until end of input, or until the closing brace
// when nested. The closing brace is left as the current token.
func (p *parser) program(nested bool) (Program, error) {
	var prog Program
	for {
		switch p.tok.kind {
		case tokEnd:
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		case tokEOF:
			if nested {
				return nil, p.errorf("unexpected end of file, missing '}'")
			}
			return prog, nil
		case tokRBrace:
			if !nested {
				return nil, p.errorf("unexpected '}'")
			}
			return prog, nil
		case tokLBrace:
			return nil, p.errorf("unexpected '{', expected an identifier")
		case tokString:
			return nil, p.errorf("unexpected string %q, expected an identifier", p.tok.text)
		}

		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog = append(prog, st)
	}
}

func (p *parser) statement() (*Statement, error) {
	st := &Statement{Ident: p.tok.text, Line: p.tok.line}
	if err := p.advance(); err != nil {
		return nil, err
	}

	for {
		switch p.tok.kind {
		case tokWord, tokString:
			st.Params = append(st.Params, Param{word: p.tok.text, Line: p.tok.line})
			if err := p.advance(); err != nil {
				return nil, err
			}

		case tokLBrace:
			line := p.tok.line
			if err := p.advance(); err != nil {
				return nil, err
			}
			body, err := p.program(true)
			if err != nil {
				return nil, err
			}
			if err := p.advance(); err != nil { // consume '}'
				return nil, err
			}
			st.Params = append(st.Params, Param{block: body, isBlock: true, Line: line})
			return st, nil

		case tokEnd:
			if p.tok.text != "\n" {
				return st, nil
			}
			brace, err := p.braceFollows()
			if err != nil {
				return nil, err
			}
			if !brace {
				return st, nil
			}

		default:
			return st, nil
		}
	}
}

// braceFollows reports whether the next token after a run of newlines is an
// opening brace. If it is, the brace becomes the current token; otherwise the
// lexer is rewound and the current token is unchanged.
func (p *parser) braceFollows() (bool, error) {
	saved := p.lex
	for {
		tok, err := p.lex.next()
		if err != nil {
			return false, err
		}
		if tok.kind == tokEnd && tok.text == "\n" {
			continue
		}
		if tok.kind == tokLBrace {
			p.tok = tok
			return true, nil
		}
		p.lex = saved
		return false, nil
	}
}
