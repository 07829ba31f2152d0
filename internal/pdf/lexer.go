// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"strconv"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokName
	tokString // literal or hex string, already decoded to raw bytes
	tokArray  // produced by the interpreter from [ ... ]
	tokArrayOpen
	tokArrayClose
	tokDictOpen
	tokDictClose
	tokKeyword
)

type token struct {
	kind  tokenKind
	text  string  // name (without slash), keyword, or raw string bytes
	num   float64 // tokNumber
	elems []token // tokArray
}

// lexer splits PDF content streams and CMaps into tokens.
type lexer struct {
	data []byte
	pos  int
}

func newLexer(data []byte) *lexer {
	return &lexer{data: data}
}

func isWhite(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// next returns the next token; ok is false at end of input.
func (l *lexer) next() (token, bool) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, false
	}

	c := l.data[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokString, text: l.literal()}, true
	case c == '<' && l.peek(1) == '<':
		l.pos += 2
		return token{kind: tokDictOpen}, true
	case c == '>' && l.peek(1) == '>':
		l.pos += 2
		return token{kind: tokDictClose}, true
	case c == '<':
		l.pos++
		return token{kind: tokString, text: l.hex()}, true
	case c == '[':
		l.pos++
		return token{kind: tokArrayOpen}, true
	case c == ']':
		l.pos++
		return token{kind: tokArrayClose}, true
	case c == '/':
		l.pos++
		return token{kind: tokName, text: l.regular()}, true
	case c == '{' || c == '}' || c == ')' || c == '>':
		l.pos++
		return token{kind: tokKeyword, text: string(c)}, true
	}

	word := l.regular()
	if n, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: tokNumber, num: n}, true
	}
	return token{kind: tokKeyword, text: word}, true
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.data) {
		return l.data[l.pos+off]
	}
	return 0
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		if !isWhite(c) {
			return
		}
		l.pos++
	}
}

func (l *lexer) regular() string {
	start := l.pos
	for l.pos < len(l.data) && !isWhite(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	if l.pos == start && l.pos < len(l.data) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// literal reads a parenthesised string body; the opening paren is consumed.
func (l *lexer) literal() string {
	var b bytes.Buffer
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
			b.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return b.String()
			}
			b.WriteByte(c)
		case '\\':
			l.escape(&b)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (l *lexer) escape(b *bytes.Buffer) {
	if l.pos >= len(l.data) {
		return
	}
	c := l.data[l.pos]
	l.pos++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case '\r':
		if l.peek(0) == '\n' {
			l.pos++
		}
	case '\n':
	default:
		if c >= '0' && c <= '7' {
			val := int(c - '0')
			for i := 0; i < 2 && l.pos < len(l.data); i++ {
				d := l.data[l.pos]
				if d < '0' || d > '7' {
					break
				}
				val = val*8 + int(d-'0')
				l.pos++
			}
			b.WriteByte(byte(val))
			return
		}
		b.WriteByte(c)
	}
}

// hex reads a hex string body; the opening angle bracket is consumed.
func (l *lexer) hex() string {
	var b bytes.Buffer
	var hi byte
	half := false
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			break
		}
		v, ok := hexVal(c)
		if !ok {
			continue
		}
		if half {
			b.WriteByte(hi<<4 | v)
		} else {
			hi = v
		}
		half = !half
	}
	if half {
		b.WriteByte(hi << 4)
	}
	return b.String()
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
