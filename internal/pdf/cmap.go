// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"strings"
	"unicode/utf16"
)

// cmap maps character codes of a font to Unicode text, as described by a
// font's ToUnicode stream.
type cmap struct {
	width int // bytes per character code
	m     map[uint32]string
}

// parseCMap reads the codespace, bfchar and bfrange sections of a ToUnicode
// CMap. Unsupported constructs are ignored.
func parseCMap(data []byte) *cmap {
	cm := &cmap{width: 1, m: make(map[uint32]string)}
	lx := newLexer(data)

	var operands []token
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		if tok.kind != tokKeyword {
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "endcodespacerange":
			if len(operands) > 0 && operands[0].kind == tokString && len(operands[0].text) > 0 {
				cm.width = len(operands[0].text)
			}
		case "endbfchar":
			for i := 0; i+1 < len(operands); i += 2 {
				src, dst := operands[i], operands[i+1]
				if src.kind == tokString && dst.kind == tokString {
					cm.m[code(src.text)] = utf16BE(dst.text)
				}
			}
		case "endbfrange":
			cm.addRanges(operands)
		}
		operands = operands[:0]
	}
	return cm
}

// addRanges handles bfrange entries. The destination is either a base
// string incremented per code or an array with one string per code. Arrays
// arrive as separate tokens, so they are regrouped here.
func (cm *cmap) addRanges(operands []token) {
	ops := groupArrays(operands)
	for i := 0; i+2 < len(ops); i += 3 {
		lo, hi, dst := ops[i], ops[i+1], ops[i+2]
		if lo.kind != tokString || hi.kind != tokString {
			continue
		}
		start, end := code(lo.text), code(hi.text)
		if end < start || end-start > 0xFFFF {
			continue
		}
		switch dst.kind {
		case tokString:
			base := []rune(utf16BE(dst.text))
			if len(base) == 0 {
				continue
			}
			for c := start; c <= end; c++ {
				r := append([]rune(nil), base...)
				r[len(r)-1] += rune(c - start)
				cm.m[c] = string(r)
			}
		case tokArray:
			for j, el := range dst.elems {
				if el.kind == tokString && start+uint32(j) <= end {
					cm.m[start+uint32(j)] = utf16BE(el.text)
				}
			}
		}
	}
}

// groupArrays folds [ ... ] token runs into single tokArray tokens.
func groupArrays(tokens []token) []token {
	var out []token
	var stack [][]token
	for _, t := range tokens {
		switch t.kind {
		case tokArrayOpen:
			stack = append(stack, nil)
		case tokArrayClose:
			if len(stack) == 0 {
				continue
			}
			arr := token{kind: tokArray, elems: stack[len(stack)-1]}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1] = append(stack[len(stack)-1], arr)
			} else {
				out = append(out, arr)
			}
		default:
			if len(stack) > 0 {
				stack[len(stack)-1] = append(stack[len(stack)-1], t)
			} else {
				out = append(out, t)
			}
		}
	}
	return out
}

func code(b string) uint32 {
	var v uint32
	for i := 0; i < len(b); i++ {
		v = v<<8 | uint32(b[i])
	}
	return v
}

func utf16BE(b string) string {
	if len(b)%2 == 1 {
		b += "\x00"
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return string(utf16.Decode(units))
}

// decode converts raw string bytes shown with this font to text. Codes
// without a mapping are dropped for multi-byte fonts and mapped through
// fallback for single-byte fonts.
func (cm *cmap) decode(raw string, fallback *encoding) string {
	var b strings.Builder
	w := cm.width
	for i := 0; i+w <= len(raw); i += w {
		c := code(raw[i : i+w])
		if s, ok := cm.m[c]; ok {
			b.WriteString(s)
			continue
		}
		if w == 1 {
			b.WriteRune(fallback.lookup(raw[i]))
		}
	}
	return b.String()
}

// font is what the text interpreter needs from a font resource.
type font struct {
	toUnicode *cmap     // nil when the font has no ToUnicode stream
	enc       *encoding // simple-font encoding; nil means WinAnsiEncoding
}

func (f *font) decode(raw string) string {
	if f == nil {
		return decodeSimple(raw, nil)
	}
	if f.toUnicode != nil {
		return f.toUnicode.decode(raw, f.enc)
	}
	return decodeSimple(raw, f.enc)
}

func decodeSimple(raw string, enc *encoding) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		b.WriteRune(enc.lookup(raw[i]))
	}
	return b.String()
}
