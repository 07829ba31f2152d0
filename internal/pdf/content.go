// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"strings"
)

// kerningSpace is the TJ adjustment, in thousandths of text space, past
// which a gap is read as a word break.
const kerningSpace = -180

// maxFormDepth bounds how deeply form XObjects may invoke one another.
const maxFormDepth = 8

// resources is the subset of a resource dictionary the text interpreter
// reads: fonts by name and a resolver for XObjects invoked with Do.
type resources struct {
	fonts map[string]*font
	form  func(name string) (*form, bool)
}

// form is a Form XObject ready to be interpreted. key identifies the
// underlying object so recursive invocations can be detected.
type form struct {
	key     string
	content []byte
	res     *resources
}

// textWriter assembles page text from show-text operators, starting a new
// line whenever the text position moves vertically.
type textWriter struct {
	res    *resources
	font   *font
	active map[string]bool
	lines  []string
	cur    strings.Builder
	y      float64
	hasY   bool
}

// pageText interprets a content stream and returns its plain text, one
// line per text line. res may be nil, in which case strings are decoded
// as WinAnsiEncoding.
func pageText(content []byte, res *resources) string {
	w := &textWriter{active: make(map[string]bool)}
	w.run(content, res, 0)
	return w.text()
}

// run interprets one content stream against res. Form XObjects invoked
// from it are interpreted in place with their own resources.
func (w *textWriter) run(content []byte, res *resources, depth int) {
	if res == nil {
		res = &resources{}
	}
	w.res = res
	lx := newLexer(content)

	var operands []token
	var arrays [][]token
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		switch tok.kind {
		case tokArrayOpen:
			arrays = append(arrays, nil)
			continue
		case tokArrayClose:
			if len(arrays) == 0 {
				continue
			}
			arr := token{kind: tokArray, elems: arrays[len(arrays)-1]}
			arrays = arrays[:len(arrays)-1]
			tok = arr
		case tokKeyword:
			if len(arrays) == 0 {
				switch tok.text {
				case "ID":
					skipInlineImage(lx)
				case "Do":
					w.invoke(operands, depth)
				default:
					w.operator(tok.text, operands)
				}
				operands = operands[:0]
				continue
			}
		}
		if len(arrays) > 0 {
			arrays[len(arrays)-1] = append(arrays[len(arrays)-1], tok)
		} else {
			operands = append(operands, tok)
		}
	}
}

// invoke runs the Form XObject named by the Do operands. Image XObjects,
// forms already on the invocation path and forms nested past maxFormDepth
// are skipped. The caller's font and resources are restored afterwards,
// as the q/Q pair around a Do would.
func (w *textWriter) invoke(args []token, depth int) {
	if len(args) == 0 || args[len(args)-1].kind != tokName {
		return
	}
	if depth >= maxFormDepth || w.res.form == nil {
		return
	}
	f, ok := w.res.form(args[len(args)-1].text)
	if !ok || w.active[f.key] {
		return
	}

	res, fnt := w.res, w.font
	w.active[f.key] = true
	w.run(f.content, f.res, depth+1)
	delete(w.active, f.key)
	w.res, w.font = res, fnt
}

// skipInlineImage advances past inline image data up to the EI operator.
func skipInlineImage(lx *lexer) {
	if lx.pos < len(lx.data) {
		lx.pos++ // single whitespace after ID
	}
	for lx.pos+2 <= len(lx.data) {
		if lx.data[lx.pos] == 'E' && lx.data[lx.pos+1] == 'I' &&
			(lx.pos == 0 || isWhite(lx.data[lx.pos-1])) &&
			(lx.pos+2 == len(lx.data) || isWhite(lx.data[lx.pos+2])) {
			lx.pos += 2
			return
		}
		lx.pos++
	}
	lx.pos = len(lx.data)
}

func (w *textWriter) operator(op string, args []token) {
	switch op {
	case "BT":
		w.hasY = false
	case "Tf":
		if len(args) >= 1 && args[0].kind == tokName {
			w.font = w.res.fonts[args[0].text]
		}
	case "Td", "TD":
		if len(args) >= 2 {
			if args[1].num != 0 {
				w.newline()
			} else {
				w.space()
			}
		}
	case "Tm":
		if len(args) >= 6 {
			y := args[5].num
			if w.hasY && y != w.y {
				w.newline()
			} else {
				w.space()
			}
			w.y, w.hasY = y, true
		}
	case "T*":
		w.newline()
	case "Tj":
		if len(args) >= 1 {
			w.show(args[len(args)-1])
		}
	case "'":
		w.newline()
		if len(args) >= 1 {
			w.show(args[len(args)-1])
		}
	case `"`:
		w.newline()
		if len(args) >= 3 {
			w.show(args[2])
		}
	case "TJ":
		if len(args) >= 1 && args[len(args)-1].kind == tokArray {
			for _, el := range args[len(args)-1].elems {
				switch el.kind {
				case tokString:
					w.show(el)
				case tokNumber:
					if el.num < kerningSpace {
						w.space()
					}
				}
			}
		}
	}
}

func (w *textWriter) show(t token) {
	if t.kind != tokString {
		return
	}
	w.cur.WriteString(w.font.decode(t.text))
}

func (w *textWriter) space() {
	s := w.cur.String()
	if s != "" && !strings.HasSuffix(s, " ") {
		w.cur.WriteByte(' ')
	}
}

func (w *textWriter) newline() {
	line := strings.TrimRight(w.cur.String(), " ")
	w.cur.Reset()
	if line != "" {
		w.lines = append(w.lines, line)
	}
}

func (w *textWriter) text() string {
	w.newline()
	return strings.Join(w.lines, "\n")
}
