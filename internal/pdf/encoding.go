// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"strconv"
	"strings"
)

// encoding maps the byte codes of a simple font to runes. Zero entries fall
// back to the code itself.
type encoding [256]rune

var (
	winAnsiHigh = [32]rune{
		0x20AC, 0, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
		0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0, 0x017D, 0,
		0, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
		0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0, 0x017E, 0x0178,
	}

	macRomanHigh = [128]rune{
		0xC4, 0xC5, 0xC7, 0xC9, 0xD1, 0xD6, 0xDC, 0xE1, 0xE0, 0xE2, 0xE4, 0xE3, 0xE5, 0xE7, 0xE9, 0xE8,
		0xEA, 0xEB, 0xED, 0xEC, 0xEE, 0xEF, 0xF1, 0xF3, 0xF2, 0xF4, 0xF6, 0xF5, 0xFA, 0xF9, 0xFB, 0xFC,
		0x2020, 0xB0, 0xA2, 0xA3, 0xA7, 0x2022, 0xB6, 0xDF, 0xAE, 0xA9, 0x2122, 0xB4, 0xA8, 0x2260, 0xC6, 0xD8,
		0x221E, 0xB1, 0x2264, 0x2265, 0xA5, 0xB5, 0x2202, 0x2211, 0x220F, 0x03C0, 0x222B, 0xAA, 0xBA, 0x03A9, 0xE6, 0xF8,
		0xBF, 0xA1, 0xAC, 0x221A, 0x0192, 0x2248, 0x2206, 0xAB, 0xBB, 0x2026, 0xA0, 0xC0, 0xC3, 0xD5, 0x0152, 0x0153,
		0x2013, 0x2014, 0x201C, 0x201D, 0x2018, 0x2019, 0xF7, 0x25CA, 0xFF, 0x0178, 0x2044, 0xA4, 0x2039, 0x203A, 0xFB01, 0xFB02,
		0x2021, 0xB7, 0x201A, 0x201E, 0x2030, 0xC2, 0xCA, 0xC1, 0xCB, 0xC8, 0xCD, 0xCE, 0xCF, 0xCC, 0xD3, 0xD4,
		0, 0xD2, 0xDA, 0xDB, 0xD9, 0x0131, 0x02C6, 0x02DC, 0xAF, 0x02D8, 0x02D9, 0x02DA, 0xB8, 0x02DD, 0x02DB, 0x02C7,
	}
)

// winAnsi is the default for simple fonts without a usable /Encoding.
var winAnsi = baseEncoding("WinAnsiEncoding")

// baseEncoding returns a fresh copy of the named base encoding. Unknown
// names, StandardEncoding included, get WinAnsiEncoding with the two quote
// positions StandardEncoding moves.
func baseEncoding(name string) *encoding {
	e := new(encoding)
	for i := range e {
		e[i] = rune(i)
	}
	switch name {
	case "MacRomanEncoding":
		for i, r := range macRomanHigh {
			if r != 0 {
				e[0x80+i] = r
			}
		}
	default:
		for i, r := range winAnsiHigh {
			if r != 0 {
				e[0x80+i] = r
			}
		}
		if name == "StandardEncoding" {
			e['\''] = 0x2019
			e['`'] = 0x2018
		}
	}
	return e
}

// applyDifferences overlays a /Differences array: an integer sets the next
// code, each following glyph name takes one code. Unknown glyph names leave
// the base mapping in place.
func (e *encoding) applyDifferences(items []any) {
	code := -1
	for _, it := range items {
		switch v := it.(type) {
		case int:
			code = v
		case string:
			if code < 0 || code > 255 {
				continue
			}
			if r, ok := glyphRune(v); ok {
				e[code] = r
			}
			code++
		}
	}
}

func (e *encoding) lookup(c byte) rune {
	if e == nil {
		return winAnsi[c]
	}
	if r := e[c]; r != 0 {
		return r
	}
	return rune(c)
}

var glyphNames = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#', "dollar": '$',
	"percent": '%', "ampersand": '&', "quotesingle": '\'', "parenleft": '(',
	"parenright": ')', "asterisk": '*', "plus": '+', "comma": ',', "hyphen": '-',
	"period": '.', "slash": '/', "colon": ':', "semicolon": ';', "less": '<',
	"equal": '=', "greater": '>', "question": '?', "at": '@', "bracketleft": '[',
	"backslash": '\\', "bracketright": ']', "asciicircum": '^', "underscore": '_',
	"grave": '`', "braceleft": '{', "bar": '|', "braceright": '}', "asciitilde": '~',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"quoteleft": 0x2018, "quoteright": 0x2019, "quotesinglbase": 0x201A,
	"quotedblleft": 0x201C, "quotedblright": 0x201D, "quotedblbase": 0x201E,
	"guillemotleft": 0xAB, "guillemotright": 0xBB, "guilsinglleft": 0x2039,
	"guilsinglright": 0x203A, "endash": 0x2013, "emdash": 0x2014, "bullet": 0x2022,
	"ellipsis": 0x2026, "dagger": 0x2020, "daggerdbl": 0x2021, "trademark": 0x2122,
	"copyright": 0xA9, "registered": 0xAE, "degree": 0xB0, "section": 0xA7,
	"paragraph": 0xB6, "periodcentered": 0xB7, "minus": 0x2212, "Euro": 0x20AC,
	"nbspace": 0xA0, "nonbreakingspace": 0xA0, "fi": 0xFB01, "fl": 0xFB02,
	"afii61352": 0x2116, "afii00208": 0x2015,
	"afii10017": 0x0410, "afii10018": 0x0411, "afii10019": 0x0412, "afii10020": 0x0413,
	"afii10021": 0x0414, "afii10022": 0x0415, "afii10023": 0x0401,
	"afii10065": 0x0430, "afii10066": 0x0431, "afii10067": 0x0432, "afii10068": 0x0433,
	"afii10069": 0x0434, "afii10070": 0x0435, "afii10071": 0x0451,
	"afii10145": 0x040F, "afii10193": 0x045F,
}

// Cyrillic letters outside the basic alphabet: upper case from afii10050,
// lower case from afii10098.
var (
	cyrillicUpper = []rune{
		0x0490, 0x0402, 0x0403, 0x0404, 0x0405, 0x0406, 0x0407,
		0x0408, 0x0409, 0x040A, 0x040B, 0x040C, 0x040E,
	}
	cyrillicLower = []rune{
		0x0491, 0x0452, 0x0453, 0x0454, 0x0455, 0x0456, 0x0457,
		0x0458, 0x0459, 0x045A, 0x045B, 0x045C, 0x045E,
	}
)

// glyphRune maps an Adobe glyph name to its rune: named glyphs, single
// letters, uniXXXX and uXXXX[XX] forms, and the afii Cyrillic names.
func glyphRune(name string) (rune, bool) {
	if r, ok := glyphNames[name]; ok {
		return r, true
	}
	if len(name) == 1 {
		return rune(name[0]), true
	}
	if strings.HasPrefix(name, "uni") && len(name) == 7 {
		if v, err := strconv.ParseUint(name[3:], 16, 32); err == nil {
			return rune(v), true
		}
	}
	if strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7 {
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil {
			return rune(v), true
		}
	}
	if n, ok := strings.CutPrefix(name, "afii"); ok {
		v, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		switch {
		case v >= 10024 && v <= 10049:
			return rune(0x0416 + v - 10024), true
		case v >= 10072 && v <= 10097:
			return rune(0x0436 + v - 10072), true
		case v >= 10050 && v < 10050+len(cyrillicUpper):
			return cyrillicUpper[v-10050], true
		case v >= 10098 && v < 10098+len(cyrillicLower):
			return cyrillicLower[v-10098], true
		}
	}
	return 0, false
}
