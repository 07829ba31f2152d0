// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf extracts plain text from PDF files one page at a time.
// Parsing and stream decoding are done by pdfcpu; this package interprets
// the page content streams for text-showing operators and maps character
// codes through each font's ToUnicode table or simple-font encoding.
// Form XObjects invoked from a page are interpreted in place.
//
// Text is returned per page. Paragraph structure inside a page is not
// recovered: lines are joined with "\n".
package pdf

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ReadPages returns the plain text of every page of the PDF at path, in page
// order. Pages without text yield empty strings; they are not skipped.
func ReadPages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	pages := make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text, err := readPage(ctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func readPage(ctx *model.Context, pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return "", fmt.Errorf("extracting content: %w", err)
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	if len(data) == 0 {
		return "", nil
	}

	res, err := pageResources(ctx, pageNr)
	if err != nil {
		return "", err
	}
	return pageText(data, res), nil
}

// pageResources resolves the resource dictionary of a page, inherited from
// the page tree unless the page carries its own.
func pageResources(ctx *model.Context, pageNr int) (*resources, error) {
	pageDict, _, inherited, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("reading page dictionary: %w", err)
	}

	var d types.Dict
	if inherited != nil {
		d = inherited.Resources
	}
	if o, found := pageDict.Find("Resources"); found {
		if rd, err := ctx.DereferenceDict(o); err == nil && rd != nil {
			d = rd
		}
	}
	return loadResources(ctx, d, nil), nil
}

// loadResources builds the interpreter view of a resource dictionary.
// Fonts start from parent so a form without its own /Font entry keeps
// showing text in the fonts of the page that invokes it. Fonts that cannot
// be read are left out and their text decodes as WinAnsiEncoding.
func loadResources(ctx *model.Context, d types.Dict, parent map[string]*font) *resources {
	res := &resources{fonts: make(map[string]*font, len(parent))}
	for name, f := range parent {
		res.fonts[name] = f
	}
	if d == nil {
		return res
	}

	if o, found := d.Find("Font"); found {
		if fontDicts, err := ctx.DereferenceDict(o); err == nil {
			for name, obj := range fontDicts {
				fd, err := ctx.DereferenceDict(obj)
				if err != nil || fd == nil {
					continue
				}
				res.fonts[name] = &font{toUnicode: toUnicode(ctx, fd), enc: fontEncoding(ctx, fd)}
			}
		}
	}

	var xobjects types.Dict
	if o, found := d.Find("XObject"); found {
		if xd, err := ctx.DereferenceDict(o); err == nil {
			xobjects = xd
		}
	}
	if xobjects != nil {
		res.form = func(name string) (*form, bool) {
			return loadForm(ctx, xobjects, name, res.fonts)
		}
	}
	return res
}

// loadForm resolves a named XObject and returns it when it is a form.
func loadForm(ctx *model.Context, xobjects types.Dict, name string, fonts map[string]*font) (*form, bool) {
	o, found := xobjects.Find(name)
	if !found {
		return nil, false
	}
	key := name
	if ir, ok := o.(types.IndirectRef); ok {
		key = ir.String()
	}
	sd, _, err := ctx.DereferenceStreamDict(o)
	if err != nil || sd == nil {
		return nil, false
	}
	if st := sd.NameEntry("Subtype"); st == nil || *st != "Form" {
		return nil, false
	}
	if err := sd.Decode(); err != nil {
		return nil, false
	}

	var rd types.Dict
	if ro, found := sd.Find("Resources"); found {
		rd, _ = ctx.DereferenceDict(ro)
	}
	return &form{key: key, content: sd.Content, res: loadResources(ctx, rd, fonts)}, true
}

func toUnicode(ctx *model.Context, fd types.Dict) *cmap {
	tu, found := fd.Find("ToUnicode")
	if !found {
		return nil
	}
	sd, _, err := ctx.DereferenceStreamDict(tu)
	if err != nil || sd == nil {
		return nil
	}
	if err := sd.Decode(); err != nil {
		return nil
	}
	return parseCMap(sd.Content)
}

// fontEncoding reads a simple font's /Encoding, either a base encoding name
// or a dictionary with /BaseEncoding and /Differences. It returns nil when
// the font has none.
func fontEncoding(ctx *model.Context, fd types.Dict) *encoding {
	o, found := fd.Find("Encoding")
	if !found {
		return nil
	}
	o, err := ctx.Dereference(o)
	if err != nil || o == nil {
		return nil
	}

	switch v := o.(type) {
	case types.Name:
		return baseEncoding(string(v))
	case types.Dict:
		base := ""
		if n := v.NameEntry("BaseEncoding"); n != nil {
			base = *n
		}
		enc := baseEncoding(base)
		if do, found := v.Find("Differences"); found {
			if arr, err := ctx.DereferenceArray(do); err == nil {
				enc.applyDifferences(differences(arr))
			}
		}
		return enc
	}
	return nil
}

// differences flattens a /Differences array into the int and glyph name
// items applyDifferences expects.
func differences(arr types.Array) []any {
	items := make([]any, 0, len(arr))
	for _, o := range arr {
		switch v := o.(type) {
		case types.Integer:
			items = append(items, int(v))
		case types.Name:
			items = append(items, string(v))
		}
	}
	return items
}
