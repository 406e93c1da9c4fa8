// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"fmt"
	"strings"

	"github.com/goidev/pdfcore/logger"
)

// ParsePDF walks every page of r in page-tree order and returns the flat,
// strictly emission-ordered TextLine stream C6 expects. A page whose
// content stream cannot be decoded aborts the whole document, matching the
// "page errors abort" policy: downstream cache validity depends on a
// document producing the same lines every time it is parsed.
func ParsePDF(r *Reader) ([]TextLine, error) {
	var lines []TextLine
	n := r.NumPage()
	for pageNum := 1; pageNum <= n; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageLines, err := parsePage(page, pageNum)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}
		lines = append(lines, pageLines...)
	}
	return lines, nil
}

// parsePage runs C1+C2+C3 over a single page, producing its TextLines.
func parsePage(page Page, pageNum int) ([]TextLine, error) {
	geometry := extractGeometry(page.V)

	fonts := map[string]*FontEncoding{}
	for _, name := range page.Fonts() {
		fontDict := page.Resources().Key("Font").Key(name)
		fonts[name] = buildEncoding(fontDict)
	}

	if page.V.Key("Contents").Kind() == Null {
		return nil, nil
	}
	strm := page.V.Key("Contents")

	var lines []TextLine
	st := newInterpreterState()
	var currentEncoding *FontEncoding

	emit := func(text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		render := st.textRenderMatrix()
		x, y := render.ApplyToOrigin()
		size := st.fontSize * render.VerticalScale()
		width := float64(len([]rune(text))) * size * 0.5
		lines = append(lines, TextLine{
			Text:     text,
			BBox:     newBBox(x, y, x+width, y+size),
			FontSize: size,
			PageNum:  pageNum,
			Geometry: geometry,
		})
	}

	var interpretErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				interpretErr = fmt.Errorf("content stream: %v", r)
			}
		}()
		Interpret(strm, func(stk *Stack, op string) {
			n := stk.Len()
			args := make([]Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = stk.Pop()
			}
			applyOperator(st, fonts, &currentEncoding, op, args, emit)
		})
	}()
	if interpretErr != nil {
		logger.Debug(fmt.Sprintf("page %d: %v", pageNum, interpretErr), true)
		return nil, interpretErr
	}
	return lines, nil
}

// applyOperator dispatches one content-stream operator against st, as a
// dense switch rather than per-operator function values: the operator set
// is small and fixed, so a table of closures would only add indirection.
func applyOperator(st *interpreterState, fonts map[string]*FontEncoding, enc **FontEncoding, op string, args []Value, emit func(string)) {
	num := func(i int) float64 {
		if i < 0 || i >= len(args) {
			return 0
		}
		switch args[i].Kind() {
		case Integer:
			return float64(args[i].Int64())
		case Real:
			return args[i].Float64()
		}
		return 0
	}

	switch op {
	case "q":
		st.pushGState()
	case "Q":
		st.popGState()
	case "cm":
		if len(args) >= 6 {
			st.concatCTM(num(0), num(1), num(2), num(3), num(4), num(5))
		}
	case "BT":
		st.beginText()
	case "ET":
		// no-op
	case "Tf":
		if len(args) >= 2 {
			name := args[0].Name()
			st.fontName = name
			st.fontSize = num(1)
			if e, ok := fonts[name]; ok {
				*enc = e
			} else {
				*enc = nil
			}
		}
	case "Td":
		if len(args) >= 2 {
			st.translateText(num(0), num(1))
		}
	case "TD":
		if len(args) >= 2 {
			st.moveToNextLine(num(0), num(1))
		}
	case "Tm":
		if len(args) >= 6 {
			st.setTextMatrix(num(0), num(1), num(2), num(3), num(4), num(5))
		}
	case "T*":
		st.nextLine()
	case "TL":
		if len(args) >= 1 {
			st.leading = num(0)
		}
	case "Tj":
		if len(args) >= 1 {
			emit((*enc).Decode(args[0].RawString()))
		}
	case "'":
		st.nextLine()
		if len(args) >= 1 {
			emit((*enc).Decode(args[0].RawString()))
		}
	case `"`:
		if len(args) >= 3 {
			st.nextLine()
			emit((*enc).Decode(args[2].RawString()))
		}
	case "TJ":
		if len(args) >= 1 && args[0].Kind() == Array {
			arr := args[0]
			var sb strings.Builder
			for i := 0; i < arr.Len(); i++ {
				item := arr.Index(i)
				switch item.Kind() {
				case String:
					// Each string element is decoded on its own: a
					// ToUnicode/BOM-driven encoding only recognizes its
					// leading marker once, so decoding the concatenation
					// of raw bytes instead of each piece would corrupt
					// every element after the first.
					sb.WriteString((*enc).Decode(item.RawString()))
				case Integer:
					if item.Int64() < -100 {
						sb.WriteByte(' ')
					}
				case Real:
					if item.Float64() < -100 {
						sb.WriteByte(' ')
					}
				}
			}
			emit(sb.String())
		}
	case "m":
		if len(args) >= 2 {
			st.subpathX, st.subpathY = num(0), num(1)
		}
	case "l", "re":
		// reserved; not used by reflow
	default:
		// unrecognized operator: skip, continue the stream
	}
}
