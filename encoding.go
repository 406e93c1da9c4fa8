// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"strings"
)

// FontEncoding maps operator-string bytes to decoded UTF-8 text for one
// font resource. It is built once per font and shared by reference across
// every run drawn with that font on the page; building is side-effectful,
// using it is not.
type FontEncoding struct {
	table map[byte]string
}

// buildEncoding implements the C2 construction algorithm: WinAnsi base (if
// named), then /Differences, then /ToUnicode, each layer overriding the
// last. If nothing populated the table, it falls back to WinAnsi so that
// decoding never degenerates to pure Latin-1 by omission.
func buildEncoding(fontDict Value) *FontEncoding {
	enc := &FontEncoding{table: map[byte]string{}}

	base := ""
	encodingVal := fontDict.Key("Encoding")
	switch encodingVal.Kind() {
	case Name:
		base = encodingVal.Name()
	case Dict:
		base = encodingVal.Key("BaseEncoding").Name()
	}
	if base == "WinAnsiEncoding" {
		populateWinAnsi(enc.table)
	}

	if encodingVal.Kind() == Dict {
		diffs := encodingVal.Key("Differences")
		if diffs.Kind() == Array {
			applyDifferences(enc.table, diffs)
		}
	}

	if tu := fontDict.Key("ToUnicode"); tu.Kind() == Stream {
		applyToUnicodeCMap(enc.table, tu)
	}

	if len(enc.table) == 0 {
		populateWinAnsi(enc.table)
	}
	return enc
}

// Decode turns a raw operator string into text. A leading UTF-16BE BOM
// bypasses the table entirely; otherwise every byte is looked up, falling
// back to its Latin-1 code point when unmapped.
func (e *FontEncoding) Decode(raw string) string {
	if e == nil {
		e = &FontEncoding{}
	}
	b := []byte(raw)
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		return utf16Decode(string(b[2:]))
	}
	var sb strings.Builder
	for _, c := range b {
		if s, ok := e.table[c]; ok {
			sb.WriteString(s)
		} else {
			sb.WriteRune(rune(c))
		}
	}
	return sb.String()
}

// populateWinAnsi seeds the table with the WinAnsiEncoding overrides in the
// 0x82-0x9F range (Windows-1252-flavored punctuation and letters) and a
// Latin-1 pass-through for 0xA0-0xFF.
func populateWinAnsi(table map[byte]string) {
	overrides := map[byte]rune{
		0x82: '‚', 0x83: 'ƒ', 0x84: '„', 0x85: '…',
		0x86: '†', 0x87: '‡', 0x88: 'ˆ', 0x89: '‰',
		0x8A: 'Š', 0x8B: '‹', 0x8C: 'Œ', 0x8E: 'Ž',
		0x91: '‘', 0x92: '’', 0x93: '“', 0x94: '”',
		0x95: '•', 0x96: '–', 0x97: '—', 0x98: '˜',
		0x99: '™', 0x9A: 'š', 0x9B: '›', 0x9C: 'œ',
		0x9E: 'ž', 0x9F: 'Ÿ',
	}
	for b, r := range overrides {
		table[b] = string(r)
	}
	for b := 0xA0; b <= 0xFF; b++ {
		table[byte(b)] = string(rune(b))
	}
}

// applyDifferences walks a /Differences array: integers reset the current
// code point, names resolve through the AGL subset and are written at the
// current code before it advances. Unknown glyph names are ignored but
// still advance the code, matching the PDF spec's positional semantics.
func applyDifferences(table map[byte]string, diffs Value) {
	code := 0
	for i := 0; i < diffs.Len(); i++ {
		item := diffs.Index(i)
		switch item.Kind() {
		case Integer:
			code = int(item.Int64())
		case Name:
			if code >= 0 && code <= 0xFF {
				if r, ok := glyphNameToUnicode(item.Name()); ok {
					table[byte(code)] = r
				}
			}
			code++
		}
	}
}

// applyToUnicodeCMap decodes the /ToUnicode stream and overrides table
// entries from its beginbfchar/beginbfrange sections. A single-byte source
// code is all this table distinguishes (multi-byte codespaces are rare in
// the documents this spec targets and are treated as a best-effort miss).
func applyToUnicodeCMap(table map[byte]string, toUnicode Value) {
	n := -1
	mode := ""
	ok := true
	Interpret(toUnicode, func(stk *Stack, op string) {
		if !ok {
			return
		}
		switch op {
		case "beginbfchar":
			mode = "char"
			n = int(stk.Pop().Int64())
		case "beginbfrange":
			mode = "range"
			n = int(stk.Pop().Int64())
		case "endbfchar":
			if n < 0 {
				ok = false
				return
			}
			for i := 0; i < n; i++ {
				repl, src := stk.Pop().RawString(), stk.Pop().RawString()
				if len(src) == 1 {
					table[src[0]] = utf16Decode(repl)
				}
			}
			n = -1
		case "endbfrange":
			if n < 0 {
				ok = false
				return
			}
			for i := 0; i < n; i++ {
				dst, hi, lo := stk.Pop(), stk.Pop().RawString(), stk.Pop().RawString()
				if len(lo) != 1 || len(hi) != 1 {
					continue
				}
				start, end := lo[0], hi[0]
				if dst.Kind() == Array {
					for c := int(start); c <= int(end) && c-int(start) < dst.Len(); c++ {
						table[byte(c)] = utf16Decode(dst.Index(c - int(start)).RawString())
					}
				} else {
					base := []byte(dst.RawString())
					for c := int(start); c <= int(end); c++ {
						table[byte(c)] = utf16Decode(string(base))
						base = incrementUTF16BE(base)
					}
				}
			}
			n = -1
		default:
			_ = mode
		}
	})
}

// incrementUTF16BE adds one to the last code unit of a big-endian UTF-16
// byte string, used to step through an implicit bfrange target sequence.
func incrementUTF16BE(b []byte) []byte {
	out := append([]byte(nil), b...)
	for i := len(out) - 1; i >= 0; i-- {
		out[i]++
		if out[i] != 0 {
			break
		}
	}
	return out
}
