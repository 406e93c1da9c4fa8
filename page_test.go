// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause
package xtract

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	ra, size, done := openReaderAt(t, "pdf_test.pdf")
	defer done()
	r, err := NewReader(ra, size)
	if err != nil {
		t.Skipf("Skipping: cannot parse PDF sample: %v", err)
	}
	// Request first page (1-based)
	p := r.Page(1)
	if p.V.IsNull() {
		t.Skip("Skipping: could not locate page 1 (PDF may have unusual structure)")
	}
	// Basic assertion: page Type must be "Page"
	assert.Equal(t, "Page", p.V.Key("Type").Name(), "expected returned object's /Type to be Page")

	// Out-of-range page should return zero Page
	total := r.NumPage()
	p2 := r.Page(total + 1)
	assert.True(t, p2.V.IsNull(), "expected out-of-range page to be zero/empty Page")
}

func TestNumPage(t *testing.T) {
	//Trailer.Root.Pages.Count present
	r1 := &Reader{
		trailer: dict{
			name("Root"): dict{
				name("Pages"): dict{
					name("Count"): int64(5),
				},
			},
		},
	}
	assert.Equal(t, 5, r1.NumPage(), "should return the Count value when present")
	//Missing keys should default to 0
	r2 := &Reader{trailer: dict{}}
	assert.Equal(t, 0, r2.NumPage(), "should return 0 if Root/Pages/Count missing")
}

var minimalTwoPagePDF = []byte(`%PDF-1.4
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>
endobj
3 0 obj
<< /Type /Page /Parent 2 0 R /MediaBox [0 0 300 300]
   /Contents 5 0 R /Resources << /Font << /F1 6 0 R >> >> >>
endobj
4 0 obj
<< /Type /Page /Parent 2 0 R /MediaBox [0 0 300 300]
   /Contents 7 0 R /Resources << /Font << /F1 6 0 R >> >> >>
endobj
5 0 obj
<< /Length 44 >>
stream
BT /F1 12 Tf 72 200 Td (Hello ) Tj ET
endstream
endobj
7 0 obj
<< /Length 43 >>
stream
BT /F1 12 Tf 72 200 Td (World) Tj ET
endstream
endobj
6 0 obj
<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>
endobj
xref
0 8
0000000000 65535 f
0000000009 00000 n
0000000058 00000 n
0000000121 00000 n
0000000250 00000 n
0000000379 00000 n
0000000552 00000 n
0000000466 00000 n
trailer<< /Root 1 0 R /Size 8 >>
startxref
622
%%EOF
`)

func newTestReader(t *testing.T, b []byte) *Reader {
	t.Helper()
	br := bytes.NewReader(b) // bytes.Reader implements io.ReaderAt
	r, err := NewReader(br, int64(len(b)))
	if err != nil {
		// print a clear error to help debugging (include %#v to reveal formatting/newlines)
		t.Fatalf("failed to initialize Reader: %#v", err)
	}
	return r
}

func TestGetPlainText(t *testing.T) {
	r := newTestReader(t, minimalTwoPagePDF)
	reader, err := r.GetPlainText()
	assert.NoError(t, err, "GetPlainText should not return error")
	out, err := io.ReadAll(reader)
	assert.NoError(t, err, "reading output should not fail")
	txt := string(out)
	assert.Contains(t, txt, "Hello", "expected text 'Hello' missing")
	assert.Contains(t, txt, "World", "expected text 'World' missing")
}

// pad10 formats n as a 10-digit zero-padded string (xref format).
func pad10(n int) string {
	s := strconv.Itoa(n)
	if len(s) >= 10 {
		return s
	}
	return strings.Repeat("0", 10-len(s)) + s
}

func TestFontWidths(t *testing.T) {
	br := bytes.NewReader(minimalTwoPagePDF)
	r, err := NewReader(br, int64(len(minimalTwoPagePDF)))
	require.NoError(t, err, "NewReader should succeed")

	p := r.Page(1)
	require.False(t, p.V.IsNull(), "page 1 should exist")

	fontNames := p.Fonts()
	require.NotEmpty(t, fontNames, "expected at least one font name")

	f := p.Font(fontNames[0])
	widths := f.Widths()

	assert.Len(t, widths, 0, "expected no widths for font in minimalTwoPagePDF")
}

func TestBuildOutline(t *testing.T) {
	root := dict{
		name("Title"): "Root",
		name("First"): dict{
			name("Title"): "Child1",
			name("Next"): dict{
				name("Title"): "Child2",
			},
		},
	}

	v := Value{data: root}

	out := buildOutline(v)
	assert.Equal(t, "Root", out.Title)
	require.Len(t, out.Child, 2)
	assert.Equal(t, "Child1", out.Child[0].Title)
	assert.Equal(t, "Child2", out.Child[1].Title)
}
