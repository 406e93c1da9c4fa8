// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause
package xtract

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSinglePagePDF assembles a minimal one-page PDF whose content stream
// is the given operator sequence, wired to a single WinAnsiEncoding font.
func buildSinglePagePDF(t *testing.T, stream string) []byte {
	t.Helper()
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := map[int]int{}

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n")
	b.WriteString("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\n")
	b.WriteString("endobj\n")

	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<< /Length ")
	b.WriteString(strconv.Itoa(len(stream)))
	b.WriteString(" >>\nstream\n")
	b.WriteString(stream)
	if !strings.HasSuffix(stream, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("endstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")

	xrefStart := b.Len()
	maxObj := 5
	b.WriteString("xref\n0 ")
	b.WriteString(strconv.Itoa(maxObj + 1))
	b.WriteString("\n")
	b.WriteString(pad10(0))
	b.WriteString(" 65535 f \n")
	for i := 1; i <= maxObj; i++ {
		b.WriteString(pad10(offsets[i]))
		b.WriteString(" 00000 n \n")
	}
	b.WriteString("trailer\n<< /Root 1 0 R /Size ")
	b.WriteString(strconv.Itoa(maxObj + 1))
	b.WriteString(" >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xrefStart))
	b.WriteString("\n%%EOF\n")

	return []byte(b.String())
}

// TestParsePage_EmitsOrderedTextLines feeds a content stream exercising
// q/cm/Q (state save/restore, ignored by text emission), BT/Tf/Tm/Td/Tj,
// T* (next line), and a TJ array with a large negative adjustment (word
// gap) through parsePage and checks the TextLines come out in emission
// order with the right text and font size.
func TestParsePage_EmitsOrderedTextLines(t *testing.T) {
	stream := strings.Join([]string{
		"q 1 0 0 1 0 0 cm Q",
		"BT /F1 12 Tf 1 0 0 1 72 700 Tm (Hello) Tj ET",
		"BT /F1 18 Tf 1 0 0 1 72 650 Tm (World) Tj T* (Second) Tj ET",
		"BT /F1 10 Tf [(A) -200 (B)] TJ ET",
	}, "\n") + "\n"

	pdf := buildSinglePagePDF(t, stream)
	br := bytes.NewReader(pdf)
	r, err := NewReader(br, int64(len(pdf)))
	require.NoError(t, err)

	page := r.Page(1)
	require.False(t, page.V.IsNull())

	lines, err := parsePage(page, 1)
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, "Hello", lines[0].Text)
	assert.Equal(t, float64(12), lines[0].FontSize)
	assert.Equal(t, 1, lines[0].PageNum)

	assert.Equal(t, "World", lines[1].Text)
	assert.Equal(t, float64(18), lines[1].FontSize)

	assert.Equal(t, "Second", lines[2].Text)
	assert.Equal(t, float64(18), lines[2].FontSize)

	// TJ array: a large negative adjustment between "A" and "B" inserts a
	// space in the emitted text.
	assert.Equal(t, "A B", lines[3].Text)
}

// TestParsePDF_WalksAllPages checks ParsePDF concatenates TextLines from
// every page in document order.
func TestParsePDF_WalksAllPages(t *testing.T) {
	r := newTestReader(t, minimalTwoPagePDF)
	lines, err := ParsePDF(r)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].PageNum)
	assert.Contains(t, lines[0].Text, "Hello")
	assert.Equal(t, 2, lines[1].PageNum)
	assert.Contains(t, lines[1].Text, "World")
}

// TestApplyOperator_TjWithoutFontIsSafe checks that a Tj before any Tf has
// set the current encoding doesn't panic: (*enc) is a nil *FontEncoding,
// and FontEncoding.Decode is nil-receiver-safe.
func TestApplyOperator_TjWithoutFontIsSafe(t *testing.T) {
	st := newInterpreterState()
	st.beginText()
	var enc *FontEncoding
	var got string
	emit := func(s string) { got = s }

	assert.NotPanics(t, func() {
		applyOperator(st, map[string]*FontEncoding{}, &enc, "Tj",
			[]Value{{data: "hi"}}, emit)
	})
	assert.Equal(t, "hi", got)
}
