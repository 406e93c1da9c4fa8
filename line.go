// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

// BBox is an axis-aligned bounding box in device points, normalized so that
// X1<=X2 and Y1<=Y2.
type BBox struct {
	X1, Y1, X2, Y2 float64
}

func newBBox(x1, y1, x2, y2 float64) BBox {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// union returns the smallest BBox containing both b and other.
func (b BBox) union(other BBox) BBox {
	return BBox{
		X1: minF(b.X1, other.X1),
		Y1: minF(b.Y1, other.Y1),
		X2: maxF(b.X2, other.X2),
		Y2: maxF(b.Y2, other.Y2),
	}
}

// overlapsY reports whether b and other share any vertical extent, the test
// used to decide whether two lines belong to the same visual line.
func (b BBox) overlapsY(other BBox) bool {
	return maxF(b.Y1, other.Y1) < minF(b.Y2, other.Y2)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// TextLine is a single positioned run of decoded text, emitted once per
// Tj/TJ occurrence by the content-stream interpreter. The reflow engine
// consumes the flat TextLine stream exactly once, in emission order.
type TextLine struct {
	Text     string
	BBox     BBox
	FontSize float64
	PageNum  int
	Geometry PageGeometry
}
