// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

// Matrix3x3 is a PDF affine transform, stored as the six free components of
// the 3x3 homogeneous matrix:
//
//	[ a b 0 ]
//	[ c d 0 ]
//	[ e f 1 ]
type Matrix3x3 struct {
	A, B, C, D, E, F float64
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix3x3 {
	return Matrix3x3{A: 1, D: 1}
}

// NewMatrix builds a Matrix3x3 from its six PDF-order components (the order
// used by the cm and Tm operators).
func NewMatrix(a, b, c, d, e, f float64) Matrix3x3 {
	return Matrix3x3{A: a, B: b, C: c, D: d, E: e, F: f}
}

// Multiply composes m with other so that a point is first transformed by
// other, then by m: Multiply is "m ∘ other" in function-composition order,
// matching how the PDF spec chains cm and Tm.
func (m Matrix3x3) Multiply(other Matrix3x3) Matrix3x3 {
	return Matrix3x3{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
		E: m.A*other.E + m.C*other.F + m.E,
		F: m.B*other.E + m.D*other.F + m.F,
	}
}

// ApplyToPoint maps (x,y) through m.
func (m Matrix3x3) ApplyToPoint(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ApplyToOrigin is ApplyToPoint(0, 0), the common case of locating a text
// origin after composing CTM and Tm.
func (m Matrix3x3) ApplyToOrigin() (float64, float64) {
	return m.E, m.F
}

// VerticalScale returns the magnitude of the matrix's vertical scale
// component, used to turn a nominal font size into an effective one.
func (m Matrix3x3) VerticalScale() float64 {
	if m.D < 0 {
		return -m.D
	}
	return m.D
}

// graphicsState is the q/Q snapshot: CTM only. Text state (Tm, leading,
// font, font size) is not part of the graphics state per the PDF spec, and
// the interpreter keeps it out of the stack accordingly.
type graphicsState struct {
	ctm Matrix3x3
}

// interpreterState holds everything C3 mutates while walking one page's
// content stream. It is reset at the start of every page.
type interpreterState struct {
	ctm     Matrix3x3
	tm      Matrix3x3
	leading float64

	subpathX, subpathY float64

	gsStack []graphicsState

	fontName string
	fontSize float64
}

func newInterpreterState() *interpreterState {
	return &interpreterState{
		ctm:      IdentityMatrix(),
		tm:       IdentityMatrix(),
		fontSize: 12,
	}
}

func (s *interpreterState) pushGState() {
	s.gsStack = append(s.gsStack, graphicsState{ctm: s.ctm})
}

func (s *interpreterState) popGState() {
	if len(s.gsStack) == 0 {
		return
	}
	top := s.gsStack[len(s.gsStack)-1]
	s.gsStack = s.gsStack[:len(s.gsStack)-1]
	s.ctm = top.ctm
}

func (s *interpreterState) beginText() {
	s.tm = IdentityMatrix()
}

func (s *interpreterState) setTextMatrix(a, b, c, d, e, f float64) {
	s.tm = NewMatrix(a, b, c, d, e, f)
}

func (s *interpreterState) translateText(tx, ty float64) {
	s.tm = s.tm.Multiply(NewMatrix(1, 0, 0, 1, tx, ty))
}

func (s *interpreterState) moveToNextLine(tx, ty float64) {
	s.leading = -ty
	s.translateText(tx, ty)
}

func (s *interpreterState) nextLine() {
	s.translateText(0, -s.leading)
}

func (s *interpreterState) concatCTM(a, b, c, d, e, f float64) {
	s.ctm = s.ctm.Multiply(NewMatrix(a, b, c, d, e, f))
}

func (s *interpreterState) textRenderMatrix() Matrix3x3 {
	return s.ctm.Multiply(s.tm)
}
