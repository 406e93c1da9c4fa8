// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import "regexp"

const (
	indentThreshold = 15.0
	headingL1Size   = 18.0
	headingL2Size   = 14.0
)

var (
	pageNumberRe      = regexp.MustCompile(`^[\s\-]*(?:Page\s*)?\d+(?:\s*(?:of|/)\s*\d+)?[\s\-]*$`)
	pageNumberExtract = regexp.MustCompile(`\d+`)
	footnoteMarkerRe  = regexp.MustCompile(`^[\s]*[\*†‡§\d\[\]]+[.)\s]`)
	captionRe         = regexp.MustCompile(`(?i)^(?:Fig(?:ure)?|Table|Scheme|Chart)\s*\.?\s*\d`)
	citationRe        = regexp.MustCompile(`^\s*(?:\[\d+\]|\d+\.)\s+[A-Z]`)
	referencesHeaderRe = regexp.MustCompile(`(?i)^\s*(?:References|Bibliography|Works\s+Cited|Literature\s+Cited)\s*$`)
	abstractHeaderRe  = regexp.MustCompile(`(?i)^\s*Abstract\s*$`)
)

// reflowEngine holds the state carried between the two passes over a flat
// TextLine stream.
type reflowEngine struct {
	inReferences    bool
	pageLeftMargin  float64
	marginSet       bool
	docPageNumbers  map[int]string
}

// Reflow runs the full two-pass C6 algorithm over lines, in emission order,
// and returns the classified, merged Block list.
func Reflow(lines []TextLine) []Block {
	e := &reflowEngine{docPageNumbers: map[int]string{}}
	e.analyzePages(lines)
	return e.classifyAndMerge(lines)
}

// analyzePages is the first pass: per page, track the minimum left-hand x
// outside header/footer zones (ignoring non-positive x), and detect logical
// page numbers printed in the header/footer zones.
func (e *reflowEngine) analyzePages(lines []TextLine) {
	perPageMargin := map[int]float64{}
	havePageMargin := map[int]bool{}

	for _, line := range lines {
		inHeader := line.Geometry.isHeaderZone(line.BBox.Y1)
		inFooter := line.Geometry.isFooterZone(line.BBox.Y1)

		if !inHeader && !inFooter {
			if line.BBox.X1 > 0 {
				if !havePageMargin[line.PageNum] || line.BBox.X1 < perPageMargin[line.PageNum] {
					perPageMargin[line.PageNum] = line.BBox.X1
					havePageMargin[line.PageNum] = true
				}
			}
			continue
		}

		if pageNumberRe.MatchString(line.Text) {
			if m := pageNumberExtract.FindString(line.Text); m != "" {
				e.docPageNumbers[line.PageNum] = m
			}
		}
	}

	for _, m := range perPageMargin {
		if !e.marginSet || m < e.pageLeftMargin {
			e.pageLeftMargin = m
			e.marginSet = true
		}
	}
}

// classifyAndMerge is the second pass: classify each line's role, then
// merge it into the previous block when eligible, or emit a new block.
func (e *reflowEngine) classifyAndMerge(lines []TextLine) []Block {
	var blocks []Block
	for _, line := range lines {
		role := e.classifyRole(line)
		docPageNum, hasDocPageNum := e.docPageNumbers[line.PageNum]

		if len(blocks) > 0 && role.mergeable() {
			prev := &blocks[len(blocks)-1]
			if e.shouldMerge(*prev, role, line) {
				mergeInto(prev, line)
				continue
			}
		}

		indented := e.isIndented(line.BBox.X1)
		blocks = append(blocks, Block{
			Text:               line.Text,
			BBox:               line.BBox,
			Role:               role,
			PageNum:            line.PageNum,
			DocPageNum:         docPageNum,
			HasDocPageNum:      hasDocPageNum,
			StartsNewParagraph: indented,
		})
	}
	return blocks
}

// classifyRole implements the priority-ordered classification rules.
func (e *reflowEngine) classifyRole(line TextLine) BlockRole {
	text := line.Text

	if referencesHeaderRe.MatchString(text) {
		e.inReferences = true
		return BlockRole{Kind: RoleReference}
	}
	if abstractHeaderRe.MatchString(text) {
		return BlockRole{Kind: RoleAbstract}
	}
	if e.inReferences {
		if line.FontSize > headingL2Size && !citationRe.MatchString(text) {
			e.inReferences = false
		} else {
			return BlockRole{Kind: RoleCitation}
		}
	}

	inHeader := line.Geometry.isHeaderZone(line.BBox.Y1)
	inFooter := line.Geometry.isFooterZone(line.BBox.Y1)

	if inHeader {
		if pageNumberRe.MatchString(text) {
			return BlockRole{Kind: RolePageNumber}
		}
		return BlockRole{Kind: RoleHeader}
	}
	if inFooter {
		if pageNumberRe.MatchString(text) {
			return BlockRole{Kind: RolePageNumber}
		}
		if footnoteMarkerRe.MatchString(text) {
			return BlockRole{Kind: RoleFootnote}
		}
		return BlockRole{Kind: RoleFooter}
	}

	if captionRe.MatchString(text) {
		return BlockRole{Kind: RoleCaption}
	}
	if citationRe.MatchString(text) {
		return BlockRole{Kind: RoleCitation}
	}

	switch {
	case line.FontSize >= headingL1Size:
		return BlockRole{Kind: RoleHeading, Level: 1}
	case line.FontSize >= headingL2Size:
		return BlockRole{Kind: RoleHeading, Level: 2}
	default:
		return BlockRole{Kind: RoleParagraph}
	}
}

// isIndented reports whether x lies beyond the established left margin by
// more than indentThreshold. When the first pass found no body line with a
// positive x, no margin is set and every line is treated as non-indented.
func (e *reflowEngine) isIndented(x float64) bool {
	if !e.marginSet {
		return false
	}
	return x > e.pageLeftMargin+indentThreshold
}

// shouldMerge decides whether line, already classified as role, merges
// into prev: same page is required, a Y-overlap always merges, otherwise a
// vertical-gap test applies and an indented line forces a new paragraph.
func (e *reflowEngine) shouldMerge(prev Block, role BlockRole, line TextLine) bool {
	if prev.PageNum != line.PageNum {
		return false
	}
	if !prev.Role.compatibleWith(role) {
		return false
	}
	if prev.BBox.overlapsY(line.BBox) {
		return true
	}

	var gap float64
	if prev.BBox.Y1 > line.BBox.Y1 {
		gap = prev.BBox.Y1 - line.BBox.Y2
	} else {
		gap = line.BBox.Y1 - prev.BBox.Y2
	}
	if !(gap >= -5.0 && gap < line.FontSize*1.5) {
		return false
	}
	if e.isIndented(line.BBox.X1) {
		return false
	}
	return true
}

// mergeInto appends line's text to prev, inserting a joining space unless
// prev's text already ends in a hyphen or whitespace, and expands prev's
// bbox to the union of both.
func mergeInto(prev *Block, line TextLine) {
	if n := len(prev.Text); n > 0 {
		last := prev.Text[n-1]
		if last != '-' && last != ' ' && last != '\t' && last != '\n' {
			prev.Text += " "
		}
	}
	prev.Text += line.Text
	prev.BBox = prev.BBox.union(line.BBox)
}
