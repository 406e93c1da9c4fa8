// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func letterLine(text string, x1, y1, x2, y2, fontSize float64, page int) TextLine {
	return TextLine{
		Text:     text,
		BBox:     newBBox(x1, y1, x2, y2),
		FontSize: fontSize,
		PageNum:  page,
		Geometry: defaultPageGeometry(),
	}
}

func TestReflow_SingleLineParagraph(t *testing.T) {
	lines := []TextLine{letterLine("Lorem ipsum", 72, 700, 200, 712, 12, 1)}
	blocks := Reflow(lines)

	assert.Len(t, blocks, 1)
	assert.Equal(t, "Lorem ipsum", blocks[0].Text)
	assert.Equal(t, BlockRole{Kind: RoleParagraph}, blocks[0].Role)
	assert.False(t, blocks[0].StartsNewParagraph)
	assert.False(t, blocks[0].HasDocPageNum)
}

func TestReflow_ParagraphAcrossTwoLinesWithSpace(t *testing.T) {
	lines := []TextLine{
		letterLine("Hello", 10, 400, 50, 412, 12, 1),
		letterLine("world.", 10, 386, 50, 398, 12, 1),
	}
	blocks := Reflow(lines)

	assert.Len(t, blocks, 1)
	assert.Equal(t, "Hello world.", blocks[0].Text)
	assert.Equal(t, newBBox(10, 386, 50, 412), blocks[0].BBox)
}

func TestReflow_HyphenatedJoin(t *testing.T) {
	lines := []TextLine{
		letterLine("inter-", 10, 400, 50, 412, 12, 1),
		letterLine("national", 10, 386, 60, 398, 12, 1),
	}
	blocks := Reflow(lines)

	assert.Len(t, blocks, 1)
	assert.Equal(t, "inter-national", blocks[0].Text)
}

func TestReflow_HeadingThenParagraphDoesNotMerge(t *testing.T) {
	lines := []TextLine{
		letterLine("Chapter 1", 10, 500, 100, 524, 24, 1),
		letterLine("It was dark.", 10, 460, 90, 472, 12, 1),
	}
	blocks := Reflow(lines)

	assert.Len(t, blocks, 2)
	assert.Equal(t, BlockRole{Kind: RoleHeading, Level: 1}, blocks[0].Role)
	assert.Equal(t, BlockRole{Kind: RoleParagraph}, blocks[1].Role)
}

func TestReflow_PageNumberInFooter(t *testing.T) {
	lines := []TextLine{letterLine("- 5 -", 280, 30, 320, 40, 10, 1)}
	blocks := Reflow(lines)

	assert.Len(t, blocks, 1)
	assert.Equal(t, BlockRole{Kind: RolePageNumber}, blocks[0].Role)
	assert.Equal(t, "5", blocks[0].DocPageNum)
	assert.True(t, blocks[0].HasDocPageNum)
}

func TestReflow_ReferencesSectionSwitch(t *testing.T) {
	lines := []TextLine{
		letterLine("References", 72, 500, 150, 514, 14, 1),
		letterLine("[1] Smith, J. 2020.", 72, 480, 250, 492, 10, 1),
		letterLine("Introduction", 72, 300, 200, 324, 18, 2),
	}
	blocks := Reflow(lines)

	assert.Len(t, blocks, 3)
	assert.Equal(t, BlockRole{Kind: RoleReference}, blocks[0].Role)
	assert.Equal(t, BlockRole{Kind: RoleCitation}, blocks[1].Role)
	assert.Equal(t, BlockRole{Kind: RoleHeading, Level: 1}, blocks[2].Role)
}

func TestReflow_CrossPageNeverMerges(t *testing.T) {
	lines := []TextLine{
		letterLine("End of page one.", 72, 100, 300, 112, 12, 1),
		letterLine("Start of page two.", 72, 700, 300, 712, 12, 2),
	}
	blocks := Reflow(lines)

	assert.Len(t, blocks, 2)
	assert.NotEqual(t, blocks[0].PageNum, blocks[1].PageNum)
}

func TestReflow_IndentedLineStartsNewParagraph(t *testing.T) {
	lines := []TextLine{
		letterLine("First line.", 72, 400, 200, 412, 12, 1),
		letterLine("Indented line.", 100, 384, 260, 396, 12, 1),
	}
	blocks := Reflow(lines)

	assert.Len(t, blocks, 2)
	assert.True(t, blocks[1].StartsNewParagraph)
}

func TestReflow_EmptyInput(t *testing.T) {
	assert.Empty(t, Reflow(nil))
}
