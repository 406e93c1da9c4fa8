// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBlocks() []Block {
	return []Block{
		{
			Text:    "H",
			BBox:    newBBox(72, 720, 200, 740),
			Role:    BlockRole{Kind: RoleHeading, Level: 1},
			PageNum: 1,
		},
		{
			Text:    "P",
			BBox:    newBBox(72, 700, 540, 714),
			Role:    BlockRole{Kind: RoleParagraph},
			PageNum: 1,
		},
	}
}

func TestMarkdown_RoundTrip(t *testing.T) {
	meta := MarkdownMeta{SourceHash: "abc"}
	doc := BlocksToMarkdown(sampleBlocks(), meta)

	blocks, gotMeta := MarkdownToBlocks(doc)
	require.Len(t, blocks, 2)
	assert.Equal(t, "abc", gotMeta.SourceHash)

	for i, want := range sampleBlocks() {
		assert.Equal(t, want.Text, blocks[i].Text)
		assert.Equal(t, want.Role, blocks[i].Role)
		assert.Equal(t, want.PageNum, blocks[i].PageNum)
		assert.InDelta(t, want.BBox.X1, blocks[i].BBox.X1, 0.1)
		assert.InDelta(t, want.BBox.Y1, blocks[i].BBox.Y1, 0.1)
		assert.InDelta(t, want.BBox.X2, blocks[i].BBox.X2, 0.1)
		assert.InDelta(t, want.BBox.Y2, blocks[i].BBox.Y2, 0.1)
	}
}

func TestMarkdown_FrontmatterCarriesDocumentMetadata(t *testing.T) {
	meta := MarkdownMeta{SourceHash: "abc", Title: "Report", Author: "A. Researcher"}
	doc := BlocksToMarkdown(sampleBlocks(), meta)

	_, gotMeta := MarkdownToBlocks(doc)
	assert.Equal(t, "Report", gotMeta.Title)
	assert.Equal(t, "A. Researcher", gotMeta.Author)
}

func TestMarkdown_Idempotence(t *testing.T) {
	doc := BlocksToMarkdown(sampleBlocks(), MarkdownMeta{SourceHash: "abc"})

	blocks1, meta1 := MarkdownToBlocks(doc)
	doc1 := BlocksToMarkdown(blocks1, meta1)

	blocks2, meta2 := MarkdownToBlocks(doc1)
	doc2 := BlocksToMarkdown(blocks2, meta2)

	assert.Equal(t, doc1, doc2)
}

func TestMarkdown_SynthesizesBBoxWhenMetadataMissing(t *testing.T) {
	doc := "# A heading\n\nA paragraph of text.\n"
	blocks, _ := MarkdownToBlocks(doc)

	require.Len(t, blocks, 2)
	assert.Equal(t, BlockRole{Kind: RoleHeading, Level: 1}, blocks[0].Role)
	assert.Equal(t, 1, blocks[0].PageNum)
	assert.True(t, blocks[0].BBox.Y1 < blocks[0].BBox.Y2)
	assert.True(t, blocks[1].BBox.Y2 <= blocks[0].BBox.Y1, "second block sits below the first")
}

func TestMarkdown_PendingRoleOverridesElementRole(t *testing.T) {
	doc := "<!-- goidev:page=2 bbox=1.0,2.0,3.0,4.0 role=citation -->\n" +
		"A plain paragraph-looking line.\n"
	blocks, _ := MarkdownToBlocks(doc)

	require.Len(t, blocks, 1)
	assert.Equal(t, BlockRole{Kind: RoleCitation}, blocks[0].Role)
	assert.Equal(t, 2, blocks[0].PageNum)
	assert.Equal(t, newBBox(1.0, 2.0, 3.0, 4.0), blocks[0].BBox)
}

func TestCache_ValidAfterSaveInvalidAfterChange(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(srcPath, []byte("%PDF-1.4\noriginal bytes\n%%EOF"), 0o644))

	sidecarPath := filepath.Join(dir, "doc.goidev.md")
	hash, err := HashFile(srcPath)
	require.NoError(t, err)

	require.NoError(t, SaveMarkdown(sampleBlocks(), MarkdownMeta{SourceHash: hash}, sidecarPath))
	assert.True(t, IsCacheValid(srcPath, sidecarPath))

	require.NoError(t, os.WriteFile(srcPath, []byte("%PDF-1.4\nchanged bytes\n%%EOF"), 0o644))
	assert.False(t, IsCacheValid(srcPath, sidecarPath))
}

func TestSidecarPath_IsDeterministic(t *testing.T) {
	p1, err := SidecarPath("/tmp/some/doc.pdf")
	require.NoError(t, err)
	p2, err := SidecarPath("/tmp/some/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Contains(t, p1, "doc.pdf.goidev.md")
}
