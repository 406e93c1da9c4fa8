// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// MarkdownMeta is the frontmatter carried alongside a serialized block list.
type MarkdownMeta struct {
	SourceHash string `yaml:"source_hash,omitempty"`
	Title      string `yaml:"title,omitempty"`
	Author     string `yaml:"author,omitempty"`
}

const (
	synthStartY     = 700.0
	synthX1         = 72.0
	synthX2         = 540.0
	headingHeight   = 20.0
	headingGap      = 30.0
	paragraphHeight = 14.0
	paragraphGap    = 20.0
)

var metaCommentRe = regexp.MustCompile(`^<!--\s*goidev:page=(\d+)\s+bbox=([-\d.]+),([-\d.]+),([-\d.]+),([-\d.]+)\s+role=(\w+)\s*-->$`)

// BlocksToMarkdown serializes blocks into the frontmatter+body layout
// described by the cache format: a `---` delimited YAML frontmatter, then
// one metadata comment plus body per block.
func BlocksToMarkdown(blocks []Block, meta MarkdownMeta) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	if meta.SourceHash != "" || meta.Title != "" || meta.Author != "" {
		enc, err := yaml.Marshal(meta)
		if err == nil {
			sb.Write(enc)
		}
	}
	sb.WriteString("---\n\n")

	for _, b := range blocks {
		writeBlock(&sb, b)
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, b Block) {
	fmt.Fprintf(sb, "<!-- goidev:page=%d bbox=%.1f,%.1f,%.1f,%.1f role=%s -->\n",
		b.PageNum, b.BBox.X1, b.BBox.Y1, b.BBox.X2, b.BBox.Y2, b.Role.String())

	switch b.Role.Kind {
	case RoleHeading:
		switch b.Role.Level {
		case 1:
			fmt.Fprintf(sb, "# %s\n\n", b.Text)
		case 2:
			fmt.Fprintf(sb, "## %s\n\n", b.Text)
		default:
			fmt.Fprintf(sb, "### %s\n\n", b.Text)
		}
	case RoleReference:
		fmt.Fprintf(sb, "# %s\n\n", b.Text)
	case RolePageNumber, RoleHeader, RoleFooter:
		fmt.Fprintf(sb, "<!-- %s -->\n\n", b.Text)
	case RoleFootnote:
		fmt.Fprintf(sb, "> [^note]: %s\n\n", b.Text)
	case RoleCaption:
		fmt.Fprintf(sb, "*%s*\n\n", b.Text)
	case RoleCitation:
		fmt.Fprintf(sb, "- %s\n\n", b.Text)
	case RoleAuthor:
		fmt.Fprintf(sb, "**%s**\n\n", b.Text)
	case RoleAbstract:
		fmt.Fprintf(sb, "> %s\n\n", b.Text)
	default:
		fmt.Fprintf(sb, "%s\n\n", b.Text)
	}
}

// parseState accumulates the in-progress parse of one Markdown document.
type parseState struct {
	pendingPage int
	havePending bool
	pendingBBox BBox
	pendingRole BlockRole

	synthY float64

	blocks []Block
}

// MarkdownToBlocks parses a Markdown cache document back into blocks and
// its frontmatter. Parsing is lenient: frontmatter is optional, unknown
// lines are ignored, and a block missing explicit metadata gets a
// synthesized page/bbox instead of failing.
func MarkdownToBlocks(doc string) ([]Block, MarkdownMeta) {
	meta, body := parseFrontmatter(doc)

	st := &parseState{synthY: synthStartY}
	lines := strings.Split(body, "\n")

	var currentText strings.Builder
	var currentRole BlockRole
	haveCurrent := false

	flush := func() {
		if !haveCurrent {
			return
		}
		text := strings.TrimSpace(currentText.String())
		if text != "" {
			st.finishBlock(text, currentRole)
		}
		currentText.Reset()
		haveCurrent = false
	}

	for _, raw := range lines {
		line := raw

		if m := metaCommentRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			st.handleMetadataComment(m)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		role, text, ok := parseBodyLine(trimmed)
		if !ok {
			continue
		}
		if !haveCurrent {
			haveCurrent = true
			currentRole = role
		}
		if currentText.Len() > 0 {
			currentText.WriteByte(' ')
		}
		currentText.WriteString(text)
	}
	flush()

	return st.blocks, meta
}

func (st *parseState) handleMetadataComment(m []string) {
	st.havePending = true
	fmt.Sscanf(m[1], "%d", &st.pendingPage)
	var x1, y1, x2, y2 float64
	fmt.Sscanf(m[2], "%g", &x1)
	fmt.Sscanf(m[3], "%g", &y1)
	fmt.Sscanf(m[4], "%g", &x2)
	fmt.Sscanf(m[5], "%g", &y2)
	st.pendingBBox = BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
	st.pendingRole = roleFromString(m[6])
}

// finishBlock flushes accumulated text into a Block, preferring a pending
// metadata comment's role over the element-implied one, and synthesizing
// page/bbox when no metadata comment preceded the block.
func (st *parseState) finishBlock(text string, elementRole BlockRole) {
	role := elementRole
	page := 1
	var bbox BBox
	if st.havePending {
		role = st.pendingRole
		page = st.pendingPage
		bbox = st.pendingBBox
	} else {
		bbox = st.synthesizeBBox(role)
	}
	st.blocks = append(st.blocks, Block{
		Text:    text,
		BBox:    bbox,
		Role:    role,
		PageNum: page,
	})
	st.havePending = false
}

func (st *parseState) synthesizeBBox(role BlockRole) BBox {
	height := paragraphHeight
	gap := paragraphGap
	if role.Kind == RoleHeading {
		height = headingHeight
		gap = headingGap
	}
	y2 := st.synthY
	y1 := y2 - height
	st.synthY = y1 - gap
	return BBox{X1: synthX1, Y1: y1, X2: synthX2, Y2: y2}
}

// parseBodyLine infers the element-implied role and strips its Markdown
// marker, for use when no metadata comment is present.
func parseBodyLine(line string) (BlockRole, string, bool) {
	switch {
	case strings.HasPrefix(line, "<!--") && strings.HasSuffix(line, "-->"):
		return BlockRole{Kind: RoleHeader}, strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "<!--"), "-->")), true
	case strings.HasPrefix(line, "# "):
		return BlockRole{Kind: RoleHeading, Level: 1}, strings.TrimPrefix(line, "# "), true
	case strings.HasPrefix(line, "## "):
		return BlockRole{Kind: RoleHeading, Level: 2}, strings.TrimPrefix(line, "## "), true
	case strings.HasPrefix(line, "### "):
		return BlockRole{Kind: RoleHeading, Level: 3}, strings.TrimPrefix(line, "### "), true
	case strings.HasPrefix(line, "> [^note]: "):
		return BlockRole{Kind: RoleFootnote}, strings.TrimPrefix(line, "> [^note]: "), true
	case strings.HasPrefix(line, "> "):
		return BlockRole{Kind: RoleAbstract}, strings.TrimPrefix(line, "> "), true
	case strings.HasPrefix(line, "- "):
		return BlockRole{Kind: RoleCitation}, strings.TrimPrefix(line, "- "), true
	case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
		return BlockRole{Kind: RoleAuthor}, strings.TrimSuffix(strings.TrimPrefix(line, "**"), "**"), true
	case strings.HasPrefix(line, "*") && strings.HasSuffix(line, "*"):
		return BlockRole{Kind: RoleCaption}, strings.TrimSuffix(strings.TrimPrefix(line, "*"), "*"), true
	default:
		return BlockRole{Kind: RoleParagraph}, line, true
	}
}

func parseFrontmatter(doc string) (MarkdownMeta, string) {
	const delim = "---"
	if !strings.HasPrefix(doc, delim) {
		return MarkdownMeta{}, doc
	}
	rest := doc[len(delim):]
	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return MarkdownMeta{}, doc
	}
	frontmatter := strings.TrimPrefix(rest[:end], "\n")
	body := rest[end+len("\n"+delim):]
	body = strings.TrimPrefix(body, "\n")

	var meta MarkdownMeta
	_ = yaml.Unmarshal([]byte(frontmatter), &meta)
	return meta, body
}

// SaveMarkdown writes blocks, with meta as frontmatter, to path.
func SaveMarkdown(blocks []Block, meta MarkdownMeta, path string) error {
	return os.WriteFile(path, []byte(BlocksToMarkdown(blocks, meta)), 0o644)
}

// LoadMarkdown reads and parses a Markdown cache file from path.
func LoadMarkdown(path string) ([]Block, MarkdownMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, MarkdownMeta{}, err
	}
	blocks, meta := MarkdownToBlocks(string(data))
	return blocks, meta, nil
}

// HashFile returns the hex-encoded SHA-256 of path's contents, read in
// fixed-size chunks so arbitrarily large PDFs don't need to fit in memory.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 8192)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SidecarPath returns the platform cache-directory path for source's
// Markdown sidecar, creating the containing directory if needed.
func SidecarPath(source string) (string, error) {
	dir := filepath.Join(xdg.CacheHome, "goidev", "cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(source))
	hash16 := hex.EncodeToString(sum[:])[:16]
	base := filepath.Base(source)
	return filepath.Join(dir, fmt.Sprintf("%s_%s.goidev.md", hash16, base)), nil
}

// IsCacheValid reports whether sidecar's recorded source_hash matches
// source's current contents.
func IsCacheValid(source, sidecar string) bool {
	wantHash, err := HashFile(source)
	if err != nil {
		return false
	}
	data, err := os.ReadFile(sidecar)
	if err != nil {
		return false
	}
	meta, _ := parseFrontmatter(string(data))
	return meta.SourceHash != "" && meta.SourceHash == wantHash
}
