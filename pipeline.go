// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"context"
	"fmt"

	"github.com/goidev/pdfcore/logger"
)

// ExtractBlocks opens path, runs the full C1-C6 pipeline, and returns the
// reflowed, classified Block list. Unlike Extract/ExtractAsStream, which
// produce flat strings page-by-page, this drives the whole document
// through ParsePDF + Reflow in one call: the reflow engine's first pass
// needs every page's lines before classifying any of them.
func (p *processor) ExtractBlocks(ctx context.Context, path string) ([]Block, error) {
	logger.Debug(fmt.Sprintf("Starting block extraction: path=%s", path), true)

	if err := p.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)

	_, r, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	lines, err := ParsePDF(r)
	if err != nil {
		if p.cfg.ParsingMode == BestEffort {
			logger.Warn(fmt.Sprintf("BestEffort: parse error ignored: path=%s err=%v", path, err))
			return nil, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	blocks := Reflow(lines)
	logger.Debug(fmt.Sprintf("Block extraction completed: path=%s blocks=%d", path, len(blocks)), true)
	return blocks, nil
}

// ExtractMarkdown returns the Markdown rendering of path's blocks. When
// Config.MarkdownCacheEnabled is set and a valid Markdown sidecar already
// exists for path, it is loaded instead of re-running the pipeline;
// otherwise the pipeline runs, and with the cache enabled the result is
// written to the sidecar for next time.
func (p *processor) ExtractMarkdown(ctx context.Context, path string) (string, error) {
	var sidecar string
	if p.cfg.MarkdownCacheEnabled {
		var err error
		sidecar, err = SidecarPath(path)
		if err == nil && IsCacheValid(path, sidecar) {
			logger.Debug(fmt.Sprintf("Markdown cache hit: path=%s sidecar=%s", path, sidecar), true)
			blocks, meta, loadErr := LoadMarkdown(sidecar)
			if loadErr == nil {
				return BlocksToMarkdown(blocks, meta), nil
			}
			logger.Warn(fmt.Sprintf("Markdown cache unreadable, reparsing: path=%s err=%v", path, loadErr))
		}
	}

	blocks, err := p.ExtractBlocks(ctx, path)
	if err != nil {
		return "", err
	}

	hash, err := HashFile(path)
	if err != nil {
		logger.Debug(fmt.Sprintf("Hashing source failed, writing cache without source_hash: path=%s err=%v", path, err), true)
	}
	meta := MarkdownMeta{SourceHash: hash}
	if _, r, openErr := Open(path); openErr == nil {
		if docMeta, metaErr := r.Metadata(); metaErr == nil {
			meta.Title = docMeta.Title
			meta.Author = docMeta.Author
		}
	}
	doc := BlocksToMarkdown(blocks, meta)

	if sidecar != "" {
		if err := SaveMarkdown(blocks, meta, sidecar); err != nil {
			logger.Debug(fmt.Sprintf("Failed to write Markdown sidecar: path=%s err=%v", sidecar, err), true)
		}
	}
	return doc, nil
}
