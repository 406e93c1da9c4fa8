// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

var sentenceRe = regexp.MustCompile(`(?s).*?[.!?](?:\s+|$)`)

// ExtractSentences splits text into sentences using a pragmatic
// regex-based splitter, falling back to the whole trimmed text as one
// sentence when nothing matches.
func ExtractSentences(text string) []string {
	var sentences []string
	for _, m := range sentenceRe.FindAllString(text, -1) {
		if s := strings.TrimSpace(m); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		if t := strings.TrimSpace(text); t != "" {
			sentences = append(sentences, t)
		}
	}
	return sentences
}

// TokenizeWords splits text into Unicode word tokens, treating runs of
// letters/digits/marks as one token and discarding punctuation and
// whitespace between them.
func TokenizeWords(text string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}

func stripPunct(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// BaseForm returns the canonical form of a word or short phrase: phrases
// (anything containing whitespace) are lowercased and stripped of
// punctuation; single words are additionally run through the
// Snowball-English stemmer.
func BaseForm(s string) string {
	cleaned := strings.ToLower(strings.TrimSpace(stripPunct(s)))
	if strings.ContainsAny(cleaned, " \t\n") {
		return cleaned
	}
	if cleaned == "" {
		return cleaned
	}
	return english.Stem(cleaned, false)
}

// SentenceForWord finds the sentence within blockText that contains target
// (case-insensitive). Phrases are matched as a substring; single words are
// matched by token equality. Returns ok=false if target is empty after
// cleaning or no sentence contains it.
func SentenceForWord(blockText, target string) (string, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(target))
	if cleaned == "" {
		return "", false
	}
	sentences := ExtractSentences(blockText)

	if strings.ContainsAny(cleaned, " \t\n") {
		for _, s := range sentences {
			if strings.Contains(strings.ToLower(s), cleaned) {
				return s, true
			}
		}
		return "", false
	}

	for _, s := range sentences {
		for _, tok := range TokenizeWords(s) {
			if strings.ToLower(tok) == cleaned {
				return s, true
			}
		}
	}
	return "", false
}
