// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSentences_SplitsOnTerminators(t *testing.T) {
	got := ExtractSentences("Hello world. This is a test! Is it working?")
	assert.Equal(t, []string{"Hello world.", "This is a test!", "Is it working?"}, got)
}

func TestExtractSentences_FallsBackToWholeText(t *testing.T) {
	got := ExtractSentences("no terminal punctuation here")
	assert.Equal(t, []string{"no terminal punctuation here"}, got)
}

func TestExtractSentences_EmptyInput(t *testing.T) {
	assert.Empty(t, ExtractSentences(""))
	assert.Empty(t, ExtractSentences("   "))
}

func TestTokenizeWords(t *testing.T) {
	got := TokenizeWords("Hello, world-wide web v2.0!")
	assert.Equal(t, []string{"Hello", "world", "wide", "web", "v2", "0"}, got)
}

func TestBaseForm_StemsSingleWords(t *testing.T) {
	assert.Equal(t, "run", BaseForm("running"))
	assert.Equal(t, "run", BaseForm("Running!"))
}

func TestBaseForm_PhrasesAreNotStemmed(t *testing.T) {
	assert.Equal(t, "quick brown fox", BaseForm("Quick, brown fox!"))
}

func TestSentenceForWord_FindsContainingSentence(t *testing.T) {
	text := "Dr. Smith went home. The quick brown fox jumps over the lazy dog."
	got, ok := SentenceForWord(text, "fox")
	assert.True(t, ok)
	assert.Equal(t, "The quick brown fox jumps over the lazy dog.", got)
}

func TestSentenceForWord_PhraseMatchesSubstring(t *testing.T) {
	text := "The report covers machine learning basics. It is short."
	got, ok := SentenceForWord(text, "machine learning")
	assert.True(t, ok)
	assert.Equal(t, "The report covers machine learning basics.", got)
}

func TestSentenceForWord_NotFound(t *testing.T) {
	_, ok := SentenceForWord("A short sentence.", "elephant")
	assert.False(t, ok)
}

func TestSentenceForWord_EmptyTargetIsNotFound(t *testing.T) {
	_, ok := SentenceForWord("A short sentence.", "   ")
	assert.False(t, ok)
}
