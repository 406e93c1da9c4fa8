// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

// aglSubset is a deliberately partial Adobe Glyph List: ligatures, curly
// quotes and dashes, a handful of common symbols, and the Latin-1
// supplement letters — enough to resolve the /Differences arrays that show
// up in real-world PDFs without carrying the full multi-thousand-entry AGL.
var aglSubset = map[string]string{
	"ff": "ﬀ", "fi": "ﬁ", "fl": "ﬂ", "ffi": "ﬃ", "ffl": "ﬄ",

	"quoteleft": "‘", "quoteright": "’",
	"quotedblleft": "“", "quotedblright": "”",
	"quotesinglbase": "‚", "quotedblbase": "„",

	"endash": "–", "emdash": "—", "hyphen": "-",
	"ellipsis": "…", "bullet": "•", "space": " ",

	"copyright": "©", "registered": "®", "trademark": "™",

	"Agrave": "À", "Aacute": "Á", "Acircumflex": "Â", "Atilde": "Ã", "Adieresis": "Ä", "Aring": "Å",
	"AE": "Æ", "Ccedilla": "Ç",
	"Egrave": "È", "Eacute": "É", "Ecircumflex": "Ê", "Edieresis": "Ë",
	"Igrave": "Ì", "Iacute": "Í", "Icircumflex": "Î", "Idieresis": "Ï",
	"Eth": "Ð", "Ntilde": "Ñ",
	"Ograve": "Ò", "Oacute": "Ó", "Ocircumflex": "Ô", "Otilde": "Õ", "Odieresis": "Ö",
	"Oslash": "Ø",
	"Ugrave": "Ù", "Uacute": "Ú", "Ucircumflex": "Û", "Udieresis": "Ü",
	"Yacute": "Ý", "Thorn": "Þ", "germandbls": "ß",

	"agrave": "à", "aacute": "á", "acircumflex": "â", "atilde": "ã", "adieresis": "ä", "aring": "å",
	"ae": "æ", "ccedilla": "ç",
	"egrave": "è", "eacute": "é", "ecircumflex": "ê", "edieresis": "ë",
	"igrave": "ì", "iacute": "í", "icircumflex": "î", "idieresis": "ï",
	"eth": "ð", "ntilde": "ñ",
	"ograve": "ò", "oacute": "ó", "ocircumflex": "ô", "otilde": "õ", "odieresis": "ö",
	"oslash": "ø",
	"ugrave": "ù", "uacute": "ú", "ucircumflex": "û", "udieresis": "ü",
	"yacute": "ý", "thorn": "þ", "ydieresis": "ÿ",
}

// glyphNameToUnicode resolves a /Differences glyph name through the AGL
// subset. Unknown names report ok=false so the caller can leave the slot
// unmapped rather than writing a wrong guess.
func glyphNameToUnicode(n string) (string, bool) {
	s, ok := aglSubset[n]
	return s, ok
}
