// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

// PageGeometry describes the physical extent of a page in device points, as
// taken from its /MediaBox.
type PageGeometry struct {
	OriginX, OriginY float64
	Width, Height    float64
}

// defaultPageGeometry is US Letter, used whenever a MediaBox cannot be
// resolved.
func defaultPageGeometry() PageGeometry {
	return PageGeometry{OriginX: 0, OriginY: 0, Width: 612, Height: 792}
}

// relativeY maps a device-space y coordinate to [0,1] within the page,
// bottom to top.
func (g PageGeometry) relativeY(y float64) float64 {
	if g.Height == 0 {
		return 0
	}
	return (y - g.OriginY) / g.Height
}

// isHeaderZone reports whether y falls in the top band of the page.
func (g PageGeometry) isHeaderZone(y float64) bool {
	return g.relativeY(y) > 0.92
}

// isFooterZone reports whether y falls in the bottom band of the page.
func (g PageGeometry) isFooterZone(y float64) bool {
	return g.relativeY(y) < 0.08
}

// extractGeometry reads the page's /MediaBox, walking /Parent if the page
// dictionary itself doesn't carry one, and falls back to Letter on any
// failure to resolve four numbers.
func extractGeometry(pageDict Value) PageGeometry {
	v := pageDict
	for i := 0; i < 32 && v.Kind() == Dict; i++ {
		box := v.Key("MediaBox")
		if box.Kind() == Array && box.Len() == 4 {
			llx, ok1 := numberValue(box.Index(0))
			lly, ok2 := numberValue(box.Index(1))
			urx, ok3 := numberValue(box.Index(2))
			ury, ok4 := numberValue(box.Index(3))
			if ok1 && ok2 && ok3 && ok4 {
				if urx < llx {
					llx, urx = urx, llx
				}
				if ury < lly {
					lly, ury = ury, lly
				}
				return PageGeometry{OriginX: llx, OriginY: lly, Width: urx - llx, Height: ury - lly}
			}
		}
		parent := v.Key("Parent")
		if parent.Kind() != Dict {
			break
		}
		v = parent
	}
	return defaultPageGeometry()
}

// numberValue reads a Value that may be either an Integer or a Real.
func numberValue(v Value) (float64, bool) {
	switch v.Kind() {
	case Integer:
		return float64(v.Int64()), true
	case Real:
		return v.Float64(), true
	default:
		return 0, false
	}
}
