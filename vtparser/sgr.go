package vtparser

import "github.com/rizonesoft/Console3/grid"

// handleSGR applies Select Graphic Rendition parameters, including
// colon-separated sub-parameters for extended underline style and
// 256/true-color selection per ISO 8613-6.
func (t *Terminal) handleSGR(params []csiParam) {
	if len(params) == 0 {
		t.currentAttrs = grid.Attrs{}
		t.currentFg = grid.DefaultFg()
		t.currentBg = grid.DefaultBg()
		return
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch p.value {
		case 0:
			t.currentAttrs = grid.Attrs{}
			t.currentFg = grid.DefaultFg()
			t.currentBg = grid.DefaultBg()
		case 1:
			t.currentAttrs.Bold = true
		case 3:
			t.currentAttrs.Italic = true
		case 4:
			t.currentAttrs.Underline = underlineStyleFromSub(p.subs)
		case 5, 6:
			t.currentAttrs.Blink = true
		case 7:
			t.currentAttrs.Reverse = true
		case 8:
			t.currentAttrs.Conceal = true
		case 9:
			t.currentAttrs.Strikethrough = true
		case 22:
			t.currentAttrs.Bold = false
		case 23:
			t.currentAttrs.Italic = false
		case 24:
			t.currentAttrs.Underline = grid.UnderlineNone
		case 25:
			t.currentAttrs.Blink = false
		case 27:
			t.currentAttrs.Reverse = false
		case 28:
			t.currentAttrs.Conceal = false
		case 29:
			t.currentAttrs.Strikethrough = false
		case 39:
			t.currentFg = grid.DefaultFg()
		case 49:
			t.currentBg = grid.DefaultBg()
		case 38:
			color, consumed := parseExtendedColor(params[i+1:])
			t.currentFg = color
			i += consumed
		case 48:
			color, consumed := parseExtendedColor(params[i+1:])
			t.currentBg = color
			i += consumed
		default:
			switch {
			case p.value >= 30 && p.value <= 37:
				t.currentFg = grid.IndexedColor(uint8(p.value - 30))
			case p.value >= 90 && p.value <= 97:
				t.currentFg = grid.IndexedColor(uint8(p.value - 90 + 8))
			case p.value >= 40 && p.value <= 47:
				t.currentBg = grid.IndexedColor(uint8(p.value - 40))
			case p.value >= 100 && p.value <= 107:
				t.currentBg = grid.IndexedColor(uint8(p.value - 100 + 8))
			}
		}
	}
}

// underlineStyleFromSub maps SGR 4 and its colon sub-parameter (4:0
// none, 4:1 single, 4:2 double, 4:3 curly) to an UnderlineStyle; a bare
// SGR 4 with no sub-parameter means single underline.
func underlineStyleFromSub(subs []int) grid.UnderlineStyle {
	if len(subs) < 2 {
		return grid.UnderlineSingle
	}
	switch subs[1] {
	case 0:
		return grid.UnderlineNone
	case 2:
		return grid.UnderlineDouble
	case 3:
		return grid.UnderlineCurly
	default:
		return grid.UnderlineSingle
	}
}

// parseExtendedColor handles the two forms of 38/48: colon
// sub-parameters on the same param (38:5:n or 38:2:r:g:b), or the
// legacy semicolon-separated form (38;5;n or 38;2;r;g;b) spread across
// subsequent params, returning the number of additional top-level
// params consumed in the legacy form.
func parseExtendedColor(rest []csiParam) (grid.Color, int) {
	if len(rest) == 0 {
		return grid.DefaultFg(), 0
	}
	first := rest[0]
	if len(first.subs) >= 2 {
		switch first.subs[0] {
		case 5:
			return grid.IndexedColor(uint8(first.subs[1])), 0
		case 2:
			if len(first.subs) >= 4 {
				return grid.RGBColor(uint8(first.subs[1]), uint8(first.subs[2]), uint8(first.subs[3])), 0
			}
		}
		return grid.DefaultFg(), 0
	}

	switch first.value {
	case 5:
		if len(rest) >= 2 {
			return grid.IndexedColor(uint8(rest[1].value)), 1
		}
	case 2:
		if len(rest) >= 4 {
			return grid.RGBColor(uint8(rest[1].value), uint8(rest[2].value), uint8(rest[3].value)), 3
		}
	}
	return grid.DefaultFg(), 0
}
