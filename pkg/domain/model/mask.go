package model

import "strconv"

// MaskPlaceholder replaces every number of a masked cell
const MaskPlaceholder = "***"

// Maskable is anything carrying an upstream privacy suppression flag
type Maskable interface {
	IsMasked() bool
}

// IsMasked reports whether m must be suppressed. The flag is set upstream;
// the reporting threshold is not evaluated here.
func IsMasked(m Maskable) bool {
	if m == nil {
		return false
	}
	return m.IsMasked()
}

// MaskValue formats value for display, or the placeholder when masked
func MaskValue(value int, masked bool) string {
	if masked {
		return MaskPlaceholder
	}
	return strconv.Itoa(value)
}

// MaskPercent formats a percentage for display, or the placeholder when masked
func MaskPercent(percent int, masked bool) string {
	if masked {
		return MaskPlaceholder
	}
	return strconv.Itoa(percent) + " %"
}

// StyleDirective tells the renderer how to present a row
type StyleDirective struct {
	Opacity     float64 `json:"opacity"`
	Grayscale   bool    `json:"grayscale"`
	Interactive bool    `json:"interactive"`
}

// MaskStyle returns the presentation directive for a masked or visible row
func MaskStyle(masked bool) StyleDirective {
	if masked {
		return StyleDirective{Opacity: 0.4, Grayscale: true, Interactive: false}
	}
	return StyleDirective{Opacity: 1, Grayscale: false, Interactive: true}
}

// MaskedPercentages is the neutral single segment drawn for a masked row
func MaskedPercentages() PercentageTuple {
	return PercentageTuple{{Category: CategoryMasked, Percent: 100}}
}
