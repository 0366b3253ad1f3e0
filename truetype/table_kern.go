/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import "github.com/kv01/ttf-parser/internal/ttflog"

// kerningTable is the legacy format-0 kern table (§4.F): pair adjustments
// keyed by (left<<16)|right, both glyph ids.
type kerningTable map[uint32]int16

func kerningKey(left, right uint16) uint32 {
	return uint32(left)<<16 | uint32(right)
}

// parseKernTable decodes every format-0 subtable it finds, tolerating and
// skipping subtables with an unsupported subVersion (§4.F).
func parseKernTable(r *byteReader) (kerningTable, error) {
	var version, numSubtables uint16
	if err := r.read(&version, &numSubtables); err != nil {
		return nil, err
	}
	if version != 0 {
		ttflog.Log.Debugf("kern: unsupported table version %d", version)
		return kerningTable{}, nil
	}

	t := make(kerningTable)
	for i := uint16(0); i < numSubtables; i++ {
		subStart := r.Offset()

		var subVersion, subLength, coverage, numPairs uint16
		if err := r.read(&subVersion, &subLength, &coverage); err != nil {
			return nil, err
		}
		if subVersion != 0 {
			ttflog.Log.Debugf("kern: skipping subtable %d with unsupported version %d", i, subVersion)
			if err := r.Seek(subStart + int64(subLength)); err != nil {
				return nil, err
			}
			continue
		}

		if err := r.read(&numPairs); err != nil {
			return nil, err
		}
		if err := r.Skip(3 * 2); err != nil { // searchRange, entrySelector, rangeShift
			return nil, err
		}

		for p := uint16(0); p < numPairs; p++ {
			var left, right uint16
			var value int16
			if err := r.read(&left, &right, &value); err != nil {
				return nil, err
			}
			t[kerningKey(left, right)] = value
		}

		if err := r.Seek(subStart + int64(subLength)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// GetKerningOffset returns the kerning adjustment between `left` and `right`
// glyph ids, or 0 if the font has no kern entry for that pair (§4.F, S6).
func GetKerningOffset(f *FontData, left, right GlyphIndex) int16 {
	if f == nil {
		return 0
	}
	return f.kerningTable[kerningKey(uint16(left), uint16(right))]
}
