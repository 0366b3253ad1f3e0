/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

// locaTable is the Index to Location (loca) table (§4.D): numGlyphs+1 byte
// offsets into glyf, the extra trailing entry giving the length of the last
// glyph's data by subtraction.
type locaTable struct {
	offsetsShort []offset16 // present when indexToLocFormat == 0; value*2 is the byte offset.
	offsetsLong  []offset32 // present when indexToLocFormat == 1.
	short        bool
}

func parseLocaTable(r *byteReader, numGlyphs int, indexToLocFormat int16) (*locaTable, error) {
	if indexToLocFormat < 0 || indexToLocFormat > 1 {
		return nil, errRangeCheck
	}

	t := &locaTable{short: indexToLocFormat == 0}
	if t.short {
		if err := r.readSlice(&t.offsetsShort, numGlyphs+1); err != nil {
			return nil, err
		}
		return t, nil
	}

	if err := r.readSlice(&t.offsetsLong, numGlyphs+1); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(t.offsetsLong); i++ {
		if t.offsetsLong[i+1] < t.offsetsLong[i] {
			return nil, errRangeCheck
		}
	}
	return t, nil
}

// GlyphRange returns the [start, end) byte range of glyph `gid` within glyf.
// start == end indicates an empty glyph (§4.D, §4.E "S1 — Empty glyph").
func (t *locaTable) GlyphRange(gid int) (start, end int64) {
	if t.short {
		return 2 * int64(t.offsetsShort[gid]), 2 * int64(t.offsetsShort[gid+1])
	}
	return int64(t.offsetsLong[gid]), int64(t.offsetsLong[gid+1])
}
