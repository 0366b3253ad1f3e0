/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

// hmtxTable is the Horizontal Metrics (hmtx) table (§4.D): numberOfHMetrics
// full (advanceWidth, lsb) records, followed by bare lsb values for any
// remaining glyphs, which all share the last full record's advance width.
type hmtxTable struct {
	hMetrics         []longHorMetric
	leftSideBearings []int16
}

type longHorMetric struct {
	advanceWidth uint16
	lsb          int16
}

func parseHmtxTable(r *byteReader, numGlyphs int, numberOfHMetrics int) (*hmtxTable, error) {
	t := &hmtxTable{}
	for i := 0; i < numberOfHMetrics; i++ {
		var m longHorMetric
		if err := r.read(&m.advanceWidth, &m.lsb); err != nil {
			return nil, err
		}
		t.hMetrics = append(t.hMetrics, m)
	}

	lsbLen := numGlyphs - numberOfHMetrics
	if lsbLen < 0 {
		return nil, errRangeCheck
	}
	if err := r.readSlice(&t.leftSideBearings, lsbLen); err != nil {
		return nil, err
	}
	return t, nil
}

// AdvanceWidth returns the advance width for glyph `gid` (§4.D): glyphs at
// or beyond numberOfHMetrics reuse the last explicit advance width.
func (t *hmtxTable) AdvanceWidth(gid int) uint16 {
	if gid < len(t.hMetrics) {
		return t.hMetrics[gid].advanceWidth
	}
	if len(t.hMetrics) == 0 {
		return 0
	}
	return t.hMetrics[len(t.hMetrics)-1].advanceWidth
}

// LeftSideBearing returns the left side bearing for glyph `gid`.
func (t *hmtxTable) LeftSideBearing(gid int) int16 {
	if gid < len(t.hMetrics) {
		return t.hMetrics[gid].lsb
	}
	idx := gid - len(t.hMetrics)
	if idx < 0 || idx >= len(t.leftSideBearings) {
		return 0
	}
	return t.leftSideBearings[idx]
}
