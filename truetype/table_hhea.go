/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

// hheaTable is the horizontal header (hhea) table (§4.B). numberOfHMetrics
// tells the hmtx reader how many (advanceWidth, lsb) pairs are stored
// explicitly before the table degenerates to bare lsb values.
type hheaTable struct {
	majorVersion        uint16
	minorVersion        uint16
	ascender            fword
	descender           fword
	lineGap             fword
	advanceWidthMax     ufword
	minLeftSideBearing  fword
	minRightSideBearing fword
	xMaxExtent          fword
	caretSlopeRise      int16
	caretSlopeRun       int16
	caretOffset         int16
	metricDataFormat    int16
	numberOfHMetrics    uint16
}

func parseHheaTable(r *byteReader) (*hheaTable, error) {
	t := &hheaTable{}
	if err := r.read(&t.majorVersion, &t.minorVersion); err != nil {
		return nil, err
	}
	if err := r.read(&t.ascender, &t.descender, &t.lineGap); err != nil {
		return nil, err
	}
	if err := r.read(&t.advanceWidthMax, &t.minLeftSideBearing, &t.minRightSideBearing, &t.xMaxExtent); err != nil {
		return nil, err
	}
	if err := r.read(&t.caretSlopeRise, &t.caretSlopeRun, &t.caretOffset); err != nil {
		return nil, err
	}
	if err := r.Skip(4 * 2); err != nil { // 4 reserved int16 fields
		return nil, err
	}
	return t, r.read(&t.metricDataFormat, &t.numberOfHMetrics)
}
