/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

// headTable is the font header (head) table (§4.B). Only unitsPerEm and
// indexToLocFormat feed the rest of the parser; the remaining fields are
// parsed for completeness but otherwise unused by the core.
type headTable struct {
	majorVersion       uint16
	minorVersion       uint16
	fontRevision       fixed
	checksumAdjustment uint32
	magicNumber        uint32 // 0x5F0F3CF5
	flags              uint16
	unitsPerEm         uint16
	created            longdatetime
	modified           longdatetime
	xMin               int16
	yMin               int16
	xMax               int16
	yMax               int16
	macStyle           uint16
	lowestRecPPEM      uint16
	fontDirectionHint  int16
	indexToLocFormat   int16 // 0: short (halved uint16) offsets, 1: long (uint32) offsets.
	glyphDataFormat    int16
}

func parseHeadTable(r *byteReader) (*headTable, error) {
	t := &headTable{}
	if err := r.read(&t.majorVersion, &t.minorVersion, &t.fontRevision); err != nil {
		return nil, err
	}
	if err := r.read(&t.checksumAdjustment, &t.magicNumber); err != nil {
		return nil, err
	}
	if err := r.read(&t.flags, &t.unitsPerEm, &t.created, &t.modified); err != nil {
		return nil, err
	}
	if err := r.read(&t.xMin, &t.yMin, &t.xMax, &t.yMax); err != nil {
		return nil, err
	}
	return t, r.read(&t.macStyle, &t.lowestRecPPEM, &t.fontDirectionHint,
		&t.indexToLocFormat, &t.glyphDataFormat)
}
