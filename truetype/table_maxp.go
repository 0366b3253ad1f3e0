/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

// maxpTable is the Maximum Profile (maxp) table (§4.B). numGlyphs drives
// every glyph-indexed pass and maxComponentDepth bounds the composite-glyph
// recursion guard; the remaining fields are parsed but not used.
type maxpTable struct {
	version   fixed
	numGlyphs uint16

	maxPoints             uint16
	maxContours           uint16
	maxCompositePoints    uint16
	maxCompositeContours  uint16
	maxZones              uint16
	maxTwilightPoints     uint16
	maxStorage            uint16
	maxFunctionDefs       uint16
	maxInstructionDefs    uint16
	maxStackElements      uint16
	maxSizeOfInstructions uint16
	maxComponentElements  uint16
	maxComponentDepth     uint16
}

func parseMaxpTable(r *byteReader) (*maxpTable, error) {
	t := &maxpTable{}
	if err := r.read(&t.version, &t.numGlyphs); err != nil {
		return nil, err
	}

	// Version 0.5 fonts (CFF-outline, out of this parser's scope) carry
	// only version+numGlyphs; the extended fields below require 1.0.
	if t.version < 0x00010000 {
		return t, nil
	}

	if err := r.read(&t.maxPoints, &t.maxContours, &t.maxCompositePoints, &t.maxCompositeContours); err != nil {
		return nil, err
	}
	if err := r.read(&t.maxZones, &t.maxTwilightPoints, &t.maxStorage,
		&t.maxFunctionDefs, &t.maxInstructionDefs); err != nil {
		return nil, err
	}
	return t, r.read(&t.maxStackElements, &t.maxSizeOfInstructions,
		&t.maxComponentElements, &t.maxComponentDepth)
}
