/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

// offsetTable is the 12-byte sfnt offset (header) table at the start of a
// TrueType file (§4.B). searchRange/entrySelector/rangeShift are read to
// advance the cursor correctly but are not otherwise used by the core.
type offsetTable struct {
	sfntVersion   uint32
	numTables     uint16
	searchRange   uint16
	entrySelector uint16
	rangeShift    uint16
}

func parseOffsetTable(r *byteReader) (*offsetTable, error) {
	ot := &offsetTable{}
	if err := r.read(&ot.sfntVersion, &ot.numTables, &ot.searchRange); err != nil {
		return nil, err
	}
	if err := r.read(&ot.entrySelector, &ot.rangeShift); err != nil {
		return nil, err
	}
	return ot, nil
}
