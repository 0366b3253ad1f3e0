/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import "github.com/kv01/ttf-parser/internal/ttflog"

// cmapTable resolves the parsed Unicode code point -> glyph id map from the
// first supported subtable (§4.C). Only format 4 (Segment mapping to delta
// values) is supported, matching the source parser and its (0,3)/(3,1)
// platform preference; other formats are skipped with a diagnostic.
type cmapTable struct {
	// forward maps code point -> glyph id.
	forward map[uint32]uint16
	// reverse maps glyph id -> the last code point written to it during
	// segment iteration (§5 "last-writer-wins").
	reverse map[uint16]uint32
	// orderedPairs records every (codePoint, glyph) pair in the exact
	// segment-then-codepoint order they were decoded in, since a Go map
	// has no stable iteration order of its own (§3 "ordered mapping", §9).
	orderedPairs []cmapPair
	valid        bool
}

type cmapPair struct {
	char  uint32
	glyph uint16
}

type cmapEncodingRecord struct {
	platformID uint16
	encodingID uint16
	offset     offset32
}

func parseCmapTable(r *byteReader, cmapTableOffset int64) (*cmapTable, error) {
	if err := r.Seek(cmapTableOffset); err != nil {
		return nil, err
	}

	var version, numTables uint16
	if err := r.read(&version, &numTables); err != nil {
		return nil, err
	}

	records := make([]cmapEncodingRecord, numTables)
	for i := range records {
		if err := r.read(&records[i].platformID, &records[i].encodingID, &records[i].offset); err != nil {
			return nil, err
		}
	}

	t := &cmapTable{
		forward: make(map[uint32]uint16),
		reverse: make(map[uint16]uint32),
	}

	for _, rec := range records {
		if !isSupportedCmapEncoding(rec.platformID, rec.encodingID) {
			continue
		}

		subtableOffset := cmapTableOffset + int64(rec.offset)
		if err := r.Seek(subtableOffset); err != nil {
			return nil, err
		}

		var format, length uint16
		if err := r.read(&format, &length); err != nil {
			return nil, err
		}
		if format != 4 {
			ttflog.Log.Debugf("cmap: unsupported subtable format %d for platform (%d,%d)", format, rec.platformID, rec.encodingID)
			continue
		}

		if err := parseCmapFormat4(r, t); err != nil {
			return nil, err
		}
		t.valid = true
		break
	}

	if !t.valid {
		ttflog.Log.Debug("cmap: no valid (format 4) subtable found")
	}

	return t, nil
}

// isSupportedCmapEncoding reports whether (platformID, encodingID) is one of
// the two BMP encodings the core resolves (§4.C).
func isSupportedCmapEncoding(platformID, encodingID uint16) bool {
	return (platformID == 0 && encodingID == 3) || (platformID == 3 && encodingID == 1)
}

// parseCmapFormat4 decodes a format-4 subtable at the reader's current
// position into `t` (§4.C). Segments are walked in table order; within a
// segment, code points ascend, and later segments/points overwrite the
// reverse map per the "last writer wins" contract.
func parseCmapFormat4(r *byteReader, t *cmapTable) error {
	var language, segCountX2 uint16
	if err := r.read(&language, &segCountX2); err != nil {
		return err
	}
	if err := r.Skip(3 * 2); err != nil { // searchRange, entrySelector, rangeShift
		return err
	}

	segCount := int(segCountX2 / 2)

	var endCount []uint16
	if err := r.readSlice(&endCount, segCount); err != nil {
		return err
	}
	if err := r.Skip(2); err != nil { // reservedPad
		return err
	}
	var startCount []uint16
	if err := r.readSlice(&startCount, segCount); err != nil {
		return err
	}
	var idDelta []int16
	if err := r.readSlice(&idDelta, segCount); err != nil {
		return err
	}

	// idRangeOffset values are relative to their own storage position, so
	// remember where the array starts to resolve the glyph-array reads below.
	idRangeOffsetBase := r.Offset()
	var idRangeOffset []uint16
	if err := r.readSlice(&idRangeOffset, segCount); err != nil {
		return err
	}

	for j := 0; j < segCount; j++ {
		start, end := startCount[j], endCount[j]
		if start > end {
			continue
		}
		for c := uint32(start); c <= uint32(end); c++ {
			var glyph uint16
			if idRangeOffset[j] == 0 {
				glyph = uint16(c + uint32(idDelta[j]))
			} else {
				glyphAddr := idRangeOffsetBase + int64(j*2) + int64(idRangeOffset[j]) + int64(2*(c-uint32(start)))
				if err := r.Seek(glyphAddr); err != nil {
					return err
				}
				raw, err := r.readUint16()
				if err != nil {
					return err
				}
				glyph = uint16(uint32(raw) + uint32(idDelta[j]))
			}
			t.forward[c] = glyph
			t.reverse[glyph] = c
			t.orderedPairs = append(t.orderedPairs, cmapPair{char: c, glyph: glyph})
		}
	}

	return nil
}
