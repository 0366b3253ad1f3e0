/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/kv01/ttf-parser/internal/ttflog"
)

// Validate re-reads a TrueType font from `rs` and checks its table checksums
// against the values recorded in its table directory and head.checksumAdjustment,
// without decoding any glyph geometry. It is an opt-in integrity check, not
// part of Parse/ParseData.
func Validate(rs io.ReadSeeker) error {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return err
	}
	var full bytes.Buffer
	if _, err := io.Copy(&full, rs); err != nil {
		return err
	}
	data := full.Bytes()
	if len(data) == 0 {
		return ErrEmptyFont
	}

	r := newByteReader(bytes.NewReader(data))
	ot, err := parseOffsetTable(r)
	if err != nil {
		return err
	}
	records, err := parseTableRecords(r, int(ot.numTables))
	if err != nil {
		return err
	}

	headRec, err := records.requireTable(r, "head")
	if err != nil {
		return err
	}
	head, err := parseHeadTable(r)
	if err != nil {
		return err
	}

	ttflog.Log.Debug("truetype: validating whole-file checksum")
	adjusted := make([]byte, len(data))
	copy(adjusted, data)
	hoff := int(headRec.offset)
	if hoff+12 > len(adjusted) {
		return errRangeCheck
	}
	adjusted[hoff+8] = 0
	adjusted[hoff+9] = 0
	adjusted[hoff+10] = 0
	adjusted[hoff+11] = 0

	adjustment := 0xB1B0AFBA - tableChecksum(adjusted)
	if head.checksumAdjustment != adjustment {
		return errors.New("ttf-parser: file checksum mismatch")
	}

	ttflog.Log.Debug("truetype: validating per-table checksums")
	for _, tr := range records.list {
		if int(tr.offset)+int(tr.length) > len(data) {
			return errRangeCheck
		}
		b := make([]byte, tr.length)
		copy(b, data[tr.offset:int(tr.offset)+int(tr.length)])
		if tr.tableTag.String() == "head" {
			if len(b) < 12 {
				return errors.New("ttf-parser: head table too short")
			}
			b[8], b[9], b[10], b[11] = 0, 0, 0, 0
		}
		if checksum := tableChecksum(b); checksum != tr.checksum {
			ttflog.Log.Debugf("truetype: table %q checksum mismatch (got %d, want %d)", tr.tableTag.String(), checksum, tr.checksum)
			return errors.New("ttf-parser: table checksum mismatch")
		}
	}

	return nil
}

// tableChecksum sums `data` as big-endian uint32 words, zero-padding a
// trailing partial word, the checksum algorithm every sfnt table directory
// entry (and the whole file) is validated against.
func tableChecksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:min(i+4, len(data))])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}
