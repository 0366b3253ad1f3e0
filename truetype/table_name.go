/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/kv01/ttf-parser/internal/ttflog"
)

// MaxNameID is the highest nameID the legacy name_table projection keeps
// (§4.B); nameIDs beyond this are still available via NameRecords.
const MaxNameID = 24

// nameTable is the Naming table (name) (§4.B).
type nameTable struct {
	format       uint16
	count        uint16
	stringOffset offset16
	records      []nameRecord
}

// NameRecord is a raw, un-decoded name-table entry, exposed so a caller can
// apply correct per-encoding decoding instead of the legacy Latin-1
// projection (§9 "expose raw bytes and (platformID, encodingID)").
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Raw        []byte
}

// Decoded applies DefaultNameDecode to this record's own (platformID,
// encodingID), giving a correct decoding instead of the legacy Latin-1
// projection NameTable carries.
func (r NameRecord) Decoded() string {
	return DefaultNameDecode(r.PlatformID, r.EncodingID, r.Raw)
}

func parseNameTable(r *byteReader, tr tableRecord) (*nameTable, error) {
	t := &nameTable{}
	if err := r.read(&t.format, &t.count, &t.stringOffset); err != nil {
		return nil, err
	}
	if t.format > 1 {
		ttflog.Log.Debugf("name: unsupported format %d", t.format)
		return nil, errRangeCheck
	}

	type rawRecord struct {
		platformID, encodingID, languageID, nameID uint16
		length                                      uint16
		offset                                      offset16
	}
	raw := make([]rawRecord, t.count)
	for i := range raw {
		rr := &raw[i]
		if err := r.read(&rr.platformID, &rr.encodingID, &rr.languageID, &rr.nameID, &rr.length, &rr.offset); err != nil {
			return nil, err
		}
	}

	if t.format == 1 {
		var langTagCount uint16
		if err := r.read(&langTagCount); err != nil {
			return nil, err
		}
		for i := 0; i < int(langTagCount); i++ {
			var length uint16
			var off offset16
			if err := r.read(&length, &off); err != nil {
				return nil, err
			}
		}
	}

	for _, rr := range raw {
		if int(t.stringOffset)+int(rr.offset)+int(rr.length) > int(tr.length) {
			ttflog.Log.Debugf("name: string offset outside table (nameID %d)", rr.nameID)
			return nil, errRangeCheck
		}
		if err := r.Seek(int64(tr.offset) + int64(t.stringOffset) + int64(rr.offset)); err != nil {
			return nil, err
		}
		var data []byte
		if err := r.readBytes(&data, int(rr.length)); err != nil {
			return nil, err
		}
		t.records = append(t.records, nameRecord{
			platformID: rr.platformID,
			encodingID: rr.encodingID,
			languageID: rr.languageID,
			nameID:     rr.nameID,
			data:       data,
		})
	}

	return t, nil
}

type nameRecord struct {
	platformID, encodingID, languageID, nameID uint16
	data                                        []byte
}

// legacyDecode implements the source parser's byte-compatible heuristic
// (§4.B): if the raw string's first byte is zero, treat it as UTF-16BE and
// keep only the low byte of each 16-bit unit (a lossy Latin-1 projection).
// Otherwise the bytes are used as-is.
func legacyDecode(raw []byte) string {
	if len(raw) == 0 || raw[0] != 0 {
		return string(raw)
	}
	n := len(raw) / 2
	buf := make([]byte, n)
	for j := 0; j < n; j++ {
		buf[j] = raw[j*2+1]
	}
	return string(buf)
}

// DefaultNameDecode decodes a name record properly using its
// (platformID, encodingID), for callers that want more than the legacy
// Latin-1 projection (§9 open question on name-table encoding). Pass it to
// WithNameDecoder, or call NameRecord.Decoded, to opt into it.
func DefaultNameDecode(platformID, encodingID uint16, raw []byte) string {
	switch platformID {
	case 1: // Macintosh, encodingID 0 is Roman for virtually all fonts in the wild.
		out := make([]rune, 0, len(raw))
		for _, b := range raw {
			out = append(out, charmap.Macintosh.DecodeByte(b))
		}
		return string(out)
	case 0, 3: // Unicode / Windows: UTF-16BE.
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		decoded, err := dec.Bytes(raw)
		if err != nil {
			ttflog.Log.Debugf("name: UTF-16BE decode failed, falling back to legacy: %v", err)
			return legacyDecode(raw)
		}
		return string(decoded)
	default:
		return legacyDecode(raw)
	}
}
