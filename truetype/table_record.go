/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import "github.com/kv01/ttf-parser/internal/ttflog"

// tableRecord is one entry of the table directory: a 4-byte tag, a checksum
// (ignored by the core, see §4.B), and the table's offset/length within the
// file.
type tableRecord struct {
	tableTag tag
	checksum uint32
	offset   offset32
	length   uint32
}

func (tr *tableRecord) read(r *byteReader) error {
	return r.read(&tr.tableTag, &tr.checksum, &tr.offset, &tr.length)
}

// tableRecords indexes the table directory by tag for O(1) lookup.
type tableRecords struct {
	list  []tableRecord
	trMap map[string]tableRecord
}

func parseTableRecords(r *byteReader, numTables int) (*tableRecords, error) {
	trs := &tableRecords{trMap: make(map[string]tableRecord, numTables)}
	for i := 0; i < numTables; i++ {
		var rec tableRecord
		if err := rec.read(r); err != nil {
			return nil, err
		}
		trs.list = append(trs.list, rec)
		trs.trMap[rec.tableTag.String()] = rec
	}
	return trs, nil
}

// seekToTable seeks `r` to the start of table `name` if present, returning
// its directory record and whether it was found.
func (trs *tableRecords) seekToTable(r *byteReader, name string) (tr tableRecord, has bool, err error) {
	tr, has = trs.trMap[name]
	if !has {
		return tr, false, nil
	}
	if err := r.Seek(int64(tr.offset)); err != nil {
		return tr, false, err
	}
	return tr, true, nil
}

// requireTable is like seekToTable but fails with a MissingTableError when
// the table is absent, for the tags §4.B declares required.
func (trs *tableRecords) requireTable(r *byteReader, name string) (tableRecord, error) {
	tr, has, err := trs.seekToTable(r, name)
	if err != nil {
		return tr, err
	}
	if !has {
		ttflog.Log.Debugf("required table missing: %q", name)
		return tr, &MissingTableError{Tag: name}
	}
	return tr, nil
}
