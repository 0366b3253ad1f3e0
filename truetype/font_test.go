/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u32be(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// fontBuilder assembles a minimal but structurally real sfnt file out of
// already-encoded table bodies, computing the table directory for you.
type fontBuilder struct {
	order  []string
	tables map[string][]byte
}

func newFontBuilder() *fontBuilder {
	return &fontBuilder{tables: make(map[string][]byte)}
}

func (b *fontBuilder) add(tag string, data []byte) *fontBuilder {
	if _, ok := b.tables[tag]; !ok {
		b.order = append(b.order, tag)
	}
	b.tables[tag] = data
	return b
}

func (b *fontBuilder) build() []byte {
	numTables := len(b.order)
	headerLen := 12 + 16*numTables

	var directory bytes.Buffer
	offset := headerLen
	for _, tag := range b.order {
		data := b.tables[tag]
		directory.WriteString(tag)
		directory.Write(u32be(0)) // checksum, ignored by this parser
		directory.Write(u32be(uint32(offset)))
		directory.Write(u32be(uint32(len(data))))
		offset += len(data)
	}

	var out bytes.Buffer
	out.Write(u32be(0x00010000)) // sfntVersion
	out.Write(u16be(uint16(numTables)))
	out.Write(u16be(0)) // searchRange
	out.Write(u16be(0)) // entrySelector
	out.Write(u16be(0)) // rangeShift
	out.Write(directory.Bytes())
	for _, tag := range b.order {
		out.Write(b.tables[tag])
	}
	return out.Bytes()
}

// triangleGlyph encodes a simple glyph identical to the S2 scenario: three
// on-curve points at (0,0), (100,0), (50,100), padded to an even length so
// the surrounding loca offsets stay 2-byte aligned.
func triangleGlyph() []byte {
	var buf bytes.Buffer
	buf.Write(i16be(1))                        // numContours
	buf.Write(i16be(0))                        // xMin
	buf.Write(i16be(0))                        // yMin
	buf.Write(i16be(100))                      // xMax
	buf.Write(i16be(100))                      // yMax
	buf.Write(u16be(2))                        // contourEnd[0]
	buf.Write(u16be(0))                        // numInstructions
	buf.Write([]byte{0x01, 0x01, 0x01})        // flags: all on-curve, full-width deltas
	buf.Write(i16be(0))                        // x delta point0 -> 0
	buf.Write(i16be(100))                      // x delta point1 -> 100
	buf.Write(i16be(-50))                      // x delta point2 -> 50
	buf.Write(i16be(0))                        // y delta point0 -> 0
	buf.Write(i16be(0))                        // y delta point1 -> 0
	buf.Write(i16be(100))                      // y delta point2 -> 100
	buf.WriteByte(0)                           // padding to even length
	return buf.Bytes()
}

func buildHeadTable(unitsPerEm uint16, indexToLocFormat int16) []byte {
	var buf bytes.Buffer
	buf.Write(u16be(1))            // majorVersion
	buf.Write(u16be(0))            // minorVersion
	buf.Write(u32be(0x00010000))   // fontRevision
	buf.Write(u32be(0))            // checksumAdjustment
	buf.Write(u32be(0x5F0F3CF5))   // magicNumber
	buf.Write(u16be(0))            // flags
	buf.Write(u16be(unitsPerEm))   // unitsPerEm
	buf.Write(make([]byte, 8))     // created
	buf.Write(make([]byte, 8))     // modified
	buf.Write(i16be(0))            // xMin
	buf.Write(i16be(0))            // yMin
	buf.Write(i16be(100))          // xMax
	buf.Write(i16be(100))          // yMax
	buf.Write(u16be(0))            // macStyle
	buf.Write(u16be(0))            // lowestRecPPEM
	buf.Write(i16be(0))            // fontDirectionHint
	buf.Write(i16be(indexToLocFormat))
	buf.Write(i16be(0)) // glyphDataFormat
	return buf.Bytes()
}

func buildMaxpTable(numGlyphs uint16, maxComponentDepth uint16) []byte {
	var buf bytes.Buffer
	buf.Write(u32be(0x00010000)) // version 1.0
	buf.Write(u16be(numGlyphs))
	buf.Write(u16be(4)) // maxPoints
	buf.Write(u16be(1)) // maxContours
	buf.Write(u16be(0)) // maxCompositePoints
	buf.Write(u16be(0)) // maxCompositeContours
	buf.Write(u16be(1)) // maxZones
	buf.Write(u16be(0)) // maxTwilightPoints
	buf.Write(u16be(0)) // maxStorage
	buf.Write(u16be(0)) // maxFunctionDefs
	buf.Write(u16be(0)) // maxInstructionDefs
	buf.Write(u16be(0)) // maxStackElements
	buf.Write(u16be(0)) // maxSizeOfInstructions
	buf.Write(u16be(0)) // maxComponentElements
	buf.Write(u16be(maxComponentDepth))
	return buf.Bytes()
}

func buildHheaTable(ascender, descender, lineGap int16, numberOfHMetrics uint16) []byte {
	var buf bytes.Buffer
	buf.Write(u16be(1)) // majorVersion
	buf.Write(u16be(0)) // minorVersion
	buf.Write(i16be(ascender))
	buf.Write(i16be(descender))
	buf.Write(i16be(lineGap))
	buf.Write(u16be(600)) // advanceWidthMax
	buf.Write(i16be(0))   // minLeftSideBearing
	buf.Write(i16be(0))   // minRightSideBearing
	buf.Write(i16be(100)) // xMaxExtent
	buf.Write(i16be(1))   // caretSlopeRise
	buf.Write(i16be(0))   // caretSlopeRun
	buf.Write(i16be(0))   // caretOffset
	buf.Write(make([]byte, 8)) // 4 reserved int16 fields
	buf.Write(i16be(0))        // metricDataFormat
	buf.Write(u16be(numberOfHMetrics))
	return buf.Bytes()
}

func buildHmtxTable(numGlyphs int) []byte {
	var buf bytes.Buffer
	for i := 0; i < numGlyphs; i++ {
		buf.Write(u16be(uint16(500 + i*10)))
		buf.Write(i16be(0))
	}
	return buf.Bytes()
}

// buildLocaAndGlyf lays out `numGlyphs` glyphs where `emptyGid` has no
// outline (loca[emptyGid] == loca[emptyGid+1]) and every other glyph is
// triangleGlyph(); it returns the encoded loca (short format) and glyf
// tables.
func buildLocaAndGlyf(numGlyphs int, emptyGid int) (loca, glyf []byte) {
	var glyfBuf bytes.Buffer
	var offsets []uint16
	for gid := 0; gid < numGlyphs; gid++ {
		offsets = append(offsets, uint16(glyfBuf.Len()/2))
		if gid != emptyGid {
			glyfBuf.Write(triangleGlyph())
		}
	}
	offsets = append(offsets, uint16(glyfBuf.Len()/2))

	var locaBuf bytes.Buffer
	for _, off := range offsets {
		locaBuf.Write(u16be(off))
	}
	return locaBuf.Bytes(), glyfBuf.Bytes()
}

func buildCmapTable(startCode, endCode uint16, idDelta int16) []byte {
	var sub bytes.Buffer
	sub.Write(u16be(4)) // format
	sub.Write(u16be(0)) // length placeholder, fixed up below
	sub.Write(u16be(0)) // language
	sub.Write(u16be(4)) // segCountX2 (segCount = 2: one real segment + terminator)
	sub.Write(u16be(0)) // searchRange
	sub.Write(u16be(0)) // entrySelector
	sub.Write(u16be(0)) // rangeShift
	sub.Write(u16be(endCode))
	sub.Write(u16be(0xFFFF))
	sub.Write(u16be(0)) // reservedPad
	sub.Write(u16be(startCode))
	sub.Write(u16be(0xFFFF))
	sub.Write(i16be(idDelta))
	sub.Write(i16be(1))
	sub.Write(u16be(0)) // idRangeOffset[0]
	sub.Write(u16be(0)) // idRangeOffset[1]

	subBytes := sub.Bytes()
	binary.BigEndian.PutUint16(subBytes[2:4], uint16(len(subBytes)))

	var buf bytes.Buffer
	buf.Write(u16be(0)) // version
	buf.Write(u16be(1)) // numTables
	buf.Write(u16be(3)) // platformID
	buf.Write(u16be(1)) // encodingID
	buf.Write(u32be(uint32(4 + 8)))
	buf.Write(subBytes)
	return buf.Bytes()
}

// nameTableEntry is one name record to encode, in the order it should
// appear in the table; duplicate nameIDs are allowed so callers can build
// fixtures covering the last-writer-wins overwrite rule.
type nameTableEntry struct {
	platformID uint16
	encodingID uint16
	nameID     uint16
	value      string
}

func buildNameTable(entries ...nameTableEntry) []byte {
	headerLen := 6 + 12*len(entries)
	var strBuf bytes.Buffer
	type placed struct {
		nameTableEntry
		offset uint16
		length uint16
	}
	var placedEntries []placed
	for _, e := range entries {
		placedEntries = append(placedEntries, placed{e, uint16(strBuf.Len()), uint16(len(e.value))})
		strBuf.WriteString(e.value)
	}

	var buf bytes.Buffer
	buf.Write(u16be(0)) // format
	buf.Write(u16be(uint16(len(entries))))
	buf.Write(u16be(uint16(headerLen))) // stringOffset
	for _, p := range placedEntries {
		buf.Write(u16be(p.platformID))
		buf.Write(u16be(p.encodingID))
		buf.Write(u16be(0)) // languageID
		buf.Write(u16be(p.nameID))
		buf.Write(u16be(p.length))
		buf.Write(u16be(p.offset))
	}
	buf.Write(strBuf.Bytes())
	return buf.Bytes()
}

func buildKernTable(left, right uint16, value int16) []byte {
	var sub bytes.Buffer
	sub.Write(u16be(0)) // subVersion
	sub.Write(u16be(0)) // subLength placeholder
	sub.Write(u16be(0)) // coverage
	sub.Write(u16be(1)) // numPairs
	sub.Write(u16be(0))
	sub.Write(u16be(0))
	sub.Write(u16be(0))
	sub.Write(u16be(left))
	sub.Write(u16be(right))
	sub.Write(i16be(value))
	subBytes := sub.Bytes()
	binary.BigEndian.PutUint16(subBytes[2:4], uint16(len(subBytes)))

	var buf bytes.Buffer
	buf.Write(u16be(0)) // version
	buf.Write(u16be(1)) // numSubtables
	buf.Write(subBytes)
	return buf.Bytes()
}

// buildTestFont assembles a 7-glyph font: glyph 5 is empty (S1), glyphs
// 1 and 2 are reachable from cmap via 'A' and 'B', and kern has a single
// (1,2) pair (S6-flavored, using this font's own glyph ids).
func buildTestFont(t *testing.T) []byte {
	t.Helper()
	const numGlyphs = 7
	loca, glyf := buildLocaAndGlyf(numGlyphs, 5)

	b := newFontBuilder()
	b.add("head", buildHeadTable(1000, 0))
	b.add("maxp", buildMaxpTable(numGlyphs, 0))
	b.add("hhea", buildHheaTable(800, -200, 90, numGlyphs))
	b.add("hmtx", buildHmtxTable(numGlyphs))
	b.add("loca", loca)
	b.add("glyf", glyf)
	b.add("cmap", buildCmapTable('A', 'B', int16(1)-int16('A')))
	b.add("name", buildNameTable(
		nameTableEntry{platformID: 1, encodingID: 0, nameID: 1, value: "Test"},
		nameTableEntry{platformID: 1, encodingID: 0, nameID: 2, value: "Regular"},
	))
	b.add("kern", buildKernTable(1, 2, -80))
	return b.build()
}

func TestParseDataFullPipeline(t *testing.T) {
	data := buildTestFont(t)

	fd, err := ParseData(data)
	require.NoError(t, err)
	require.NotNil(t, fd)

	// Invariant 3: glyph_map entries resolve to real glyphs.
	gidA, ok := fd.GlyphMap().Get('A')
	require.True(t, ok)
	assert.EqualValues(t, 1, gidA)
	gidB, ok := fd.GlyphMap().Get('B')
	require.True(t, ok)
	assert.EqualValues(t, 2, gidB)

	// Invariant 6: reverse map round-trip.
	gA, ok := fd.Glyph(gidA)
	require.True(t, ok)
	assert.EqualValues(t, 'A', gA.Character)

	// S1 — empty glyph.
	g5, ok := fd.Glyph(5)
	require.True(t, ok)
	assert.Empty(t, g5.PathList)
	assert.EqualValues(t, 0, g5.NumTriangles)
	assert.EqualValues(t, 500+5*10, g5.AdvanceWidth)

	// Every other glyph decoded the S2 triangle.
	g1, ok := fd.Glyph(1)
	require.True(t, ok)
	require.Len(t, g1.PathList, 1)
	assert.Len(t, g1.PathList[0], 3)
	assert.EqualValues(t, 3, g1.NumTriangles)

	// Invariant 2 (glyph_index identity).
	for gid, g := range fd.Glyphs {
		assert.EqualValues(t, gid, g.GlyphIndex)
	}

	assert.Equal(t, "Test Regular", fd.FullFontName)
	assert.Equal(t, "Test", fd.NameTable[1])
	assert.Equal(t, "Regular", fd.NameTable[2])

	assert.EqualValues(t, 1000, fd.MetaData.UnitsPerEm)
	assert.EqualValues(t, 800, fd.MetaData.Ascender)
	assert.EqualValues(t, -200, fd.MetaData.Descender)

	// S6 — kerning lookup.
	assert.EqualValues(t, -80, GetKerningOffset(fd, 1, 2))
	assert.EqualValues(t, 0, GetKerningOffset(fd, 2, 1))
}

// Invariant 7: parsing the same bytes twice yields deep-equal results.
func TestParseDataIsIdempotent(t *testing.T) {
	data := buildTestFont(t)

	fd1, err := ParseData(data)
	require.NoError(t, err)
	fd2, err := ParseData(data)
	require.NoError(t, err)

	assert.Equal(t, fd1.NameTable, fd2.NameTable)
	assert.Equal(t, fd1.FullFontName, fd2.FullFontName)
	assert.Equal(t, fd1.MetaData, fd2.MetaData)
	assert.Equal(t, fd1.Glyphs, fd2.Glyphs)
	assert.Equal(t, fd1.GlyphMap().CodePoints(), fd2.GlyphMap().CodePoints())
}

func TestParseDataEmptyBufferFails(t *testing.T) {
	_, err := ParseData(nil)
	assert.ErrorIs(t, err, ErrEmptyFont)
}

func TestParseDataMissingRequiredTable(t *testing.T) {
	data := buildTestFont(t)

	// Corrupt the table directory's "glyf" tag so requireTable can't find it.
	tag := []byte("glyf")
	idx := bytes.Index(data, tag)
	require.GreaterOrEqual(t, idx, 0)
	corrupted := append([]byte(nil), data...)
	copy(corrupted[idx:idx+4], "zzzz")

	_, err := ParseData(corrupted)
	require.Error(t, err)
	var missing *MissingTableError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "glyf", missing.Tag)
}

func TestWithMaxComponentDepthOverride(t *testing.T) {
	data := buildTestFont(t)
	fd, err := ParseData(data, WithMaxComponentDepth(0))
	require.NoError(t, err)
	require.NotNil(t, fd)
}

func TestWithNameDecoderOverride(t *testing.T) {
	data := buildTestFont(t)
	fd, err := ParseData(data, WithNameDecoder(func(platformID, encodingID uint16, raw []byte) string {
		return "custom:" + string(raw)
	}))
	require.NoError(t, err)
	assert.Equal(t, "custom:Test", fd.NameTable[1])
}

// TestParseDataNameTableLastWriterWins builds a font carrying two nameID=1
// records, a Macintosh one followed by a Windows one, and checks that the
// later record wins. Real fonts commonly carry both a Macintosh (platform 1)
// and a Windows (platform 3) record for the same nameID; the table is
// applied in order and the later record must overwrite the earlier one.
func TestParseDataNameTableLastWriterWins(t *testing.T) {
	const numGlyphs = 7
	loca, glyf := buildLocaAndGlyf(numGlyphs, 5)

	b := newFontBuilder()
	b.add("head", buildHeadTable(1000, 0))
	b.add("maxp", buildMaxpTable(numGlyphs, 0))
	b.add("hhea", buildHheaTable(800, -200, 90, numGlyphs))
	b.add("hmtx", buildHmtxTable(numGlyphs))
	b.add("loca", loca)
	b.add("glyf", glyf)
	b.add("cmap", buildCmapTable('A', 'B', int16(1)-int16('A')))
	b.add("name", buildNameTable(
		nameTableEntry{platformID: 1, encodingID: 0, nameID: 1, value: "MacName"},
		nameTableEntry{platformID: 3, encodingID: 1, nameID: 1, value: "WinName"},
	))
	b.add("kern", buildKernTable(1, 2, -80))
	data := b.build()

	fd, err := ParseData(data)
	require.NoError(t, err)
	assert.Equal(t, "WinName", fd.NameTable[1])
}

func TestNameRecordDecodedUsesDefaultNameDecode(t *testing.T) {
	data := buildTestFont(t)
	fd, err := ParseData(data)
	require.NoError(t, err)

	var found bool
	for _, rr := range fd.NameRecords() {
		if rr.NameID != 1 {
			continue
		}
		found = true
		assert.Equal(t, "Test", rr.Decoded())
	}
	require.True(t, found, "expected a nameID 1 record")
}

func TestWithNameDecoderDefaultNameDecode(t *testing.T) {
	data := buildTestFont(t)
	fd, err := ParseData(data, WithNameDecoder(DefaultNameDecode))
	require.NoError(t, err)
	assert.Equal(t, "Test", fd.NameTable[1])
}
