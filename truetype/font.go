/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import "github.com/kv01/ttf-parser/internal/ttflog"

// FontMetaData holds the handful of head/hhea fields a rendering consumer
// needs beyond individual glyph metrics (§3, "FontMetaData").
type FontMetaData struct {
	UnitsPerEm uint16
	Ascender   int16
	Descender  int16
	LineGap    int16
}

// Glyph is one decoded glyph: its geometry plus the metrics and metadata a
// renderer needs to place and draw it (§3, "Glyph").
type Glyph struct {
	Character       uint32
	GlyphIndex      GlyphIndex
	NumContours     int16
	PathList        []Path
	AdvanceWidth    uint16
	LeftSideBearing int16
	BoundingBox     [4]int16
	NumTriangles    uint32
}

// GlyphMap is the code-point -> glyph id mapping resolved from cmap. It
// preserves cmap's segment-then-codepoint iteration order rather than a Go
// map's unspecified order, matching the "ordered mapping" contract (§3, §9).
type GlyphMap struct {
	byChar map[uint32]GlyphIndex
	chars  []uint32
}

func newGlyphMap() *GlyphMap {
	return &GlyphMap{byChar: make(map[uint32]GlyphIndex)}
}

func (g *GlyphMap) set(c uint32, gid GlyphIndex) {
	if _, exists := g.byChar[c]; !exists {
		g.chars = append(g.chars, c)
	}
	g.byChar[c] = gid
}

// Get returns the glyph id mapped to code point `c`, if any.
func (g *GlyphMap) Get(c uint32) (GlyphIndex, bool) {
	gid, ok := g.byChar[c]
	return gid, ok
}

// Len returns the number of code points in the map.
func (g *GlyphMap) Len() int { return len(g.chars) }

// CodePoints returns the mapped code points in cmap iteration order.
func (g *GlyphMap) CodePoints() []uint32 {
	out := make([]uint32, len(g.chars))
	copy(out, g.chars)
	return out
}

// FontData is the fully decoded result of parsing a TrueType font (§3,
// "FontData"). It owns every entity it references; nothing is shared with
// the input buffer after Parse/ParseData returns.
type FontData struct {
	NameTable    [MaxNameID + 1]string
	FullFontName string
	nameRecords  []NameRecord

	glyphMap *GlyphMap
	Glyphs   map[GlyphIndex]*Glyph

	kerningTable kerningTable

	MetaData FontMetaData
}

// GlyphMap returns the code-point -> glyph id mapping resolved from cmap.
func (f *FontData) GlyphMap() *GlyphMap { return f.glyphMap }

// Glyph returns the decoded glyph for `gid`, if it exists.
func (f *FontData) Glyph(gid GlyphIndex) (*Glyph, bool) {
	g, ok := f.Glyphs[gid]
	return g, ok
}

// NameRecords returns the raw, un-decoded name table entries, so a caller
// can apply encoding-correct decoding instead of the legacy projection used
// to populate NameTable (§9).
func (f *FontData) NameRecords() []NameRecord {
	out := make([]NameRecord, len(f.nameRecords))
	copy(out, f.nameRecords)
	return out
}

// options collects the functional options accepted by ParseData.
type options struct {
	maxComponentDepth int
	nameDecode        func(platformID, encodingID uint16, raw []byte) string
	hasMaxDepth       bool
}

// Option configures a ParseData call.
type Option func(*options)

// WithMaxComponentDepth overrides maxp's maxComponentDepth as the bound on
// composite glyph recursion (§4.E.2, §9).
func WithMaxComponentDepth(depth int) Option {
	return func(o *options) {
		o.maxComponentDepth = depth
		o.hasMaxDepth = true
	}
}

// WithNameDecoder overrides the legacy Latin-1 projection used to populate
// FontData.NameTable with a caller-supplied decoder keyed by a name record's
// own (platformID, encodingID) (§9, "open question: name table text
// decoding"). Pass DefaultNameDecode to opt into correct Mac Roman/UTF-16BE
// decoding instead of the legacy heuristic used when this option is not
// given.
func WithNameDecoder(decode func(platformID, encodingID uint16, raw []byte) string) Option {
	return func(o *options) {
		o.nameDecode = decode
	}
}

// parseFontData drives the five cooperating passes (§2) over `r` and
// assembles the resulting FontData.
func parseFontData(r *byteReader, opts options) (*FontData, error) {
	offsetTable, err := parseOffsetTable(r)
	if err != nil {
		return nil, err
	}
	records, err := parseTableRecords(r, int(offsetTable.numTables))
	if err != nil {
		return nil, err
	}

	if _, err := records.requireTable(r, "head"); err != nil {
		return nil, err
	}
	head, err := parseHeadTable(r)
	if err != nil {
		return nil, err
	}

	if _, err := records.requireTable(r, "maxp"); err != nil {
		return nil, err
	}
	maxp, err := parseMaxpTable(r)
	if err != nil {
		return nil, err
	}
	if maxp.numGlyphs == 0 {
		return nil, ErrEmptyFont
	}

	if _, err := records.requireTable(r, "hhea"); err != nil {
		return nil, err
	}
	hhea, err := parseHheaTable(r)
	if err != nil {
		return nil, err
	}

	nameRec, err := records.requireTable(r, "name")
	if err != nil {
		return nil, err
	}
	name, err := parseNameTable(r, nameRec)
	if err != nil {
		return nil, err
	}

	cmapRec, err := records.requireTable(r, "cmap")
	if err != nil {
		return nil, err
	}
	cmap, err := parseCmapTable(r, int64(cmapRec.offset))
	if err != nil {
		return nil, err
	}

	if _, err := records.requireTable(r, "loca"); err != nil {
		return nil, err
	}
	loca, err := parseLocaTable(r, int(maxp.numGlyphs), head.indexToLocFormat)
	if err != nil {
		return nil, err
	}

	if _, err := records.requireTable(r, "hmtx"); err != nil {
		return nil, err
	}
	hmtx, err := parseHmtxTable(r, int(maxp.numGlyphs), int(hhea.numberOfHMetrics))
	if err != nil {
		return nil, err
	}

	glyfRec, err := records.requireTable(r, "glyf")
	if err != nil {
		return nil, err
	}

	maxComponentDepth := int(maxp.maxComponentDepth)
	if opts.hasMaxDepth {
		maxComponentDepth = opts.maxComponentDepth
	}

	numGlyphs := int(maxp.numGlyphs)
	p := &glyfParser{
		r:                 r,
		glyfOffset:        int64(glyfRec.offset),
		glyfLength:        int64(glyfRec.length),
		loca:              loca,
		hmtx:              hmtx,
		numGlyphs:         numGlyphs,
		maxComponentDepth: maxComponentDepth,
		glyphs:            make(map[GlyphIndex]*Glyph, numGlyphs),
		loaded:            make([]bool, numGlyphs),
		loading:           make([]bool, numGlyphs),
	}
	for gid := 0; gid < numGlyphs; gid++ {
		if err := p.parseGlyph(GlyphIndex(gid), 0); err != nil {
			ttflog.Log.Debugf("glyf: glyph %d failed to parse: %v, leaving empty", gid, err)
			p.glyphs[GlyphIndex(gid)] = &Glyph{
				GlyphIndex:      GlyphIndex(gid),
				AdvanceWidth:    hmtx.AdvanceWidth(gid),
				LeftSideBearing: hmtx.LeftSideBearing(gid),
			}
		}
	}

	glyphMap := newGlyphMap()
	for _, pair := range cmap.orderedPairs {
		glyphMap.set(pair.char, GlyphIndex(pair.glyph))
	}
	for gid, g := range p.glyphs {
		if c, ok := cmap.reverse[uint16(gid)]; ok {
			g.Character = c
		}
	}

	kt := kerningTable{}
	if _, has, err := records.seekToTable(r, "kern"); err != nil {
		return nil, err
	} else if has {
		kt, err = parseKernTable(r)
		if err != nil {
			return nil, err
		}
	}

	fd := &FontData{
		glyphMap:     glyphMap,
		Glyphs:       p.glyphs,
		kerningTable: kt,
		MetaData: FontMetaData{
			UnitsPerEm: head.unitsPerEm,
			Ascender:   int16(hhea.ascender),
			Descender:  int16(hhea.descender),
			LineGap:    int16(hhea.lineGap),
		},
	}
	// Records are applied in table order and later ones overwrite earlier
	// ones for the same nameID, so a font carrying both a Macintosh and a
	// Windows record for e.g. nameID 1 ends up with whichever comes last.
	for _, rr := range name.records {
		fd.nameRecords = append(fd.nameRecords, NameRecord{
			PlatformID: rr.platformID,
			EncodingID: rr.encodingID,
			LanguageID: rr.languageID,
			NameID:     rr.nameID,
			Raw:        rr.data,
		})
		if rr.nameID <= MaxNameID {
			if opts.nameDecode != nil {
				fd.NameTable[rr.nameID] = opts.nameDecode(rr.platformID, rr.encodingID, rr.data)
			} else {
				fd.NameTable[rr.nameID] = legacyDecode(rr.data)
			}
		}
	}
	fd.FullFontName = fd.NameTable[1] + " " + fd.NameTable[2]

	return fd, nil
}
