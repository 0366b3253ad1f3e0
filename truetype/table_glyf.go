/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"github.com/kv01/ttf-parser/internal/transform"
	"github.com/kv01/ttf-parser/internal/ttflog"
)

// Composite component flags (§4.E.2).
const (
	flagArgsAreWords          = 0x0001
	flagArgsAreXYValues       = 0x0002
	flagWeHaveAScale          = 0x0008
	flagMoreComponents        = 0x0020
	flagWeHaveXYScale         = 0x0040
	flagWeHaveTwoByTwo        = 0x0080
	flagWeHaveInstructions    = 0x0100
	flagScaledComponentOffset = 0x0800
)

// Simple glyph point flags (§4.E.1).
const (
	pointOnCurve = 0x01
	pointXShort  = 0x02
	pointYShort  = 0x04
	pointRepeat  = 0x08
	pointXDual   = 0x10
	pointYDual   = 0x20
)

// Point is a 2D coordinate expressed in font design units (§3, "Point").
// Curve endpoints and control points are floating point because implied
// midpoints and composite transforms both introduce fractional coordinates.
type Point struct {
	X, Y float64
}

func midpoint(a, b Point) Point { return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2} }

// Curve is a single segment of a Path: either a straight line p0->p1 (with
// p2 unused for geometry but repurposed as a fan-triangulation anchor), or a
// quadratic Bezier p0->p1->p2 with p1 as the off-curve control point (§3).
type Curve struct {
	P0, P1, P2 Point
	IsCurve    bool
}

// Path is one closed contour of a glyph, or (for a composite glyph) one
// transformed contour copied from a referenced glyph.
type Path []Curve

// contourPoint is a raw decoded outline point before curve reconstruction.
type contourPoint struct {
	x, y    int16
	onCurve bool
}

// decodeGlyfHeader reads the shared 5-int16 glyph header (§4.E).
func decodeGlyfHeader(r *byteReader) (numContours int16, bbox [4]int16, glyphCenter Point, err error) {
	if err = r.read(&numContours); err != nil {
		return
	}
	var xMin, yMin, xMax, yMax int16
	if err = r.read(&xMin, &yMin, &xMax, &yMax); err != nil {
		return
	}
	bbox = [4]int16{xMin, yMin, xMax, yMax}
	glyphCenter = Point{X: float64(xMin+xMax) / 2, Y: float64(yMin+yMax) / 2}
	return
}

// decodeSimpleGlyph implements §4.E.1: flag/coordinate decoding followed by
// per-contour curve emission, including the fan-triangulation auxiliaries.
func decodeSimpleGlyph(r *byteReader, numContours int, glyphCenter Point) ([]Path, uint32, error) {
	var contourEnd []uint16
	if err := r.readSlice(&contourEnd, numContours); err != nil {
		return nil, 0, err
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = int(contourEnd[numContours-1]) + 1
	}

	var numInstructions uint16
	if err := r.read(&numInstructions); err != nil {
		return nil, 0, err
	}
	if err := r.Skip(int(numInstructions)); err != nil {
		return nil, 0, err
	}

	flags := make([]uint8, 0, numPoints)
	for len(flags) < numPoints {
		flag, err := r.readUint8()
		if err != nil {
			return nil, 0, err
		}
		flags = append(flags, flag)
		if flag&pointRepeat != 0 {
			repeatCount, err := r.readUint8()
			if err != nil {
				return nil, 0, err
			}
			for i := uint8(0); i < repeatCount && len(flags) < numPoints; i++ {
				flags = append(flags, flag)
			}
		}
	}

	points := make([]contourPoint, numPoints)
	var x int16
	for i, flag := range flags {
		xShort := flag&pointXShort != 0
		xDual := flag&pointXDual != 0
		switch {
		case xDual && !xShort:
			// x unchanged.
		case xShort:
			mag, err := r.readUint8()
			if err != nil {
				return nil, 0, err
			}
			if xDual {
				x += int16(mag)
			} else {
				x -= int16(mag)
			}
		default:
			delta, err := r.readInt16()
			if err != nil {
				return nil, 0, err
			}
			x += delta
		}
		points[i].x = x
		points[i].onCurve = flag&pointOnCurve != 0
	}
	var y int16
	for i, flag := range flags {
		yShort := flag&pointYShort != 0
		yDual := flag&pointYDual != 0
		switch {
		case yDual && !yShort:
			// y unchanged.
		case yShort:
			mag, err := r.readUint8()
			if err != nil {
				return nil, 0, err
			}
			if yDual {
				y += int16(mag)
			} else {
				y -= int16(mag)
			}
		default:
			delta, err := r.readInt16()
			if err != nil {
				return nil, 0, err
			}
			y += delta
		}
		points[i].y = y
	}

	fanCenter := Point{X: glyphCenter.X + 0.5, Y: glyphCenter.Y + 0.5}

	paths := make([]Path, numContours)
	var numTriangles uint32
	start := 0
	for j := 0; j < numContours; j++ {
		end := int(contourEnd[j]) + 1
		contour := points[start:end]
		path := decodeContour(contour, fanCenter)
		paths[j] = path
		numTriangles += uint32(len(path))
		start = end
	}
	return paths, numTriangles, nil
}

// decodeContour implements the per-step curve emission table in §4.E.1 for
// a single contour's already-decoded points.
func decodeContour(contour []contourPoint, fanCenter Point) Path {
	m := len(contour)
	if m == 0 {
		return nil
	}
	pt := func(i int) Point {
		p := contour[i%m]
		return Point{X: float64(p.x), Y: float64(p.y)}
	}
	onCurve := func(i int) bool { return contour[i%m].onCurve }

	var prevPoint Point
	if onCurve(0) {
		prevPoint = pt(0)
	} else if onCurve(m - 1) {
		prevPoint = pt(m - 1)
	} else {
		prevPoint = midpoint(pt(0), pt(m-1))
	}

	var path Path
	emitQuad := func(p0, p1, p2 Point) {
		path = append(path, Curve{P0: p0, P1: p2, P2: fanCenter, IsCurve: false})
		path = append(path, Curve{P0: p0, P1: p1, P2: p2, IsCurve: true})
	}
	emitLine := func(p0, p1 Point) {
		path = append(path, Curve{P0: p0, P1: p1, P2: fanCenter, IsCurve: false})
	}

	for k := 0; k < m; k++ {
		kOn := onCurve(k)
		k1On := onCurve(k + 1)
		switch {
		case !kOn && !k1On:
			mid := midpoint(pt(k), pt(k+1))
			emitQuad(prevPoint, pt(k), mid)
			prevPoint = mid
		case !kOn && k1On:
			emitQuad(prevPoint, pt(k), pt(k+1))
		case kOn && k1On:
			emitLine(pt(k), pt(k+1))
			prevPoint = pt(k)
		default: // kOn && !k1On
			if !onCurve(k + 2) {
				mid := midpoint(pt(k+1), pt(k+2))
				emitQuad(pt(k), pt(k+1), mid)
				prevPoint = mid
			} else {
				emitQuad(pt(k), pt(k+1), pt(k+2))
				prevPoint = pt(k)
			}
			k++
		}
	}
	return path
}

// compositeComponent is one decoded record from a composite glyph before
// its child is resolved (§4.E.2).
type compositeComponent struct {
	childGlyphIndex uint16
	m               transform.Matrix
	skip            bool
}

// decodeCompositeComponents reads all component records of a composite
// glyph. Matched-point components are unsupported: a diagnostic is logged
// and the record is marked to be skipped rather than aborting the parse.
func decodeCompositeComponents(r *byteReader) ([]compositeComponent, error) {
	var components []compositeComponent
	for {
		var flags, childGlyphIndex uint16
		if err := r.read(&flags, &childGlyphIndex); err != nil {
			return nil, err
		}

		var arg1, arg2 int16
		if flags&flagArgsAreWords != 0 {
			if err := r.read(&arg1, &arg2); err != nil {
				return nil, err
			}
		} else {
			var a1, a2 int8
			if err := r.read(&a1, &a2); err != nil {
				return nil, err
			}
			arg1, arg2 = int16(a1), int16(a2)
		}

		a, b, c, d := 1.0, 0.0, 0.0, 1.0
		switch {
		case flags&flagWeHaveTwoByTwo != 0:
			var f2a, f2b, f2c, f2d f2dot14
			if err := r.read(&f2a, &f2b, &f2c, &f2d); err != nil {
				return nil, err
			}
			a, b, c, d = f2a.Float64(), f2b.Float64(), f2c.Float64(), f2d.Float64()
		case flags&flagWeHaveXYScale != 0:
			var sx, sy f2dot14
			if err := r.read(&sx, &sy); err != nil {
				return nil, err
			}
			a, d = sx.Float64(), sy.Float64()
		case flags&flagWeHaveAScale != 0:
			var s f2dot14
			if err := r.read(&s); err != nil {
				return nil, err
			}
			a, d = s.Float64(), s.Float64()
		}

		comp := compositeComponent{childGlyphIndex: childGlyphIndex}
		if flags&flagArgsAreXYValues != 0 {
			tx, ty := float64(arg1), float64(arg2)
			if flags&flagScaledComponentOffset != 0 {
				tx *= a
				ty *= d
			}
			comp.m = transform.NewRowMajor(a, b, c, d, tx, ty)
		} else {
			ttflog.Log.Debugf("glyf: matched-point composite component (child %d) unsupported, skipping", childGlyphIndex)
			comp.skip = true
			comp.m = transform.NewRowMajor(a, b, c, d, 0, 0)
		}
		components = append(components, comp)

		if flags&flagWeHaveInstructions != 0 {
			var numInstructions uint16
			if err := r.read(&numInstructions); err != nil {
				return nil, err
			}
			if err := r.Skip(int(numInstructions)); err != nil {
				return nil, err
			}
		}

		if flags&flagMoreComponents == 0 {
			break
		}
	}
	return components, nil
}

// transformPath returns a copy of `p` with every point mapped through `m`
// (§4.E.2, "transformed copies").
func transformPath(p Path, m transform.Matrix) Path {
	out := make(Path, len(p))
	for i, c := range p {
		p0x, p0y := m.Transform(c.P0.X, c.P0.Y)
		p1x, p1y := m.Transform(c.P1.X, c.P1.Y)
		p2x, p2y := m.Transform(c.P2.X, c.P2.Y)
		out[i] = Curve{
			P0:      Point{X: p0x, Y: p0y},
			P1:      Point{X: p1x, Y: p1y},
			P2:      Point{X: p2x, Y: p2y},
			IsCurve: c.IsCurve,
		}
	}
	return out
}

// glyfParser walks glyph ids 0..numGlyphs, decoding each glyph's geometry
// and memoizing completion so composite recursion never redoes work (§4.E,
// §9 "recursive composite resolution").
type glyfParser struct {
	r *byteReader

	glyfOffset int64
	glyfLength int64

	loca *locaTable
	hmtx *hmtxTable

	numGlyphs         int
	maxComponentDepth int

	glyphs  map[GlyphIndex]*Glyph
	loaded  []bool
	loading []bool
}

// parseGlyph decodes glyph `gid` into p.glyphs, recursing into composite
// children as needed. It is idempotent: a glyph already loaded returns
// immediately. Cycles and excessive depth are diagnostics, not failures.
func (p *glyfParser) parseGlyph(gid GlyphIndex, depth int) error {
	if int(gid) >= p.numGlyphs {
		return errRangeCheck
	}
	if p.loaded[gid] {
		return nil
	}
	if p.loading[gid] {
		ttflog.Log.Debugf("glyf: cyclic composite reference at glyph %d, skipping", gid)
		return nil
	}
	if depth > p.maxComponentDepth {
		ttflog.Log.Debugf("glyf: composite depth exceeded at glyph %d", gid)
		return nil
	}

	p.loading[gid] = true
	defer func() { p.loading[gid] = false }()

	start, end := p.loca.GlyphRange(int(gid))
	g := &Glyph{
		GlyphIndex:      gid,
		AdvanceWidth:    p.hmtx.AdvanceWidth(int(gid)),
		LeftSideBearing: p.hmtx.LeftSideBearing(int(gid)),
	}

	if start == end {
		p.glyphs[gid] = g
		p.loaded[gid] = true
		return nil
	}
	if start < 0 || end > p.glyfLength || end < start {
		return errRangeCheck
	}

	if err := p.r.Seek(p.glyfOffset + start); err != nil {
		return err
	}
	numContours, bbox, glyphCenter, err := decodeGlyfHeader(p.r)
	if err != nil {
		return err
	}
	g.NumContours = numContours
	g.BoundingBox = bbox

	if numContours >= 0 {
		paths, numTriangles, err := decodeSimpleGlyph(p.r, int(numContours), glyphCenter)
		if err != nil {
			return err
		}
		g.PathList = paths
		g.NumTriangles = numTriangles
	} else {
		components, err := decodeCompositeComponents(p.r)
		if err != nil {
			return err
		}
		for _, comp := range components {
			if comp.skip {
				continue
			}
			childGid := GlyphIndex(comp.childGlyphIndex)
			if int(childGid) >= p.numGlyphs {
				ttflog.Log.Debugf("glyf: composite glyph %d references out-of-range child %d", gid, childGid)
				continue
			}
			if err := p.parseGlyph(childGid, depth+1); err != nil {
				ttflog.Log.Debugf("glyf: composite glyph %d: child %d failed to parse: %v", gid, childGid, err)
				continue
			}
			child := p.glyphs[childGid]
			if child == nil {
				continue
			}
			for _, path := range child.PathList {
				g.PathList = append(g.PathList, transformPath(path, comp.m))
			}
			g.NumTriangles += child.NumTriangles
		}
	}

	p.glyphs[gid] = g
	p.loaded[gid] = true
	return nil
}
