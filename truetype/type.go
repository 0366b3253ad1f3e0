/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import "strings"

/*
Fundamental TrueType data types.
https://docs.microsoft.com/en-us/typography/opentype/spec/otff

Data Type	Description
--------------------------------------------------------
uint8	  8-bit unsigned integer.
int8	  8-bit signed integer.
uint16	  16-bit unsigned integer.
int16	  16-bit signed integer.
uint32	  32-bit unsigned integer.
Fixed	  32-bit signed fixed-point number (16.16)
FWORD	  int16 that describes a quantity in font design units.
UFWORD	  uint16 that describes a quantity in font design units.
F2DOT14	  16-bit signed fixed number with the low 14 bits of fraction (2.14).
Tag	      Array of four uint8s used to identify a table.
Offset16  Short offset to a table, same as uint16.
Offset32  Long offset to a table, same as uint32.
*/

type fixed int32
type fword int16
type ufword uint16
type f2dot14 int16
type longdatetime int64
type tag [4]uint8
type offset16 uint16
type offset32 uint32

// GlyphIndex identifies a glyph within a font.
type GlyphIndex uint16

func (t tag) String() string {
	return strings.TrimSpace(string(t[:]))
}

func makeTag(s string) tag {
	bb := []byte(s)
	if len(bb) > 4 {
		bb = bb[:4]
	}
	for len(bb) < 4 {
		bb = append(bb, ' ')
	}
	var t tag
	copy(t[:], bb)
	return t
}

// Float64 decodes an F2Dot14 fixed-point value (§4.A). The top two bits
// encode the integral part in {0, 1, -2, -1}; the low 14 bits are the
// fractional part.
func (f f2dot14) Float64() float64 {
	v := int16(f)
	frac := float64(v&0x3fff) / 16384.0
	whole := float64(-2*((v>>15)&0x1) + ((v >> 14) & 0x1))
	return whole + frac
}
