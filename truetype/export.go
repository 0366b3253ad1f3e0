/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package truetype decodes the tables of a TrueType font file into glyph
// contours, character-to-glyph mapping, horizontal metrics, and kerning
// pairs, without performing hinting, shaping, or rasterization.
package truetype

import (
	"bytes"
	"io"
	"os"

	"github.com/kv01/ttf-parser/internal/ttflog"
)

// Parse decodes a TrueType font from `rs` (§6, `parse_data`). The reader is
// only used for the duration of the call; the returned FontData shares
// nothing with it afterward.
func Parse(rs io.ReadSeeker, opts ...Option) (*FontData, error) {
	if rs == nil {
		return nil, ErrEmptyFont
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return parseFontData(newByteReader(rs), o)
}

// ParseData decodes a TrueType font from an in-memory byte slice.
func ParseData(data []byte, opts ...Option) (*FontData, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	return Parse(bytes.NewReader(data), opts...)
}

// ParseCallback receives the result of ParseFile: fontData is nil on
// failure, and code follows the stable numeric taxonomy in §7.
type ParseCallback func(args interface{}, fontData *FontData, code ErrorCode)

// ParseFile reads `path` synchronously, parses it, and invokes `callback`
// with the result before returning the same error (§6, `parse_file`). args
// is opaque and forwarded to callback unchanged.
func ParseFile(path string, callback ParseCallback, args interface{}, opts ...Option) error {
	f, err := os.Open(path)
	if err != nil {
		ttflog.Log.Debugf("ttf-parser: failed to open %q: %v", path, err)
		if callback != nil {
			callback(args, nil, ErrCodeIO)
		}
		return err
	}
	defer f.Close()

	fontData, err := Parse(f, opts...)
	code := errorCode(err)
	if callback != nil {
		callback(args, fontData, code)
	}
	return err
}
