/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// byteReader encapsulates an io.ReadSeeker over the font's immutable byte
// buffer with buffering, and provides typed big-endian reads (§4.A). All
// multi-byte integers in a TrueType file are big-endian regardless of host
// byte order, so every read below goes through binary.BigEndian explicitly.
type byteReader struct {
	rs     io.ReadSeeker
	reader *bufio.Reader
}

func newByteReader(rs io.ReadSeeker) *byteReader {
	return &byteReader{
		rs:     rs,
		reader: bufio.NewReader(rs),
	}
}

// Offset returns the current read position of `r`.
func (r *byteReader) Offset() int64 {
	offset, _ := r.rs.Seek(0, io.SeekCurrent)
	offset -= int64(r.reader.Buffered())
	return offset
}

// Seek repositions `r` to an absolute byte offset.
func (r *byteReader) Seek(offset int64) error {
	if offset < 0 {
		return ErrTruncated
	}
	_, err := r.rs.Seek(offset, io.SeekStart)
	if err != nil {
		return ErrTruncated
	}
	r.reader = bufio.NewReader(r.rs)
	return nil
}

// Skip advances `n` bytes without returning them.
func (r *byteReader) Skip(n int) error {
	if n == 0 {
		return nil
	}
	_, err := r.reader.Discard(n)
	if err != nil {
		return ErrTruncated
	}
	return nil
}

// readBytes reads `length` raw bytes into `*bp`.
func (r *byteReader) readBytes(bp *[]byte, length int) error {
	buf := make([]byte, length)
	_, err := io.ReadFull(r.reader, buf)
	if err != nil {
		return ErrTruncated
	}
	*bp = buf
	return nil
}

// readSlice reads `length` big-endian values of a fixed element type into `slice`.
func (r *byteReader) readSlice(slice interface{}, length int) error {
	switch t := slice.(type) {
	case *[]uint8:
		for i := 0; i < length; i++ {
			v, err := r.readUint8()
			if err != nil {
				return err
			}
			*t = append(*t, v)
		}
	case *[]uint16:
		for i := 0; i < length; i++ {
			v, err := r.readUint16()
			if err != nil {
				return err
			}
			*t = append(*t, v)
		}
	case *[]int16:
		for i := 0; i < length; i++ {
			v, err := r.readInt16()
			if err != nil {
				return err
			}
			*t = append(*t, v)
		}
	case *[]offset16:
		for i := 0; i < length; i++ {
			v, err := r.readOffset16()
			if err != nil {
				return err
			}
			*t = append(*t, v)
		}
	case *[]offset32:
		for i := 0; i < length; i++ {
			v, err := r.readOffset32()
			if err != nil {
				return err
			}
			*t = append(*t, v)
		}
	default:
		return fmt.Errorf("ttf-parser: unsupported slice type %T", t)
	}
	return nil
}

// read reads a sequence of typed fields from `r` in order.
func (r *byteReader) read(fields ...interface{}) error {
	for _, f := range fields {
		switch t := f.(type) {
		case *uint8:
			v, err := r.readUint8()
			if err != nil {
				return err
			}
			*t = v
		case *int8:
			v, err := r.readInt8()
			if err != nil {
				return err
			}
			*t = v
		case *uint16:
			v, err := r.readUint16()
			if err != nil {
				return err
			}
			*t = v
		case *int16:
			v, err := r.readInt16()
			if err != nil {
				return err
			}
			*t = v
		case *uint32:
			v, err := r.readUint32()
			if err != nil {
				return err
			}
			*t = v
		case *fixed:
			v, err := r.readUint32()
			if err != nil {
				return err
			}
			*t = fixed(v)
		case *fword:
			v, err := r.readInt16()
			if err != nil {
				return err
			}
			*t = fword(v)
		case *ufword:
			v, err := r.readUint16()
			if err != nil {
				return err
			}
			*t = ufword(v)
		case *f2dot14:
			v, err := r.readInt16()
			if err != nil {
				return err
			}
			*t = f2dot14(v)
		case *longdatetime:
			v, err := r.readUint64()
			if err != nil {
				return err
			}
			*t = longdatetime(v)
		case *tag:
			var b [4]byte
			_, err := io.ReadFull(r.reader, b[:])
			if err != nil {
				return ErrTruncated
			}
			*t = tag(b)
		case *offset16:
			v, err := r.readOffset16()
			if err != nil {
				return err
			}
			*t = v
		case *offset32:
			v, err := r.readOffset32()
			if err != nil {
				return err
			}
			*t = v
		default:
			return fmt.Errorf("ttf-parser: unsupported field type %T", t)
		}
	}
	return nil
}

func (r *byteReader) readUint8() (uint8, error) {
	b, err := r.reader.ReadByte()
	if err != nil {
		return 0, ErrTruncated
	}
	return b, nil
}

func (r *byteReader) readInt8() (int8, error) {
	v, err := r.readUint8()
	return int8(v), err
}

func (r *byteReader) readUint16() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r.reader, b[:]); err != nil {
		return 0, ErrTruncated
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func (r *byteReader) readInt16() (int16, error) {
	v, err := r.readUint16()
	return int16(v), err
}

func (r *byteReader) readUint32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.reader, b[:]); err != nil {
		return 0, ErrTruncated
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func (r *byteReader) readUint64() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r.reader, b[:]); err != nil {
		return 0, ErrTruncated
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func (r *byteReader) readOffset16() (offset16, error) {
	v, err := r.readUint16()
	return offset16(v), err
}

func (r *byteReader) readOffset32() (offset32, error) {
	v, err := r.readUint32()
	return offset32(v), err
}
