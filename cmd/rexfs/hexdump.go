package main

import (
	"io"
	"strconv"
)

const hexDigits = "0123456789abcdef"

// dumper writes an offset/hex/ASCII listing of everything written to it:
//
//	00000000  72 65 78 0a 00 01 02 03  04 05 06 07 08 09 0a 0b |rex.............|
//
// Hex cells are grouped by eight. Close flushes a trailing partial line.
type dumper struct {
	w     io.Writer
	width int
	line  []byte
	off   int64
	buf   []byte
}

func newDumper(w io.Writer, width int) *dumper {
	if width < 1 {
		width = 16
	}
	return &dumper{
		w:     w,
		width: width,
		line:  make([]byte, 0, width),
	}
}

func (d *dumper) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		k := min(d.width-len(d.line), len(p))
		d.line = append(d.line, p[:k]...)
		p = p[k:]
		n += k

		if len(d.line) == d.width {
			if err := d.flushLine(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func (d *dumper) Close() error {
	if len(d.line) == 0 {
		return nil
	}
	return d.flushLine()
}

func (d *dumper) flushLine() error {
	b := d.buf[:0]

	off := strconv.FormatInt(d.off, 16)
	for i := len(off); i < 8; i++ {
		b = append(b, '0')
	}
	b = append(b, off...)
	b = append(b, ' ', ' ')

	for i := 0; i < d.width; i++ {
		if i < len(d.line) {
			c := d.line[i]
			b = append(b, hexDigits[c>>4], hexDigits[c&0x0f], ' ')
		} else {
			b = append(b, ' ', ' ', ' ')
		}
		if (i+1)%8 == 0 && i+1 < d.width {
			b = append(b, ' ')
		}
	}

	b = append(b, '|')
	for _, c := range d.line {
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		b = append(b, c)
	}
	b = append(b, '|', '\n')

	d.buf = b
	d.off += int64(len(d.line))
	d.line = d.line[:0]

	_, err := d.w.Write(b)
	return err
}
