package wire

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/prooflab/sigil/errors"
)

// MaxStringLen bounds length-prefixed strings. Fact and function
// symbol names are short identifiers; anything near this limit is
// corrupt input.
const MaxStringLen = 1 << 16

// MaxCount bounds element counts for encoded collections.
const MaxCount = 1 << 20

// Writer encodes wire primitives onto an io.Writer.
type Writer struct {
	w   io.Writer
	buf [10]byte // max LEB128 length for a uint64
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Uvarint writes v as unsigned LEB128.
func (w *Writer) Uvarint(v uint64) error {
	n := 0
	for v >= 0x80 {
		w.buf[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	w.buf[n] = byte(v)
	n++
	if _, err := w.w.Write(w.buf[:n]); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindIO, err, "write uvarint")
	}
	return nil
}

// String writes s length-prefixed.
func (w *Writer) String(s string) error {
	if len(s) > MaxStringLen {
		return errors.InvalidInput(errors.PhaseEncode, "string exceeds wire limit")
	}
	if err := w.Uvarint(uint64(len(s))); err != nil {
		return err
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindIO, err, "write string")
	}
	return nil
}

// Bool writes b as a single byte.
func (w *Writer) Bool(b bool) error {
	v := byte(0)
	if b {
		v = 1
	}
	if _, err := w.w.Write([]byte{v}); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindIO, err, "write bool")
	}
	return nil
}

// Reader decodes wire primitives from an io.Reader.
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

// Uvarint reads an unsigned LEB128 value.
func (r *Reader) Uvarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return 0, errors.UnexpectedEOF(nil, err)
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, errors.Overflow(nil, result, 1<<63)
		}
	}
}

// Count reads a collection count, bounded by MaxCount.
func (r *Reader) Count() (int, error) {
	v, err := r.Uvarint()
	if err != nil {
		return 0, err
	}
	if v > MaxCount {
		return 0, errors.Overflow(nil, v, MaxCount)
	}
	return int(v), nil
}

// String reads a length-prefixed string and validates it as UTF-8.
func (r *Reader) String() (string, error) {
	n, err := r.Uvarint()
	if err != nil {
		return "", err
	}
	if n > MaxStringLen {
		return "", errors.Overflow(nil, n, MaxStringLen)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return "", errors.UnexpectedEOF(nil, err)
	}
	if !utf8.Valid(buf) {
		return "", errors.InvalidData(errors.PhaseDecode, nil, "string is not valid UTF-8")
	}
	return string(buf), nil
}

// Bool reads a single-byte boolean. Any value other than 0 or 1 is
// rejected so that encodings stay canonical.
func (r *Reader) Bool() (bool, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return false, errors.UnexpectedEOF(nil, err)
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.InvalidData(errors.PhaseDecode, nil, "bool byte out of range")
	}
}
