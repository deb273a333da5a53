// Package cbor provides the sequential CBOR item writer the header and
// key encoders target. Item values are serialized with the
// deterministic (CTAP2) encoding mode of fxamacker/cbor; definite
// length container heads are written directly since the codec exposes
// no streaming container API.
package cbor

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

func init() {
	var err error
	if encMode, err = cbor.CTAP2EncOptions().EncMode(); err != nil {
		panic(err)
	}
}

const (
	majorByteString = 2
	majorArray      = 4
	majorMap        = 5
)

// Encoder appends CBOR data items to an underlying writer. Any write
// failure is returned as is and the encoder must not be used further.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) append(v any) error {
	data, err := encMode.Marshal(v)
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

func (e *Encoder) AppendInt(v int64) error { return e.append(v) }

// AppendBytes writes a byte string item. A nil slice encodes as a
// zero length byte string, not as null.
func (e *Encoder) AppendBytes(v []byte) error {
	if v == nil {
		v = []byte{}
	}
	return e.append(v)
}

func (e *Encoder) AppendText(v string) error { return e.append(v) }

// AppendRaw writes an already encoded item verbatim.
func (e *Encoder) AppendRaw(v []byte) error {
	_, err := e.w.Write(v)
	return err
}

func (e *Encoder) appendHead(major byte, n uint64) error {
	var buf [9]byte
	switch {
	case n < 24:
		buf[0] = major<<5 | byte(n)
		_, err := e.w.Write(buf[:1])
		return err
	case n <= 0xff:
		buf[0] = major<<5 | 24
		buf[1] = byte(n)
		_, err := e.w.Write(buf[:2])
		return err
	case n <= 0xffff:
		buf[0] = major<<5 | 25
		binary.BigEndian.PutUint16(buf[1:], uint16(n))
		_, err := e.w.Write(buf[:3])
		return err
	case n <= 0xffffffff:
		buf[0] = major<<5 | 26
		binary.BigEndian.PutUint32(buf[1:], uint32(n))
		_, err := e.w.Write(buf[:5])
		return err
	default:
		buf[0] = major<<5 | 27
		binary.BigEndian.PutUint64(buf[1:], n)
		_, err := e.w.Write(buf[:9])
		return err
	}
}

// AppendMap writes the head of a definite length map holding n pairs.
// The caller appends the 2*n entry items afterwards.
func (e *Encoder) AppendMap(n int) error {
	return e.appendHead(majorMap, uint64(n))
}

// AppendArray writes the head of a definite length array of n items.
func (e *Encoder) AppendArray(n int) error {
	return e.appendHead(majorArray, uint64(n))
}

var ErrBufferFull = errors.New("cbor: buffer full")

// Buffer is a fixed capacity encoder sink. A write exceeding the
// capacity fails with ErrBufferFull and leaves the contents truncated
// at the last complete write.
type Buffer struct {
	buf []byte
	cap int
}

func NewBuffer(capacity int) *Buffer {
	return &Buffer{cap: capacity}
}

func (b *Buffer) Write(p []byte) (int, error) {
	if len(b.buf)+len(p) > b.cap {
		return 0, ErrBufferFull
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *Buffer) Bytes() []byte { return b.buf }
func (b *Buffer) Len() int      { return len(b.buf) }
