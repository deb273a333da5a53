// Package hdr models the free-form COSE header parameters carried
// beside the fixed algorithm and kid entries.
package hdr

import (
	"fmt"
)

// Encoder is the slice of the CBOR encoder header lists write to.
type Encoder interface {
	AppendInt(v int64) error
	AppendBytes(v []byte) error
	AppendText(v string) error
}

// Header is a single label/value pair. Value must be an int64, a
// string or a byte string.
type Header struct {
	Label int64
	Value any
}

func Int(label, value int64) Header     { return Header{Label: label, Value: value} }
func Text(label int64, v string) Header { return Header{Label: label, Value: v} }
func Bytes(label int64, v []byte) Header {
	return Header{Label: label, Value: v}
}

// EncodeToMap appends the label and value as two map entry items.
func (h *Header) EncodeToMap(enc Encoder) error {
	if err := enc.AppendInt(h.Label); err != nil {
		return err
	}
	switch v := h.Value.(type) {
	case int64:
		return enc.AppendInt(v)
	case string:
		return enc.AppendText(v)
	case []byte:
		return enc.AppendBytes(v)
	default:
		return fmt.Errorf("hdr: unsupported value type %T for label %d", h.Value, h.Label)
	}
}

// List is an ordered set of headers belonging to one header bucket.
type List []Header

// Get returns the first header carrying the label, or nil.
func (l List) Get(label int64) *Header {
	for i := range l {
		if l[i].Label == label {
			return &l[i]
		}
	}
	return nil
}

// EncodeToMap appends every header in order. The caller is
// responsible for the surrounding map head.
func (l List) EncodeToMap(enc Encoder) error {
	for i := range l {
		if err := l[i].EncodeToMap(enc); err != nil {
			return err
		}
	}
	return nil
}
