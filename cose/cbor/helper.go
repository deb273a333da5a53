package cbor

import (
	"github.com/fxamacker/cbor/v2"
)

var decMode cbor.DecMode

func init() {
	var err error
	opts := cbor.DecOptions{
		IntDec: cbor.IntDecConvertSigned,
	}
	if decMode, err = opts.DecMode(); err != nil {
		panic(err)
	}
}

// Marshal serializes a value using the deterministic encoding mode
// shared with Encoder.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal parses a single CBOR item. Integers of either sign decode
// to int64 so that label-indexed maps come out uniformly typed.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
