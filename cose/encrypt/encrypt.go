// Package encrypt builds the COSE_Encrypt and COSE_Encrypt0 encode
// side structures. It performs no encryption itself: the caller brings
// the algorithm choice, the nonce and the AAD, and feeds the resulting
// Enc_structure to whatever cipher it uses.
package encrypt

import (
	"bytes"

	"github.com/smithee-solutions/libcose/cose"
	"github.com/smithee-solutions/libcose/cose/cbor"
	"github.com/smithee-solutions/libcose/cose/hdr"
)

// Encrypt accumulates the header state of one encrypt operation. The
// nonce and external AAD buffers are borrowed from the caller.
type Encrypt struct {
	alg      cose.Algorithm
	nonce    []byte
	extAAD   []byte
	prot     hdr.List
	unprot   hdr.List
	encrypt0 bool
}

// New returns a multi-recipient COSE_Encrypt builder.
func New(alg cose.Algorithm) *Encrypt {
	return &Encrypt{alg: alg}
}

// New0 returns a single-recipient COSE_Encrypt0 builder.
func New0(alg cose.Algorithm) *Encrypt {
	return &Encrypt{alg: alg, encrypt0: true}
}

func (e *Encrypt) Algorithm() cose.Algorithm { return e.alg }

// SetNonce borrows the nonce reference. Its length must match the
// algorithm's nonce size; that is not checked here.
func (e *Encrypt) SetNonce(nonce []byte) { e.nonce = nonce }

// SetExternalAAD borrows the externally supplied additional
// authenticated data.
func (e *Encrypt) SetExternalAAD(aad []byte) { e.extAAD = aad }

func (e *Encrypt) AddProtected(h hdr.Header)   { e.prot = append(e.prot, h) }
func (e *Encrypt) AddUnprotected(h hdr.Header) { e.unprot = append(e.unprot, h) }

func (e *Encrypt) context() string {
	if e.encrypt0 {
		return "Encrypt0"
	}
	return "Encrypt"
}

// An AEAD algorithm identifier is cryptographically bound and goes
// into the protected bucket; anything else stays unprotected next to
// the nonce.
func (e *Encrypt) algProtected() bool { return e.alg.IsAEAD() }

func (e *Encrypt) protToMap(enc *cbor.Encoder) error {
	if err := e.prot.EncodeToMap(enc); err != nil {
		return err
	}
	if e.algProtected() {
		if err := enc.AppendInt(cose.HdrAlg); err != nil {
			return err
		}
		return enc.AppendInt(int64(e.alg))
	}
	return nil
}

// SerializeProtected returns the protected header map as the encoded
// byte string body the wire format wraps it in.
func (e *Encrypt) SerializeProtected() ([]byte, error) {
	n := len(e.prot)
	if e.algProtected() {
		n++
	}
	var buf bytes.Buffer
	enc := cbor.NewEncoder(&buf)
	if err := enc.AppendMap(n); err != nil {
		return nil, err
	}
	if err := e.protToMap(enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnprotectedToMap appends the unprotected header map: the extra
// headers, the algorithm when it is not bound into the protected
// bucket, and the nonce.
func (e *Encrypt) UnprotectedToMap(enc *cbor.Encoder) error {
	n := len(e.unprot)
	if !e.algProtected() {
		n++
	}
	if e.nonce != nil {
		n++
	}
	if err := enc.AppendMap(n); err != nil {
		return err
	}
	if err := e.unprot.EncodeToMap(enc); err != nil {
		return err
	}
	if !e.algProtected() {
		if err := enc.AppendInt(cose.HdrAlg); err != nil {
			return err
		}
		if err := enc.AppendInt(int64(e.alg)); err != nil {
			return err
		}
	}
	if e.nonce != nil {
		if err := enc.AppendInt(cose.HdrIV); err != nil {
			return err
		}
		if err := enc.AppendBytes(e.nonce); err != nil {
			return err
		}
	}
	return nil
}

// BuildEnc appends the Enc_structure: the AAD input of the cipher.
// It is the 3-array of the context string, the wrapped protected
// headers and the external AAD.
func (e *Encrypt) BuildEnc(enc *cbor.Encoder) error {
	if err := enc.AppendArray(3); err != nil {
		return err
	}
	if err := enc.AppendText(e.context()); err != nil {
		return err
	}
	prot, err := e.SerializeProtected()
	if err != nil {
		return err
	}
	if err := enc.AppendBytes(prot); err != nil {
		return err
	}
	return enc.AppendBytes(e.extAAD)
}
