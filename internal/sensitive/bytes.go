// Package sensitive holds byte material that must not outlive its caller:
// mnemonics, BIP39 seeds, and extended private key bytes. There is no
// third-party zeroizer in the dependency set this project draws from, so
// the guarantee is implemented directly: every exit path overwrites the
// backing array before returning.
package sensitive

// Bytes wraps a private byte slice and guarantees its backing storage is
// overwritten exactly once, whether the holder's lifetime ends in success
// or failure. Callers acquire a Bytes and defer Close() immediately.
type Bytes struct {
	b      []byte
	closed bool
}

// NewBytes takes ownership of b. Callers must not retain or mutate b
// outside of the returned Bytes after this call.
func NewBytes(b []byte) *Bytes {
	return &Bytes{b: b}
}

// Slice exposes the current bytes for read-only use. It returns nil after
// Close.
func (s *Bytes) Slice() []byte {
	if s == nil || s.closed {
		return nil
	}
	return s.b
}

// Close overwrites the backing array with zeroes. Safe to call multiple
// times and on a nil receiver.
func (s *Bytes) Close() {
	if s == nil || s.closed {
		return
	}
	for i := range s.b {
		s.b[i] = 0
	}
	s.closed = true
}

// Zero overwrites b in place without allocating a Bytes wrapper, for
// values that are never read again after the call site (e.g. a seed array
// passed by value into a derivation step).
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
