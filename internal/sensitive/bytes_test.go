package sensitive

import "testing"

func TestBytesCloseZeroes(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	b := NewBytes(raw)
	if b.Slice() == nil {
		t.Fatal("expected non-nil slice before close")
	}
	b.Close()
	for i, v := range raw {
		if v != 0 {
			t.Fatalf("byte %d not zeroed: %d", i, v)
		}
	}
	if b.Slice() != nil {
		t.Fatal("expected nil slice after close")
	}
}

func TestBytesCloseIdempotent(t *testing.T) {
	b := NewBytes([]byte{9, 9})
	b.Close()
	b.Close() // must not panic
}

func TestBytesCloseNilReceiver(t *testing.T) {
	var b *Bytes
	b.Close() // must not panic
	if b.Slice() != nil {
		t.Fatal("expected nil slice from nil receiver")
	}
}

func TestZero(t *testing.T) {
	raw := []byte{5, 6, 7}
	Zero(raw)
	for _, v := range raw {
		if v != 0 {
			t.Fatal("expected all zero bytes")
		}
	}
}
