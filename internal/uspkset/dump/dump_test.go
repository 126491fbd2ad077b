package dump

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/btcsuite/btcd/wire"
)

func writeCoreVarInt(buf *bytes.Buffer, n uint64) {
	var tmp []byte
	for {
		b := byte(n & 0x7f)
		if len(tmp) > 0 {
			b |= 0x80
		}
		tmp = append(tmp, b)
		if n <= 0x7f {
			break
		}
		n = (n >> 7) - 1
	}
	for i := len(tmp) - 1; i >= 0; i-- {
		buf.WriteByte(tmp[i])
	}
}

func writeCompactSize(buf *bytes.Buffer, n uint64) {
	_ = wire.WriteVarInt(buf, 0, n)
}

// compressAmount mirrors Bitcoin Core's compressor.cpp CompressAmount,
// used here only to build synthetic fixtures for decompressAmount.
func compressAmount(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	e := uint64(0)
	for n%10 == 0 && e < 9 {
		n /= 10
		e++
	}
	if e < 9 {
		d := n % 10
		n /= 10
		return 1 + (n*9+d-1)*10 + e
	}
	return 1 + (n-1)*10 + 9
}

func buildSnapshot(t *testing.T, records func(buf *bytes.Buffer)) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(magic[:])
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	buf.Write(make([]byte, 4))
	buf.Write(make([]byte, 32))
	binary.Write(&buf, binary.LittleEndian, uint64(1))
	records(&buf)
	return buf.Bytes()
}

func TestDecodeRawScriptRecord(t *testing.T) {
	rawScript := []byte{0x51, 0x21, 0xAB} // arbitrary 3-byte script

	data := buildSnapshot(t, func(buf *bytes.Buffer) {
		buf.Write(make([]byte, 32)) // txid
		writeCompactSize(buf, 1)    // one output
		writeCoreVarInt(buf, 0)     // vout
		writeCoreVarInt(buf, 200<<1|1)
		writeCoreVarInt(buf, compressAmount(50000))
		writeCoreVarInt(buf, uint64(specialScriptCount+len(rawScript)))
		buf.Write(rawScript)
	})

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if r.Header.UTXOSetSize != 1 {
		t.Fatalf("header UTXOSetSize = %d, want 1", r.Header.UTXOSetSize)
	}

	rec, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Coinbase {
		t.Error("expected coinbase flag set")
	}
	if rec.Height != 200 {
		t.Errorf("height = %d, want 200", rec.Height)
	}
	if rec.AmountSatoshis != 50000 {
		t.Errorf("amount = %d, want 50000", rec.AmountSatoshis)
	}
	if !bytes.Equal(rec.ScriptPubKey, rawScript) {
		t.Errorf("script = %x, want %x", rec.ScriptPubKey, rawScript)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF after single record, got %v", err)
	}
}

func TestDecodeP2PKHSpecialScript(t *testing.T) {
	hash := bytes.Repeat([]byte{0x42}, 20)

	data := buildSnapshot(t, func(buf *bytes.Buffer) {
		buf.Write(make([]byte, 32))
		writeCompactSize(buf, 1)
		writeCoreVarInt(buf, 0)
		writeCoreVarInt(buf, 100<<1|0)
		writeCoreVarInt(buf, compressAmount(1000))
		writeCoreVarInt(buf, 0) // nSize 0 => P2PKH
		buf.Write(hash)
	})

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	rec, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if rec.Coinbase {
		t.Error("expected coinbase flag clear")
	}
	want := append([]byte{0x76, 0xa9, 0x14}, append(hash, 0x88, 0xac)...)
	if !bytes.Equal(rec.ScriptPubKey, want) {
		t.Errorf("script = %x, want %x", rec.ScriptPubKey, want)
	}
}

func TestRejectsBadMagic(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("not a snapshot file at all")))
	if err != ErrBadMagic {
		t.Fatalf("got %v, want ErrBadMagic", err)
	}
}

func TestCoreVarIntRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16384, 1 << 40}
	for _, v := range values {
		var buf bytes.Buffer
		writeCoreVarInt(&buf, v)
		got, err := readCoreVarInt(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("round-trip %d: got %d", v, got)
		}
	}
}

func TestDecompressAmountRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 100, 1000, 50000, 123456789} {
		if got := decompressAmount(compressAmount(v)); got != v {
			t.Errorf("decompressAmount(compressAmount(%d)) = %d", v, got)
		}
	}
}
