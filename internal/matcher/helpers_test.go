package matcher

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/wire"

	"github.com/bitceptron/bitceptron-retriever/internal/uspkset"
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

// seedSetWithScripts builds a synthetic UTXO snapshot containing exactly
// the given scripts, and populates set from it.
func seedSetWithScripts(t *testing.T, set *uspkset.Set, scripts [][]byte) {
	t.Helper()

	var buf bytes.Buffer
	buf.Write([]byte{'u', 't', 'x', 'o', 0xff})
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	buf.Write(make([]byte, 4))
	buf.Write(make([]byte, 32))
	binary.Write(&buf, binary.LittleEndian, uint64(len(scripts)))

	for _, spk := range scripts {
		buf.Write(make([]byte, 32))
		wire.WriteVarInt(&buf, 0, 1)
		writeCoreVarInt(&buf, 0)
		writeCoreVarInt(&buf, 1<<1)
		writeCoreVarInt(&buf, 0)
		writeCoreVarInt(&buf, uint64(6+len(spk)))
		buf.Write(spk)
	}

	path := filepath.Join(t.TempDir(), "snapshot.dat")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := set.PopulateFromFile(path); err != nil {
		t.Fatal(err)
	}
}
