package dump

import (
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
)

// decompressScript reverses Bitcoin Core's scriptPubKey compression
// (compressor.cpp's CScriptCompression): nSize 0/1 are the P2PKH/P2SH
// templates stored as a bare 20-byte hash, nSize 2/3/4/5 are P2PK
// templates stored as a 32-byte X coordinate (2/3 already compressed,
// 4/5 needing point decompression back to the uncompressed encoding),
// and nSize >= 6 is an arbitrary script stored verbatim with length
// nSize-specialScriptCount.
const specialScriptCount = 6

func decompressScript(r io.Reader, nSize uint64) ([]byte, error) {
	switch nSize {
	case 0, 1:
		hash := make([]byte, 20)
		if _, err := io.ReadFull(r, hash); err != nil {
			return nil, err
		}
		b := txscript.NewScriptBuilder()
		if nSize == 0 {
			b.AddOp(txscript.OP_DUP).AddOp(txscript.OP_HASH160).
				AddData(hash).AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG)
		} else {
			b.AddOp(txscript.OP_HASH160).AddData(hash).AddOp(txscript.OP_EQUAL)
		}
		return b.Script()

	case 2, 3:
		x := make([]byte, 32)
		if _, err := io.ReadFull(r, x); err != nil {
			return nil, err
		}
		compressed := append([]byte{byte(nSize)}, x...)
		return txscript.NewScriptBuilder().AddData(compressed).AddOp(txscript.OP_CHECKSIG).Script()

	case 4, 5:
		x := make([]byte, 32)
		if _, err := io.ReadFull(r, x); err != nil {
			return nil, err
		}
		compressed := append([]byte{byte(nSize - 2)}, x...)
		pub, err := btcec.ParsePubKey(compressed)
		if err != nil {
			return nil, err
		}
		return txscript.NewScriptBuilder().
			AddData(pub.SerializeUncompressed()).AddOp(txscript.OP_CHECKSIG).Script()

	default:
		rawLen := nSize - specialScriptCount
		raw := make([]byte, rawLen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
}
