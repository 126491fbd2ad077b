package dump

import "io"

// readCoreVarInt decodes Bitcoin Core's serialize.h VARINT encoding: a
// big-endian base-128 integer where every byte but the last has its top
// bit set, and each continued byte contributes an implicit +1 so that
// encodings are unique. This is unrelated to the CompactSize ("VarInt"
// in btcd's wire package) encoding used elsewhere in the same file.
func readCoreVarInt(r io.ByteReader) (uint64, error) {
	var n uint64
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if n > (1<<63)/128 {
			return 0, ErrVarIntOverflow
		}
		n = (n << 7) | uint64(b&0x7f)
		if b&0x80 != 0 {
			n++
		} else {
			return n, nil
		}
	}
}

// decompressAmount reverses Bitcoin Core's satoshi-amount compression
// (compressor.cpp's CompressAmount/DecompressAmount), which exploits the
// prevalence of round decimal satoshi amounts in the UTXO set.
func decompressAmount(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	x--
	e := x % 10
	x /= 10
	var n uint64
	if e < 9 {
		d := (x % 9) + 1
		x /= 9
		n = x*10 + d
	} else {
		n = x + 1
	}
	for ; e > 0; e-- {
		n *= 10
	}
	return n
}
